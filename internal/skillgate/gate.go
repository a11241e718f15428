package skillgate

import (
	"sync"
	"time"
)

// Gate implements the approval workflow state machine of spec §4.9.
type Gate struct {
	cfg       Config
	mu        sync.Mutex
	approvals map[string]*Approval
	registry  *InstalledRegistry
	now       func() time.Time
}

// New constructs a Gate backed by its own installed-skill registry.
func New(cfg Config) *Gate {
	return &Gate{
		cfg:       cfg,
		approvals: map[string]*Approval{},
		registry:  NewInstalledRegistry(),
		now:       time.Now,
	}
}

// Registry exposes the installed-skill registry for is_installed/
// get_installed_skill reads.
func (g *Gate) Registry() *InstalledRegistry {
	return g.registry
}

// RequestApproval enqueues req. AutoInstall requests are recorded as
// approved immediately; otherwise the request is subject to
// max_pending_approvals and enters the pending state (spec §4.9).
func (g *Gate) RequestApproval(req Request) (*Approval, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()

	if req.AutoInstall {
		decided := now
		a := &Approval{
			SkillID:     req.SkillID,
			Request:     req,
			Status:      StatusApproved,
			RequestedAt: now,
			DecidedAt:   &decided,
			DecidedBy:   "auto_install",
		}
		g.approvals[req.SkillID] = a
		return a, nil
	}

	if g.countPendingLocked() >= g.cfg.MaxPendingApprovals {
		return nil, &InstallError{SkillID: req.SkillID, Code: MaxPendingExceeded}
	}

	a := &Approval{
		SkillID:     req.SkillID,
		Request:     req,
		Status:      StatusPending,
		RequestedAt: now,
	}
	g.approvals[req.SkillID] = a
	return a, nil
}

// Approve transitions a pending approval to approved. Only acts on
// records currently pending (expired records are rejected).
func (g *Gate) Approve(skillID, by, reason string) (*Approval, error) {
	return g.decide(skillID, StatusApproved, by, reason)
}

// Deny transitions a pending approval to denied.
func (g *Gate) Deny(skillID, by, reason string) (*Approval, error) {
	return g.decide(skillID, StatusDenied, by, reason)
}

func (g *Gate) decide(skillID string, outcome Status, by, reason string) (*Approval, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	a, ok := g.approvals[skillID]
	if !ok {
		return nil, &InstallError{SkillID: skillID, Code: NotFound}
	}
	g.expireLocked(a)
	if a.Status != StatusPending {
		return nil, &InstallError{SkillID: skillID, Code: InvalidStatus}
	}

	now := g.now()
	a.Status = outcome
	a.DecidedAt = &now
	a.DecidedBy = by
	a.Reason = reason
	return a, nil
}

// Get returns the current approval record for skillID, applying lazy
// expiry on access.
func (g *Gate) Get(skillID string) (*Approval, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	a, ok := g.approvals[skillID]
	if !ok {
		return nil, false
	}
	g.expireLocked(a)
	acopy := *a
	return &acopy, true
}

// expireLocked flips a to expired if it is pending and older than
// approval_expiration_ms. Must be called with g.mu held.
func (g *Gate) expireLocked(a *Approval) {
	if a.Status != StatusPending {
		return
	}
	age := g.now().Sub(a.RequestedAt)
	if age > time.Duration(g.cfg.ApprovalExpirationMs)*time.Millisecond {
		a.Status = StatusExpired
	}
}

func (g *Gate) countPendingLocked() int {
	n := 0
	for _, a := range g.approvals {
		g.expireLocked(a)
		if a.Status == StatusPending {
			n++
		}
	}
	return n
}

// VerifyAndInstall checks content against expectedHash under the
// configured algorithm and, on success, records skillID as installed.
func (g *Gate) VerifyAndInstall(skillID string, content []byte, expectedHash, version string) (bool, error) {
	ok, err := VerifyContent(content, expectedHash, g.cfg.HashAlgorithm, g.cfg.VerifyHashes)
	if err != nil || !ok {
		return false, err
	}
	actualHash := expectedHash
	if g.cfg.VerifyHashes {
		actualHash, err = hashContent(content, g.cfg.HashAlgorithm)
		if err != nil {
			return false, err
		}
	}
	g.registry.Put(skillID, InstalledSkill{Hash: actualHash, Version: version})
	return true, nil
}
