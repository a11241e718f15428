package toolpolicy

// matrixKey is the (session_type, capability) lookup key (spec §4.5(a)).
type matrixKey struct {
	sessionType SessionType
	capability  Capability
}

// DefaultMatrix is the capability matrix contract from spec §4.5(a):
// guest denies everything; main-elevated may be confirm-only for
// delete/irreversible actions; sandbox denies all execution and any
// write to shared state.
var DefaultMatrix = buildDefaultMatrix()

func buildDefaultMatrix() map[matrixKey]Decision {
	m := map[matrixKey]Decision{}

	allFor := func(st SessionType, caps []Capability, d Decision) {
		for _, c := range caps {
			m[matrixKey{st, c}] = d
		}
	}

	allCaps := []Capability{
		CapShellUnrestricted, CapShellSandboxed, CapShellReadOnly,
		CapBrowserCDP, CapBrowserScreenshot, CapBrowserNavigate,
		CapFileRead, CapFileWrite, CapFileDelete,
		CapCodeCanvasEval, CapCodeNodeInvoke,
		CapSessionSend, CapSessionHistoryOwn, CapSessionHistoryAll, CapSessionCreate,
		CapCronCreate, CapCronDelete, CapCronList,
		CapWebhookRegister, CapWebhookDelete,
		CapSkillInstall, CapSkillExecute,
		CapConfigRead, CapConfigWrite,
	}

	// guest: deny everything.
	allFor(SessionGuest, allCaps, DecisionDeny)

	// main-elevated: allow broadly; confirm only on delete/irreversible actions.
	allFor(SessionMainElevated, allCaps, DecisionAllow)
	m[matrixKey{SessionMainElevated, CapFileDelete}] = DecisionConfirm
	m[matrixKey{SessionMainElevated, CapShellUnrestricted}] = DecisionConfirm
	m[matrixKey{SessionMainElevated, CapCronDelete}] = DecisionConfirm
	m[matrixKey{SessionMainElevated, CapWebhookDelete}] = DecisionConfirm
	m[matrixKey{SessionMainElevated, CapSkillInstall}] = DecisionConfirm

	// main-standard: allow read/sandboxed/session ops; confirm on writes and
	// deletes; deny unrestricted shell and cross-user history.
	allFor(SessionMainStandard, allCaps, DecisionAllow)
	m[matrixKey{SessionMainStandard, CapShellUnrestricted}] = DecisionDeny
	m[matrixKey{SessionMainStandard, CapShellSandboxed}] = DecisionConfirm
	m[matrixKey{SessionMainStandard, CapFileDelete}] = DecisionConfirm
	m[matrixKey{SessionMainStandard, CapFileWrite}] = DecisionConfirm
	m[matrixKey{SessionMainStandard, CapSessionHistoryAll}] = DecisionDeny
	m[matrixKey{SessionMainStandard, CapSkillInstall}] = DecisionConfirm
	m[matrixKey{SessionMainStandard, CapCronDelete}] = DecisionConfirm
	m[matrixKey{SessionMainStandard, CapWebhookDelete}] = DecisionConfirm

	// sandbox: deny all execution and any write to shared state.
	allFor(SessionSandbox, allCaps, DecisionDeny)
	m[matrixKey{SessionSandbox, CapShellReadOnly}] = DecisionAllow
	m[matrixKey{SessionSandbox, CapFileRead}] = DecisionAllow
	m[matrixKey{SessionSandbox, CapBrowserScreenshot}] = DecisionAllow
	m[matrixKey{SessionSandbox, CapSessionHistoryOwn}] = DecisionAllow

	// webhook: narrow, read-mostly capability set for inbound event handlers.
	allFor(SessionWebhook, allCaps, DecisionDeny)
	m[matrixKey{SessionWebhook, CapSessionSend}] = DecisionAllow
	m[matrixKey{SessionWebhook, CapConfigRead}] = DecisionAllow

	// cron: scheduled jobs may run sandboxed shell and send messages, nothing destructive.
	allFor(SessionCron, allCaps, DecisionDeny)
	m[matrixKey{SessionCron, CapShellSandboxed}] = DecisionAllow
	m[matrixKey{SessionCron, CapShellReadOnly}] = DecisionAllow
	m[matrixKey{SessionCron, CapFileRead}] = DecisionAllow
	m[matrixKey{SessionCron, CapSessionSend}] = DecisionAllow

	// api: programmatic callers get read/session capabilities, confirm on writes.
	allFor(SessionAPI, allCaps, DecisionAllow)
	m[matrixKey{SessionAPI, CapShellUnrestricted}] = DecisionDeny
	m[matrixKey{SessionAPI, CapShellSandboxed}] = DecisionConfirm
	m[matrixKey{SessionAPI, CapFileDelete}] = DecisionConfirm
	m[matrixKey{SessionAPI, CapFileWrite}] = DecisionConfirm
	m[matrixKey{SessionAPI, CapSessionHistoryAll}] = DecisionDeny
	m[matrixKey{SessionAPI, CapSkillInstall}] = DecisionConfirm

	return m
}

// CapabilityMatrix wraps the lookup table so callers can compose a custom
// table while still sharing the decision-lookup logic.
type CapabilityMatrix struct {
	table map[matrixKey]Decision
}

// NewCapabilityMatrix wraps the default contract table.
func NewCapabilityMatrix() *CapabilityMatrix {
	return &CapabilityMatrix{table: DefaultMatrix}
}

// Decide returns the matrix decision for (sessionType, capability), defaulting
// to deny for unknown combinations (fail closed).
func (m *CapabilityMatrix) Decide(sessionType SessionType, capability Capability) Decision {
	if d, ok := m.table[matrixKey{sessionType, capability}]; ok {
		return d
	}
	return DecisionDeny
}
