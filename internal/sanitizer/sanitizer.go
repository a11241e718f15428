package sanitizer

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Sanitizer runs the inbound untrusted-content pipeline (spec §4.3).
type Sanitizer struct {
	cfg    Config
	logger EventLogger
	now    func() time.Time
}

// New constructs a Sanitizer. logger may be nil to disable event emission
// regardless of cfg.LogEvents.
func New(cfg Config, logger EventLogger) *Sanitizer {
	return &Sanitizer{cfg: cfg, logger: logger, now: time.Now}
}

// Sanitize runs detect → normalize → classify → emit over content tagged
// with sourceTag (spec §4.3).
func (s *Sanitizer) Sanitize(content, sourceTag string, opts Options) Result {
	originalHash := sha256.Sum256([]byte(content))
	originalHashHex := hex.EncodeToString(originalHash[:])

	if !s.cfg.Enabled {
		res := Result{
			WrappedText:  buildEnvelope(content, sourceTag, opts, Detection{}, s.now()),
			OriginalHash: originalHashHex,
			Detected:     false,
			HighRisk:     false,
			Action:       ActionPassed,
			Detection:    Detection{},
		}
		s.logEvent(res, sourceTag, Detection{}, len(content), originalHashHex)
		return res
	}

	det := Detect(content)

	normalized := content
	if s.cfg.StripUnicode || s.cfg.NormalizeWhitespace {
		normalized = Normalize(content, s.cfg.StripUnicode)
	}

	detected := len(det.Matches) > 0 || len(det.Base64Hits) > 0
	highRisk := det.RiskScore >= s.cfg.HighRiskThreshold

	var wrapped string
	var action Action

	switch {
	case s.cfg.StrictMode && highRisk:
		wrapped = buildBlockedContent("high-risk content blocked in strict mode", det.RiskScore)
		action = ActionBlocked
	case highRisk:
		warning := buildSecurityWarning(det.Categories)
		envelope := buildEnvelope(normalized, sourceTag, opts, det, s.now())
		wrapped = warning + envelope
		action = ActionWrapped
	default:
		wrapped = buildEnvelope(normalized, sourceTag, opts, det, s.now())
		action = ActionWrapped
	}

	res := Result{
		WrappedText:  wrapped,
		OriginalHash: originalHashHex,
		Detected:     detected,
		HighRisk:     highRisk,
		Action:       action,
		Detection:    det,
	}
	s.logEvent(res, sourceTag, det, len(content), originalHashHex)
	return res
}

func (s *Sanitizer) logEvent(res Result, source string, det Detection, contentLen int, originalHashHex string) {
	if !s.cfg.LogEvents || s.logger == nil {
		return
	}
	prefix := originalHashHex
	if len(prefix) > 16 {
		prefix = prefix[:16] // 8 bytes, hex-encoded
	}
	s.logger.LogSanitizeEvent(Event{
		Timestamp:      s.now().UTC(),
		Source:         source,
		Categories:     det.Categories,
		RiskScore:      det.RiskScore,
		Action:         res.Action,
		ContentLength:  contentLen,
		OriginalPrefix: prefix,
	})
}
