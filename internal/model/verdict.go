package model

// Verdict is the policy-determined outcome for one claim.
type Verdict string

const (
	VerdictAuthentic    Verdict = "AUTHENTIC"    // Verified with strong authoritative backing
	VerdictFake         Verdict = "FAKE"         // Contradicted, or confidently unsupported
	VerdictSuspicious   Verdict = "SUSPICIOUS"   // Unverified or ambiguous
	VerdictUnverifiable Verdict = "UNVERIFIABLE" // Insufficient evidence to decide
	VerdictError        Verdict = "ERROR"        // Verification step itself failed
)

// Icon returns the status symbol used in human-readable output.
func (v Verdict) Icon() string {
	switch v {
	case VerdictAuthentic:
		return "✅"
	case VerdictFake:
		return "❌"
	case VerdictSuspicious:
		return "⚠️"
	case VerdictUnverifiable:
		return "❓"
	default:
		return "💥"
	}
}
