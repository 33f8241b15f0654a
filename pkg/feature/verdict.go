package feature

import "encoding/json"

// Verdict is the classification outcome for a feature against a target dialect.
type Verdict int

const (
	// Supported means the construct works unchanged on the target.
	Supported Verdict = iota
	// SupportedWithRewrite means the construct works after applying a rewrite rule.
	SupportedWithRewrite
	// Unsupported means the construct has no equivalent on the target.
	Unsupported
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Supported:
		return "supported"
	case SupportedWithRewrite:
		return "supported-with-rewrite"
	case Unsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the verdict as its name.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// Worse returns the worse of two verdicts.
// Unsupported dominates SupportedWithRewrite dominates Supported.
func (v Verdict) Worse(other Verdict) Verdict {
	if other > v {
		return other
	}
	return v
}

// Capability is a matrix entry: the verdict for one (tag, target) pair,
// plus the curated rewrite rule when the verdict is SupportedWithRewrite.
type Capability struct {
	Verdict Verdict
	Rewrite string // human-readable rewrite rule; empty unless SupportedWithRewrite
}
