package compat

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sqlport-dev/sqlport/pkg/feature"
	"github.com/sqlport-dev/sqlport/pkg/token"
)

// Entry is one statement's row in a report: either a parse failure or a set
// of per-target assessments.
type Entry struct {
	Index      int            `json:"index"`
	Summary    string         `json:"summary"`
	Pos        token.Position `json:"position"`
	Text       string         `json:"text"`
	ParseError string         `json:"parse_error,omitempty"`
	// ErrorPos is where a parse or lex failure occurred, in source
	// coordinates. Nil for entries that parsed.
	ErrorPos    *token.Position    `json:"error_position,omitempty"`
	Assessments []TargetAssessment `json:"assessments,omitempty"`
}

// Failed reports whether the entry is a parse failure.
func (e *Entry) Failed() bool {
	return e.ParseError != ""
}

// TargetSummary counts statements per verdict for one target.
type TargetSummary struct {
	Supported   int `json:"supported"`
	Rewrites    int `json:"supported_with_rewrite"`
	Unsupported int `json:"unsupported"`
}

// Summary aggregates the report's entries.
type Summary struct {
	Statements    int                      `json:"statements"`
	ParseFailures int                      `json:"parse_failures"`
	ByTarget      map[string]TargetSummary `json:"by_target"`
}

// Report is the complete outcome of one compatibility check run.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source_dialect"`
	Targets     []string  `json:"targets"`
	Entries     []Entry   `json:"entries"`
	Summary     Summary   `json:"summary"`
}

// Exit codes for the check operation. Parse failures take precedence over
// unsupported findings.
const (
	ExitOK          = 0
	ExitUnsupported = 1
	ExitParseFailed = 2
)

// ExitCode maps the report outcome to a process exit code.
func (r *Report) ExitCode() int {
	if r.Summary.ParseFailures > 0 {
		return ExitParseFailed
	}
	for _, ts := range r.Summary.ByTarget {
		if ts.Unsupported > 0 {
			return ExitUnsupported
		}
	}
	return ExitOK
}

// BuildError reports a builder misuse, e.g. entries added out of order.
type BuildError struct {
	Index int
	Want  int
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("report entry index %d out of order, want %d", e.Index, e.Want)
}

// Builder accumulates entries in statement order and seals them into a
// Report. It is not safe for concurrent use; callers classifying in
// parallel add entries after joining.
type Builder struct {
	source  string
	targets []string
	entries []Entry
}

// NewBuilder creates a report builder for one source dialect and an ordered
// target list.
func NewBuilder(source string, targets []string) *Builder {
	return &Builder{source: source, targets: targets}
}

// Add appends one entry. Entries must arrive with consecutive indices
// starting at zero; anything else returns a BuildError.
func (b *Builder) Add(e Entry) error {
	if e.Index != len(b.entries) {
		return &BuildError{Index: e.Index, Want: len(b.entries)}
	}
	b.entries = append(b.entries, e)
	return nil
}

// Build seals the accumulated entries into a Report with a fresh run ID.
func (b *Builder) Build() *Report {
	r := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Source:      b.source,
		Targets:     b.targets,
		Entries:     b.entries,
	}
	r.Summary = summarize(b.entries, b.targets)
	return r
}

func summarize(entries []Entry, targets []string) Summary {
	s := Summary{
		Statements: len(entries),
		ByTarget:   make(map[string]TargetSummary, len(targets)),
	}
	for _, target := range targets {
		s.ByTarget[target] = TargetSummary{}
	}
	for i := range entries {
		e := &entries[i]
		if e.Failed() {
			s.ParseFailures++
			continue
		}
		for _, a := range e.Assessments {
			ts := s.ByTarget[a.Target]
			switch a.Verdict {
			case feature.Supported:
				ts.Supported++
			case feature.SupportedWithRewrite:
				ts.Rewrites++
			case feature.Unsupported:
				ts.Unsupported++
			}
			s.ByTarget[a.Target] = ts
		}
	}
	return s
}
