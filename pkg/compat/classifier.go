// Package compat classifies parsed statements against target dialects and
// assembles compatibility reports.
package compat

import (
	"github.com/sqlport-dev/sqlport/pkg/feature"
	"github.com/sqlport-dev/sqlport/pkg/parser"
)

// Finding is one feature occurrence with the target's capability for it.
type Finding struct {
	Tag     feature.FeatureTag `json:"feature"`
	Verdict feature.Verdict    `json:"verdict"`
	Rewrite string             `json:"rewrite,omitempty"`
}

// TargetAssessment is the outcome of classifying one statement against one
// target dialect. Verdict is the worst verdict across all findings; a
// statement with no findings is Supported.
type TargetAssessment struct {
	Target   string          `json:"target"`
	Verdict  feature.Verdict `json:"verdict"`
	Findings []Finding       `json:"findings,omitempty"`
}

// Classify evaluates every feature tag in the statement against the target
// dialect. Findings preserve document order, one per occurrence. The
// function is pure: equal inputs always produce equal assessments.
//
// A tag missing from the capability matrix fails the classification with
// feature.UnknownFeatureTagError rather than guessing a verdict.
func Classify(stmt *parser.Statement, target string, m *feature.CapabilityMatrix) (TargetAssessment, error) {
	a := TargetAssessment{Target: target, Verdict: feature.Supported}
	for _, tag := range stmt.AllTags() {
		c, err := m.Lookup(tag, target)
		if err != nil {
			return TargetAssessment{}, err
		}
		a.Findings = append(a.Findings, Finding{Tag: tag, Verdict: c.Verdict, Rewrite: c.Rewrite})
		a.Verdict = a.Verdict.Worse(c.Verdict)
	}
	return a, nil
}

// ClassifyAll evaluates the statement against every target in order.
func ClassifyAll(stmt *parser.Statement, targets []string, m *feature.CapabilityMatrix) ([]TargetAssessment, error) {
	out := make([]TargetAssessment, 0, len(targets))
	for _, target := range targets {
		a, err := Classify(stmt, target, m)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
