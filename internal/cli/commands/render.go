package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/sqlport-dev/sqlport/internal/checker"
	"github.com/sqlport-dev/sqlport/internal/cli/output"
	"github.com/sqlport-dev/sqlport/pkg/compat"
	"github.com/sqlport-dev/sqlport/pkg/feature"
)

// contextLines is how many lines around a parse error get printed.
const contextLines = 2

// checkJSONFile is one file's block in the JSON output document.
type checkJSONFile struct {
	Path   string         `json:"path"`
	Error  string         `json:"error,omitempty"`
	Report *compat.Report `json:"report,omitempty"`
}

type checkJSONOutput struct {
	Files []checkJSONFile `json:"files"`
}

func renderCheckReports(r *output.Renderer, reports []checker.FileReport) error {
	if r.EffectiveMode() == output.ModeJSON {
		doc := checkJSONOutput{}
		for _, fr := range reports {
			f := checkJSONFile{Path: fr.Path, Report: fr.Report}
			if fr.Err != nil {
				f.Error = fr.Err.Error()
			}
			doc.Files = append(doc.Files, f)
		}
		return r.JSON(doc)
	}

	for _, fr := range reports {
		renderFileReport(r, fr)
	}
	renderRunSummary(r, reports)
	return nil
}

func renderFileReport(r *output.Renderer, fr checker.FileReport) {
	md := r.EffectiveMode() == output.ModeMarkdown
	if md {
		r.Printf("## %s\n\n", fr.Path)
	} else {
		r.Println(r.Styles().Header.Render(fr.Path))
	}
	if fr.Err != nil {
		r.Printf("  %s %v\n\n", r.Styles().Error.Render("error:"), fr.Err)
		return
	}

	for i := range fr.Report.Entries {
		entry := &fr.Report.Entries[i]
		if entry.Failed() {
			renderParseFailure(r, fr.Path, entry)
			continue
		}
		renderEntry(r, entry)
	}
	r.Println("")
}

func renderEntry(r *output.Renderer, entry *compat.Entry) {
	worst := feature.Supported
	for _, a := range entry.Assessments {
		worst = worst.Worse(a.Verdict)
	}
	if worst == feature.Supported {
		// Fully portable statements stay quiet in text output; the
		// summary still counts them.
		return
	}

	r.Printf("  %s %s (line %d)\n",
		verdictBadge(r, worst), entry.Summary, entry.Pos.Line)
	for _, a := range entry.Assessments {
		if a.Verdict == feature.Supported {
			continue
		}
		for _, f := range a.Findings {
			if f.Verdict == feature.Supported {
				continue
			}
			line := fmt.Sprintf("    %s: %s → %s", a.Target, f.Tag, f.Verdict)
			if f.Rewrite != "" {
				line += " (" + f.Rewrite + ")"
			}
			r.Println(line)
		}
	}
}

// renderParseFailure prints the error with the offending source line and
// two lines of context on either side.
func renderParseFailure(r *output.Renderer, path string, entry *compat.Entry) {
	r.Printf("  %s %s\n", r.Styles().Error.Render("parse error:"), entry.ParseError)

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	lines := strings.Split(string(data), "\n")
	errLine := entry.Pos.Line // 1-based
	if entry.ErrorPos != nil {
		errLine = entry.ErrorPos.Line
	}
	if errLine < 1 || errLine > len(lines) {
		return
	}
	from := max(1, errLine-contextLines)
	to := min(len(lines), errLine+contextLines)
	for n := from; n <= to; n++ {
		marker := "  "
		if n == errLine {
			marker = r.Styles().Error.Render("> ")
		}
		r.Printf("  %s%4d | %s\n", marker, n, lines[n-1])
	}
}

func renderRunSummary(r *output.Renderer, reports []checker.FileReport) {
	var statements, failures, unsupported, rewrites int
	for _, fr := range reports {
		if fr.Err != nil || fr.Report == nil {
			continue
		}
		statements += fr.Report.Summary.Statements
		failures += fr.Report.Summary.ParseFailures
		for _, ts := range fr.Report.Summary.ByTarget {
			unsupported += ts.Unsupported
			rewrites += ts.Rewrites
		}
	}

	parts := []string{fmt.Sprintf("%d statements", statements)}
	if failures > 0 {
		parts = append(parts, r.Styles().Error.Render(fmt.Sprintf("%d parse failures", failures)))
	}
	if unsupported > 0 {
		parts = append(parts, r.Styles().Error.Render(fmt.Sprintf("%d unsupported", unsupported)))
	}
	if rewrites > 0 {
		parts = append(parts, r.Styles().Warning.Render(fmt.Sprintf("%d rewrites", rewrites)))
	}
	if failures == 0 && unsupported == 0 && rewrites == 0 {
		r.Success(fmt.Sprintf("%d statements, all portable", statements))
		return
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(parts, ", "), len(reports))
}

func verdictBadge(r *output.Renderer, v feature.Verdict) string {
	switch v {
	case feature.Unsupported:
		return r.Styles().Error.Render("✗")
	case feature.SupportedWithRewrite:
		return r.Styles().Warning.Render("~")
	default:
		return r.Styles().Success.Render("✓")
	}
}
