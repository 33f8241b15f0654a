// Package checker orchestrates a compatibility check run: split the source
// into statements, parse each under the source dialect, classify against the
// target dialects, and assemble the report.
package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sqlport-dev/sqlport/pkg/compat"
	"github.com/sqlport-dev/sqlport/pkg/dialect"
	"github.com/sqlport-dev/sqlport/pkg/feature"
	"github.com/sqlport-dev/sqlport/pkg/parser"
	"github.com/sqlport-dev/sqlport/pkg/token"
)

// Checker runs compatibility checks for one source dialect against a fixed
// target set. Safe for concurrent use once constructed.
type Checker struct {
	source  *dialect.Dialect
	targets []string
	matrix  *feature.CapabilityMatrix
	logger  *slog.Logger
	workers int
}

// Config holds checker configuration.
type Config struct {
	// SourceDialect is the dialect the input was written for.
	SourceDialect string
	// Targets are the dialects to check compatibility against.
	Targets []string
	// RewritesFile optionally overrides built-in rewrite rules.
	RewritesFile string
	// Workers caps parallel statement classification; 0 means GOMAXPROCS.
	Workers int
	// Logger receives structured progress output; nil discards it.
	Logger *slog.Logger
}

// New validates the configuration and builds a checker. Unknown dialect
// names and an incomplete capability matrix are construction errors, not
// run-time surprises.
func New(cfg Config) (*Checker, error) {
	src, ok := dialect.Get(cfg.SourceDialect)
	if !ok {
		return nil, fmt.Errorf("unknown source dialect %q, available: %v", cfg.SourceDialect, dialect.List())
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("at least one target dialect is required")
	}
	for _, target := range cfg.Targets {
		if _, ok := dialect.Get(target); !ok {
			return nil, fmt.Errorf("unknown target dialect %q, available: %v", target, dialect.List())
		}
	}

	m := feature.NewMatrix(cfg.Targets)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if cfg.RewritesFile != "" {
		if err := m.LoadOverrides(cfg.RewritesFile); err != nil {
			return nil, err
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Checker{
		source:  src,
		targets: append([]string(nil), cfg.Targets...),
		matrix:  m,
		logger:  logger,
		workers: workers,
	}, nil
}

// Targets returns the configured target dialect names.
func (c *Checker) Targets() []string {
	return c.targets
}

// SourceDialect returns the configured source dialect name.
func (c *Checker) SourceDialect() string {
	return c.source.GetName()
}

// CheckSource checks one SQL source text and returns its report. Parsing is
// per statement: a malformed statement becomes a parse-failure entry and the
// rest of the input is still checked. Classification runs concurrently
// across statements; entries keep source order regardless.
func (c *Checker) CheckSource(ctx context.Context, src string) (*compat.Report, error) {
	results := parser.ParseAll(src, c.source)
	c.logger.Debug("parsed source",
		"dialect", c.source.GetName(),
		"statements", len(results))

	entries := make([]compat.Entry, len(results))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.workers)
	for i, res := range results {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry, err := c.buildEntry(i, res)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	b := compat.NewBuilder(c.source.GetName(), c.targets)
	for _, e := range entries {
		if err := b.Add(e); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// errorPosition extracts the source position a parse or lex failure
// carries, so reports can point at the failing line rather than the
// statement's first line.
func errorPosition(err error) *token.Position {
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		pos := perr.Pos
		return &pos
	}
	var lerr *parser.LexError
	if errors.As(err, &lerr) {
		pos := lerr.Pos
		return &pos
	}
	return nil
}

// CheckFile reads and checks one file.
func (c *Checker) CheckFile(ctx context.Context, path string) (*compat.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c.logger.Debug("checking file", "path", path, "bytes", len(data))
	return c.CheckSource(ctx, string(data))
}

func (c *Checker) buildEntry(index int, res parser.Result) (compat.Entry, error) {
	entry := compat.Entry{
		Index: index,
		Pos:   res.Raw.Pos,
		Text:  res.Raw.Text,
	}
	if res.Err != nil {
		c.logger.Debug("statement failed to parse",
			"index", index,
			"line", res.Raw.Pos.Line,
			"error", res.Err)
		entry.Summary = "unparsed statement"
		entry.ParseError = res.Err.Error()
		entry.ErrorPos = errorPosition(res.Err)
		return entry, nil
	}

	entry.Summary = res.Stmt.Summary()
	assessments, err := compat.ClassifyAll(res.Stmt, c.targets, c.matrix)
	if err != nil {
		// An unknown feature tag means the matrix and the parser
		// disagree; the whole run is unreliable at that point.
		return compat.Entry{}, err
	}
	entry.Assessments = assessments
	return entry, nil
}
