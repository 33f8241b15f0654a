package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sqlport-dev/sqlport/internal/checker"
	"github.com/sqlport-dev/sqlport/internal/cli/config"
	"github.com/sqlport-dev/sqlport/internal/cli/output"
	"github.com/sqlport-dev/sqlport/pkg/compat"
	"github.com/sqlport-dev/sqlport/pkg/dialect"
)

type checkOptions struct {
	watch bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check SQL files for dialect compatibility",
		Long: `Check parses the given SQL files (or the project's schema file and
queries directory when no paths are given) under the source dialect and
classifies every statement against the target dialects.

Exit codes: 0 when everything ports (rewrites included), 1 when any
statement is unsupported on a target, 2 when any statement fails to parse.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			r := GetRenderer(cmd.Context())

			paths := args
			if len(paths) == 0 {
				paths = cfg.DefaultPaths()
			}
			if len(paths) == 0 {
				return errNoInputs
			}

			c, err := newChecker(cfg)
			if err != nil {
				return err
			}

			if opts.watch {
				return watchAndCheck(cmd.Context(), c, r, paths)
			}

			code, err := runCheck(cmd.Context(), c, r, paths)
			if err != nil {
				return err
			}
			if code != compat.ExitOK {
				return &ExitError{Code: code}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-run the check when input files change")
	return cmd
}

// newChecker builds a checker from the loaded configuration.
func newChecker(cfg *config.Config) (*checker.Checker, error) {
	logger := slog.New(slog.DiscardHandler)
	if cfg.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	targets := cfg.Targets
	if len(targets) == 0 {
		targets = defaultTargets(cfg.SourceDialect)
	}
	return checker.New(checker.Config{
		SourceDialect: cfg.SourceDialect,
		Targets:       targets,
		RewritesFile:  cfg.RewritesFile,
		Workers:       cfg.Workers,
		Logger:        logger,
	})
}

// defaultTargets is every registered dialect except the source itself.
func defaultTargets(source string) []string {
	var targets []string
	for _, name := range dialect.List() {
		if name != source {
			targets = append(targets, name)
		}
	}
	return targets
}

func runCheck(ctx context.Context, c *checker.Checker, r *output.Renderer, paths []string) (int, error) {
	files, err := checker.CollectSQLFiles(paths)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, errNoInputs
	}

	reports := c.CheckPaths(ctx, files)
	if err := renderCheckReports(r, reports); err != nil {
		return 0, err
	}
	return checker.CombinedExitCode(reports), nil
}

// watchAndCheck re-runs the check whenever a watched file changes. The
// initial run happens immediately; the loop ends with the context.
func watchAndCheck(ctx context.Context, c *checker.Checker, r *output.Renderer, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch directories rather than files so editors that replace files
	// on save keep triggering events.
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		dir := path
		if !info.IsDir() {
			dir = filepath.Dir(path)
		}
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	if _, err := runCheck(ctx, c, r, paths); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			r.Println("")
			r.Println(r.Styles().Muted.Render("[watch] " + event.Name + " changed, re-checking"))
			if _, err := runCheck(ctx, c, r, paths); err != nil {
				r.Warnf("check failed: %v\n", err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.Warnf("watch error: %v\n", werr)
		}
	}
}
