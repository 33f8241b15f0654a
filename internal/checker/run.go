package checker

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sqlport-dev/sqlport/pkg/compat"
)

// FileReport pairs one input file with its check outcome. Err is set when
// the file could not be read; a file full of broken SQL still gets a Report.
type FileReport struct {
	Path   string
	Report *compat.Report
	Err    error
}

// CheckPaths checks each path independently and returns one FileReport per
// path in order. A failing file never aborts the rest of the run.
func (c *Checker) CheckPaths(ctx context.Context, paths []string) []FileReport {
	out := make([]FileReport, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			out = append(out, FileReport{Path: path, Err: err})
			continue
		}
		report, err := c.CheckFile(ctx, path)
		if err != nil {
			c.logger.Warn("skipping file", "path", path, "error", err)
		}
		out = append(out, FileReport{Path: path, Report: report, Err: err})
	}
	return out
}

// CombinedExitCode folds per-file outcomes into one process exit code.
// Unreadable files count as failed inputs, like parse failures.
func CombinedExitCode(reports []FileReport) int {
	code := compat.ExitOK
	for _, fr := range reports {
		fc := compat.ExitParseFailed
		if fr.Err == nil {
			fc = fr.Report.ExitCode()
		}
		if fc > code {
			code = fc
		}
	}
	return code
}

// CollectSQLFiles expands a path list into the SQL files to check: files
// pass through, directories contribute their *.sql files recursively, in
// sorted order.
func CollectSQLFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			// Let the per-file check report the unreadable path.
			files = append(files, path)
			continue
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		var dirFiles []string
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".sql") {
				dirFiles = append(dirFiles, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(dirFiles)
		files = append(files, dirFiles...)
	}
	return files, nil
}
