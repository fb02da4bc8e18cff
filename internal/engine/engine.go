// Package engine scans directory trees for sensitive content, applying
// the detection patterns to every eligible text file.
package engine

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/phantomsec/phantom/internal/cache"
	"github.com/phantomsec/phantom/internal/detect"
	"github.com/phantomsec/phantom/internal/types"
)

// Config controls scanning scope and performance.
type Config struct {
	Root            string
	IncludeGlobs    string // comma-separated doublestar globs
	ExcludeGlobs    string
	MaxBytes        int64
	Threads         int
	NoCache         bool
	CacheSize       int // entries, 0 = default
	DefaultExcludes bool
}

const previewBytes = 500

// FileReport is the scan outcome for a single file.
type FileReport struct {
	File           string          `json:"file"`
	Path           string          `json:"path"`
	Findings       []types.Finding `json:"findings"`
	TotalFindings  int             `json:"total_findings"`
	ContentPreview string          `json:"content_preview"`
	Err            string          `json:"error,omitempty"`
}

// Result aggregates a whole scan.
type Result struct {
	Reports       []FileReport `json:"reports"`
	FilesScanned  int          `json:"files_scanned"`
	TotalFindings int          `json:"total_findings"`
}

// Scan walks cfg.Root and runs detection over every eligible file using
// a small worker pool. Reports come back sorted by path.
func Scan(ctx context.Context, cfg Config) (Result, error) {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 1 << 20
	}
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	var memo *cache.Cache
	if !cfg.NoCache {
		memo = cache.New(cfg.CacheSize)
	}

	paths := make(chan string, threads*2)
	var (
		mu      sync.Mutex
		reports []FileReport
		wg      sync.WaitGroup
	)

	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range paths {
				report := scanFile(cfg.Root, p, memo)
				mu.Lock()
				reports = append(reports, report)
				mu.Unlock()
			}
		}()
	}

	walkErr := Walk(ctx, cfg, func(path string) {
		paths <- path
	})
	close(paths)
	wg.Wait()

	if walkErr != nil {
		return Result{}, walkErr
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })
	res := Result{Reports: reports, FilesScanned: len(reports)}
	for _, r := range reports {
		res.TotalFindings += r.TotalFindings
	}
	return res, nil
}

// ScanFile inspects a single file and returns its report.
func ScanFile(path string) FileReport {
	return scanFile(filepath.Dir(path), path, nil)
}

func scanFile(root, path string, memo *cache.Cache) FileReport {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		rel = filepath.Base(path)
	}
	report := FileReport{File: filepath.Base(path), Path: rel}

	b, err := os.ReadFile(path)
	if err != nil {
		report.Err = err.Error()
		return report
	}
	content := string(b)

	var findings []types.Finding
	if memo != nil {
		if cached, ok := memo.Get(content); ok {
			findings = cached
		} else {
			findings = detect.Scan(content)
			memo.Put(content, findings)
		}
	} else {
		findings = detect.Scan(content)
	}

	report.Findings = findings
	report.TotalFindings = len(findings)
	if len(content) > previewBytes {
		content = content[:previewBytes]
	}
	report.ContentPreview = content
	return report
}
