package engine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Walk traverses the tree under cfg.Root and invokes handle for each
// eligible file path.
func Walk(ctx context.Context, cfg Config, handle func(path string)) error {
	info, err := os.Stat(cfg.Root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		handle(cfg.Root)
		return nil
	}

	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		if fi, _ := d.Info(); fi != nil && fi.Size() > cfg.MaxBytes {
			return nil
		}
		if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel)) {
			return nil
		}
		if looksBinary(p) {
			return nil
		}
		handle(p)
		return nil
	})
}

// allowedByGlobs applies comma-separated include/exclude doublestar
// patterns against the root-relative path. An empty include list allows
// everything.
func allowedByGlobs(rel string, cfg Config) bool {
	rel = filepath.ToSlash(rel)
	if cfg.IncludeGlobs != "" {
		matched := false
		for _, g := range splitGlobs(cfg.IncludeGlobs) {
			if ok, err := doublestar.Match(g, rel); err == nil && ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, g := range splitGlobs(cfg.ExcludeGlobs) {
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			return false
		}
	}
	return true
}

func splitGlobs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// looksBinary sniffs a small prefix for NUL bytes.
func looksBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, 800)
	n, _ := f.Read(buf)
	for i := 0; i < n; i++ {
		if buf[i] == 0 {
			return true
		}
	}
	return false
}
