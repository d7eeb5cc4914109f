// Package tsproject implements the project loader: it locates the
// workspace's tsconfig.json, walks the workspace root, and exposes the set
// of source files matching the configured glob patterns.
package tsproject

import (
	"os"
	"path/filepath"
)

// LogFunc is a minimal leveled logger; nil suppresses all output.
type LogFunc func(level, format string, args ...any)

func (f LogFunc) log(level, format string, args ...any) {
	if f != nil {
		f(level, format, args...)
	}
}

// Options configures Load.
type Options struct {
	// TSConfigPath overrides the default "<root>/tsconfig.json" lookup.
	TSConfigPath string
	// Include, if non-empty, replaces the caller-supplied default pattern
	// set entirely.
	Include []string
	// Required, when true, makes a missing tsconfig.json fatal to loading
	// (an empty Project is returned; the caller's parser then reports zero
	// routes).
	Required bool
	Logger   LogFunc
}

// Project is the loaded, filtered source-file set for one workspace.
type Project struct {
	RootDir string
	Files   []string // absolute paths, workspace-relative order not guaranteed by the walk
}

// Load locates the workspace's tsconfig.json (if required), then adds every
// file under rootDir matching each of patterns. Per-pattern failures are
// logged and skipped; the workspace is never scanned outside rootDir.
func Load(rootDir string, patterns []string, opts Options) (*Project, error) {
	tsconfigPath := opts.TSConfigPath
	if tsconfigPath == "" {
		tsconfigPath = filepath.Join(rootDir, "tsconfig.json")
	}

	if _, err := os.Stat(tsconfigPath); err != nil {
		if opts.Required {
			opts.Logger.log("warn", "no tsconfig.json found at %s; skipping", tsconfigPath)
			return &Project{RootDir: rootDir}, nil
		}
	} else if _, err := readTSConfig(tsconfigPath); err != nil {
		opts.Logger.log("warn", "malformed tsconfig.json at %s: %v", tsconfigPath, err)
	}

	if len(opts.Include) > 0 {
		patterns = opts.Include
	}

	seen := map[string]bool{}
	var files []string

	for _, pattern := range patterns {
		matched, err := collectMatches(rootDir, pattern, opts.Logger)
		if err != nil {
			opts.Logger.log("debug", "pattern %q failed: %v", pattern, err)
			continue
		}
		for _, m := range matched {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	return &Project{RootDir: rootDir, Files: files}, nil
}

// collectMatches walks rootDir and returns every file whose path relative
// to rootDir matches pattern.
func collectMatches(rootDir, pattern string, logger LogFunc) ([]string, error) {
	var out []string
	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.log("debug", "walk error at %s: %v", path, err)
			return nil
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return nil
		}
		if MatchGlob(pattern, rel) {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}
