// Package extract ties the project loader, both Next.js parsers and the
// tRPC parser together into a single-call pipeline: load the project's
// file set, run each parser over its slice of it, resolve the tRPC router
// graph, and normalize everything into the public Route list.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/routecat/routecat/internal/nextapp"
	"github.com/routecat/routecat/internal/nextpages"
	"github.com/routecat/routecat/internal/routes"
	"github.com/routecat/routecat/internal/trpc"
	"github.com/routecat/routecat/internal/tsproject"
)

// DefaultAppPatterns match Next.js App-Router handler files.
var DefaultAppPatterns = []string{"app/**/route.ts", "app/**/route.js"}

// DefaultPagesPatterns match Next.js Pages-Router API files.
var DefaultPagesPatterns = []string{"pages/api/**/*.ts", "pages/api/**/*.js"}

// DefaultTrpcPatterns scan every source file for router-factory calls; a
// router factory can be declared anywhere in the project, unlike the
// Next.js parsers whose file location is itself part of the convention.
var DefaultTrpcPatterns = []string{"**/*.ts", "**/*.tsx"}

// LogFunc is a minimal leveled logger; nil suppresses debug/info output and
// routes warn/error to stderr.
type LogFunc func(level, format string, args ...any)

func (f LogFunc) log(level, format string, args ...any) {
	if f != nil {
		f(level, format, args...)
		return
	}
	if level == "warn" || level == "error" {
		fmt.Fprintf(os.Stderr, "["+level+"] "+format+"\n", args...)
	}
}

// Options configures a single Extract call: a unified options bag covering
// all three parsers.
type Options struct {
	TSConfigPath string
	Include      []string // overrides every default pattern set when non-empty
	Required     bool     // tsconfig.json presence is mandatory

	RouterFactories         []string
	RouterIdentifierPattern *regexp.Regexp

	Logger LogFunc
}

// Result is the parse-result aggregate: the merged public route list, plus
// the tRPC-specific per-procedure and per-router node lists.
type Result struct {
	Routes      []routes.Route
	TrpcProcs   []routes.TrpcProcedure
	TrpcRouters []routes.TrpcRouter
}

// Extract runs all three parsers over root and returns the merged route
// catalogue plus the tRPC aggregate. With opts.Required set, a missing
// tsconfig.json yields an empty result with a warn-level log line; a
// malformed one is logged at warn level and scanning continues. Neither is
// returned as an error; only a caller contract violation (a non-existent
// root) is.
func Extract(root string, opts Options) (Result, error) {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("extract: workspace root %s: %w", root, err)
	}

	norm := routes.Normalizer{WorkspaceRoot: root}
	var out Result

	appFiles, err := loadFiles(root, DefaultAppPatterns, opts)
	if err != nil {
		return Result{}, err
	}
	appParser := nextapp.New(nextapp.LogFunc(opts.Logger))
	opts.Logger.log("info", "Parsing nextjs-app routes with AST")
	for _, path := range appFiles {
		rel, content, ok := readRelative(root, path, opts.Logger)
		if !ok {
			continue
		}
		recs, err := appParser.ParseFile(rel, content)
		if err != nil {
			opts.Logger.log("debug", "skipping %s: %v", rel, err)
			continue
		}
		for _, rec := range recs {
			out.Routes = append(out.Routes, norm.NormalizeNextHandler(rec, routes.TypeNextApp))
		}
	}
	opts.Logger.log("info", "Parsed %d nextjs-app routes", len(out.Routes))

	pagesFiles, err := loadFiles(root, DefaultPagesPatterns, opts)
	if err != nil {
		return Result{}, err
	}
	pagesParser := nextpages.New(nextpages.LogFunc(opts.Logger))
	pagesStart := len(out.Routes)
	opts.Logger.log("info", "Parsing nextjs-page routes with AST")
	for _, path := range pagesFiles {
		rel, content, ok := readRelative(root, path, opts.Logger)
		if !ok {
			continue
		}
		recs, err := pagesParser.ParseFile(rel, content)
		if err != nil {
			opts.Logger.log("debug", "skipping %s: %v", rel, err)
			continue
		}
		for _, rec := range recs {
			out.Routes = append(out.Routes, norm.NormalizeNextHandler(rec, routes.TypeNextPage))
		}
	}
	opts.Logger.log("info", "Parsed %d nextjs-page routes", len(out.Routes)-pagesStart)

	trpcRouters, trpcProcs, err := extractTrpc(root, opts)
	if err != nil {
		return Result{}, err
	}
	out.TrpcRouters = trpcRouters
	out.TrpcProcs = trpcProcs
	for _, p := range trpcProcs {
		r := routes.NormalizeTrpcProcedure(p)
		r.FilePath = norm.AbsPath(r.FilePath)
		out.Routes = append(out.Routes, r)
	}
	opts.Logger.log("info", "Parsed %d trpc routes", len(trpcProcs))

	return out, nil
}

// ExtractTrpc runs only the tRPC parser and composition resolver, backing
// `routecat trpc`.
func ExtractTrpc(root string, opts Options) (Result, error) {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("extract: workspace root %s: %w", root, err)
	}
	routersMeta, procs, err := extractTrpc(root, opts)
	if err != nil {
		return Result{}, err
	}
	norm := routes.Normalizer{WorkspaceRoot: root}
	out := Result{TrpcRouters: routersMeta, TrpcProcs: procs}
	for _, p := range procs {
		r := routes.NormalizeTrpcProcedure(p)
		r.FilePath = norm.AbsPath(r.FilePath)
		out.Routes = append(out.Routes, r)
	}
	return out, nil
}

func extractTrpc(root string, opts Options) ([]routes.TrpcRouter, []routes.TrpcProcedure, error) {
	files, err := loadFiles(root, DefaultTrpcPatterns, opts)
	if err != nil {
		return nil, nil, err
	}

	trpcOpts := trpc.Options{
		RouterFactories:         opts.RouterFactories,
		RouterIdentifierPattern: opts.RouterIdentifierPattern,
		Logger:                  trpc.LogFunc(opts.Logger),
	}
	parser := trpc.New(trpcOpts)

	var routersMeta []routes.TrpcRouter
	var procs []routes.TrpcProcedure
	var edges []routes.RouterMountEdge

	opts.Logger.log("info", "Parsing trpc routes with AST")
	for _, path := range files {
		rel, content, ok := readRelative(root, path, opts.Logger)
		if !ok {
			continue
		}
		fileRouters, fileProcs, fileEdges, err := parser.ParseFile(rel, content)
		if err != nil {
			opts.Logger.log("debug", "skipping %s: %v", rel, err)
			continue
		}
		routersMeta = append(routersMeta, fileRouters...)
		procs = append(procs, fileProcs...)
		edges = append(edges, fileEdges...)
	}

	resolvedRouters, resolvedProcs := trpc.Resolve(routersMeta, procs, edges)
	return resolvedRouters, resolvedProcs, nil
}

// loadFiles resolves patterns (or opts.Include, when set) against root
// through the project loader, returning workspace-relative-sorted absolute
// paths for deterministic emission order.
func loadFiles(root string, defaultPatterns []string, opts Options) ([]string, error) {
	proj, err := tsproject.Load(root, defaultPatterns, tsproject.Options{
		TSConfigPath: opts.TSConfigPath,
		Include:      opts.Include,
		Required:     opts.Required,
		Logger:       tsproject.LogFunc(opts.Logger),
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(proj.Files)
	return proj.Files, nil
}

func readRelative(root, absPath string, logger LogFunc) (string, []byte, bool) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		logger.log("debug", "read error at %s: %v", absPath, err)
		return "", nil, false
	}
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		rel = absPath
	}
	return filepath.ToSlash(rel), content, true
}
