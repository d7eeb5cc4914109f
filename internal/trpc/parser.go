// Package trpc implements the tRPC router parser: it locates router-factory
// call sites, walks each router's object-literal argument to classify
// nested mounts vs. procedure definitions, and resolves the full mount-edge
// graph into dotted router paths.
package trpc

import (
	"github.com/routecat/routecat/internal/routes"
	"github.com/routecat/routecat/internal/schema"
	"github.com/routecat/routecat/internal/tsfile"
)

// Parser extracts routers, procedures and mount edges from tRPC router
// files. Call ParseFile once per file, then Resolve once over the
// accumulated totals.
type Parser struct {
	Opts Options
}

// New creates a tRPC router parser.
func New(opts Options) *Parser {
	return &Parser{Opts: opts}
}

// ParseFile parses one file for router-factory call sites. Router and
// procedure fields that need cross-file information (dotted paths) are left
// in normalized router-name form; call Resolve once every file has been
// parsed.
func (p *Parser) ParseFile(relPath string, content []byte) ([]routes.TrpcRouter, []routes.TrpcProcedure, []routes.RouterMountEdge, error) {
	p.Opts.Logger.log("debug", "Scanning file %s for tRPC routers", relPath)

	f, err := tsfile.Parse(relPath, content)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	w := &walker{
		opts:    p.Opts,
		f:       f,
		relPath: relPath,
		interp:  schema.New(f),
	}
	w.walkTopLevel()

	return w.routers, w.procs, w.edges, nil
}
