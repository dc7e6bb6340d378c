package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lbartels/bionet/internal/server"
	"github.com/lbartels/bionet/pkg/bionet"
	"github.com/lbartels/bionet/pkg/session"
)

// serveCommand creates the serve command for running the HTTP viewer API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		watch    bool
		graphRef string
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the interaction network viewer over HTTP",
		Long: `Serve the interaction network viewer over HTTP.

Each browser session gets its own simulation engine identified by a cookie.
Clients poll GET /api/frame to step the simulation and use the remaining
endpoints to change thresholds, highlight categories, select nodes, and
drag. With --watch the source file is monitored and reloaded on change.

The network comes either from a source file or, with --graph, by name from
the graph store:
  bionet serve network.xml --watch
  bionet serve --graph string-network`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			if (input == "") == (graphRef == "") {
				return fmt.Errorf("provide either a source file or --graph, not both")
			}
			return c.runServe(cmd.Context(), input, graphRef, addr, watch)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the source file on change")
	cmd.Flags().StringVar(&graphRef, "graph", "", "serve a named network from the graph store")

	return cmd
}

// runServe loads the graph and serves it until the context is canceled.
func (c *CLI) runServe(ctx context.Context, input, graphRef, addr string, watch bool) error {
	var (
		g    *bionet.Graph
		name string
		err  error
	)
	if graphRef != "" {
		g, err = c.loadStoredGraph(ctx, graphRef)
		name = graphRef
	} else {
		g, err = bionet.ParseFile(input)
		name = filepath.Base(input)
	}
	if err != nil {
		return err
	}
	bionet.ComputeDegrees(g)
	c.Logger.Info("graph loaded", "name", name, "nodes", len(g.Nodes), "edges", len(g.Edges))

	if addr != "" {
		c.Config.Server.Addr = addr
	}

	sessions, err := c.newSessionStore(ctx)
	if err != nil {
		return err
	}

	srv := server.New(c.Config, c.Logger, sessions, g, name)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return srv.ListenAndServe(gctx)
	})
	if watch && input != "" {
		group.Go(func() error {
			return srv.Watch(gctx, input)
		})
	}

	err = group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadStoredGraph retrieves a named network from the graph store.
func (c *CLI) loadStoredGraph(ctx context.Context, name string) (*bionet.Graph, error) {
	s, err := c.newGraphStore(ctx)
	if err != nil {
		return nil, err
	}
	defer s.Close(ctx)
	return s.Load(ctx, name)
}

// newSessionStore builds the session backend named by the config.
func (c *CLI) newSessionStore(ctx context.Context) (session.Store, error) {
	switch c.Config.Server.SessionStore {
	case "redis":
		return session.NewRedisStore(ctx, c.Config.Redis)
	case "file":
		return session.NewFileStore("")
	default:
		return session.NewMemoryStore(), nil
	}
}

// graphName derives a store name from a source file path.
func graphName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
