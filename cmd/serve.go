package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/grdfind/internal/server"
	"github.com/oakwood-commons/grdfind/pkg/logger"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Share the catalog over HTTP",
		Long: `Serves the catalog so other grdfind instances can load it by URL.

Routes:
  GET /items.json              the catalog as JSON
  GET /healthz                 liveness and item count
  GET /api/v1/search?q=&limit= matches for q, capped by limit`,
		Example: "\n  grdfind serve --catalog items.json\n  grdfind http://localhost:8000/items.json\n",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") && a.cfg.Serve.Addr != "" {
				addr = a.cfg.Serve.Addr
			}
			c, err := a.loadCatalog(cmd.Context(), a.catalogSource(nil))
			if err != nil {
				return err
			}
			srv := server.New(c, a.cfg.Search.MaxSuggestions, *logger.FromContext(cmd.Context()))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address (default from config)")
	return cmd
}
