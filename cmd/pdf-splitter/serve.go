package main

import (
	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/Epistemic-Technology/pdf-splitter/server"
)

func serveCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the drop-zone page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			gin.SetMode(gin.ReleaseMode)
			router := server.NewRouter(a.splitter, a.cfg, a.log)
			a.log.Info("pdf-splitter is listening on %s", a.cfg.Server.Addr)
			return router.Run(a.cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")
	return cmd
}

func mcpCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run as an MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			a.log.Info("Starting pdf-splitter MCP server")
			srv := server.CreateServer(a.splitter, a.cfg, a.log)
			return srv.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
