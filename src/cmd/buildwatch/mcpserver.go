package main

import (
	"github.com/spf13/cobra"

	"buildwatch/src/mcp"
	"buildwatch/src/store"
)

var mcpPostgres string

// mcpServerCmd runs the MCP server over recorded build history.
var mcpServerCmd = &cobra.Command{
	Use:   "mcp-server",
	Short: "Run the MCP server exposing recorded builds over stdio",
	Long: `Serves the recent_builds and build_status tools over stdio.
With --postgres the tools read the shared history database; without it an
empty in-memory store is used, which is only useful for protocol testing.`,
	RunE: runMCPServer,
}

func init() {
	mcpServerCmd.Flags().StringVar(&mcpPostgres, "postgres", "", "Postgres DSN holding build history")
	rootCmd.AddCommand(mcpServerCmd)
}

func runMCPServer(cmd *cobra.Command, args []string) error {
	var st store.Store
	if mcpPostgres != "" {
		pg, err := store.NewPostgresStore(mcpPostgres)
		if err != nil {
			return err
		}
		st = pg
	} else {
		st = store.NewMemoryStore()
	}
	defer st.Close()

	return mcp.NewServer(st).Run()
}
