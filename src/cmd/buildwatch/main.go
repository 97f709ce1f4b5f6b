// Package main provides the buildwatch CLI: a build-status watcher for
// Azure DevOps projects with an interactive monitor, an event/history plane
// and an MCP server over recorded builds.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "buildwatch",
	Short: "buildwatch - a CI build-status watcher for Azure DevOps",
	Long: `buildwatch polls an Azure DevOps project for build activity,
normalizes the server's status vocabulary into a stable set of outcomes and
streams the results to a terminal monitor, a message broker, or Postgres.

Configuration comes from the environment:
  AZURE_DEVOPS_URL                project collection URL
  AZURE_DEVOPS_TOKEN              personal access token (Build read scope)
  AZURE_DEVOPS_DEFINITION_FILTER  definition name pattern (default "*")`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
