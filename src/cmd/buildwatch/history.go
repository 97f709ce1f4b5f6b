package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"buildwatch/src/config"
	"buildwatch/src/store"
)

var (
	historyPostgres string
	historyLimit    int
)

// historyCmd prints recorded builds from the history store.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded builds for the configured project",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyPostgres, "postgres", "", "Postgres DSN holding build history (required)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "max builds to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyPostgres == "" {
		return fmt.Errorf("--postgres is required")
	}

	settings, err := config.NewEnvSource().Resolve()
	if err != nil || settings.CollectionURL == "" {
		return fmt.Errorf("set %s to select the project", config.EnvCollectionURL)
	}

	pg, err := store.NewPostgresStore(historyPostgres)
	if err != nil {
		return err
	}
	defer pg.Close()

	records, err := pg.RecentBuilds(context.Background(), settings.CollectionURL, historyLimit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("no builds recorded")
		return nil
	}

	w := os.Stdout
	for _, r := range records {
		rev := ""
		if len(r.Commits) > 0 {
			rev = r.Commits[0]
		}
		fmt.Fprintf(w, "%-12s %-20s %-10s %s\n", r.Status, r.Description, rev, r.URL)
	}
	return nil
}
