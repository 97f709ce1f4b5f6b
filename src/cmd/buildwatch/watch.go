package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"buildwatch/src/adapter"
	"buildwatch/src/azure"
	"buildwatch/src/broker"
	"buildwatch/src/cache"
	"buildwatch/src/config"
	"buildwatch/src/contracts"
	"buildwatch/src/logger"
	"buildwatch/src/provider"
	"buildwatch/src/store"
	"buildwatch/src/tui"
)

var (
	watchDetach   bool
	watchInterval time.Duration
	watchBrokers  string
	watchPostgres string
)

// watchCmd streams build status for the configured project.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch build status for the configured project",
	Long: `Watch polls the configured Azure DevOps project and displays running and
finished builds. By default it opens the interactive monitor; with --detach it
prints one line per observed build and can publish records to a broker
(--brokers) and record history to Postgres (--postgres).`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchDetach, "detach", false, "non-interactive mode, print builds to stdout")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 10*time.Second, "poll interval")
	watchCmd.Flags().StringVar(&watchBrokers, "brokers", "", "comma-separated Redpanda/Kafka brokers to publish build events to (detach mode)")
	watchCmd.Flags().StringVar(&watchPostgres, "postgres", "", "Postgres DSN for recording build history (detach mode)")
	rootCmd.AddCommand(watchCmd)
}

// newAdapter builds and initializes an adapter from the environment.
func newAdapter(log logger.Logger) (*adapter.Adapter, string, error) {
	a := adapter.New(cache.New(), log, func(s config.Settings) provider.QueryService {
		return azure.NewService(s.CollectionURL, s.AccessToken)
	})
	if err := a.Initialize(config.NewEnvSource()); err != nil {
		return nil, "", err
	}

	key, err := a.UniqueKey()
	if err != nil {
		return nil, "", err
	}
	return a, key, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !config.NewEnvSource().IsUsable() {
		return fmt.Errorf("configuration not usable: set %s and %s", config.EnvCollectionURL, config.EnvAccessToken)
	}

	if watchDetach {
		return runWatchDetached()
	}
	return runWatchTUI()
}

func runWatchTUI() error {
	// Silent logger: log output would corrupt the TUI.
	a, key, err := newAdapter(logger.NewSilentLogger())
	if err != nil {
		return err
	}
	defer a.Dispose()

	return tui.Start(a, key)
}

func runWatchDetached() error {
	log := logger.NewConsoleLogger()
	a, key, err := newAdapter(log)
	if err != nil {
		return err
	}
	defer a.Dispose()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var events broker.Broker
	if watchBrokers != "" {
		events, err = broker.NewRedpandaBroker(strings.Split(watchBrokers, ","), log)
		if err != nil {
			return err
		}
		defer events.Close()
	}

	var history store.Store
	if watchPostgres != "" {
		pg, err := store.NewPostgresStore(watchPostgres)
		if err != nil {
			return err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return err
		}
		history = pg
		defer history.Close()
	}

	log.Info("watching %s every %s", key, watchInterval)

	// The adapter swallows the first finished-builds call; issue it eagerly
	// with the startup baseline so later polls only report news.
	baseline := time.Now()
	drainStream(ctx, log, key, events, history, a.FinishedBuildsSince(ctx, &baseline), contracts.TopicBuildsFinished)

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	lastPoll := baseline
	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return nil
		case <-ticker.C:
			since := lastPoll
			lastPoll = time.Now()
			drainStream(ctx, log, key, events, history, a.RunningBuilds(ctx), contracts.TopicBuildsRunning)
			drainStream(ctx, log, key, events, history, a.FinishedBuildsSince(ctx, &since), contracts.TopicBuildsFinished)
		}
	}
}

// drainStream consumes one build stream, printing every record and forwarding
// it to the configured sinks.
func drainStream(ctx context.Context, log logger.Logger, key string, events broker.Broker, history store.Store, ch <-chan adapter.Event, topic string) {
	for ev := range ch {
		if ev.Err != nil {
			log.Error("stream error: %v", provider.WrapError(ev.Err))
			continue
		}

		record := toRecord(key, ev.Build)
		log.Info("%s %s %s", record.Status, record.Description, record.URL)

		if events != nil {
			payload, err := json.Marshal(record)
			if err != nil {
				log.Error("marshal build %s: %v", record.BuildID, err)
				continue
			}
			if err := events.Publish(ctx, topic, record.BuildID, payload); err != nil {
				log.Error("publish build %s: %v", record.BuildID, err)
			}
		}
		if history != nil {
			if err := history.RecordBuild(ctx, record); err != nil {
				log.Error("record build %s: %v", record.BuildID, err)
			}
		}
	}
}

func toRecord(key string, b provider.BuildInfo) *contracts.BuildRecord {
	return &contracts.BuildRecord{
		AdapterKey:  key,
		BuildID:     b.ID,
		Start:       b.Start,
		Status:      b.Status.String(),
		Description: b.Description,
		Commits:     b.Commits,
		URL:         b.URL,
		EmittedAt:   time.Now(),
	}
}
