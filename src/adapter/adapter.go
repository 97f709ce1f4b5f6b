// Package adapter implements the build-status adapter core: one-time
// initialization against a configuration source, a shared definition-metadata
// cache, and cancellable channel streams of normalized build records.
package adapter

import (
	"context"
	"sync"

	"buildwatch/src/cache"
	"buildwatch/src/config"
	"buildwatch/src/logger"
	"buildwatch/src/provider"
)

// Source is the host-side configuration source the adapter initializes from.
// Variable substitution in the endpoint happens inside Resolve, before the
// adapter sees the settings.
type Source interface {
	IsUsable() bool
	Resolve() (config.Settings, error)
}

// ServiceFactory builds the query service for resolved settings. Injected so
// tests can substitute a fake backend.
type ServiceFactory func(config.Settings) provider.QueryService

// prefetchResult carries the outcome of the asynchronous definition prefetch
// started during initialization.
type prefetchResult struct {
	metadata string
	err      error
}

// Adapter polls a remote build service for one configured project and emits
// normalized build records. Construct with New, call Initialize exactly once,
// then request streams. Not safe for concurrent stream invocations on the
// same instance; each invocation is a single logical stream.
type Adapter struct {
	log     logger.Logger
	cache   *cache.DefinitionCache
	factory ServiceFactory

	mu          sync.Mutex
	initialized bool
	inert       bool
	disposed    bool
	settings    config.Settings
	service     provider.QueryService
	key         string

	metadata    string
	resolved    bool
	pending     <-chan prefetchResult
	prefetchErr error

	// The host invokes the finished-builds stream once eagerly at setup
	// with a baseline timestamp; replaying that call's results would
	// duplicate history the host already has, so the first invocation is
	// swallowed. Explicit flag, not call counting.
	firstFinishedDone bool
}

// New creates an adapter sharing defs across instances. factory builds the
// concrete query service once settings are resolved.
func New(defs *cache.DefinitionCache, log logger.Logger, factory ServiceFactory) *Adapter {
	return &Adapter{
		log:     log,
		cache:   defs,
		factory: factory,
	}
}

// Initialize resolves configuration and prepares the adapter. It may be
// called at most once; a second call fails with ErrAlreadyInitialized.
//
// Unusable configuration (malformed endpoint, missing credential) is not an
// error: the adapter becomes permanently inert and every later stream
// completes with zero emissions. Usable configuration constructs the query
// client and either copies definition metadata from the shared cache or
// starts an asynchronous prefetch that the first stream will await.
func (a *Adapter) Initialize(src Source) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return provider.ErrAlreadyInitialized
	}
	a.initialized = true

	settings, err := src.Resolve()
	if err != nil || !src.IsUsable() || !settings.IsUsable() {
		a.inert = true
		a.log.Debug("adapter inert: configuration not usable")
		return nil
	}

	a.settings = settings
	a.service = a.factory(settings)
	a.key = cache.Key(settings.CollectionURL, settings.DefinitionFilter)

	if metadata, ok := a.cache.Get(a.key); ok {
		a.metadata = metadata
		a.resolved = true
		a.log.Debug("definition metadata reused from cache for %s", a.key)
		return nil
	}

	a.cache.Clear()
	a.pending = a.startPrefetch()
	return nil
}

// startPrefetch resolves definition metadata in the background. The result
// channel is buffered so the goroutine never blocks if no stream ever awaits
// it. Runs on a background context: cancelling one stream must not poison the
// prefetch for later streams.
func (a *Adapter) startPrefetch() <-chan prefetchResult {
	out := make(chan prefetchResult, 1)
	service := a.service
	filter := a.settings.DefinitionFilter

	go func() {
		metadata, err := service.ResolveDefinitions(context.Background(), filter)
		out <- prefetchResult{metadata: metadata, err: err}
	}()

	return out
}

// UniqueKey returns the configured endpoint identity. It fails with
// ErrNotInitialized before Initialize has run.
func (a *Adapter) UniqueKey() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return "", provider.ErrNotInitialized
	}
	return a.settings.CollectionURL, nil
}

// Dispose releases the query client. Idempotent.
func (a *Adapter) Dispose() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.disposed {
		return nil
	}
	a.disposed = true

	if a.service != nil {
		return a.service.Close()
	}
	return nil
}
