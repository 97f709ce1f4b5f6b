package azure

import (
	"context"
	"time"

	"buildwatch/src/provider"
	"buildwatch/src/status"
)

// Service adapts Client to the provider.QueryService interface consumed by
// the adapter core. Definition metadata is the comma-separated list of
// matching definition IDs.
type Service struct {
	client *Client
}

// NewService creates a query service for one project collection.
func NewService(collectionURL, accessToken string) *Service {
	return &Service{client: NewClient(collectionURL, accessToken)}
}

// ResolveDefinitions enumerates matching build definitions and returns their
// IDs as an opaque comma-separated blob. An empty blob means nothing matched.
func (s *Service) ResolveDefinitions(ctx context.Context, filter string) (string, error) {
	defs, err := s.client.ListDefinitions(ctx, filter)
	if err != nil {
		return "", err
	}
	return JoinDefinitionIDs(defs), nil
}

// QueryBuilds fetches builds for previously resolved definitions. The
// tri-state running filter maps onto the API's statusFilter parameter:
// true selects in-progress builds, false completed ones, nil both.
func (s *Service) QueryBuilds(ctx context.Context, metadata string, since *time.Time, running *bool) ([]provider.RawBuild, error) {
	statusFilter := ""
	if running != nil {
		if *running {
			statusFilter = status.RawInProgress
		} else {
			statusFilter = status.RawCompleted
		}
	}

	builds, err := s.client.ListBuilds(ctx, metadata, since, statusFilter)
	if err != nil {
		return nil, err
	}

	raws := make([]provider.RawBuild, 0, len(builds))
	for _, b := range builds {
		raws = append(raws, provider.RawBuild{
			BuildNumber:   b.BuildNumber,
			Status:        b.Status,
			Result:        b.Result,
			StartTime:     b.StartTime,
			FinishTime:    b.FinishTime,
			SourceVersion: b.SourceVersion,
			WebURL:        b.Links.Web.Href,
		})
	}
	return raws, nil
}

// Close releases the underlying HTTP client. Idempotent.
func (s *Service) Close() error {
	s.client.httpClient.CloseIdleConnections()
	return nil
}
