// Package client handles creation of Google Analytics Data API clients.
// A factory interface abstracts the concrete constructor so that tests can
// inject fakes without reaching the Google API.
package client

import (
	"context"
	"fmt"
	"time"

	analyticsdata "cloud.google.com/go/analytics/data/apiv1beta"
	"google.golang.org/api/option"

	"ga4-grafana-plugin/pkg/models"
)

// ClientConfig holds configuration options for the Analytics Data client
type ClientConfig struct {
	CredentialsPath string // Service account JSON file on disk, wins over inline JSON
	CredentialsJSON string // Service account key pasted into secure settings
	UserAgent       string
	CallTimeout     time.Duration // Per-report deadline; report generation can be slow on large properties
}

// DefaultConfig returns a ClientConfig with sensible defaults
func DefaultConfig() ClientConfig {
	return ClientConfig{
		UserAgent:   "ga4-grafana-plugin",
		CallTimeout: 2 * time.Hour,
	}
}

// AnalyticsClientError represents an error specifically related to Analytics client operations.
type AnalyticsClientError struct {
	Msg string
	Err error
}

func (e *AnalyticsClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("analytics client error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("analytics client error: %s", e.Msg)
}

func (e *AnalyticsClientError) Unwrap() error {
	return e.Err
}

// AnalyticsClientFactory defines an interface for creating Analytics Data clients.
type AnalyticsClientFactory interface {
	CreateClient(ctx context.Context, config ClientConfig) (*analyticsdata.BetaClient, error)
}

// DefaultAnalyticsClientFactory is the concrete implementation that uses the
// actual analyticsdata.NewBetaClient constructor.
type DefaultAnalyticsClientFactory struct{}

// CreateClient implements the AnalyticsClientFactory interface using the real
// Data API constructor. When neither a credentials file nor inline JSON is
// configured the client resolves Application Default Credentials from the
// environment (GOOGLE_APPLICATION_CREDENTIALS).
func (f *DefaultAnalyticsClientFactory) CreateClient(ctx context.Context, config ClientConfig) (*analyticsdata.BetaClient, error) {
	opts := []option.ClientOption{
		option.WithUserAgent(config.UserAgent),
	}
	switch {
	case config.CredentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(config.CredentialsPath))
	case config.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(config.CredentialsJSON)))
	}

	c, err := analyticsdata.NewBetaClient(ctx, opts...)
	if err != nil {
		return nil, &AnalyticsClientError{Msg: "failed to initialize Analytics Data client", Err: err}
	}
	return c, nil
}

// CreateAnalyticsClient initializes and returns an Analytics Data client from
// the plugin settings using an AnalyticsClientFactory.
func CreateAnalyticsClient(ctx context.Context, settings *models.PluginSettings, factory AnalyticsClientFactory) (*analyticsdata.BetaClient, error) {
	if settings == nil {
		return nil, &AnalyticsClientError{Msg: "plugin settings cannot be nil"}
	}

	config := DefaultConfig()
	config.CredentialsPath = settings.CredentialsPath
	if settings.Secrets != nil {
		config.CredentialsJSON = settings.Secrets.ServiceAccountJSON
	}
	return factory.CreateClient(ctx, config)
}
