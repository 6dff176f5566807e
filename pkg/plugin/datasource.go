// Package plugin implements the GA4 Grafana datasource plugin.
// It provides functionality to query Google Analytics 4 report data and
// integrate it with Grafana.
package plugin

import (
	"context"
	"fmt"

	"ga4-grafana-plugin/pkg/analyticsiface"
	"ga4-grafana-plugin/pkg/client"
	"ga4-grafana-plugin/pkg/handler"
	"ga4-grafana-plugin/pkg/health"
	"ga4-grafana-plugin/pkg/models"
	"ga4-grafana-plugin/pkg/ratelimit"
	"ga4-grafana-plugin/pkg/validator"

	"github.com/grafana/grafana-plugin-sdk-go/backend"
	"github.com/grafana/grafana-plugin-sdk-go/backend/instancemgmt"
	"github.com/grafana/grafana-plugin-sdk-go/backend/log"
)

var (
	_ backend.QueryDataHandler      = (*Datasource)(nil)
	_ backend.CheckHealthHandler    = (*Datasource)(nil)
	_ instancemgmt.InstanceDisposer = (*Datasource)(nil)
)

// The Data API grants roughly 10 concurrent requests per property; the
// limiter keeps dashboard refreshes with many panels under that.
const (
	requestsPerSecond = 5
	requestBurst      = 10
)

// Datasource implements the GA4 Grafana datasource plugin.
// It handles data queries, health checks, and resource management.
type Datasource struct {
	limiter *ratelimit.RateLimiter
}

// NewDatasource creates a new instance of the GA4 datasource.
// It is called by the Grafana plugin SDK when a new datasource instance is needed.
func NewDatasource(ctx context.Context, settings backend.DataSourceInstanceSettings) (instancemgmt.Instance, error) {
	return &Datasource{
		limiter: ratelimit.NewRateLimiter(requestsPerSecond, requestBurst),
	}, nil
}

// Dispose cleans up resources when a datasource instance is no longer needed.
// It is called by the Grafana plugin SDK when a datasource instance is being disposed.
func (d *Datasource) Dispose() {
	log.DefaultLogger.Debug("GA4 Datasource instance disposed")
}

// QueryData handles incoming data queries from Grafana.
// It processes multiple queries in parallel and returns the results.
func (d *Datasource) QueryData(ctx context.Context, req *backend.QueryDataRequest) (*backend.QueryDataResponse, error) {
	logger := log.DefaultLogger.FromContext(ctx)
	response := backend.NewQueryDataResponse()

	config, err := models.LoadPluginSettings(*req.PluginContext.DataSourceInstanceSettings)
	if err != nil {
		logger.Error("Failed to load plugin settings", "error", err, "datasourceID", req.PluginContext.DataSourceInstanceSettings.ID)
		return nil, fmt.Errorf("failed to load plugin settings: %w", err)
	}

	if err := validator.ValidatePluginSettings(config); err != nil {
		logger.Error("Invalid plugin configuration", "error", err, "datasourceID", req.PluginContext.DataSourceInstanceSettings.ID)
		return nil, fmt.Errorf("invalid plugin configuration: %w", err)
	}

	gaClient, err := client.CreateAnalyticsClient(ctx, config, &client.DefaultAnalyticsClientFactory{})
	if err != nil {
		logger.Error("Failed to create Analytics client", "error", err, "datasourceID", req.PluginContext.DataSourceInstanceSettings.ID)
		return nil, fmt.Errorf("failed to create Analytics client: %w", err)
	}
	defer gaClient.Close()

	// Create the runner wrapper for the real client
	runner := &analyticsiface.RealReportRunner{
		Client:      gaClient,
		CallTimeout: client.DefaultConfig().CallTimeout,
	}

	// Process queries concurrently using a worker pool
	queryResults := make(chan struct {
		refID string
		res   backend.DataResponse
	}, len(req.Queries))

	for _, q := range req.Queries {
		go func(query backend.DataQuery) {
			res := handler.HandleQuery(ctx, runner, config, query, d.limiter)
			queryResults <- struct {
				refID string
				res   backend.DataResponse
			}{query.RefID, *res}
		}(q)
	}

	// Collect results
	for i := 0; i < len(req.Queries); i++ {
		result := <-queryResults
		response.Responses[result.refID] = result.res
	}

	return response, nil
}

// CheckHealth performs a health check of the datasource.
// It validates the configuration and tests the connection to the Analytics
// Data API.
func (d *Datasource) CheckHealth(ctx context.Context, req *backend.CheckHealthRequest) (*backend.CheckHealthResult, error) {
	log.DefaultLogger.Debug("Datasource.CheckHealth: Initiating health check routing")

	healthResult, err := health.ExecuteHealthCheck(ctx, *req.PluginContext.DataSourceInstanceSettings)
	if err != nil {
		log.DefaultLogger.Error("Datasource.CheckHealth: Health check failed internally", "error", err)
		return &backend.CheckHealthResult{
			Status:  backend.HealthStatusError,
			Message: fmt.Sprintf("Health check encountered an internal error: %s", err.Error()),
		}, nil
	}

	return healthResult, nil
}
