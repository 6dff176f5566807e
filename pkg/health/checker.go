// Package health orchestrates the datasource health check: it loads the
// settings, builds a real Analytics client, and delegates the API-level check
// to the validator package.
package health

import (
	"context"
	"fmt"

	"github.com/grafana/grafana-plugin-sdk-go/backend"
	"github.com/grafana/grafana-plugin-sdk-go/backend/log"

	"ga4-grafana-plugin/pkg/analyticsiface"
	"ga4-grafana-plugin/pkg/client"
	"ga4-grafana-plugin/pkg/models"
	"ga4-grafana-plugin/pkg/validator"
)

// PerformHealthCheck performs a comprehensive health check for the GA4
// datasource. It validates plugin settings, initializes the Analytics Data
// client, and performs a test report request against the configured property.
func PerformHealthCheck(ctx context.Context, dsSettings backend.DataSourceInstanceSettings) (*backend.CheckHealthResult, error) {
	log.DefaultLogger.Debug("health.PerformHealthCheck: Starting health check")

	// Step 1: Load plugin settings from Grafana's request.
	config, err := models.LoadPluginSettings(dsSettings)
	if err != nil {
		log.DefaultLogger.Error("health.PerformHealthCheck: Failed to load plugin settings", "error", err)
		return &backend.CheckHealthResult{
			Status:  backend.HealthStatusError,
			Message: fmt.Sprintf("Failed to load datasource configuration: %s", err.Error()),
		}, nil
	}

	// Step 2: Attempt to create an Analytics Data client from the configured
	// credentials. This catches unreadable key files and malformed key JSON.
	gaClient, err := client.CreateAnalyticsClient(ctx, config, &client.DefaultAnalyticsClientFactory{})
	if err != nil {
		log.DefaultLogger.Error("health.PerformHealthCheck: Failed to create Analytics client", "error", err)
		return &backend.CheckHealthResult{
			Status:  backend.HealthStatusError,
			Message: fmt.Sprintf("Credentials invalid or Analytics client failed to initialize: %s", err.Error()),
		}, nil
	}
	defer gaClient.Close()

	// Step 3: Delegate the actual API connectivity check to the validator,
	// which runs a minimal report against the property.
	runner := &analyticsiface.RealReportRunner{Client: gaClient}
	healthResult, checkErr := validator.CheckHealth(ctx, config, runner)
	if checkErr != nil {
		log.DefaultLogger.Error("health.PerformHealthCheck: Unexpected error from validator.CheckHealth", "error", checkErr)
		return &backend.CheckHealthResult{
			Status:  backend.HealthStatusError,
			Message: fmt.Sprintf("Internal error during Analytics Data API check: %s", checkErr.Error()),
		}, nil
	}

	log.DefaultLogger.Debug("health.PerformHealthCheck: Health check completed", "status", healthResult.Status.String(), "message", healthResult.Message)
	return healthResult, nil
}

var ExecuteHealthCheck = func(ctx context.Context, dsSettings backend.DataSourceInstanceSettings) (*backend.CheckHealthResult, error) {
	// This variable is used to allow mocking in tests.
	return PerformHealthCheck(ctx, dsSettings)
}
