// Package validator provides validation functions for plugin settings and
// health checks. It ensures that configuration parameters are valid and that
// the Analytics Data API connection is working properly before processing
// queries.
package validator

import (
	"context"
	"fmt"
	"strconv"

	"github.com/grafana/grafana-plugin-sdk-go/backend"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ga4-grafana-plugin/pkg/analyticsiface"
	"ga4-grafana-plugin/pkg/constant"
	"ga4-grafana-plugin/pkg/models"
	"ga4-grafana-plugin/pkg/report"
)

// ValidatePluginSettings validates the plugin settings
func ValidatePluginSettings(settings *models.PluginSettings) error {
	if settings == nil {
		return &models.PluginSettingsError{Msg: "plugin settings cannot be nil"}
	}

	if settings.PropertyID == "" {
		return &models.PluginSettingsError{Msg: "GA4 property ID cannot be empty"}
	}

	if _, err := strconv.ParseUint(settings.PropertyID, 10, 64); err != nil {
		return &models.PluginSettingsError{Msg: fmt.Sprintf("GA4 property ID %q must be numeric", settings.PropertyID), Err: err}
	}

	if settings.CredentialsPath != "" && settings.Secrets != nil && settings.Secrets.ServiceAccountJSON != "" {
		return &models.PluginSettingsError{Msg: "configure either a credentials file path or an inline service account key, not both"}
	}

	return nil
}

// CheckHealth checks the health of the Analytics Data API connection by
// running a minimal one-row report against the configured property.
func CheckHealth(ctx context.Context, settings *models.PluginSettings, runner analyticsiface.ReportRunner) (*backend.CheckHealthResult, error) {
	if runner == nil {
		return &backend.CheckHealthResult{
			Status:  backend.HealthStatusError,
			Message: "Report runner is not initialized for health check.",
		}, nil
	}

	// First, perform basic settings validation
	if err := ValidatePluginSettings(settings); err != nil {
		return &backend.CheckHealthResult{
			Status:  backend.HealthStatusError,
			Message: fmt.Sprintf("Plugin configuration validation failed: %s", err.Error()),
		}, nil
	}

	// A one-row activeUsers report over yesterday..today exercises both the
	// credentials and the property-level read access without burning quota.
	testRequest := report.NewBuilder(settings.PropertyID, nil, []string{constant.DefaultMetric}, "yesterday", "today").
		WithLimit(1).
		Request()

	result, err := runner.RunReport(ctx, testRequest)
	if err != nil {
		switch status.Code(err) {
		case codes.Unauthenticated:
			return &backend.CheckHealthResult{
				Status:  backend.HealthStatusError,
				Message: fmt.Sprintf("Authentication failed for property %s. Please verify the service account credentials are valid.", settings.PropertyID),
			}, nil
		case codes.PermissionDenied:
			return &backend.CheckHealthResult{
				Status:  backend.HealthStatusError,
				Message: fmt.Sprintf("The service account has no access to GA4 property %s. Grant it Viewer access in Analytics admin.", settings.PropertyID),
			}, nil
		case codes.NotFound:
			return &backend.CheckHealthResult{
				Status:  backend.HealthStatusError,
				Message: fmt.Sprintf("GA4 property %s was not found. Please verify the property ID.", settings.PropertyID),
			}, nil
		default:
			return &backend.CheckHealthResult{
				Status:  backend.HealthStatusError,
				Message: fmt.Sprintf("Failed to connect to the Analytics Data API (property %s). Error: %s", settings.PropertyID, err.Error()),
			}, nil
		}
	}

	if result == nil {
		return &backend.CheckHealthResult{
			Status:  backend.HealthStatusError,
			Message: fmt.Sprintf("The Analytics Data API returned an empty response for property %s.", settings.PropertyID),
		}, nil
	}

	return &backend.CheckHealthResult{
		Status:  backend.HealthStatusOk,
		Message: fmt.Sprintf("Successfully connected to the Analytics Data API. Property %s is accessible and returned %d row(s).", settings.PropertyID, len(result.Rows)),
	}, nil
}
