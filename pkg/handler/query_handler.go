// Package handler processes incoming query requests from Grafana and executes
// GA4 reports against the Analytics Data API. It handles query parsing,
// schema validation, request construction, execution, and response formatting
// with proper error handling.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/grafana/grafana-plugin-sdk-go/backend"
	"github.com/grafana/grafana-plugin-sdk-go/backend/log"

	"ga4-grafana-plugin/pkg/analyticsiface"
	"ga4-grafana-plugin/pkg/constant"
	"ga4-grafana-plugin/pkg/formatter"
	"ga4-grafana-plugin/pkg/metrics"
	"ga4-grafana-plugin/pkg/models"
	"ga4-grafana-plugin/pkg/ratelimit"
	"ga4-grafana-plugin/pkg/report"
	"ga4-grafana-plugin/pkg/schema"
	"ga4-grafana-plugin/pkg/utils"
)

// resolveDateRange picks the report date range for a query: the Grafana time
// picker when requested, explicit dates when given, defaults otherwise.
func resolveDateRange(qm *models.QueryModel, query backend.DataQuery) (string, string) {
	if qm.UseGrafanaTime {
		return utils.ConvertGrafanaTimeToDateRange(query.TimeRange)
	}
	startDate := qm.StartDate
	if startDate == "" {
		startDate = constant.DefaultStartDate
	}
	endDate := qm.EndDate
	if endDate == "" {
		endDate = constant.DefaultEndDate
	}
	return startDate, endDate
}

// buildRequest validates the query model against the GA4 schema and turns it
// into a RunReportRequest.
func buildRequest(qm *models.QueryModel, config *models.PluginSettings, query backend.DataQuery) (*report.Builder, error) {
	propertyID := config.PropertyID
	if qm.PropertyID != "" {
		propertyID = qm.PropertyID
	}
	if propertyID == "" {
		return nil, fmt.Errorf("no GA4 property ID configured on the datasource or the query")
	}

	ga4Metrics := qm.Metrics
	if len(ga4Metrics) == 0 {
		ga4Metrics = []string{constant.DefaultMetric}
	}

	if err := schema.ValidateDimensions(qm.Dimensions); err != nil {
		return nil, err
	}
	if err := schema.ValidateMetrics(ga4Metrics); err != nil {
		return nil, err
	}

	startDate, endDate := resolveDateRange(qm, query)
	if err := utils.ValidateReportDate(startDate); err != nil {
		return nil, err
	}
	if err := utils.ValidateReportDate(endDate); err != nil {
		return nil, err
	}

	builder := report.NewBuilder(propertyID, qm.Dimensions, ga4Metrics, startDate, endDate)
	builder.WithLimit(qm.Limit)

	if len(qm.PagePaths) > 0 {
		builder.WithPagePathFilter(qm.PagePaths, qm.PagePathCaseSensitive)
	} else if qm.Filter != nil {
		if err := builder.WithFilter(qm.Filter); err != nil {
			return nil, err
		}
	}

	return builder, nil
}

// HandleQuery processes a single Grafana data query: it decodes the query
// model, assembles the report request, runs it through the report runner, and
// formats the response. All failures land in the DataResponse error.
func HandleQuery(ctx context.Context, runner analyticsiface.ReportRunner, config *models.PluginSettings, query backend.DataQuery, limiter *ratelimit.RateLimiter) *backend.DataResponse {
	resp := &backend.DataResponse{}

	// Parse the query JSON
	var qm models.QueryModel
	if err := json.Unmarshal(query.JSON, &qm); err != nil {
		resp.Error = fmt.Errorf("error parsing query JSON: %w", err)
		log.DefaultLogger.Error("Error parsing query JSON", "refId", query.RefID, "error", err)
		return resp
	}

	log.DefaultLogger.Debug("Processing query", "refId", query.RefID,
		"dimensions", qm.Dimensions, "metrics", qm.Metrics,
		"configPropertyID", config.PropertyID, "queryPropertyID", qm.PropertyID)

	builder, err := buildRequest(&qm, config, query)
	if err != nil {
		resp.Error = fmt.Errorf("invalid report query: %w", err)
		log.DefaultLogger.Error("Invalid report query", "refId", query.RefID, "error", err)
		return resp
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			resp.Error = fmt.Errorf("rate limit wait aborted: %w", err)
			return resp
		}
	}

	executor := report.NewExecutor(runner)

	metrics.IncrementConcurrentReports()
	start := time.Now()
	results, err := executor.Execute(ctx, builder.Request())
	metrics.RecordReport(time.Since(start), err)
	metrics.DecrementConcurrentReports()

	if err != nil {
		resp.Error = fmt.Errorf("report execution failed: %w", err)
		log.DefaultLogger.Error("Report execution failed", "refId", query.RefID, "error", err)
		return resp
	}

	return formatter.FormatReportResults(results, query)
}
