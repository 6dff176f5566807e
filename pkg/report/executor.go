package report

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/analytics/data/apiv1beta/analyticsdatapb"

	"ga4-grafana-plugin/pkg/analyticsiface"
	"ga4-grafana-plugin/pkg/constant"
)

// ExecutionError represents an error during report execution.
type ExecutionError struct {
	Property string
	Msg      string
	Err      error // Wrapped error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("report execution error for '%s': %s: %v", e.Property, e.Msg, e.Err)
	}
	return fmt.Sprintf("report execution error for '%s': %s", e.Property, e.Msg)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Executor handles the execution of report requests against the Data API.
type Executor struct {
	runner analyticsiface.ReportRunner
}

// NewExecutor creates a new report executor with the given report runner.
func NewExecutor(runner analyticsiface.ReportRunner) *Executor {
	return &Executor{runner: runner}
}

// Execute runs a report request against the Data API and returns the results.
// It validates the input parameters and handles any errors that occur during
// execution.
func (e *Executor) Execute(ctx context.Context, req *analyticsdatapb.RunReportRequest) (*analyticsdatapb.RunReportResponse, error) {
	if e.runner == nil {
		return nil, &ExecutionError{Msg: "report runner is nil, cannot execute report"}
	}
	if req == nil {
		return nil, &ExecutionError{Msg: "report request cannot be nil"}
	}
	if !strings.HasPrefix(req.Property, constant.PropertyResourcePrefix) || req.Property == constant.PropertyResourcePrefix {
		return nil, &ExecutionError{Property: req.Property, Msg: "report request needs a properties/{id} resource name"}
	}
	if len(req.Metrics) == 0 {
		return nil, &ExecutionError{Property: req.Property, Msg: "report request needs at least one metric"}
	}

	results, err := e.runner.RunReport(ctx, req)
	if err != nil {
		return nil, &ExecutionError{Property: req.Property, Msg: "error from Analytics Data API", Err: err}
	}
	return results, nil
}
