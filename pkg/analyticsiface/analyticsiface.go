// Package analyticsiface provides interfaces for Google Analytics Data API
// report execution. This package enables dependency injection and testing by
// abstracting the concrete Analytics client implementation behind interfaces.
package analyticsiface

import (
	"context"
	"time"

	analyticsdata "cloud.google.com/go/analytics/data/apiv1beta"
	"cloud.google.com/go/analytics/data/apiv1beta/analyticsdatapb"
	gax "github.com/googleapis/gax-go/v2"
)

// ReportRunner defines the interface for running GA4 reports.
// This abstraction allows for easier testing and dependency injection.
type ReportRunner interface {
	RunReport(ctx context.Context, req *analyticsdatapb.RunReportRequest) (*analyticsdatapb.RunReportResponse, error)
}

// RealReportRunner is a wrapper around the real analyticsdata.BetaClient that
// implements ReportRunner. This allows us to use dependency injection in
// production code.
type RealReportRunner struct {
	Client      *analyticsdata.BetaClient
	CallTimeout time.Duration
}

// RunReport executes a report request using the real Analytics Data client.
func (r *RealReportRunner) RunReport(ctx context.Context, req *analyticsdatapb.RunReportRequest) (*analyticsdatapb.RunReportResponse, error) {
	var opts []gax.CallOption
	if r.CallTimeout > 0 {
		opts = append(opts, gax.WithTimeout(r.CallTimeout))
	}
	return r.Client.RunReport(ctx, req, opts...)
}
