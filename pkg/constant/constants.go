// Package constant defines shared constants used throughout the GA4 Grafana plugin.
// These cover default report parameters, well-known GA4 field names, and the
// frame names used for Grafana DataFrames.
package constant

const (
	// Default date range applied when a query omits one. Relative forms are
	// resolved by the Data API in the property's reporting time zone.
	DefaultStartDate = "7daysAgo"
	DefaultEndDate   = "today"

	// DefaultMetric is queried when a panel sends no metrics at all.
	DefaultMetric = "activeUsers"

	// GA4 dimension names with special handling
	PagePathDimension = "pagePath" // target of the page-path shortcut filter
	DateDimension     = "date"     // flattened into the frame's time field

	// Field and frame names used for Grafana DataFrames
	TimeFieldName   = "time"
	ReportFrameName = "report"

	// PropertyResourcePrefix is prepended to the numeric property ID to form
	// the resource name the Data API expects.
	PropertyResourcePrefix = "properties/"

	// MaxReportRows is the Data API's per-request row limit.
	MaxReportRows = 100000
)
