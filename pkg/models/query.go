package models

// QueryModel represents the structure of a single query sent from Grafana.
// This struct will be unmarshaled from the JSON data in backend.DataQuery.
//
// Dimensions and metrics are GA4 API names, e.g. "pagePath" or
// "screenPageViews"; the full schema is listed at
// https://developers.google.com/analytics/devguides/reporting/data/v1/api-schema
//
// StartDate and EndDate accept the Data API date forms: "YYYY-MM-DD",
// "NdaysAgo", "yesterday", or "today". Relative forms are resolved in the
// property's reporting time zone.
type QueryModel struct {
	Dimensions []string `json:"dimensions"`
	Metrics    []string `json:"metrics"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	PropertyID string   `json:"propertyID"` // Optional, overrides the property ID from settings

	// PagePaths is a shortcut that restricts the report to the listed page
	// paths via an in-list filter on the pagePath dimension. Mutually
	// exclusive with Filter.
	PagePaths             []string `json:"pagePaths"`
	PagePathCaseSensitive bool     `json:"pagePathCaseSensitive"`

	// Filter is an optional dimension filter. Reports run fine without one.
	Filter *FilterModel `json:"filter"`

	Limit          int64 `json:"limit"`          // Optional row limit, capped by the Data API at 100,000
	UseGrafanaTime bool  `json:"useGrafanaTime"` // Whether to derive the date range from Grafana's time picker
}
