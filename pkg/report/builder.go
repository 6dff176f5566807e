// Package report assembles GA4 RunReport requests from the plugin query model
// and executes them against the Data API. It owns the filter-kind dispatch:
// string match, in-list membership, numeric comparison, and numeric range,
// with enum values mirroring the vendor's exactly.
package report

import (
	"fmt"
	"math"

	"cloud.google.com/go/analytics/data/apiv1beta/analyticsdatapb"

	"ga4-grafana-plugin/pkg/constant"
	"ga4-grafana-plugin/pkg/models"
)

// BuildError represents an error while assembling a report request.
type BuildError struct {
	Msg string
	Err error // Wrapped error
}

func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("report build error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("report build error: %s", e.Msg)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// stringMatchTypes maps the query model's match type names onto the vendor's
// Filter.StringFilter.MatchType enum values (EXACT=1 .. PARTIAL_REGEXP=6).
var stringMatchTypes = map[string]analyticsdatapb.Filter_StringFilter_MatchType{
	models.MatchTypeExact:         analyticsdatapb.Filter_StringFilter_EXACT,
	models.MatchTypeBeginsWith:    analyticsdatapb.Filter_StringFilter_BEGINS_WITH,
	models.MatchTypeEndsWith:      analyticsdatapb.Filter_StringFilter_ENDS_WITH,
	models.MatchTypeContains:      analyticsdatapb.Filter_StringFilter_CONTAINS,
	models.MatchTypeFullRegexp:    analyticsdatapb.Filter_StringFilter_FULL_REGEXP,
	models.MatchTypePartialRegexp: analyticsdatapb.Filter_StringFilter_PARTIAL_REGEXP,
}

// numericOperations maps the query model's operation names onto the vendor's
// Filter.NumericFilter.Operation enum values (EQUAL=1 .. GREATER_THAN_OR_EQUAL=5).
var numericOperations = map[string]analyticsdatapb.Filter_NumericFilter_Operation{
	models.OperationEqual:              analyticsdatapb.Filter_NumericFilter_EQUAL,
	models.OperationLessThan:           analyticsdatapb.Filter_NumericFilter_LESS_THAN,
	models.OperationLessThanOrEqual:    analyticsdatapb.Filter_NumericFilter_LESS_THAN_OR_EQUAL,
	models.OperationGreaterThan:        analyticsdatapb.Filter_NumericFilter_GREATER_THAN,
	models.OperationGreaterThanOrEqual: analyticsdatapb.Filter_NumericFilter_GREATER_THAN_OR_EQUAL,
}

// Builder assembles a RunReportRequest for a single GA4 property. A report
// can be built with or without a dimension filter.
type Builder struct {
	propertyID      string
	dimensions      []*analyticsdatapb.Dimension
	metrics         []*analyticsdatapb.Metric
	dateRanges      []*analyticsdatapb.DateRange
	dimensionFilter *analyticsdatapb.FilterExpression
	limit           int64
}

// NewBuilder creates a report builder for the given property, dimension and
// metric names, and inclusive date range. The user-supplied name order is
// preserved on the request.
func NewBuilder(propertyID string, dimensions, metrics []string, startDate, endDate string) *Builder {
	b := &Builder{propertyID: propertyID}
	for _, name := range dimensions {
		b.dimensions = append(b.dimensions, &analyticsdatapb.Dimension{Name: name})
	}
	for _, name := range metrics {
		b.metrics = append(b.metrics, &analyticsdatapb.Metric{Name: name})
	}
	b.dateRanges = []*analyticsdatapb.DateRange{
		{StartDate: startDate, EndDate: endDate},
	}
	return b
}

// WithLimit caps the number of rows returned. Values outside (0, MaxReportRows]
// fall back to the Data API maximum.
func (b *Builder) WithLimit(limit int64) *Builder {
	if limit <= 0 || limit > constant.MaxReportRows {
		limit = constant.MaxReportRows
	}
	b.limit = limit
	return b
}

// WithPagePathFilter restricts the report to the listed page paths via an
// in-list filter on the pagePath dimension.
func (b *Builder) WithPagePathFilter(pagePaths []string, caseSensitive bool) *Builder {
	b.dimensionFilter = &analyticsdatapb.FilterExpression{
		Expr: &analyticsdatapb.FilterExpression_Filter{
			Filter: &analyticsdatapb.Filter{
				FieldName: constant.PagePathDimension,
				OneFilter: &analyticsdatapb.Filter_InListFilter_{
					InListFilter: &analyticsdatapb.Filter_InListFilter{
						Values:        pagePaths,
						CaseSensitive: caseSensitive,
					},
				},
			},
		},
	}
	return b
}

// WithFilter populates the dimension filter from a FilterModel, selecting one
// of the four vendor filter kinds. An unknown kind, match type, or operation
// is rejected before any network call.
func (b *Builder) WithFilter(f *models.FilterModel) error {
	if f == nil {
		return nil
	}
	if f.FieldName == "" {
		return &BuildError{Msg: "filter field name cannot be empty"}
	}

	filter := &analyticsdatapb.Filter{FieldName: f.FieldName}

	switch f.Kind {
	case models.FilterKindString:
		matchType, ok := stringMatchTypes[f.MatchType]
		if !ok {
			return &BuildError{Msg: fmt.Sprintf("unknown string match type %q", f.MatchType)}
		}
		filter.OneFilter = &analyticsdatapb.Filter_StringFilter_{
			StringFilter: &analyticsdatapb.Filter_StringFilter{
				MatchType:     matchType,
				Value:         f.Value,
				CaseSensitive: f.CaseSensitive,
			},
		}

	case models.FilterKindInList:
		if len(f.Values) == 0 {
			return &BuildError{Msg: "in-list filter requires at least one value"}
		}
		filter.OneFilter = &analyticsdatapb.Filter_InListFilter_{
			InListFilter: &analyticsdatapb.Filter_InListFilter{
				Values:        f.Values,
				CaseSensitive: f.CaseSensitive,
			},
		}

	case models.FilterKindNumeric:
		operation, ok := numericOperations[f.Operation]
		if !ok {
			return &BuildError{Msg: fmt.Sprintf("unknown numeric operation %q", f.Operation)}
		}
		if f.NumericValue == nil {
			return &BuildError{Msg: "numeric filter requires a value"}
		}
		filter.OneFilter = &analyticsdatapb.Filter_NumericFilter_{
			NumericFilter: &analyticsdatapb.Filter_NumericFilter{
				Operation: operation,
				Value:     numericValue(*f.NumericValue),
			},
		}

	case models.FilterKindBetween:
		if f.FromValue == nil || f.ToValue == nil {
			return &BuildError{Msg: "between filter requires both from and to values"}
		}
		filter.OneFilter = &analyticsdatapb.Filter_BetweenFilter_{
			BetweenFilter: &analyticsdatapb.Filter_BetweenFilter{
				FromValue: numericValue(*f.FromValue),
				ToValue:   numericValue(*f.ToValue),
			},
		}

	default:
		return &BuildError{Msg: fmt.Sprintf("filter kind must be %q, %q, %q or %q, got %q",
			models.FilterKindString, models.FilterKindInList, models.FilterKindNumeric, models.FilterKindBetween, f.Kind)}
	}

	b.dimensionFilter = &analyticsdatapb.FilterExpression{
		Expr: &analyticsdatapb.FilterExpression_Filter{Filter: filter},
	}
	return nil
}

// Request produces the assembled RunReportRequest. A report without a filter
// carries no dimension filter message at all.
func (b *Builder) Request() *analyticsdatapb.RunReportRequest {
	req := &analyticsdatapb.RunReportRequest{
		Property:   constant.PropertyResourcePrefix + b.propertyID,
		Dimensions: b.dimensions,
		Metrics:    b.metrics,
		DateRanges: b.dateRanges,
	}
	if b.dimensionFilter != nil {
		req.DimensionFilter = b.dimensionFilter
	}
	if b.limit > 0 {
		req.Limit = b.limit
	}
	return req
}

// numericValue converts a JSON number into the vendor's NumericValue message,
// preserving integers as int64 so the API compares them exactly.
func numericValue(v float64) *analyticsdatapb.NumericValue {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return &analyticsdatapb.NumericValue{
			OneValue: &analyticsdatapb.NumericValue_Int64Value{Int64Value: int64(v)},
		}
	}
	return &analyticsdatapb.NumericValue{
		OneValue: &analyticsdatapb.NumericValue_DoubleValue{DoubleValue: v},
	}
}
