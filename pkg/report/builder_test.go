package report

import (
	"testing"

	"cloud.google.com/go/analytics/data/apiv1beta/analyticsdatapb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ga4-grafana-plugin/pkg/constant"
	"ga4-grafana-plugin/pkg/models"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func TestBuilder_Request(t *testing.T) {
	b := NewBuilder("123456789",
		[]string{"pagePath", "pageTitle"},
		[]string{"screenPageViews", "activeUsers", "averageSessionDuration"},
		"2023-02-01", "today")

	req := b.Request()

	assert.Equal(t, "properties/123456789", req.Property)

	require.Len(t, req.Dimensions, 2)
	assert.Equal(t, "pagePath", req.Dimensions[0].Name)
	assert.Equal(t, "pageTitle", req.Dimensions[1].Name)

	require.Len(t, req.Metrics, 3)
	assert.Equal(t, "screenPageViews", req.Metrics[0].Name)
	assert.Equal(t, "activeUsers", req.Metrics[1].Name)
	assert.Equal(t, "averageSessionDuration", req.Metrics[2].Name)

	require.Len(t, req.DateRanges, 1)
	assert.Equal(t, "2023-02-01", req.DateRanges[0].StartDate)
	assert.Equal(t, "today", req.DateRanges[0].EndDate)

	// A report without a filter carries no dimension filter message
	assert.Nil(t, req.DimensionFilter)
}

func TestBuilder_WithLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int64
		want  int64
	}{
		{name: "explicit limit", limit: 500, want: 500},
		{name: "zero falls back to maximum", limit: 0, want: constant.MaxReportRows},
		{name: "negative falls back to maximum", limit: -5, want: constant.MaxReportRows},
		{name: "over the API cap falls back to maximum", limit: constant.MaxReportRows + 1, want: constant.MaxReportRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewBuilder("1", nil, []string{"activeUsers"}, "yesterday", "today").
				WithLimit(tt.limit).
				Request()
			assert.Equal(t, tt.want, req.Limit)
		})
	}
}

func TestBuilder_WithStringFilter(t *testing.T) {
	tests := []struct {
		name      string
		matchType string
		want      analyticsdatapb.Filter_StringFilter_MatchType
	}{
		{name: "exact", matchType: models.MatchTypeExact, want: analyticsdatapb.Filter_StringFilter_EXACT},
		{name: "beginsWith", matchType: models.MatchTypeBeginsWith, want: analyticsdatapb.Filter_StringFilter_BEGINS_WITH},
		{name: "endsWith", matchType: models.MatchTypeEndsWith, want: analyticsdatapb.Filter_StringFilter_ENDS_WITH},
		{name: "contains", matchType: models.MatchTypeContains, want: analyticsdatapb.Filter_StringFilter_CONTAINS},
		{name: "fullRegexp", matchType: models.MatchTypeFullRegexp, want: analyticsdatapb.Filter_StringFilter_FULL_REGEXP},
		{name: "partialRegexp", matchType: models.MatchTypePartialRegexp, want: analyticsdatapb.Filter_StringFilter_PARTIAL_REGEXP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder("1", []string{"pagePath"}, []string{"screenPageViews"}, "7daysAgo", "today")
			err := b.WithFilter(&models.FilterModel{
				FieldName:     "pagePath",
				Kind:          models.FilterKindString,
				MatchType:     tt.matchType,
				Value:         "/Page/1",
				CaseSensitive: true,
			})
			require.NoError(t, err)

			sf := b.Request().GetDimensionFilter().GetFilter().GetStringFilter()
			require.NotNil(t, sf)
			assert.Equal(t, tt.want, sf.MatchType)
			assert.Equal(t, "/Page/1", sf.Value)
			assert.True(t, sf.CaseSensitive)
			assert.Equal(t, "pagePath", b.Request().GetDimensionFilter().GetFilter().FieldName)
		})
	}
}

func TestBuilder_WithInListFilter(t *testing.T) {
	b := NewBuilder("1", []string{"country"}, []string{"activeUsers"}, "7daysAgo", "today")
	err := b.WithFilter(&models.FilterModel{
		FieldName: "country",
		Kind:      models.FilterKindInList,
		Values:    []string{"Japan", "Germany"},
	})
	require.NoError(t, err)

	lf := b.Request().GetDimensionFilter().GetFilter().GetInListFilter()
	require.NotNil(t, lf)
	assert.Equal(t, []string{"Japan", "Germany"}, lf.Values)
	assert.False(t, lf.CaseSensitive)
}

func TestBuilder_WithNumericFilter(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		want      analyticsdatapb.Filter_NumericFilter_Operation
	}{
		{name: "equal", operation: models.OperationEqual, want: analyticsdatapb.Filter_NumericFilter_EQUAL},
		{name: "lessThan", operation: models.OperationLessThan, want: analyticsdatapb.Filter_NumericFilter_LESS_THAN},
		{name: "lessThanOrEqual", operation: models.OperationLessThanOrEqual, want: analyticsdatapb.Filter_NumericFilter_LESS_THAN_OR_EQUAL},
		{name: "greaterThan", operation: models.OperationGreaterThan, want: analyticsdatapb.Filter_NumericFilter_GREATER_THAN},
		{name: "greaterThanOrEqual", operation: models.OperationGreaterThanOrEqual, want: analyticsdatapb.Filter_NumericFilter_GREATER_THAN_OR_EQUAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder("1", nil, []string{"screenPageViews"}, "7daysAgo", "today")
			err := b.WithFilter(&models.FilterModel{
				FieldName:    "screenPageViews",
				Kind:         models.FilterKindNumeric,
				Operation:    tt.operation,
				NumericValue: float64Ptr(100),
			})
			require.NoError(t, err)

			nf := b.Request().GetDimensionFilter().GetFilter().GetNumericFilter()
			require.NotNil(t, nf)
			assert.Equal(t, tt.want, nf.Operation)
			assert.Equal(t, int64(100), nf.Value.GetInt64Value())
		})
	}
}

func TestBuilder_WithBetweenFilter(t *testing.T) {
	b := NewBuilder("1", nil, []string{"screenPageViews"}, "7daysAgo", "today")
	err := b.WithFilter(&models.FilterModel{
		FieldName: "screenPageViews",
		Kind:      models.FilterKindBetween,
		FromValue: float64Ptr(10),
		ToValue:   float64Ptr(99.5),
	})
	require.NoError(t, err)

	bf := b.Request().GetDimensionFilter().GetFilter().GetBetweenFilter()
	require.NotNil(t, bf)
	// Integral values go through as int64, fractional ones as double
	assert.Equal(t, int64(10), bf.FromValue.GetInt64Value())
	assert.Equal(t, 99.5, bf.ToValue.GetDoubleValue())
}

func TestBuilder_WithPagePathFilter(t *testing.T) {
	b := NewBuilder("1", []string{"pagePath"}, []string{"screenPageViews"}, "2023-02-01", "today")
	b.WithPagePathFilter([]string{"/Page/1", "/Page/2", "/Page/3"}, true)

	filter := b.Request().GetDimensionFilter().GetFilter()
	require.NotNil(t, filter)
	assert.Equal(t, "pagePath", filter.FieldName)

	lf := filter.GetInListFilter()
	require.NotNil(t, lf)
	assert.Equal(t, []string{"/Page/1", "/Page/2", "/Page/3"}, lf.Values)
	assert.True(t, lf.CaseSensitive)
}

func TestBuilder_WithFilterErrors(t *testing.T) {
	tests := []struct {
		name   string
		filter *models.FilterModel
		errMsg string
	}{
		{
			name:   "nil filter is accepted",
			filter: nil,
		},
		{
			name:   "missing field name",
			filter: &models.FilterModel{Kind: models.FilterKindString, MatchType: models.MatchTypeExact},
			errMsg: "field name cannot be empty",
		},
		{
			name:   "unknown kind",
			filter: &models.FilterModel{FieldName: "pagePath", Kind: "regex_filter"},
			errMsg: "filter kind must be",
		},
		{
			name:   "unknown match type",
			filter: &models.FilterModel{FieldName: "pagePath", Kind: models.FilterKindString, MatchType: "fuzzy"},
			errMsg: "unknown string match type",
		},
		{
			name:   "unknown numeric operation",
			filter: &models.FilterModel{FieldName: "screenPageViews", Kind: models.FilterKindNumeric, Operation: "approx", NumericValue: float64Ptr(1)},
			errMsg: "unknown numeric operation",
		},
		{
			name:   "numeric filter without value",
			filter: &models.FilterModel{FieldName: "screenPageViews", Kind: models.FilterKindNumeric, Operation: models.OperationEqual},
			errMsg: "numeric filter requires a value",
		},
		{
			name:   "between filter without bounds",
			filter: &models.FilterModel{FieldName: "screenPageViews", Kind: models.FilterKindBetween, FromValue: float64Ptr(1)},
			errMsg: "between filter requires both",
		},
		{
			name:   "in-list filter without values",
			filter: &models.FilterModel{FieldName: "country", Kind: models.FilterKindInList},
			errMsg: "at least one value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder("1", nil, []string{"activeUsers"}, "7daysAgo", "today")
			err := b.WithFilter(tt.filter)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)

			var buildErr *BuildError
			require.ErrorAs(t, err, &buildErr)
		})
	}
}
