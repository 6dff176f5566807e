// Package formatter handles the conversion of Google Analytics Data API
// report responses into Grafana data frames. A report flattens into a single
// frame with one column per dimension and metric header and one row per
// returned record.
package formatter

import (
	"strconv"
	"time"

	"cloud.google.com/go/analytics/data/apiv1beta/analyticsdatapb"
	"github.com/grafana/grafana-plugin-sdk-go/backend"
	"github.com/grafana/grafana-plugin-sdk-go/backend/log"
	"github.com/grafana/grafana-plugin-sdk-go/data"

	"ga4-grafana-plugin/pkg/constant"
	"ga4-grafana-plugin/pkg/utils"
)

// FormatReportResults creates a Grafana DataFrame from a GA4 report response.
// Dimension columns stay strings, metric columns are parsed to numbers, and
// when the report includes the "date" dimension a time field is added so
// graph panels work out of the box.
func FormatReportResults(results *analyticsdatapb.RunReportResponse, query backend.DataQuery) *backend.DataResponse {
	resp := &backend.DataResponse{}

	if results == nil {
		return resp
	}

	log.DefaultLogger.Debug("Formatting report results", "refId", query.RefID, "rows", len(results.Rows), "rowCount", results.RowCount)

	frame := data.NewFrame(constant.ReportFrameName)

	addTimeField(frame, results)
	addDimensionFields(frame, results)
	addMetricFields(frame, results)

	frame.Meta = &data.FrameMeta{
		PreferredVisualization: preferredVisualization(results),
	}

	resp.Frames = append(resp.Frames, frame)
	return resp
}

// dateDimensionIndex returns the header index of the "date" dimension, or -1
// when the report was not broken down by date.
func dateDimensionIndex(results *analyticsdatapb.RunReportResponse) int {
	for i, header := range results.DimensionHeaders {
		if header.Name == constant.DateDimension {
			return i
		}
	}
	return -1
}

// addTimeField adds a time column parsed from the "date" dimension values
// (returned by the API as YYYYMMDD). Rows with malformed dates keep the zero
// time rather than dropping the row.
func addTimeField(frame *data.Frame, results *analyticsdatapb.RunReportResponse) {
	dateIdx := dateDimensionIndex(results)
	if dateIdx < 0 {
		return
	}

	times := make([]time.Time, len(results.Rows))
	for i, row := range results.Rows {
		if dateIdx >= len(row.DimensionValues) {
			continue
		}
		t, err := utils.ParseReportDate(row.DimensionValues[dateIdx].GetValue())
		if err != nil {
			log.DefaultLogger.Debug("Skipping unparseable date dimension value", "value", row.DimensionValues[dateIdx].GetValue(), "error", err)
			continue
		}
		times[i] = t
	}
	frame.Fields = append(frame.Fields, data.NewField(constant.TimeFieldName, nil, times))
}

// addDimensionFields adds one string column per dimension header, in header
// order, one value per returned row.
func addDimensionFields(frame *data.Frame, results *analyticsdatapb.RunReportResponse) {
	for i, header := range results.DimensionHeaders {
		values := make([]string, len(results.Rows))
		for j, row := range results.Rows {
			if i < len(row.DimensionValues) {
				values[j] = row.DimensionValues[i].GetValue()
			}
		}
		frame.Fields = append(frame.Fields, data.NewField(header.Name, nil, values))
	}
}

// addMetricFields adds one numeric column per metric header. The API returns
// metric values as strings; anything unparseable becomes zero.
func addMetricFields(frame *data.Frame, results *analyticsdatapb.RunReportResponse) {
	for i, header := range results.MetricHeaders {
		values := make([]float64, len(results.Rows))
		for j, row := range results.Rows {
			if i >= len(row.MetricValues) {
				continue
			}
			raw := row.MetricValues[i].GetValue()
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				log.DefaultLogger.Debug("Skipping non-numeric metric value", "metric", header.Name, "value", raw, "error", err)
				continue
			}
			values[j] = parsed
		}
		frame.Fields = append(frame.Fields, data.NewField(header.Name, nil, values))
	}
}

// preferredVisualization picks graph panels for date-broken reports and
// tables for everything else.
func preferredVisualization(results *analyticsdatapb.RunReportResponse) data.VisType {
	if dateDimensionIndex(results) >= 0 {
		return data.VisTypeGraph
	}
	return data.VisTypeTable
}
