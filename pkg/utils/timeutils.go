// Package utils provides date helpers for the GA4 Grafana plugin
package utils

import (
	"fmt"
	"regexp"
	"time"

	"github.com/grafana/grafana-plugin-sdk-go/backend"
)

// reportDateLayout is the absolute date format accepted by the Data API.
const reportDateLayout = "2006-01-02"

// relativeDateRegex matches the Data API's "NdaysAgo" relative form.
var relativeDateRegex = regexp.MustCompile(`^\d+daysAgo$`)

// FormatReportDate formats t as a GA4 report date (YYYY-MM-DD).
func FormatReportDate(t time.Time) string {
	return t.Format(reportDateLayout)
}

// ConvertGrafanaTimeToDateRange converts Grafana's time picker range into the
// start/end date strings the Data API expects. The Data API works on whole
// days, so intra-day precision from the picker is dropped.
func ConvertGrafanaTimeToDateRange(timeRange backend.TimeRange) (string, string) {
	return FormatReportDate(timeRange.From), FormatReportDate(timeRange.To)
}

// IsRelativeDate reports whether s is one of the relative date forms the Data
// API resolves in the property's reporting time zone.
func IsRelativeDate(s string) bool {
	if s == "today" || s == "yesterday" {
		return true
	}
	return relativeDateRegex.MatchString(s)
}

// ValidateReportDate checks that s is either an absolute YYYY-MM-DD date or
// one of the relative forms ("NdaysAgo", "yesterday", "today").
func ValidateReportDate(s string) error {
	if s == "" {
		return fmt.Errorf("report date cannot be empty")
	}
	if IsRelativeDate(s) {
		return nil
	}
	if _, err := time.Parse(reportDateLayout, s); err != nil {
		return fmt.Errorf("invalid report date %q: use YYYY-MM-DD, NdaysAgo, yesterday, or today", s)
	}
	return nil
}

// ParseReportDate parses the "date" dimension value returned by the Data API
// (YYYYMMDD) into a time.Time in UTC.
func ParseReportDate(s string) (time.Time, error) {
	return time.Parse("20060102", s)
}
