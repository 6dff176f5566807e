package testutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/grafana/grafana-plugin-sdk-go/backend"
	"github.com/grafana/grafana-plugin-sdk-go/data"
	"github.com/stretchr/testify/require"
)

// CreateTestQuery creates a test report query with the given refID,
// dimensions, and metrics
func CreateTestQuery(t *testing.T, refID string, dimensions, metrics []string) backend.DataQuery {
	t.Helper()

	queryJSON := map[string]interface{}{
		"dimensions": dimensions,
		"metrics":    metrics,
		"startDate":  "2024-01-01",
		"endDate":    "2024-01-07",
	}

	jsonBytes, err := json.Marshal(queryJSON)
	require.NoError(t, err)

	return backend.DataQuery{
		RefID:     refID,
		QueryType: "report",
		JSON:      jsonBytes,
		TimeRange: backend.TimeRange{
			From: time.Now().Add(-7 * 24 * time.Hour),
			To:   time.Now(),
		},
	}
}

// CreateTestSettings creates test datasource settings with the given property ID
func CreateTestSettings(t *testing.T, propertyID string) *backend.DataSourceInstanceSettings {
	t.Helper()
	return &backend.DataSourceInstanceSettings{
		JSONData: []byte(`{"propertyID": "` + propertyID + `"}`),
		DecryptedSecureJSONData: map[string]string{
			"serviceAccountJson": `{"type": "service_account"}`,
		},
	}
}

// AssertFrameFields checks if a data frame has the expected fields
func AssertFrameFields(t *testing.T, frame *data.Frame, expectedFields []string) {
	t.Helper()

	require.Equal(t, len(expectedFields), len(frame.Fields), "number of fields")
	for i, field := range frame.Fields {
		require.Equal(t, expectedFields[i], field.Name, "field name")
	}
}

// CreateTestPluginContext creates a test plugin context
func CreateTestPluginContext(t *testing.T, settings *backend.DataSourceInstanceSettings) backend.PluginContext {
	t.Helper()
	return backend.PluginContext{
		DataSourceInstanceSettings: settings,
	}
}
