package models

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryModel_Unmarshal(t *testing.T) {
	jsonStr := `{
		"dimensions": ["pagePath", "pageTitle"],
		"metrics": ["screenPageViews", "activeUsers", "averageSessionDuration"],
		"startDate": "2023-02-01",
		"endDate": "today",
		"propertyID": "987654321"
	}`
	var qm QueryModel
	err := json.Unmarshal([]byte(jsonStr), &qm)
	if err != nil {
		t.Fatalf("Unmarshal QueryModel failed: %v", err)
	}

	expectedQm := QueryModel{
		Dimensions: []string{"pagePath", "pageTitle"},
		Metrics:    []string{"screenPageViews", "activeUsers", "averageSessionDuration"},
		StartDate:  "2023-02-01",
		EndDate:    "today",
		PropertyID: "987654321",
	}

	if !reflect.DeepEqual(qm, expectedQm) {
		t.Errorf("Unmarshal QueryModel got %+v, expected %+v", qm, expectedQm)
	}
}

func TestQueryModel_UnmarshalStringFilter(t *testing.T) {
	jsonStr := `{
		"dimensions": ["pagePath"],
		"metrics": ["screenPageViews"],
		"filter": {
			"fieldName": "pagePath",
			"kind": "string",
			"matchType": "exact",
			"caseSensitive": true,
			"value": "/Page/1"
		}
	}`
	var qm QueryModel
	require.NoError(t, json.Unmarshal([]byte(jsonStr), &qm))

	require.NotNil(t, qm.Filter)
	assert.Equal(t, "pagePath", qm.Filter.FieldName)
	assert.Equal(t, FilterKindString, qm.Filter.Kind)
	assert.Equal(t, MatchTypeExact, qm.Filter.MatchType)
	assert.True(t, qm.Filter.CaseSensitive)
	assert.Equal(t, "/Page/1", qm.Filter.Value)
}

func TestQueryModel_UnmarshalBetweenFilter(t *testing.T) {
	jsonStr := `{
		"metrics": ["screenPageViews"],
		"filter": {
			"fieldName": "screenPageViews",
			"kind": "between",
			"fromValue": 10,
			"toValue": 99.5
		}
	}`
	var qm QueryModel
	require.NoError(t, json.Unmarshal([]byte(jsonStr), &qm))

	require.NotNil(t, qm.Filter)
	require.NotNil(t, qm.Filter.FromValue)
	require.NotNil(t, qm.Filter.ToValue)
	assert.Equal(t, FilterKindBetween, qm.Filter.Kind)
	assert.Equal(t, 10.0, *qm.Filter.FromValue)
	assert.Equal(t, 99.5, *qm.Filter.ToValue)
}

func TestQueryModel_UnmarshalPagePaths(t *testing.T) {
	jsonStr := `{
		"metrics": ["screenPageViews"],
		"pagePaths": ["/Page/1", "/Page/2", "/Page/3"],
		"pagePathCaseSensitive": false
	}`
	var qm QueryModel
	require.NoError(t, json.Unmarshal([]byte(jsonStr), &qm))

	assert.Equal(t, []string{"/Page/1", "/Page/2", "/Page/3"}, qm.PagePaths)
	assert.False(t, qm.PagePathCaseSensitive)
	assert.Nil(t, qm.Filter)
}
