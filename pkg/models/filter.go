package models

// Filter kinds accepted in QueryModel.Filter. These select which vendor
// filter message is populated on the report request.
const (
	FilterKindString  = "string"
	FilterKindInList  = "inList"
	FilterKindNumeric = "numeric"
	FilterKindBetween = "between"
)

// String filter match types, mirroring Filter.StringFilter.MatchType in the
// Data API (EXACT=1 .. PARTIAL_REGEXP=6).
const (
	MatchTypeExact         = "exact"
	MatchTypeBeginsWith    = "beginsWith"
	MatchTypeEndsWith      = "endsWith"
	MatchTypeContains      = "contains"
	MatchTypeFullRegexp    = "fullRegexp"
	MatchTypePartialRegexp = "partialRegexp"
)

// Numeric filter operations, mirroring Filter.NumericFilter.Operation in the
// Data API (EQUAL=1 .. GREATER_THAN_OR_EQUAL=5).
const (
	OperationEqual              = "equal"
	OperationLessThan           = "lessThan"
	OperationLessThanOrEqual    = "lessThanOrEqual"
	OperationGreaterThan        = "greaterThan"
	OperationGreaterThanOrEqual = "greaterThanOrEqual"
)

// FilterModel describes a single dimension filter on a report query. Which
// fields are consulted depends on Kind:
//
//	string:  MatchType, Value, CaseSensitive
//	inList:  Values, CaseSensitive
//	numeric: Operation, NumericValue
//	between: FromValue, ToValue
type FilterModel struct {
	FieldName     string   `json:"fieldName"`
	Kind          string   `json:"kind"`
	MatchType     string   `json:"matchType"`
	CaseSensitive bool     `json:"caseSensitive"`
	Value         string   `json:"value"`
	Values        []string `json:"values"`
	Operation     string   `json:"operation"`
	NumericValue  *float64 `json:"numericValue"`
	FromValue     *float64 `json:"fromValue"`
	ToValue       *float64 `json:"toValue"`
}
