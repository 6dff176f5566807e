// Package schema holds the fixed GA4 reporting schema used to validate
// dimension and metric names before a report request leaves the plugin.
// The names mirror the vendor's API schema:
// https://developers.google.com/analytics/devguides/reporting/data/v1/api-schema
package schema

import (
	"fmt"
	"strings"
)

// UnknownFieldError reports a dimension or metric name that is not part of
// the GA4 reporting schema.
type UnknownFieldError struct {
	Kind string // "dimension" or "metric"
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown GA4 %s %q", e.Kind, e.Name)
}

// dimensions is the set of valid GA4 dimension API names.
var dimensions = map[string]struct{}{
	"achievementId":                {},
	"audienceName":                 {},
	"browser":                      {},
	"campaignName":                 {},
	"city":                         {},
	"contentGroup":                 {},
	"country":                      {},
	"countryId":                    {},
	"date":                         {},
	"dateHour":                     {},
	"day":                          {},
	"dayOfWeek":                    {},
	"defaultChannelGroup":          {},
	"deviceCategory":               {},
	"deviceModel":                  {},
	"eventName":                    {},
	"firstSessionDate":             {},
	"firstUserCampaignName":        {},
	"firstUserDefaultChannelGroup": {},
	"firstUserMedium":              {},
	"firstUserSource":              {},
	"fullPageUrl":                  {},
	"hostName":                     {},
	"hour":                         {},
	"itemBrand":                    {},
	"itemCategory":                 {},
	"itemId":                       {},
	"itemName":                     {},
	"landingPage":                  {},
	"landingPagePlusQueryString":   {},
	"language":                     {},
	"linkUrl":                      {},
	"medium":                       {},
	"minute":                       {},
	"month":                        {},
	"newVsReturning":               {},
	"nthDay":                       {},
	"nthMonth":                     {},
	"nthWeek":                      {},
	"operatingSystem":              {},
	"operatingSystemVersion":       {},
	"pageLocation":                 {},
	"pagePath":                     {},
	"pagePathPlusQueryString":      {},
	"pageReferrer":                 {},
	"pageTitle":                    {},
	"platform":                     {},
	"region":                       {},
	"screenResolution":             {},
	"sessionCampaignName":          {},
	"sessionDefaultChannelGroup":   {},
	"sessionMedium":                {},
	"sessionSource":                {},
	"signedInWithUserId":           {},
	"source":                       {},
	"streamId":                     {},
	"streamName":                   {},
	"transactionId":                {},
	"unifiedScreenName":            {},
	"week":                         {},
	"year":                         {},
}

// metrics is the set of valid GA4 metric API names.
var metrics = map[string]struct{}{
	"active1DayUsers":           {},
	"active28DayUsers":          {},
	"active7DayUsers":           {},
	"activeUsers":               {},
	"addToCarts":                {},
	"averagePurchaseRevenue":    {},
	"averageRevenuePerUser":     {},
	"averageSessionDuration":    {},
	"bounceRate":                {},
	"checkouts":                 {},
	"conversions":               {},
	"crashAffectedUsers":        {},
	"crashFreeUsersRate":        {},
	"dauPerMau":                 {},
	"dauPerWau":                 {},
	"ecommercePurchases":        {},
	"engagedSessions":           {},
	"engagementRate":            {},
	"eventCount":                {},
	"eventCountPerUser":         {},
	"eventValue":                {},
	"eventsPerSession":          {},
	"firstTimePurchasers":       {},
	"grossPurchaseRevenue":      {},
	"itemRevenue":               {},
	"itemsPurchased":            {},
	"itemsViewed":               {},
	"keyEvents":                 {},
	"newUsers":                  {},
	"publisherAdClicks":         {},
	"publisherAdImpressions":    {},
	"purchaseRevenue":           {},
	"screenPageViews":           {},
	"screenPageViewsPerSession": {},
	"screenPageViewsPerUser":    {},
	"scrolledUsers":             {},
	"sessions":                  {},
	"sessionsPerUser":           {},
	"totalAdRevenue":            {},
	"totalRevenue":              {},
	"totalUsers":                {},
	"transactions":              {},
	"transactionsPerPurchaser":  {},
	"userEngagementDuration":    {},
	"wauPerMau":                 {},
}

// isCustomField reports whether name addresses a property-defined custom
// dimension or metric, e.g. "customEvent:level" or "customUser:plan". Those
// are scoped by prefix and cannot be validated against the fixed schema.
func isCustomField(name string) bool {
	return strings.Contains(name, ":")
}

// IsDimension reports whether name is a valid GA4 dimension API name.
func IsDimension(name string) bool {
	if isCustomField(name) {
		return true
	}
	_, ok := dimensions[name]
	return ok
}

// IsMetric reports whether name is a valid GA4 metric API name.
func IsMetric(name string) bool {
	if isCustomField(name) {
		return true
	}
	_, ok := metrics[name]
	return ok
}

// ValidateDimensions checks every name against the dimension schema and
// returns an UnknownFieldError for the first invalid one.
func ValidateDimensions(names []string) error {
	for _, name := range names {
		if !IsDimension(name) {
			return &UnknownFieldError{Kind: "dimension", Name: name}
		}
	}
	return nil
}

// ValidateMetrics checks every name against the metric schema and returns an
// UnknownFieldError for the first invalid one.
func ValidateMetrics(names []string) error {
	for _, name := range names {
		if !IsMetric(name) {
			return &UnknownFieldError{Kind: "metric", Name: name}
		}
	}
	return nil
}
