package property

import "strconv"

// Condition is a coarse weather category derived from a weather code.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
)

// Property is the listing half of a search record.
type Property struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	City  string   `json:"city,omitempty"`
	State string   `json:"state,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// Weather is the latest observation attached to a property.
// Every field may be missing.
type Weather struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	WeatherCode *int     `json:"weatherCode,omitempty"`
	FetchedAt   string   `json:"fetchedAt,omitempty"` // RFC3339 as sent by the remote, not validated
}

// Record is one element of a get-properties response.
type Record struct {
	Property Property `json:"property"`
	Weather  Weather  `json:"weather"`
}

// Meta carries the server-provided totals. It is passed through untouched.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Result is the decoded body of a get-properties call.
type Result struct {
	Data []Record `json:"data"`
	Meta *Meta    `json:"meta,omitempty"`
}

// Total returns meta.total, or 0 when the server sent no meta.
func (r Result) Total() int {
	if r.Meta == nil {
		return 0
	}
	return r.Meta.Total
}

// WeatherCode is a selectable entry of the filter panel catalog.
type WeatherCode struct {
	Code  int
	Label string
}

// WeatherCodes lists the codes offered as checkboxes, in display order.
var WeatherCodes = []WeatherCode{
	{Code: 0, Label: "Clear sky"},
	{Code: 1, Label: "Mainly clear"},
	{Code: 2, Label: "Partly cloudy"},
	{Code: 3, Label: "Overcast"},
	{Code: 61, Label: "Light rain"},
	{Code: 63, Label: "Moderate rain"},
	{Code: 65, Label: "Heavy rain"},
	{Code: 71, Label: "Light snow"},
	{Code: 73, Label: "Moderate snow"},
	{Code: 75, Label: "Heavy snow"},
}

// DescribeWeatherCode returns the catalog label for code, "Code N" for codes
// outside the catalog and "Unknown" when no code was reported.
func DescribeWeatherCode(code *int) string {
	if code == nil {
		return "Unknown"
	}
	for _, wc := range WeatherCodes {
		if wc.Code == *code {
			return wc.Label
		}
	}
	return "Code " + strconv.Itoa(*code)
}

// ConditionFor maps WMO weather codes onto a Condition (simplified).
func ConditionFor(code *int) Condition {
	if code == nil {
		return ConditionUnknown
	}
	c := *code
	switch {
	case c == 0:
		return ConditionClear
	case c >= 1 && c <= 3:
		return ConditionCloudy
	case (c >= 51 && c <= 67) || (c >= 80 && c <= 82):
		return ConditionRain
	case c >= 71 && c <= 77:
		return ConditionSnow
	case c >= 95:
		return ConditionStorm
	default:
		return ConditionUnknown
	}
}
