package property

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Range bounds used by the filter panel and by Reset.
const (
	DefaultMinTemp     = -10.0
	DefaultMaxTemp     = 50.0
	DefaultMinHumidity = 0.0
	DefaultMaxHumidity = 100.0
)

// Query parameter names understood by the remote get-properties endpoint.
const (
	ParamSearchText   = "searchText"
	ParamTempMin      = "temp_min"
	ParamTempMax      = "temp_max"
	ParamHumMin       = "hum_min"
	ParamHumMax       = "hum_max"
	ParamWeatherCodes = "weather_codes"
)

// Field names a single Filters field.
type Field string

const (
	FieldSearchText   Field = "searchText"
	FieldMinTemp      Field = "minTemp"
	FieldMaxTemp      Field = "maxTemp"
	FieldMinHumidity  Field = "minHumidity"
	FieldMaxHumidity  Field = "maxHumidity"
	FieldWeatherCodes Field = "weatherCodes"
)

// Filters is a filter snapshot. A nil field is undefined and is never sent.
// No validation happens here: min > max and malformed weather codes pass
// through to the remote unchanged.
type Filters struct {
	SearchText   *string  `json:"searchText,omitempty"`
	MinTemp      *float64 `json:"minTemp,omitempty"`
	MaxTemp      *float64 `json:"maxTemp,omitempty"`
	MinHumidity  *float64 `json:"minHumidity,omitempty"`
	MaxHumidity  *float64 `json:"maxHumidity,omitempty"`
	WeatherCodes *string  `json:"weatherCodes,omitempty"` // comma-separated integers
}

// Patch is a partial update. Non-nil fields overwrite, fields listed in
// Unset are cleared. A field both supplied and unset ends up cleared.
type Patch struct {
	Filters
	Unset []Field
}

// String returns a pointer to s.
func String(s string) *string { return &s }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Merge returns f with the supplied fields of p overwritten (shallow merge).
// The receiver is not modified and the result shares no pointers with p.
func (f Filters) Merge(p Patch) Filters {
	out := f
	if p.SearchText != nil {
		out.SearchText = String(*p.SearchText)
	}
	if p.MinTemp != nil {
		out.MinTemp = Float(*p.MinTemp)
	}
	if p.MaxTemp != nil {
		out.MaxTemp = Float(*p.MaxTemp)
	}
	if p.MinHumidity != nil {
		out.MinHumidity = Float(*p.MinHumidity)
	}
	if p.MaxHumidity != nil {
		out.MaxHumidity = Float(*p.MaxHumidity)
	}
	if p.WeatherCodes != nil {
		out.WeatherCodes = String(*p.WeatherCodes)
	}
	for _, field := range p.Unset {
		out.clear(field)
	}
	return out
}

// Touches reports whether p supplies or unsets field.
func (p Patch) Touches(field Field) bool {
	if slices.Contains(p.Unset, field) {
		return true
	}
	switch field {
	case FieldSearchText:
		return p.SearchText != nil
	case FieldMinTemp:
		return p.MinTemp != nil
	case FieldMaxTemp:
		return p.MaxTemp != nil
	case FieldMinHumidity:
		return p.MinHumidity != nil
	case FieldMaxHumidity:
		return p.MaxHumidity != nil
	case FieldWeatherCodes:
		return p.WeatherCodes != nil
	}
	return false
}

func (f *Filters) clear(field Field) {
	switch field {
	case FieldSearchText:
		f.SearchText = nil
	case FieldMinTemp:
		f.MinTemp = nil
	case FieldMaxTemp:
		f.MaxTemp = nil
	case FieldMinHumidity:
		f.MinHumidity = nil
	case FieldMaxHumidity:
		f.MaxHumidity = nil
	case FieldWeatherCodes:
		f.WeatherCodes = nil
	}
}

// Reset returns the default snapshot: fixed ranges, no weather codes and
// the given free-text search, which is left undefined when empty.
func Reset(searchText string) Filters {
	f := Filters{
		MinTemp:     Float(DefaultMinTemp),
		MaxTemp:     Float(DefaultMaxTemp),
		MinHumidity: Float(DefaultMinHumidity),
		MaxHumidity: Float(DefaultMaxHumidity),
	}
	if searchText != "" {
		f.SearchText = String(searchText)
	}
	return f
}

// Query builds the remote request parameters. Undefined fields are omitted
// and so are empty strings; numeric zero is sent.
func (f Filters) Query() url.Values {
	values := url.Values{}
	if f.SearchText != nil && *f.SearchText != "" {
		values.Set(ParamSearchText, *f.SearchText)
	}
	setFloat(values, ParamTempMin, f.MinTemp)
	setFloat(values, ParamTempMax, f.MaxTemp)
	setFloat(values, ParamHumMin, f.MinHumidity)
	setFloat(values, ParamHumMax, f.MaxHumidity)
	if f.WeatherCodes != nil && *f.WeatherCodes != "" {
		values.Set(ParamWeatherCodes, *f.WeatherCodes)
	}
	return values
}

// Key returns the canonical cache key of the snapshot. Unlike Query it keeps
// defined-but-empty strings, so two snapshots share a key only when every
// field matches.
func (f Filters) Key() string {
	values := url.Values{}
	if f.SearchText != nil {
		values.Set(string(FieldSearchText), *f.SearchText)
	}
	setFloat(values, string(FieldMinTemp), f.MinTemp)
	setFloat(values, string(FieldMaxTemp), f.MaxTemp)
	setFloat(values, string(FieldMinHumidity), f.MinHumidity)
	setFloat(values, string(FieldMaxHumidity), f.MaxHumidity)
	if f.WeatherCodes != nil {
		values.Set(string(FieldWeatherCodes), *f.WeatherCodes)
	}
	return "properties?" + values.Encode()
}

// FiltersFromQuery is the inverse of Query.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var f Filters
	if s := values.Get(ParamSearchText); s != "" {
		f.SearchText = String(s)
	}
	for _, p := range []struct {
		name string
		dst  **float64
	}{
		{ParamTempMin, &f.MinTemp},
		{ParamTempMax, &f.MaxTemp},
		{ParamHumMin, &f.MinHumidity},
		{ParamHumMax, &f.MaxHumidity},
	} {
		raw := strings.TrimSpace(values.Get(p.name))
		if raw == "" {
			continue
		}
		v, err := ParseNumber(raw)
		if err != nil {
			return Filters{}, fmt.Errorf("invalid %s: %w", p.name, err)
		}
		*p.dst = Float(v)
	}
	if s := values.Get(ParamWeatherCodes); s != "" {
		f.WeatherCodes = String(s)
	}
	return f, nil
}

// ParseNumber parses a numeric form value. Empty input is 0, matching a
// cleared number input.
func ParseNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return v, nil
}

// FormatNumber renders v in its shortest decimal form ("10", "10.5", "-3").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseWeatherCodes splits a comma-separated code list, skipping entries
// that are not integers. It is used only to preselect checkboxes; the raw
// string is what gets sent.
func ParseWeatherCodes(s string) []int {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var codes []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		codes = append(codes, n)
	}
	return codes
}

// JoinWeatherCodes is the inverse of ParseWeatherCodes.
func JoinWeatherCodes(codes []int) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

func setFloat(values url.Values, name string, v *float64) {
	if v != nil {
		values.Set(name, FormatNumber(*v))
	}
}
