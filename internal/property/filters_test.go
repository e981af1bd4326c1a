package property

import (
	"net/url"
	"testing"
)

func TestMergeOverwritesOnlySuppliedFields(t *testing.T) {
	prior := Filters{
		SearchText:   String("austin"),
		MinTemp:      Float(5),
		MaxTemp:      Float(30),
		WeatherCodes: String("0,1"),
	}

	got := prior.Merge(Patch{Filters: Filters{MaxTemp: Float(25), MinHumidity: Float(40)}})

	if *got.SearchText != "austin" || *got.MinTemp != 5 || *got.WeatherCodes != "0,1" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if *got.MaxTemp != 25 {
		t.Errorf("MaxTemp = %v, want 25", *got.MaxTemp)
	}
	if got.MinHumidity == nil || *got.MinHumidity != 40 {
		t.Errorf("MinHumidity = %v, want 40", got.MinHumidity)
	}
	if got.MaxHumidity != nil {
		t.Errorf("MaxHumidity = %v, want nil", *got.MaxHumidity)
	}
	if *prior.MaxTemp != 30 {
		t.Errorf("receiver modified: MaxTemp = %v", *prior.MaxTemp)
	}
}

func TestMergeUnset(t *testing.T) {
	prior := Filters{WeatherCodes: String("61"), MinTemp: Float(1)}

	got := prior.Merge(Patch{Unset: []Field{FieldWeatherCodes}})

	if got.WeatherCodes != nil {
		t.Errorf("WeatherCodes = %q, want unset", *got.WeatherCodes)
	}
	if got.MinTemp == nil || *got.MinTemp != 1 {
		t.Errorf("MinTemp = %v, want 1", got.MinTemp)
	}
}

func TestMergeDoesNotAliasPatch(t *testing.T) {
	v := 10.0
	got := Filters{}.Merge(Patch{Filters: Filters{MinTemp: &v}})
	v = 99
	if *got.MinTemp != 10 {
		t.Fatalf("MinTemp = %v, want 10", *got.MinTemp)
	}
}

func TestMergeKeepsOutOfOrderRanges(t *testing.T) {
	got := Filters{}.Merge(Patch{Filters: Filters{MinTemp: Float(40), MaxTemp: Float(10)}})
	if *got.MinTemp != 40 || *got.MaxTemp != 10 {
		t.Fatalf("range rewritten: %v..%v", *got.MinTemp, *got.MaxTemp)
	}
}

func TestQueryOmitsUndefinedFields(t *testing.T) {
	tests := []struct {
		name string
		in   Filters
		want url.Values
	}{
		{
			name: "empty",
			in:   Filters{},
			want: url.Values{},
		},
		{
			name: "temperature only",
			in:   Filters{MinTemp: Float(10), MaxTemp: Float(20)},
			want: url.Values{"temp_min": {"10"}, "temp_max": {"20"}},
		},
		{
			name: "zero is sent",
			in:   Filters{MinHumidity: Float(0), MaxHumidity: Float(55.5)},
			want: url.Values{"hum_min": {"0"}, "hum_max": {"55.5"}},
		},
		{
			name: "empty strings are dropped",
			in:   Filters{SearchText: String(""), WeatherCodes: String("")},
			want: url.Values{},
		},
		{
			name: "codes pass through unparsed",
			in:   Filters{SearchText: String("lake house"), WeatherCodes: String("0, 61,x")},
			want: url.Values{"searchText": {"lake house"}, "weather_codes": {"0, 61,x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Query()
			if got.Encode() != tt.want.Encode() {
				t.Errorf("Query() = %q, want %q", got.Encode(), tt.want.Encode())
			}
		})
	}
}

func TestKeyDistinguishesSnapshots(t *testing.T) {
	a := Filters{MinTemp: Float(10), MaxTemp: Float(20)}
	b := Filters{MaxTemp: Float(20), MinTemp: Float(10)}
	if a.Key() != b.Key() {
		t.Errorf("equal snapshots have different keys: %q vs %q", a.Key(), b.Key())
	}

	if (Filters{}).Key() == (Filters{SearchText: String("")}).Key() {
		t.Error("defined-empty search text shares a key with undefined")
	}
	if a.Key() == (Filters{MinTemp: Float(10)}).Key() {
		t.Error("different snapshots share a key")
	}
}

func TestReset(t *testing.T) {
	got := Reset("denver")

	if got.SearchText == nil || *got.SearchText != "denver" {
		t.Errorf("SearchText = %v, want denver", got.SearchText)
	}
	if *got.MinTemp != -10 || *got.MaxTemp != 50 {
		t.Errorf("temperature = [%v,%v], want [-10,50]", *got.MinTemp, *got.MaxTemp)
	}
	if *got.MinHumidity != 0 || *got.MaxHumidity != 100 {
		t.Errorf("humidity = [%v,%v], want [0,100]", *got.MinHumidity, *got.MaxHumidity)
	}
	if got.WeatherCodes != nil {
		t.Errorf("WeatherCodes = %q, want unset", *got.WeatherCodes)
	}

	if Reset("").SearchText != nil {
		t.Error("empty search text should stay undefined")
	}
}

func TestFiltersFromQuery(t *testing.T) {
	values := url.Values{
		"searchText":    {"austin"},
		"temp_min":      {"-5"},
		"hum_max":       {"80"},
		"weather_codes": {"61,63"},
	}

	f, err := FiltersFromQuery(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Query().Encode() != values.Encode() {
		t.Errorf("round trip = %q, want %q", f.Query().Encode(), values.Encode())
	}

	if _, err := FiltersFromQuery(url.Values{"temp_max": {"warm"}}); err == nil {
		t.Error("expected error for non-numeric temp_max")
	}
}

func TestParseWeatherCodes(t *testing.T) {
	got := ParseWeatherCodes("0, 61,abc,75")
	want := []int{0, 61, 75}
	if len(got) != len(want) {
		t.Fatalf("ParseWeatherCodes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ParseWeatherCodes = %v, want %v", got, want)
		}
	}
	if ParseWeatherCodes("") != nil {
		t.Error("empty input should give nil")
	}
	if s := JoinWeatherCodes([]int{3, 0, 61}); s != "3,0,61" {
		t.Errorf("JoinWeatherCodes = %q", s)
	}
}
