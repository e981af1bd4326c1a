package property

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of a result list.
type SortKey string

const (
	SortByName        SortKey = "name"
	SortByTemperature SortKey = "temperature"
	SortByHumidity    SortKey = "humidity"
)

// ParseSortKey accepts one of the known sort keys.
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(s); k {
	case SortByName, SortByTemperature, SortByHumidity:
		return k, true
	default:
		return "", false
	}
}

// Sort returns a sorted copy of records; the input is never reordered.
// Names sort ascending by locale collation, temperature and humidity sort
// descending with missing readings counted as 0. Ties keep their order.
// An unknown key returns the records in received order.
func Sort(records []Record, key SortKey) []Record {
	out := make([]Record, len(records))
	copy(out, records)

	switch key {
	case SortByName:
		// A Collator keeps scratch buffers and must not be shared.
		c := collate.New(language.Und)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Property.Name, out[j].Property.Name) < 0
		})
	case SortByTemperature:
		sort.SliceStable(out, func(i, j int) bool {
			return valueOrZero(out[i].Weather.Temperature) > valueOrZero(out[j].Weather.Temperature)
		})
	case SortByHumidity:
		sort.SliceStable(out, func(i, j int) bool {
			return valueOrZero(out[i].Weather.Humidity) > valueOrZero(out[j].Weather.Humidity)
		})
	}
	return out
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
