package property

import "testing"

func record(name string, temp, hum *float64) Record {
	return Record{
		Property: Property{ID: name, Name: name},
		Weather:  Weather{Temperature: temp, Humidity: hum},
	}
}

func names(rs []Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Property.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortByName(t *testing.T) {
	in := []Record{
		record("Cedar", nil, nil),
		record("alder", nil, nil),
		record("Birch", nil, nil),
	}

	got := names(Sort(in, SortByName))
	want := []string{"alder", "Birch", "Cedar"}
	if !equal(got, want) {
		t.Errorf("Sort(name) = %v, want %v", got, want)
	}
	if !equal(names(in), []string{"Cedar", "alder", "Birch"}) {
		t.Errorf("input reordered: %v", names(in))
	}
}

func TestSortByTemperatureMissingAsZero(t *testing.T) {
	in := []Record{
		record("a", Float(-3), nil),
		record("b", nil, nil),
		record("c", Float(25), nil),
		record("d", Float(0), nil),
		record("e", Float(10), nil),
	}

	got := names(Sort(in, SortByTemperature))
	// b (missing) and d (0) tie and keep their order.
	want := []string{"c", "e", "b", "d", "a"}
	if !equal(got, want) {
		t.Errorf("Sort(temperature) = %v, want %v", got, want)
	}
}

func TestSortByHumidity(t *testing.T) {
	in := []Record{
		record("a", nil, Float(30)),
		record("b", nil, Float(90)),
		record("c", nil, nil),
	}

	got := names(Sort(in, SortByHumidity))
	want := []string{"b", "a", "c"}
	if !equal(got, want) {
		t.Errorf("Sort(humidity) = %v, want %v", got, want)
	}
}

func TestSortUnknownKeyKeepsOrder(t *testing.T) {
	in := []Record{record("b", nil, nil), record("a", nil, nil)}
	if got := names(Sort(in, SortKey("price"))); !equal(got, []string{"b", "a"}) {
		t.Errorf("Sort(unknown) = %v", got)
	}
	if _, ok := ParseSortKey("price"); ok {
		t.Error("ParseSortKey accepted unknown key")
	}
}
