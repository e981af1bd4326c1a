package views

import (
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/property-search/internal/property"
	"github.com/i474232898/property-search/internal/search"
)

// ResultsState is one of the four mutually exclusive renderings.
type ResultsState string

const (
	ResultsError     ResultsState = "error"
	ResultsLoading   ResultsState = "loading"
	ResultsEmpty     ResultsState = "empty"
	ResultsPopulated ResultsState = "populated"
)

// SkeletonCount is the number of placeholders shown while loading.
const SkeletonCount = 6

const maxCardTags = 3

// ErrorMessage is shown for any failed query; causes are not distinguished.
const ErrorMessage = "Failed to load properties. Please check your connection and try again."

// Card is the view model of a single property.
type Card struct {
	ID          string
	Name        string
	Location    string
	Tags        []string
	MoreTags    int
	Temperature string
	Humidity    string
	Weather     string
	Condition   property.Condition
	Updated     string
}

// ResultsData is the view model of the results list.
type ResultsData struct {
	State      ResultsState
	CountLabel string
	Sort       property.SortKey
	View       search.View
	Cards      []Card
	Skeletons  []int
	Message    string
}

// SortOptions lists the entries of the sort selector.
var SortOptions = []struct {
	Key   property.SortKey
	Label string
}{
	{property.SortByName, "Name"},
	{property.SortByTemperature, "Temperature"},
	{property.SortByHumidity, "Humidity"},
}

// BuildResults projects query output into the results list. Precedence is
// error, loading, empty, populated. records is not modified.
func BuildResults(records []property.Record, isLoading bool, err error, total int, sortKey property.SortKey, view search.View) ResultsData {
	if view != search.ViewList {
		view = search.ViewGrid
	}
	data := ResultsData{Sort: sortKey, View: view}

	switch {
	case err != nil:
		data.State = ResultsError
		data.Message = ErrorMessage
		return data
	case isLoading:
		data.State = ResultsLoading
		data.Skeletons = make([]int, SkeletonCount)
		for i := range data.Skeletons {
			data.Skeletons[i] = i
		}
		return data
	}

	data.CountLabel = CountLabel(len(records), total)
	if len(records) == 0 {
		data.State = ResultsEmpty
		return data
	}

	data.State = ResultsPopulated
	sorted := property.Sort(records, sortKey)
	data.Cards = make([]Card, 0, len(sorted))
	for _, r := range sorted {
		data.Cards = append(data.Cards, NewCard(r))
	}
	return data
}

// ResultsFromState builds the results list of a session snapshot.
func ResultsFromState(st search.State) ResultsData {
	q := st.Query
	var err error
	if q.Status == search.StatusError {
		err = q.Err
	}
	return BuildResults(q.Result.Data, q.Status == search.StatusLoading, err, q.Result.Total(), st.Sort, st.View)
}

// CountLabel renders "N properties", with " of T" when the server sent a
// non-zero total.
func CountLabel(n, total int) string {
	label := strconv.Itoa(n) + " properties"
	if total > 0 {
		label += " of " + strconv.Itoa(total)
	}
	return label
}

// NewCard formats a record for display.
func NewCard(r property.Record) Card {
	c := Card{
		ID:          r.Property.ID,
		Name:        r.Property.Name,
		Location:    joinNonEmpty(", ", r.Property.City, r.Property.State),
		Temperature: "N/A",
		Humidity:    "N/A",
		Weather:     property.DescribeWeatherCode(r.Weather.WeatherCode),
		Condition:   property.ConditionFor(r.Weather.WeatherCode),
		Updated:     formatFetchedAt(r.Weather.FetchedAt),
	}

	tags := r.Property.Tags
	if len(tags) > maxCardTags {
		c.MoreTags = len(tags) - maxCardTags
		tags = tags[:maxCardTags]
	}
	c.Tags = tags

	if t := r.Weather.Temperature; t != nil {
		c.Temperature = property.FormatNumber(*t) + "°C"
	}
	if h := r.Weather.Humidity; h != nil {
		c.Humidity = property.FormatNumber(*h) + "%"
	}
	return c
}

func formatFetchedAt(s string) string {
	if s == "" {
		return "Weather unavailable"
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "Weather unavailable"
	}
	return "Updated " + ts.Format("Jan 2, 2006")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
