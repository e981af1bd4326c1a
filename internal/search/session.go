package search

import (
	"slices"
	"sync"
	"time"

	"github.com/i474232898/property-search/internal/property"
)

// Status is the lifecycle of the latest issued query.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// View is the results layout.
type View string

const (
	ViewGrid View = "grid"
	ViewList View = "list"
)

// Query tracks the latest query issued for a session. Key is the snapshot
// key of Filters; a response is accepted only while it matches.
type Query struct {
	Key     string
	Filters property.Filters
	Status  Status
	Result  property.Result
	Err     error
}

// State is a copy of everything a session holds, safe to read without locks.
type State struct {
	ID          string
	SearchInput string
	Filters     property.Filters
	Panel       property.Panel
	Query       Query
	Sort        property.SortKey
	View        View
	PanelOpen   bool
}

// Session is the filter state store of one browser session. All methods are
// safe for concurrent use; updates are serialized per session.
type Session struct {
	mu       sync.Mutex
	state    State
	lastSeen time.Time
}

// NewSession creates a session with empty filters and default controls.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		state: State{
			ID:        id,
			Panel:     property.NewPanel(property.Filters{}),
			Query:     Query{Status: StatusIdle},
			Sort:      property.SortByName,
			View:      ViewGrid,
			PanelOpen: true,
		},
		lastSeen: now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.state.ID
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Panel.Selected = slices.Clone(s.state.Panel.Selected)
	return st
}

// Filters returns the current filter snapshot.
func (s *Session) Filters() property.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Filters
}

// Update shallow-merges p into the filters and returns the result. The
// panel controls for the touched fields follow the new values.
func (s *Session) Update(p property.Patch) property.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters = s.state.Filters.Merge(p)
	s.state.Panel.Follow(p, s.state.Filters)
	return s.state.Filters
}

// SetSearchInput records the search box text without committing it.
func (s *Session) SetSearchInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SearchInput = text
}

// commitSearch copies text into the filters, unsetting the field when empty.
func (s *Session) commitSearch(text string) property.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SearchInput = text
	p := property.Patch{Unset: []property.Field{property.FieldSearchText}}
	if text != "" {
		p = property.Patch{Filters: property.Filters{SearchText: property.String(text)}}
	}
	s.state.Filters = s.state.Filters.Merge(p)
	return s.state.Filters
}

// SetTemperature moves the temperature control and writes through.
func (s *Session) SetTemperature(lo, hi float64) property.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters = s.state.Filters.Merge(s.state.Panel.SetTemperature(lo, hi))
	return s.state.Filters
}

// SetHumidity moves the humidity control and writes through.
func (s *Session) SetHumidity(lo, hi float64) property.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters = s.state.Filters.Merge(s.state.Panel.SetHumidity(lo, hi))
	return s.state.Filters
}

// ToggleCode checks or unchecks a weather code and writes through.
func (s *Session) ToggleCode(code int, checked bool) property.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters = s.state.Filters.Merge(s.state.Panel.ToggleCode(code, checked))
	return s.state.Filters
}

// SetCustomCodes sets the free-text code override and writes through.
func (s *Session) SetCustomCodes(value string) property.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters = s.state.Filters.Merge(s.state.Panel.SetCustomCodes(value))
	return s.state.Filters
}

// Reset restores ranges and code selection to their defaults while keeping
// the search box text. It does not issue a query.
func (s *Session) Reset() property.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters = property.Reset(s.state.SearchInput)
	s.state.Panel.Reset()
	return s.state.Filters
}

// SetSort selects the results ordering.
func (s *Session) SetSort(k property.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Sort = k
}

// SetView selects the results layout.
func (s *Session) SetView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.View = v
}

// SetPanelOpen shows or hides the filter overlay on compact layouts.
func (s *Session) SetPanelOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PanelOpen = open
}

// TogglePanel flips the overlay and returns the new value.
func (s *Session) TogglePanel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PanelOpen = !s.state.PanelOpen
	return s.state.PanelOpen
}

// Touch records activity at now.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
}

// LastSeen returns the time of the latest activity.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// lastIssued returns the snapshot of the latest issued query, or the
// current filters when nothing was issued yet.
func (s *Session) lastIssued() property.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Query.Key == "" {
		return s.state.Filters
	}
	return s.state.Query.Filters
}

// begin marks f as the latest issued query. It returns false when the same
// snapshot is already loading, in which case nothing should be sent.
func (s *Session) begin(f property.Filters) bool {
	key := f.Key()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Query.Key == key && s.state.Query.Status == StatusLoading {
		return false
	}
	s.state.Query = Query{Key: key, Filters: f, Status: StatusLoading}
	return true
}

// settle stores a result that needed no request, superseding anything in
// flight.
func (s *Session) settle(f property.Filters, r property.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query = Query{Key: f.Key(), Filters: f, Status: StatusSuccess, Result: r}
}

// complete applies a response for key. Responses whose key is no longer the
// latest issued one, or that arrive after the query settled, are dropped.
func (s *Session) complete(key string, r property.Result, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Query.Key != key || s.state.Query.Status != StatusLoading {
		return false
	}
	if err != nil {
		s.state.Query.Status = StatusError
		s.state.Query.Err = err
		return true
	}
	s.state.Query.Status = StatusSuccess
	s.state.Query.Result = r
	return true
}
