package httpapi

import (
	"github.com/i474232898/property-search/internal/property"
	"github.com/i474232898/property-search/internal/search"
)

// sessionResponse is the JSON view of a session.
type sessionResponse struct {
	ID          string            `json:"id"`
	SearchInput string            `json:"searchInput"`
	Filters     property.Filters  `json:"filters"`
	Sort        property.SortKey  `json:"sort"`
	View        search.View       `json:"view"`
	PanelOpen   bool              `json:"panelOpen"`
	Query       sessionQueryState `json:"query"`
}

type sessionQueryState struct {
	Key     string            `json:"key,omitempty"`
	Status  search.Status     `json:"status"`
	Error   string            `json:"error,omitempty"`
	Filters *property.Filters `json:"filters,omitempty"`
	Count   int               `json:"count"`
	Total   int               `json:"total,omitempty"`
}

func newSessionResponse(st search.State) sessionResponse {
	resp := sessionResponse{
		ID:          st.ID,
		SearchInput: st.SearchInput,
		Filters:     st.Filters,
		Sort:        st.Sort,
		View:        st.View,
		PanelOpen:   st.PanelOpen,
		Query: sessionQueryState{
			Key:    st.Query.Key,
			Status: st.Query.Status,
			Count:  len(st.Query.Result.Data),
			Total:  st.Query.Result.Total(),
		},
	}
	if st.Query.Key != "" {
		f := st.Query.Filters
		resp.Query.Filters = &f
	}
	if st.Query.Err != nil {
		resp.Query.Error = st.Query.Err.Error()
	}
	return resp
}
