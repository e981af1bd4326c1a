package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"

	"github.com/i474232898/property-search/internal/property"
	"github.com/i474232898/property-search/internal/search"
)

//go:embed templates
var viewsFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTmpl *template.Template

// loadTemplatesFromFS loads page templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	tmpl, err := template.ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	pageTmpl = tmpl
	return nil
}

// LoadTemplates loads the embedded templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// Static returns the stylesheet and other assets served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// CodeOption is one weather code checkbox.
type CodeOption struct {
	Code    int
	Label   string
	Checked bool
}

// FiltersData is the view model of the filter panel.
type FiltersData struct {
	TempMin, TempMax         string
	HumidityMin, HumidityMax string
	TempBounds               [2]string
	HumidityBounds           [2]string
	Codes                    []CodeOption
	Custom                   string
}

// PageData is the view model of the search page.
type PageData struct {
	SearchText string
	PanelOpen  bool
	Filters    FiltersData
	Results    ResultsData
	Sorts      []SortOption
}

// SortOption is one entry of the sort selector.
type SortOption struct {
	Key      property.SortKey
	Label    string
	Selected bool
}

// NewPageData builds the page view model from a session snapshot.
func NewPageData(st search.State) *PageData {
	results := ResultsFromState(st)
	return &PageData{
		SearchText: st.SearchInput,
		PanelOpen:  st.PanelOpen,
		Filters:    newFiltersData(st.Panel),
		Results:    results,
		Sorts:      sortOptions(results.Sort),
	}
}

func newFiltersData(p property.Panel) FiltersData {
	fd := FiltersData{
		TempMin:        property.FormatNumber(p.TempRange[0]),
		TempMax:        property.FormatNumber(p.TempRange[1]),
		HumidityMin:    property.FormatNumber(p.HumidityRange[0]),
		HumidityMax:    property.FormatNumber(p.HumidityRange[1]),
		TempBounds:     [2]string{property.FormatNumber(property.DefaultMinTemp), property.FormatNumber(property.DefaultMaxTemp)},
		HumidityBounds: [2]string{property.FormatNumber(property.DefaultMinHumidity), property.FormatNumber(property.DefaultMaxHumidity)},
		Custom:         p.Custom,
	}
	for _, wc := range property.WeatherCodes {
		fd.Codes = append(fd.Codes, CodeOption{Code: wc.Code, Label: wc.Label, Checked: p.IsSelected(wc.Code)})
	}
	return fd
}

func sortOptions(selected property.SortKey) []SortOption {
	opts := make([]SortOption, 0, len(SortOptions))
	for _, o := range SortOptions {
		opts = append(opts, SortOption{Key: o.Key, Label: o.Label, Selected: o.Key == selected})
	}
	return opts
}

// RenderPage executes the full document into w.
func RenderPage(w io.Writer, data *PageData) error {
	if pageTmpl == nil {
		return errors.New("page template not loaded: call views.LoadTemplates during startup")
	}
	return pageTmpl.ExecuteTemplate(w, "index.html", data)
}

// RenderApp executes only the app fragment (panel and results) into w.
// Use for htmx swaps after a panel action.
func RenderApp(w io.Writer, data *PageData) error {
	if pageTmpl == nil {
		return errors.New("page template not loaded: call views.LoadTemplates during startup")
	}
	return pageTmpl.ExecuteTemplate(w, "app", data)
}

// RenderResults executes only the results fragment into w.
// Use for htmx polling while a query is loading and for sort/view changes.
func RenderResults(w io.Writer, data *PageData) error {
	if pageTmpl == nil {
		return errors.New("page template not loaded: call views.LoadTemplates during startup")
	}
	return pageTmpl.ExecuteTemplate(w, "results", data)
}
