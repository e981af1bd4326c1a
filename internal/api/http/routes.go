package httpapi

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/i474232898/property-search/internal/property"
	"github.com/i474232898/property-search/internal/search"
	"github.com/i474232898/property-search/internal/store"
	"github.com/i474232898/property-search/internal/views"
)

var validate = validator.New()

type handler struct {
	searcher *search.Searcher
	service  *property.Service
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, sessions *store.SessionStore, searcher *search.Searcher, service *property.Service) {
	h := &handler{searcher: searcher, service: service}
	withSession := sessionMiddleware(sessions)

	app.Use("/static", filesystem.New(filesystem.Config{
		Root: http.FS(views.Static()),
	}))

	app.Get("/", withSession, h.page)
	app.Get("/results", withSession, h.results)

	app.Post("/search", withSession, h.search)
	app.Post("/filters/temperature", withSession, h.temperature)
	app.Post("/filters/humidity", withSession, h.humidity)
	app.Post("/filters/codes", withSession, h.toggleCode)
	app.Post("/filters/codes/custom", withSession, h.customCodes)
	app.Post("/filters/apply", withSession, h.apply)
	app.Post("/filters/reset", withSession, h.reset)
	app.Post("/panel/toggle", withSession, h.togglePanel)
	app.Post("/retry", withSession, h.retry)

	v1 := app.Group("/api/v1")
	v1.Get("/session", withSession, h.sessionState)
	v1.Patch("/session/filters", withSession, h.patchFilters)
	v1.Get("/properties", h.properties)
}

func (h *handler) page(c *fiber.Ctx) error {
	return render(c, views.RenderPage, currentSession(c))
}

func (h *handler) results(c *fiber.Ctx) error {
	var q resultsQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// Values kept in the session are copied out of the request buffer.
	sess := currentSession(c)
	if q.Sort != "" {
		k, _ := property.ParseSortKey(utils.CopyString(q.Sort))
		sess.SetSort(k)
	}
	if q.View != "" {
		sess.SetView(search.View(utils.CopyString(q.View)))
	}

	if !isHTMX(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return render(c, views.RenderResults, sess)
}

func (h *handler) search(c *fiber.Ctx) error {
	sess := currentSession(c)
	h.searcher.Search(sess, utils.CopyString(c.FormValue("searchText")))
	return respond(c, sess)
}

func (h *handler) temperature(c *fiber.Ctx) error {
	lo, hi, err := parseRange(c)
	if err != nil {
		return err
	}
	sess := currentSession(c)
	sess.SetTemperature(lo, hi)
	h.searcher.Edited(sess)
	return respond(c, sess)
}

func (h *handler) humidity(c *fiber.Ctx) error {
	lo, hi, err := parseRange(c)
	if err != nil {
		return err
	}
	sess := currentSession(c)
	sess.SetHumidity(lo, hi)
	h.searcher.Edited(sess)
	return respond(c, sess)
}

func (h *handler) toggleCode(c *fiber.Ctx) error {
	var form codeForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	code, err := strconv.Atoi(form.Code)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "code must be an integer")
	}

	sess := currentSession(c)
	sess.ToggleCode(code, isTruthy(form.Checked))
	h.searcher.Edited(sess)
	return respond(c, sess)
}

func (h *handler) customCodes(c *fiber.Ctx) error {
	sess := currentSession(c)
	sess.SetCustomCodes(utils.CopyString(c.FormValue("value")))
	h.searcher.Edited(sess)
	return respond(c, sess)
}

func (h *handler) apply(c *fiber.Ctx) error {
	sess := currentSession(c)
	h.searcher.Apply(sess)
	if isTruthy(c.FormValue("compact")) {
		sess.SetPanelOpen(false)
	}
	return respond(c, sess)
}

// reset keeps the search box text, including text typed but not yet
// submitted when the form carries it.
func (h *handler) reset(c *fiber.Ctx) error {
	sess := currentSession(c)
	if c.Request().PostArgs().Has("searchText") {
		sess.SetSearchInput(utils.CopyString(c.FormValue("searchText")))
	}
	sess.Reset()
	return respond(c, sess)
}

func (h *handler) togglePanel(c *fiber.Ctx) error {
	sess := currentSession(c)
	sess.TogglePanel()
	return respond(c, sess)
}

func (h *handler) retry(c *fiber.Ctx) error {
	sess := currentSession(c)
	h.searcher.Retry(sess)
	return respond(c, sess)
}

func (h *handler) sessionState(c *fiber.Ctx) error {
	return c.JSON(newSessionResponse(currentSession(c).Snapshot()))
}

// patchFilters shallow-merges a JSON patch into the session filters.
func (h *handler) patchFilters(c *fiber.Ctx) error {
	var body filtersPatch
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sess := currentSession(c)
	sess.Update(body.patch())
	h.searcher.Edited(sess)
	return c.JSON(newSessionResponse(sess.Snapshot()))
}

// properties is a stateless search through the shared result cache, using
// the remote endpoint's parameter names.
func (h *handler) properties(c *fiber.Ctx) error {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	f, err := property.FiltersFromQuery(values)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	result, cached, err := h.service.Fetch(c.UserContext(), f)
	if err != nil {
		if errors.Is(err, property.ErrNetwork) {
			return fiber.NewError(fiber.StatusBadGateway, "failed to load properties")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load properties")
	}

	cacheStatus := "MISS"
	if cached {
		cacheStatus = "HIT"
	}
	c.Set("X-Cache", cacheStatus)
	return c.JSON(result)
}

// respond answers a UI action: htmx requests get the fragment they target,
// plain form posts are redirected back to the page.
func respond(c *fiber.Ctx, sess *search.Session) error {
	if !isHTMX(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	if c.Get("HX-Target") == "results" {
		return render(c, views.RenderResults, sess)
	}
	return render(c, views.RenderApp, sess)
}

func render(c *fiber.Ctx, fn func(io.Writer, *views.PageData) error, sess *search.Session) error {
	var buf bytes.Buffer
	if err := fn(&buf, views.NewPageData(sess.Snapshot())); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func isHTMX(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

func isTruthy(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseRange(c *fiber.Ctx) (float64, float64, error) {
	var form rangeForm
	if err := c.BodyParser(&form); err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(form); err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	lo, err := property.ParseNumber(form.Min)
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	hi, err := property.ParseNumber(form.Max)
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return lo, hi, nil
}
