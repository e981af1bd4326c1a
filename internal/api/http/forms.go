package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/property-search/internal/property"
	"github.com/i474232898/property-search/internal/search"
	"github.com/i474232898/property-search/internal/store"
)

const (
	sessionCookie = "ps_session"
	sessionLocal  = "session"
)

// resultsQuery holds query parameters for the results fragment.
type resultsQuery struct {
	Sort string `query:"sort" validate:"omitempty,oneof=name temperature humidity"`
	View string `query:"view" validate:"omitempty,oneof=grid list"`
}

// rangeForm is posted by both range controls. An empty bound reads as 0.
type rangeForm struct {
	Min string `form:"min" validate:"omitempty,numeric"`
	Max string `form:"max" validate:"omitempty,numeric"`
}

type codeForm struct {
	Code    string `form:"code" validate:"required,number"`
	Checked string `form:"checked"`
}

// filtersPatch is the JSON body of PATCH /api/v1/session/filters.
type filtersPatch struct {
	Filters property.Filters `json:"filters"`
	Unset   []string         `json:"unset" validate:"dive,oneof=searchText minTemp maxTemp minHumidity maxHumidity weatherCodes"`
}

func (b filtersPatch) patch() property.Patch {
	p := property.Patch{Filters: b.Filters}
	for _, f := range b.Unset {
		p.Unset = append(p.Unset, property.Field(f))
	}
	return p
}

// sessionMiddleware attaches the caller's session, creating it and setting
// the cookie when the request carries none or an expired one.
func sessionMiddleware(sessions *store.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Get(c.Cookies(sessionCookie))
		if err != nil {
			sess = sessions.Create()
			c.Cookie(&fiber.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID(),
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(sessionLocal, sess)
		return c.Next()
	}
}

func currentSession(c *fiber.Ctx) *search.Session {
	return c.Locals(sessionLocal).(*search.Session)
}
