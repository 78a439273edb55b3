package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-now/internal/screen"
	"github.com/i474232898/weather-now/internal/weather"
)

// Screen is the pipeline surface the HTTP API needs.
type Screen interface {
	State() screen.State
	Refresh() bool
}

// screenResponse is the JSON rendition of the screen.
type screenResponse struct {
	Phase      screen.Phase      `json:"phase"`
	Message    string            `json:"message,omitempty"`
	Generation uint64            `json:"generation"`
	CycleID    string            `json:"cycleId,omitempty"`
	CanRefresh bool              `json:"canRefresh"`
	Title      string            `json:"title,omitempty"`
	Sections   []weather.Section `json:"sections,omitempty"`
	Reading    *weather.Reading  `json:"reading,omitempty"`
}

func newScreenResponse(s screen.State) screenResponse {
	resp := screenResponse{
		Phase:      s.Phase,
		Message:    s.Message,
		Generation: s.Generation,
		CycleID:    s.CycleID,
		CanRefresh: s.CanRefresh(),
	}
	if view, ok := s.View(); ok {
		resp.Title = view.Title
		resp.Sections = view.Sections
		resp.Reading = s.Reading
	}
	return resp
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, scr Screen) {
	v1 := app.Group("/api/v1")

	v1.Get("/screen", func(c *fiber.Ctx) error {
		return c.JSON(newScreenResponse(scr.State()))
	})

	v1.Post("/screen/refresh", func(c *fiber.Ctx) error {
		if !scr.Refresh() {
			return fiber.NewError(fiber.StatusConflict, "refresh is only available once the current cycle has finished")
		}
		return c.Status(fiber.StatusAccepted).JSON(newScreenResponse(scr.State()))
	})
}
