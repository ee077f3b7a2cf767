package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/historical"
	"github.com/i474232898/weather-dashboard/internal/reading"
)

var validate = validator.New()

// Dashboard is the view surface the HTTP layer reads. *dashboard.Session
// satisfies it.
type Dashboard interface {
	ID() string
	Current() *dashboard.CurrentView
	Table(src dashboard.TableSource) *dashboard.Table
	LiveChart() *dashboard.LiveChart
	HistoricalChart(interval historical.Interval) *dashboard.HistoricalChart
	Source() reading.Kind
	SetSource(kind reading.Kind)
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the dashboard page and JSON API into the Fiber app.
// refresh is the polling period the page uses for live views.
func RegisterRoutes(app *fiber.App, d Dashboard, refresh time.Duration) {
	app.Get("/", dashboardPage(d, refresh))

	v1 := app.Group("/api/v1/dashboard")

	v1.Get("/current", func(c *fiber.Ctx) error {
		return c.JSON(d.Current())
	})

	v1.Get("/table", func(c *fiber.Ctx) error {
		src, err := dashboard.ParseTableSource(c.Query("source"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(d.Table(src))
	})

	v1.Get("/chart/live", func(c *fiber.Ctx) error {
		return c.JSON(d.LiveChart())
	})

	v1.Get("/chart/historical", func(c *fiber.Ctx) error {
		interval, err := historical.ParseInterval(c.Query("interval"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(d.HistoricalChart(interval))
	})

	v1.Get("/source", func(c *fiber.Ctx) error {
		return c.JSON(sourceResponse{Source: d.Source().String()})
	})

	v1.Put("/source", func(c *fiber.Ctx) error {
		var req sourceRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "source is required")
		}
		kind, err := reading.ParseKind(req.Source)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		d.SetSource(kind)
		return c.JSON(sourceResponse{Source: kind.String()})
	})
}

type sourceRequest struct {
	Source string `json:"source" validate:"required"`
}

type sourceResponse struct {
	Source string `json:"source"`
}
