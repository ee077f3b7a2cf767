package httpapi

import (
	"embed"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/historical"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

type intervalOption struct {
	Key      string
	Label    string
	Selected bool
}

type pageData struct {
	Title     string
	SessionID string
	RefreshMs int64
	Intervals []intervalOption
	Source    string
}

func dashboardPage(d Dashboard, refresh time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data := pageData{
			Title:     "Palmer Station Antarctica Temperatures",
			SessionID: d.ID(),
			RefreshMs: refresh.Milliseconds(),
			Source:    d.Source().String(),
		}
		for _, iv := range historical.Intervals {
			data.Intervals = append(data.Intervals, intervalOption{
				Key:      iv.String(),
				Label:    iv.Label(),
				Selected: iv == historical.DefaultInterval,
			})
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return pageTmpl.Execute(c, data)
	}
}
