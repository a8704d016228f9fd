package handler

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docupload/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/upload.html"))

type slotGroup struct {
	Title string
	Slots []service.SlotView
}

type pageData struct {
	Form   *service.View
	Name   string
	Groups []slotGroup
}

func groupSlots(slots []service.SlotView) []slotGroup {
	var groups []slotGroup
	for _, s := range slots {
		if len(groups) == 0 || groups[len(groups)-1].Title != s.Group {
			groups = append(groups, slotGroup{Title: s.Group})
		}
		g := &groups[len(groups)-1]
		g.Slots = append(g.Slots, s)
	}
	return groups
}

// UploadPage renders the upload form for the user in the userPhone cookie.
// The page drives the JSON API for file selection and submission.
func UploadPage(svc service.FormService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := svc.Open(c.UserContext(), cookieStorage{c: c})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		var buf bytes.Buffer
		if err := pageTmpl.Execute(&buf, pageData{
			Form:   v,
			Name:   strings.TrimPrefix(v.Heading, service.HeadingPrefix),
			Groups: groupSlots(v.Slots),
		}); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Type("html").Send(buf.Bytes())
	}
}
