package v1

import (
	"resume-builder/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Resume     *handler.ResumeHandler
	Section    *handler.SectionHandler
	Suggestion *handler.SuggestionHandler
}

// Register mounts every v1 route behind auth.
func Register(r fiber.Router, auth fiber.Handler, h Handlers) {
	if r == nil {
		return
	}

	protected := r
	if auth != nil {
		protected = r.Group("", auth)
	}

	RegisterResumes(protected, h.Resume, h.Section)
	RegisterSuggestions(protected, h.Suggestion)
}
