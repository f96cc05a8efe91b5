package v1

import (
	"resume-builder/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterResumes(r fiber.Router, resumeHandler *handler.ResumeHandler, sectionHandler *handler.SectionHandler) {
	if r == nil {
		return
	}
	if resumeHandler == nil {
		return
	}

	resumeHandler.RegisterRoutes(r)
	if sectionHandler != nil {
		sectionHandler.RegisterRoutes(r)
	}
}
