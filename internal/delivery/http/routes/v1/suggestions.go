package v1

import (
	"resume-builder/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterSuggestions(r fiber.Router, suggestionHandler *handler.SuggestionHandler) {
	if r == nil {
		return
	}
	if suggestionHandler == nil {
		return
	}

	suggestionHandler.RegisterRoutes(r)
}
