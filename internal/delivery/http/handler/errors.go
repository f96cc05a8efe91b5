package handler

import (
	"errors"

	"resume-builder/internal/delivery/http/middleware"
	"resume-builder/internal/pkg/response"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, usecase.ErrSectionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Section not found", nil, err)
	case errors.Is(err, usecase.ErrSuggestionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Suggestion not found", nil, err)
	case errors.Is(err, usecase.ErrSectionTypeExists):
		return middleware.NewAppError(fiber.StatusConflict, "Section already exists", nil, err)
	case errors.Is(err, usecase.ErrSectionConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Section was modified concurrently, retry", nil, err)
	case errors.Is(err, usecase.ErrGenerationInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Suggestion generation already in progress", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func requireUser(c fiber.Ctx) (uuid.UUID, error) {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return userID, nil
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}
