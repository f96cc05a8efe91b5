package handler

import (
	"encoding/json"

	"resume-builder/internal/delivery/http/dto"
	"resume-builder/internal/delivery/http/middleware"
	"resume-builder/internal/pkg/response"
	"resume-builder/internal/pkg/schema"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SuggestionHandler struct {
	uc usecase.SuggestionUsecase
}

type generateSectionRequest struct {
	ID          uuid.UUID      `json:"id"`
	SectionType string         `json:"section_type"`
	Content     map[string]any `json:"content"`
}

type generateRequest struct {
	ResumeID uuid.UUID                `json:"resumeId"`
	Sections []generateSectionRequest `json:"sections"`
}

func NewSuggestionHandler(uc usecase.SuggestionUsecase) *SuggestionHandler {
	return &SuggestionHandler{uc: uc}
}

func (h *SuggestionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/resumes/:id/suggestions", h.List)

	grp := r.Group("/suggestions")
	grp.Post("/generate", h.Generate)
	grp.Post("/:id/apply", h.Apply)
	grp.Delete("/:id", h.Dismiss)
}

func (h *SuggestionHandler) Generate(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	body := c.Body()
	if err := schema.GenerateRequest.Validate(body); err != nil {
		return schemaError(err)
	}
	var req generateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.GenerateInput{
		ResumeID: req.ResumeID,
		Sections: make([]usecase.GenerateSectionInput, 0, len(req.Sections)),
	}
	for _, s := range req.Sections {
		in.Sections = append(in.Sections, usecase.GenerateSectionInput{
			ID:      s.ID,
			Type:    s.SectionType,
			Content: s.Content,
		})
	}

	count, err := h.uc.Generate(c.Context(), userID, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.GenerateSuggestionsResponse{Success: true, Count: count})
}

func (h *SuggestionHandler) List(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	resumeID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID, resumeID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewSuggestionListResponse(items))
}

func (h *SuggestionHandler) Apply(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	applied, err := h.uc.Apply(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewSuggestionResponse(applied))
}

func (h *SuggestionHandler) Dismiss(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Dismiss(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, nil)
}
