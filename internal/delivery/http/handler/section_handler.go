package handler

import (
	"encoding/json"
	"errors"

	"resume-builder/internal/delivery/http/dto"
	"resume-builder/internal/delivery/http/middleware"
	"resume-builder/internal/domain/resume"
	"resume-builder/internal/pkg/response"
	"resume-builder/internal/pkg/schema"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SectionHandler struct {
	uc usecase.ResumeUsecase
}

type addSectionRequest struct {
	SectionType string `json:"section_type"`
}

type updateSectionRequest struct {
	Content map[string]any `json:"content"`
}

func NewSectionHandler(uc usecase.ResumeUsecase) *SectionHandler {
	return &SectionHandler{uc: uc}
}

func (h *SectionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/resumes/:id/sections")
	grp.Post("/", h.Add)
	grp.Patch("/:sectionId", h.Update)
	grp.Delete("/:sectionId", h.Remove)
}

func (h *SectionHandler) Add(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	resumeID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req addSectionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	t, ok := resume.ParseSectionType(req.SectionType)
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown section type", nil, nil)
	}

	created, err := h.uc.AddSection(c.Context(), userID, resumeID, t)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewSectionResponse(created))
}

// Update merges the "content" object of the body into the stored section content.
func (h *SectionHandler) Update(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	resumeID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	sectionID, err := uuidParam(c, "sectionId")
	if err != nil {
		return err
	}

	body := c.Body()
	if err := schema.SectionPatch.Validate(body); err != nil {
		return schemaError(err)
	}
	var req updateSectionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateSectionContent(c.Context(), userID, resumeID, sectionID, resume.Payload(req.Content))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewSectionResponse(updated))
}

func (h *SectionHandler) Remove(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	resumeID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	sectionID, err := uuidParam(c, "sectionId")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveSection(c.Context(), userID, resumeID, sectionID); err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, nil)
}

func schemaError(err error) error {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", verr.Details, err)
	}
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}
