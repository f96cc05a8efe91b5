package handler

import (
	"resume-builder/internal/delivery/http/dto"
	"resume-builder/internal/delivery/http/middleware"
	"resume-builder/internal/pkg/response"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ResumeHandler struct {
	uc usecase.ResumeUsecase
}

type updateResumeRequest struct {
	Title    *string `json:"title"`
	Template *string `json:"template"`
}

func NewResumeHandler(uc usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/resumes")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Patch("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
	grp.Get("/:id/preview", h.Preview)
}

func (h *ResumeHandler) List(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListResumes(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewResumeListResponse(items))
}

func (h *ResumeHandler) Create(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	created, err := h.uc.CreateResume(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewResumeResponse(created))
}

func (h *ResumeHandler) Get(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.uc.GetResume(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewResumeDetailResponse(detail.Resume, detail.Sections))
}

func (h *ResumeHandler) Update(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req updateResumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateResume(c.Context(), userID, id, usecase.UpdateResumeInput{
		Title:    req.Title,
		Template: req.Template,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewResumeResponse(updated))
}

func (h *ResumeHandler) Delete(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteResume(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, nil)
}

func (h *ResumeHandler) Preview(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	preview, err := h.uc.Preview(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}

	res := dto.PreviewResponse{
		Resume:   dto.NewResumeResponse(preview.Resume),
		Sections: make([]dto.PreviewSectionResponse, 0, len(preview.Sections)),
	}
	for _, s := range preview.Sections {
		res.Sections = append(res.Sections, dto.NewPreviewSectionResponse(s.ID, s.OrderIndex, s.Content))
	}
	return response.OK(c, res)
}
