package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resume-builder/internal/delivery/http/middleware"
	"resume-builder/internal/domain/resume"
	"resume-builder/internal/domain/suggestion"
	"resume-builder/internal/pkg/jwt"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type stubResumeUC struct {
	resume   resume.Resume
	section  resume.Section
	preview  usecase.ResumePreview
	err      error
	lastType resume.SectionType
	patch    resume.Payload
}

func (s *stubResumeUC) CreateResume(context.Context, uuid.UUID) (resume.Resume, error) {
	return s.resume, s.err
}
func (s *stubResumeUC) ListResumes(context.Context, uuid.UUID) ([]resume.Resume, error) {
	return []resume.Resume{s.resume}, s.err
}
func (s *stubResumeUC) GetResume(context.Context, uuid.UUID, uuid.UUID) (usecase.ResumeDetail, error) {
	return usecase.ResumeDetail{Resume: s.resume, Sections: []resume.Section{s.section}}, s.err
}
func (s *stubResumeUC) UpdateResume(context.Context, uuid.UUID, uuid.UUID, usecase.UpdateResumeInput) (resume.Resume, error) {
	return s.resume, s.err
}
func (s *stubResumeUC) DeleteResume(context.Context, uuid.UUID, uuid.UUID) error { return s.err }
func (s *stubResumeUC) AddSection(_ context.Context, _ uuid.UUID, _ uuid.UUID, t resume.SectionType) (resume.Section, error) {
	s.lastType = t
	return s.section, s.err
}
func (s *stubResumeUC) UpdateSectionContent(_ context.Context, _, _, _ uuid.UUID, patch resume.Payload) (resume.Section, error) {
	s.patch = patch
	return s.section, s.err
}
func (s *stubResumeUC) RemoveSection(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	return s.err
}
func (s *stubResumeUC) Preview(context.Context, uuid.UUID, uuid.UUID) (usecase.ResumePreview, error) {
	return s.preview, s.err
}

type stubSuggestionUC struct {
	count    int
	items    []suggestion.Suggestion
	applied  suggestion.Suggestion
	err      error
	calls    int
	lastIn   usecase.GenerateInput
	lastUser uuid.UUID
}

func (s *stubSuggestionUC) Generate(_ context.Context, userID uuid.UUID, in usecase.GenerateInput) (int, error) {
	s.calls++
	s.lastIn = in
	s.lastUser = userID
	return s.count, s.err
}
func (s *stubSuggestionUC) GenerateForResume(context.Context, uuid.UUID) (int, error) {
	return s.count, s.err
}
func (s *stubSuggestionUC) List(context.Context, uuid.UUID, uuid.UUID) ([]suggestion.Suggestion, error) {
	return s.items, s.err
}
func (s *stubSuggestionUC) Apply(context.Context, uuid.UUID, uuid.UUID) (suggestion.Suggestion, error) {
	return s.applied, s.err
}
func (s *stubSuggestionUC) Dismiss(context.Context, uuid.UUID, uuid.UUID) error { return s.err }

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

const testSecret = "test-secret"

func newTestApp(t *testing.T, resumes usecase.ResumeUsecase, suggestions usecase.SuggestionUsecase) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())

	auth := middleware.NewAuthMiddleware(jwt.NewHMACService(testSecret, "", time.Hour))
	api := app.Group("/api/v1", auth.Middleware())
	NewResumeHandler(resumes).RegisterRoutes(api)
	NewSectionHandler(resumes).RegisterRoutes(api)
	NewSuggestionHandler(suggestions).RegisterRoutes(api)
	return app
}

func bearer(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewHMACService(testSecret, "", time.Hour).GenerateAccessToken(userID, "")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func do(t *testing.T, app *fiber.App, method, path, body string, userID uuid.UUID) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != uuid.Nil {
		req.Header.Set("Authorization", bearer(t, userID))
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp.StatusCode, env
}

func TestAuth_MissingToken(t *testing.T) {
	app := newTestApp(t, &stubResumeUC{}, &stubSuggestionUC{})
	status, env := do(t, app, http.MethodGet, "/api/v1/resumes", "", uuid.Nil)
	if status != fiber.StatusUnauthorized || env.Status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (%+v)", status, env)
	}
}

func TestSuggestionHandler_Generate(t *testing.T) {
	uc := &stubSuggestionUC{count: 4}
	app := newTestApp(t, &stubResumeUC{}, uc)
	userID, resumeID, sectionID := uuid.New(), uuid.New(), uuid.New()

	body := `{"resumeId":"` + resumeID.String() + `","sections":[{"id":"` + sectionID.String() + `","section_type":"summary","content":{"text":"Short bio."}}]}`
	status, env := do(t, app, http.MethodPost, "/api/v1/suggestions/generate", body, userID)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Message)
	}

	var data struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !data.Success || data.Count != 4 {
		t.Fatalf("unexpected data: %+v", data)
	}
	if uc.lastUser != userID || uc.lastIn.ResumeID != resumeID || len(uc.lastIn.Sections) != 1 {
		t.Fatalf("unexpected usecase input: %+v", uc.lastIn)
	}
	if got := uc.lastIn.Sections[0]; got.ID != sectionID || got.Type != "summary" || got.Content["text"] != "Short bio." {
		t.Fatalf("unexpected section input: %+v", got)
	}
}

func TestSuggestionHandler_Generate_SchemaRejection(t *testing.T) {
	uc := &stubSuggestionUC{}
	app := newTestApp(t, &stubResumeUC{}, uc)

	cases := map[string]string{
		"missing sections": `{"resumeId":"` + uuid.NewString() + `"}`,
		"missing resume":   `{"sections":[]}`,
		"bad type":         `{"resumeId":"` + uuid.NewString() + `","sections":[{"id":"` + uuid.NewString() + `","section_type":"hobbies"}]}`,
		"not json":         `{"resumeId"`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			status, env := do(t, app, http.MethodPost, "/api/v1/suggestions/generate", body, uuid.New())
			if status != fiber.StatusBadRequest {
				t.Fatalf("expected 400, got %d", status)
			}
			var details []string
			if err := json.Unmarshal(env.Data, &details); err != nil || len(details) == 0 {
				t.Fatalf("expected validation details, got %s", env.Data)
			}
		})
	}
	if uc.calls != 0 {
		t.Fatalf("expected usecase untouched, got %d calls", uc.calls)
	}
}

func TestSuggestionHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{err: usecase.ErrGenerationInProgress, status: fiber.StatusConflict},
		{err: usecase.ErrResumeNotFound, status: fiber.StatusNotFound},
		{err: usecase.ErrSectionNotFound, status: fiber.StatusNotFound},
		{err: usecase.ErrInvalidInput, status: fiber.StatusBadRequest},
		{err: usecase.ErrInternal, status: fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			app := newTestApp(t, &stubResumeUC{}, &stubSuggestionUC{err: tc.err})
			body := `{"resumeId":"` + uuid.NewString() + `","sections":[]}`
			status, env := do(t, app, http.MethodPost, "/api/v1/suggestions/generate", body, uuid.New())
			if status != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, status)
			}
			if tc.status == fiber.StatusInternalServerError && env.Message != "internal server error" {
				t.Fatalf("expected masked message, got %q", env.Message)
			}
		})
	}
}

func TestSuggestionHandler_ApplyAndDismiss(t *testing.T) {
	sectionID := uuid.New()
	applied := suggestion.Suggestion{
		ID:               uuid.New(),
		ResumeID:         uuid.New(),
		SectionID:        &sectionID,
		Type:             suggestion.TypeAddKeywords,
		SuggestedContent: "Add keywords",
		Applied:          true,
	}
	app := newTestApp(t, &stubResumeUC{}, &stubSuggestionUC{applied: applied})

	status, env := do(t, app, http.MethodPost, "/api/v1/suggestions/"+applied.ID.String()+"/apply", "", uuid.New())
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var data map[string]any
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data["applied"] != true || data["label"] != "Add Keywords" || data["section_id"] != sectionID.String() {
		t.Fatalf("unexpected data: %v", data)
	}

	missing := newTestApp(t, &stubResumeUC{}, &stubSuggestionUC{err: usecase.ErrSuggestionNotFound})
	if status, _ := do(t, missing, http.MethodDelete, "/api/v1/suggestions/"+uuid.NewString(), "", uuid.New()); status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if status, _ := do(t, missing, http.MethodPost, "/api/v1/suggestions/not-a-uuid/apply", "", uuid.New()); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", status)
	}
}

func TestSectionHandler_Add(t *testing.T) {
	uc := &stubResumeUC{section: resume.Section{ID: uuid.New(), Type: resume.SectionSkills, Content: resume.Payload{}}}
	app := newTestApp(t, uc, &stubSuggestionUC{})
	path := "/api/v1/resumes/" + uuid.NewString() + "/sections"

	status, env := do(t, app, http.MethodPost, path, `{"section_type":"skills"}`, uuid.New())
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", status, env.Message)
	}
	if uc.lastType != resume.SectionSkills {
		t.Fatalf("unexpected type %q", uc.lastType)
	}
	var data map[string]any
	_ = json.Unmarshal(env.Data, &data)
	if data["label"] != "Skills" {
		t.Fatalf("expected label, got %v", data)
	}

	if status, _ := do(t, app, http.MethodPost, path, `{"section_type":"hobbies"}`, uuid.New()); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}

	uc.err = usecase.ErrSectionTypeExists
	if status, _ := do(t, app, http.MethodPost, path, `{"section_type":"skills"}`, uuid.New()); status != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
}

func TestSectionHandler_UpdateContent(t *testing.T) {
	uc := &stubResumeUC{section: resume.Section{ID: uuid.New(), Type: resume.SectionSummary, Content: resume.Payload{"text": "x"}}}
	app := newTestApp(t, uc, &stubSuggestionUC{})
	path := "/api/v1/resumes/" + uuid.NewString() + "/sections/" + uuid.NewString()

	status, _ := do(t, app, http.MethodPatch, path, `{"content":{"text":"Updated"}}`, uuid.New())
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if uc.patch["text"] != "Updated" {
		t.Fatalf("unexpected patch: %v", uc.patch)
	}

	if status, _ := do(t, app, http.MethodPatch, path, `{"content":"Updated"}`, uuid.New()); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for non-object content, got %d", status)
	}
}

func TestResumeHandler_GetAndPreview(t *testing.T) {
	res := resume.Resume{ID: uuid.New(), Title: resume.DefaultTitle, Template: resume.DefaultTemplate}
	uc := &stubResumeUC{
		resume:  res,
		section: resume.Section{ID: uuid.New(), ResumeID: res.ID, Type: resume.SectionSummary},
		preview: usecase.ResumePreview{
			Resume: res,
			Sections: []usecase.PreviewSection{{
				ID:      uuid.New(),
				Type:    resume.SectionSkills,
				Content: resume.Skills{List: "Go, , SQL"},
			}},
		},
	}
	app := newTestApp(t, uc, &stubSuggestionUC{})

	status, env := do(t, app, http.MethodGet, "/api/v1/resumes/"+res.ID.String(), "", uuid.New())
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var detail struct {
		ID       uuid.UUID `json:"id"`
		Sections []struct {
			Content map[string]any `json:"content"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if detail.ID != res.ID || len(detail.Sections) != 1 || detail.Sections[0].Content == nil {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	status, env = do(t, app, http.MethodGet, "/api/v1/resumes/"+res.ID.String()+"/preview", "", uuid.New())
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var preview struct {
		Sections []struct {
			Label   string `json:"label"`
			Content struct {
				Skills []string `json:"skills"`
			} `json:"content"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(env.Data, &preview); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(preview.Sections) != 1 || preview.Sections[0].Label != "Skills" || len(preview.Sections[0].Content.Skills) != 2 {
		t.Fatalf("unexpected preview: %+v", preview)
	}

	if status, _ := do(t, app, http.MethodGet, "/api/v1/resumes/nope", "", uuid.New()); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	cases := []struct {
		name   string
		db     pinger
		status int
		cache  string
	}{
		{name: "healthy", db: stubPinger{}, status: fiber.StatusOK, cache: "down"},
		{name: "database down", db: stubPinger{err: errors.New("down")}, status: fiber.StatusServiceUnavailable, cache: "down"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			NewHealthHandler(tc.db, stubPinger{err: errors.New("no redis")}).RegisterRoutes(app)
			status, env := do(t, app, http.MethodGet, "/health", "", uuid.Nil)
			if status != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, status)
			}
			var data healthResponse
			if err := json.Unmarshal(env.Data, &data); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if data.Cache != tc.cache {
				t.Fatalf("expected cache %q, got %q", tc.cache, data.Cache)
			}
		})
	}
}
