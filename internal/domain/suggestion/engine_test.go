package suggestion

import (
	"reflect"
	"strings"
	"testing"

	"resume-builder/internal/domain/resume"

	"github.com/google/uuid"
)

func section(t resume.SectionType, content resume.Payload) resume.Section {
	return resume.Section{ID: uuid.New(), Type: t, Content: content}
}

func withCertsAndProjects(sections ...resume.Section) []resume.Section {
	return append(sections,
		section(resume.SectionCertifications, resume.Payload{}),
		section(resume.SectionProjects, resume.Payload{}),
	)
}

func TestGenerate_ShortSummaryScenario(t *testing.T) {
	resumeID := uuid.New()
	summary := section(resume.SectionSummary, resume.Payload{"text": "Short bio."})

	drafts := Generate(resumeID, []resume.Section{summary})
	if len(drafts) != 4 {
		t.Fatalf("expected 4 drafts, got %d", len(drafts))
	}

	want := []Type{TypeImproveContent, TypeAddKeywords, TypeImproveContent, TypeImproveContent}
	for i, d := range drafts {
		if d.Type != want[i] {
			t.Fatalf("draft %d: expected type %s, got %s", i, want[i], d.Type)
		}
		if d.ResumeID != resumeID {
			t.Fatalf("draft %d: resume id not stamped", i)
		}
	}

	if drafts[0].SectionID == nil || *drafts[0].SectionID != summary.ID {
		t.Fatalf("expected first draft tied to summary section")
	}
	if drafts[0].OriginalContent != "Short bio." {
		t.Fatalf("unexpected original content %q", drafts[0].OriginalContent)
	}
	if !strings.HasPrefix(drafts[0].SuggestedContent, "Short bio. Consider expanding") {
		t.Fatalf("unexpected suggested content %q", drafts[0].SuggestedContent)
	}
	if !strings.HasPrefix(drafts[1].SuggestedContent, "Short bio. Add industry-specific keywords") {
		t.Fatalf("unexpected keyword suggestion %q", drafts[1].SuggestedContent)
	}
	if drafts[2].SectionID != nil || !strings.Contains(drafts[2].SuggestedContent, "Certifications section") {
		t.Fatalf("expected resume-level certifications draft third, got %+v", drafts[2])
	}
	if drafts[3].SectionID != nil || !strings.Contains(drafts[3].SuggestedContent, "Projects section") {
		t.Fatalf("expected resume-level projects draft fourth, got %+v", drafts[3])
	}
	if drafts[2].OriginalContent != "" || drafts[3].OriginalContent != "" {
		t.Fatalf("resume-level drafts must have empty original content")
	}
}

func TestGenerate_SummaryLengthBoundary(t *testing.T) {
	text := "experience " + strings.Repeat("x", 89)
	if len(text) != 100 {
		t.Fatalf("fixture length %d", len(text))
	}

	drafts := Generate(uuid.New(), withCertsAndProjects(section(resume.SectionSummary, resume.Payload{"text": text})))
	if len(drafts) != 0 {
		t.Fatalf("length 100 must not trigger, got %d drafts", len(drafts))
	}

	drafts = Generate(uuid.New(), withCertsAndProjects(section(resume.SectionSummary, resume.Payload{"text": text[:99]})))
	if len(drafts) != 1 || drafts[0].Type != TypeImproveContent {
		t.Fatalf("length 99 must trigger one improve_content draft, got %+v", drafts)
	}
}

func TestGenerate_SummaryKeywordsCaseInsensitive(t *testing.T) {
	long := strings.Repeat("y", 120)
	for _, text := range []string{"Highly SKILLED engineer " + long, "Ten years of Experience " + long} {
		drafts := Generate(uuid.New(), withCertsAndProjects(section(resume.SectionSummary, resume.Payload{"text": text})))
		if len(drafts) != 0 {
			t.Fatalf("expected no drafts for %q, got %d", text[:24], len(drafts))
		}
	}
}

func TestGenerate_SkillsCount(t *testing.T) {
	six := section(resume.SectionSkills, resume.Payload{"list": "Go, Rust, SQL, Docker, Kubernetes, Testing"})
	drafts := Generate(uuid.New(), []resume.Section{six})
	if len(drafts) != 2 {
		t.Fatalf("expected only the two resume-level drafts, got %d", len(drafts))
	}
	for _, d := range drafts {
		if d.SectionID != nil {
			t.Fatalf("expected resume-level drafts only")
		}
	}

	five := section(resume.SectionSkills, resume.Payload{"list": "a,b,c,d,e"})
	if got := Generate(uuid.New(), withCertsAndProjects(five)); len(got) != 0 {
		t.Fatalf("5 skills must not trigger, got %d", len(got))
	}

	four := section(resume.SectionSkills, resume.Payload{"list": "a,b,c,d"})
	got := Generate(uuid.New(), withCertsAndProjects(four))
	if len(got) != 1 || got[0].OriginalContent != "a,b,c,d" {
		t.Fatalf("4 skills must trigger with raw list as original, got %+v", got)
	}

	padded := section(resume.SectionSkills, resume.Payload{"list": "a, ,b,,c,d, e ,"})
	if got := Generate(uuid.New(), withCertsAndProjects(padded)); len(got) != 0 {
		t.Fatalf("empty pieces must be dropped before counting, got %d drafts", len(got))
	}
}

func TestGenerate_ExperienceScenario(t *testing.T) {
	exp := section(resume.SectionExperience, resume.Payload{"items": []any{
		map[string]any{
			"position":    "Engineer",
			"company":     "Acme",
			"description": "Built things and improved systems significantly over time.",
		},
	}})

	drafts := Generate(uuid.New(), []resume.Section{exp})
	if len(drafts) != 3 {
		t.Fatalf("expected 3 drafts, got %d", len(drafts))
	}
	if drafts[0].Type != TypeAddKeywords {
		t.Fatalf("expected metrics draft first, got %s", drafts[0].Type)
	}
	if drafts[0].OriginalContent != "Engineer description" {
		t.Fatalf("unexpected original %q", drafts[0].OriginalContent)
	}
	if !strings.Contains(drafts[0].SuggestedContent, "'Increased sales by 25%'") {
		t.Fatalf("unexpected advice %q", drafts[0].SuggestedContent)
	}
}

func TestGenerate_ExperienceChecksRunPerEntry(t *testing.T) {
	exp := section(resume.SectionExperience, resume.Payload{"items": []any{
		map[string]any{"position": "Dev", "company": "A", "description": "Wrote code."},
		map[string]any{"position": "Lead", "company": "B", "description": "Ran things."},
		map[string]any{"position": "Intern", "company": "C"},
		map[string]any{"position": "Ops", "company": "D", "description": "Cut p99 latency by 40% across 12 services."},
	}})

	drafts := Generate(uuid.New(), withCertsAndProjects(exp))
	got := make([]string, 0, len(drafts))
	for _, d := range drafts {
		got = append(got, string(d.Type)+":"+d.OriginalContent)
	}
	want := []string{
		"improve_content:Dev at A: Wrote code.",
		"add_keywords:Dev description",
		"improve_content:Lead at B: Ran things.",
		"add_keywords:Lead description",
		"improve_content:Ops at D: Cut p99 latency by 40% across 12 services.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected drafts:\n got=%v\nwant=%v", got, want)
	}
	if !strings.HasPrefix(drafts[0].SuggestedContent, "For Dev at A, expand the description") {
		t.Fatalf("unexpected advice %q", drafts[0].SuggestedContent)
	}
}

func TestGenerate_EducationHonors(t *testing.T) {
	plain := section(resume.SectionEducation, resume.Payload{"items": []any{
		map[string]any{"institution": "MIT", "degree": "BSc Computer Science"},
		map[string]any{"institution": "CMU", "degree": "MSc"},
	}})
	drafts := Generate(uuid.New(), withCertsAndProjects(plain))
	if len(drafts) != 1 {
		t.Fatalf("expected single education draft, got %d", len(drafts))
	}
	if drafts[0].OriginalContent != "Education section" {
		t.Fatalf("unexpected original %q", drafts[0].OriginalContent)
	}

	honors := section(resume.SectionEducation, resume.Payload{"items": []any{
		map[string]any{"degree": "BSc"},
		map[string]any{"degree": "BA, GPA 3.9"},
	}})
	if got := Generate(uuid.New(), withCertsAndProjects(honors)); len(got) != 0 {
		t.Fatalf("gpa mention must suppress, got %d", len(got))
	}

	empty := section(resume.SectionEducation, resume.Payload{"items": []any{}})
	if got := Generate(uuid.New(), withCertsAndProjects(empty)); len(got) != 1 {
		t.Fatalf("empty items list still counts as present, got %d", len(got))
	}

	absent := section(resume.SectionEducation, resume.Payload{})
	if got := Generate(uuid.New(), withCertsAndProjects(absent)); len(got) != 0 {
		t.Fatalf("missing items must not trigger, got %d", len(got))
	}
}

func TestGenerate_CapAtEight(t *testing.T) {
	items := make([]any, 0, 10)
	for i := 0; i < 10; i++ {
		items = append(items, map[string]any{"position": "P", "company": "C", "description": "short"})
	}
	exp := section(resume.SectionExperience, resume.Payload{"items": items})

	drafts := Generate(uuid.New(), []resume.Section{exp})
	if len(drafts) != MaxSuggestions {
		t.Fatalf("expected %d drafts, got %d", MaxSuggestions, len(drafts))
	}
	for _, d := range drafts {
		if d.SectionID == nil {
			t.Fatalf("resume-level drafts should have been truncated away")
		}
	}
}

func TestGenerate_ResumeRulesFireOnce(t *testing.T) {
	sections := []resume.Section{
		section(resume.SectionPersonalInfo, resume.Payload{"fullName": "Ada"}),
		section(resume.SectionSkills, resume.Payload{"list": "a,b,c,d,e,f"}),
		section(resume.SectionEducation, resume.Payload{"items": []any{map[string]any{"degree": "PhD with honors"}}}),
	}
	drafts := Generate(uuid.New(), sections)
	if len(drafts) != 2 {
		t.Fatalf("expected exactly 2 resume-level drafts, got %d", len(drafts))
	}
}

func TestGenerate_MalformedContentIsIgnored(t *testing.T) {
	sections := withCertsAndProjects(
		section(resume.SectionSummary, resume.Payload{"text": 42}),
		section(resume.SectionExperience, resume.Payload{"items": "not a list"}),
		section(resume.SectionExperience, resume.Payload{"items": []any{"oops", map[string]any{"description": 7}}}),
		section(resume.SectionSkills, resume.Payload{"list": []any{"a"}}),
		section(resume.SectionEducation, resume.Payload{"items": map[string]any{}}),
		section(resume.SectionType("hobbies"), resume.Payload{"text": "x"}),
		section(resume.SectionSummary, nil),
	)
	if got := Generate(uuid.New(), sections); len(got) != 0 {
		t.Fatalf("expected malformed payloads to be treated as absent, got %+v", got)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	resumeID := uuid.New()
	sections := []resume.Section{
		section(resume.SectionSummary, resume.Payload{"text": "Builder of things."}),
		section(resume.SectionSkills, resume.Payload{"list": "Go"}),
	}
	a := Generate(resumeID, sections)
	b := Generate(resumeID, sections)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical output for identical input")
	}
}

func TestGenerate_NilSections(t *testing.T) {
	drafts := Generate(uuid.New(), nil)
	if len(drafts) != 2 {
		t.Fatalf("expected both missing-section drafts, got %d", len(drafts))
	}
}

func TestTextLength_CountsUTF16Units(t *testing.T) {
	if n := textLength("héllo"); n != 5 {
		t.Fatalf("expected 5, got %d", n)
	}
	if n := textLength("🙂"); n != 2 {
		t.Fatalf("expected surrogate pair to count 2, got %d", n)
	}
}

func TestEngine_CustomRules(t *testing.T) {
	grammar := SectionRule{
		Name: "grammar",
		Kind: resume.SectionSummary,
		Emit: func(sectionID uuid.UUID, c resume.Content) []Draft {
			return []Draft{{SectionID: &sectionID, Type: TypeGrammarCheck, SuggestedContent: "check"}}
		},
	}
	e := NewEngine([]SectionRule{grammar}, nil, 1)
	drafts := e.Generate(uuid.New(), []resume.Section{
		section(resume.SectionSummary, resume.Payload{}),
		section(resume.SectionSummary, resume.Payload{}),
	})
	if len(drafts) != 1 || drafts[0].Type != TypeGrammarCheck {
		t.Fatalf("unexpected drafts %+v", drafts)
	}
}
