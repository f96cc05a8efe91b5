package suggestion

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"

	"resume-builder/internal/domain/resume"

	"github.com/google/uuid"
)

// MaxSuggestions caps a single generation run. Extra drafts are cut from the tail.
const MaxSuggestions = 8

const (
	summaryMinLength     = 100
	descriptionMinLength = 50
	minSkills            = 5
)

const (
	summaryExpandAdvice  = " Consider expanding this summary to include more specific achievements, quantifiable results, and unique value propositions that set you apart from other candidates."
	summaryKeywordAdvice = " Add industry-specific keywords and highlight your years of experience to improve ATS compatibility and recruiter interest."
	skillsAdvice         = "Consider adding more relevant skills including: technical skills, soft skills, industry-specific tools, certifications, and languages. Aim for 8-12 skills that are relevant to your target role."
	educationLabel       = "Education section"
	educationAdvice      = "If you graduated with honors or maintained a GPA above 3.5, consider adding it to your education section. Also include relevant coursework, academic projects, or thesis topics if they're relevant to your target role."
	certificationsAdvice = "Consider adding a Certifications section to showcase your professional credentials and continuous learning. Industry certifications can significantly boost your resume's appeal."
	projectsAdvice       = "Add a Projects section to demonstrate practical experience and passion for your field. Include personal projects, open-source contributions, or freelance work that showcases your skills."
	experienceExpandFmt  = "For %s at %s, expand the description to include: specific responsibilities, quantifiable achievements (use numbers/percentages), technologies used, and impact on the organization. Use action verbs like 'Led', 'Developed', 'Increased', 'Reduced'."
	experienceMetricsFmt = "Add quantifiable metrics to your %s role. Examples: 'Increased sales by 25%%', 'Managed team of 10', 'Reduced costs by $50K', 'Improved efficiency by 30%%'. Numbers make your achievements more credible and impressive."
)

var digitRe = regexp.MustCompile(`\d`)

// SectionRule inspects one section of kind Kind and emits zero or more drafts.
// ResumeID is filled in by the engine.
type SectionRule struct {
	Name string
	Kind resume.SectionType
	Emit func(sectionID uuid.UUID, c resume.Content) []Draft
}

// ResumeRule looks at the section list as a whole and emits resume-level drafts.
type ResumeRule struct {
	Name string
	Emit func(sections []resume.Section) []Draft
}

type Engine struct {
	sectionRules []SectionRule
	resumeRules  []ResumeRule
	limit        int
}

func NewEngine(sectionRules []SectionRule, resumeRules []ResumeRule, limit int) *Engine {
	if limit <= 0 {
		limit = MaxSuggestions
	}
	return &Engine{sectionRules: sectionRules, resumeRules: resumeRules, limit: limit}
}

var defaultEngine = NewEngine(DefaultSectionRules(), DefaultResumeRules(), MaxSuggestions)

// Generate runs the default rule set.
func Generate(resumeID uuid.UUID, sections []resume.Section) []Draft {
	return defaultEngine.Generate(resumeID, sections)
}

// Generate evaluates section rules per section in list order, then resume
// rules, and returns the first e.limit drafts. It has no side effects.
func (e *Engine) Generate(resumeID uuid.UUID, sections []resume.Section) []Draft {
	out := make([]Draft, 0, e.limit)

	for _, sec := range sections {
		content := sec.View()
		if content == nil {
			continue
		}
		for _, r := range e.sectionRules {
			if r.Kind != sec.Type {
				continue
			}
			out = append(out, r.Emit(sec.ID, content)...)
		}
	}
	for _, r := range e.resumeRules {
		out = append(out, r.Emit(sections)...)
	}

	if len(out) > e.limit {
		out = out[:e.limit]
	}
	for i := range out {
		out[i].ResumeID = resumeID
	}
	return out
}

func DefaultSectionRules() []SectionRule {
	return []SectionRule{
		{Name: "summary_length", Kind: resume.SectionSummary, Emit: summaryLengthRule},
		{Name: "summary_keywords", Kind: resume.SectionSummary, Emit: summaryKeywordsRule},
		{Name: "experience_entries", Kind: resume.SectionExperience, Emit: experienceEntriesRule},
		{Name: "skills_count", Kind: resume.SectionSkills, Emit: skillsCountRule},
		{Name: "education_honors", Kind: resume.SectionEducation, Emit: educationHonorsRule},
	}
}

func DefaultResumeRules() []ResumeRule {
	return []ResumeRule{
		{Name: "missing_certifications", Emit: missingSectionRule(resume.SectionCertifications, certificationsAdvice)},
		{Name: "missing_projects", Emit: missingSectionRule(resume.SectionProjects, projectsAdvice)},
	}
}

func summaryLengthRule(sectionID uuid.UUID, c resume.Content) []Draft {
	s, ok := c.(resume.Summary)
	if !ok || s.Text == "" {
		return nil
	}
	if textLength(s.Text) >= summaryMinLength {
		return nil
	}
	return []Draft{sectionDraft(sectionID, TypeImproveContent, s.Text, s.Text+summaryExpandAdvice)}
}

func summaryKeywordsRule(sectionID uuid.UUID, c resume.Content) []Draft {
	s, ok := c.(resume.Summary)
	if !ok || s.Text == "" {
		return nil
	}
	lower := strings.ToLower(s.Text)
	if strings.Contains(lower, "experience") || strings.Contains(lower, "skilled") {
		return nil
	}
	return []Draft{sectionDraft(sectionID, TypeAddKeywords, s.Text, s.Text+summaryKeywordAdvice)}
}

// experienceEntriesRule runs every entry check against one entry before moving
// to the next entry.
func experienceEntriesRule(sectionID uuid.UUID, c resume.Content) []Draft {
	exp, ok := c.(resume.Experience)
	if !ok {
		return nil
	}
	var out []Draft
	for _, item := range exp.Items {
		if d, ok := shortDescriptionCheck(sectionID, item); ok {
			out = append(out, d)
		}
		if d, ok := missingMetricsCheck(sectionID, item); ok {
			out = append(out, d)
		}
	}
	return out
}

func shortDescriptionCheck(sectionID uuid.UUID, item resume.ExperienceItem) (Draft, bool) {
	if item.Description == "" || textLength(item.Description) >= descriptionMinLength {
		return Draft{}, false
	}
	original := item.Position + " at " + item.Company + ": " + item.Description
	suggested := fmt.Sprintf(experienceExpandFmt, item.Position, item.Company)
	return sectionDraft(sectionID, TypeImproveContent, original, suggested), true
}

func missingMetricsCheck(sectionID uuid.UUID, item resume.ExperienceItem) (Draft, bool) {
	if item.Description == "" || digitRe.MatchString(item.Description) {
		return Draft{}, false
	}
	original := item.Position + " description"
	suggested := fmt.Sprintf(experienceMetricsFmt, item.Position)
	return sectionDraft(sectionID, TypeAddKeywords, original, suggested), true
}

func skillsCountRule(sectionID uuid.UUID, c resume.Content) []Draft {
	s, ok := c.(resume.Skills)
	if !ok || s.List == "" {
		return nil
	}
	if len(s.Names()) >= minSkills {
		return nil
	}
	return []Draft{sectionDraft(sectionID, TypeImproveContent, s.List, skillsAdvice)}
}

func educationHonorsRule(sectionID uuid.UUID, c resume.Content) []Draft {
	edu, ok := c.(resume.Education)
	if !ok || !edu.HasItems {
		return nil
	}
	for _, item := range edu.Items {
		d := strings.ToLower(item.Degree)
		if strings.Contains(d, "gpa") || strings.Contains(d, "honors") {
			return nil
		}
	}
	return []Draft{sectionDraft(sectionID, TypeImproveContent, educationLabel, educationAdvice)}
}

func missingSectionRule(kind resume.SectionType, advice string) func([]resume.Section) []Draft {
	return func(sections []resume.Section) []Draft {
		if resume.HasSectionType(sections, kind) {
			return nil
		}
		return []Draft{{Type: TypeImproveContent, SuggestedContent: advice}}
	}
}

func sectionDraft(sectionID uuid.UUID, t Type, original, suggested string) Draft {
	id := sectionID
	return Draft{SectionID: &id, Type: t, OriginalContent: original, SuggestedContent: suggested}
}

// textLength counts UTF-16 code units so thresholds match browser string lengths.
func textLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}
