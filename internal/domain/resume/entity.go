package resume

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTitle    = "Untitled Resume"
	DefaultTemplate = "modern"
)

type SectionType string

const (
	SectionPersonalInfo   SectionType = "personal_info"
	SectionSummary        SectionType = "summary"
	SectionExperience     SectionType = "experience"
	SectionEducation      SectionType = "education"
	SectionSkills         SectionType = "skills"
	SectionProjects       SectionType = "projects"
	SectionCertifications SectionType = "certifications"
)

// SectionTypes lists every section kind in the order the editor offers them.
var SectionTypes = []SectionType{
	SectionPersonalInfo,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
}

var sectionLabels = map[SectionType]string{
	SectionPersonalInfo:   "Personal Information",
	SectionSummary:        "Professional Summary",
	SectionExperience:     "Work Experience",
	SectionEducation:      "Education",
	SectionSkills:         "Skills",
	SectionProjects:       "Projects",
	SectionCertifications: "Certifications",
}

func ParseSectionType(s string) (SectionType, bool) {
	t := SectionType(s)
	return t, t.Valid()
}

func (t SectionType) Valid() bool {
	_, ok := sectionLabels[t]
	return ok
}

func (t SectionType) Label() string {
	if l, ok := sectionLabels[t]; ok {
		return l
	}
	return string(t)
}

type Resume struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Template  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Section struct {
	ID         uuid.UUID
	ResumeID   uuid.UUID
	Type       SectionType
	Content    Payload
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// View decodes the stored payload into the typed shape for the section's kind.
func (s Section) View() Content {
	return Decode(s.Type, s.Content)
}

// HasSectionType reports whether a section of kind t is already present.
func HasSectionType(sections []Section, t SectionType) bool {
	for _, s := range sections {
		if s.Type == t {
			return true
		}
	}
	return false
}

// NextOrderIndex returns max(order_index)+1, or 0 for an empty resume.
func NextOrderIndex(sections []Section) int {
	if len(sections) == 0 {
		return 0
	}
	max := sections[0].OrderIndex
	for _, s := range sections[1:] {
		if s.OrderIndex > max {
			max = s.OrderIndex
		}
	}
	return max + 1
}
