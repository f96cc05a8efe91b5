package resume

import "strings"

// Payload is the stored, open-ended content of a section. Readers must never
// assume a key exists or holds the expected type.
type Payload map[string]any

// Merge applies patch on top of p at the top level only. List values such as
// "items" are replaced wholesale. p is left untouched.
func (p Payload) Merge(patch Payload) Payload {
	out := make(Payload, len(p)+len(patch))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Content is the typed view of a section payload. The set of implementations
// is closed; switch on the concrete type to handle each section kind.
type Content interface {
	Kind() SectionType
	isContent()
}

type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
}

type Summary struct {
	Text string `json:"text"`
}

type ExperienceItem struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Experience struct {
	Items []ExperienceItem `json:"items"`
}

type EducationItem struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationDate string `json:"graduationDate"`
}

type Education struct {
	Items []EducationItem `json:"items"`
	// HasItems is true when the payload carried an items list, even an empty one.
	HasItems bool `json:"-"`
}

type Skills struct {
	List string `json:"list"`
}

type ProjectItem struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	Link         string `json:"link"`
}

type Projects struct {
	Items []ProjectItem `json:"items"`
}

type CertificationItem struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	Date         string `json:"date"`
	CredentialID string `json:"credentialId"`
}

type Certifications struct {
	Items []CertificationItem `json:"items"`
}

func (PersonalInfo) Kind() SectionType   { return SectionPersonalInfo }
func (Summary) Kind() SectionType        { return SectionSummary }
func (Experience) Kind() SectionType     { return SectionExperience }
func (Education) Kind() SectionType      { return SectionEducation }
func (Skills) Kind() SectionType         { return SectionSkills }
func (Projects) Kind() SectionType       { return SectionProjects }
func (Certifications) Kind() SectionType { return SectionCertifications }

func (PersonalInfo) isContent()   {}
func (Summary) isContent()        {}
func (Experience) isContent()     {}
func (Education) isContent()      {}
func (Skills) isContent()         {}
func (Projects) isContent()       {}
func (Certifications) isContent() {}

// Names splits the comma separated list, trimming each piece and dropping empties.
func (s Skills) Names() []string {
	if s.List == "" {
		return []string{}
	}
	parts := strings.Split(s.List, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Decode builds the default-filled typed view of p for kind t. Missing keys and
// values of the wrong type decode as empty. Unknown kinds decode to nil.
func Decode(t SectionType, p Payload) Content {
	switch t {
	case SectionPersonalInfo:
		return PersonalInfo{
			FullName: stringField(p, "fullName"),
			Email:    stringField(p, "email"),
			Phone:    stringField(p, "phone"),
			Location: stringField(p, "location"),
			LinkedIn: stringField(p, "linkedin"),
		}
	case SectionSummary:
		return Summary{Text: stringField(p, "text")}
	case SectionExperience:
		raw, _ := itemsField(p)
		items := make([]ExperienceItem, 0, len(raw))
		for _, m := range raw {
			items = append(items, ExperienceItem{
				Company:     stringField(m, "company"),
				Position:    stringField(m, "position"),
				StartDate:   stringField(m, "startDate"),
				EndDate:     stringField(m, "endDate"),
				Description: stringField(m, "description"),
			})
		}
		return Experience{Items: items}
	case SectionEducation:
		raw, ok := itemsField(p)
		items := make([]EducationItem, 0, len(raw))
		for _, m := range raw {
			items = append(items, EducationItem{
				Institution:    stringField(m, "institution"),
				Degree:         stringField(m, "degree"),
				Field:          stringField(m, "field"),
				GraduationDate: stringField(m, "graduationDate"),
			})
		}
		return Education{Items: items, HasItems: ok}
	case SectionSkills:
		return Skills{List: stringField(p, "list")}
	case SectionProjects:
		raw, _ := itemsField(p)
		items := make([]ProjectItem, 0, len(raw))
		for _, m := range raw {
			items = append(items, ProjectItem{
				Name:         stringField(m, "name"),
				Description:  stringField(m, "description"),
				Technologies: stringField(m, "technologies"),
				Link:         stringField(m, "link"),
			})
		}
		return Projects{Items: items}
	case SectionCertifications:
		raw, _ := itemsField(p)
		items := make([]CertificationItem, 0, len(raw))
		for _, m := range raw {
			items = append(items, CertificationItem{
				Name:         stringField(m, "name"),
				Issuer:       stringField(m, "issuer"),
				Date:         stringField(m, "date"),
				CredentialID: stringField(m, "credentialId"),
			})
		}
		return Certifications{Items: items}
	default:
		return nil
	}
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// itemsField returns the "items" list as objects. Entries that are not objects
// are kept as empty entries so indexes stay aligned with the stored list.
func itemsField(p Payload) ([]map[string]any, bool) {
	if p == nil {
		return nil, false
	}
	switch v := p["items"].(type) {
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, e := range v {
			m, _ := e.(map[string]any)
			out = append(out, m)
		}
		return out, true
	case []map[string]any:
		return v, true
	default:
		return nil, false
	}
}
