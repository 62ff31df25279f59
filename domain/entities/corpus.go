package entities

import "strings"

// RetrievedDocument is one candidate returned by the retrieval pipeline.
type RetrievedDocument struct {
	Identifier string            `json:"identifier"`
	Score      float64           `json:"score"`
	Metadata   map[string]string `json:"metadata"`
}

// Indexable is a source record that can be embedded and upserted into the
// vector store under a stable identifier.
type Indexable interface {
	DocumentID() string
	SearchText() string
}

// Project is a portfolio project entry.
type Project struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Stack       []string `json:"stack"`
	Year        int      `json:"year"`
}

func (p Project) DocumentID() string { return "project:" + p.Slug }

func (p Project) SearchText() string {
	return p.Name + ". " + p.Description + " Built with " + strings.Join(p.Stack, ", ") + "."
}

// Venture is a founded or co-founded business entry.
type Venture struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Role        string `json:"role"`
}

func (v Venture) DocumentID() string { return "venture:" + v.Slug }

func (v Venture) SearchText() string {
	return v.Name + " (" + v.Role + "). " + v.Description
}

// ResumeEntry is a single work-history entry.
type ResumeEntry struct {
	Slug    string `json:"slug"`
	Company string `json:"company"`
	Title   string `json:"title"`
	Period  string `json:"period"`
	Summary string `json:"summary"`
}

func (r ResumeEntry) DocumentID() string { return "resume:" + r.Slug }

func (r ResumeEntry) SearchText() string {
	return r.Title + " at " + r.Company + " (" + r.Period + "). " + r.Summary
}

// SkillGroup is a named cluster of related skills.
type SkillGroup struct {
	Slug   string   `json:"slug"`
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

func (s SkillGroup) DocumentID() string { return "skills:" + s.Slug }

func (s SkillGroup) SearchText() string {
	return s.Name + ": " + strings.Join(s.Skills, ", ")
}

// Corpus is the in-memory catalog of every indexable source record. It seeds
// the offline indexer, the deep-dive entity resolution list, and the
// substring fallback search.
type Corpus struct {
	Projects []Project
	Ventures []Venture
	Resume   []ResumeEntry
	Skills   []SkillGroup
}

// All returns every record in the corpus in a stable order.
func (c Corpus) All() []Indexable {
	out := make([]Indexable, 0, len(c.Projects)+len(c.Ventures)+len(c.Resume)+len(c.Skills))
	for _, p := range c.Projects {
		out = append(out, p)
	}
	for _, v := range c.Ventures {
		out = append(out, v)
	}
	for _, r := range c.Resume {
		out = append(out, r)
	}
	for _, s := range c.Skills {
		out = append(out, s)
	}
	return out
}

// ProjectBySlug resolves a project by its slug or name, case-insensitively.
func (c Corpus) ProjectBySlug(key string) (Project, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, p := range c.Projects {
		if strings.ToLower(p.Slug) == key || strings.ToLower(p.Name) == key {
			return p, true
		}
	}
	return Project{}, false
}
