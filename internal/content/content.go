package content

import (
	"html/template"
)

// Content is everything shown about the site owner in one language.
type Content struct {
	Personal    Personal     `json:"personal"`
	Contact     Contact      `json:"contact"`
	Experiences []Experience `json:"experiences"`
	Skills      []Skill      `json:"skills"`
}

type Personal struct {
	Name         string  `json:"name"`
	Title        string  `json:"title"`
	Tagline      string  `json:"tagline,omitempty"`
	CurrentSetup string  `json:"currentSetup,omitempty"`
	Hobbies      []Hobby `json:"hobbies"`
}

type Hobby struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Icon      string `json:"icon,omitempty"`
	Narrative string `json:"narrative"`
}

type Contact struct {
	Email    string `json:"email"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
}

// Experience is one timeline entry. DiaryNarrative is Markdown; the sanitized
// HTML rendering is kept in NarrativeHTML.
type Experience struct {
	ID                 string     `json:"id"`
	Date               string     `json:"date"`
	ProfessionalTitle  string     `json:"professionalTitle"`
	Company            string     `json:"company"`
	DiaryNarrative     string     `json:"diaryNarrative"`
	ResumeBulletPoints []string   `json:"resumeBulletPoints"`
	IsResumeWorthy     bool       `json:"isResumeWorthy"`
	DoodleType         string     `json:"doodleType"`
	TechStack          *TechStack `json:"techStack,omitempty"`

	NarrativeHTML template.HTML `json:"-"`
}

type TechStack struct {
	OS         []string `json:"os,omitempty"`
	Languages  []string `json:"languages,omitempty"`
	Databases  []string `json:"databases,omitempty"`
	Cloud      []string `json:"cloud,omitempty"`
	Frameworks []string `json:"frameworks,omitempty"`
	Tools      []string `json:"tools,omitempty"`
}

// Group is a labelled list of a tech stack, in display order.
type Group struct {
	Key   string
	Items []string
}

// Groups lists the non-empty tech stack groups.
func (t *TechStack) Groups() []Group {
	if t == nil {
		return nil
	}
	var out []Group
	for _, g := range []Group{
		{"os", t.OS},
		{"languages", t.Languages},
		{"databases", t.Databases},
		{"cloud", t.Cloud},
		{"frameworks", t.Frameworks},
		{"tools", t.Tools},
	} {
		if len(g.Items) > 0 {
			out = append(out, g)
		}
	}
	return out
}

type Skill struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
}

var categoryColors = map[string]string{
	"cloud":    "#3B5998",
	"database": "#27ae60",
	"mapping":  "#e74c3c",
	"frontend": "#9b59b6",
	"backend":  "#f39c12",
	"language": "#1abc9c",
}

// Color is the accent color of the skill category.
func (s Skill) Color() string {
	if c, ok := categoryColors[s.Category]; ok {
		return c
	}
	return "#2D2D2D"
}

var doodlePoses = map[string]string{
	"celebration": "/static/avatar/victory_pose.png",
	"coding":      "/static/avatar/coding_pose.png",
	"newbie":      "/static/avatar/thinking_pose.png",
}

// Pose is the avatar illustration for the experience's doodle type.
func (e Experience) Pose() string {
	if p, ok := doodlePoses[e.DoodleType]; ok {
		return p
	}
	return doodlePoses["coding"]
}

// ResumeExperiences returns only the experiences marked resume-worthy.
func (c *Content) ResumeExperiences() []Experience {
	out := make([]Experience, 0, len(c.Experiences))
	for _, e := range c.Experiences {
		if e.IsResumeWorthy {
			out = append(out, e)
		}
	}
	return out
}
