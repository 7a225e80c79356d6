package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"github.com/Zachkp/diary/internal/lang"
)

//go:embed schema.json
var schemaJSON []byte

// ErrInvalidContent is returned when a content file does not match the schema.
var ErrInvalidContent = errors.New("invalid content")

// Catalog holds the content and UI strings of every supported language.
type Catalog struct {
	content map[lang.Language]*Content
	ui      map[lang.Language]*UI
}

// Load reads content.<lang>.json and ui/<lang>.json for every language from
// fsys. Content files are checked against the embedded schema and their diary
// narratives rendered to sanitized HTML.
func Load(fsys fs.FS, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile content schema: %w", err)
	}
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy := narrativePolicy()

	c := &Catalog{
		content: make(map[lang.Language]*Content, len(lang.All)),
		ui:      make(map[lang.Language]*UI, len(lang.All)),
	}
	for _, l := range lang.All {
		doc, err := loadContent(fsys, "content."+l.String()+".json", schema)
		if err != nil {
			return nil, err
		}
		for i := range doc.Experiences {
			html, err := renderNarrative(md, policy, doc.Experiences[i].DiaryNarrative)
			if err != nil {
				return nil, fmt.Errorf("experience %s: %w", doc.Experiences[i].ID, err)
			}
			doc.Experiences[i].NarrativeHTML = html
		}
		c.content[l] = doc

		ui, err := loadUI(fsys, "ui/"+l.String()+".json", logger.With(zap.String("lang", l.String())))
		if err != nil {
			return nil, err
		}
		c.ui[l] = ui
	}
	return c, nil
}

// Content returns the content of l, falling back to the primary language.
func (c *Catalog) Content(l lang.Language) *Content {
	if doc, ok := c.content[l]; ok {
		return doc
	}
	return c.content[lang.Primary]
}

// UI returns the interface strings of l, falling back to the primary language.
func (c *Catalog) UI(l lang.Language) *UI {
	if ui, ok := c.ui[l]; ok {
		return ui
	}
	return c.ui[lang.Primary]
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource("content.schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile("content.schema.json")
}

func loadContent(fsys fs.FS, name string, schema *jsonschema.Schema) (*Content, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidContent, name, describe(err))
	}
	var doc Content
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &doc, nil
}

// describe flattens a schema validation error into "location: message" pairs.
func describe(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var parts []string
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			parts = append(parts, strings.TrimSpace(node.InstanceLocation+": "+node.Message))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return strings.Join(parts, "; ")
}

func narrativePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("span", "p")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

func renderNarrative(md goldmark.Markdown, policy *bluemonday.Policy, src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render narrative: %w", err)
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}
