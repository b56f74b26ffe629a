// Package templates manages resume HTML templates: discovery from an
// on-disk directory plus embedded defaults, category inference from
// filenames, and keyword-affinity ranking against a job posting.
package templates

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed defaults/*.html
var defaultTemplates embed.FS

// Category is a resume template style category.
type Category string

const (
	CategorySales      Category = "sales"
	CategoryAccounting Category = "accounting"
	CategoryTechnical  Category = "technical"
	CategoryLegal      Category = "legal"
	CategoryManagement Category = "management"
	CategoryModern     Category = "modern"
	CategoryClassic    Category = "classic"
)

// categoryTokens maps filename tokens to categories. More specific
// tokens are checked before generic ones.
var categoryTokens = []struct {
	token    string
	category Category
}{
	{"legal", CategoryLegal},
	{"law", CategoryLegal},
	{"account", CategoryAccounting},
	{"finance", CategoryAccounting},
	{"sales", CategorySales},
	{"management", CategoryManagement},
	{"manager", CategoryManagement},
	{"executive", CategoryManagement},
	{"tech", CategoryTechnical},
	{"engineer", CategoryTechnical},
	{"developer", CategoryTechnical},
	{"classic", CategoryClassic},
	{"traditional", CategoryClassic},
	{"modern", CategoryModern},
}

// InferCategory derives a template's category from its filename.
// Unrecognized names default to modern.
func InferCategory(filename string) Category {
	name := strings.ToLower(filepath.Base(filename))
	for _, entry := range categoryTokens {
		if strings.Contains(name, entry.token) {
			return entry.category
		}
	}
	return CategoryModern
}

// Template is one loadable resume template.
type Template struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	HTML     string   `json:"-"`
}

// Registry holds the available templates. Directory templates override
// embedded defaults with the same ID.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry loads the embedded default templates and overlays any
// *.html files found in dir. An empty dir loads defaults only.
func NewRegistry(dir string) (*Registry, error) {
	registry := &Registry{templates: make(map[string]*Template)}

	entries, err := defaultTemplates.ReadDir("defaults")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded templates: %w", err)
	}
	for _, entry := range entries {
		content, err := defaultTemplates.ReadFile("defaults/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded template %s: %w", entry.Name(), err)
		}
		registry.add(entry.Name(), string(content))
	}

	if dir != "" {
		if err := registry.loadDir(dir); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

func (r *Registry) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read template directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", entry.Name(), err)
		}
		r.add(entry.Name(), string(content))
	}
	return nil
}

func (r *Registry) add(filename, html string) {
	id := strings.TrimSuffix(filename, ".html")
	r.templates[id] = &Template{
		ID:       id,
		Name:     displayName(id),
		Category: InferCategory(filename),
		HTML:     html,
	}
}

// Get returns a template by ID, or nil when unknown.
func (r *Registry) Get(id string) *Template {
	return r.templates[id]
}

// List returns all templates ordered by ID.
func (r *Registry) List() []*Template {
	list := make([]*Template, 0, len(r.templates))
	for _, template := range r.templates {
		list = append(list, template)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// displayName turns a file stem like "modern_two_column" into
// "Modern Two Column".
func displayName(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
