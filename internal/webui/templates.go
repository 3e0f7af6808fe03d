package webui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

var templateFuncs = template.FuncMap{
	"title": cases.Title(language.English).String,
}

// templateCache holds compiled page templates. Templates come from the
// embedded defaults unless an override directory provides a file of the same
// name; Clear drops compiled templates so the next render recompiles from
// disk, which is what dev mode uses to pick up live template edits.
type templateCache struct {
	mu          sync.Mutex
	overrideDir string
	compiled    map[string]*template.Template
}

func newTemplateCache(overrideDir string) *templateCache {
	return &templateCache{
		overrideDir: overrideDir,
		compiled:    make(map[string]*template.Template),
	}
}

// Clear drops every compiled template. Safe to race; the worst case is a
// wasted recompilation.
func (c *templateCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.compiled = make(map[string]*template.Template)
}

// Render executes the named page template ("index", "framework") with data.
func (c *templateCache) Render(w io.Writer, name string, data any) error {
	tmpl, err := c.lookup(name)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

func (c *templateCache) lookup(name string) (*template.Template, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tmpl, ok := c.compiled[name]; ok {
		return tmpl, nil
	}

	filename := name + ".html.tmpl"
	text, err := c.source(filename)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(filename).Funcs(templateFuncs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", filename, err)
	}
	c.compiled[name] = tmpl
	return tmpl, nil
}

func (c *templateCache) source(filename string) (string, error) {
	if c.overrideDir != "" {
		path := filepath.Join(c.overrideDir, filename)
		if data, err := os.ReadFile(path); err == nil {
			return string(data), nil
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("read template %s: %w", path, err)
		}
	}
	data, err := embeddedTemplates.ReadFile("templates/" + filename)
	if err != nil {
		return "", fmt.Errorf("unknown template %s: %w", filename, err)
	}
	return string(data), nil
}
