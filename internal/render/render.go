// Package render is the text substitution engine for scaffolded files.
//
// It wraps text/template behind a small surface: any implementation that can
// take template text plus a context map and return the substituted text is
// interchangeable from the scaffolder's point of view.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"unicode"
)

var (
	engineReady bool
	engineFuncs template.FuncMap
)

// Setup performs one-time engine initialization (building the shared helper
// function map). It is guarded by a process-scoped flag and must be called
// before any rendering; the pipeline calls it explicitly rather than relying
// on package init.
func Setup() {
	if engineReady {
		return
	}
	engineFuncs = template.FuncMap{
		"pascalCase": PascalCase,
		"camelCase":  CamelCase,
		"snakeCase":  SnakeCase,
		"kebabCase":  KebabCase,
		"upper":      strings.ToUpper,
		"lower":      strings.ToLower,
		"trim":       strings.TrimSpace,
		"quote":      func(s string) string { return fmt.Sprintf("%q", s) },
		"replace":    strings.ReplaceAll,
		"hasPrefix":  strings.HasPrefix,
		"hasSuffix":  strings.HasSuffix,
		"join":       strings.Join,
	}
	engineReady = true
}

// Renderer parses and executes file templates with caching.
type Renderer struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
}

// New creates a renderer. Setup must have been called first.
func New() *Renderer {
	return &Renderer{cache: make(map[string]*template.Template)}
}

// Render substitutes ctx into the template text. The name is used for caching
// and error messages; template source paths work well.
func (r *Renderer) Render(name, text string, ctx map[string]any) (string, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[name]
	r.mu.RUnlock()

	if !ok {
		var err error
		tmpl, err = template.New(name).Funcs(engineFuncs).Parse(text)
		if err != nil {
			return "", fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.mu.Lock()
		r.cache[name] = tmpl
		r.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("rendering template %s: %w", name, err)
	}
	return buf.String(), nil
}

// PascalCase converts snake_case to PascalCase.
// Examples: user_name → UserName, send_email → SendEmail.
func PascalCase(s string) string {
	parts := strings.Split(s, "_")
	for i, part := range parts {
		if part != "" {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, "")
}

// CamelCase converts snake_case to camelCase.
func CamelCase(s string) string {
	p := PascalCase(s)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// SnakeCase converts PascalCase or camelCase to snake_case.
func SnakeCase(s string) string {
	if strings.Contains(s, "_") {
		return strings.ToLower(s)
	}
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// KebabCase converts snake_case to kebab-case (URL segments).
func KebabCase(s string) string {
	return strings.ReplaceAll(s, "_", "-")
}
