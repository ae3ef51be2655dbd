// Package prompts holds the LLM prompt templates shipped with the binary.
// Templates live in embedded JSON files keyed by name, with {{.Key}}
// placeholders filled in by Format.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

// Parsing an embedded file happens once per process.
var (
	mu     sync.Mutex
	parsed = map[string]map[string]string{}
)

// Get returns the template stored under key in the given embedded file.
func Get(filename, key string) (string, error) {
	templates, err := load(filename)
	if err != nil {
		return "", err
	}
	tmpl, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt %q not found in %s", key, filename)
	}
	return tmpl, nil
}

// MustGet is Get for templates compiled into the binary; a missing one is
// a packaging bug, so it panics.
func MustGet(filename, key string) string {
	tmpl, err := Get(filename, key)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// Format substitutes every {{.Key}} placeholder with the matching value.
// Unknown placeholders are left in place.
func Format(tmpl string, values map[string]string) string {
	for key, value := range values {
		tmpl = strings.ReplaceAll(tmpl, "{{."+key+"}}", value)
	}
	return tmpl
}

func load(filename string) (map[string]string, error) {
	mu.Lock()
	defer mu.Unlock()

	if templates, ok := parsed[filename]; ok {
		return templates, nil
	}

	data, err := files.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read prompt file %s: %w", filename, err)
	}
	var templates map[string]string
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parse prompt file %s: %w", filename, err)
	}

	parsed[filename] = templates
	return templates, nil
}
