// Package pathseed holds the built-in critical path templates. Templates
// are YAML files compiled into the binary; they are parsed once at
// startup.
package pathseed

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFS embed.FS

type Template struct {
	Key             string          `yaml:"key"`
	Title           string          `yaml:"title"`
	Description     string          `yaml:"description"`
	OverallTimeline string          `yaml:"overall_timeline"`
	Phases          []TemplatePhase `yaml:"phases"`
}

type TemplatePhase struct {
	Name        string   `yaml:"name"`
	Duration    string   `yaml:"duration"`
	Objective   string   `yaml:"objective"`
	Deliverable string   `yaml:"deliverable"`
	KeyTasks    []string `yaml:"key_tasks"`
}

var (
	loadOnce  sync.Once
	templates map[string]Template
	loadErr   error
)

func load() {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		loadErr = fmt.Errorf("read templates dir: %w", err)
		return
	}
	templates = make(map[string]Template, len(entries))
	for _, e := range entries {
		raw, err := templateFS.ReadFile("templates/" + e.Name())
		if err != nil {
			loadErr = fmt.Errorf("read template %s: %w", e.Name(), err)
			return
		}
		var t Template
		if err := yaml.Unmarshal(raw, &t); err != nil {
			loadErr = fmt.Errorf("parse template %s: %w", e.Name(), err)
			return
		}
		if t.Key == "" {
			loadErr = fmt.Errorf("template %s has no key", e.Name())
			return
		}
		templates[t.Key] = t
	}
}

// Get returns the template registered under key.
func Get(key string) (Template, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return Template{}, loadErr
	}
	t, ok := templates[key]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q", key)
	}
	return t, nil
}

// Keys lists the available template keys in sorted order.
func Keys() ([]string, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]string, 0, len(templates))
	for k := range templates {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}
