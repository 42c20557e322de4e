package style

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultSheet []byte

type adaptiveColor struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

type styleSpec struct {
	Foreground string `yaml:"foreground"`
	Bold       bool   `yaml:"bold"`
	Italic     bool   `yaml:"italic"`
	Underline  bool   `yaml:"underline"`
	Faint      bool   `yaml:"faint"`
}

type sheet struct {
	Colors map[string]adaptiveColor `yaml:"colors"`
	Styles map[string]styleSpec     `yaml:"styles"`
}

// Registry maps style names to lipgloss styles.
type Registry struct {
	styles map[string]lipgloss.Style
}

// ParseRegistry builds a registry from a YAML style sheet. A style may
// name a color from the sheet or give a literal color.
func ParseRegistry(data []byte) (*Registry, error) {
	var s sheet
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid style sheet: %w", err)
	}

	r := &Registry{styles: make(map[string]lipgloss.Style, len(s.Styles))}
	for name, spec := range s.Styles {
		st := lipgloss.NewStyle().
			Bold(spec.Bold).
			Italic(spec.Italic).
			Underline(spec.Underline).
			Faint(spec.Faint)
		if spec.Foreground != "" {
			if c, ok := s.Colors[spec.Foreground]; ok {
				st = st.Foreground(lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark})
			} else {
				st = st.Foreground(lipgloss.Color(spec.Foreground))
			}
		}
		r.styles[name] = st
	}
	return r, nil
}

// Get returns the named style, or an empty style when unknown.
func (r *Registry) Get(name string) lipgloss.Style {
	if st, ok := r.styles[name]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// Names returns the registered style names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.styles))
	for name := range r.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = mustParse(defaultSheet)

func mustParse(data []byte) *Registry {
	r, err := ParseRegistry(data)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns a style from the built-in sheet.
func Get(name string) lipgloss.Style {
	return defaultRegistry.Get(name)
}
