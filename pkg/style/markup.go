package style

import (
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders "[tag]text[/tag]" markup with registry styles.
// Tags may nest; unknown tags are left as they are.
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
	order    []string
}

// NewMarkupParser creates a parser whose tags are the registry's styles.
func NewMarkupParser(r *Registry) *MarkupParser {
	p := &MarkupParser{
		styles:   make(map[string]lipgloss.Style),
		patterns: make(map[string]*regexp.Regexp),
	}
	for _, name := range r.Names() {
		p.AddStyle(name, r.Get(name))
	}
	return p
}

// AddStyle registers or replaces a tag.
func (p *MarkupParser) AddStyle(tag string, st lipgloss.Style) {
	if _, exists := p.styles[tag]; !exists {
		p.order = append(p.order, tag)
		sort.Strings(p.order)
	}
	p.styles[tag] = st
	p.patterns[tag] = regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

// Render replaces markup with styled text. Inner tags are rendered
// first so nesting works.
func (p *MarkupParser) Render(text string) string {
	for {
		before := text
		for _, tag := range p.order {
			st, pattern := p.styles[tag], p.patterns[tag]
			text = pattern.ReplaceAllStringFunc(text, func(match string) string {
				inner := pattern.FindStringSubmatch(match)[1]
				if pattern.MatchString(inner) || containsOtherTag(p, inner) {
					return match
				}
				return st.Render(inner)
			})
		}
		if text == before {
			return text
		}
	}
}

func containsOtherTag(p *MarkupParser, s string) bool {
	for _, pattern := range p.patterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// Strip removes markup without styling.
func (p *MarkupParser) Strip(text string) string {
	for {
		before := text
		for _, tag := range p.order {
			text = p.patterns[tag].ReplaceAllString(text, "$1")
		}
		if text == before {
			return text
		}
	}
}

var defaultParser = NewMarkupParser(defaultRegistry)

// Render renders markup with the built-in styles.
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip removes markup tags.
func Strip(text string) string {
	return defaultParser.Strip(text)
}
