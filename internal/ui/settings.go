package ui

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/aish/internal/config"
)

const generalSection = "general"

// Settings prints every configuration value grouped by section, each
// section in its own box. Top level keys go under "general".
func (c *Console) Settings(settings []config.Setting) {
	fmt.Fprintln(c.out, c.renderSettings(settings))
}

func (c *Console) renderSettings(settings []config.Setting) string {
	var order []string
	groups := make(map[string][]config.Setting)
	for _, s := range settings {
		section := s.Section
		if section == "" {
			section = generalSection
		}
		if _, seen := groups[section]; !seen {
			order = append(order, section)
		}
		groups[section] = append(groups[section], s)
	}

	boxes := make([]string, 0, len(order))
	for _, section := range order {
		lines := []string{c.styles.title.Render("[" + section + "]")}
		for _, s := range groups[section] {
			key := s.Key
			if s.Section != "" {
				key = strings.TrimPrefix(key, s.Section+".")
			}
			value := s.Value
			if value == "" {
				value = c.styles.muted.Render("(empty)")
			}
			lines = append(lines, c.styles.key.Render(key)+" = "+value)
		}
		boxes = append(boxes, c.styles.box.Render(strings.Join(lines, "\n")))
	}
	return strings.Join(boxes, "\n")
}
