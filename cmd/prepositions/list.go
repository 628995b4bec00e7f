package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/plus3/prepositions/sketch"
)

var (
	cyan  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	white = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

// printCatalog writes every sketch grouped by preposition. Variants tuned by a
// loaded preset are marked.
func printCatalog(w io.Writer, tuned map[string]bool) {
	preps := sketch.Prepositions()
	width := 0
	for _, def := range sketch.All() {
		width = max(width, len(def.Variant))
	}

	fmt.Fprintln(w, cyan.Render(fmt.Sprintf("%d prepositions, %d sketches", len(preps), len(sketch.All()))))
	for _, prep := range preps {
		fmt.Fprintln(w)
		fmt.Fprintln(w, cyan.Render(strings.ToUpper(prep)))
		for _, def := range sketch.Variants(prep) {
			line := "  " + white.Render(fmt.Sprintf("%-*s", width, def.Variant)) + "  " + dim.Render(def.Summary)
			if tuned[def.Name()] {
				line += " " + green.Render("[preset]")
			}
			fmt.Fprintln(w, line)
		}
	}
}
