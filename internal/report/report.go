// Package report turns ranked candidates into setlists for display, as JSON
// documents or as terminal text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/katalvlaran/setlist/sequence"
)

// Options controls which candidates become setlists.
type Options struct {
	// Top keeps the first Top setlists; 0 keeps all of them.
	Top int
	// Unique drops orderings already produced by a better-ranked rotation.
	Unique bool
}

// ConflictView is one pair of consecutive songs sharing dancers.
type ConflictView struct {
	Dancers []string `json:"dancers"`
	From    string   `json:"from"`
	To      string   `json:"to"`
}

// Setlist is a ranked running order.
type Setlist struct {
	Rank          int            `json:"rank"`
	Rotation      int            `json:"rotation"`
	Order         []string       `json:"order"`
	ConflictCount int            `json:"conflict_count"`
	Conflicts     []ConflictView `json:"conflicts"`
}

// Build converts ranked candidates into setlists, numbering them from 1.
func Build(cands []sequence.Candidate, opts Options) []Setlist {
	if opts.Unique {
		cands = sequence.Distinct(cands)
	}
	if opts.Top > 0 && opts.Top < len(cands) {
		cands = cands[:opts.Top]
	}

	out := make([]Setlist, len(cands))
	for i, c := range cands {
		views := make([]ConflictView, len(c.Conflicts))
		for j, cf := range c.Conflicts {
			views[j] = ConflictView{Dancers: cf.Shared.Tags(), From: cf.From, To: cf.To}
		}
		out[i] = Setlist{
			Rank:          i + 1,
			Rotation:      c.Rotation,
			Order:         append([]string(nil), c.Order...),
			ConflictCount: c.ConflictCount,
			Conflicts:     views,
		}
	}

	return out
}

var (
	titleColor = color.New(color.FgBlue, color.Bold)
	cleanColor = color.New(color.FgGreen, color.Bold)
	clashColor = color.New(color.FgYellow, color.Bold)
	dimColor   = color.New(color.FgHiBlack)
)

// WriteText prints setlists for a terminal. Colour follows fatih/color's
// global setting, so redirected output stays plain.
func WriteText(w io.Writer, show string, setlists []Setlist) error {
	var b strings.Builder

	if show != "" {
		b.WriteString(titleColor.Sprintf("▸ %s", show))
		b.WriteString("\n\n")
	}
	if len(setlists) == 0 {
		b.WriteString(dimColor.Sprint("  No setlists"))
		b.WriteString("\n")
	}

	for _, s := range setlists {
		status := cleanColor.Sprint("no conflicts")
		if s.ConflictCount > 0 {
			status = clashColor.Sprint(countLabel(s.ConflictCount, "conflict", "conflicts"))
		}
		fmt.Fprintf(&b, "#%d  %s  %s\n", s.Rank, status, dimColor.Sprintf("(rotation %d)", s.Rotation))
		for i, title := range s.Order {
			fmt.Fprintf(&b, "  %2d. %s\n", i+1, title)
		}
		for _, c := range s.Conflicts {
			fmt.Fprintf(&b, "  %s %s → %s: %s\n", clashColor.Sprint("!"), c.From, c.To, strings.Join(c.Dancers, ", "))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func countLabel(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
