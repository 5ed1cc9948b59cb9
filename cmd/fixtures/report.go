package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"javafixtures/internal/programs"
	"javafixtures/internal/store"
	"javafixtures/internal/verify"

	"github.com/charmbracelet/lipgloss"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5484D")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5A524"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B949E"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	diffStyle   = lipgloss.NewStyle().PaddingLeft(4)
)

// statusBadge pads the label to width before styling so escape codes do not
// count toward column width.
func statusBadge(s verify.Status, width int) string {
	label := fmt.Sprintf("%-*s", width, strings.ToUpper(string(s)))
	switch s {
	case verify.StatusPass, verify.StatusUpdated:
		return passStyle.Render(label)
	case verify.StatusMissingGolden:
		return warnStyle.Render(label)
	}
	return failStyle.Render(label)
}

func renderResults(w io.Writer, results []verify.Result) {
	checked, failed := 0, 0
	for _, r := range results {
		checked++
		fmt.Fprintf(w, "%s %-8s %s %s\n",
			statusBadge(r.Status, 16), r.Program,
			mutedStyle.Render(fmt.Sprintf("%s %s", r.Bounds, r.Mode)),
			mutedStyle.Render(r.Duration.Round(time.Microsecond).String()),
		)
		if !r.Status.OK() {
			failed++
		}
		switch {
		case r.Err != nil:
			fmt.Fprintln(w, diffStyle.Render(r.Err.Error()))
		case r.Status == verify.StatusMissingGolden:
			fmt.Fprintln(w, diffStyle.Render("no golden file at "+r.Golden+" (run with --update)"))
		case r.Diff != "":
			fmt.Fprintln(w, diffStyle.Render(strings.TrimSuffix(r.Diff, "\n")))
		}
	}

	summary := fmt.Sprintf("%d checked, %d failed", checked, failed)
	if failed == 0 {
		fmt.Fprintln(w, passStyle.Render(summary))
	} else {
		fmt.Fprintln(w, failStyle.Render(summary))
	}
}

func renderPrograms(w io.Writer, ps []*programs.Program, effective func(*programs.Program) programs.Bounds) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-8s %-18s %-10s %s", "NAME", "SOURCE", "BOUNDS", "DESCRIPTION")))
	for _, p := range ps {
		b := fmt.Sprintf("%-10s", effective(p))
		if effective(p) != p.Defaults {
			b += mutedStyle.Render(" (default " + p.Defaults.String() + ")")
		}
		fmt.Fprintf(w, "%-8s %-18s %s %s\n", p.Name, p.Source, b, p.Description)
	}
}

func renderRuns(w io.Writer, runs []store.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No runs recorded."))
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-20s %-8s %-10s %-7s %-15s %s", "WHEN", "PROGRAM", "BOUNDS", "MODE", "STATUS", "DIGEST")))
	for _, r := range runs {
		digest := r.Digest
		if len(digest) > 12 {
			digest = digest[:12]
		}
		fmt.Fprintf(w, "%-20s %-8s %-10s %-7s %s %s\n",
			r.RecordedAt.Local().Format("2006-01-02 15:04:05"),
			r.Program,
			programs.Bounds{Start: r.Start, End: r.End},
			r.Mode,
			statusBadge(verify.Status(r.Status), 15),
			mutedStyle.Render(digest),
		)
	}
}
