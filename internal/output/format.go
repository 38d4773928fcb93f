// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"checkmate/internal/service"
)

const (
	// ShortIDLen is the number of identifier characters shown in listings.
	ShortIDLen = 8

	IconDone = "✓"
	IconOpen = "○"
)

// Options controls RenderTasks.
type Options struct {
	// Verbose shows task notes.
	Verbose bool

	// HideCompleted omits the completed section. Totals still count it.
	HideCompleted bool
}

var (
	colorDone = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorMute = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	colorHead = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
)

// styles renders with the color profile of one writer, so output to a file
// or buffer stays plain.
type styles struct {
	done, open, id, header lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		done:   r.NewStyle().Foreground(colorDone),
		open:   r.NewStyle().Foreground(colorMute),
		id:     r.NewStyle().Foreground(colorMute),
		header: r.NewStyle().Bold(true).Foreground(colorHead),
	}
}

// RenderTasks prints tasks split into incomplete and completed sections,
// each ordered by sort position, followed by a total line.
func RenderTasks(w io.Writer, tasks []service.Task, opts Options) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "no tasks found")
		return
	}

	st := newStyles(w)

	var incomplete, completed []service.Task
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			incomplete = append(incomplete, t)
		}
	}
	bySortPosition(incomplete)
	bySortPosition(completed)

	if len(incomplete) > 0 {
		fmt.Fprintln(w, st.header.Render("Incomplete Tasks:"))
		for _, t := range incomplete {
			formatTask(w, st, t, opts.Verbose)
		}
	}

	if len(completed) > 0 && !opts.HideCompleted {
		if len(incomplete) > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, st.header.Render("Completed Tasks:"))
		for _, t := range completed {
			formatTask(w, st, t, opts.Verbose)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d incomplete, %d completed\n", len(incomplete), len(completed))
}

// formatTask formats a single task line, plus notes when verbose and the
// completion time when completed.
func formatTask(w io.Writer, st styles, task service.Task, verbose bool) {
	icon := st.open.Render(IconOpen)
	if task.Completed {
		icon = st.done.Render(IconDone)
	}
	fmt.Fprintf(w, "  %s %s %s\n", icon, st.id.Render("["+ShortID(task.ID)+"]"), normalizeTitle(task.Title))

	if verbose && task.Notes != "" {
		fmt.Fprintf(w, "    Notes: %s\n", task.Notes)
	}
	if task.Completed && task.CompleteTime != "" {
		fmt.Fprintf(w, "    Completed: %s\n", task.CompleteTime)
	}
}

// ShortID returns the first ShortIDLen characters of id.
func ShortID(id string) string {
	r := []rune(id)
	if len(r) <= ShortIDLen {
		return id
	}
	return string(r[:ShortIDLen])
}

// bySortPosition orders tasks in place, keeping service order for ties.
func bySortPosition(tasks []service.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].SortPosition < tasks[j].SortPosition
	})
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
