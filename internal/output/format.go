// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/service"
	"taskboard/internal/view"
)

const (
	// ListSeparator is the separator line for board columns.
	ListSeparator = "------------"

	// titleWidth is the title column width in the recent-tasks table.
	titleWidth = 32
)

// Styles holds the lipgloss styles bound to one writer. When the writer is
// not a terminal every style renders plain text.
type Styles struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	priority map[service.Priority]lipgloss.Style
	status   map[service.Status]lipgloss.Style
}

// NewStyles creates styles for w.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		Title: r.NewStyle().Bold(true),
		Muted: r.NewStyle().Faint(true),
		priority: map[service.Priority]lipgloss.Style{
			service.PriorityHigh:   r.NewStyle().Foreground(lipgloss.Color("204")),
			service.PriorityMedium: r.NewStyle().Foreground(lipgloss.Color("214")),
			service.PriorityLow:    r.NewStyle().Foreground(lipgloss.Color("78")),
		},
		status: map[service.Status]lipgloss.Style{
			service.StatusOpen:       r.NewStyle().Foreground(lipgloss.Color("75")),
			service.StatusInProgress: r.NewStyle().Foreground(lipgloss.Color("214")),
			service.StatusDone:       r.NewStyle().Foreground(lipgloss.Color("78")),
		},
	}
}

// Priority renders a priority label.
func (s *Styles) Priority(p service.Priority, padTo int) string {
	return s.priority[p].Render(pad(string(p), padTo))
}

// Status renders a status label.
func (s *Styles) Status(st service.Status, padTo int) string {
	style, ok := s.status[st]
	if !ok {
		return pad(st.Label(), padTo)
	}
	return style.Render(pad(st.Label(), padTo))
}

// FormatHeader prints a page title and an optional subtitle.
func FormatHeader(w io.Writer, s *Styles, title, subtitle string) {
	fmt.Fprintln(w, s.Title.Render(title))
	if subtitle != "" {
		fmt.Fprintln(w, s.Muted.Render(subtitle))
	}
	fmt.Fprintln(w)
}

// FormatStats prints the four dashboard counters.
func FormatStats(w io.Writer, s *Styles, stats service.Stats) {
	rows := []struct {
		label string
		value int64
	}{
		{"Total Tasks", stats.Total},
		{service.StatusOpen.Label(), int64(stats.Open)},
		{service.StatusInProgress.Label(), int64(stats.InProgress)},
		{service.StatusDone.Label(), int64(stats.Done)},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s %6d\n", s.Title.Render(pad(row.label, 12)), row.value)
	}
}

// FormatRecentTasks prints the dashboard's recent-tasks table.
func FormatRecentTasks(w io.Writer, s *Styles, tasks []service.Task) {
	fmt.Fprintln(w, s.Title.Render("Recent Tasks"))
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks yet. Create your first task!")
		return
	}
	fmt.Fprintf(w, "%s  %s  %s\n", pad("Task", titleWidth), pad("Priority", 8), "Status")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s  %s  %s\n",
			pad(truncate(normalizeTitle(t.Title), titleWidth), titleWidth),
			s.Priority(t.EffectivePriority(), 8),
			s.Status(t.Status, 0))
		if t.Description != "" {
			fmt.Fprintf(w, "  %s\n", s.Muted.Render(truncate(normalizeTitle(t.Description), titleWidth)))
		}
	}
}

// FormatBoard prints the three board columns.
func FormatBoard(w io.Writer, s *Styles, b view.Board) {
	for _, st := range service.Statuses {
		FormatColumn(w, s, st, b.Columns.Column(st))
	}
}

// FormatColumn prints one board column with its header and count.
func FormatColumn(w io.Writer, s *Styles, st service.Status, tasks []service.Task) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "%s (%d)\n", s.Title.Render(st.Label()), len(tasks))
	fmt.Fprintln(w, ListSeparator)
	if len(tasks) == 0 {
		fmt.Fprintf(w, "    %s\n", s.Muted.Render(emptyColumnText(st)))
		return
	}
	for _, t := range tasks {
		FormatTaskCard(w, s, t)
	}
}

// FormatTaskCard prints one task.
// Format: "{#ID:>6}  {TITLE}  [{PRIORITY}]" then an indented description.
func FormatTaskCard(w io.Writer, s *Styles, t service.Task) {
	fmt.Fprintf(w, "%6s  %s  [%s]\n", fmt.Sprintf("#%d", t.ID), normalizeTitle(t.Title), s.Priority(t.EffectivePriority(), 0))
	if t.Description != "" {
		fmt.Fprintf(w, "        %s\n", s.Muted.Render(normalizeTitle(t.Description)))
	}
}

func emptyColumnText(st service.Status) string {
	switch st {
	case service.StatusOpen:
		return "No open tasks"
	case service.StatusInProgress:
		return "No tasks in progress"
	case service.StatusDone:
		return "No completed tasks"
	}
	return "No tasks"
}

// normalizeTitle normalizes text for single-line display.
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

func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
