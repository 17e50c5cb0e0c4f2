package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"petcare-companion/internal/notify"
)

var styles = struct {
	title, muted, header           lipgloss.Style
	info, success, warning, danger lipgloss.Style
	border                         lipgloss.Style
}{
	title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
	muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9aa3ad")),
	header:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
	info:    lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3")),
	success: lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
	warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107")),
	danger:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e53935")),
	border:  lipgloss.NewStyle().Foreground(lipgloss.Color("#2a3850")),
}

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// renderTable arma una tabla con borde redondeado. Sin filas imprime empty.
func renderTable(title, empty string, headers []string, rows [][]string) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(styles.title.Render(title))
		b.WriteString("\n")
	}
	if len(rows) == 0 {
		b.WriteString(styles.muted.Render(empty))
		b.WriteString("\n")
		return b.String()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.header
			}
			return cellStyle
		})
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// keyValues imprime pares etiqueta/valor alineados.
func keyValues(title string, pairs ...[2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	label := styles.muted.Width(width + 2)

	var b strings.Builder
	if title != "" {
		b.WriteString(styles.title.Render(title))
		b.WriteString("\n")
	}
	for _, p := range pairs {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label.Render(p[0]), p[1]))
		b.WriteString("\n")
	}
	return b.String()
}

func levelStyle(l notify.Level) lipgloss.Style {
	switch l {
	case notify.LevelSuccess:
		return styles.success
	case notify.LevelWarning:
		return styles.warning
	case notify.LevelDanger:
		return styles.danger
	default:
		return styles.info
	}
}

// flushNotifications imprime en stderr las notificaciones pendientes, la más
// vieja primero, y vacía la cola.
func (c *cli) flushNotifications() {
	if c.app == nil {
		return
	}
	active := c.app.Queue.Active()
	for i := len(active) - 1; i >= 0; i-- {
		n := active[i]
		line := n.Message
		if n.Title != "" {
			line = n.Title + ": " + n.Message
		}
		fmt.Fprintln(c.errOut, levelStyle(n.Level).Render("• "+line))
	}
	c.app.Queue.Clear()
}

// show imprime v como JSON con --json o delega en render.
func (c *cli) show(v any, render func() string) error {
	if c.asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(c.out, render())
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
