package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"minitodo/internal/domain"
)

type taskItem struct {
	task domain.Task
}

func (t taskItem) FilterValue() string {
	return t.task.Title
}

// escapeNewlines replaces newline characters with spaces for single-line display.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

type taskDelegate struct {
	styles Styles
}

func newTaskDelegate(styles Styles) taskDelegate {
	return taskDelegate{styles: styles}
}

func (d taskDelegate) Height() int {
	return 2
}

func (d taskDelegate) Spacing() int {
	return 1
}

func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	task := ti.task
	selected := index == m.Index()

	indicatorChar := " "
	if selected {
		indicatorChar = ">"
	}

	checkChar := "[ ]"
	if task.Complete {
		checkChar = "[x]"
	}

	var tagStr string
	if task.Category != "" {
		tagStr = "(" + task.Category + ") "
	}

	prefixWidth := 8 + runewidth.StringWidth(tagStr)
	listWidth := m.Width()
	maxTitleLen := listWidth - prefixWidth - 2
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}

	title := task.Title
	if runewidth.StringWidth(title) > maxTitleLen {
		title = runewidth.Truncate(title, maxTitleLen-3, "...")
	}

	titleStyle := d.styles.TaskTitle
	if task.Complete {
		titleStyle = d.styles.TaskTitleDone
	}
	if selected {
		titleStyle = d.styles.TaskTitleSelected
		if task.Complete {
			titleStyle = titleStyle.Strikethrough(true)
		}
	}

	indicatorStyle := d.styles.CursorNormal
	if selected {
		indicatorStyle = d.styles.CursorSelected
	}

	line := "  " + indicatorStyle.Render(indicatorChar) + " " + d.styles.TaskCheck.Render(checkChar) + " "
	if tagStr != "" {
		line += d.styles.CategoryTag.Render(tagStr)
	}
	line += titleStyle.Render(title)
	lineWidth := runewidth.StringWidth(line)
	if lineWidth < listWidth {
		line += fmt.Sprintf("%*s", listWidth-lineWidth, "")
	}
	_, _ = fmt.Fprintln(w, line)

	descLine := "        "
	if task.Description != "" {
		desc := escapeNewlines(task.Description)
		maxDescLen := listWidth - prefixWidth - 2
		if maxDescLen < 10 {
			maxDescLen = 10
		}
		if runewidth.StringWidth(desc) > maxDescLen {
			desc = runewidth.Truncate(desc, maxDescLen-3, "...")
		}
		descLine += desc
	}
	descStyle := d.styles.TaskDesc
	if selected {
		descStyle = d.styles.TaskDescSelected
	}
	descLineWidth := runewidth.StringWidth(descLine)
	if descLineWidth < listWidth {
		descLine += fmt.Sprintf("%*s", listWidth-descLineWidth, "")
	}
	_, _ = fmt.Fprint(w, descStyle.Render(descLine))
}
