package tui

import (
	"fmt"
	"strings"

	"invoiceradar/types"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("invoiceradar - e-invoicing news"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(InfoStyle.Render("loading corpus..."))
	case m.err != nil:
		b.WriteString(ErrorStyle.Render("error: " + m.err.Error()))
	case m.view == viewDetail:
		b.WriteString(m.detailView())
	default:
		b.WriteString(m.listView())
	}

	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) listView() string {
	items := m.items()
	if len(items) == 0 {
		return InfoStyle.Render("corpus is empty - run a crawl first")
	}

	var b strings.Builder
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	// Keep the cursor on screen by windowing the list to the terminal height.
	visible := m.height - 8
	if visible < 5 {
		visible = 5
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(items) {
		end = len(items)
	}

	for i := start; i < end; i++ {
		line := itemLine(items[i])
		if i == m.cursor {
			b.WriteString(CursorStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) detailView() string {
	items := m.items()
	if m.cursor >= len(items) {
		return ""
	}
	item := items[m.cursor]

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", item.Title)
	fmt.Fprintf(&b, "source:     %s (%s)\n", item.Source.Name, item.Source.Kind)
	region := item.Region
	if item.CountryName != "" {
		region = fmt.Sprintf("%s / %s", item.Region, item.CountryName)
	}
	fmt.Fprintf(&b, "region:     %s\n", region)
	fmt.Fprintf(&b, "categories: %s\n", strings.Join(item.Categories, ", "))
	fmt.Fprintf(&b, "published:  %s\n", item.PublishedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "url:        %s\n\n", item.URL)
	b.WriteString(item.Summary)

	return BoxStyle.Render(b.String())
}

func (m Model) statusLine() string {
	status := StatusStyle.Render(string(m.corpus.RunStatus))
	if m.corpus.RunStatus == types.RunFailed {
		status = ErrorStyle.Render(string(m.corpus.RunStatus))
	}
	updated := "never"
	if m.corpus.LastUpdated != nil {
		updated = m.corpus.LastUpdated.Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("%d items · last run %s · updated %s", m.corpus.TotalItems, status, updated)
}

func (m Model) helpLine() string {
	if m.view == viewDetail {
		return "esc/q back · r reload"
	}
	return "↑/↓ navigate · enter details · r reload · q quit"
}

func itemLine(item *types.Item) string {
	title := item.Title
	if len(title) > 70 {
		title = title[:67] + "..."
	}
	return fmt.Sprintf("%s  %-10s  %s", item.PublishedAt.Format("2006-01-02"), item.Source.ID, title)
}
