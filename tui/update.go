package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case corpusLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.corpus = msg.corpus
			if m.cursor >= len(m.corpus.Items) {
				m.cursor = 0
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.view == viewDetail {
			m.view = viewList
			return m, nil
		}
		return m, tea.Quit

	case "r":
		m.loading = true
		return m, loadCorpus(m.store)

	case "up", "k":
		if m.view == viewList && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.view == viewList && m.cursor < len(m.items())-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		if m.view == viewList && len(m.items()) > 0 {
			m.view = viewDetail
		}
		return m, nil

	case "esc":
		m.view = viewList
		return m, nil
	}
	return m, nil
}
