// Package tui implements an interactive terminal browser over the saved
// corpus.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"invoiceradar/store"
	"invoiceradar/types"
)

// view selects between the item list and the item detail pane.
type view int

const (
	viewList view = iota
	viewDetail
)

// corpusLoadedMsg carries a freshly loaded corpus into the update loop.
type corpusLoadedMsg struct {
	corpus *types.Corpus
	err    error
}

// Model is the bubbletea model for the corpus browser.
type Model struct {
	store store.Store

	corpus  *types.Corpus
	loading bool
	err     error

	view   view
	cursor int
	height int
}

func NewModel(st store.Store) Model {
	return Model{store: st, loading: true, height: 24}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return loadCorpus(m.store)
}

func loadCorpus(st store.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		corpus, err := st.Load(ctx)
		return corpusLoadedMsg{corpus: corpus, err: err}
	}
}

func (m Model) items() []*types.Item {
	if m.corpus == nil {
		return nil
	}
	return m.corpus.Items
}
