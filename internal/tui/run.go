package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/crux/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the explorer full-screen and blocks until the user quits or ctx is done.
// It returns the final model.
func Run(ctx context.Context, table *model.Table, opts ...Option) (Model, error) {
	program := tea.NewProgram(New(table, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		return Model{}, fmt.Errorf("explorer failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("explorer returned unexpected model %T", final)
	}
	return m, nil
}
