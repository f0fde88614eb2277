package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"synthevix/internal/engine"
)

// RunBoard shows the interactive quest board until the user quits.
func RunBoard(ctx context.Context, svc *engine.Service, multiplier float64, out io.Writer) error {
	m := newBoardModel(ctx, svc, multiplier)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
