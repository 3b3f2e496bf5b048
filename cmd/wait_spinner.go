package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var errSpinnerInterrupted = errors.New("interrupted")

type waitDoneMsg struct {
	err error
}

type waitSpinnerModel struct {
	spinner spinner.Model
	label   func() string
	wait    tea.Cmd
	err     error
	done    bool
}

func newWaitSpinnerModel(label func() string, wait tea.Cmd) waitSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return waitSpinnerModel{
		spinner: s,
		label:   label,
		wait:    wait,
	}
}

func (m waitSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait)
}

func (m waitSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case waitDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m waitSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label())
}

// runWaitSpinner shows label, re-evaluated on every tick, until wait returns.
func runWaitSpinner(ctx context.Context, output io.Writer, label func() string, wait func(context.Context) error) error {
	waitCmd := func() tea.Msg {
		return waitDoneMsg{err: wait(ctx)}
	}

	p := tea.NewProgram(
		newWaitSpinnerModel(label, waitCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}

	result, ok := finalModel.(waitSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}
	if !result.done {
		return errSpinnerInterrupted
	}

	return result.err
}

func staticLabel(label string) func() string {
	return func() string { return label }
}
