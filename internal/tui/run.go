package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run 启动 Bubble Tea 界面并阻塞到退出。
func Run(opts Options) error {
	program := tea.NewProgram(New(opts), tea.WithAltScreen())
	m, err := program.Run()
	if err != nil {
		return err
	}
	if _, ok := m.(*Model); !ok {
		return errors.New("unexpected tui model")
	}
	return nil
}
