package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cmdcon/internal/console"
	"cmdcon/internal/display"
	"cmdcon/internal/logger"
)

// Options 描述启动 TUI 所需的依赖。
type Options struct {
	Console    *console.Console
	Scrollback *display.Scrollback
	Log        *logger.LogEntry
}

// Model 是控制台的 Bubble Tea 宿主：上方滚动区 + 下方单行输入框。
// 会话协议（历史、累积、提示符）全部由 console 内核决定，这里只做
// 按键意图的翻译与渲染。
type Model struct {
	input      textinput.Model
	viewport   viewport.Model
	console    *console.Console
	scrollback *display.Scrollback
	search     *searchState
	intercept  map[console.Key]bool
	width      int
	height     int
	err        error
	log        *logger.LogEntry
}

var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D7A85"))
)

func New(opts Options) *Model {
	ti := textinput.New()
	ti.Prompt = opts.Console.Session.Prompt()
	ti.CharLimit = 0
	ti.Focus()

	vp := viewport.New(80, 20)

	m := &Model{
		input:      ti,
		viewport:   vp,
		console:    opts.Console,
		scrollback: opts.Scrollback,
		intercept:  opts.Console.Edit.InterceptedKeys(),
		width:      80,
		height:     24,
		log:        opts.Log,
	}
	m.refreshViewport()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.search != nil {
			return m.updateSearch(msg)
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			m.syncEdit()
			m.console.Edit.Submit()
			m.input.SetValue(m.console.Edit.Text())
			m.syncPrompt()
			m.refreshViewport()
			return m, nil
		case tea.KeyUp:
			m.recall(console.NavigateOlder)
			return m, nil
		case tea.KeyDown:
			m.recall(console.NavigateNewer)
			return m, nil
		case tea.KeyTab:
			// 命中内核声明的拦截集合：不走默认按键处理，焦点留在输入行。
			if m.intercept[console.KeyTab] {
				m.syncEdit()
				m.console.Edit.InsertTab()
				m.input.SetValue(m.console.Edit.Text())
				m.input.SetCursor(m.console.Edit.Caret())
				return m, nil
			}
		case tea.KeyCtrlR:
			m.search = newSearchState(m.console.History.Entries())
			return m, nil
		case tea.KeyCtrlY:
			if err := clipboard.WriteAll(m.scrollback.Plain()); err != nil {
				m.err = err
				if m.log != nil {
					m.log.WithField("err", err).Warn("clipboard copy failed")
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.search = nil
	case tea.KeyEnter:
		if choice, ok := m.search.choice(); ok {
			m.input.SetValue(choice)
			m.input.CursorEnd()
		}
		m.search = nil
	case tea.KeyUp:
		m.search.move(-1)
	case tea.KeyDown:
		m.search.move(1)
	case tea.KeyBackspace:
		m.search.backspace()
	case tea.KeyRunes, tea.KeySpace:
		m.search.appendQuery(string(msg.Runes))
	}
	return m, nil
}

func (m *Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.input.View(),
		hintStyle.Render("Enter 运行 • ↑/↓ 历史 • Tab 缩进 • Ctrl+R 搜索历史 • Ctrl+Y 复制输出 • Ctrl+D 退出"),
	)
	if m.search != nil {
		overlay := modalStyle.Render(m.search.view(m.width - 4))
		content = lipgloss.JoinVertical(lipgloss.Left, content, overlay)
	}
	return content
}

// recall 召回历史条目并整体替换输入行，光标落到行尾。
func (m *Model) recall(dir console.Direction) {
	entry := m.console.Edit.Navigate(dir)
	m.input.SetValue(entry)
	m.input.CursorEnd()
}

// syncEdit 把输入框的文本与光标同步进内核行编辑器。
func (m *Model) syncEdit() {
	m.console.Edit.SetText(m.input.Value())
	m.console.Edit.SetCaret(m.input.Position())
}

func (m *Model) syncPrompt() {
	m.input.Prompt = m.console.Session.Prompt()
}

// refreshViewport 重建滚动区内容并滚到最新行。
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.scrollback.View(m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width = width
	m.height = height
	m.viewport.Width = width
	// 输入行与提示行各占一行。
	if h := height - 2; h > 0 {
		m.viewport.Height = h
	}
	m.input.Width = width - len([]rune(m.input.Prompt)) - 1
	m.refreshViewport()
}

// Err 返回最近一次非致命的宿主错误（例如剪贴板不可用）。
func (m *Model) Err() error {
	return m.err
}
