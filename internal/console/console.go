// Package console 实现可嵌入的交互式命令行会话内核：历史召回、跨行累积、
// 提示符状态切换，以及输入/输出/错误三路文本的路由。渲染表面、单行输入框
// 与解释器都是外部协作者，只按接口约定接入。
package console

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"cmdcon/internal/events"
)

// 默认提示符与 PyQt 时代的控制台保持一致。
const (
	DefaultPrompt             = "> "
	DefaultContinuationPrompt = "… "
)

// Options 固定在构造期，之后不可重载。
type Options struct {
	// Interpreter 求值器，必填。
	Interpreter Interpreter
	// Sink 展示层，必填。
	Sink Sink

	// PromptText 主提示符，空则使用 DefaultPrompt。
	PromptText string
	// ContinuationPromptText 续行提示符，空则使用 DefaultContinuationPrompt。
	ContinuationPromptText string
	// InitText 构造完成后经 Output 通道写出的横幅文本，可为空。
	InitText string

	// MaxHistory 历史容量：正数为上限，UnlimitedHistory 不限，0 取默认值。
	MaxHistory int
	// TabWidth Tab 展开宽度：正数展开为空格，LiteralTab 插入 '\t'。
	TabWidth int

	// InputStyle 输入回显样式。
	InputStyle lipgloss.Style
	// OutputStyle / ErrorStyle 为 nil 时沿用 InputStyle。
	OutputStyle *lipgloss.Style
	ErrorStyle  *lipgloss.Style

	// Events 可选的生命周期事件总线。
	Events *events.Bus
	// Observer 可选，观察每一次通道写入（用于转写存档等）。
	Observer func(label Label, text string)
}

// Console 把会话内核的三个部件组合在一起。
type Console struct {
	Session *Session
	Edit    *LineEdit
	History *History
}

// New 构造控制台内核。边界非法（负的历史容量、负的 Tab 宽度）在这里拒绝。
func New(opts Options) (*Console, error) {
	if opts.Interpreter == nil {
		return nil, errors.New("console: interpreter is required")
	}
	if opts.Sink == nil {
		return nil, errors.New("console: sink is required")
	}
	capacity := opts.MaxHistory
	if capacity == 0 {
		capacity = DefaultMaxHistory
	}
	if capacity < 0 && capacity != UnlimitedHistory {
		return nil, fmt.Errorf("console: invalid history capacity %d", opts.MaxHistory)
	}
	if opts.TabWidth < 0 {
		return nil, fmt.Errorf("console: invalid tab width %d", opts.TabWidth)
	}

	prompt := opts.PromptText
	if prompt == "" {
		prompt = DefaultPrompt
	}
	contPrompt := opts.ContinuationPromptText
	if contPrompt == "" {
		contPrompt = DefaultContinuationPrompt
	}

	outStyle := opts.InputStyle
	if opts.OutputStyle != nil {
		outStyle = *opts.OutputStyle
	}
	errStyle := opts.InputStyle
	if opts.ErrorStyle != nil {
		errStyle = *opts.ErrorStyle
	}

	s := &Session{
		interp:     opts.Interpreter,
		sink:       opts.Sink,
		prompt:     prompt,
		contPrompt: contPrompt,
		bus:        opts.Events,
		observer:   opts.Observer,
	}
	s.In = &Channel{label: Input, style: opts.InputStyle, session: s}
	s.Out = &Channel{label: Output, style: outStyle, session: s}
	s.Err = &Channel{label: Error, style: errStyle, session: s}

	history := NewHistory(capacity)
	edit := NewLineEdit(history, opts.TabWidth, s.PushLine)

	if opts.InitText != "" {
		s.Out.WriteString(opts.InitText)
	}

	return &Console{Session: s, Edit: edit, History: history}, nil
}

// Seed 把此前持久化的历史条目按从旧到新的顺序灌入历史缓冲，不产生回显。
func (c *Console) Seed(entries []string) {
	for _, entry := range entries {
		c.History.Record(entry)
	}
}
