package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Label 标识三路输出通道之一。
type Label int

const (
	// Input 输入回显通道，写入内容同时进入累积缓冲。
	Input Label = iota
	// Output 解释器标准输出通道。
	Output
	// Error 解释器诊断输出通道。
	Error
)

func (l Label) String() string {
	switch l {
	case Input:
		return "input"
	case Output:
		return "output"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Sink 是展示层需要实现的最小契约：切换当前样式并追加文本。
// 样式切换作用于整个追加调用，而不是逐字符。
type Sink interface {
	SetStyle(style lipgloss.Style)
	Append(text string)
}

// Channel 是一路带样式的文本通道。三路通道共用同一个类型，仅用 Label 区分，
// 其中 Input 通道额外承担累积与触发求值的职责。
type Channel struct {
	label   Label
	style   lipgloss.Style
	session *Session
}

// Label 返回通道标签。
func (c *Channel) Label() Label {
	return c.label
}

// Style 返回通道样式。
func (c *Channel) Style() lipgloss.Style {
	return c.style
}

// WriteString 把 text 送往展示层，永远全量接受并返回 len(text)。
//
// Input 通道的写入同时进入累积缓冲；当写入以换行符结尾时触发一次求值，
// 解释器要求更多输入则保留缓冲，否则清空。
func (c *Channel) WriteString(text string) int {
	c.display(text)
	if c.label == Input {
		c.session.pending.WriteString(text)
		if strings.HasSuffix(text, "\n") {
			if !c.session.tryEvaluate(c.session.pending.String()) {
				c.session.pending.Reset()
			}
		}
	}
	return len(text)
}

// Write 实现 io.Writer，便于解释器直接 fmt.Fprint 到通道。
func (c *Channel) Write(p []byte) (int, error) {
	return c.WriteString(string(p)), nil
}

// display 只负责把文本交给展示层并通知观察者，不触碰累积缓冲。
func (c *Channel) display(text string) {
	c.session.sink.SetStyle(c.style)
	c.session.sink.Append(text)
	if c.session.observer != nil {
		c.session.observer(c.label, text)
	}
}
