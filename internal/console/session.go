package console

import (
	"strings"

	"cmdcon/internal/events"
)

// Interpreter 消费累积的源文本。返回 true 表示语句尚不完整、需要继续输入，
// 返回 false 表示求值已经结束（成功或解释器自行上报了错误）。
// 同一逻辑语句会随着续行以不断增长的全文反复送入。
type Interpreter interface {
	Evaluate(source string) bool
}

// InterpreterFunc 让普通函数充当 Interpreter。
type InterpreterFunc func(source string) bool

func (f InterpreterFunc) Evaluate(source string) bool {
	return f(source)
}

// Session 驱动提示符状态机并在输入行、解释器与三路通道之间搬运文本。
//
// 状态只有两个：主提示与续行提示，完全由最近一次求值的返回值决定。
// 所有方法都假定在同一个逻辑线程上被调用。
type Session struct {
	interp     Interpreter
	sink       Sink
	prompt     string
	contPrompt string
	more       bool
	pending    strings.Builder

	// In/Out/Err 对应输入回显、解释器输出与错误诊断三路通道。
	// Out 与 Err 也可由宿主直接写入（例如启动横幅）。
	In  *Channel
	Out *Channel
	Err *Channel

	bus      *events.Bus
	observer func(label Label, text string)
}

// PushLine 处理一行已提交的输入：先以提交时刻的提示符回显整行，
// 再把行文本写入 Input 通道，由通道决定是否触发求值。
func (s *Session) PushLine(line string) {
	prompt := s.Prompt()
	s.In.display(prompt)
	if s.bus != nil {
		s.bus.Publish(events.Event{Type: events.LineSubmitted, Text: line, Prompt: prompt})
	}
	s.In.WriteString(line + "\n")
}

// Prompt 返回当前应展示的提示符文本。
func (s *Session) Prompt() string {
	if s.more {
		return s.contPrompt
	}
	return s.prompt
}

// Continuing 报告会话是否处于续行状态。
func (s *Session) Continuing() bool {
	return s.more
}

// Pending 返回累积缓冲的当前内容。
func (s *Session) Pending() string {
	return s.pending.String()
}

// tryEvaluate 把累积文本交给解释器并根据返回值切换提示符状态。
// 解释器抛出的 panic 原样向宿主传播，这里不做兜底。
func (s *Session) tryEvaluate(source string) bool {
	more := s.interp.Evaluate(source)
	changed := more != s.more
	s.more = more
	if s.bus != nil {
		s.bus.Publish(events.Event{Type: events.EvalFinished, Text: source, More: more, Prompt: s.Prompt()})
		if changed {
			s.bus.Publish(events.Event{Type: events.PromptChanged, Prompt: s.Prompt(), More: more})
		}
	}
	return more
}
