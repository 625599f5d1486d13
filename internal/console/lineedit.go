package console

import "strings"

// LiteralTab 作为 TabWidth 的取值时表示插入制表符本身而不是空格。
const LiteralTab = 0

// Direction 表示历史导航方向。
type Direction int

const (
	// NavigateOlder 向更早的历史条目移动（上键）。
	NavigateOlder Direction = iota
	// NavigateNewer 向更新的历史条目移动（下键）。
	NavigateNewer
)

// Key 标识 LineEdit 关心的按键意图。
type Key int

const (
	KeyEnter Key = iota
	KeyUp
	KeyDown
	KeyTab
)

// LineEdit 维护单行可编辑文本与光标，消费按键意图并驱动历史召回。
// 提交的行先写入 History、再经 onSubmit 回调送出，顺序固定。
type LineEdit struct {
	text     []rune
	caret    int
	history  *History
	tabWidth int
	onSubmit func(line string)
}

// NewLineEdit 创建行编辑器。tabWidth > 0 时 Tab 展开为对应数量的空格，
// LiteralTab 时插入 '\t'。onSubmit 可以为 nil。
func NewLineEdit(history *History, tabWidth int, onSubmit func(line string)) *LineEdit {
	return &LineEdit{
		history:  history,
		tabWidth: tabWidth,
		onSubmit: onSubmit,
	}
}

// Text 返回当前编辑文本。
func (e *LineEdit) Text() string {
	return string(e.text)
}

// SetText 整体替换编辑文本并把光标移到行尾。
func (e *LineEdit) SetText(s string) {
	e.text = []rune(s)
	e.caret = len(e.text)
}

// Caret 返回光标位置（按 rune 计）。
func (e *LineEdit) Caret() int {
	return e.caret
}

// SetCaret 移动光标，越界时收拢到文本范围内。
func (e *LineEdit) SetCaret(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(e.text) {
		pos = len(e.text)
	}
	e.caret = pos
}

// Insert 在光标处插入文本，光标移到插入内容之后。
func (e *LineEdit) Insert(s string) {
	if s == "" {
		return
	}
	ins := []rune(s)
	out := make([]rune, 0, len(e.text)+len(ins))
	out = append(out, e.text[:e.caret]...)
	out = append(out, ins...)
	out = append(out, e.text[e.caret:]...)
	e.text = out
	e.caret += len(ins)
}

// Submit 读取当前文本，记入历史后经 onSubmit 送出，随后清空输入行。
// 返回提交的行。
func (e *LineEdit) Submit() string {
	line := string(e.text)
	e.history.Record(line)
	if e.onSubmit != nil {
		e.onSubmit(line)
	}
	// Record 已把游标复位到哨兵，输入行因此变空。
	e.SetText(e.history.Current())
	return line
}

// Navigate 按方向召回历史条目，整体替换编辑文本，光标落在行尾。
func (e *LineEdit) Navigate(dir Direction) string {
	var entry string
	switch dir {
	case NavigateOlder:
		entry = e.history.Older()
	case NavigateNewer:
		entry = e.history.Newer()
	default:
		return string(e.text)
	}
	e.SetText(entry)
	return entry
}

// InsertTab 在光标处插入制表内容：tabWidth 个空格，或一个 '\t'。
func (e *LineEdit) InsertTab() {
	if e.tabWidth > LiteralTab {
		e.Insert(strings.Repeat(" ", e.tabWidth))
		return
	}
	e.Insert("\t")
}

// InterceptedKeys 声明宿主事件循环必须拦截的按键：命中集合的按键不得再走
// 默认处理（例如 Tab 的焦点切换），以保证输入行不会因 Tab 失焦。
func (e *LineEdit) InterceptedKeys() map[Key]bool {
	return map[Key]bool{KeyTab: true}
}
