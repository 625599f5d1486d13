package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// DefaultMaxLines 滚动区默认保留的行数上限。
const DefaultMaxLines = 1000

// run 是一段共享同一样式的文本，不含换行。
type run struct {
	text  string
	style lipgloss.Style
}

// line 是一行内按样式切分的片段序列。
type line struct {
	runs []run
}

func (l line) plain() string {
	var b strings.Builder
	for _, r := range l.runs {
		b.WriteString(r.text)
	}
	return b.String()
}

// Scrollback 实现控制台的展示接收端：按当前样式追加文本，
// 行数超过上限时先进先出地丢弃最旧的行。
//
// 它只维护内容，不负责终端绘制；宿主（TUI 视口）调用 View 取回渲染结果
// 并自行滚动到最新内容。
type Scrollback struct {
	maxLines int
	done     []line // 已经以换行结束的行
	cur      line   // 末尾未换行的部分
	style    lipgloss.Style
}

// New 创建滚动区。maxLines 必须为正。
func New(maxLines int) (*Scrollback, error) {
	if maxLines <= 0 {
		return nil, fmt.Errorf("display: invalid max lines %d", maxLines)
	}
	return &Scrollback{maxLines: maxLines}, nil
}

// SetStyle 切换当前样式，作用于之后的 Append。
func (s *Scrollback) SetStyle(style lipgloss.Style) {
	s.style = style
}

// Append 追加文本。换行符结束当前行；超过行数上限时淘汰最旧的行。
func (s *Scrollback) Append(text string) {
	for text != "" {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			s.cur.runs = append(s.cur.runs, run{text: text, style: s.style})
			return
		}
		if idx > 0 {
			s.cur.runs = append(s.cur.runs, run{text: text[:idx], style: s.style})
		}
		s.done = append(s.done, s.cur)
		s.cur = line{}
		if len(s.done) > s.maxLines {
			s.done = s.done[len(s.done)-s.maxLines:]
		}
		text = text[idx+1:]
	}
}

// LineCount 返回当前保留的完整行数（不含末尾未换行的部分）。
func (s *Scrollback) LineCount() int {
	return len(s.done)
}

// Plain 返回不带样式的全部内容，供剪贴板或测试使用。
func (s *Scrollback) Plain() string {
	var b strings.Builder
	for _, l := range s.done {
		b.WriteString(l.plain())
		b.WriteByte('\n')
	}
	b.WriteString(s.cur.plain())
	return b.String()
}

// View 渲染全部内容：逐行套用样式，超宽的行按显示宽度硬换行。
// width <= 0 时不换行。
func (s *Scrollback) View(width int) string {
	var out []string
	render := func(l line) {
		for _, wrapped := range wrapLine(l, width) {
			var b strings.Builder
			for _, r := range wrapped.runs {
				b.WriteString(r.style.Render(r.text))
			}
			out = append(out, b.String())
		}
	}
	for _, l := range s.done {
		render(l)
	}
	if len(s.cur.runs) > 0 {
		render(s.cur)
	}
	return strings.Join(out, "\n")
}

// wrapLine 按显示宽度把一行切成多行，保持每个片段的样式。
func wrapLine(l line, width int) []line {
	if width <= 0 {
		return []line{l}
	}
	var (
		lines []line
		cur   line
		used  int
	)
	flush := func() {
		lines = append(lines, cur)
		cur = line{}
		used = 0
	}
	for _, r := range l.runs {
		var seg strings.Builder
		for _, ch := range r.text {
			w := runewidth.RuneWidth(ch)
			if used+w > width && used > 0 {
				if seg.Len() > 0 {
					cur.runs = append(cur.runs, run{text: seg.String(), style: r.style})
					seg.Reset()
				}
				flush()
			}
			seg.WriteRune(ch)
			used += w
		}
		if seg.Len() > 0 {
			cur.runs = append(cur.runs, run{text: seg.String(), style: r.style})
		}
	}
	lines = append(lines, cur)
	return lines
}
