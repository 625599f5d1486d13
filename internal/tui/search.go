package tui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

const maxSearchRows = 8

// searchState 维护 Ctrl+R 历史搜索弹窗的查询与选中状态。
// entries 最近优先；空查询时原样列出。
type searchState struct {
	query    string
	entries  []string
	matches  []string
	selected int
}

func newSearchState(entries []string) *searchState {
	s := &searchState{entries: entries}
	s.filter()
	return s
}

func (s *searchState) appendQuery(text string) {
	s.query += text
	s.filter()
}

func (s *searchState) backspace() {
	if s.query == "" {
		return
	}
	runes := []rune(s.query)
	s.query = string(runes[:len(runes)-1])
	s.filter()
}

func (s *searchState) filter() {
	s.selected = 0
	if strings.TrimSpace(s.query) == "" {
		s.matches = append([]string(nil), s.entries...)
		return
	}
	s.matches = s.matches[:0]
	for _, m := range fuzzy.Find(s.query, s.entries) {
		s.matches = append(s.matches, m.Str)
	}
}

func (s *searchState) move(delta int) {
	if len(s.matches) == 0 {
		return
	}
	s.selected += delta
	if s.selected < 0 {
		s.selected = 0
	}
	if s.selected >= len(s.matches) {
		s.selected = len(s.matches) - 1
	}
}

func (s *searchState) choice() (string, bool) {
	if s.selected < 0 || s.selected >= len(s.matches) {
		return "", false
	}
	return s.matches[s.selected], true
}

func (s *searchState) view(width int) string {
	var b strings.Builder
	b.WriteString("历史搜索: " + s.query + "▌\n")
	rows := s.matches
	if len(rows) > maxSearchRows {
		rows = rows[:maxSearchRows]
	}
	if len(rows) == 0 {
		b.WriteString("  (无匹配)")
		return b.String()
	}
	for i, row := range rows {
		marker := "  "
		if i == s.selected {
			marker = "> "
		}
		line := marker + row
		if width > 0 && len([]rune(line)) > width {
			line = string([]rune(line)[:width])
		}
		b.WriteString(line)
		if i < len(rows)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
