package console

// UnlimitedHistory 作为 MaxHistory 的取值时表示不限制条目数量。
const UnlimitedHistory = -1

// DefaultMaxHistory 上下键可召回的历史条目默认上限。
const DefaultMaxHistory = 100

// History 保存已提交的输入行，供上下键召回。
//
// entries 按最近优先排列。index 0 永远是一个空哨兵，代表"尚未提交的当前行"；
// 已记录的条目从 index 1 开始。cursor 只在导航时移动，Record 会把它重置回哨兵。
type History struct {
	entries  []string
	cursor   int
	capacity int
}

// NewHistory 创建历史缓冲。capacity > 0 表示上限，UnlimitedHistory 表示不限。
func NewHistory(capacity int) *History {
	return &History{
		entries:  []string{""},
		capacity: capacity,
	}
}

// Record 把 line 写入哨兵位并压入新哨兵，超出容量时淘汰最旧的条目。
// 空行不记录，但导航游标仍会复位。
func (h *History) Record(line string) {
	h.cursor = 0
	if line == "" {
		return
	}
	h.entries[0] = line
	h.entries = append([]string{""}, h.entries...)
	if h.capacity > 0 && len(h.entries) > h.capacity+1 {
		h.entries = h.entries[:h.capacity+1]
	}
}

// Older 向更早的条目移动一步并返回该条目；已到最旧时原地返回。
func (h *History) Older() string {
	if h.cursor < len(h.entries)-1 {
		h.cursor++
	}
	return h.entries[h.cursor]
}

// Newer 向更新的条目移动一步并返回该条目；已到哨兵时原地返回。
func (h *History) Newer() string {
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor]
}

// Current 返回游标所指条目，不移动游标。
func (h *History) Current() string {
	return h.entries[h.cursor]
}

// Len 返回已记录的条目数（不含哨兵）。
func (h *History) Len() int {
	return len(h.entries) - 1
}

// Entries 返回已记录条目的副本，最近优先，不含哨兵。
func (h *History) Entries() []string {
	if len(h.entries) <= 1 {
		return nil
	}
	return append([]string(nil), h.entries[1:]...)
}
