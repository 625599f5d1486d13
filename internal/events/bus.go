package events

import (
	"sync"
	"time"
)

// Type 标识控制台生命周期事件。
type Type string

const (
	// LineSubmitted 用户在输入行按下回车。
	LineSubmitted Type = "line.submitted"
	// EvalFinished 解释器完成一次求值（More 表示还需要更多输入）。
	EvalFinished Type = "eval.finished"
	// PromptChanged 提示符在主提示与续行提示之间切换。
	PromptChanged Type = "prompt.changed"
)

// Event 是总线上流动的控制台事件。
type Event struct {
	Type   Type
	Text   string
	Prompt string
	More   bool
	At     time.Time
}

// Bus is a simple pub-sub for console lifecycle events.
// Publish never blocks; slow subscribers drop events.
type Bus struct {
	mu     sync.Mutex
	subs   []chan Event
	closed bool
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}
	ch := make(chan Event, 32)
	b.subs = append(b.subs, ch)
	return ch
}

func (b *Bus) Publish(evt Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	if evt.At.IsZero() {
		evt.At = time.Now()
	}
	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		close(ch)
	}
	b.closed = true
}
