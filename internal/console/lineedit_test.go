package console

import "testing"

func TestLineEditSubmitRecordsBeforeEmit(t *testing.T) {
	t.Parallel()

	h := NewHistory(10)
	var seenInHistory int
	e := NewLineEdit(h, LiteralTab, func(line string) {
		// The submitted line must already be in history when the callback fires.
		seenInHistory = h.Len()
	})

	e.SetText("x = 1")
	got := e.Submit()

	if got != "x = 1" {
		t.Fatalf("Submit returned %q, want %q", got, "x = 1")
	}
	if seenInHistory != 1 {
		t.Fatalf("history len inside callback = %d, want 1", seenInHistory)
	}
	if e.Text() != "" {
		t.Fatalf("text after submit = %q, want empty", e.Text())
	}
	if e.Caret() != 0 {
		t.Fatalf("caret after submit = %d, want 0", e.Caret())
	}
}

func TestLineEditSubmitEmptyLineStillEmits(t *testing.T) {
	t.Parallel()

	h := NewHistory(10)
	emitted := 0
	e := NewLineEdit(h, LiteralTab, func(string) { emitted++ })

	e.Submit()

	if emitted != 1 {
		t.Fatalf("emitted = %d, want 1", emitted)
	}
	if h.Len() != 0 {
		t.Fatalf("empty line recorded into history: len=%d", h.Len())
	}
}

func TestLineEditNavigateReplacesTextAndMovesCaret(t *testing.T) {
	t.Parallel()

	h := NewHistory(10)
	e := NewLineEdit(h, LiteralTab, nil)
	e.SetText("first")
	e.Submit()
	e.SetText("second line")
	e.Submit()

	if got := e.Navigate(NavigateOlder); got != "second line" {
		t.Fatalf("Navigate older = %q, want %q", got, "second line")
	}
	if e.Caret() != len([]rune("second line")) {
		t.Fatalf("caret = %d, want end of text", e.Caret())
	}
	if got := e.Navigate(NavigateOlder); got != "first" {
		t.Fatalf("Navigate older = %q, want %q", got, "first")
	}
	if got := e.Navigate(NavigateNewer); got != "second line" {
		t.Fatalf("Navigate newer = %q, want %q", got, "second line")
	}
	if got := e.Navigate(NavigateNewer); got != "" {
		t.Fatalf("Navigate newer at sentinel = %q, want empty", got)
	}
}

func TestLineEditInsertTabExpanded(t *testing.T) {
	t.Parallel()

	e := NewLineEdit(NewHistory(10), 4, nil)
	e.SetText("ab")
	e.SetCaret(1)
	e.InsertTab()

	if got := e.Text(); got != "a    b" {
		t.Fatalf("text = %q, want %q", got, "a    b")
	}
	if e.Caret() != 5 {
		t.Fatalf("caret = %d, want 5", e.Caret())
	}
}

func TestLineEditInsertTabLiteral(t *testing.T) {
	t.Parallel()

	e := NewLineEdit(NewHistory(10), LiteralTab, nil)
	e.InsertTab()

	if got := e.Text(); got != "\t" {
		t.Fatalf("text = %q, want literal tab", got)
	}
}

func TestLineEditInterceptsTabKey(t *testing.T) {
	t.Parallel()

	e := NewLineEdit(NewHistory(10), 4, nil)
	keys := e.InterceptedKeys()
	if !keys[KeyTab] {
		t.Fatalf("tab key not intercepted")
	}
	if keys[KeyEnter] || keys[KeyUp] || keys[KeyDown] {
		t.Fatalf("unexpected intercepted keys: %#v", keys)
	}
}

func TestLineEditInsertAtCaret(t *testing.T) {
	t.Parallel()

	e := NewLineEdit(NewHistory(10), LiteralTab, nil)
	e.SetText("héllo")
	e.SetCaret(2)
	e.Insert("x")

	if got := e.Text(); got != "héxllo" {
		t.Fatalf("text = %q, want %q", got, "héxllo")
	}
	if e.Caret() != 3 {
		t.Fatalf("caret = %d, want 3", e.Caret())
	}
}
