package console

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"cmdcon/internal/events"
)

// fakeSink records appended text along with the style active at append time.
type fakeSink struct {
	style   lipgloss.Style
	appends []sinkAppend
}

type sinkAppend struct {
	style lipgloss.Style
	text  string
}

func (f *fakeSink) SetStyle(style lipgloss.Style) { f.style = style }

func (f *fakeSink) Append(text string) {
	f.appends = append(f.appends, sinkAppend{style: f.style, text: text})
}

func (f *fakeSink) text() string {
	var b strings.Builder
	for _, a := range f.appends {
		b.WriteString(a.text)
	}
	return b.String()
}

// scriptedInterp returns true while the source still matches a "needs more" prefix.
type scriptedInterp struct {
	more  map[string]bool
	calls []string
}

func (s *scriptedInterp) Evaluate(source string) bool {
	s.calls = append(s.calls, source)
	return s.more[source]
}

func newTestConsole(t *testing.T, interp Interpreter, opts Options) (*Console, *fakeSink) {
	t.Helper()
	sink := &fakeSink{}
	opts.Interpreter = interp
	opts.Sink = sink
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, sink
}

func TestConsoleRoundTripEcho(t *testing.T) {
	t.Parallel()

	interp := &scriptedInterp{}
	c, sink := newTestConsole(t, interp, Options{})

	c.Edit.SetText("x = 1")
	c.Edit.Submit()

	if got := sink.text(); got != "> x = 1\n" {
		t.Fatalf("display = %q, want %q", got, "> x = 1\n")
	}
	if len(interp.calls) != 1 || interp.calls[0] != "x = 1\n" {
		t.Fatalf("interpreter calls = %#v, want one call with %q", interp.calls, "x = 1\n")
	}
	if got := c.Session.Pending(); got != "" {
		t.Fatalf("pending after completion = %q, want empty", got)
	}
}

func TestConsoleContinuationAccumulates(t *testing.T) {
	t.Parallel()

	interp := &scriptedInterp{more: map[string]bool{"if True:\n": true}}
	c, sink := newTestConsole(t, interp, Options{})

	c.Edit.SetText("if True:")
	c.Edit.Submit()

	if got := c.Session.Prompt(); got != DefaultContinuationPrompt {
		t.Fatalf("prompt after continuation = %q, want %q", got, DefaultContinuationPrompt)
	}
	if !c.Session.Continuing() {
		t.Fatalf("session should be continuing")
	}
	if got := c.Session.Pending(); got != "if True:\n" {
		t.Fatalf("pending = %q, want retained first line", got)
	}

	c.Edit.SetText("    pass")
	c.Edit.Submit()

	want := []string{"if True:\n", "if True:\n    pass\n"}
	if len(interp.calls) != 2 {
		t.Fatalf("interpreter calls = %d, want 2: %#v", len(interp.calls), interp.calls)
	}
	for i := range want {
		if interp.calls[i] != want[i] {
			t.Fatalf("call %d = %q, want %q", i, interp.calls[i], want[i])
		}
	}
	if got := c.Session.Prompt(); got != DefaultPrompt {
		t.Fatalf("prompt after completion = %q, want %q", got, DefaultPrompt)
	}
	if got := c.Session.Pending(); got != "" {
		t.Fatalf("pending after completion = %q, want empty", got)
	}

	// The second line echoes with the continuation prompt captured at submit time.
	if got := sink.text(); got != "> if True:\n… "+"    pass\n" {
		t.Fatalf("display = %q", got)
	}
}

func TestConsolePromptCapturedBeforeTransition(t *testing.T) {
	t.Parallel()

	interp := &scriptedInterp{more: map[string]bool{"open(\n": true}}
	c, sink := newTestConsole(t, interp, Options{PromptText: ">>> ", ContinuationPromptText: "... "})

	c.Edit.SetText("open(")
	c.Edit.Submit()

	// Echo used the primary prompt even though the evaluation flipped state.
	if got := sink.text(); !strings.HasPrefix(got, ">>> open(\n") {
		t.Fatalf("display = %q, want primary-prompt echo", got)
	}
	if got := c.Session.Prompt(); got != "... " {
		t.Fatalf("prompt = %q, want continuation", got)
	}
}

func TestChannelWriteReturnsFullLength(t *testing.T) {
	t.Parallel()

	c, _ := newTestConsole(t, &scriptedInterp{}, Options{})

	if n := c.Session.Out.WriteString("hello"); n != len("hello") {
		t.Fatalf("WriteString = %d, want %d", n, len("hello"))
	}
	n, err := c.Session.Err.Write([]byte("oops\n"))
	if err != nil || n != 5 {
		t.Fatalf("Write = (%d, %v), want (5, nil)", n, err)
	}
}

func TestOutputAndErrorChannelsDoNotAccumulate(t *testing.T) {
	t.Parallel()

	interp := &scriptedInterp{}
	c, sink := newTestConsole(t, interp, Options{})

	c.Session.Out.WriteString("banner\n")
	c.Session.Err.WriteString("diag\n")

	if len(interp.calls) != 0 {
		t.Fatalf("host writes must not trigger evaluation: %#v", interp.calls)
	}
	if got := c.Session.Pending(); got != "" {
		t.Fatalf("pending = %q, want empty", got)
	}
	if got := sink.text(); got != "banner\ndiag\n" {
		t.Fatalf("display = %q", got)
	}
}

func TestUnterminatedInputWriteDoesNotEvaluate(t *testing.T) {
	t.Parallel()

	interp := &scriptedInterp{}
	c, _ := newTestConsole(t, interp, Options{})

	c.Session.In.WriteString("partial")
	if len(interp.calls) != 0 {
		t.Fatalf("evaluation triggered without terminator: %#v", interp.calls)
	}
	if got := c.Session.Pending(); got != "partial" {
		t.Fatalf("pending = %q, want %q", got, "partial")
	}

	c.Session.In.WriteString(" rest\n")
	if len(interp.calls) != 1 || interp.calls[0] != "partial rest\n" {
		t.Fatalf("interpreter calls = %#v", interp.calls)
	}
}

func TestChannelStylesApplied(t *testing.T) {
	t.Parallel()

	inStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	outStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	c, sink := newTestConsole(t, &scriptedInterp{}, Options{
		InputStyle:  inStyle,
		OutputStyle: &outStyle,
	})

	c.Session.Out.WriteString("out")
	c.Edit.SetText("in")
	c.Edit.Submit()

	if len(sink.appends) < 2 {
		t.Fatalf("appends = %d, want >= 2", len(sink.appends))
	}
	if got := sink.appends[0].style.GetForeground(); got != outStyle.GetForeground() {
		t.Fatalf("output style foreground = %v", got)
	}
	if got := sink.appends[1].style.GetForeground(); got != inStyle.GetForeground() {
		t.Fatalf("input style foreground = %v", got)
	}
	// Error channel falls back to the input style when unset.
	if got := c.Session.Err.Style().GetForeground(); got != inStyle.GetForeground() {
		t.Fatalf("error style foreground = %v, want input fallback", got)
	}
}

func TestConsoleInitTextWrittenThroughOutput(t *testing.T) {
	t.Parallel()

	_, sink := newTestConsole(t, &scriptedInterp{}, Options{InitText: "welcome\n"})
	if got := sink.text(); got != "welcome\n" {
		t.Fatalf("display = %q, want banner", got)
	}
}

func TestConsoleRejectsInvalidBounds(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	if _, err := New(Options{Interpreter: &scriptedInterp{}, Sink: sink, MaxHistory: -2}); err == nil {
		t.Fatalf("expected error for invalid history capacity")
	}
	if _, err := New(Options{Interpreter: &scriptedInterp{}, Sink: sink, TabWidth: -1}); err == nil {
		t.Fatalf("expected error for negative tab width")
	}
	if _, err := New(Options{Sink: sink}); err == nil {
		t.Fatalf("expected error for missing interpreter")
	}
	if _, err := New(Options{Interpreter: &scriptedInterp{}}); err == nil {
		t.Fatalf("expected error for missing sink")
	}
}

func TestConsolePublishesLifecycleEvents(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	defer bus.Close()
	sub := bus.Subscribe()

	interp := &scriptedInterp{more: map[string]bool{"if True:\n": true}}
	c, _ := newTestConsole(t, interp, Options{Events: bus})

	c.Edit.SetText("if True:")
	c.Edit.Submit()

	var types []events.Type
	for i := 0; i < 3; i++ {
		evt := <-sub
		types = append(types, evt.Type)
	}
	want := []events.Type{events.LineSubmitted, events.EvalFinished, events.PromptChanged}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("event %d = %q, want %q (all: %v)", i, types[i], want[i], types)
		}
	}
}

func TestConsoleObserverSeesChannelWrites(t *testing.T) {
	t.Parallel()

	type obs struct {
		label Label
		text  string
	}
	var seen []obs
	c, _ := newTestConsole(t, &scriptedInterp{}, Options{
		Observer: func(label Label, text string) {
			seen = append(seen, obs{label, text})
		},
	})

	c.Session.Out.WriteString("hi\n")
	c.Edit.SetText("ok")
	c.Edit.Submit()

	if len(seen) != 3 {
		t.Fatalf("observed writes = %d, want 3: %#v", len(seen), seen)
	}
	if seen[0].label != Output || seen[0].text != "hi\n" {
		t.Fatalf("first observed = %#v", seen[0])
	}
	if seen[1].label != Input || seen[1].text != "> " {
		t.Fatalf("second observed = %#v", seen[1])
	}
	if seen[2].label != Input || seen[2].text != "ok\n" {
		t.Fatalf("third observed = %#v", seen[2])
	}
}

func TestInterpreterPanicPropagates(t *testing.T) {
	t.Parallel()

	boom := InterpreterFunc(func(string) bool { panic("interpreter fault") })
	c, _ := newTestConsole(t, boom, Options{})

	defer func() {
		if r := recover(); r != "interpreter fault" {
			t.Fatalf("recovered %v, want unmodified interpreter fault", r)
		}
	}()
	c.Edit.SetText("x")
	c.Edit.Submit()
	t.Fatalf("expected panic to propagate")
}

func TestConsoleSeed(t *testing.T) {
	t.Parallel()

	c, sink := newTestConsole(t, &scriptedInterp{}, Options{})
	c.Seed([]string{"old", "newer"})

	if got := sink.text(); got != "" {
		t.Fatalf("seeding must not echo: %q", got)
	}
	if got := c.History.Older(); got != "newer" {
		t.Fatalf("Older = %q, want most recent seed", got)
	}
}
