package main

import (
	"fmt"
	"strings"

	"cmdcon/internal/session"
)

// showLast prints the most recent saved transcript to stdout.
func showLast() error {
	rec, err := session.Last()
	if err != nil {
		return err
	}
	fmt.Print(renderTranscript(rec))
	return nil
}

// renderTranscript replays a transcript the way it appeared on screen.
// Lines already carry prompts, so the body is the stream texts in order.
func renderTranscript(rec *session.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %s (%s)\n", rec.ID, rec.Started.Format("2006-01-02 15:04:05"))
	for _, line := range rec.Lines {
		b.WriteString(line.Text)
	}
	if n := len(rec.Lines); n > 0 && !strings.HasSuffix(rec.Lines[n-1].Text, "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}
