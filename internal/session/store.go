// Package session persists console transcripts: every run of text that went
// through the input, output and error channels, in display order.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Line is one channel write, tagged with the stream it came from.
type Line struct {
	Stream string `json:"stream"`
	Text   string `json:"text"`
}

type Record struct {
	ID      string    `json:"id"`
	Started time.Time `json:"started"`
	Updated time.Time `json:"updated"`
	Lines   []Line    `json:"lines"`
}

// NewRecord starts an empty transcript with a fresh id.
func NewRecord() *Record {
	return &Record{ID: uuid.NewString(), Started: time.Now()}
}

// Append adds one channel write. Consecutive writes from the same stream are
// merged so transcripts stay readable.
func (r *Record) Append(stream, text string) {
	if r == nil || text == "" {
		return
	}
	if n := len(r.Lines); n > 0 && r.Lines[n-1].Stream == stream {
		r.Lines[n-1].Text += text
		return
	}
	r.Lines = append(r.Lines, Line{Stream: stream, Text: text})
}

func dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cmdcon", "transcripts"), nil
}

// Dir allows tests and embedders to override the transcript directory.
var Dir = dir

func Save(rec *Record) (string, error) {
	if rec == nil {
		return "", errors.New("nil transcript record")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	d, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", err
	}
	rec.Updated = time.Now()
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(d, rec.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func Load(id string) (*Record, error) {
	d, err := Dir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(d, id+".json"))
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func Last() (*Record, error) {
	records, err := List()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no transcripts found")
	}
	return records[0], nil
}

// List returns all transcripts, newest first.
func List() ([]*Record, error) {
	d, err := Dir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(d)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var records []*Record
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		id := e.Name()[:len(e.Name())-len(".json")]
		rec, err := Load(id)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Updated.After(records[j].Updated)
	})
	return records, nil
}
