package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"lapwatch/internal/core/model"
)

const sessionFileName = "session.yaml"

type yamlMark struct {
	Number     int       `yaml:"number"`
	ValueMs    int64     `yaml:"value_ms"`
	TotalMs    int64     `yaml:"total_ms"`
	DiffMs     *int64    `yaml:"diff_ms,omitempty"`
	Mode       string    `yaml:"mode,omitempty"`
	RecordedAt time.Time `yaml:"recorded_at,omitempty"`
}

type yamlSession struct {
	ID            string     `yaml:"id"`
	ElapsedMs     int64      `yaml:"elapsed_ms"`
	SplitAnchorMs int64      `yaml:"split_anchor_ms"`
	Mode          string     `yaml:"mode"`
	Precision     string     `yaml:"precision"`
	Running       bool       `yaml:"running"`
	SavedAt       time.Time  `yaml:"saved_at,omitempty"`
	Marks         []yamlMark `yaml:"marks"`
}

// SessionStore keeps the stopwatch session snapshot in a YAML file.
type SessionStore struct {
	path string
}

// NewSessionStore returns a store for the session file inside dir.
func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{path: filepath.Join(dir, sessionFileName)}
}

// Path returns the session file location.
func (store *SessionStore) Path() string {
	return store.path
}

// Load reads the persisted session. A missing file yields the default
// snapshot without error; an unreadable or corrupt file yields the default
// snapshot together with the error. The loaded snapshot is never running.
func (store *SessionStore) Load() (model.Snapshot, error) {
	snapshot := model.DefaultSnapshot()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return snapshot, nil
		}
		return snapshot, fmt.Errorf("read session file: %w", err)
	}

	var fileData yamlSession
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return snapshot, fmt.Errorf("parse session yaml: %w", err)
	}

	applyYamlSession(&snapshot, fileData)
	return snapshot, nil
}

// Save writes the snapshot, replacing the previous file atomically.
func (store *SessionStore) Save(snapshot model.Snapshot) error {
	fileData := yamlSession{
		ID:            snapshot.ID,
		ElapsedMs:     toMillis(snapshot.Elapsed),
		SplitAnchorMs: toMillis(snapshot.Anchor),
		Mode:          string(snapshot.Mode),
		Precision:     string(snapshot.Precision),
		Running:       snapshot.Running,
		SavedAt:       snapshot.SavedAt,
		Marks:         make([]yamlMark, 0, len(snapshot.Marks)),
	}
	for _, mark := range snapshot.Marks {
		entry := yamlMark{
			Number:     mark.Number,
			ValueMs:    toMillis(mark.Value),
			TotalMs:    toMillis(mark.Total),
			Mode:       string(mark.Mode),
			RecordedAt: mark.RecordedAt,
		}
		if mark.HasDiff {
			diff := toMillis(mark.Diff)
			entry.DiffMs = &diff
		}
		fileData.Marks = append(fileData.Marks, entry)
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal session yaml: %w", err)
	}
	return writeFileAtomic(store.path, serialized)
}

func applyYamlSession(snapshot *model.Snapshot, fileData yamlSession) {
	snapshot.ID = fileData.ID
	snapshot.SavedAt = fileData.SavedAt
	snapshot.Running = false

	if fileData.ElapsedMs > 0 {
		snapshot.Elapsed = fromMillis(fileData.ElapsedMs)
	}
	if mode, ok := model.ParseMode(fileData.Mode); ok {
		snapshot.Mode = mode
	}
	if precision, ok := model.ParsePrecision(fileData.Precision); ok {
		snapshot.Precision = precision
	}

	marks, ok := marksFromYaml(fileData.Marks)
	if !ok {
		return
	}
	snapshot.Marks = marks

	anchor := fromMillis(fileData.SplitAnchorMs)
	if anchor < 0 {
		anchor = 0
	}
	if anchor > snapshot.Elapsed {
		anchor = snapshot.Elapsed
	}
	snapshot.Anchor = anchor
}

// marksFromYaml rejects the whole list when any entry is out of sequence
// or negative.
func marksFromYaml(entries []yamlMark) ([]model.Mark, bool) {
	if len(entries) == 0 {
		return nil, true
	}
	marks := make([]model.Mark, 0, len(entries))
	for index, entry := range entries {
		if entry.Number != index+1 || entry.ValueMs < 0 || entry.TotalMs < 0 {
			return nil, false
		}
		mark := model.Mark{
			Number:     entry.Number,
			Value:      fromMillis(entry.ValueMs),
			Total:      fromMillis(entry.TotalMs),
			RecordedAt: entry.RecordedAt,
		}
		mark.Mode, _ = model.ParseMode(entry.Mode)
		if entry.DiffMs != nil {
			mark.Diff = fromMillis(*entry.DiffMs)
			mark.HasDiff = true
		}
		marks = append(marks, mark)
	}
	return marks, true
}

func toMillis(d time.Duration) int64 {
	return int64(d / time.Millisecond)
}

func fromMillis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
