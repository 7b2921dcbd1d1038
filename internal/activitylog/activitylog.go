// Package activitylog keeps a CSV trail of who changed what in the ledger.
package activitylog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harmonic-pos/salonledger/internal/ledger"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp time.Time
	Actor     string
	Action    string
	RecordID  string
	Details   string
}

// Header is the CSV header for activity-log.csv.
const Header = "timestamp,actor,action,record_id,details"

const (
	numFields   = 5
	logDir      = "logs"
	logFile     = "logs/activity-log.csv"
	colTime     = 0
	colActor    = 1
	colAction   = 2
	colRecordID = 3
	colDetails  = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colActor] = e.Actor
	row[colAction] = e.Action
	row[colRecordID] = e.RecordID
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}

	return Entry{
		Timestamp: ts,
		Actor:     record[colActor],
		Action:    record[colAction],
		RecordID:  record[colRecordID],
		Details:   record[colDetails],
	}, nil
}

// FromChange turns a ledger change into a log entry attributed to actor.
func FromChange(actor string, c ledger.Change) Entry {
	return Entry{Timestamp: c.At, Actor: actor, Action: c.Action, RecordID: c.RecordID, Details: c.Details}
}

// Path returns the log file location inside dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, logFile)
}

// Append writes entries to <dataDir>/logs/activity-log.csv, creating the file and header if needed.
func Append(dataDir string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	dir := filepath.Join(dataDir, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := Path(dataDir)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <dataDir>/logs/activity-log.csv.
// Returns an empty slice if the file does not exist.
func Read(dataDir string) ([]Entry, error) {
	f, err := os.Open(Path(dataDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Recorder collects ledger changes and writes them out in one batch.
type Recorder struct {
	mu      sync.Mutex
	dataDir string
	actor   string
	pending []Entry
}

// NewRecorder attributes every recorded change to actor.
func NewRecorder(dataDir, actor string) *Recorder {
	return &Recorder{dataDir: dataDir, actor: actor}
}

// Record is a ledger hook.
func (r *Recorder) Record(c ledger.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, FromChange(r.actor, c))
}

// Pending returns the number of entries not yet written.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Flush appends pending entries to the log file.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := Append(r.dataDir, r.pending); err != nil {
		return err
	}
	r.pending = nil
	return nil
}
