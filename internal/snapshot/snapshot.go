// Package snapshot persists the whole ledger document as one JSON value.
//
// Every driver keeps two slots: the current snapshot and the one it
// replaced. Save moves current into backup before writing.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/harmonic-pos/salonledger/internal/journal"
	"github.com/harmonic-pos/salonledger/internal/model"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot saved")

// Store is a snapshot driver.
type Store interface {
	Load(ctx context.Context) (*model.Document, error)
	LoadBackup(ctx context.Context) (*model.Document, error)
	Save(ctx context.Context, doc *model.Document) error
	Close() error
}

// Drivers names the supported drivers.
var Drivers = []string{"file", "sqlite", "bolt"}

// Open returns the driver named by driver, storing at path.
func Open(driver, path string) (Store, error) {
	switch driver {
	case "", "file":
		return NewFileStore(path)
	case "sqlite":
		return NewSQLiteStore(path)
	case "bolt":
		return NewBoltStore(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q (want one of %s)", driver, strings.Join(Drivers, ", "))
	}
}

// LoadOrSeed loads the current snapshot. When none exists it builds one with
// seed, saves it, and reports seeded=true.
func LoadOrSeed(ctx context.Context, s Store, seed func() (*model.Document, error), logger *slog.Logger) (doc *model.Document, seeded bool, err error) {
	doc, err = s.Load(ctx)
	if err == nil {
		return doc, false, nil
	}
	if !errors.Is(err, ErrNoSnapshot) {
		return nil, false, err
	}
	doc, err = seed()
	if err != nil {
		return nil, false, fmt.Errorf("seeding document: %w", err)
	}
	if err := s.Save(ctx, doc); err != nil {
		return nil, false, fmt.Errorf("saving seeded document: %w", err)
	}
	logger.Info("seeded new ledger", "users", len(doc.Users))
	return doc, true, nil
}

// Encode renders doc as indented JSON.
func Encode(doc *model.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a stored document and fills empty collections.
func Decode(data []byte) (*model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

// InvalidDocumentError lists the problems found in an imported document.
type InvalidDocumentError struct {
	Problems []journal.ValidationError
}

func (e *InvalidDocumentError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Error())
	}
	return fmt.Sprintf("invalid document: %d problem(s): %s", len(e.Problems), strings.Join(msgs, "; "))
}

// Export writes doc to w in the backup format.
func Export(w io.Writer, doc *model.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Import reads a backup and validates it. Nothing is returned for a document
// that fails validation.
func Import(r io.Reader) (*model.Document, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}
	doc, err := Decode(buf.Bytes())
	if err != nil {
		return nil, err
	}
	if problems := journal.ValidateDocument(doc); len(problems) > 0 {
		return nil, &InvalidDocumentError{Problems: problems}
	}
	return doc, nil
}
