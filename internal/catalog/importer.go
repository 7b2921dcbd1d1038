package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/harmonic-pos/salonledger/internal/money"
)

// Parser converts a product list file into drafts.
type Parser interface {
	Parse(r io.Reader) ([]ProductDraft, error)
	Format() string
}

// Registry maps format names to parsers. Names are case-insensitive.
type Registry struct {
	byFormat map[string]Parser
}

// FileInfo describes a file waiting in the import directory.
type FileInfo struct {
	Name   string
	Path   string
	Size   int64
	Format string
}

// NewRegistry returns a registry holding parsers.
func NewRegistry(parsers ...Parser) *Registry {
	r := &Registry{byFormat: make(map[string]Parser, len(parsers))}
	for _, p := range parsers {
		r.Register(p)
	}
	return r
}

// Register adds p. Registering a format twice is a programming error.
func (r *Registry) Register(p Parser) {
	name := strings.ToLower(p.Format())
	if _, dup := r.byFormat[name]; dup {
		panic(fmt.Sprintf("catalog: parser for %q registered twice", name))
	}
	r.byFormat[name] = p
}

// Lookup returns the parser for format.
func (r *Registry) Lookup(format string) (Parser, error) {
	if p, ok := r.byFormat[strings.ToLower(format)]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown import format %q (want one of %s)", format, strings.Join(r.Formats(), ", "))
}

// Formats lists the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.byFormat))
	for name := range r.byFormat {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry knows the csv and lines formats.
func DefaultRegistry() *Registry {
	return NewRegistry(&CSVParser{}, &LinesParser{})
}

// FormatForFile picks a parser format from a file extension.
func FormatForFile(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return "csv"
	case ".txt":
		return "lines"
	default:
		return ""
	}
}

// CSVParser reads a CSV with a name,price,stock header. Column order is free
// and stock may be omitted.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads the CSV and returns one draft per data row.
func (p *CSVParser) Parse(r io.Reader) ([]ProductDraft, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading product CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := map[string]int{}
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	nameCol, ok := cols["name"]
	if !ok {
		return nil, errors.New("product CSV needs a name column")
	}
	priceCol, ok := cols["price"]
	if !ok {
		return nil, errors.New("product CSV needs a price column")
	}
	stockCol, hasStock := cols["stock"]

	var drafts []ProductDraft
	for i, rec := range records[1:] {
		d := ProductDraft{Name: strings.TrimSpace(rec[nameCol])}
		d.Price, err = money.Parse(rec[priceCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if hasStock && strings.TrimSpace(rec[stockCol]) != "" {
			d.Stock, err = strconv.Atoi(strings.TrimSpace(rec[stockCol]))
			if err != nil {
				return nil, fmt.Errorf("row %d: parsing stock %q: %w", i+2, rec[stockCol], err)
			}
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// LinesParser reads "name | price | stock" lines. Every line must carry a price.
type LinesParser struct{}

// Format returns the parser name.
func (p *LinesParser) Format() string { return "lines" }

// Parse reads the lines format.
func (p *LinesParser) Parse(r io.Reader) ([]ProductDraft, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading product lines: %w", err)
	}
	return ParseProductLines(string(data), ProductDraft{})
}

// importDir is the subdirectory for product files waiting to be imported.
const importDir = "import"

// processedDir is the subdirectory for imported files.
const processedDir = "import/processed"

// Scan returns importable files in <dataDir>/import/.
func Scan(dataDir string) ([]FileInfo, error) {
	dir := filepath.Join(dataDir, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		format := FormatForFile(e.Name())
		if format == "" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name:   e.Name(),
			Path:   filepath.Join(dir, e.Name()),
			Size:   info.Size(),
			Format: format,
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(dataDir, fileName string) error {
	src := filepath.Join(dataDir, importDir, fileName)
	dstDir := filepath.Join(dataDir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
