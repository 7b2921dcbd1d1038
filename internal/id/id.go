package id

import (
	"fmt"
	"strconv"
	"strings"
)

// Record prefixes.
const (
	PrefixStaff       = "STF"
	PrefixProduct     = "PRD"
	PrefixTransaction = "TX"
	PrefixSalary      = "SAL"
	PrefixExpense     = "EXP"
)

// FormatCatalogID returns a catalog ID like "STF-0007".
func FormatCatalogID(prefix string, seq int) string {
	return fmt.Sprintf("%s-%04d", prefix, seq)
}

// FormatEntryID returns a journal entry ID like "TX-2025-01-001".
func FormatEntryID(prefix string, year, month, seq int) string {
	return fmt.Sprintf("%s-%04d-%02d-%03d", prefix, year, month, seq)
}

// ParseCatalogID parses "STF-0007" into prefix and seq.
func ParseCatalogID(id string) (prefix string, seq int, err error) {
	parts := strings.Split(id, "-")
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, fmt.Errorf("invalid catalog ID format: %q", id)
	}
	seq, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, fmt.Errorf("invalid sequence in catalog ID %q: %w", id, err)
	}
	return parts[0], seq, nil
}

// ParseEntryID parses "TX-2025-01-001" into prefix, year, month, seq.
func ParseEntryID(id string) (prefix string, year, month, seq int, err error) {
	parts := strings.Split(id, "-")
	if len(parts) != 4 || parts[0] == "" {
		return "", 0, 0, 0, fmt.Errorf("invalid entry ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid year in entry ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid month in entry ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(parts[3])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid sequence in entry ID %q: %w", id, err)
	}

	return parts[0], year, month, seq, nil
}

// NextCatalogSeq returns one past the highest sequence among existing IDs with prefix.
// IDs that do not parse are ignored.
func NextCatalogSeq(prefix string, existing []string) int {
	maxSeq := 0
	for _, e := range existing {
		p, seq, err := ParseCatalogID(e)
		if err != nil || p != prefix {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}

// NextEntrySeq returns the next sequence for prefix within year/month.
func NextEntrySeq(prefix string, year, month int, existing []string) int {
	maxSeq := 0
	for _, e := range existing {
		p, y, m, seq, err := ParseEntryID(e)
		if err != nil || p != prefix || y != year || m != month {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}
