// Package catalog turns operator input into staff and product drafts.
package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/money"
)

var nameSeparators = regexp.MustCompile(`[\r\n,]+`)

// SplitNames splits a batch of names on commas and line breaks, trims each
// one and drops empties. "Ana, Budi\nCici" yields three names.
func SplitNames(raw string) []string {
	var names []string
	for _, part := range nameSeparators.Split(raw, -1) {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ProductDraft is a product that has not been assigned an ID yet.
type ProductDraft struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

// ParseProductLines reads one product per line. A line is either a bare name,
// which takes price and stock from defaults, or "name | price | stock" where
// blank fields also fall back to defaults.
func ParseProductLines(raw string, defaults ProductDraft) ([]ProductDraft, error) {
	var drafts []ProductDraft
	for i, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		d, err := parseProductLine(line, defaults)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func parseProductLine(line string, defaults ProductDraft) (ProductDraft, error) {
	d := ProductDraft{Name: line, Price: defaults.Price, Stock: defaults.Stock}
	if !strings.Contains(line, "|") {
		return d, nil
	}
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	d.Name = parts[0]
	if len(parts) > 1 && parts[1] != "" {
		price, err := money.Parse(parts[1])
		if err != nil {
			return ProductDraft{}, err
		}
		d.Price = price
	}
	if len(parts) > 2 && parts[2] != "" {
		stock, err := strconv.Atoi(parts[2])
		if err != nil {
			return ProductDraft{}, fmt.Errorf("parsing stock %q: %w", parts[2], err)
		}
		d.Stock = stock
	}
	if len(parts) > 3 {
		return ProductDraft{}, fmt.Errorf("too many fields in %q", line)
	}
	return d, nil
}

// SplitServiceEntry reads a batch entry of the form "Foot Spa (PEDICURE)".
// The trailing parenthesis only counts as a section when it names one in
// allowed, so "Gel Polish (long lasting)" stays a whole name and keeps
// defaultSection.
func SplitServiceEntry(entry, defaultSection string, allowed model.SectionSet) (name, section string) {
	entry = strings.TrimSpace(entry)
	open := strings.LastIndex(entry, "(")
	if open <= 0 || !strings.HasSuffix(entry, ")") {
		return entry, defaultSection
	}
	section = strings.TrimSpace(entry[open+1 : len(entry)-1])
	name = strings.TrimSpace(entry[:open])
	if section == "" || name == "" || !allowed.Has(model.ParseSection(section)) {
		return entry, defaultSection
	}
	return name, section
}
