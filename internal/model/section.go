package model

import (
	"slices"
	"strings"
)

// Section is a service area a staff member is allowed to work in.
type Section string

const (
	SectionManicure Section = "MANICURE"
	SectionPedicure Section = "PEDICURE"
	SectionBarber   Section = "BARBER"
)

// DefaultSections is the section set used when the config does not list one.
var DefaultSections = []Section{SectionManicure, SectionPedicure, SectionBarber}

// ParseSection normalizes user input ("barber ", "Barber") to a Section.
func ParseSection(s string) Section {
	return Section(strings.ToUpper(strings.TrimSpace(s)))
}

// SectionSet is an ordered, duplicate-free list of sections.
type SectionSet []Section

// NewSectionSet normalizes, de-duplicates and drops empty entries.
func NewSectionSet(raw ...string) SectionSet {
	var set SectionSet
	for _, r := range raw {
		sec := ParseSection(r)
		if sec == "" || slices.Contains(set, sec) {
			continue
		}
		set = append(set, sec)
	}
	return set
}

// Has reports whether sec is in the set.
func (s SectionSet) Has(sec Section) bool {
	return slices.Contains(s, sec)
}

// String joins the set as "MANICURE, BARBER".
func (s SectionSet) String() string {
	parts := make([]string, len(s))
	for i, sec := range s {
		parts[i] = string(sec)
	}
	return strings.Join(parts, ", ")
}
