package figure

import (
	"maps"
	"slices"
)

const mmPerInch = 25.4

// Journal describes the column geometry of a publication.
type Journal struct {
	Name        string
	ColumnWidth float64 // inches
	FontSize    float64 // points
}

// Journals holds the built-in presets keyed by short name.
var Journals = map[string]Journal{
	"epj": {Name: "European Physical Journal", ColumnWidth: 88 / mmPerInch, FontSize: 10},
}

// LookupJournal returns the preset registered under name.
func LookupJournal(name string) (Journal, bool) {
	j, ok := Journals[name]
	return j, ok
}

// JournalNames returns the preset names in sorted order.
func JournalNames() []string {
	return slices.Sorted(maps.Keys(Journals))
}
