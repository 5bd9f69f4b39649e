package domain

import "time"

// StorageArea is a named place where pantry items live (fridge, freezer,
// pantry shelf, ...). Position is the display rank: across all areas the
// positions always form the dense sequence 0..N-1.
type StorageArea struct {
	ID        string
	Name      string
	Icon      string
	Color     string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PantryItem is one tracked stock of a named food in an area. Quantity is
// at least 1 for as long as the row exists; a quantity reaching zero means
// the row is deleted. ExpiryDate carries day granularity only.
type PantryItem struct {
	ID            string
	StorageAreaID string
	Name          string
	Quantity      int
	IsOpened      bool
	OpenedAt      *time.Time
	ExpiryDate    *time.Time
	CreatedAt     time.Time
}

// Icons and Colors are the closed presentation tag sets accepted for areas.
var Icons = []string{"refrigerator", "snowflake", "warehouse", "box", "home", "archive", "package"}

var Colors = []string{"slate", "blue", "cyan", "emerald", "amber", "violet", "rose"}

func ValidIcon(icon string) bool {
	return contains(Icons, icon)
}

func ValidColor(color string) bool {
	return contains(Colors, color)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
