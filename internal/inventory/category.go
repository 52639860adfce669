package inventory

import "strings"

// Quality bounds and backstage pass thresholds.
const (
	MaxQuality = 50
	MinQuality = 0

	// CloseExpiryThreshold: passes with a sell-in below this gain a third point.
	CloseExpiryThreshold = 6

	// FarExpiryThreshold: passes with a sell-in below this gain a second point.
	FarExpiryThreshold = 11
)

// Names that select a special category.
const (
	AgedBrieName      = "Aged Brie"
	BackstagePassName = "Backstage passes to a TAFKAL80ETC concert"
	LegendaryName     = "Sulfuras, Hand of Ragnaros"

	// ConjuredMarker doubles degradation of normal items whose name contains it.
	ConjuredMarker = "Conjured"
)

// Category selects the aging rules applied to an item.
type Category int

const (
	CategoryNormal Category = iota
	CategoryConjured
	CategoryAgedBrie
	CategoryBackstagePass
	CategoryLegendary
)

var categoryLabels = [...]string{
	CategoryNormal:        "normal",
	CategoryConjured:      "conjured",
	CategoryAgedBrie:      "aged_brie",
	CategoryBackstagePass: "backstage_pass",
	CategoryLegendary:     "legendary",
}

// String returns a stable lowercase label for the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryLabels) {
		return "unknown"
	}
	return categoryLabels[c]
}

// Classify maps an item name to its category.
//
// Exact names are matched first, so the conjured modifier only ever applies
// to names that would otherwise be normal.
func Classify(name string) Category {
	switch name {
	case AgedBrieName:
		return CategoryAgedBrie
	case BackstagePassName:
		return CategoryBackstagePass
	case LegendaryName:
		return CategoryLegendary
	}
	if strings.Contains(name, ConjuredMarker) {
		return CategoryConjured
	}
	return CategoryNormal
}
