package inventory

import "fmt"

// Item is a single stocked item.
//
// SellIn counts the days left to sell the item and goes negative once the
// item has expired. Quality is bounded to [MinQuality, MaxQuality] for every
// category except the legendary one, which is never mutated.
type Item struct {
	Name    string `json:"name" yaml:"name"`
	SellIn  int    `json:"sell_in" yaml:"sell_in"`
	Quality int    `json:"quality" yaml:"quality"`
}

// NewItem creates an item. No validation is performed.
func NewItem(name string, sellIn, quality int) Item {
	return Item{Name: name, SellIn: sellIn, Quality: quality}
}

// Category returns the rule category selected by the item's name.
func (i Item) Category() Category {
	return Classify(i.Name)
}

// Expired reports whether the selling window has passed.
func (i Item) Expired() bool {
	return i.SellIn < 0
}

// String renders the item the way the daily report prints it.
func (i Item) String() string {
	return fmt.Sprintf("%s, %d, %d", i.Name, i.SellIn, i.Quality)
}
