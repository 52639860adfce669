// Package inventory implements the daily aging rules for stocked items.
//
// The package is pure computation. Callers construct items, decide when a
// simulated day has passed, and own any display or persistence of results.
//
// # Categories
//
// Every item is classified once per update by its name:
//
//   - "Aged Brie" gains quality as it ages, twice as fast once expired
//   - "Backstage passes to a TAFKAL80ETC concert" gains 1, 2 or 3 per day as
//     the concert approaches and drops to 0 after it
//   - "Sulfuras, Hand of Ragnaros" is legendary and never changes
//   - any other name is a normal item that loses quality, twice as fast once
//     expired; names containing "Conjured" lose it twice as fast again
//
// # Update Passes
//
// AdvanceOneDay applies three separated passes to each item:
//
//  1. Quality update, using the sell-in value from before the day
//  2. Sell-in decrement
//  3. Post-expiry correction when the new sell-in is negative
//
// Quality is clamped to [MinQuality, MaxQuality] per application of a rule.
// A conjured item degrades twice inside a single application, so the floor
// is only checked before the first of those two decrements. A conjured item
// at quality 1 ends the day at -1.
package inventory
