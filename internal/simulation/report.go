package simulation

import (
	"bufio"
	"fmt"
	"io"

	"github.com/roach88/gildedrose/internal/inventory"
)

// DefaultInventory returns the standard demo inventory.
func DefaultInventory() []inventory.Item {
	return []inventory.Item{
		inventory.NewItem("+5 Dexterity Vest", 10, 20),
		inventory.NewItem(inventory.AgedBrieName, 2, 0),
		inventory.NewItem("Elixir of the Mongoose", 5, 7),
		inventory.NewItem(inventory.LegendaryName, 0, 80),
		inventory.NewItem(inventory.LegendaryName, -1, 80),
		inventory.NewItem(inventory.BackstagePassName, 15, 20),
		inventory.NewItem(inventory.BackstagePassName, 10, 49),
		inventory.NewItem(inventory.BackstagePassName, 5, 49),
		inventory.NewItem("Conjured Mana Cake", 3, 6),
	}
}

// WriteReport writes snapshots in the daily text report format. Every day
// block ends with a blank line.
func WriteReport(w io.Writer, snapshots []Snapshot) error {
	bw := bufio.NewWriter(w)
	for _, snap := range snapshots {
		fmt.Fprintf(bw, "-------- day %d --------\n", snap.Day)
		fmt.Fprintln(bw, "name, sellIn, quality")
		for _, item := range snap.Items {
			fmt.Fprintln(bw, item.String())
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}
