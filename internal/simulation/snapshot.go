package simulation

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/gildedrose/internal/inventory"
)

// Snapshot is the inventory as it stood at the end of a simulated day.
type Snapshot struct {
	Day   int              `json:"day"`
	Items []inventory.Item `json:"items"`
}

// NewSnapshot copies items so later updates cannot alter the snapshot.
func NewSnapshot(day int, items []inventory.Item) Snapshot {
	return Snapshot{Day: day, Items: copyItems(items)}
}

// canonicalItem fixes the key order of the digest encoding.
type canonicalItem struct {
	Name    string `json:"name"`
	Quality int    `json:"quality"`
	SellIn  int    `json:"sell_in"`
}

type canonicalSnapshot struct {
	Day   int             `json:"day"`
	Items []canonicalItem `json:"items"`
}

// CanonicalJSON encodes the snapshot with sorted keys, NFC-normalized names
// and no HTML escaping. Equal snapshots always encode to equal bytes.
func (s Snapshot) CanonicalJSON() ([]byte, error) {
	cs := canonicalSnapshot{
		Day:   s.Day,
		Items: make([]canonicalItem, len(s.Items)),
	}
	for i, item := range s.Items {
		cs.Items[i] = canonicalItem{
			Name:    norm.NFC.String(item.Name),
			Quality: item.Quality,
			SellIn:  item.SellIn,
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cs); err != nil {
		return nil, fmt.Errorf("encode snapshot day %d: %w", s.Day, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Digest returns the hex SHA-256 of the canonical encoding.
func (s Snapshot) Digest() (string, error) {
	data, err := s.CanonicalJSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func copyItems(items []inventory.Item) []inventory.Item {
	out := make([]inventory.Item, len(items))
	copy(out, items)
	return out
}
