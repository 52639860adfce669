package inventory

// rule is the per-category row of the aging table.
//
// quality runs before the sell-in decrement and sees the sell-in held at the
// start of the day. expired runs after the decrement, only when the new
// sell-in is negative. Legendary items do not age.
type rule struct {
	quality func(sellIn, quality int) int
	expired func(quality int) int
	ages    bool
}

var rules = [...]rule{
	CategoryNormal: {
		quality: func(_, q int) int { return degrade(q, 1) },
		expired: func(q int) int { return degrade(q, 1) },
		ages:    true,
	},
	CategoryConjured: {
		quality: func(_, q int) int { return degrade(q, 2) },
		expired: func(q int) int { return degrade(q, 2) },
		ages:    true,
	},
	CategoryAgedBrie: {
		quality: func(_, q int) int { return improve(q) },
		expired: improve,
		ages:    true,
	},
	CategoryBackstagePass: {
		quality: backstagePassQuality,
		expired: func(int) int { return MinQuality },
		ages:    true,
	},
	CategoryLegendary: {
		quality: func(_, q int) int { return q },
		expired: func(q int) int { return q },
	},
}

// AdvanceOneDay ages every item in place by one simulated day.
//
// Items are independent of each other. An empty or nil slice is a no-op.
// Callers that share a slice between goroutines must serialize calls.
func AdvanceOneDay(items []Item) {
	for i := range items {
		Advance(&items[i])
	}
}

// Advance ages a single item by one simulated day.
func Advance(item *Item) {
	r := rules[Classify(item.Name)]

	item.Quality = r.quality(item.SellIn, item.Quality)

	if r.ages {
		item.SellIn--
	}

	if item.SellIn < 0 {
		item.Quality = r.expired(item.Quality)
	}
}

// degrade subtracts n from a positive quality. The floor is checked once,
// before the first decrement.
func degrade(quality, n int) int {
	if quality > MinQuality {
		return quality - n
	}
	return quality
}

// improve adds one point below the cap.
func improve(quality int) int {
	if quality < MaxQuality {
		return quality + 1
	}
	return quality
}

// backstagePassQuality adds the base point and, close to the concert, up to
// two more. Every extra point is capped independently. A pass already at or
// above the cap gains nothing.
func backstagePassQuality(sellIn, quality int) int {
	if quality >= MaxQuality {
		return quality
	}
	quality++
	if sellIn < FarExpiryThreshold {
		quality = improve(quality)
	}
	if sellIn < CloseExpiryThreshold {
		quality = improve(quality)
	}
	return quality
}
