package leveldata

import "strings"

// Item is something a chest can hold and a door can require.
type Item int

const (
	ItemUnknown Item = iota
	ItemGem
	ItemBoots
	ItemKey
)

func (i Item) String() string {
	switch i {
	case ItemGem:
		return "Gem"
	case ItemBoots:
		return "Boots"
	case ItemKey:
		return "Key"
	}
	return "Unknown"
}

// ParseItem maps an item name to an Item. Unrecognised names give
// ItemUnknown and false; callers keep the sentinel and warn.
func ParseItem(name string) (Item, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gem":
		return ItemGem, true
	case "boots":
		return ItemBoots, true
	case "key":
		return ItemKey, true
	}
	return ItemUnknown, false
}

// SplitItems splits a comma separated item property.
func SplitItems(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
