package components

import (
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/yohamta/donburi"
)

// ItemsData is a bag of items, on the player as inventory, on chests as the
// reward and on doors as the requirement.
type ItemsData struct {
	List []leveldata.Item
}

func (i *ItemsData) Add(items ...leveldata.Item) {
	i.List = append(i.List, items...)
}

func (i *ItemsData) Contains(item leveldata.Item) bool {
	for _, it := range i.List {
		if it == item {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every item of want is held, counting duplicates.
func (i *ItemsData) ContainsAll(want []leveldata.Item) bool {
	counts := make(map[leveldata.Item]int, len(i.List))
	for _, it := range i.List {
		counts[it]++
	}
	for _, it := range want {
		if counts[it] == 0 {
			return false
		}
		counts[it]--
	}
	return true
}

// RemoveAll removes one occurrence of each item of want.
func (i *ItemsData) RemoveAll(want []leveldata.Item) {
	for _, w := range want {
		for j, it := range i.List {
			if it == w {
				i.List = append(i.List[:j], i.List[j+1:]...)
				break
			}
		}
	}
}

var Items = donburi.NewComponentType[ItemsData]()
