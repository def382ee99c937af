package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yohamta/donburi"
)

func TestMatchEither(t *testing.T) {
	w := donburi.NewWorld()
	tag := donburi.NewTag()
	door, player, wall := w.Create(tag), w.Create(tag), w.Create(tag)

	doors := map[donburi.Entity]string{door: "front"}
	lookup := func(e donburi.Entity) (string, bool) {
		v, ok := doors[e]
		return v, ok
	}

	tests := []struct {
		name      string
		ev        Event
		wantOK    bool
		wantOther donburi.Entity
	}{
		{name: "match on A", ev: Event{A: door, B: player}, wantOK: true, wantOther: player},
		{name: "match on B", ev: Event{A: player, B: door}, wantOK: true, wantOther: player},
		{name: "no match", ev: Event{A: player, B: wall}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, matched, other, ok := MatchEither(tt.ev, lookup)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, "front", v)
			assert.Equal(t, door, matched)
			assert.Equal(t, tt.wantOther, other)
		})
	}
}

func TestInteracts(t *testing.T) {
	assert.True(t, Interacts(CategoryPlayer, CategoryAll, CategoryEnemy, CategoryAll))
	assert.False(t, Interacts(CategoryPlayer, CategoryAll&^CategoryEnemy, CategoryEnemy, CategoryAll))
	assert.False(t, Interacts(CategorySensor, CategoryWall, CategoryPlayer, CategoryAll))
}

func TestRectOverlaps(t *testing.T) {
	a := RectAround(Vec{}, Vec{X: 1, Y: 1})
	assert.True(t, a.Overlaps(RectAround(Vec{X: 2}, Vec{X: 1, Y: 1})), "touching edges overlap")
	assert.False(t, a.Overlaps(RectAround(Vec{X: 3}, Vec{X: 0.5, Y: 1})))
	assert.Equal(t, Vec{}, a.Center())
}
