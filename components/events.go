package components

import "github.com/yohamta/donburi"

// CollidersChanged is emitted every time a level's wall colliders are replaced.
type CollidersChanged struct {
	LevelID    string
	Count      int
	Generation int
}

// NoticesData queues notifications for observers outside the tick, such as
// the debug viewer. Readers drain the slices they consume.
type NoticesData struct {
	CollidersChanged []CollidersChanged
}

var Notices = donburi.NewComponentType[NoticesData]()

// CommandsData holds structural changes deferred to the next barrier.
type CommandsData struct {
	Pending []func(donburi.World)
}

func (c *CommandsData) Push(fn func(donburi.World)) {
	c.Pending = append(c.Pending, fn)
}

var Commands = donburi.NewComponentType[CommandsData]()
