package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// ClockData is the fixed timestep of the current tick.
type ClockData struct {
	Delta time.Duration
	Tick  uint64
}

// Seconds returns Delta in seconds for the physics step.
func (c *ClockData) Seconds() float64 {
	return c.Delta.Seconds()
}

var Clock = donburi.NewComponentType[ClockData]()
