// Package physics describes the collision engine the simulation drives. The
// engine owns shapes and bodies; the simulation only sees handles, entity
// owners and the per-step stream of started/stopped overlap events.
package physics

import (
	"github.com/yohamta/donburi"
)

// Handle identifies a body or sensor inside an engine. The zero Handle is never
// issued.
type Handle uint64

// BodyKind selects how a body moves.
type BodyKind int

const (
	Static BodyKind = iota
	Kinematic
	Dynamic
)

// Category is a collision filter bit set. Two shapes interact when each one's
// category is in the other's mask.
type Category uint32

const (
	CategoryWall Category = 1 << iota
	CategoryPlayer
	CategoryEnemy
	CategorySensor
	CategoryTrigger

	CategoryNone Category = 0
	CategoryAll  Category = ^Category(0)
)

// Interacts reports whether two filters allow a pair to touch.
func Interacts(catA, maskA, catB, maskB Category) bool {
	return catA&maskB != 0 && catB&maskA != 0
}

type Vec struct {
	X, Y float64
}

// Rect is an axis-aligned box in world units, Y up.
type Rect struct {
	Min, Max Vec
}

// RectAround builds a Rect from a center and half extents.
func RectAround(center, half Vec) Rect {
	return Rect{
		Min: Vec{center.X - half.X, center.Y - half.Y},
		Max: Vec{center.X + half.X, center.Y + half.Y},
	}
}

func (r Rect) Center() Vec {
	return Vec{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Overlaps reports whether two rects intersect. Touching edges count.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// BodyDef describes a body with a single box shape.
type BodyDef struct {
	Owner       donburi.Entity
	Kind        BodyKind
	Center      Vec
	HalfExtents Vec
	Friction    float64
	Sensor      bool
	Category    Category
	Mask        Category
}

// SensorDef describes a sensor box attached to a parent body. Offset is from
// the parent's center.
type SensorDef struct {
	Owner       donburi.Entity
	Offset      Vec
	HalfExtents Vec
	Category    Category
	Mask        Category
}

type EventKind int

const (
	Started EventKind = iota
	Stopped
)

func (k EventKind) String() string {
	if k == Started {
		return "started"
	}
	return "stopped"
}

// Event reports that the shapes owned by A and B started or stopped overlapping.
type Event struct {
	Kind EventKind
	A, B donburi.Entity
}

// Engine is the collision engine. Events are queued in emission order and
// handed out once by Drain.
type Engine interface {
	AddBody(def BodyDef) Handle
	AddSensor(parent Handle, def SensorDef) Handle
	// Remove deletes a body together with its attached sensors and queues a
	// Stopped event for every pair it was part of.
	Remove(h Handle)

	SetMask(h Handle, mask Category)
	Mask(h Handle) Category

	Position(h Handle) Vec
	SetPosition(h Handle, p Vec)
	Velocity(h Handle) Vec
	SetVelocity(h Handle, v Vec)
	SetGravityScale(h Handle, scale float64)
	Bounds(h Handle) Rect

	Step(dt float64)
	Drain() []Event
}
