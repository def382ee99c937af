package components

import (
	"sort"

	"github.com/yohamta/donburi"
)

// ContactSet holds the entities a sensor currently overlaps.
type ContactSet map[donburi.Entity]struct{}

// Insert adds e and reports whether the set changed.
func (s ContactSet) Insert(e donburi.Entity) bool {
	if _, ok := s[e]; ok {
		return false
	}
	s[e] = struct{}{}
	return true
}

// Remove deletes e and reports whether the set changed.
func (s ContactSet) Remove(e donburi.Entity) bool {
	if _, ok := s[e]; !ok {
		return false
	}
	delete(s, e)
	return true
}

func (s ContactSet) Contains(e donburi.Entity) bool {
	_, ok := s[e]
	return ok
}

func (s ContactSet) Empty() bool { return len(s) == 0 }

// Sorted returns the members in entity order.
func (s ContactSet) Sorted() []donburi.Entity {
	out := make([]donburi.Entity, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GroundSensorData lives on the thin sensor under a GroundDetection entity.
// Changed is set for the tick in which Contacts changed.
type GroundSensorData struct {
	Detector donburi.Entity
	Contacts ContactSet
	Changed  bool
}

var GroundSensor = donburi.NewComponentType[GroundSensorData]()

// GroundDetectionData is true while the entity's sensor touches solid ground.
// Landed and LeftGround mark the tick of each edge.
type GroundDetectionData struct {
	Sensor     donburi.Entity
	OnGround   bool
	Landed     bool
	LeftGround bool
}

var GroundDetection = donburi.NewComponentType[GroundDetectionData]()

// ClimberData tracks the climbable areas an entity overlaps and whether it is
// climbing.
type ClimberData struct {
	Intersecting ContactSet
	Climbing     bool
}

var Climber = donburi.NewComponentType[ClimberData]()

type SwimmerData struct {
	InWater bool
}

var Swimmer = donburi.NewComponentType[SwimmerData]()
