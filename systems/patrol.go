package systems

import (
	"math"

	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/physics"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// arrivedEpsilon is how close a body must be to a patrol point to count as on it.
const arrivedEpsilon = 1e-6

func towards(from, to physics.Vec, speed float64) physics.Vec {
	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	if l < arrivedEpsilon {
		return physics.Vec{}
	}
	return physics.Vec{X: dx / l * speed, Y: dy / l * speed}
}

// UpdatePatrol walks kinematic bodies along their patrol points. A body that
// sits on its target, or would head back the way it came, has arrived: it
// snaps onto the point and turns to the next one, reversing at either end.
func UpdatePatrol(e *ecs.ECS) {
	eng := Engine(e)
	if eng == nil {
		return
	}
	components.Patrol.Each(e.World, func(entry *donburi.Entry) {
		patrol := components.Patrol.Get(entry)
		h := bodyHandle(entry)
		if h == 0 || len(patrol.Points) <= 1 {
			return
		}
		speed := components.Movement.Get(entry).Speed

		pos := eng.Position(h)
		cur := eng.Velocity(h)
		v := towards(pos, patrol.Points[patrol.Index], speed)

		arrived := v == (physics.Vec{}) || v.X*cur.X+v.Y*cur.Y < 0
		if arrived {
			switch patrol.Index {
			case 0:
				patrol.Forward = true
			case len(patrol.Points) - 1:
				patrol.Forward = false
			}
			pos = patrol.Points[patrol.Index]
			eng.SetPosition(h, pos)
			if patrol.Forward {
				patrol.Index++
			} else {
				patrol.Index--
			}
			v = towards(pos, patrol.Points[patrol.Index], speed)
		}

		if v.X != 0 {
			components.Movement.Get(entry).FacingX = math.Copysign(1, v.X)
		}
		eng.SetVelocity(h, v)
	})
}
