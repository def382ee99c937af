// Package cpengine implements physics.Engine on the Chipmunk2D port. Every
// shape shares one collision type so a single handler turns begin/separate
// callbacks into started/stopped events.
package cpengine

import (
	"github.com/automoto/digrunner/physics"
	"github.com/jakecoffman/cp"
)

const collisionTypeTracked cp.CollisionType = 1

type entry struct {
	handle physics.Handle
	def    physics.BodyDef
	body   *cp.Body
	shape  *cp.Shape

	parent   physics.Handle
	children []physics.Handle

	gravityScale float64
	mask         physics.Category
}

// Engine is a physics.Engine backed by a cp.Space.
type Engine struct {
	space   *cp.Space
	next    physics.Handle
	entries map[physics.Handle]*entry
	shapes  map[*cp.Shape]*entry
	events  []physics.Event
}

func New(gravity physics.Vec) *Engine {
	e := &Engine{
		space:   cp.NewSpace(),
		entries: make(map[physics.Handle]*entry),
		shapes:  make(map[*cp.Shape]*entry),
	}
	e.space.SetGravity(cp.Vector{X: gravity.X, Y: gravity.Y})

	handler := e.space.NewCollisionHandler(collisionTypeTracked, collisionTypeTracked)
	handler.UserData = e
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if eng, ok := userData.(*Engine); ok {
			eng.record(physics.Started, arb)
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		if eng, ok := userData.(*Engine); ok {
			eng.record(physics.Stopped, arb)
		}
	}
	return e
}

func (e *Engine) record(kind physics.EventKind, arb *cp.Arbiter) {
	shapeA, shapeB := arb.Shapes()
	a, okA := e.shapes[shapeA]
	b, okB := e.shapes[shapeB]
	if !okA || !okB || a.def.Owner == b.def.Owner {
		return
	}
	e.events = append(e.events, physics.Event{Kind: kind, A: a.def.Owner, B: b.def.Owner})
}

func filterOf(category, mask physics.Category) cp.ShapeFilter {
	return cp.ShapeFilter{Group: 0, Categories: uint(category), Mask: uint(mask)}
}

func (e *Engine) newHandle() physics.Handle {
	e.next++
	return e.next
}

func (e *Engine) track(en *entry) physics.Handle {
	en.handle = e.newHandle()
	en.shape.SetCollisionType(collisionTypeTracked)
	en.shape.SetFilter(filterOf(en.def.Category, en.mask))
	e.entries[en.handle] = en
	e.shapes[en.shape] = en
	return en.handle
}

func (e *Engine) AddBody(def physics.BodyDef) physics.Handle {
	en := &entry{def: def, gravityScale: 1, mask: def.Mask}
	hx, hy := def.HalfExtents.X, def.HalfExtents.Y

	switch def.Kind {
	case physics.Static:
		bb := cp.BB{L: def.Center.X - hx, B: def.Center.Y - hy, R: def.Center.X + hx, T: def.Center.Y + hy}
		en.shape = cp.NewBox2(e.space.StaticBody, bb, 0)
	case physics.Kinematic:
		en.body = cp.NewKinematicBody()
		en.body.SetPosition(cp.Vector{X: def.Center.X, Y: def.Center.Y})
		e.space.AddBody(en.body)
		en.shape = cp.NewBox(en.body, hx*2, hy*2, 0)
	default:
		en.body = cp.NewBody(1, cp.INFINITY)
		en.body.SetPosition(cp.Vector{X: def.Center.X, Y: def.Center.Y})
		en.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, gravity.Mult(en.gravityScale), damping, dt)
		})
		e.space.AddBody(en.body)
		en.shape = cp.NewBox(en.body, hx*2, hy*2, 0)
	}

	en.shape.SetFriction(def.Friction)
	en.shape.SetSensor(def.Sensor)
	h := e.track(en)
	e.space.AddShape(en.shape)
	return h
}

func (e *Engine) AddSensor(parent physics.Handle, def physics.SensorDef) physics.Handle {
	p, ok := e.entries[parent]
	if !ok || p.body == nil {
		return 0
	}
	hx, hy := def.HalfExtents.X, def.HalfExtents.Y
	bb := cp.BB{L: def.Offset.X - hx, B: def.Offset.Y - hy, R: def.Offset.X + hx, T: def.Offset.Y + hy}

	en := &entry{
		def: physics.BodyDef{
			Owner:       def.Owner,
			Kind:        p.def.Kind,
			HalfExtents: def.HalfExtents,
			Sensor:      true,
			Category:    def.Category,
			Mask:        def.Mask,
		},
		parent:       parent,
		gravityScale: 1,
		mask:         def.Mask,
	}
	en.shape = cp.NewBox2(p.body, bb, 0)
	en.shape.SetSensor(true)
	h := e.track(en)
	e.space.AddShape(en.shape)
	p.children = append(p.children, h)
	return h
}

func (e *Engine) Remove(h physics.Handle) {
	en, ok := e.entries[h]
	if !ok {
		return
	}
	// Detach first: removing a child compacts its parent's list.
	children := en.children
	en.children = nil
	for _, child := range children {
		e.Remove(child)
	}
	if p, ok := e.entries[en.parent]; ok {
		kept := p.children[:0]
		for _, c := range p.children {
			if c != h {
				kept = append(kept, c)
			}
		}
		p.children = kept
	}

	// Removing a shape runs separate callbacks for its live arbiters.
	e.space.RemoveShape(en.shape)
	if en.body != nil && en.parent == 0 {
		e.space.RemoveBody(en.body)
	}
	delete(e.shapes, en.shape)
	delete(e.entries, h)
}

func (e *Engine) SetMask(h physics.Handle, mask physics.Category) {
	en, ok := e.entries[h]
	if !ok {
		return
	}
	en.mask = mask
	en.shape.SetFilter(filterOf(en.def.Category, mask))
}

func (e *Engine) Mask(h physics.Handle) physics.Category {
	if en, ok := e.entries[h]; ok {
		return en.mask
	}
	return physics.CategoryNone
}

func (e *Engine) Position(h physics.Handle) physics.Vec {
	en, ok := e.entries[h]
	if !ok {
		return physics.Vec{}
	}
	if en.body == nil || en.parent != 0 {
		return e.Bounds(h).Center()
	}
	p := en.body.Position()
	return physics.Vec{X: p.X, Y: p.Y}
}

func (e *Engine) SetPosition(h physics.Handle, p physics.Vec) {
	en, ok := e.entries[h]
	if !ok || en.body == nil || en.parent != 0 {
		return
	}
	en.body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
}

func (e *Engine) Velocity(h physics.Handle) physics.Vec {
	en, ok := e.entries[h]
	if !ok || en.body == nil {
		return physics.Vec{}
	}
	v := en.body.Velocity()
	return physics.Vec{X: v.X, Y: v.Y}
}

func (e *Engine) SetVelocity(h physics.Handle, v physics.Vec) {
	en, ok := e.entries[h]
	if !ok || en.body == nil || en.parent != 0 {
		return
	}
	en.body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Y})
}

func (e *Engine) SetGravityScale(h physics.Handle, scale float64) {
	if en, ok := e.entries[h]; ok {
		en.gravityScale = scale
	}
}

func (e *Engine) Bounds(h physics.Handle) physics.Rect {
	en, ok := e.entries[h]
	if !ok {
		return physics.Rect{}
	}
	bb := en.shape.BB()
	return physics.Rect{Min: physics.Vec{X: bb.L, Y: bb.B}, Max: physics.Vec{X: bb.R, Y: bb.T}}
}

func (e *Engine) Step(dt float64) {
	e.space.Step(dt)
}

func (e *Engine) Drain() []physics.Event {
	out := e.events
	e.events = nil
	return out
}
