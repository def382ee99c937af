// Package resolvengine implements physics.Engine on a resolv spatial hash.
// Dynamic bodies move and collide against solid shapes one axis at a time;
// overlaps are recomputed after every step and diffed into started/stopped
// events.
package resolvengine

import (
	"math"
	"sort"

	"github.com/automoto/digrunner/physics"
	"github.com/automoto/digrunner/shared/gamemath"
	"github.com/solarlune/resolv"
)

// Resolv tags
const (
	tagSolid  = "solid"
	tagSensor = "sensor"
)

// epsilon absorbs float error when deciding whether a shape lies ahead.
const epsilon = 1e-6

type body struct {
	handle physics.Handle
	def    physics.BodyDef
	obj    *resolv.Object

	parent   *body
	offset   physics.Vec
	children []*body

	velocity     physics.Vec
	gravityScale float64
	mask         physics.Category
}

type pairKey struct {
	a, b physics.Handle
}

func keyOf(a, b physics.Handle) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Engine is a physics.Engine backed by resolv. World coordinates are Y up; the
// resolv space is offset so that bounds.Min maps to its origin.
type Engine struct {
	space   *resolv.Space
	origin  physics.Vec
	gravity physics.Vec

	next     physics.Handle
	bodies   map[physics.Handle]*body
	contacts map[pairKey]struct{}
	events   []physics.Event
}

// New creates an engine covering bounds with the given spatial hash cell size.
func New(bounds physics.Rect, cellSize int, gravity physics.Vec) *Engine {
	w := int(math.Ceil(bounds.Max.X-bounds.Min.X)) + cellSize
	h := int(math.Ceil(bounds.Max.Y-bounds.Min.Y)) + cellSize
	return &Engine{
		space:    resolv.NewSpace(w, h, cellSize, cellSize),
		origin:   bounds.Min,
		gravity:  gravity,
		bodies:   make(map[physics.Handle]*body),
		contacts: make(map[pairKey]struct{}),
	}
}

func (e *Engine) newHandle() physics.Handle {
	e.next++
	return e.next
}

func (e *Engine) toSpace(center, half physics.Vec) (x, y float64) {
	return center.X - half.X - e.origin.X, center.Y - half.Y - e.origin.Y
}

func (e *Engine) AddBody(def physics.BodyDef) physics.Handle {
	tag := tagSolid
	if def.Sensor {
		tag = tagSensor
	}
	x, y := e.toSpace(def.Center, def.HalfExtents)
	w, h := def.HalfExtents.X*2, def.HalfExtents.Y*2
	obj := resolv.NewObject(x, y, w, h, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))

	b := &body{
		handle:       e.newHandle(),
		def:          def,
		obj:          obj,
		gravityScale: 1,
		mask:         def.Mask,
	}
	obj.Data = b
	e.space.Add(obj)
	e.bodies[b.handle] = b
	return b.handle
}

func (e *Engine) AddSensor(parent physics.Handle, def physics.SensorDef) physics.Handle {
	p, ok := e.bodies[parent]
	if !ok {
		return 0
	}
	center := p.center()
	center.X += def.Offset.X
	center.Y += def.Offset.Y

	h := e.AddBody(physics.BodyDef{
		Owner:       def.Owner,
		Kind:        physics.Kinematic,
		Center:      center,
		HalfExtents: def.HalfExtents,
		Sensor:      true,
		Category:    def.Category,
		Mask:        def.Mask,
	})
	s := e.bodies[h]
	s.parent = p
	s.offset = def.Offset
	p.children = append(p.children, s)
	return h
}

func (e *Engine) Remove(h physics.Handle) {
	b, ok := e.bodies[h]
	if !ok {
		return
	}
	// Detach first: removing a child compacts its parent's list.
	children := b.children
	b.children = nil
	for _, child := range children {
		e.Remove(child.handle)
	}
	if b.parent != nil {
		siblings := b.parent.children[:0]
		for _, c := range b.parent.children {
			if c != b {
				siblings = append(siblings, c)
			}
		}
		b.parent.children = siblings
	}

	var gone []pairKey
	for k := range e.contacts {
		if k.a == h || k.b == h {
			gone = append(gone, k)
		}
	}
	sortKeys(gone)
	for _, k := range gone {
		e.emit(physics.Stopped, k)
		delete(e.contacts, k)
	}

	e.space.Remove(b.obj)
	delete(e.bodies, h)
}

func (e *Engine) SetMask(h physics.Handle, mask physics.Category) {
	if b, ok := e.bodies[h]; ok {
		b.mask = mask
	}
}

func (e *Engine) Mask(h physics.Handle) physics.Category {
	if b, ok := e.bodies[h]; ok {
		return b.mask
	}
	return physics.CategoryNone
}

func (b *body) center() physics.Vec {
	return physics.Vec{X: b.obj.X + b.obj.W/2, Y: b.obj.Y + b.obj.H/2}
}

func (e *Engine) Position(h physics.Handle) physics.Vec {
	b, ok := e.bodies[h]
	if !ok {
		return physics.Vec{}
	}
	c := b.center()
	return physics.Vec{X: c.X + e.origin.X, Y: c.Y + e.origin.Y}
}

func (e *Engine) SetPosition(h physics.Handle, p physics.Vec) {
	b, ok := e.bodies[h]
	if !ok {
		return
	}
	b.obj.X = p.X - b.obj.W/2 - e.origin.X
	b.obj.Y = p.Y - b.obj.H/2 - e.origin.Y
	b.obj.Update()
	e.syncChildren(b)
}

func (e *Engine) Velocity(h physics.Handle) physics.Vec {
	if b, ok := e.bodies[h]; ok {
		return b.velocity
	}
	return physics.Vec{}
}

func (e *Engine) SetVelocity(h physics.Handle, v physics.Vec) {
	if b, ok := e.bodies[h]; ok {
		b.velocity = v
	}
}

func (e *Engine) SetGravityScale(h physics.Handle, scale float64) {
	if b, ok := e.bodies[h]; ok {
		b.gravityScale = scale
	}
}

func (e *Engine) Bounds(h physics.Handle) physics.Rect {
	b, ok := e.bodies[h]
	if !ok {
		return physics.Rect{}
	}
	return e.worldRect(b)
}

func (e *Engine) worldRect(b *body) physics.Rect {
	min := physics.Vec{X: b.obj.X + e.origin.X, Y: b.obj.Y + e.origin.Y}
	return physics.Rect{Min: min, Max: physics.Vec{X: min.X + b.obj.W, Y: min.Y + b.obj.H}}
}

// Step integrates dynamic and kinematic bodies, then refreshes the overlap set.
func (e *Engine) Step(dt float64) {
	for _, b := range e.sortedBodies() {
		if b.parent != nil {
			continue
		}
		switch b.def.Kind {
		case physics.Dynamic:
			b.velocity.X += e.gravity.X * b.gravityScale * dt
			b.velocity.Y += e.gravity.Y * b.gravityScale * dt
			e.moveAndCollide(b, dt)
		case physics.Kinematic:
			b.obj.X += b.velocity.X * dt
			b.obj.Y += b.velocity.Y * dt
			b.obj.Update()
		default:
			continue
		}
		e.syncChildren(b)
	}
	e.detect()
}

func (e *Engine) syncChildren(b *body) {
	c := b.center()
	for _, child := range b.children {
		child.obj.X = c.X + child.offset.X - child.obj.W/2
		child.obj.Y = c.Y + child.offset.Y - child.obj.H/2
		child.obj.Update()
	}
}

// blocks reports whether other stops b's movement.
func (e *Engine) blocks(b *body, other *resolv.Object) bool {
	ob, ok := other.Data.(*body)
	if !ok || ob == b || ob.def.Sensor || ob.parent == b {
		return false
	}
	if ob.def.Owner == b.def.Owner {
		return false
	}
	return physics.Interacts(b.def.Category, b.mask, ob.def.Category, ob.mask)
}

func (e *Engine) moveAndCollide(b *body, dt float64) {
	dx := b.velocity.X * dt
	if dx != 0 {
		if check := b.obj.Check(dx, 0, tagSolid); check != nil {
			for _, o := range check.ObjectsByTags(tagSolid) {
				if !e.blocks(b, o) || !spansOverlap(b.obj.Y, b.obj.H, o.Y, o.H) {
					continue
				}
				if dx > 0 {
					if o.X < b.obj.X+b.obj.W-epsilon {
						continue
					}
					dx = math.Min(dx, math.Max(0, o.X-(b.obj.X+b.obj.W)))
				} else {
					if o.X+o.W > b.obj.X+epsilon {
						continue
					}
					dx = math.Max(dx, math.Min(0, (o.X+o.W)-b.obj.X))
				}
			}
			if dx != b.velocity.X*dt {
				b.velocity.X = 0
			}
		}
		b.obj.X += dx
		b.obj.Update()
	}

	dy := b.velocity.Y * dt
	if dy != 0 {
		if check := b.obj.Check(0, dy, tagSolid); check != nil {
			for _, o := range check.ObjectsByTags(tagSolid) {
				if !e.blocks(b, o) || !spansOverlap(b.obj.X, b.obj.W, o.X, o.W) {
					continue
				}
				if dy > 0 {
					if o.Y < b.obj.Y+b.obj.H-epsilon {
						continue
					}
					dy = math.Min(dy, math.Max(0, o.Y-(b.obj.Y+b.obj.H)))
				} else {
					if o.Y+o.H > b.obj.Y+epsilon {
						continue
					}
					dy = math.Max(dy, math.Min(0, (o.Y+o.H)-b.obj.Y))
				}
			}
			if dy != b.velocity.Y*dt {
				if dy <= 0 && b.velocity.Y < 0 {
					// Resting on something: bleed horizontal speed.
					b.velocity.X = gamemath.ApplyFriction(b.velocity.X, b.def.Friction)
				}
				b.velocity.Y = 0
			}
		}
		b.obj.Y += dy
		b.obj.Update()
	}
}

// spansOverlap reports whether [a, a+al) and [b, b+bl) share interior points.
func spansOverlap(a, al, b, bl float64) bool {
	return a < b+bl && b < a+al
}

// probes shift a check by one unit so shapes that only touch an edge lying on
// a cell boundary are still found.
var probes = [...][2]float64{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// neighbours returns the objects sharing a cell with obj or touching it.
func neighbours(obj *resolv.Object) []*resolv.Object {
	seen := make(map[*resolv.Object]struct{})
	var out []*resolv.Object
	for _, p := range probes {
		check := obj.Check(p[0], p[1])
		if check == nil {
			continue
		}
		for _, o := range check.Objects {
			if _, ok := seen[o]; ok {
				continue
			}
			seen[o] = struct{}{}
			out = append(out, o)
		}
	}
	return out
}

// detect recomputes overlapping pairs and queues the differences.
func (e *Engine) detect() {
	current := make(map[pairKey]struct{}, len(e.contacts))
	for _, b := range e.sortedBodies() {
		if b.def.Kind == physics.Static {
			continue
		}
		rb := e.worldRect(b)
		for _, o := range neighbours(b.obj) {
			ob, ok := o.Data.(*body)
			if !ok || ob == b || ob.def.Owner == b.def.Owner {
				continue
			}
			if ob.parent == b || b.parent == ob || (b.parent != nil && ob.parent == b.parent) {
				continue
			}
			if !physics.Interacts(b.def.Category, b.mask, ob.def.Category, ob.mask) {
				continue
			}
			if !rb.Overlaps(e.worldRect(ob)) {
				continue
			}
			current[keyOf(b.handle, ob.handle)] = struct{}{}
		}
	}

	var started, stopped []pairKey
	for k := range current {
		if _, ok := e.contacts[k]; !ok {
			started = append(started, k)
		}
	}
	for k := range e.contacts {
		if _, ok := current[k]; !ok {
			stopped = append(stopped, k)
		}
	}
	sortKeys(stopped)
	sortKeys(started)
	for _, k := range stopped {
		e.emit(physics.Stopped, k)
	}
	for _, k := range started {
		e.emit(physics.Started, k)
	}
	e.contacts = current
}

func (e *Engine) emit(kind physics.EventKind, k pairKey) {
	a, b := e.bodies[k.a], e.bodies[k.b]
	if a == nil || b == nil {
		return
	}
	e.events = append(e.events, physics.Event{Kind: kind, A: a.def.Owner, B: b.def.Owner})
}

func (e *Engine) Drain() []physics.Event {
	out := e.events
	e.events = nil
	return out
}

func (e *Engine) sortedBodies() []*body {
	out := make([]*body, 0, len(e.bodies))
	for _, b := range e.bodies {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].handle < out[j].handle })
	return out
}

func sortKeys(keys []pairKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})
}
