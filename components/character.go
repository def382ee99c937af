package components

import (
	"github.com/automoto/digrunner/physics"
	"github.com/yohamta/donburi"
)

type LifeData struct {
	Current int
	Max     int
}

func NewLife(max int) LifeData {
	return LifeData{Current: max, Max: max}
}

// Hit removes damage from the current life without going below zero.
func (l *LifeData) Hit(damage int) {
	if damage <= 0 {
		return
	}
	l.Current -= damage
	if l.Current < 0 {
		l.Current = 0
	}
}

func (l *LifeData) IsDead() bool {
	return l.Current <= 0
}

var Life = donburi.NewComponentType[LifeData]()

type DamageData struct {
	Amount int
}

var Damage = donburi.NewComponentType[DamageData]()

type MovementData struct {
	Speed     float64
	JumpSpeed float64
	Jumping   bool
	FacingX   float64
}

var Movement = donburi.NewComponentType[MovementData]()

// DyingData delays the death notification so the death can play out.
type DyingData struct {
	Timer Timer
}

var Dying = donburi.NewComponentType[DyingData]()

// PatrolData walks a kinematic body back and forth between Points.
type PatrolData struct {
	Points  []physics.Vec
	Index   int
	Forward bool
}

var Patrol = donburi.NewComponentType[PatrolData]()
