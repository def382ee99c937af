package systems

import (
	"github.com/automoto/digrunner/components"
	cfg "github.com/automoto/digrunner/config"
	"github.com/automoto/digrunner/physics"
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/automoto/digrunner/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePlayerMovement turns the player's intent into a body velocity. It
// handles walking, swimming, ladder climbing and jumping.
func UpdatePlayerMovement(e *ecs.ECS) {
	eng := Engine(e)
	if eng == nil {
		return
	}
	tags.Player.Each(e.World, func(entry *donburi.Entry) {
		h := bodyHandle(entry)
		if h == 0 {
			return
		}
		if entry.HasComponent(components.Dying) {
			eng.SetVelocity(h, physics.Vec{})
			return
		}

		intent := components.Intent.Get(entry)
		mv := components.Movement.Get(entry)
		climber := components.Climber.Get(entry)
		inWater := components.Swimmer.Get(entry).InWater
		onGround := components.GroundDetection.Get(entry).OnGround

		v := eng.Velocity(h)
		v.X = intent.MoveX * mv.Speed
		if inWater {
			v.X *= cfg.Player.WaterPenalty
		}

		if climber.Intersecting.Empty() {
			climber.Climbing = false
		} else if intent.Vertical() {
			climber.Climbing = true
		}

		if inWater {
			v.Y = intent.MoveY * mv.Speed * cfg.Player.WaterPenalty
		}
		if climber.Climbing {
			v.Y = intent.MoveY * mv.Speed
		}

		if intent.Jump && !mv.Jumping && (onGround || climber.Climbing || inWater) {
			mv.Jumping = true
			v.Y = mv.JumpSpeed
			if components.Items.Get(entry).Contains(leveldata.ItemBoots) {
				v.Y *= cfg.Player.BootsJumpBonus
			}
			climber.Climbing = false
		}

		switch {
		case intent.MoveX > 0:
			mv.FacingX = 1
		case intent.MoveX < 0:
			mv.FacingX = -1
		}

		eng.SetVelocity(h, v)
		if climber.Climbing {
			eng.SetGravityScale(h, 0)
		} else {
			eng.SetGravityScale(h, 1)
		}
	})
}
