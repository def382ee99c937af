package tags

import "github.com/yohamta/donburi"

var (
	Player         = donburi.NewTag().SetName("Player")
	Enemy          = donburi.NewTag().SetName("Enemy")
	Wall           = donburi.NewTag().SetName("Wall")
	Climbable      = donburi.NewTag().SetName("Climbable")
	Chest          = donburi.NewTag().SetName("Chest")
	Door           = donburi.NewTag().SetName("Door")
	End            = donburi.NewTag().SetName("End")
	Fader          = donburi.NewTag().SetName("Fader")
	DespawnPending = donburi.NewTag().SetName("DespawnPending")
)
