package config

import "time"

// Physics backends selectable with -backend.
const (
	BackendResolv   = "resolv"
	BackendChipmunk = "chipmunk"
)

// LevelConfig contains level file and collider configuration values
type LevelConfig struct {
	WorldPath      string  `yaml:"world_path"`      // .world manifest or directory of .tmx files, relative to the asset FS
	CollisionLayer int     `yaml:"collision_layer"` // Index of the tile layer holding kind codes
	WallFriction   float64 `yaml:"wall_friction"`   // Friction of merged wall colliders
	Watch          bool    `yaml:"watch"`           // Restart the level when a level file changes on disk
	WatchDir       string  `yaml:"watch_dir"`       // Directory watched when Watch is set
}

// PhysicsConfig contains physics-related configuration values
type PhysicsConfig struct {
	Backend  string  `yaml:"backend"`
	Gravity  float64 `yaml:"gravity"`   // Pixels per second squared, y up
	TickRate int     `yaml:"tick_rate"` // Fixed updates per second
	CellSize int     `yaml:"cell_size"` // Broadphase cell size of the resolv backend
	Margin   float64 `yaml:"margin"`    // Extra space around the world bounds
}

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	// Movement
	Speed          float64 `yaml:"speed"`
	JumpSpeed      float64 `yaml:"jump_speed"`
	WaterPenalty   float64 `yaml:"water_penalty"`    // Speed multiplier while submerged
	BootsJumpBonus float64 `yaml:"boots_jump_bonus"` // Jump multiplier while carrying boots

	// Combat
	Life         int           `yaml:"life"`
	Invulnerable time.Duration `yaml:"invulnerable"`
	DeathDelay   time.Duration `yaml:"death_delay"`

	// Dimensions
	CollisionWidth  float64 `yaml:"collision_width"`
	CollisionHeight float64 `yaml:"collision_height"`
	SensorHeight    float64 `yaml:"sensor_height"`
	Friction        float64 `yaml:"friction"`
}

// EnemyConfig contains enemy configuration
type EnemyConfig struct {
	Speed           float64 `yaml:"speed"`
	Life            int     `yaml:"life"`
	Damage          int     `yaml:"damage"`
	StompDamage     int     `yaml:"stomp_damage"`
	CollisionWidth  float64 `yaml:"collision_width"`
	CollisionHeight float64 `yaml:"collision_height"`
}

// StreamingConfig contains level streaming configuration
type StreamingConfig struct {
	FadeDuration time.Duration `yaml:"fade_duration"`
	PopupTimeout time.Duration `yaml:"popup_timeout"` // 0 keeps popups until dismissed
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Config holds general window configuration
type Config struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
	Font   string  `yaml:"font"` // Optional TrueType file for overlay text
	Debug  bool    `yaml:"debug"`
}

// Global configuration instances
var C *Config
var Level LevelConfig
var Physics PhysicsConfig
var Player PlayerConfig
var Enemy EnemyConfig
var Streaming StreamingConfig
var Logging LoggingConfig

func init() {
	Reset()
}

// Reset restores every configuration instance to its default.
func Reset() {
	C = &Config{
		Width:  640,
		Height: 360,
		Scale:  2,
		Debug:  true,
	}

	Level = LevelConfig{
		WorldPath:      "levels/digrunner.world",
		CollisionLayer: 1,
		WallFriction:   1.0,
		Watch:          false,
		WatchDir:       "assets/levels",
	}

	Physics = PhysicsConfig{
		Backend:  BackendResolv,
		Gravity:  -600,
		TickRate: 60,
		CellSize: 16,
		Margin:   64,
	}

	Player = PlayerConfig{
		Speed:          120,
		JumpSpeed:      180,
		WaterPenalty:   0.4,
		BootsJumpBonus: 1.55,

		Life:         5,
		Invulnerable: 2 * time.Second,
		DeathDelay:   750 * time.Millisecond,

		CollisionWidth:  14,
		CollisionHeight: 16,
		SensorHeight:    2,
		Friction:        0,
	}

	Enemy = EnemyConfig{
		Speed:           40,
		Life:            1,
		Damage:          2,
		StompDamage:     1,
		CollisionWidth:  14,
		CollisionHeight: 14,
	}

	Streaming = StreamingConfig{
		FadeDuration: 2 * time.Second,
		PopupTimeout: 0,
	}

	Logging = LoggingConfig{
		Level:   "info",
		LogFile: "",
	}
}

// TickDelta returns the fixed timestep in seconds.
func TickDelta() float64 {
	if Physics.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(Physics.TickRate)
}
