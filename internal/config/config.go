package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/tomz197/bounce/internal/physics"
)

// ErrOutOfRange is wrapped by Load when a value parses but is not usable.
var ErrOutOfRange = errors.New("value out of range")

// DotEnvFile is read from the working directory by Load when present.
const DotEnvFile = ".env"

// Arena and balls, matching the classic two-ball demo.
const (
	DefaultWidth  = 600
	DefaultHeight = 400
	DefaultRadius = 10
	DefaultOffset = 10 // Vertical offset between the two balls
	DefaultSpeed  = 1  // Initial horizontal speed, units per tick
)

// Timing
const (
	DefaultFPS = 60
)

// Hosts
const (
	DefaultSSHHost     = "::"
	DefaultSSHPort     = "2222"
	DefaultHostKeyPath = ".ssh/bounce_host_key"
	DefaultWebHost     = "0.0.0.0"
	DefaultWebPort     = "8080"
	DefaultWebMaxTicks = 100000
)

// Config holds every tunable setting. Use Load to read it from the environment.
type Config struct {
	Width    float64
	Height   float64
	Radius   float64
	Offset   float64
	Speed    float64
	FPS      int
	Seed     uint64 // 0 picks a time-based seed
	Tangent  physics.TangentMode
	Separate bool // push overlapping bodies apart after resolving
	Pause    bool // wait for Enter after each collision
	LogLevel log.Level

	SSHHost     string
	SSHPort     string
	HostKeyPath string

	WebHost        string
	WebPort        string
	SSHDisplayHost string
	WebMaxTicks    int
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Radius:   DefaultRadius,
		Offset:   DefaultOffset,
		Speed:    DefaultSpeed,
		FPS:      DefaultFPS,
		Tangent:  physics.TangentOwn,
		Separate: true,
		Pause:    true,
		LogLevel: log.InfoLevel,

		SSHHost:     DefaultSSHHost,
		SSHPort:     DefaultSSHPort,
		HostKeyPath: DefaultHostKeyPath,

		WebHost:        DefaultWebHost,
		WebPort:        DefaultWebPort,
		SSHDisplayHost: "localhost",
		WebMaxTicks:    DefaultWebMaxTicks,
	}
}

// TickInterval is the wall-clock time between simulation steps.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// Load reads the configuration from the environment, after merging in
// DotEnvFile if it exists, on top of Default.
func Load() (Config, error) {
	c := Default()

	// Load .env file if it exists. Variables already set win.
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, fmt.Errorf("%s: %w", DotEnvFile, err)
	}

	var err error

	if c.Width, err = getFloat("BOUNCE_WIDTH", c.Width); err != nil {
		return c, err
	}
	if c.Height, err = getFloat("BOUNCE_HEIGHT", c.Height); err != nil {
		return c, err
	}
	if c.Radius, err = getFloat("BOUNCE_RADIUS", c.Radius); err != nil {
		return c, err
	}
	if c.Offset, err = getFloat("BOUNCE_OFFSET", c.Offset); err != nil {
		return c, err
	}
	if c.Speed, err = getFloat("BOUNCE_SPEED", c.Speed); err != nil {
		return c, err
	}
	if c.FPS, err = getInt("BOUNCE_FPS", c.FPS); err != nil {
		return c, err
	}
	if c.Seed, err = getUint("BOUNCE_SEED", c.Seed); err != nil {
		return c, err
	}
	if c.Tangent, err = physics.ParseTangentMode(GetEnv("BOUNCE_TANGENT", c.Tangent.String())); err != nil {
		return c, fmt.Errorf("BOUNCE_TANGENT: %w", err)
	}
	if c.Separate, err = getBool("BOUNCE_SEPARATE", c.Separate); err != nil {
		return c, err
	}
	if c.Pause, err = getBool("BOUNCE_PAUSE", c.Pause); err != nil {
		return c, err
	}
	if raw := strings.TrimSpace(GetEnv("LOG_LEVEL", "")); raw != "" {
		if c.LogLevel, err = log.ParseLevel(raw); err != nil {
			return c, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	c.SSHHost = GetEnv("SSH_HOST", c.SSHHost)
	c.SSHPort = GetEnv("SSH_PORT", c.SSHPort)
	c.HostKeyPath = GetEnv("SSH_HOST_KEY", c.HostKeyPath)
	c.WebHost = GetEnv("WEB_HOST", c.WebHost)
	c.WebPort = GetEnv("WEB_PORT", c.WebPort)
	c.SSHDisplayHost = GetEnv("SSH_DISPLAY_HOST", c.SSHDisplayHost)
	if c.WebMaxTicks, err = getInt("WEB_MAX_TICKS", c.WebMaxTicks); err != nil {
		return c, err
	}

	return c, c.Validate()
}

// Validate checks that sizes and speeds are finite, that the arena can hold
// both balls and that rates are positive.
func (c Config) Validate() error {
	for _, f := range []struct {
		key string
		v   float64
	}{
		{"BOUNCE_WIDTH", c.Width},
		{"BOUNCE_HEIGHT", c.Height},
		{"BOUNCE_RADIUS", c.Radius},
		{"BOUNCE_SPEED", c.Speed},
		{"BOUNCE_OFFSET", c.Offset},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s=%v: %w", f.key, f.v, ErrOutOfRange)
		}
	}

	switch {
	case !(c.Radius > 0):
		return fmt.Errorf("BOUNCE_RADIUS=%v: %w", c.Radius, ErrOutOfRange)
	case c.Width < 2*c.Radius:
		return fmt.Errorf("BOUNCE_WIDTH=%v smaller than a ball: %w", c.Width, ErrOutOfRange)
	case c.Height < 2*c.Radius:
		return fmt.Errorf("BOUNCE_HEIGHT=%v smaller than a ball: %w", c.Height, ErrOutOfRange)
	case c.FPS <= 0:
		return fmt.Errorf("BOUNCE_FPS=%d: %w", c.FPS, ErrOutOfRange)
	case c.WebMaxTicks <= 0:
		return fmt.Errorf("WEB_MAX_TICKS=%d: %w", c.WebMaxTicks, ErrOutOfRange)
	}
	return nil
}
