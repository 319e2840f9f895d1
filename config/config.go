// Package config loads host settings for the echo simulator from an
// optional YAML or JSON file and ECHOSIM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gogpu/echosim"
	"github.com/gogpu/echosim/catalog"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, for example
// ECHOSIM_VIEW_DEPTHCM=8.
const EnvPrefix = "ECHOSIM"

// ErrInvalid is wrapped by Load when the merged settings are unusable.
var ErrInvalid = errors.New("config: invalid settings")

// Surface is a pixel size.
type Surface struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// View is the initial imaging state.
type View struct {
	Name          string  `mapstructure:"name"`
	DepthCm       float64 `mapstructure:"depthCm"`
	Gain          float64 `mapstructure:"gain"`
	AngleDeg      float64 `mapstructure:"angleDeg"`
	ColorDoppler  bool    `mapstructure:"colorDoppler"`
	Frozen        bool    `mapstructure:"frozen"`
	MeasureMode   bool    `mapstructure:"measureMode"`
	MLineFraction float64 `mapstructure:"mLineFraction"`
}

// State converts v into a clamped ViewState.
func (v View) State() echosim.ViewState {
	return echosim.ViewState{
		View:          catalog.View(strings.ToUpper(v.Name)),
		DepthCm:       v.DepthCm,
		Gain:          v.Gain,
		AngleDeg:      v.AngleDeg,
		ColorDoppler:  v.ColorDoppler,
		Frozen:        v.Frozen,
		MeasureMode:   v.MeasureMode,
		MLineFraction: v.MLineFraction,
	}.Clamped()
}

// Click is a scripted caliper click in sector surface pixels.
type Click struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
}

// Config is the merged host configuration.
type Config struct {
	LogLevel   string  `mapstructure:"logLevel"`
	OutputDir  string  `mapstructure:"outputDir"`
	Case       string  `mapstructure:"case"`
	FPS        int     `mapstructure:"fps"`
	Frames     int     `mapstructure:"frames"`
	Sector     Surface `mapstructure:"sector"`
	MMode      Surface `mapstructure:"mmode"`
	View       View    `mapstructure:"view"`
	Clicks     []Click `mapstructure:"clicks"`
	ValveTrace bool    `mapstructure:"valveTrace"`
}

func setDefaults(v *viper.Viper) {
	d := echosim.DefaultViewState()

	v.SetDefault("logLevel", "info")
	v.SetDefault("outputDir", ".")
	v.SetDefault("case", catalog.Builtin().Default().ID)
	v.SetDefault("fps", 60)
	v.SetDefault("frames", 120)
	v.SetDefault("valveTrace", false)

	v.SetDefault("sector.width", 800)
	v.SetDefault("sector.height", 520)
	v.SetDefault("mmode.width", 800)
	v.SetDefault("mmode.height", 220)

	v.SetDefault("view.name", string(d.View))
	v.SetDefault("view.depthCm", d.DepthCm)
	v.SetDefault("view.gain", d.Gain)
	v.SetDefault("view.angleDeg", d.AngleDeg)
	v.SetDefault("view.colorDoppler", true)
	v.SetDefault("view.frozen", d.Frozen)
	v.SetDefault("view.measureMode", d.MeasureMode)
	v.SetDefault("view.mLineFraction", d.MLineFraction)
}

// Load merges defaults, the file at path (skipped when empty) and the
// environment. The file type follows its extension.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks settings that cannot be clamped.
func (c Config) Validate() error {
	var errs []error
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.FPS))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must not be negative, got %d", c.Frames))
	}
	for name, s := range map[string]Surface{"sector": c.Sector, "mmode": c.MMode} {
		if s.Width < 0 || s.Height < 0 {
			errs = append(errs, fmt.Errorf("%s size %dx%d is negative", name, s.Width, s.Height))
		}
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Interval is the tick period for FPS.
func (c Config) Interval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FPS)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
