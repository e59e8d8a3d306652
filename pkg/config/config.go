// Package config loads the intersection setup of the running map: the stop
// line positions and the detector thresholds, one YAML file read once at
// startup and immutable afterwards.
package config

import (
	"math"
	"os"

	"lintang/lightwatch/pkg/datastructure"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// StopLinePositions is one [x, y] (optionally [x, y, yaw]) entry per
	// intersection of the loaded map.
	StopLinePositions [][]float64 `yaml:"stop_line_positions" validate:"required,min=1,dive,min=2,max=3"`

	MinLightDistance    float64 `yaml:"min_light_distance" validate:"gte=0"`
	MaxLightDistance    float64 `yaml:"max_light_distance" validate:"gtfield=MinLightDistance"`
	HeadingConeDegrees  float64 `yaml:"heading_cone_degrees" validate:"gt=0,lte=90"`
	StateCountThreshold int     `yaml:"state_count_threshold" validate:"gte=1"`
}

func Default() Config {
	return Config{
		MinLightDistance:    20,
		MaxLightDistance:    300,
		HeadingConeDegrees:  20,
		StateCountThreshold: 3,
	}
}

// Load reads and validates the YAML config at path. Omitted thresholds keep
// their defaults; the stop line list is mandatory.
func Load(path string) (Config, error) {
	cfg := Default()

	bb, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(bb, &cfg); err != nil {
		return cfg, err
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) StopLines() []datastructure.StopLine {
	lines := make([]datastructure.StopLine, len(c.StopLinePositions))
	for i, p := range c.StopLinePositions {
		lines[i] = datastructure.StopLine{X: p[0], Y: p[1]}
		if len(p) > 2 {
			lines[i].Yaw = p[2]
		}
	}
	return lines
}

// ConeHalfAngleRad converts the configured cone width to radians.
func (c Config) ConeHalfAngleRad() float64 {
	return c.HeadingConeDegrees * math.Pi / 180
}
