// Package profile holds named chunking and voice settings that calling
// applications expose as user preferences. Profiles are loaded from YAML or
// taken from built-in defaults; voice parameter bounds match what the
// synthesis backend accepts.
package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/speechsplit/chunker"
	"github.com/sevigo/speechsplit/schema"
)

// Synthesis backend request bounds.
const (
	MinSpeed     = 0.25
	MaxSpeed     = 4.0
	MinPitch     = -20.0
	MaxPitch     = 20.0
	MinVolumeDB  = -96.0
	MaxVolumeDB  = 16.0
	MaxTextChars = 5000
)

var ErrInvalidProfile = errors.New("invalid profile")

// Profile bundles one chunking policy with the voice parameters sent
// alongside each chunk.
type Profile struct {
	Strategy     schema.Strategy `yaml:"strategy"`
	MaxChunkSize int             `yaml:"max_chunk_size"`
	MinChunkSize int             `yaml:"min_chunk_size"`
	OverlapSize  int             `yaml:"overlap_size"`
	Voice        string          `yaml:"voice"`
	Speed        float64         `yaml:"speed"`
	Pitch        float64         `yaml:"pitch"`
	VolumeGainDB float64         `yaml:"volume_gain_db"`
}

// Config is the on-disk profile file shape.
type Config struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Defaults returns the built-in profiles: fine-grained Japanese, paragraph
// English, and a coarse paragraph mode for long-form material.
func Defaults() Config {
	return Config{
		Profiles: map[string]Profile{
			"japanese": {
				Strategy:     schema.StrategyJapanese,
				MaxChunkSize: 200,
				MinChunkSize: 50,
				OverlapSize:  20,
				Voice:        "ja-JP-Standard-A",
				Speed:        1.0,
			},
			"english": {
				Strategy:     schema.StrategyEnglish,
				MaxChunkSize: 1000,
				MinChunkSize: 50,
				Voice:        "en-US-Standard-C",
				Speed:        1.0,
			},
			"paragraph": {
				Strategy:     schema.StrategyUniversal,
				MaxChunkSize: 5000,
				MinChunkSize: 50,
				Voice:        "en-US-Standard-C",
				Speed:        1.0,
			},
		},
	}
}

// Load reads a profile file, fills unset fields from the matching default
// profile (or the universal one), and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse profile file %s: %w", path, err)
	}

	for name, p := range cfg.Profiles {
		cfg.Profiles[name] = p.withDefaults()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Get returns the named profile.
func (c Config) Get(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: no profile named %q", ErrInvalidProfile, name)
	}
	return p, nil
}

// Validate checks every profile.
func (c Config) Validate() error {
	for name, p := range c.Profiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
	}
	return nil
}

func (p Profile) withDefaults() Profile {
	if p.Strategy == "" {
		p.Strategy = schema.StrategyUniversal
	}
	if p.MaxChunkSize == 0 {
		p.MaxChunkSize = 1000
	}
	if p.MinChunkSize == 0 {
		p.MinChunkSize = 50
	}
	if p.Speed == 0 {
		p.Speed = 1.0
	}
	return p
}

// Validate rejects profiles outside the synthesis backend's accepted
// parameter ranges.
func (p Profile) Validate() error {
	if p.MaxChunkSize <= 0 || p.MaxChunkSize > MaxTextChars {
		return fmt.Errorf("%w: max chunk size %d outside (0, %d]", ErrInvalidProfile, p.MaxChunkSize, MaxTextChars)
	}
	if p.MinChunkSize < 0 || p.MinChunkSize >= p.MaxChunkSize {
		return fmt.Errorf("%w: min chunk size %d must be in [0, %d)", ErrInvalidProfile, p.MinChunkSize, p.MaxChunkSize)
	}
	if p.OverlapSize < 0 || p.OverlapSize >= p.MaxChunkSize {
		return fmt.Errorf("%w: overlap size %d must be in [0, %d)", ErrInvalidProfile, p.OverlapSize, p.MaxChunkSize)
	}
	if p.Speed < MinSpeed || p.Speed > MaxSpeed {
		return fmt.Errorf("%w: speed %.2f outside [%.2f, %.2f]", ErrInvalidProfile, p.Speed, MinSpeed, MaxSpeed)
	}
	if p.Pitch < MinPitch || p.Pitch > MaxPitch {
		return fmt.Errorf("%w: pitch %.1f outside [%.1f, %.1f]", ErrInvalidProfile, p.Pitch, MinPitch, MaxPitch)
	}
	if p.VolumeGainDB < MinVolumeDB || p.VolumeGainDB > MaxVolumeDB {
		return fmt.Errorf("%w: volume gain %.1f outside [%.1f, %.1f]", ErrInvalidProfile, p.VolumeGainDB, MinVolumeDB, MaxVolumeDB)
	}
	return nil
}

// Gender derives the SSML gender from the voice variant letter: A and B
// voices are female, C and D male. Unrecognized voice names are neutral.
func (p Profile) Gender() string {
	parts := strings.Split(p.Voice, "-")
	if len(parts) >= 4 {
		switch parts[len(parts)-1] {
		case "A", "B":
			return "FEMALE"
		case "C", "D":
			return "MALE"
		}
	}
	return "NEUTRAL"
}

// Chunker builds the chunker this profile describes.
func (p Profile) Chunker(logger *slog.Logger) (chunker.Chunker, error) {
	return chunker.ForStrategy(p.Strategy, logger,
		chunker.WithMaxChunkSize(p.MaxChunkSize),
		chunker.WithMinChunkSize(p.MinChunkSize),
		chunker.WithOverlapSize(p.OverlapSize),
	)
}
