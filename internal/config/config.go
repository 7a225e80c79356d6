// Package config resolves the site settings from defaults, an optional YAML
// file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"

	"github.com/Zachkp/diary/internal/frames"
	"github.com/Zachkp/diary/internal/render"
)

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Port           string `yaml:"port"`
	Mode           string `yaml:"mode"`
	LogLevel       string `yaml:"log_level"`
	SiteURL        string `yaml:"site_url"`
	DataDir        string `yaml:"data_dir"`
	FramesDir      string `yaml:"frames_dir"`
	TemplatesGlob  string `yaml:"templates_glob"`
	StaticDir      string `yaml:"static_dir"`
	TransitionMS   int    `yaml:"transition_ms"`
	PreloadWorkers int    `yaml:"preload_workers"`
	AvatarWidth    int    `yaml:"avatar_width"`
	AvatarHeight   int    `yaml:"avatar_height"`
	IPSalt         string `yaml:"ip_salt"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Port:           "8080",
		Mode:           "debug",
		LogLevel:       "info",
		SiteURL:        "http://localhost:8080",
		DataDir:        "data",
		FramesDir:      "public",
		TemplatesGlob:  "templates/*",
		StaticDir:      "static",
		TransitionMS:   950,
		PreloadWorkers: 8,
		AvatarWidth:    320,
		AvatarHeight:   320,
		IPSalt:         "diary",
	}
}

// Transition is the avatar transition duration.
func (c Config) Transition() time.Duration {
	return time.Duration(c.TransitionMS) * time.Millisecond
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

var digits = regexp.MustCompile(`^[0-9]+$`)

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, validation.Match(digits)),
		validation.Field(&c.Mode, validation.Required, validation.In("debug", "release", "test")),
		validation.Field(&c.SiteURL, validation.Required, is.URL),
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.FramesDir, validation.Required),
		validation.Field(&c.TemplatesGlob, validation.Required),
		validation.Field(&c.TransitionMS, validation.Required, validation.Min(1)),
		validation.Field(&c.PreloadWorkers, validation.Required, validation.Min(1), validation.Max(int(frames.Count))),
		validation.Field(&c.AvatarWidth, validation.Required, validation.Min(1), validation.Max(render.MaxSide)),
		validation.Field(&c.AvatarHeight, validation.Required, validation.Min(1), validation.Max(render.MaxSide)),
	)
}

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// Load builds the configuration. When SITE_CONFIG names a YAML file its
// values replace the defaults; environment variables win over both.
func Load(lookup LookupFunc) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg := Default()

	if path, ok := lookup("SITE_CONFIG"); ok && path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read site config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse site config %s: %w", path, err)
		}
	}

	strs := map[string]*string{
		"PORT":           &cfg.Port,
		"GIN_MODE":       &cfg.Mode,
		"LOG_LEVEL":      &cfg.LogLevel,
		"SITE_URL":       &cfg.SiteURL,
		"DATA_DIR":       &cfg.DataDir,
		"FRAMES_DIR":     &cfg.FramesDir,
		"TEMPLATES_GLOB": &cfg.TemplatesGlob,
		"STATIC_DIR":     &cfg.StaticDir,
		"IP_SALT":        &cfg.IPSalt,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"TRANSITION_MS":   &cfg.TransitionMS,
		"PRELOAD_WORKERS": &cfg.PreloadWorkers,
		"AVATAR_WIDTH":    &cfg.AvatarWidth,
		"AVATAR_HEIGHT":   &cfg.AvatarHeight,
	}
	for key, dst := range ints {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
		}
		*dst = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}
