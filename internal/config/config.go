// Package config loads the flat filter configuration.
//
// The same JSON keys are accepted from a config file and from the settings
// store. Missing keys keep their defaults; unknown keys are ignored and
// reported. Values are not range-checked.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ayusman/airmouse/internal/click"
	"github.com/ayusman/airmouse/internal/cursor"
	"github.com/ayusman/airmouse/internal/gesture"
)

// MaxFileSize caps the size of a config file.
const MaxFileSize = 1 << 20

// Config is the flat configuration surface.
type Config struct {
	Sensitivity      float64 `json:"sensitivity"`
	Accel            float64 `json:"accel"`
	Deadzone         float64 `json:"deadzone"`
	PinchThreshold   float64 `json:"pinch_threshold"`
	RightPinchExtra  float64 `json:"right_pinch_extra"`
	ExtendAngle      float64 `json:"extend_angle"`
	HysteresisFrames int     `json:"hysteresis_frames"`
	ClickThreshold   float64 `json:"click_threshold"` // seconds
	Smooth           float64 `json:"smooth"`
	UseKalman        bool    `json:"use_kalman"`

	// Unknown lists ignored keys in sorted order.
	Unknown []string `json:"-"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		Sensitivity:      cursor.DefaultSensitivity,
		Accel:            cursor.DefaultAccel,
		Deadzone:         cursor.DefaultDeadzone,
		PinchThreshold:   gesture.DefaultPinchThreshold,
		RightPinchExtra:  gesture.DefaultMiddlePinchThreshold,
		ExtendAngle:      gesture.DefaultExtendAngle,
		HysteresisFrames: gesture.DefaultHysteresisFrames,
		ClickThreshold:   click.DefaultInterval.Seconds(),
		Smooth:           cursor.DefaultSmooth,
		UseKalman:        false,
	}
}

// Keys returns the recognized configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var knownKeys = map[string]bool{
	"sensitivity":       true,
	"accel":             true,
	"deadzone":          true,
	"pinch_threshold":   true,
	"right_pinch_extra": true,
	"extend_angle":      true,
	"hysteresis_frames": true,
	"click_threshold":   true,
	"smooth":            true,
	"use_kalman":        true,
}

// Load reads a JSON config file. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Config{}, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return Config{}, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a JSON object over the defaults.
func Parse(data []byte) (Config, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return decode(raw)
}

// FromSettings builds a Config from stored key/value pairs. Each value must
// be a JSON scalar such as 3.5, 4 or true.
func FromSettings(settings map[string]string) (Config, error) {
	raw := make(map[string]json.RawMessage, len(settings))
	for k, v := range settings {
		v := bytes.TrimSpace([]byte(v))
		if !json.Valid(v) {
			return Config{}, fmt.Errorf("setting %q: invalid value %q", k, v)
		}
		raw[k] = v
	}
	return decode(raw)
}

func decode(raw map[string]json.RawMessage) (Config, error) {
	cfg := Default()

	known := make(map[string]json.RawMessage, len(raw))
	var unknown []string
	for k, v := range raw {
		if knownKeys[k] {
			known[k] = v
		} else {
			unknown = append(unknown, k)
		}
	}

	data, err := json.Marshal(known)
	if err != nil {
		return Config{}, fmt.Errorf("failed to re-encode config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config value: %w", err)
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		cfg.Unknown = unknown
		log.Printf("config: ignoring unknown keys %v", unknown)
	}

	return cfg, nil
}

// Settings flattens the config into store key/value pairs.
func (c Config) Settings() (map[string]string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = string(v)
	}
	return out, nil
}

// EvaluatorConfig returns the finger-state thresholds.
func (c Config) EvaluatorConfig() gesture.EvaluatorConfig {
	return gesture.EvaluatorConfig{
		ExtendAngle:          c.ExtendAngle,
		PinchThreshold:       c.PinchThreshold,
		MiddlePinchThreshold: c.RightPinchExtra,
	}
}

// CursorParams returns the pipeline tuning. Constants without a config key
// keep their defaults.
func (c Config) CursorParams() cursor.Params {
	p := cursor.DefaultParams()
	p.Sensitivity = c.Sensitivity
	p.Accel = c.Accel
	p.Deadzone = c.Deadzone
	p.Smooth = c.Smooth
	p.UseKalman = c.UseKalman
	return p
}

// ClickInterval returns the click debounce window.
func (c Config) ClickInterval() time.Duration {
	return time.Duration(c.ClickThreshold * float64(time.Second))
}
