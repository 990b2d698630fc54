// Package settings reads and writes the player's persisted preferences.
//
// The file is plain key=value lines:
//
//	volume=0.8
//	difficulty=2
//	show_fps=0
//
// Blank lines, '#' comments, unknown keys and malformed lines are skipped.
package settings

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	DefaultVolume = 0.8
	VolumeStep    = 0.1
)

type Settings struct {
	Volume     float64
	Difficulty Difficulty
	ShowFPS    bool
}

func Default() Settings {
	return Settings{
		Volume:     DefaultVolume,
		Difficulty: Normal,
	}
}

// Clamp forces Volume into [0, 1]. NaN resets to the default.
func (s *Settings) Clamp() {
	switch {
	case math.IsNaN(s.Volume):
		s.Volume = DefaultVolume
	case s.Volume < 0:
		s.Volume = 0
	case s.Volume > 1:
		s.Volume = 1
	}
}

// AdjustVolume moves the volume by delta and clamps it.
func (s *Settings) AdjustVolume(delta float64) {
	// Round to one decimal so repeated steps don't drift.
	s.Volume = math.Round((s.Volume+delta)*10) / 10
	s.Clamp()
}

// Parse never fails; values it cannot read keep their defaults.
func Parse(input string) Settings {
	s := Default()
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "volume":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				s.Volume = v
			}
		case "difficulty":
			if v, err := strconv.ParseUint(value, 10, 8); err == nil {
				s.Difficulty = FromInt(int(v))
			}
		case "show_fps":
			switch value {
			case "1", "true", "True", "TRUE":
				s.ShowFPS = true
			default:
				s.ShowFPS = false
			}
		}
	}
	s.Clamp()
	return s
}

func (s Settings) String() string {
	fps := 0
	if s.ShowFPS {
		fps = 1
	}
	return fmt.Sprintf("volume=%s\ndifficulty=%d\nshow_fps=%d\n",
		strconv.FormatFloat(s.Volume, 'f', -1, 64), s.Difficulty.Int(), fps)
}

// Load reads and parses the settings file at path.
func Load(path string) (Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read settings: %w", err)
	}
	return Parse(string(raw)), nil
}

// Save writes s to path, replacing any existing file.
func Save(path string, s Settings) error {
	if err := os.WriteFile(path, []byte(s.String()), 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
