package bridge

import (
	"github.com/tomz197/rockstorm/internal/settings"
)

// SettingsResult is what the loader hands back: parsed settings, or the
// reason they could not be read.
type SettingsResult struct {
	Settings settings.Settings
	Err      error
}

// SettingsLoader runs one settings load in the background.
type SettingsLoader struct {
	ch    chan SettingsResult
	state State
}

// LoadSettings starts reading the settings file at path.
func LoadSettings(path string) *SettingsLoader {
	return NewSettingsLoader(func() (settings.Settings, error) {
		return settings.Load(path)
	})
}

// NewSettingsLoader starts load on its own goroutine.
func NewSettingsLoader(load func() (settings.Settings, error)) *SettingsLoader {
	l := &SettingsLoader{
		ch:    make(chan SettingsResult, 1),
		state: Pending,
	}
	go func() {
		s, err := load()
		l.ch <- SettingsResult{Settings: s, Err: err}
	}()
	return l
}

// Poll reports the result once. Later calls return false.
func (l *SettingsLoader) Poll() (SettingsResult, bool) {
	if l.state != Pending {
		return SettingsResult{}, false
	}
	select {
	case res, ok := <-l.ch:
		if !ok {
			return SettingsResult{}, false
		}
		l.state = Idle
		return res, true
	default:
		return SettingsResult{}, false
	}
}

func (l *SettingsLoader) State() State {
	return l.state
}
