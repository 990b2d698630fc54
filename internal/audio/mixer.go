package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// Mixer plays decoded wav cues through the system speaker.
//
// A cue whose file is missing or corrupt is logged once at load and
// afterwards plays as silence.
type Mixer struct {
	mu          sync.Mutex
	buffers     map[string]*beep.Buffer
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         *zap.Logger
}

// NewMixer decodes <dir>/<cue>.wav for every cue in Cues.
func NewMixer(dir string, log *zap.Logger) *Mixer {
	m := &Mixer{
		buffers: make(map[string]*beep.Buffer),
		mixer:   &beep.Mixer{},
		volume:  1,
		log:     log,
	}
	for _, name := range Cues {
		path := filepath.Join(dir, name+".wav")
		buf, err := loadBuffer(path)
		if err != nil {
			log.Error("sound unavailable", zap.String("cue", name), zap.Error(err))
			continue
		}
		m.buffers[name] = buf
	}
	return m
}

func loadBuffer(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, streamer)
		format.SampleRate = sampleRate
	}
	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}

// Initialize opens the speaker. Until it succeeds Play is silent.
func (m *Mixer) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Loaded reports whether the cue decoded successfully.
func (m *Mixer) Loaded(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.buffers[name]
	return ok
}

// SetVolume sets the linear volume in [0, 1] applied to new cues.
func (m *Mixer) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = max(0, min(1, v))
}

func (m *Mixer) Play(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf, ok := m.buffers[name]
	if !ok || !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Add(volumeStreamer(buf.Streamer(0, buf.Len()), m.volume))
	speaker.Unlock()
}

// volumeStreamer maps a linear volume onto beep's logarithmic scale.
func volumeStreamer(s beep.Streamer, v float64) *effects.Volume {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(max(v, 1e-3)),
		Silent:   v <= 0,
	}
}

// Close stops every playing cue.
func (m *Mixer) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}
