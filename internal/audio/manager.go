package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player plays sound effects.
type Player interface {
	Play(Sound)
}

// Mute is a Player that plays nothing.
type Mute struct{}

// Play does nothing.
func (Mute) Play(Sound) {}

// SoundManager plays effects on the local speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	logger      *log.Logger
}

// NewSoundManager creates a sound manager. Nothing is heard until Init
// succeeds.
func NewSoundManager(volume float64, logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.Default()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Init opens the speaker. On failure the manager stays silent and the error
// is returned for the caller to report.
func (m *SoundManager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		m.logger.Warn("audio unavailable, playing silently", "err", err)
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Play queues a sound effect. It is a no-op before Init.
func (m *SoundManager) Play(s Sound) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	st := Effect(s, sampleRate, m.volume)
	if st == nil {
		return
	}
	speaker.Lock()
	m.mixer.Add(st)
	speaker.Unlock()
}

// Close silences everything still playing.
func (m *SoundManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

var (
	_ Player = Mute{}
	_ Player = (*SoundManager)(nil)
)
