// Package audio synthesizes the game's sound effects with beep.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Sound identifies a sound effect.
type Sound int

const (
	SoundSlice Sound = iota
	SoundExplosion
	SoundCoin
	SoundGameOver
)

func (s Sound) String() string {
	switch s {
	case SoundSlice:
		return "slice"
	case SoundExplosion:
		return "explosion"
	case SoundCoin:
		return "coin"
	case SoundGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq     float64
	sweep    float64 // frequency change per second
	phase    float64
	duration int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator returns a finite streamer of the given wave. sweep bends the
// frequency linearly in Hz per second.
func NewOscillator(freq, sweep float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(wave))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.rate)
		freq := max(o.freq+o.sweep*t, 0)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a streamer with a linear attack and release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope applies a linear attack and release over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; e.release > 0 && left < e.release {
			vol = min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// gain wraps s in a volume effect. A non-positive volume silences it.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq, sweep float64, d, attack, release time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, sweep, d, wave, rate), d, attack, release, rate)
}

// sliceSound is a short falling noise swish.
func sliceSound(rate beep.SampleRate) beep.Streamer {
	d := 120 * time.Millisecond
	return beep.Mix(
		gain(tone(0, 0, d, 5*time.Millisecond, 90*time.Millisecond, WaveNoise, rate), 0.35),
		gain(tone(1400, -6000, d, 5*time.Millisecond, 90*time.Millisecond, WaveSine, rate), 0.25),
	)
}

// explosionSound is a low rumble under a noise burst.
func explosionSound(rate beep.SampleRate) beep.Streamer {
	d := 450 * time.Millisecond
	return beep.Mix(
		gain(tone(0, 0, d, 2*time.Millisecond, 400*time.Millisecond, WaveNoise, rate), 0.6),
		gain(tone(90, -120, d, 2*time.Millisecond, 400*time.Millisecond, WaveSaw, rate), 0.4),
	)
}

// coinSound is a two-note chime.
func coinSound(rate beep.SampleRate) beep.Streamer {
	return gain(beep.Seq(
		tone(987.77, 0, 80*time.Millisecond, 2*time.Millisecond, 40*time.Millisecond, WaveSquare, rate),
		tone(1318.51, 0, 260*time.Millisecond, 2*time.Millisecond, 220*time.Millisecond, WaveSquare, rate),
	), 0.3)
}

// gameOverSound is a descending three-note phrase.
func gameOverSound(rate beep.SampleRate) beep.Streamer {
	note := func(freq float64) beep.Streamer {
		return tone(freq, 0, 180*time.Millisecond, 5*time.Millisecond, 120*time.Millisecond, WaveSaw, rate)
	}
	return gain(beep.Seq(note(392), note(311.13), note(261.63)), 0.3)
}

// Effect returns a fresh streamer for s at the given volume, or nil for an
// unknown sound.
func Effect(s Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	var st beep.Streamer
	switch s {
	case SoundSlice:
		st = sliceSound(rate)
	case SoundExplosion:
		st = explosionSound(rate)
	case SoundCoin:
		st = coinSound(rate)
	case SoundGameOver:
		st = gameOverSound(rate)
	default:
		return nil
	}
	return gain(st, volume)
}
