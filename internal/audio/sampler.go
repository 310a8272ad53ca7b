package audio

import (
	"fmt"
	"math"
	"os"
	"path"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"

	"git.lost.host/meutraa/rain/internal/game"
)

// voice is an endless sine oscillator. Length is bounded outside, either
// by beep.Take for one-shot notes or by a beep.Ctrl for sustains.
type voice struct {
	freq  float64
	phase float64
	rate  beep.SampleRate
}

func (v *voice) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		val := math.Sin(2 * math.Pi * v.phase)
		samples[i][0] = val
		samples[i][1] = val
		v.phase += v.freq / float64(v.rate)
		v.phase = v.phase - math.Floor(v.phase)
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

// Sampler owns the speaker: the optional backing track plus a voice per
// triggered note. Sustain voices stay registered until released.
type Sampler struct {
	sr      beep.SampleRate
	backing beep.StreamSeekCloser
	active  map[int64]*beep.Ctrl
}

func NewSampler() *Sampler {
	return &Sampler{
		sr:     beep.SampleRate(44100),
		active: map[int64]*beep.Ctrl{},
	}
}

// Init opens the speaker and, if audioFile is not empty, decodes it and
// schedules playback after delay.
func (s *Sampler) Init(audioFile string, delay time.Duration) error {
	if audioFile != "" {
		f, err := os.Open(audioFile)
		if nil != err {
			return fmt.Errorf("unable to open audio file: %w", err)
		}
		var format beep.Format
		if path.Ext(audioFile) == ".ogg" {
			s.backing, format, err = vorbis.Decode(f)
		} else {
			s.backing, format, err = mp3.Decode(f)
		}
		if nil != err {
			f.Close()
			return fmt.Errorf("unable to decode audio file: %w", err)
		}
		s.sr = format.SampleRate
	}

	if err := speaker.Init(s.sr, s.sr.N(time.Second/60)); nil != err {
		return err
	}

	if nil != s.backing {
		backing := s.backing
		go func() {
			time.Sleep(delay)
			speaker.Play(backing)
		}()
	}
	return nil
}

func frequency(pitch int) float64 {
	return 440 * math.Pow(2, float64(pitch-69)/12)
}

// Velocity 0..127 mapped onto a base-2 volume around -1.5..0
func gain(velocity int) float64 {
	return 1.5 * (float64(velocity) - 127) / 127
}

// Attack starts sounding a note. Tailless notes play for their chart
// duration; sustains keep sounding until Release or Stop.
func (s *Sampler) Attack(n game.Note) {
	tone := &effects.Volume{
		Streamer: &voice{freq: frequency(n.Pitch), rate: s.sr},
		Base:     2,
		Volume:   gain(n.Velocity),
	}

	if nil != n.Tail {
		ctrl := &beep.Ctrl{Streamer: tone}
		s.active[n.ID] = ctrl
		speaker.Play(ctrl)
		return
	}

	duration := n.End - n.Start
	if duration < 80*time.Millisecond {
		duration = 80 * time.Millisecond
	}
	speaker.Play(beep.Take(s.sr.N(duration), tone))
}

// Release silences the sustain voice for a note id, if one is sounding.
func (s *Sampler) Release(id int64) {
	ctrl, ok := s.active[id]
	if !ok {
		return
	}
	speaker.Lock()
	ctrl.Streamer = nil
	speaker.Unlock()
	delete(s.active, id)
}

// Stop silences every voice, for reset and shutdown.
func (s *Sampler) Stop() {
	speaker.Lock()
	for _, ctrl := range s.active {
		ctrl.Streamer = nil
	}
	speaker.Unlock()
	s.active = map[int64]*beep.Ctrl{}
	speaker.Clear()
	if nil != s.backing {
		s.backing.Close()
		s.backing = nil
	}
}
