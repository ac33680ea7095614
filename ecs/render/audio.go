package render

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/raycaster/assets"
	"github.com/milk9111/raycaster/ecs/component"
	"github.com/milk9111/raycaster/logger"
	"github.com/milk9111/raycaster/prefabs"
)

type clip struct {
	player *audio.Player
	volume float64
}

// AudioSink plays named sound events. Clips come from a wav file when the
// sound table names one, otherwise they are synthesised.
type AudioSink struct {
	ctx   *audio.Context
	clips map[string]*clip
	// Falloff is the distance in cells at which volume halves.
	Falloff float64
}

func NewAudioSink(ctx *audio.Context, sounds map[string]prefabs.SoundSpec) *AudioSink {
	s := &AudioSink{ctx: ctx, clips: map[string]*clip{}, Falloff: 6}
	for name, spec := range sounds {
		pcm, err := s.decode(name, spec)
		if err != nil {
			logger.Log.WithError(err).WithField("sound", name).Warn("sound disabled")
			continue
		}
		if len(pcm) == 0 {
			continue
		}
		s.clips[name] = &clip{player: ctx.NewPlayerFromBytes(pcm), volume: spec.Volume}
	}
	logger.Log.WithFields(logrus.Fields{"sounds": len(s.clips)}).Debug("audio ready")
	return s
}

func (s *AudioSink) decode(name string, spec prefabs.SoundSpec) ([]byte, error) {
	if spec.File != "" {
		b, err := assets.LoadFile(spec.File)
		if err != nil {
			return nil, err
		}
		if !strings.HasSuffix(strings.ToLower(spec.File), ".wav") {
			return b, nil
		}
		stream, err := wav.DecodeWithSampleRate(s.ctx.SampleRate(), bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", spec.File, err)
		}
		return io.ReadAll(stream)
	}
	if spec.Noise {
		return assets.Noise(spec.Duration, 1, uint64(len(name))), nil
	}
	return assets.Tone(spec.Freq, spec.Duration, 1), nil
}

// Play starts a sound heard by a listener at (lx, ly).
func (s *AudioSink) Play(ev component.SoundEvent, lx, ly float64) {
	c := s.clips[ev.Name]
	if c == nil {
		return
	}
	dist := math.Hypot(ev.X-lx, ev.Y-ly)
	vol := c.volume
	if s.Falloff > 0 {
		vol *= s.Falloff / (s.Falloff + dist)
	}
	c.player.SetVolume(vol)
	if err := c.player.Rewind(); err != nil {
		logger.Log.WithError(err).WithField("sound", ev.Name).Debug("rewind failed")
		return
	}
	c.player.Play()
}
