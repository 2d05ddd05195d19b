package stt

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/talkware/go-parley/pkg/audioio"
	"github.com/talkware/go-parley/pkg/debug"
)

// frameFn receives each frame of the utterance as it is captured. Backends
// that stream audio to a live endpoint pass a sink here; batch backends pass
// nil and use the returned chunk.
type frameFn func(audioio.AudioChunk) error

// captureUtterance records one utterance from the configured source.
//
// It calibrates against ambient noise, waits up to opts.MaxWait for speech
// to begin, then accumulates frames until the speaker trails off into
// silence or opts.MaxUtterance is reached. A few frames of pre-roll are kept
// so the onset of speech is not clipped.
func captureUtterance(ctx context.Context, cfg *Config, opts ListenOptions, frame frameFn) (*audioio.AudioChunk, error) {
	opts = opts.withDefaults()
	src := cfg.Source
	if src == nil {
		return nil, ErrNoSource
	}

	if err := src.Start(ctx); err != nil {
		return nil, fmt.Errorf("start capture: %w", err)
	}
	defer src.Stop()

	srcRate := src.Config().SampleRate
	if srcRate <= 0 {
		srcRate = cfg.SampleRate
	}

	threshold, err := calibrate(ctx, src, cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	debug.AudioLogln("capture: silence threshold", threshold)

	var (
		samples    []int16
		preroll    []audioio.AudioChunk
		speech     time.Duration
		silentTail time.Duration
		heard      bool
		deadline   = time.Now().Add(opts.MaxWait)
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !heard && time.Now().After(deadline) {
			return nil, ErrTimeout
		}

		chunk, err := src.Read(ctx)
		if err != nil {
			return nil, fmt.Errorf("read capture: %w", err)
		}
		dur := frameDuration(chunk)
		loud := rms(chunk.Samples) >= threshold

		if !heard {
			if !loud {
				// Keep a short pre-roll so the first syllable survives.
				preroll = append(preroll, chunk)
				if len(preroll) > 4 {
					preroll = preroll[1:]
				}
				continue
			}
			heard = true
			for _, pc := range preroll {
				samples = append(samples, pc.Samples...)
				if frame != nil {
					if err := frame(pc); err != nil {
						return nil, err
					}
				}
			}
			preroll = nil
		}

		samples = append(samples, chunk.Samples...)
		if frame != nil {
			if err := frame(chunk); err != nil {
				return nil, err
			}
		}

		if loud {
			speech += dur
			silentTail = 0
		} else {
			silentTail += dur
		}

		if silentTail >= cfg.Endpoint.TailSilence {
			if speech >= cfg.Endpoint.MinSpeech {
				break
			}
			// A click or cough, not speech. Discard and keep waiting.
			debug.AudioLogln("capture: discarding", len(samples), "noise samples")
			samples = samples[:0]
			speech, silentTail = 0, 0
			heard = false
			continue
		}
		if utteranceLen(samples, srcRate) >= opts.MaxUtterance {
			break
		}
	}

	if srcRate != cfg.SampleRate {
		samples = audioio.Resample(samples, srcRate, cfg.SampleRate)
	}
	out := &audioio.AudioChunk{Samples: samples, SampleRate: cfg.SampleRate, Channels: 1}

	if debug.Audio {
		dumpCapture(out)
	}
	return out, nil
}

// calibrate samples ambient noise and returns the silence threshold to use.
// The configured floor is never lowered, only raised for noisy rooms.
func calibrate(ctx context.Context, src audioio.Source, ep EndpointConfig) (float64, error) {
	threshold := ep.SilenceRMS
	if ep.Calibration <= 0 {
		return threshold, nil
	}

	var (
		sum   float64
		n     int
		until = time.Now().Add(ep.Calibration)
	)
	for time.Now().Before(until) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		chunk, err := src.Read(ctx)
		if err != nil {
			return 0, fmt.Errorf("calibrate: %w", err)
		}
		sum += rms(chunk.Samples)
		n++
	}
	if n == 0 {
		return threshold, nil
	}
	debug.AudioLog("capture: ambient rms %.1f over %d frames\n", sum/float64(n), n)
	if ambient := (sum / float64(n)) * 1.75; ambient > threshold {
		threshold = ambient
	}
	return threshold, nil
}

// rms computes the root mean square energy of a frame.
func rms(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum2 float64
	for _, s := range samples {
		sum2 += float64(s) * float64(s)
	}
	return math.Sqrt(sum2 / float64(len(samples)))
}

func frameDuration(chunk audioio.AudioChunk) time.Duration {
	return time.Duration(chunk.Duration() * float64(time.Second))
}

func utteranceLen(samples []int16, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(len(samples)) * time.Second / time.Duration(rate)
}

// dumpCapture writes the last captured utterance to the temp directory for
// inspection with --debug-audio.
func dumpCapture(chunk *audioio.AudioChunk) {
	path := filepath.Join(os.TempDir(), "parley-last-capture.wav")
	if err := os.WriteFile(path, audioio.WAVBytes(chunk), 0644); err != nil {
		debug.AudioLogln("capture: dump failed:", err)
		return
	}
	debug.AudioLogln("capture: wrote", path)
}
