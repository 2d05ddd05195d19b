package audio

import (
	"testing"

	"github.com/talkware/go-parley/pkg/audioio"
)

func silenceWAV(ms int) []byte {
	chunk := &audioio.AudioChunk{
		Samples:    make([]int16, 16000*ms/1000),
		SampleRate: 16000,
		Channels:   1,
	}
	return audioio.WAVBytes(chunk)
}

func TestDecodeWAV(t *testing.T) {
	streamer, format, err := decode(silenceWAV(100), EncodingWAV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer streamer.Close()

	if format.SampleRate != 16000 {
		t.Errorf("expected sample rate 16000, got %d", format.SampleRate)
	}
	if format.NumChannels != 1 {
		t.Errorf("expected mono, got %d channels", format.NumChannels)
	}
	if streamer.Len() != 1600 {
		t.Errorf("expected 1600 samples, got %d", streamer.Len())
	}
}

func TestDecodeUnsupportedEncoding(t *testing.T) {
	if _, _, err := decode([]byte{0x00}, "ogg"); err == nil {
		t.Error("expected error for unsupported encoding")
	}
}

func TestDecodeGarbageMP3(t *testing.T) {
	if _, _, err := decode([]byte("not an mp3 payload"), EncodingMP3); err == nil {
		t.Error("expected decode error for garbage payload")
	}
}

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer()
	if p.volume != 1.0 {
		t.Errorf("expected unity volume, got %f", p.volume)
	}
	if p.IsPlaying() {
		t.Error("new player should not report playing")
	}
}

func TestWithVolume(t *testing.T) {
	p := NewPlayer(WithVolume(0.9))
	if p.volume != 0.9 {
		t.Errorf("expected volume 0.9, got %f", p.volume)
	}
}

func TestStopWithoutPlayback(t *testing.T) {
	p := NewPlayer()
	p.Stop()
	p.Stop()
}

func TestArmDisarm(t *testing.T) {
	p := NewPlayer()

	stopped := p.arm()
	if !p.IsPlaying() {
		t.Error("expected playing after arm")
	}

	p.Stop()
	select {
	case <-stopped:
	default:
		t.Error("expected stop channel to be closed")
	}

	p.disarm()
	if p.IsPlaying() {
		t.Error("expected not playing after disarm")
	}
}
