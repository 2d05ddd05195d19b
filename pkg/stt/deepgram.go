package stt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/talkware/go-parley/pkg/audioio"
)

const (
	deepgramWSURL   = "wss://api.deepgram.com/v1/listen"
	deepgramAuthURL = "https://api.deepgram.com/v1/auth/token"
	deepgramModel   = "nova-2"
)

// Deepgram recognizes speech with the Deepgram live streaming API.
// Captured frames are streamed over a websocket as they arrive, so the
// transcript is ready almost as soon as the speaker finishes.
type Deepgram struct {
	cfg        *Config
	logger     *slog.Logger
	httpClient *http.Client
	dialer     *websocket.Dialer
	wsURL      string
	authURL    string
	closed     bool
}

// NewDeepgram creates a Deepgram streaming recognizer.
func NewDeepgram(opts ...Option) (*Deepgram, error) {
	cfg := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = deepgramModel
	}
	cfg.Apply(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	return &Deepgram{
		cfg:        cfg,
		logger:     cfg.Logger.With("component", "stt.deepgram"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		dialer:     websocket.DefaultDialer,
		wsURL:      deepgramWSURL,
		authURL:    deepgramAuthURL,
	}, nil
}

// dgMessage is the subset of Deepgram's response envelope we consume.
type dgMessage struct {
	Type    string `json:"type"`
	Channel struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float32 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"channel"`
}

// Listen streams one utterance to Deepgram and returns the transcript.
func (d *Deepgram) Listen(ctx context.Context, opts ListenOptions) (*Result, error) {
	if d.closed {
		return nil, ErrClosed
	}

	streamRate := d.cfg.SampleRate
	if r := d.cfg.Source.Config().SampleRate; r > 0 {
		streamRate = r
	}

	conn, err := d.dial(ctx, streamRate)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	// Collect transcript fragments while frames stream out.
	var (
		parts      []string
		confidence float32
		readErr    error
		done       = make(chan struct{})
	)
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if !isExpectedClose(err) {
					readErr = err
				}
				return
			}
			var msg dgMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			switch msg.Type {
			case "Results":
				if len(msg.Channel.Alternatives) == 0 {
					continue
				}
				alt := msg.Channel.Alternatives[0]
				if alt.Transcript == "" {
					continue
				}
				parts = append(parts, alt.Transcript)
				if confidence == 0 {
					confidence = alt.Confidence
				}
			case "Metadata":
				// Server has flushed everything after CloseStream.
				return
			}
		}
	}()

	chunk, err := captureUtterance(ctx, d.cfg, opts, func(frame audioio.AudioChunk) error {
		return conn.WriteMessage(websocket.BinaryMessage, frame.Bytes())
	})
	if err != nil {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		<-done
		return nil, err
	}
	captured := time.Duration(chunk.Duration() * float64(time.Second))

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"CloseStream"}`)); err != nil {
		return nil, WrapError("deepgram", err)
	}

	select {
	case <-done:
	case <-time.After(d.cfg.RequestTimeout):
		return nil, WrapError("deepgram", fmt.Errorf("timed out waiting for final transcript"))
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if readErr != nil {
		return nil, WrapError("deepgram", readErr)
	}

	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return nil, ErrNoSpeech
	}
	d.logger.Debug("transcript complete", "captured", captured, "chars", len(text))

	return &Result{Text: text, Duration: captured, Confidence: confidence}, nil
}

// dial opens the streaming session for a single utterance.
func (d *Deepgram) dial(ctx context.Context, sampleRate int) (*websocket.Conn, error) {
	q := url.Values{}
	q.Set("model", d.model())
	q.Set("language", d.cfg.Language)
	q.Set("encoding", "linear16")
	q.Set("sample_rate", strconv.Itoa(sampleRate))
	q.Set("channels", "1")
	q.Set("punctuate", "true")

	header := http.Header{}
	header.Set("Authorization", "Token "+d.cfg.APIKey)

	conn, resp, err := d.dialer.DialContext(ctx, d.wsURL+"?"+q.Encode(), header)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Message:    strings.TrimSpace(string(body)),
				Provider:   "deepgram",
			}
		}
		return nil, WrapError("deepgram", err)
	}
	return conn, nil
}

func (d *Deepgram) model() string {
	if d.cfg.Model != "" {
		return d.cfg.Model
	}
	return deepgramModel
}

// Health verifies the API key against the auth endpoint.
func (d *Deepgram) Health(ctx context.Context) error {
	if d.closed {
		return ErrClosed
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.authURL, nil)
	if err != nil {
		return WrapError("deepgram", err)
	}
	req.Header.Set("Authorization", "Token "+d.cfg.APIKey)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return WrapError("deepgram", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Provider:   "deepgram",
		}
	}
	return nil
}

// Close marks the recognizer unusable. Each Listen owns its own connection,
// so there is nothing else to tear down.
func (d *Deepgram) Close() error {
	d.closed = true
	return nil
}

func isExpectedClose(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure, websocket.CloseGoingAway) || err == io.EOF
}

// Verify Deepgram implements Recognizer at compile time.
var _ Recognizer = (*Deepgram)(nil)
