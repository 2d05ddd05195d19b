package tts

import (
	"context"
	"fmt"
	"log/slog"
)

// Chain implements Synthesizer by trying multiple engines in order.
// The first engine to speak successfully wins; if all fail, Speak returns
// an aggregate error. The usual arrangement is Google first with the
// offline engine as a fallback, so practice continues without a network.
type Chain struct {
	engines []Synthesizer
	logger  *slog.Logger
}

// NewChain creates an engine chain that tries engines in order.
// At least one engine is required.
func NewChain(engines ...Synthesizer) (*Chain, error) {
	if len(engines) == 0 {
		return nil, ErrProviderUnavailable
	}

	return &Chain{
		engines: engines,
		logger:  slog.Default().With("component", "tts.chain"),
	}, nil
}

// NewChainWithLogger creates an engine chain with a custom logger.
func NewChainWithLogger(logger *slog.Logger, engines ...Synthesizer) (*Chain, error) {
	chain, err := NewChain(engines...)
	if err != nil {
		return nil, err
	}
	chain.logger = logger.With("component", "tts.chain")
	return chain, nil
}

// Speak tries each engine until one speaks successfully.
func (c *Chain) Speak(ctx context.Context, text string) error {
	var errs []error

	for i, engine := range c.engines {
		err := engine.Speak(ctx, text)
		if err == nil {
			if i > 0 {
				c.logger.Info("fallback engine spoke",
					"engine_index", i,
					"chars", len(text),
				)
			}
			return nil
		}

		errs = append(errs, err)
		c.logger.Warn("engine failed, trying next",
			"engine_index", i,
			"error", err,
		)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return &ChainError{Errors: errs}
}

// Stop interrupts playback on every engine.
// Only one engine can be speaking, but a broadcast is harmless.
func (c *Chain) Stop() {
	for _, engine := range c.engines {
		engine.Stop()
	}
}

// Health reports healthy if at least one engine is usable.
func (c *Chain) Health(ctx context.Context) error {
	var healthy int
	var lastErr error

	for _, engine := range c.engines {
		if err := engine.Health(ctx); err != nil {
			lastErr = err
		} else {
			healthy++
		}
	}

	if healthy == 0 {
		return fmt.Errorf("all %d engines unhealthy: %w", len(c.engines), lastErr)
	}

	c.logger.Debug("health check complete",
		"healthy", healthy,
		"total", len(c.engines),
	)

	return nil
}

// Close closes all engines.
func (c *Chain) Close() error {
	var lastErr error
	for _, engine := range c.engines {
		if err := engine.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Engines returns the engines in the chain.
func (c *Chain) Engines() []Synthesizer {
	return c.engines
}

// ChainError aggregates errors from all engines in a chain.
type ChainError struct {
	Errors []error
}

// Error implements the error interface.
func (e *ChainError) Error() string {
	if len(e.Errors) == 0 {
		return "tts chain: no errors recorded"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("tts chain: %v", e.Errors[0])
	}
	return fmt.Sprintf("tts chain: all %d engines failed, last error: %v", len(e.Errors), e.Errors[len(e.Errors)-1])
}

// Unwrap returns the last error in the chain.
func (e *ChainError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[len(e.Errors)-1]
}

// Verify Chain implements Synthesizer at compile time.
var _ Synthesizer = (*Chain)(nil)
