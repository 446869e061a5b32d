package llm

import (
	"context"
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Stop        []string
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithStop(stop []string) Option {
	return func(o *Options) {
		o.Stop = stop
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ApplyOptions folds the given options over sane defaults.
func ApplyOptions(opts ...Option) *Options {
	options := &Options{
		Temperature: 0.7,
		MaxTokens:   512,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Chunk is one incremental text fragment from a streaming generation.
// Fragment boundaries are backend-defined: a chunk may split words or
// marker strings arbitrarily.
type Chunk struct {
	Text string
	Err  error
}

// LLMProvider defines the contract for any text-generation backend.
type LLMProvider interface {
	// Complete sends a prompt to the model and returns the full response.
	Complete(ctx context.Context, prompt string, options ...Option) (string, error)

	// Stream sends a prompt and returns a channel of incremental chunks.
	// The channel is closed when generation finishes; a chunk with a
	// non-nil Err terminates the stream. Cancelling ctx stops the
	// backend and releases its resources.
	Stream(ctx context.Context, prompt string, options ...Option) (<-chan Chunk, error)
}
