// Package extract decomposes footnote text into citation lines using one of
// a small closed set of platforms: Vertex AI, OpenAI, or the naive echo mode
// used for debugging and for validating the resolution engine independent of
// AI quality.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Platform names accepted in configuration.
const (
	PlatformNaive  = "naive"
	PlatformOpenAI = "openai"
	PlatformVertex = "vertex"
)

// ErrUnknownPlatform is returned by New for an unrecognized platform name.
var ErrUnknownPlatform = errors.New("unknown extraction platform")

// Extractor turns one footnote's text into a newline-delimited citation
// blob, one logical citation per line. Implementations own their retry
// policy; callers treat a returned error as a per-footnote failure and
// degrade that footnote without cancelling the run.
type Extractor interface {
	// Name returns the platform identifier.
	Name() string

	// Extract decomposes footnoteText into citation lines.
	Extract(ctx context.Context, footnoteText string) (string, error)
}

// Options selects and configures the extraction platform. Zero values fall
// back to platform defaults.
type Options struct {
	Platform string

	// Model is the OpenAI model or Vertex AI model/endpoint name.
	Model string

	// APIKey authenticates OpenAI requests (supports resolution upstream).
	APIKey string

	// Project and Location scope Vertex AI requests.
	Project  string
	Location string

	Temperature       float64
	SystemInstruction string
	MaxRetries        int
	Timeout           time.Duration

	Logger *slog.Logger
}

// New builds the extractor selected by opts. The platform is chosen once at
// startup; there is no per-footnote switching.
func New(ctx context.Context, opts Options) (Extractor, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch opts.Platform {
	case PlatformNaive:
		return NewNaiveExtractor(), nil

	case PlatformOpenAI:
		return NewOpenAIExtractor(OpenAIConfig{
			APIKey:            opts.APIKey,
			Model:             opts.Model,
			Temperature:       opts.Temperature,
			SystemInstruction: opts.SystemInstruction,
			MaxRetries:        opts.MaxRetries,
			Timeout:           opts.Timeout,
			Logger:            logger,
		}), nil

	case PlatformVertex:
		return NewVertexExtractor(ctx, VertexConfig{
			Project:           opts.Project,
			Location:          opts.Location,
			Model:             opts.Model,
			Temperature:       opts.Temperature,
			SystemInstruction: opts.SystemInstruction,
			MaxRetries:        opts.MaxRetries,
			Logger:            logger,
		})

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, opts.Platform)
	}
}

// DefaultSystemInstruction is the decomposition prompt used when the config
// does not override it.
const DefaultSystemInstruction = `You are a law journal citation assistant. ` +
	`The user message is the text of one footnote from an article draft. ` +
	`Split it into its individual citations and reply with exactly one ` +
	`citation per line, preserving the citation text verbatim including ` +
	`signal words and pincites. Do not number the lines, do not add ` +
	`commentary, and do not merge or reorder citations. If the footnote ` +
	`contains no citations, reply with a single "-" character.`
