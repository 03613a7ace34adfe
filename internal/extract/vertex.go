package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

const vertexDefaultModel = "gemini-2.0-flash"

// VertexConfig holds configuration for the Vertex AI extractor.
type VertexConfig struct {
	Project           string
	Location          string
	Model             string
	Temperature       float64
	SystemInstruction string
	MaxRetries        int
	RetryDelay        time.Duration
	Logger            *slog.Logger
}

// VertexExtractor decomposes footnotes via Vertex AI generative models.
// Safety filtering is disabled across categories: legal source material
// routinely quotes content the default filters block, and a filtered
// response would silently drop citations.
type VertexExtractor struct {
	client     *genai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
	genConfig  *genai.GenerateContentConfig
	logger     *slog.Logger
}

// NewVertexExtractor creates a new Vertex AI-backed extractor. Credentials
// come from the ambient Google Cloud environment.
func NewVertexExtractor(ctx context.Context, cfg VertexConfig) (*VertexExtractor, error) {
	if cfg.Model == "" {
		cfg.Model = vertexDefaultModel
	}
	if cfg.Location == "" {
		cfg.Location = "us-central1"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.SystemInstruction == "" {
		cfg.SystemInstruction = DefaultSystemInstruction
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  cfg.Project,
		Location: cfg.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	temp := float32(cfg.Temperature)
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser),
		Temperature:       &temp,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdOff},
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdOff},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdOff},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdOff},
			{Category: genai.HarmCategoryCivicIntegrity, Threshold: genai.HarmBlockThresholdOff},
		},
	}

	return &VertexExtractor{
		client:     client,
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		genConfig:  genConfig,
		logger:     logger.With("extractor", PlatformVertex, "model", cfg.Model),
	}, nil
}

func (e *VertexExtractor) Name() string {
	return PlatformVertex
}

// Extract sends the footnote to the model with backoff retries and returns
// the newline-delimited citation blob.
func (e *VertexExtractor) Extract(ctx context.Context, footnoteText string) (string, error) {
	requestID := uuid.NewString()
	start := time.Now()
	e.logger.Debug("decomposition request", "request_id", requestID, "bytes", len(footnoteText))

	var out string
	err := retry.Do(
		func() error {
			resp, err := e.client.Models.GenerateContent(ctx, e.model,
				genai.Text(footnoteText), e.genConfig)
			if err != nil {
				return err
			}
			if len(resp.Candidates) == 0 ||
				resp.Candidates[0].Content == nil ||
				len(resp.Candidates[0].Content.Parts) == 0 {
				return fmt.Errorf("empty response from model")
			}
			out = strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(e.maxRetries)),
		retry.Delay(e.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("vertex generate content: %w", err)
	}

	e.logger.Debug("decomposition response", "request_id", requestID, "duration", time.Since(start))
	return out, nil
}
