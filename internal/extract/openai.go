package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openAIDefaultModel = openai.ChatModelGPT4oMini

// OpenAIConfig holds configuration for the OpenAI extractor.
type OpenAIConfig struct {
	APIKey            string
	Model             string
	Temperature       float64
	SystemInstruction string
	MaxRetries        int           // SDK transport retries
	Timeout           time.Duration // HTTP timeout
	BaseURL           string        // Optional (tests)
	HTTPClient        *http.Client  // Optional (tests)
	Logger            *slog.Logger
}

// OpenAIExtractor decomposes footnotes via the Chat Completions API using
// the official OpenAI SDK. Transport-level retries are delegated to the SDK.
type OpenAIExtractor struct {
	model             string
	temperature       float64
	systemInstruction string
	client            openai.Client
	logger            *slog.Logger
}

// NewOpenAIExtractor creates a new OpenAI-backed extractor.
func NewOpenAIExtractor(cfg OpenAIConfig) *OpenAIExtractor {
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.SystemInstruction == "" {
		cfg.SystemInstruction = DefaultSystemInstruction
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIExtractor{
		model:             cfg.Model,
		temperature:       cfg.Temperature,
		systemInstruction: cfg.SystemInstruction,
		client:            openai.NewClient(opts...),
		logger:            logger.With("extractor", PlatformOpenAI),
	}
}

func (e *OpenAIExtractor) Name() string {
	return PlatformOpenAI
}

// Extract sends the footnote as a user message under the decomposition
// system instruction and returns the model's newline-delimited reply.
func (e *OpenAIExtractor) Extract(ctx context.Context, footnoteText string) (string, error) {
	requestID := uuid.NewString()
	start := time.Now()
	e.logger.Debug("decomposition request", "request_id", requestID, "model", e.model, "bytes", len(footnoteText))

	resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: e.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(e.systemInstruction),
			openai.UserMessage(footnoteText),
		},
		Temperature: openai.Float(e.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion returned no choices")
	}

	e.logger.Debug("decomposition response",
		"request_id", requestID,
		"duration", time.Since(start),
		"tokens", resp.Usage.TotalTokens,
	)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
