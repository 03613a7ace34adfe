package config

import "citecheck/internal/extract"

// Config holds citecheck configuration.
// Loaded from ./config.yaml or ~/.citecheck/config.yaml.
type Config struct {
	AI       AICfg       `mapstructure:"ai" yaml:"ai" json:"ai"`
	Document DocumentCfg `mapstructure:"document" yaml:"document" json:"document"`
	Output   OutputCfg   `mapstructure:"output" yaml:"output" json:"output"`
	Pipeline PipelineCfg `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`
}

// AICfg configures the citation extraction platform.
type AICfg struct {
	Platform          string  `mapstructure:"platform" yaml:"platform" json:"platform"` // "naive", "openai", "vertex"
	Model             string  `mapstructure:"model" yaml:"model" json:"model"`          // OpenAI model or Vertex model/endpoint
	APIKey            string  `mapstructure:"api_key" yaml:"api_key" json:"api_key"`    // supports ${ENV_VAR} syntax
	Project           string  `mapstructure:"project" yaml:"project" json:"project"`    // Vertex AI project
	Location          string  `mapstructure:"location" yaml:"location" json:"location"` // Vertex AI region
	Temperature       float64 `mapstructure:"temperature" yaml:"temperature" json:"temperature"`
	SystemInstruction string  `mapstructure:"system_instruction" yaml:"system_instruction" json:"system_instruction"`
	MaxRetries        int     `mapstructure:"max_retries" yaml:"max_retries" json:"max_retries"`
}

// DocumentCfg configures document reading.
type DocumentCfg struct {
	// AcknowledgmentFootnotes is the number of author acknowledgment
	// footnotes excluded from substantive numbering.
	AcknowledgmentFootnotes int `mapstructure:"acknowledgment_footnotes" yaml:"acknowledgment_footnotes" json:"acknowledgment_footnotes"`

	// EnableMarkup preserves italics and small caps as HTML tags instead of
	// flattening to plain text.
	EnableMarkup bool `mapstructure:"enable_markup" yaml:"enable_markup" json:"enable_markup"`
}

// OutputCfg configures result writing.
type OutputCfg struct {
	Folder string `mapstructure:"folder" yaml:"folder" json:"folder"`
}

// PipelineCfg configures the extraction stage.
type PipelineCfg struct {
	// Workers bounds concurrent extraction calls. Resolution itself is
	// always sequential.
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
}

// DefaultConfig returns configuration with sensible defaults: the naive
// platform, so a fresh install works without AI credentials.
func DefaultConfig() *Config {
	return &Config{
		AI: AICfg{
			Platform:          extract.PlatformNaive,
			APIKey:            "${OPENAI_API_KEY}",
			Location:          "us-central1",
			Temperature:       0.2,
			SystemInstruction: extract.DefaultSystemInstruction,
			MaxRetries:        3,
		},
		Document: DocumentCfg{
			AcknowledgmentFootnotes: 1,
		},
		Output: OutputCfg{
			Folder: "output",
		},
		Pipeline: PipelineCfg{
			Workers: 4,
		},
	}
}
