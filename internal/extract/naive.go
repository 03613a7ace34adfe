package extract

import (
	"context"
	"strings"
)

// NaiveExtractor echoes the footnote text back as a single citation line.
// It exists so the resolution engine can be exercised end to end without an
// AI backend: every footnote becomes one citation, classified as-is.
type NaiveExtractor struct{}

func NewNaiveExtractor() *NaiveExtractor {
	return &NaiveExtractor{}
}

func (*NaiveExtractor) Name() string {
	return PlatformNaive
}

func (*NaiveExtractor) Extract(_ context.Context, footnoteText string) (string, error) {
	if strings.TrimSpace(footnoteText) == "" {
		return "-", nil
	}
	return footnoteText, nil
}
