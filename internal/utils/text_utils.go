package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextProcessor prepares email text for model prompts
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new text processor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{logger: logger}
}

// TruncateText truncates text to the given maximum size in bytes,
// cutting at a rune boundary
func (p *TextProcessor) TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	cut := maxSize
	// Back off to a rune boundary
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	truncated := text[:cut]

	p.logger.Debug("truncated text",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)))

	return truncated
}

// SanitizeUTF8 removes invalid UTF-8 sequences from text
func (p *TextProcessor) SanitizeUTF8(text string) string {
	return strings.ToValidUTF8(text, "")
}

// ProcessText sanitizes and truncates text for inclusion in a prompt
func (p *TextProcessor) ProcessText(text string, maxSize int) string {
	return p.TruncateText(p.SanitizeUTF8(text), maxSize)
}
