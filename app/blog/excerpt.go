package blog

import (
	"fmt"
	"log/slog"
	"strings"

	readability "codeberg.org/readeck/go-readability"
)

const defaultExcerptLength = 280

// ExcerptExtractor derives a plain-text excerpt from an article's body
// HTML, for articles published without a description.
type ExcerptExtractor struct {
	maxLength int
}

func NewExcerptExtractor() *ExcerptExtractor {
	return &ExcerptExtractor{
		maxLength: defaultExcerptLength,
	}
}

func (e *ExcerptExtractor) Run(htmlData string) (string, error) {
	if htmlData == "" {
		return "", fmt.Errorf("HTML data is empty")
	}

	article, err := readability.FromReader(strings.NewReader(htmlData), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	if text == "" {
		return "", fmt.Errorf("no text extracted from HTML data")
	}

	slog.Debug("Excerpt extracted", "length", len(text))

	return e.truncate(text), nil
}

// truncate cuts at the last word boundary before the length cap.
func (e *ExcerptExtractor) truncate(text string) string {
	if len(text) <= e.maxLength {
		return text
	}

	cut := text[:e.maxLength]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}

	return cut + "…"
}
