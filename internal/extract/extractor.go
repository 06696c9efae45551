package extract

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"talent-match/internal/logger"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

const (
	maxLoggedRef   = 120
	maxLoggedError = 200
)

type Opener interface {
	Open(ctx context.Context, ref string) ([]byte, error)
}

type Extractor struct {
	source Opener
	logger *zap.Logger
}

func NewExtractor(source Opener, log *zap.Logger) *Extractor {
	return &Extractor{source: source, logger: logger.Named(log, "extract")}
}

// Extract returns the plain text of the referenced document, or "" when the reference is empty,
// unsupported or unreadable.
func (e *Extractor) Extract(ctx context.Context, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if !IsSupported(ref) {
		e.logger.Warn("unsupported resume format", zap.String("ref", logger.TruncateForLog(ref, maxLoggedRef)))
		return ""
	}
	if e.source == nil {
		e.logger.Warn("no resume source configured", zap.String("ref", logger.TruncateForLog(ref, maxLoggedRef)))
		return ""
	}

	b, err := e.source.Open(ctx, ref)
	if err != nil {
		e.logger.Warn("resume read failed",
			zap.String("ref", logger.TruncateForLog(ref, maxLoggedRef)),
			zap.String("error", logger.TruncateForLog(err.Error(), maxLoggedError)),
		)
		return ""
	}

	text, err := PDFText(b)
	if err != nil {
		e.logger.Warn("resume parse failed",
			zap.String("ref", logger.TruncateForLog(ref, maxLoggedRef)),
			zap.String("error", logger.TruncateForLog(err.Error(), maxLoggedError)),
		)
		return ""
	}
	return text
}

func IsSupported(ref string) bool {
	return strings.EqualFold(path.Ext(strings.TrimSpace(ref)), ".pdf")
}

// PDFText concatenates the plain text of every page. A panic inside the parser is reported as
// an error.
func PDFText(b []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	if len(b) == 0 {
		return "", fmt.Errorf("empty pdf")
	}

	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(pageText)
	}
	return strings.TrimSpace(sb.String()), nil
}
