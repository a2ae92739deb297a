// Package document turns remote resume files into plain text.
package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/hire-assessor/internal/fetch"
	"go.uber.org/zap"
)

// Fetcher downloads the raw bytes behind a URL.
type Fetcher interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}

type parseFunc func(data []byte) (string, error)

// Reader extracts text from PDF and DOCX resumes.
type Reader struct {
	fetcher Fetcher
	parsers map[Format]parseFunc
	logger  *zap.Logger
}

func NewReader(fetcher Fetcher, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reader{
		fetcher: fetcher,
		parsers: map[Format]parseFunc{
			FormatPDF:  parsePDF,
			FormatDOCX: parseDOCX,
		},
		logger: logger,
	}
}

// ExtractText dispatches rawURL by suffix and always returns either the
// document text or a marker string. It never fails.
func (r *Reader) ExtractText(ctx context.Context, rawURL string) string {
	return r.Read(ctx, NewReference(rawURL)).Value
}

// Read fetches and parses ref. On failure the outcome carries the error and
// an error marker as its value, so the caller can degrade or abort.
// Unsupported formats and empty documents are not failures: they yield a
// marker value without an error, and unsupported formats are never fetched.
func (r *Reader) Read(ctx context.Context, ref Reference) fetch.Outcome[string] {
	parse, ok := r.parsers[ref.Format()]
	if !ok {
		r.logger.Debug("unsupported resume format", zap.String("url", ref.URL()))
		return fetch.Succeeded(MarkerUnsupported)
	}

	target := NormalizeURL(ref.URL())
	if target != ref.URL() {
		r.logger.Debug("rewrote share link", zap.String("url", ref.URL()), zap.String("download_url", target))
	}

	data, err := r.fetcher.Get(ctx, target)
	if err != nil {
		return r.failed(ref, err)
	}

	text, err := parse(data)
	if err != nil {
		return r.failed(ref, fmt.Errorf("parse %s: %w", ref.Format(), err))
	}

	if strings.TrimSpace(text) == "" {
		r.logger.Info("resume contains no text", zap.String("format", string(ref.Format())))
		return fetch.Succeeded(noTextMarker(ref.Format()))
	}

	r.logger.Debug("resume text extracted",
		zap.String("format", string(ref.Format())),
		zap.Int("bytes", len(data)),
		zap.Int("text_length", len(text)),
	)

	return fetch.Succeeded(text)
}

func (r *Reader) failed(ref Reference, err error) fetch.Outcome[string] {
	r.logger.Warn("reading resume failed",
		zap.String("url", ref.URL()),
		zap.String("format", string(ref.Format())),
		zap.Error(err),
	)
	return fetch.Failed(errorMarker(ref.Format(), err), err)
}
