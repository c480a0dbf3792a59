// Package extractor turns a manifest and an optional uploaded file into one
// lowercase text blob.
package extractor

import (
	"context"
	"regexp"
	"strings"

	"flipbot/flipbot/utils/logging"
	"flipbot/flipbot/utils/types"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// PageFetcher scrapes the text of a web page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) types.ScrapeOutcome
}

// GatedNote is appended in place of page text when the referenced page cannot
// be scraped.
const GatedNote = "Gated—need screenshot"

// Normalizer builds the text blob the estimator reads.
type Normalizer struct {
	pdf     TextExtractor
	ocr     TextExtractor
	fetcher PageFetcher
}

// NewNormalizer wires the per-format extractors and the page fetcher. A nil
// fetcher disables the URL scrape.
func NewNormalizer(pdf, ocr TextExtractor, fetcher PageFetcher) *Normalizer {
	return &Normalizer{pdf: pdf, ocr: ocr, fetcher: fetcher}
}

// Normalize returns the lowercase blob for manifest plus the text of upload.
// The upload is released before Normalize returns, whatever happens. The
// returned outcome is nil when the blob had no URL in it.
func (n *Normalizer) Normalize(ctx context.Context, manifest string, upload *Upload) (string, *types.ScrapeOutcome, error) {
	defer logging.LogDuration(ctx, "normalize")()

	raw := manifest
	if upload != nil {
		text, err := n.fileText(ctx, upload)
		upload.Release()
		if err != nil {
			return "", nil, err
		}
		raw += " " + text
	}
	blob := strings.ToLower(raw)

	// matched on the raw text so the URL keeps its case
	link := urlPattern.FindString(raw)
	if link == "" || n.fetcher == nil {
		return blob, nil, nil
	}

	outcome := n.fetcher.Fetch(ctx, link)
	if outcome.OK {
		blob += " " + strings.ToLower(outcome.Text)
	} else {
		logging.AppLogger.Info("manifest link not scraped", zap.String("url", link), zap.String("reason", outcome.Reason))
		blob += " " + GatedNote
	}
	return blob, &outcome, nil
}

// fileText dispatches on the upload's extension. Unknown extensions contribute
// nothing.
func (n *Normalizer) fileText(ctx context.Context, u *Upload) (string, error) {
	switch ext := u.Ext(); ext {
	case ".pdf":
		text, err := n.pdf.ExtractText(ctx, u.Path)
		if err != nil {
			return "", eris.Wrapf(err, "extractor: pdf %s", u.Filename)
		}
		return text, nil
	case ".xlsx", ".xls":
		rows, err := readXLSXRows(u.Path)
		if err != nil {
			return "", eris.Wrapf(err, "extractor: spreadsheet %s", u.Filename)
		}
		return flattenCells(rows), nil
	case ".csv":
		rows, err := readCSVRows(u.Path)
		if err != nil {
			return "", eris.Wrapf(err, "extractor: csv %s", u.Filename)
		}
		return flattenCells(rows), nil
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp":
		text, err := n.ocr.ExtractText(ctx, u.Path)
		if err != nil {
			return "", eris.Wrapf(err, "extractor: ocr %s", u.Filename)
		}
		return text, nil
	default:
		logging.AppLogger.Info("upload type ignored", zap.String("file", u.Filename), zap.String("ext", ext))
		return "", nil
	}
}
