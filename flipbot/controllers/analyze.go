// flipbot/controllers/analyze.go
package controllers

import (
	"context"

	"flipbot/flipbot/services/extractor"
	"flipbot/flipbot/services/estimator"
	"flipbot/flipbot/utils/logging"
	"flipbot/flipbot/utils/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadArchiver keeps a copy of an uploaded file.
type UploadArchiver interface {
	ArchiveUpload(ctx context.Context, id uuid.UUID, filename, localPath string) (string, error)
}

// HistoryStore records finished analyses.
type HistoryStore interface {
	SaveAnalysis(ctx context.Context, a types.Analysis) error
}

// AnalyzeController runs the manifest pipeline: normalize, then estimate.
type AnalyzeController struct {
	normalizer *extractor.Normalizer
	estimator  *estimator.Estimator
	archive    UploadArchiver
	history    HistoryStore
}

// NewAnalyzeController creates a new AnalyzeController. archive and history
// may be nil.
func NewAnalyzeController(n *extractor.Normalizer, e *estimator.Estimator, archive UploadArchiver, history HistoryStore) *AnalyzeController {
	return &AnalyzeController{normalizer: n, estimator: e, archive: archive, history: history}
}

// Analyze turns a manifest and optional upload into an analysis. The upload
// is always released. Only text extraction can fail; archive and history
// problems are logged and ignored.
func (c *AnalyzeController) Analyze(ctx context.Context, manifest string, upload *extractor.Upload) (types.Analysis, error) {
	defer logging.LogDuration(ctx, "analyze")()
	defer upload.Release()

	id := uuid.New()
	var fileName string
	if upload != nil {
		fileName = upload.Filename
		if c.archive != nil {
			if key, err := c.archive.ArchiveUpload(ctx, id, upload.Filename, upload.Path); err != nil {
				logging.ErrorLogger.Error("upload archive failed", zap.String("analysis_id", id.String()), zap.Error(err))
			} else {
				logging.AppLogger.Info("upload archived", zap.String("analysis_id", id.String()), zap.String("key", key))
			}
		}
	}

	blob, scrape, err := c.normalizer.Normalize(ctx, manifest, upload)
	if err != nil {
		logging.ErrorLogger.Error("manifest extraction failed", zap.String("analysis_id", id.String()), zap.Error(err))
		return types.Analysis{}, err
	}

	a := c.estimator.Estimate(ctx, blob)
	a.ID = id
	a.FileName = fileName
	a.Scrape = scrape

	logging.AppLogger.Info("analysis complete",
		zap.String("analysis_id", id.String()),
		zap.String("brand", a.Items.Brand),
		zap.Int("units", a.Items.Units),
		zap.Float64("bid", a.Items.Bid),
		zap.Bool("lookup_live", a.Lookup.Live),
	)

	if c.history != nil {
		if err := c.history.SaveAnalysis(ctx, a); err != nil {
			logging.ErrorLogger.Error("analysis history save failed", zap.String("analysis_id", id.String()), zap.Error(err))
		}
	}
	return a, nil
}
