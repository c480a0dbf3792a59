// flipbot/sources/psql/dao/dao.analysis.go
package dao

import (
	"context"
	"encoding/json"
	"errors"

	"flipbot/flipbot/sources/psql/models"
	"flipbot/flipbot/utils/types"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"gorm.io/gorm"
)

type AnalysisDAO struct {
	DB *gorm.DB
}

func NewAnalysisDAO(db *gorm.DB) *AnalysisDAO {
	return &AnalysisDAO{DB: db}
}

// RecordFromAnalysis flattens an analysis into its table row.
func RecordFromAnalysis(a types.Analysis) (*models.AnalysisRecord, error) {
	result, err := json.Marshal(a.Result)
	if err != nil {
		return nil, eris.Wrap(err, "dao: marshal result")
	}
	rec := &models.AnalysisRecord{
		ID:           a.ID,
		Brand:        a.Items.Brand,
		Condition:    a.Items.Condition,
		Units:        a.Items.Units,
		Bid:          a.Items.Bid,
		Location:     a.Items.Location,
		SoldCount:    a.Lookup.SoldCount,
		AvgPrice:     a.Lookup.AvgPrice,
		LookupLive:   a.Lookup.Live,
		LookupReason: a.Lookup.Reason,
		FileName:     a.FileName,
		Result:       string(result),
	}
	if a.Scrape != nil {
		rec.SourceURL = a.Scrape.URL
		rec.ScrapeOK = a.Scrape.OK
	}
	return rec, nil
}

func (dao *AnalysisDAO) SaveAnalysis(ctx context.Context, a types.Analysis) error {
	rec, err := RecordFromAnalysis(a)
	if err != nil {
		return err
	}
	return dao.DB.WithContext(ctx).Create(rec).Error
}

// GetAnalysisByID returns nil, nil when there is no such analysis.
func (dao *AnalysisDAO) GetAnalysisByID(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	var rec models.AnalysisRecord
	err := dao.DB.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (dao *AnalysisDAO) ListRecentAnalyses(ctx context.Context, limit int) ([]models.AnalysisRecord, error) {
	var recs []models.AnalysisRecord
	err := dao.DB.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
