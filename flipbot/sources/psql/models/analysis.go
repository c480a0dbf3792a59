// flipbot/sources/psql/models/analysis.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRecord is one completed analysis. Result holds the response body as
// JSON so it can be replayed byte for byte.
type AnalysisRecord struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Brand        string    `json:"brand" gorm:"type:varchar(64);index"`
	Condition    string    `json:"condition" gorm:"type:varchar(64)"`
	Units        int       `json:"units"`
	Bid          float64   `json:"bid"`
	Location     string    `json:"location" gorm:"type:varchar(255)"`
	SoldCount    int       `json:"sold_count"`
	AvgPrice     int       `json:"avg_price"`
	LookupLive   bool      `json:"lookup_live"`
	LookupReason string    `json:"lookup_reason" gorm:"type:text"`
	FileName     string    `json:"file_name" gorm:"type:varchar(255)"`
	SourceURL    string    `json:"source_url" gorm:"type:text"`
	ScrapeOK     bool      `json:"scrape_ok"`
	Result       string    `json:"result" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (AnalysisRecord) TableName() string {
	return "analyses"
}
