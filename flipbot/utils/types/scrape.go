// flipbot/utils/types/scrape.go
package types

import (
	"time"
)

type ScrapeOptions struct {
	MaxChars int
	Timeout  time.Duration // e.g., default 10s
}

// ScrapeOutcome records what the page fetch produced. OK is false when the
// fallback note was used instead of page text.
type ScrapeOutcome struct {
	URL    string `json:"url"`
	Text   string `json:"text"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
	Cached bool   `json:"cached,omitempty"`
}

// LookupOutcome records the supplementary sold-data lookup. Live is true only
// when both numbers were read from the search page.
type LookupOutcome struct {
	Query     string `json:"query"`
	SoldCount int    `json:"sold_count"`
	AvgPrice  int    `json:"avg_price"`
	Live      bool   `json:"live"`
	Reason    string `json:"reason,omitempty"`
}
