package types

import "github.com/google/uuid"

// ExtractedItems holds the fields read from the blob. Brand and condition are
// lowercase because the blob is.
type ExtractedItems struct {
	Units     int     `json:"units"`
	Brand     string  `json:"brand"`
	Condition string  `json:"condition"`
	Bid       float64 `json:"bid"`
	Location  string  `json:"location"`
}

// AnalysisResult is the response body. Field order is the order the keys are
// written in.
type AnalysisResult struct {
	GoodBuy       string `json:"Good Buy?"`
	RealSoldData  string `json:"Real Sold Data"`
	ROIExpect     string `json:"ROI Expect"`
	Profit        string `json:"Profit/Unit & Total"`
	ShippingCost  string `json:"Shipping Cost"`
	SalesDuration string `json:"Sales Duration"`
	DemandRating  string `json:"Demand Rating"`
	RisksTips     string `json:"Risks/Tips"`
}

// Figures are the derived numbers behind an AnalysisResult.
type Figures struct {
	SellablePct      float64 `json:"sellable_pct"`
	AnticipatedSales float64 `json:"anticipated_sales"`
	Revenue          float64 `json:"revenue"`
	Fees             float64 `json:"fees"`
	TotalProfit      float64 `json:"total_profit"`
	ProfitPerUnit    int     `json:"profit_per_unit"`
	MaxBuy           float64 `json:"max_buy"`
}

// Analysis is everything one run of the pipeline produced.
type Analysis struct {
	ID       uuid.UUID      `json:"id"`
	FileName string         `json:"file_name,omitempty"`
	Items    ExtractedItems `json:"items"`
	Lookup   LookupOutcome  `json:"lookup"`
	Scrape   *ScrapeOutcome `json:"scrape,omitempty"`
	Figures  Figures        `json:"figures"`
	Result   AnalysisResult `json:"result"`
}

// Entry is one key of an AnalysisResult with its value.
type Entry struct {
	Key   string
	Value string
}

// Entries lists the result keys in response order.
func (r AnalysisResult) Entries() []Entry {
	return []Entry{
		{"Good Buy?", r.GoodBuy},
		{"Real Sold Data", r.RealSoldData},
		{"ROI Expect", r.ROIExpect},
		{"Profit/Unit & Total", r.Profit},
		{"Shipping Cost", r.ShippingCost},
		{"Sales Duration", r.SalesDuration},
		{"Demand Rating", r.DemandRating},
		{"Risks/Tips", r.RisksTips},
	}
}
