// Package estimator reads manifest fields from a text blob and turns them into
// the flip estimate.
package estimator

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"flipbot/flipbot/config"
	"flipbot/flipbot/utils/logging"
	"flipbot/flipbot/utils/types"
)

type Estimator struct {
	policy    config.Policy
	extractor *FieldExtractor
	search    Searcher
}

// NewEstimator builds an Estimator. A nil search skips the sold-data lookup
// and always uses the policy defaults.
func NewEstimator(p config.Policy, search Searcher) *Estimator {
	return &Estimator{policy: p, extractor: NewFieldExtractor(p), search: search}
}

// Estimate runs extraction, the lookup and the arithmetic. It has no error
// return: lookup failures only change which numbers are used.
func (e *Estimator) Estimate(ctx context.Context, blob string) types.Analysis {
	defer logging.LogDuration(ctx, "estimate")()

	items := e.extractor.Extract(blob)
	lookup := e.lookup(ctx, items.Brand)
	figures, result := Compute(e.policy, items, lookup)
	return types.Analysis{
		Items:   items,
		Lookup:  lookup,
		Figures: figures,
		Result:  result,
	}
}

// Compute is the pure arithmetic and rendering step.
func Compute(p config.Policy, items types.ExtractedItems, lookup types.LookupOutcome) (types.Figures, types.AnalysisResult) {
	sellablePct := p.SellablePct
	if items.Condition == p.PremiumCondition {
		sellablePct = p.PremiumSellablePct
	}
	units := float64(items.Units)
	cost := items.Bid * units
	revenue := cost * p.Markup
	fees := revenue * p.FeeRate

	f := types.Figures{
		SellablePct:      sellablePct,
		AnticipatedSales: units * (sellablePct / 100),
		Revenue:          revenue,
		Fees:             fees,
		TotalProfit:      revenue - cost - fees - float64(p.ShipCA),
		ProfitPerUnit:    int(math.Floor((float64(lookup.AvgPrice) - items.Bid/units) * (1 - p.FeeRate))),
		MaxBuy:           items.Bid * p.MaxBuyMultiplier,
	}
	return f, render(p, f, lookup)
}

func render(p config.Policy, f types.Figures, lookup types.LookupOutcome) types.AnalysisResult {
	return types.AnalysisResult{
		GoodBuy:      "Maybe - Untested risk but high demand for 3x ROI in $500 budget.",
		RealSoldData: fmt.Sprintf("%d+/mo eBay; Avg $%d CA/WA adjusted.", lookup.SoldCount, lookup.AvgPrice),
		ROIExpect: fmt.Sprintf("%sx ($%s revenue); %s units. Max buy: $%s (fits $500-$12k, post-fees).",
			strconv.FormatFloat(p.Markup, 'f', -1, 64), whole(f.Revenue), oneDecimal(f.AnticipatedSales), whole(f.MaxBuy)),
		Profit:        fmt.Sprintf("$%d/unit; $%s total.", f.ProfitPerUnit, whole(f.TotalProfit)),
		ShippingCost:  fmt.Sprintf("$%d Modesto CA; $%d Federal Way WA.", p.ShipCA, p.ShipWA),
		SalesDuration: "7-14 days local (CA/WA demand).",
		DemandRating:  fmt.Sprintf("Med-High (Trends %d/100 rising, 50+ listings, high Oct seasonal).", p.TrendsScore),
		RisksTips: fmt.Sprintf(`30%% duds untested; List "Tested No Case—$%d" OfferUp. Speed: 20%% below market bundle, same-day meetups. Alt: Via Trading chargers $450 (100 units, data-backed 3x).`,
			lookup.AvgPrice),
	}
}

// whole rounds half away from zero, like the browser's toFixed(0).
func whole(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
}
