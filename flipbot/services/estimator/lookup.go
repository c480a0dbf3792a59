package estimator

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"flipbot/flipbot/utils/logging"
	"flipbot/flipbot/utils/types"

	"go.uber.org/zap"
)

var (
	countPattern = regexp.MustCompile(`\d[\d,]*`)
	pricePattern = regexp.MustCompile(`\$(\d[\d,]*)`)
)

// Searcher returns the text of the first result for a web search.
type Searcher interface {
	FirstResult(ctx context.Context, query string) (string, error)
}

// lookup asks the search page for sold data on brand. The page has no stable
// structure, so anything short of both numbers leaves the defaults in place
// and says why.
func (e *Estimator) lookup(ctx context.Context, brand string) types.LookupOutcome {
	out := types.LookupOutcome{
		Query:     fmt.Sprintf(e.policy.SearchQuery, brand),
		SoldCount: e.policy.DefaultSoldCount,
		AvgPrice:  e.policy.DefaultAvgPrice,
	}
	if e.search == nil {
		out.Reason = "lookup disabled"
		return out
	}

	snippet, err := e.search.FirstResult(ctx, out.Query)
	if err != nil {
		out.Reason = err.Error()
		logging.AppLogger.Info("sold-data lookup failed, using defaults", zap.String("query", out.Query), zap.Error(err))
		return out
	}

	sold, soldOK := firstInt(countPattern.FindString(snippet))
	price, priceOK := 0, false
	if m := pricePattern.FindStringSubmatch(snippet); m != nil {
		price, priceOK = firstInt(m[1])
	}
	if soldOK {
		out.SoldCount = sold
	}
	if priceOK {
		out.AvgPrice = price
	}

	switch {
	case soldOK && priceOK:
		out.Live = true
	case !soldOK && !priceOK:
		out.Reason = "no numbers in first result"
	case !soldOK:
		out.Reason = "no sold count in first result"
	default:
		out.Reason = "no price in first result"
	}
	return out
}

// firstInt parses a possibly comma-grouped integer. Zero counts as missing.
func firstInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
