package estimator

import (
	"regexp"
	"strconv"
	"strings"

	"flipbot/flipbot/config"
	"flipbot/flipbot/utils/types"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	unitsPattern    = regexp.MustCompile(`(?i)(\d+) units?`)
	dollarPattern   = regexp.MustCompile(`\$(\d[\d,]*(?:\.\d{2})?)`)
	decimalPattern  = regexp.MustCompile(`\b(\d+\.\d{2})\b`)
	locationPattern = regexp.MustCompile(`(?i)\b([a-z]+(?: [a-z]+){0,2}), ([a-z]{2})\b`)
)

// FieldExtractor reads ExtractedItems out of a blob using a policy's
// vocabulary and fallbacks. It holds no per-request state.
type FieldExtractor struct {
	policy      config.Policy
	brandRe     *regexp.Regexp
	conditionRe *regexp.Regexp
	vocabulary  map[string]bool
}

func NewFieldExtractor(p config.Policy) *FieldExtractor {
	vocab := map[string]bool{"unit": true, "units": true}
	for _, term := range append(append([]string{}, p.Brands...), p.Conditions...) {
		for _, w := range strings.Fields(strings.ToLower(term)) {
			vocab[w] = true
		}
	}
	return &FieldExtractor{
		policy:      p,
		brandRe:     alternation(p.Brands),
		conditionRe: alternation(p.Conditions),
		vocabulary:  vocab,
	}
}

func alternation(terms []string) *regexp.Regexp {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(t))
	}
	return regexp.MustCompile(`(?i)(` + strings.Join(quoted, "|") + `)`)
}

// Extract never fails: every field that does not match, or parses to zero,
// takes the policy default.
func (f *FieldExtractor) Extract(blob string) types.ExtractedItems {
	return types.ExtractedItems{
		Units:     f.units(blob),
		Brand:     f.firstOf(f.brandRe, blob, f.policy.DefaultBrand),
		Condition: f.firstOf(f.conditionRe, blob, f.policy.DefaultCondition),
		Bid:       f.bid(blob),
		Location:  f.location(blob),
	}
}

func (f *FieldExtractor) units(blob string) int {
	m := unitsPattern.FindStringSubmatch(blob)
	if m == nil {
		return f.policy.DefaultUnits
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n == 0 {
		return f.policy.DefaultUnits
	}
	return n
}

func (f *FieldExtractor) firstOf(re *regexp.Regexp, blob, fallback string) string {
	if m := re.FindString(blob); m != "" {
		return strings.ToLower(m)
	}
	return fallback
}

// bid prefers a dollar amount and only then looks for a bare decimal like
// 149.99, so unit counts are not mistaken for prices.
func (f *FieldExtractor) bid(blob string) float64 {
	raw := ""
	if m := dollarPattern.FindStringSubmatch(blob); m != nil {
		raw = strings.ReplaceAll(m[1], ",", "")
	} else if m := decimalPattern.FindStringSubmatch(blob); m != nil {
		raw = m[1]
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v == 0 {
		return f.policy.DefaultBid
	}
	return v
}

func (f *FieldExtractor) location(blob string) string {
	for _, m := range locationPattern.FindAllStringSubmatch(blob, -1) {
		words := strings.Fields(strings.ToLower(m[1]))
		for len(words) > 0 && f.vocabulary[words[0]] {
			words = words[1:]
		}
		if len(words) == 0 {
			continue
		}
		// a Caser must not be shared between goroutines
		return cases.Title(language.English).String(strings.Join(words, " ")) + ", " + strings.ToUpper(m[2])
	}
	return f.policy.DefaultLocation
}
