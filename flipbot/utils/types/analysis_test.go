package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntriesMatchJSONKeys(t *testing.T) {
	r := AnalysisResult{
		GoodBuy: "a", RealSoldData: "b", ROIExpect: "c", Profit: "d",
		ShippingCost: "e", SalesDuration: "f", DemandRating: "g", RisksTips: "h",
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))

	entries := r.Entries()
	require.Len(t, entries, len(decoded))
	for _, e := range entries {
		assert.Equal(t, decoded[e.Key], e.Value, e.Key)
	}
}
