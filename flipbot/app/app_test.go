package app

import (
	"context"
	"testing"

	"flipbot/flipbot/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutOptionalComponents(t *testing.T) {
	cfg := config.Config{
		Port:           "8000",
		SearchURL:      "http://127.0.0.1:1/search",
		SearchPerMin:   30,
		ScrapeMaxChars: 2000,
		PdfToTextPath:  "pdftotext",
		TesseractPath:  "tesseract",
	}
	a := New(context.Background(), cfg, config.DefaultPolicy())
	defer a.Close()

	require.NotNil(t, a.Analyze)
	require.NotNil(t, a.Health)
	assert.Nil(t, a.History)
	assert.Empty(t, a.closers)

	analysis, err := a.Analyze.Analyze(context.Background(), "6 units sony untested $150", nil)
	require.NoError(t, err)
	assert.Equal(t, "$136/unit; $1196 total.", analysis.Result.Profit)
	assert.False(t, analysis.Lookup.Live)
}
