package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolatedEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("SEARCH_URL", "http://127.0.0.1:1/search")
	t.Setenv("SEARCH_TIMEOUT", "1s")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("MINIO_ENDPOINT", "")
	t.Setenv("POLICY_FILE", "")
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		_ = analyzeCmd.Flags().Set("manifest", "")
		_ = analyzeCmd.Flags().Set("file", "")
		_ = analyzeCmd.Flags().Set("json", "false")
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommandHasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["analyze"])
	assert.True(t, names["history"])
}

func TestAnalyzeCommandFlags(t *testing.T) {
	for _, name := range []string{"manifest", "file", "json"} {
		require.NotNil(t, analyzeCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "20", historyCmd.Flags().Lookup("limit").DefValue)
}

func TestAnalyzeJSON(t *testing.T) {
	isolatedEnv(t)

	out, err := execute(t, "", "analyze", "--manifest", "6 units sony untested $150 Garland, TX", "--json")
	require.NoError(t, err)

	var result map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result, 8)
	assert.Equal(t, "$136/unit; $1196 total.", result["Profit/Unit & Total"])
}

func TestAnalyzeStdinAndFile(t *testing.T) {
	isolatedEnv(t)
	path := filepath.Join(t.TempDir(), "lot.csv")
	require.NoError(t, os.WriteFile(path, []byte("brand,qty\ndewalt,10 units\n"), 0o644))

	out, err := execute(t, "bid $40\n", "analyze", "--manifest", "-", "--file", path, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "10 units · dewalt")
	assert.Contains(t, out, "- ROI Expect: 3x ($1200 revenue)")

	_, err = os.Stat(path)
	assert.NoError(t, err, "a local file must not be removed")
}

func TestAnalyzeMissingFile(t *testing.T) {
	isolatedEnv(t)

	_, err := execute(t, "", "analyze", "--file", filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
}

func TestHistoryDisabled(t *testing.T) {
	isolatedEnv(t)

	_, err := execute(t, "", "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history is disabled")
}
