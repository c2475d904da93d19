package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFileYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
files:
  - ledger_jan.csv
  - ledger_feb.csv
channel: POS
granularity: weekly
year: 2024
top_n: 5
report_type:
  - csv
  - pdf
mdr_rates:
  visa: 0.018
  amex: 0.026
`)

	config, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"ledger_jan.csv", "ledger_feb.csv"}, config.Files)
	assert.Equal(t, "POS", config.Channel)
	assert.Equal(t, "weekly", config.Granularity)
	assert.Equal(t, 2024, config.Year)
	assert.Equal(t, 5, config.TopN)
	assert.Equal(t, []string{"csv", "pdf"}, config.ReportType)

	// chaves de MDR normalizadas para maiúsculas
	assert.Equal(t, 0.018, config.MDRRates["VISA"])
	assert.Equal(t, 0.026, config.MDRRates["AMEX"])
	assert.NotContains(t, config.MDRRates, "visa")
}

func TestLoadConfigFileTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
files = ["ledger.csv"]
granularity = "quarterly"
report_name = "q_report"

[mdr_rates]
mastercard = 0.017
`)

	config, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"ledger.csv"}, config.Files)
	assert.Equal(t, "quarterly", config.Granularity)
	assert.Equal(t, "q_report", config.ReportName)
	assert.Equal(t, 0.017, config.MDRRates["MASTERCARD"])
}

func TestLoadConfigFileJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "files": ["ledger.csv"],
  "channel": "IPG",
  "analytics": true
}`)

	config, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "IPG", config.Channel)
	assert.True(t, config.Analytics)
}

func TestLoadConfigFileErrors(t *testing.T) {
	_, err := NewConfigRepository().LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error accessing config file")

	path := writeConfig(t, "config.ini", "[section]\nkey=value\n")
	_, err = NewConfigRepository().LoadConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file format")

	dir := t.TempDir()
	_, err = NewConfigRepository().LoadConfigFile(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}
