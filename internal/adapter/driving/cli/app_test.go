package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	app := NewCLIApp("1.0.0")
	require.NoError(t, app.rootCmd.ParseFlags([]string{
		"--file", "jan.csv,feb.csv",
		"--channel", "POS",
		"--granularity", "weekly",
		"--year", "2024",
		"--top", "5",
		"--report-type", "csv,pdf",
		"--analytics",
		"--summary",
	}))

	args, err := app.parseArgs()
	require.NoError(t, err)

	assert.Equal(t, []string{"jan.csv", "feb.csv"}, args.Files)
	assert.Equal(t, "POS", args.Channel)
	assert.Equal(t, "weekly", args.Granularity)
	assert.Equal(t, 2024, args.Year)
	assert.Equal(t, 5, args.TopN)
	assert.Equal(t, []string{"csv", "pdf"}, args.ReportType)
	assert.True(t, args.Analytics)
	assert.True(t, args.Summary)
}

func TestParseArgsDefaults(t *testing.T) {
	app := NewCLIApp("1.0.0")
	require.NoError(t, app.rootCmd.ParseFlags(nil))

	args, err := app.parseArgs()
	require.NoError(t, err)

	assert.Empty(t, args.Files)
	assert.Empty(t, args.Channel)
	assert.Empty(t, args.Granularity)
	assert.Zero(t, args.Year)
	assert.Zero(t, args.TopN)
	assert.Empty(t, args.ReportType)
	assert.False(t, args.Analytics)
	// o diretório padrão só é resolvido depois do merge com o config
	assert.Empty(t, args.Dir)
}
