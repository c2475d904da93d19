package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/adapter/driven/config"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/adapter/driven/export"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/adapter/driven/ledger"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConsole captura a saída sem tocar no terminal.
type fakeConsole struct {
	infos    []string
	warnings []string
	errors   []string
}

func (c *fakeConsole) Print(a ...interface{})                 {}
func (c *fakeConsole) Printf(format string, a ...interface{}) {}
func (c *fakeConsole) Println(a ...interface{})               {}

func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {}

func (c *fakeConsole) Status(message string) types.StatusHandle { return noopHandle{} }

func (c *fakeConsole) ProgressWithTotal(total int) types.ProgressHandle {
	return noopHandle{}
}

func (c *fakeConsole) CreateTable() types.TableInterface        { return &fakeTable{} }
func (c *fakeConsole) DisplayRateBars(rates []types.PeriodRate) {}

type noopHandle struct{}

func (noopHandle) Update(message string) {}
func (noopHandle) Increment()            {}
func (noopHandle) Stop()                 {}

type fakeTable struct{}

func (t *fakeTable) AddColumn(name string, options ...interface{}) {}
func (t *fakeTable) AddRow(cells ...interface{})                   {}
func (t *fakeTable) Render() string                                { return "" }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestUseCase(console *fakeConsole) *ReportUseCase {
	return NewReportUseCase(
		ledger.NewCSVRepository(),
		export.NewExportRepository(),
		config.NewConfigRepository(),
		console,
	)
}

const sampleLedger = `date,channel,responsecode,responsedescription,scheme,amount,currency
2024-01-05,POS,00,Approved,VISA,100,BTN
2024-01-06,POS,51,Insufficient funds,VISA,200,BTN
2024-01-07,POS,00,Approved,MASTERCARD,150,BTN
2024-02-05,POS,00,Approved,VISA,120,BTN
2024-02-06,POS,00,Approved,VISA,90,BTN
2024-02-07,IPG,91,,AMEX,60,USD
`

func TestRunReportEndToEnd(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := writeFile(t, dir, "ledger.csv", sampleLedger)

	console := &fakeConsole{}
	uc := newTestUseCase(console)

	reportDir := filepath.Join(dir, "out")
	err := uc.Run(context.Background(), &types.CLIArgs{
		Files:       []string{ledgerPath},
		Granularity: "monthly",
		ReportName:  "kpi",
		ReportType:  []string{"csv", "json"},
		Dir:         reportDir,
		Summary:     true,
	})
	require.NoError(t, err)
	assert.Empty(t, console.errors)

	entries, err := os.ReadDir(reportDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRunReportNoFiles(t *testing.T) {
	uc := newTestUseCase(&fakeConsole{})
	err := uc.Run(context.Background(), &types.CLIArgs{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ledger files")
}

func TestRunReportAllRowsInvalid(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := writeFile(t, dir, "ledger.csv", "date,responsecode\nnot-a-date,00\n")

	uc := newTestUseCase(&fakeConsole{})
	err := uc.Run(context.Background(), &types.CLIArgs{Files: []string{ledgerPath}})
	assert.ErrorIs(t, err, types.ErrNoValidRows)
}

func TestRunReportChannelFilterEmpty(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := writeFile(t, dir, "ledger.csv", sampleLedger)

	// nenhum registro ATM no extrato
	uc := newTestUseCase(&fakeConsole{})
	err := uc.Run(context.Background(), &types.CLIArgs{
		Files:   []string{ledgerPath},
		Channel: "ATM",
	})
	assert.ErrorIs(t, err, types.ErrNoValidRows)
}

func TestRunReportBadGranularity(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := writeFile(t, dir, "ledger.csv", sampleLedger)

	uc := newTestUseCase(&fakeConsole{})
	err := uc.Run(context.Background(), &types.CLIArgs{
		Files:       []string{ledgerPath},
		Granularity: "hourly",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown granularity")
}

func TestRunAnalyticsEndToEnd(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := writeFile(t, dir, "ledger.csv", sampleLedger)

	console := &fakeConsole{}
	uc := newTestUseCase(console)

	err := uc.Run(context.Background(), &types.CLIArgs{
		Files:     []string{ledgerPath},
		Analytics: true,
	})
	require.NoError(t, err)

	require.NotEmpty(t, console.infos)
	assert.Contains(t, console.infos[0], "Rows loaded: 6")
}

func TestResolveArgsFlagsWinOverConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yaml", `
files:
  - from_config.csv
channel: IPG
granularity: weekly
top_n: 3
`)

	uc := newTestUseCase(&fakeConsole{})
	args := &types.CLIArgs{
		ConfigFile: configPath,
		Channel:    "POS", // flag explícita vence
	}
	require.NoError(t, uc.ResolveArgs(args))

	assert.Equal(t, []string{"from_config.csv"}, args.Files)
	assert.Equal(t, "POS", args.Channel)
	assert.Equal(t, "weekly", args.Granularity)
	assert.Equal(t, 3, args.TopN)
}

func TestResolveArgsMDRRates(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yaml", `
mdr_rates:
  visa: 0.02
`)

	uc := newTestUseCase(&fakeConsole{})
	require.NoError(t, uc.ResolveArgs(&types.CLIArgs{ConfigFile: configPath}))
	require.NotNil(t, uc.mdrRates)
	assert.Equal(t, 0.02, uc.mdrRates["VISA"])
}

func TestResolveArgsNoConfigFile(t *testing.T) {
	uc := newTestUseCase(&fakeConsole{})
	args := &types.CLIArgs{Channel: "POS"}
	require.NoError(t, uc.ResolveArgs(args))
	assert.Equal(t, "POS", args.Channel)
}
