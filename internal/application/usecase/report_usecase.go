package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/engine"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/repository"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/shared/types"
	"github.com/pterm/pterm"
)

const streamBatchSize = 1000

// ReportUseCase orquestra o pipeline de relatórios do ledger de cartões.
type ReportUseCase struct {
	ledgerRepo repository.LedgerRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface

	mdrRates map[entity.Scheme]float64
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	ledgerRepo repository.LedgerRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		ledgerRepo: ledgerRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
	}
}

// ResolveArgs funde o arquivo de configuração (quando informado) com os
// argumentos da CLI. Flags explícitas vencem sobre o arquivo.
func (uc *ReportUseCase) ResolveArgs(args *types.CLIArgs) error {
	if args.ConfigFile == "" {
		return nil
	}

	config, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return fmt.Errorf("error loading config file: %w", err)
	}

	if len(args.Files) == 0 {
		args.Files = config.Files
	}
	if args.Channel == "" {
		args.Channel = config.Channel
	}
	if args.Scheme == "" {
		args.Scheme = config.Scheme
	}
	if args.Granularity == "" {
		args.Granularity = config.Granularity
	}
	if args.Year == 0 {
		args.Year = config.Year
	}
	if args.TopN == 0 {
		args.TopN = config.TopN
	}
	if args.ReportName == "" {
		args.ReportName = config.ReportName
	}
	if len(args.ReportType) == 0 {
		args.ReportType = config.ReportType
	}
	if args.Dir == "" {
		args.Dir = config.Dir
	}
	if !args.Analytics {
		args.Analytics = config.Analytics
	}

	if len(config.MDRRates) > 0 {
		uc.mdrRates = make(map[entity.Scheme]float64, len(config.MDRRates))
		for scheme, mdrRate := range config.MDRRates {
			uc.mdrRates[entity.Scheme(strings.ToUpper(scheme))] = mdrRate
		}
	}

	return nil
}

// Run despacha para o relatório de KPIs ou para a visão de analytics.
func (uc *ReportUseCase) Run(ctx context.Context, args *types.CLIArgs) error {
	if len(args.Files) == 0 {
		return fmt.Errorf("no ledger files given; use --file or a config file")
	}

	if args.Analytics {
		return uc.RunAnalytics(ctx, args)
	}
	return uc.RunReport(ctx, args)
}

// RunReport executa o pipeline completo: carga, normalização, bucketing,
// classificação, KPIs por período e comparação entre períodos consecutivos.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	granularity, err := engine.ParseGranularity(args.Granularity)
	if err != nil {
		return err
	}

	status := uc.console.Status("Loading ledger files...")
	var rows []entity.RawRow
	for _, file := range args.Files {
		status.Update(fmt.Sprintf("Loading %s...", file))
		fileRows, err := uc.ledgerRepo.LoadRows(ctx, file)
		if err != nil {
			status.Stop()
			return fmt.Errorf("error loading ledger file '%s': %w", file, err)
		}
		rows = append(rows, fileRows...)
	}

	status.Update("Normalizing transactions...")
	txns, dropped := engine.NormalizeAll(rows)
	status.Stop()

	if dropped > 0 {
		uc.console.LogWarning("%d rows dropped during normalization (bad dates or empty codes)", dropped)
	}
	if len(txns) == 0 {
		return types.ErrNoValidRows
	}

	channelFilter := filterChannel(args.Channel)
	txns = filterTransactions(txns, channelFilter, filterScheme(args.Scheme))
	if len(txns) == 0 {
		return types.ErrNoValidRows
	}

	buckets := engine.Assign(txns, granularity, args.Year)
	if len(buckets) == 0 {
		return types.ErrNoValidRows
	}

	classifier := engine.NewClassifier(engine.DefaultCodeTables())
	aggregator := engine.NewKPIAggregator(classifier)
	kpis := aggregator.Compute(buckets, channelFilter, args.TopN)
	comparisons := engine.Compare(kpis)

	uc.displayKPIs(kpis, comparisons)

	summary := engine.ExecutiveSummary(kpis, comparisons)
	if args.Summary {
		uc.console.Println()
		panel := pterm.DefaultBox.WithTitle("Executive Summary").Sprint(summary)
		uc.console.Println(panel)
	}

	return uc.exportKPIs(kpis, comparisons, summary, args)
}

// RunAnalytics processa o ledger em streaming, acumulando a visão
// transversal de canais, bandeiras e razões de falha.
func (uc *ReportUseCase) RunAnalytics(ctx context.Context, args *types.CLIArgs) error {
	classifier := engine.NewClassifier(engine.DefaultCodeTables())
	rollup := engine.NewRollup(classifier, uc.mdrRates)

	progress := uc.console.ProgressWithTotal(len(args.Files))
	for _, file := range args.Files {
		err := uc.ledgerRepo.StreamRows(ctx, file, streamBatchSize, func(batch []entity.RawRow) error {
			rollup.AddBatch(batch)
			return nil
		})
		if err != nil {
			progress.Stop()
			return fmt.Errorf("error streaming ledger file '%s': %w", file, err)
		}
		progress.Increment()
	}
	progress.Stop()

	result, err := rollup.Finalize()
	if err != nil {
		return err
	}

	uc.displayAnalytics(result)
	return uc.exportAnalytics(result, args)
}

// --- Filtros ---

func filterChannel(raw string) entity.Channel {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return engine.NormalizeChannel(raw)
}

func filterScheme(raw string) entity.Scheme {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return engine.NormalizeScheme(raw)
}

func filterTransactions(txns []entity.Transaction, channel entity.Channel, scheme entity.Scheme) []entity.Transaction {
	if channel == "" && scheme == "" {
		return txns
	}
	filtered := make([]entity.Transaction, 0, len(txns))
	for _, txn := range txns {
		if channel != "" && txn.Channel != channel {
			continue
		}
		if scheme != "" && txn.Scheme != scheme {
			continue
		}
		filtered = append(filtered, txn)
	}
	return filtered
}

// --- Renderização ---

func (uc *ReportUseCase) displayKPIs(kpis []entity.BucketKPI, comparisons []entity.ComparisonResult) {
	table := uc.console.CreateTable()
	table.AddColumn("Period")
	table.AddColumn("Total")
	table.AddColumn("Success")
	table.AddColumn("Business")
	table.AddColumn("User")
	table.AddColumn("Technical")
	table.AddColumn("Change")

	compByPeriod := map[string]entity.ComparisonResult{}
	for _, c := range comparisons {
		compByPeriod[c.CurrentPeriod] = c
	}

	for _, kpi := range kpis {
		change := ""
		if c, ok := compByPeriod[kpi.PeriodKey]; ok {
			if c.SuccessRateChange >= 0 {
				change = pterm.FgGreen.Sprintf("+%.2f pp", c.SuccessRateChange)
			} else {
				change = pterm.FgRed.Sprintf("%.2f pp", c.SuccessRateChange)
			}
		}
		table.AddRow(
			kpi.PeriodKey,
			kpi.Total,
			fmt.Sprintf("%d (%.2f%%)", kpi.Success.Count, kpi.Success.Rate),
			fmt.Sprintf("%d (%.2f%%)", kpi.Business.Count, kpi.Business.Rate),
			fmt.Sprintf("%d (%.2f%%)", kpi.User.Count, kpi.User.Rate),
			fmt.Sprintf("%d (%.2f%%)", kpi.Technical.Count, kpi.Technical.Rate),
			change,
		)
	}
	uc.console.Println(table.Render())

	// Gráfico de tendência da taxa de sucesso
	rates := make([]types.PeriodRate, 0, len(kpis))
	for _, kpi := range kpis {
		rates = append(rates, types.PeriodRate{
			Period:      kpi.PeriodKey,
			SuccessRate: kpi.Success.Rate,
			Total:       kpi.Total,
		})
	}
	uc.console.DisplayRateBars(rates)

	// Top declines por período
	for _, kpi := range kpis {
		printed := false
		for _, category := range entity.DeclineCategories {
			records := kpi.TopDeclines[category]
			if len(records) == 0 {
				continue
			}
			if !printed {
				uc.console.Println()
				uc.console.Printf("Top declines for %s:\n", kpi.PeriodKey)
				printed = true
			}
			stats := kpi.StatsFor(category)
			uc.console.Printf("  %s: %d (%.2f%%)\n", category, stats.Count, stats.Rate)
			for _, record := range records {
				desc := record.Description
				if desc == "" {
					desc = "(no description)"
				}
				uc.console.Printf("    %s %s: %d (%.2f%%)\n", record.Code, desc, record.Count, record.Percent)
			}
		}
	}

	// Narrativas dos movimentos entre períodos
	for _, c := range comparisons {
		if c.Narrative != "" {
			uc.console.LogInfo("%s", c.Narrative)
		}
	}
}

func (uc *ReportUseCase) displayAnalytics(result entity.AnalyticsResult) {
	uc.console.LogInfo("Rows loaded: %d | processed: %d | invalid: %d", result.RowsLoaded, result.RowsProcessed, result.InvalidRows)

	channels := uc.console.CreateTable()
	channels.AddColumn("Channel")
	channels.AddColumn("Total")
	channels.AddColumn("Success")
	channels.AddColumn("Failures")
	channels.AddColumn("Avg Ticket")
	for _, channel := range []entity.Channel{entity.ChannelPOS, entity.ChannelATM, entity.ChannelIPG} {
		summary := result.Channels[channel]
		if summary == nil {
			continue
		}
		channels.AddRow(
			string(channel),
			summary.Total,
			summary.Success,
			summary.Failures,
			formatAmounts(summary.AverageTicket),
		)
	}
	uc.console.Println(channels.Render())

	brands := uc.console.CreateTable()
	brands.AddColumn("Brand")
	brands.AddColumn("Total")
	brands.AddColumn("Volume")
	brands.AddColumn("MDR Revenue")
	for _, scheme := range []entity.Scheme{entity.SchemeVisa, entity.SchemeMastercard, entity.SchemeAmex, entity.SchemeOther} {
		summary := result.Brands[scheme]
		if summary == nil {
			continue
		}
		brands.AddRow(
			string(scheme),
			summary.Total,
			fmt.Sprintf("%.2f", summary.Volume),
			fmt.Sprintf("%.2f", summary.MDRRevenue),
		)
	}
	uc.console.Println(brands.Render())

	if len(result.FailureReasons) > 0 {
		reasons := uc.console.CreateTable()
		reasons.AddColumn("Failure Reason")
		reasons.AddColumn("Channel")
		reasons.AddColumn("Brand")
		reasons.AddColumn("Category")
		reasons.AddColumn("Count")
		limit := len(result.FailureReasons)
		if limit > 15 {
			limit = 15
		}
		for i := 0; i < limit; i++ {
			entry := result.FailureReasons[i]
			reasons.AddRow(entry.Reason, string(entry.Channel), string(entry.Brand), string(entry.Category), entry.Count)
		}
		uc.console.Println(reasons.Render())
	}
}

func formatAmounts(amounts map[entity.Currency]float64) string {
	var parts []string
	for _, currency := range []entity.Currency{entity.CurrencyBTN, entity.CurrencyUSD, entity.CurrencyINR} {
		if amount, ok := amounts[currency]; ok {
			parts = append(parts, fmt.Sprintf("%s %.2f", currency, amount))
		}
	}
	return strings.Join(parts, "; ")
}

// --- Exportação ---

func (uc *ReportUseCase) exportKPIs(kpis []entity.BucketKPI, comparisons []entity.ComparisonResult, summary string, args *types.CLIArgs) error {
	if len(args.ReportType) == 0 {
		return nil
	}

	reportName := args.ReportName
	if reportName == "" {
		reportName = "card_kpi_report"
	}

	for _, reportType := range args.ReportType {
		switch strings.ToLower(strings.TrimSpace(reportType)) {
		case "csv":
			path, err := uc.exportRepo.ExportKPIsToCSV(kpis, comparisons, reportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export CSV: %v", err)
			} else {
				uc.console.LogSuccess("Exported CSV report to %s", path)
			}
		case "json":
			path, err := uc.exportRepo.ExportKPIsToJSON(kpis, comparisons, reportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export JSON: %v", err)
			} else {
				uc.console.LogSuccess("Exported JSON report to %s", path)
			}
		case "pdf":
			path, err := uc.exportRepo.ExportKPIsToPDF(kpis, comparisons, summary, reportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export PDF: %v", err)
			} else {
				uc.console.LogSuccess("Exported PDF report to %s", path)
			}
		default:
			uc.console.LogWarning("Unknown report type '%s' (expected csv, json or pdf)", reportType)
		}
	}
	return nil
}

func (uc *ReportUseCase) exportAnalytics(result entity.AnalyticsResult, args *types.CLIArgs) error {
	if len(args.ReportType) == 0 {
		return nil
	}

	reportName := args.ReportName
	if reportName == "" {
		reportName = "card_analytics"
	}

	for _, reportType := range args.ReportType {
		switch strings.ToLower(strings.TrimSpace(reportType)) {
		case "csv":
			path, err := uc.exportRepo.ExportAnalyticsToCSV(result, reportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export CSV: %v", err)
			} else {
				uc.console.LogSuccess("Exported CSV analytics to %s", path)
			}
		case "json":
			path, err := uc.exportRepo.ExportAnalyticsToJSON(result, reportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export JSON: %v", err)
			} else {
				uc.console.LogSuccess("Exported JSON analytics to %s", path)
			}
		case "pdf":
			path, err := uc.exportRepo.ExportAnalyticsToPDF(result, reportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export PDF: %v", err)
			} else {
				uc.console.LogSuccess("Exported PDF analytics to %s", path)
			}
		default:
			uc.console.LogWarning("Unknown report type '%s' (expected csv, json or pdf)", reportType)
		}
	}
	return nil
}
