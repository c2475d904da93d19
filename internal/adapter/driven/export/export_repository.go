package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Funções de Exportação do Relatório de KPIs ---

func (r *ExportRepositoryImpl) ExportKPIsToCSV(kpis []entity.BucketKPI, comparisons []entity.ComparisonResult, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"Period", "Total",
		"Success", "Success Rate %",
		"Business Declines", "Business Rate %",
		"User Declines", "User Rate %",
		"Technical Declines", "Technical Rate %",
		"Success Rate Change", "Top Declines", "Narrative",
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	// comparações indexadas pelo período corrente do par
	compByPeriod := map[string]entity.ComparisonResult{}
	for _, c := range comparisons {
		compByPeriod[c.CurrentPeriod] = c
	}

	for _, kpi := range kpis {
		change := ""
		narrative := ""
		if c, ok := compByPeriod[kpi.PeriodKey]; ok {
			change = fmt.Sprintf("%+.2f", c.SuccessRateChange)
			narrative = c.Narrative
		}

		record := []string{
			kpi.PeriodKey,
			fmt.Sprintf("%d", kpi.Total),
			fmt.Sprintf("%d", kpi.Success.Count),
			fmt.Sprintf("%.2f", kpi.Success.Rate),
			fmt.Sprintf("%d", kpi.Business.Count),
			fmt.Sprintf("%.2f", kpi.Business.Rate),
			fmt.Sprintf("%d", kpi.User.Count),
			fmt.Sprintf("%.2f", kpi.User.Rate),
			fmt.Sprintf("%d", kpi.Technical.Count),
			fmt.Sprintf("%.2f", kpi.Technical.Rate),
			change,
			cleanRichTags(formatTopDeclines(kpi)),
			cleanRichTags(narrative),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportKPIsToJSON(kpis []entity.BucketKPI, comparisons []entity.ComparisonResult, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	payload := struct {
		KPIs        []entity.BucketKPI        `json:"kpis"`
		Comparisons []entity.ComparisonResult `json:"comparisons"`
	}{KPIs: kpis, Comparisons: comparisons}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportKPIsToPDF(kpis []entity.BucketKPI, comparisons []entity.ComparisonResult, summary, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{178, 34, 34}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		content = cleanRichTags(content)
		if strings.TrimSpace(content) == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	drawHeader := func(title string) {
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", title)), "", 1, "L", true, 0, "")
		pdf.Ln(8)
	}

	drawFooter := func(page int) {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("BoB Card Transaction Report | %s", time.Now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", page)), "", 0, "R", false, 0, "")
	}

	page := 1
	pdf.AddPage()
	drawHeader("Card Transaction Performance")
	drawSection("Executive Summary", summary)
	drawFooter(page)

	compByPeriod := map[string]entity.ComparisonResult{}
	for _, c := range comparisons {
		compByPeriod[c.CurrentPeriod] = c
	}

	for _, kpi := range kpis {
		page++
		pdf.AddPage()
		drawHeader(fmt.Sprintf("Period %s", kpi.PeriodKey))

		overview := fmt.Sprintf(
			"Total: %d\nSuccess: %d (%.2f%%)\nBusiness declines: %d (%.2f%%)\nUser declines: %d (%.2f%%)\nTechnical declines: %d (%.2f%%)",
			kpi.Total,
			kpi.Success.Count, kpi.Success.Rate,
			kpi.Business.Count, kpi.Business.Rate,
			kpi.User.Count, kpi.User.Rate,
			kpi.Technical.Count, kpi.Technical.Rate,
		)
		if c, ok := compByPeriod[kpi.PeriodKey]; ok {
			overview += fmt.Sprintf("\n\nSuccess rate change vs %s: %+.2f pp", c.PreviousPeriod, c.SuccessRateChange)
			if c.Narrative != "" {
				overview += "\n" + c.Narrative
			}
		}
		drawSection("Summary", overview)

		for _, category := range entity.DeclineCategories {
			records := kpi.TopDeclines[category]
			if len(records) == 0 {
				continue
			}
			var b strings.Builder
			for _, record := range records {
				desc := record.Description
				if desc == "" {
					desc = "(no description)"
				}
				b.WriteString(fmt.Sprintf("%s | %s: %d (%.2f%%)\n", record.Code, desc, record.Count, record.Percent))
			}
			drawSection(declineSectionTitle(category), b.String())
		}

		drawFooter(page)
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções de Exportação da Visão de Analytics ---

func (r *ExportRepositoryImpl) ExportAnalyticsToCSV(result entity.AnalyticsResult, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating analytics CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	write := func(record ...string) error {
		return writer.Write(record)
	}

	if err := write("Rows Loaded", "Rows Processed", "Invalid Rows", "Total Transactions"); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	_ = write(
		fmt.Sprintf("%d", result.RowsLoaded),
		fmt.Sprintf("%d", result.RowsProcessed),
		fmt.Sprintf("%d", result.InvalidRows),
		fmt.Sprintf("%d", result.TotalCount),
	)

	_ = write()
	_ = write("Channel", "Total", "Success", "Failures", "Volumes", "Average Ticket")
	for _, channel := range sortedChannels(result.Channels) {
		summary := result.Channels[channel]
		_ = write(
			string(channel),
			fmt.Sprintf("%d", summary.Total),
			fmt.Sprintf("%d", summary.Success),
			fmt.Sprintf("%d", summary.Failures),
			formatCurrencyAmounts(summary.CurrencyVolumes),
			formatCurrencyAmounts(summary.AverageTicket),
		)
	}

	_ = write()
	_ = write("Brand", "Total", "Volume", "MDR Revenue", "POS", "ATM", "IPG")
	for _, scheme := range sortedBrands(result.Brands) {
		summary := result.Brands[scheme]
		_ = write(
			string(scheme),
			fmt.Sprintf("%d", summary.Total),
			fmt.Sprintf("%.2f", summary.Volume),
			fmt.Sprintf("%.2f", summary.MDRRevenue),
			fmt.Sprintf("%d", summary.PerChannel[entity.ChannelPOS]),
			fmt.Sprintf("%d", summary.PerChannel[entity.ChannelATM]),
			fmt.Sprintf("%d", summary.PerChannel[entity.ChannelIPG]),
		)
	}

	_ = write()
	_ = write("Failure Category", "POS", "ATM", "IPG")
	for _, category := range entity.DeclineCategories {
		perChannel := result.FailureCategories[category]
		_ = write(
			string(category),
			fmt.Sprintf("%d", perChannel[entity.ChannelPOS]),
			fmt.Sprintf("%d", perChannel[entity.ChannelATM]),
			fmt.Sprintf("%d", perChannel[entity.ChannelIPG]),
		)
	}

	_ = write()
	_ = write("Failure Reason", "Channel", "Brand", "Category", "Count")
	for _, reason := range result.FailureReasons {
		if err := write(
			cleanRichTags(reason.Reason),
			string(reason.Channel),
			string(reason.Brand),
			string(reason.Category),
			fmt.Sprintf("%d", reason.Count),
		); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportAnalyticsToJSON(result entity.AnalyticsResult, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating analytics JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return "", fmt.Errorf("error encoding analytics JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportAnalyticsToPDF(result entity.AnalyticsResult, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{0, 102, 204}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		content = cleanRichTags(content)
		if strings.TrimSpace(content) == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  Raw Analytics Summary"), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Rows loaded: %d | processed: %d | invalid: %d",
		result.RowsLoaded, result.RowsProcessed, result.InvalidRows)), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	var overview strings.Builder
	overview.WriteString(fmt.Sprintf("Total transactions: %d\n", result.TotalCount))
	overview.WriteString("Volumes: " + formatCurrencyAmounts(result.CurrencyVolumes) + "\n")
	drawSection("Overview", overview.String())

	var channels strings.Builder
	for _, channel := range sortedChannels(result.Channels) {
		summary := result.Channels[channel]
		channels.WriteString(fmt.Sprintf("%s: total %d, success %d, failures %d\n", channel, summary.Total, summary.Success, summary.Failures))
		channels.WriteString(fmt.Sprintf("  volumes: %s\n", formatCurrencyAmounts(summary.CurrencyVolumes)))
		channels.WriteString(fmt.Sprintf("  avg ticket: %s\n", formatCurrencyAmounts(summary.AverageTicket)))
	}
	drawSection("Channels", channels.String())

	var brands strings.Builder
	for _, scheme := range sortedBrands(result.Brands) {
		summary := result.Brands[scheme]
		brands.WriteString(fmt.Sprintf("%s: total %d, volume %.2f, MDR revenue %.2f (POS %d / ATM %d / IPG %d)\n",
			scheme, summary.Total, summary.Volume, summary.MDRRevenue,
			summary.PerChannel[entity.ChannelPOS],
			summary.PerChannel[entity.ChannelATM],
			summary.PerChannel[entity.ChannelIPG]))
	}
	drawSection("Brands", brands.String())

	var failures strings.Builder
	for _, category := range entity.DeclineCategories {
		perChannel := result.FailureCategories[category]
		failures.WriteString(fmt.Sprintf("%s: POS %d, ATM %d, IPG %d\n",
			category,
			perChannel[entity.ChannelPOS],
			perChannel[entity.ChannelATM],
			perChannel[entity.ChannelIPG]))
	}
	drawSection("Failure Categories by Channel", failures.String())

	if len(result.FailureReasons) > 0 {
		var reasons strings.Builder
		limit := len(result.FailureReasons)
		if limit > 20 {
			limit = 20
		}
		for i := 0; i < limit; i++ {
			entry := result.FailureReasons[i]
			reasons.WriteString(fmt.Sprintf("%s | %s | %s | %s: %d\n",
				entry.Reason, entry.Channel, entry.Brand, entry.Category, entry.Count))
		}
		if len(result.FailureReasons) > limit {
			reasons.WriteString(fmt.Sprintf("... (+%d more)\n", len(result.FailureReasons)-limit))
		}
		drawSection("Top Failure Reasons", reasons.String())
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Raw Analytics | %s", time.Now().Format("2006-01-02"))), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, tr("Page 1"), "", 0, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing analytics PDF file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

func declineSectionTitle(category entity.Category) string {
	switch category {
	case entity.CategoryBusinessDecline:
		return "Top Business Declines"
	case entity.CategoryUserDecline:
		return "Top User Declines"
	case entity.CategoryTechnicalDecline:
		return "Top Technical Declines"
	}
	return "Top Declines"
}

func formatTopDeclines(kpi entity.BucketKPI) string {
	var lines []string
	for _, category := range entity.DeclineCategories {
		for _, record := range kpi.TopDeclines[category] {
			desc := record.Description
			if desc == "" {
				desc = "(no description)"
			}
			lines = append(lines, fmt.Sprintf("[%s] %s | %s: %d (%.2f%%)", category, record.Code, desc, record.Count, record.Percent))
		}
	}
	return strings.Join(lines, "\n")
}

func formatCurrencyAmounts(amounts map[entity.Currency]float64) string {
	currencies := make([]string, 0, len(amounts))
	for currency := range amounts {
		currencies = append(currencies, string(currency))
	}
	sort.Strings(currencies)

	var parts []string
	for _, currency := range currencies {
		parts = append(parts, fmt.Sprintf("%s %.2f", currency, amounts[entity.Currency(currency)]))
	}
	return strings.Join(parts, "; ")
}

func sortedChannels(channels map[entity.Channel]*entity.ChannelSummary) []entity.Channel {
	order := []entity.Channel{entity.ChannelPOS, entity.ChannelATM, entity.ChannelIPG}
	present := make([]entity.Channel, 0, len(channels))
	for _, channel := range order {
		if channels[channel] != nil {
			present = append(present, channel)
		}
	}
	return present
}

func sortedBrands(brands map[entity.Scheme]*entity.BrandSummary) []entity.Scheme {
	order := []entity.Scheme{entity.SchemeVisa, entity.SchemeMastercard, entity.SchemeAmex, entity.SchemeOther}
	present := make([]entity.Scheme, 0, len(brands))
	for _, scheme := range order {
		if brands[scheme] != nil {
			present = append(present, scheme)
		}
	}
	return present
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}
