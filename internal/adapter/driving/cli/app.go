package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/pkg/version"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/application/usecase"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/shared/types"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	version       string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "bob-reporting",
		Short:   "Bank of Bhutan card transaction reporting CLI",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "BoB Card Reporting version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringSliceP("file", "f", nil, "Ledger CSV files to process (comma-separated)")
	rootCmd.PersistentFlags().StringP("channel", "c", "", "Restrict the report to one channel: POS, ATM or IPG")
	rootCmd.PersistentFlags().StringP("scheme", "s", "", "Restrict the report to one card scheme: VISA, MASTERCARD or AMEX")
	rootCmd.PersistentFlags().StringP("granularity", "g", "", "Bucket granularity: daily, weekly, monthly, quarterly or yearly (default: monthly)")
	rootCmd.PersistentFlags().IntP("year", "Y", 0, "Only include transactions from this calendar year")
	rootCmd.PersistentFlags().IntP("top", "t", 0, "Number of top decline codes per category (default: 10)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Specify report types: csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().Bool("analytics", false, "Display the cross-channel analytics view instead of period KPIs")
	rootCmd.PersistentFlags().Bool("summary", false, "Display an executive summary of the reporting window")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	configFile, _ := app.rootCmd.Flags().GetString("config-file")
	files, _ := app.rootCmd.Flags().GetStringSlice("file")
	channel, _ := app.rootCmd.Flags().GetString("channel")
	scheme, _ := app.rootCmd.Flags().GetString("scheme")
	granularity, _ := app.rootCmd.Flags().GetString("granularity")
	year, _ := app.rootCmd.Flags().GetInt("year")
	topN, _ := app.rootCmd.Flags().GetInt("top")
	reportName, _ := app.rootCmd.Flags().GetString("report-name")
	reportType, _ := app.rootCmd.Flags().GetStringSlice("report-type")
	dir, _ := app.rootCmd.Flags().GetString("dir")
	analytics, _ := app.rootCmd.Flags().GetBool("analytics")
	summary, _ := app.rootCmd.Flags().GetBool("summary")

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile:  configFile,
		Files:       files,
		Channel:     channel,
		Scheme:      scheme,
		Granularity: granularity,
		Year:        year,
		TopN:        topN,
		ReportName:  reportName,
		ReportType:  reportType,
		Dir:         dir,
		Analytics:   analytics,
		Summary:     summary,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	// Mescla o arquivo de configuração (flags explícitas vencem)
	if err := app.reportUseCase.ResolveArgs(cliArgs); err != nil {
		return err
	}

	// Diretório padrão só depois do merge, para não mascarar o valor do arquivo
	if cliArgs.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		cliArgs.Dir = cwd
	}

	ctx := context.Background()
	return app.reportUseCase.Run(ctx, cliArgs)
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}
