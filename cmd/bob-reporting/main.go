package main

import (
	"fmt"
	"os"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/adapter/driven/config"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/adapter/driven/export"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/adapter/driven/ledger"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/adapter/driving/cli"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/application/usecase"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/pkg/console"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	ledgerRepo := ledger.NewCSVRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	reportUseCase := usecase.NewReportUseCase(
		ledgerRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetReportUseCase(reportUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
