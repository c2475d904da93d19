package cli

import (
	"fmt"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$$            /$$$$$$$         /$$$$$$$                                          /$$
        | $$__  $$          | $$__  $$       | $$__  $$                                        | $$
        | $$  \ $$  /$$$$$$ | $$  \ $$       | $$  \ $$  /$$$$$$   /$$$$$$   /$$$$$$   /$$$$$$ | $$$$$$$
        | $$$$$$$  /$$__  $$| $$$$$$$        | $$$$$$$/ /$$__  $$ /$$__  $$ /$$__  $$ /$$__  $$|_  $$_/
        | $$__  $$| $$  \ $$| $$__  $$       | $$__  $$| $$$$$$$$| $$  \ $$| $$  \ $$| $$  \__/  | $$
        | $$  \ $$| $$  | $$| $$  \ $$       | $$  \ $$| $$_____/| $$  | $$| $$  | $$| $$        | $$ /$$
        | $$$$$$$/|  $$$$$$/| $$$$$$$/       | $$  | $$|  $$$$$$$| $$$$$$$/|  $$$$$$/| $$        |  $$$$/
        |_______/  \______/ |_______/        |__/  |__/ \_______/| $$____/  \______/ |__/         \___/
                                                                 | $$
                                                                 | $$
                                                                 |__/
        `
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(yellow(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Bank of Bhutan Card Reporting CLI (v%s)", formattedVersion)))
}
