package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/mTW/pkg/core/config"
	"github.com/msto63/mTW/pkg/core/logging"
	"github.com/msto63/mTW/pkg/core/version"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mtw",
	Short: "meinTABELLENWERK - Lokaler KI-Tabellen-Agent",
	Long: `meinTABELLENWERK bearbeitet tabellarische Daten über Anweisungen
in natürlicher Sprache. Ein lokales oder entferntes Sprachmodell
übersetzt die Anweisungen in geprüfte Tabellenoperationen.

Befehle:
  edit     - Interaktiver Editor für eine Tabellendatei
  exec     - Befehlsplan ohne Oberfläche ausführen
  convert  - Tabellendatei in ein anderes Format umwandeln
  version  - Versionsinformationen anzeigen`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}

// loadConfig resolves the configuration: an explicit --config path
// must exist, otherwise the default locations are searched
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadFromEnv()
}

// initLogging replaces the default logger with one configured from
// the loaded settings. --verbose forces debug level.
func initLogging(cfg *config.Config, output io.Writer) {
	level := logging.ParseLevel(cfg.General.LogLevel)
	if verbose {
		level = logging.LevelDebug
	}
	logging.SetDefault(logging.NewWithConfig(logging.Config{
		Level:  level,
		Format: logging.ParseFormat(cfg.General.LogFormat),
		Output: output,
		Name:   version.ShortName,
	}))
}
