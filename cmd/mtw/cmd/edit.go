// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the interactive table editor
// Author:      Mike Stoffels
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/msto63/mTW/internal/dataio"
	"github.com/msto63/mTW/internal/session"
	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/internal/tui"
	"github.com/msto63/mTW/pkg/core/config"
	"github.com/msto63/mTW/pkg/core/logging"
)

var editSheet string

var editCmd = &cobra.Command{
	Use:   "edit <datei>",
	Short: "Öffnet eine Tabelle im interaktiven Editor",
	Long: `Öffnet eine Tabellendatei im interaktiven Editor.

Anweisungen in natürlicher Sprache werden vom konfigurierten
Sprachmodell in Tabellenoperationen übersetzt und sofort auf die
Tabelle angewendet. Eine fehlende Datei wird beim ersten Speichern
angelegt.

Unterstützte Formate: CSV, XLSX

Tastenkürzel:
  Enter       Anweisung senden
  ↑/↓         Eingabe-Historie
  Ctrl+Z      Letzte Aktion rückgängig
  Ctrl+S      Speichern
  Ctrl+L      Modell wählen
  PgUp/PgDn   Im Verlauf scrollen
  Ctrl+C      Beenden`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editSheet, "sheet", "", "Tabellenblatt bei Excel-Dateien")
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Logs go to a file, stdout belongs to the alt screen
	initLogging(cfg, editLogWriter(cfg))

	file := args[0]
	var tbl *table.Table
	if _, err := os.Stat(file); err == nil {
		if editSheet != "" {
			tbl, err = dataio.LoadSheet(file, editSheet)
		} else {
			tbl, err = dataio.Load(file)
		}
		if err != nil {
			return fmt.Errorf("Datei konnte nicht geladen werden: %w", err)
		}
	}

	var store session.Store
	if cfg.Session.Enabled {
		s, err := session.NewSQLiteStore(session.Config{Path: cfg.Session.DatabasePath})
		if err != nil {
			logging.GetDefault().WarnWithErr("Sitzungsspeicher nicht verfügbar", err)
		} else {
			store = s
			defer s.Close()
		}
	}

	return tui.Run(tui.Config{
		File:  file,
		Table: tbl,
		Store: store,
		App:   cfg,
	})
}

// editLogWriter opens the log file under the data directory. Any
// failure silences logging rather than breaking the editor.
func editLogWriter(cfg *config.Config) io.Writer {
	dir := cfg.General.DataDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(filepath.Join(dir, "mtw.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return io.Discard
	}
	return f
}
