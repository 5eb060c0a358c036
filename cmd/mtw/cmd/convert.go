// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     cmd
// Description: CLI command for file format conversion
// Author:      Mike Stoffels
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/mTW/internal/dataio"
	"github.com/msto63/mTW/internal/table"
)

var convertSheet string

var convertCmd = &cobra.Command{
	Use:   "convert <eingabe> <ausgabe>",
	Short: "Wandelt eine Tabellendatei in ein anderes Format um",
	Long: `Wandelt eine Tabellendatei in ein anderes Format um. Die Formate
werden an den Dateiendungen erkannt.

Unterstützte Formate: CSV, XLSX

Beispiele:
  mtw convert umsatz.xlsx umsatz.csv
  mtw convert daten.csv daten.xlsx
  mtw convert bericht.xlsx --sheet "Q3" q3.csv`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertSheet, "sheet", "", "Tabellenblatt bei Excel-Dateien")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	initLogging(cfg, os.Stderr)

	in, out := args[0], args[1]
	var tbl *table.Table
	if convertSheet != "" {
		tbl, err = dataio.LoadSheet(in, convertSheet)
	} else {
		tbl, err = dataio.Load(in)
	}
	if err != nil {
		return fmt.Errorf("Datei konnte nicht geladen werden: %w", err)
	}

	if err := dataio.Save(tbl, out); err != nil {
		return fmt.Errorf("Datei konnte nicht geschrieben werden: %w", err)
	}

	rows, cols := tbl.Shape()
	fmt.Printf("Umgewandelt: %s -> %s (%d Zeilen, %d Spalten)\n", in, out, rows, cols)
	return nil
}
