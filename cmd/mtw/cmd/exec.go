// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     cmd
// Description: CLI command for headless plan execution
// Author:      Mike Stoffels
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/msto63/mTW/internal/command"
	"github.com/msto63/mTW/internal/dataio"
	"github.com/msto63/mTW/internal/engine"
	"github.com/msto63/mTW/internal/table"
)

var (
	execPlan    string
	execCommand string
	execOutput  string
	execDryRun  bool
	execSheet   string
)

var execCmd = &cobra.Command{
	Use:   "exec <datei>",
	Short: "Führt einen Befehlsplan ohne Oberfläche aus",
	Long: `Führt einen Befehlsplan auf einer Tabellendatei aus, ohne die
interaktive Oberfläche zu starten.

Der Plan kommt entweder aus einer Datei (--plan, YAML oder JSON)
oder direkt von der Kommandozeile (--command, JSON). Eine Plandatei
enthält eine Liste von Einträgen mit action, parameters und
optionalem reasoning:

  - action: delete_row
    parameters:
      row_index: 3
    reasoning: Testzeile entfernen
  - action: sort_rows
    parameters:
      column: Umsatz
      ascending: false

Die Schritte laufen in Reihenfolge; der erste Fehler bricht den
Plan ab, bereits ausgeführte Schritte bleiben erhalten. Ohne
--dry-run wird das Ergebnis gespeichert, per --output in eine
andere Datei.`,
	Args: cobra.ExactArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().StringVarP(&execPlan, "plan", "p", "", "Plandatei (YAML oder JSON)")
	execCmd.Flags().StringVarP(&execCommand, "command", "c", "", "Einzelner Befehl oder Befehlsliste als JSON")
	execCmd.Flags().StringVarP(&execOutput, "output", "o", "", "Zieldatei (default: Eingabedatei)")
	execCmd.Flags().BoolVar(&execDryRun, "dry-run", false, "Ausführen ohne zu speichern")
	execCmd.Flags().StringVar(&execSheet, "sheet", "", "Tabellenblatt bei Excel-Dateien")
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	initLogging(cfg, os.Stderr)

	if (execPlan == "") == (execCommand == "") {
		return fmt.Errorf("entweder --plan oder --command angeben")
	}

	file := args[0]
	var tbl *table.Table
	if execSheet != "" {
		tbl, err = dataio.LoadSheet(file, execSheet)
	} else {
		tbl, err = dataio.Load(file)
	}
	if err != nil {
		return fmt.Errorf("Datei konnte nicht geladen werden: %w", err)
	}

	cmds, err := loadPlan()
	if err != nil {
		return fmt.Errorf("Plan konnte nicht gelesen werden: %w", err)
	}

	eng := engine.New(tbl, engine.Options{})
	plan := eng.ExecutePlan(cmds)

	failed := false
	for _, res := range plan.Results {
		switch res.Status {
		case engine.StatusError:
			failed = true
			fmt.Printf("FEHLER  %s\n", res.Message)
		case engine.StatusInsight:
			fmt.Printf("INFO    %s\n", indentFollowing(res.Response))
		default:
			fmt.Printf("OK      %s\n", res.Message)
		}
	}
	if plan.Summary != "" {
		fmt.Println(plan.Summary)
	}

	if !execDryRun {
		out := execOutput
		if out == "" {
			out = file
		}
		if err := dataio.Save(eng.Table(), out); err != nil {
			return fmt.Errorf("Ergebnis konnte nicht gespeichert werden: %w", err)
		}
		rows, cols := eng.Table().Shape()
		fmt.Printf("Gespeichert: %s (%d Zeilen, %d Spalten)\n", out, rows, cols)
	}

	if failed {
		return fmt.Errorf("Plan abgebrochen, nicht alle Schritte ausgeführt")
	}
	return nil
}

// loadPlan reads the commands from --command or the plan file. YAML
// plans are normalized through JSON so every plan passes the same
// validation as translated model output.
func loadPlan() ([]command.Command, error) {
	if execCommand != "" {
		return command.ParseJSON([]byte(execCommand))
	}

	data, err := os.ReadFile(execPlan)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(execPlan)) {
	case ".yaml", ".yml":
		var raw interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		normalized, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}
		return command.ParseJSON(normalized)
	default:
		return command.ParseJSON(data)
	}
}

// indentFollowing indents continuation lines of multi-line output so
// insight blocks stay aligned under their status tag
func indentFollowing(s string) string {
	return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n        ")
}
