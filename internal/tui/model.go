// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     tui
// Description: Main Bubbletea model for the terminal client
// Author:      Mike Stoffels
// Created:     2026-02-18
// License:     MIT
// ============================================================================

// Package tui is the interactive terminal client. One model owns one
// execution engine per opened file; user requests travel through the
// translation layer as async commands, results are folded back into
// the conversation and the table preview.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/mTW/internal/command"
	"github.com/msto63/mTW/internal/dataio"
	"github.com/msto63/mTW/internal/engine"
	"github.com/msto63/mTW/internal/session"
	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/internal/translate"
	"github.com/msto63/mTW/pkg/core/config"
	"github.com/msto63/mTW/pkg/core/logging"
	"github.com/msto63/mTW/pkg/core/version"
)

// FocusArea represents which area has focus
type FocusArea int

const (
	FocusChat FocusArea = iota
	FocusModelSelector
)

// Model is the main Bubbletea model for the terminal client
type Model struct {
	// State
	width          int
	height         int
	ready          bool
	loading        bool
	providerOnline bool
	focus          FocusArea
	showModelList  bool
	err            error

	// Components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Table state
	file  string
	eng   *engine.Engine
	dirty bool

	// Chat state
	messages        []ChatMessage
	translator      *translate.Translator
	currentModel    string
	availableModels []translate.ModelInfo
	modelIndex      int

	// Input history
	inputHistory []string
	historyIndex int    // -1 = no history navigation active
	currentInput string // stashed input while navigating

	// Session persistence
	store     session.Store
	sessionID string

	// Configuration
	app    *config.Config
	logger *logging.Logger
}

// Config holds terminal client configuration
type Config struct {
	File  string         // edited file, used for saving and the title bar
	Table *table.Table   // initial table content
	Store session.Store  // chat persistence, nil disables it
	App   *config.Config // application configuration
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{App: config.Default()}
}

// New creates a new terminal client model
func New(cfg Config) Model {
	if cfg.App == nil {
		cfg.App = config.Default()
	}
	logger := logging.GetDefault().WithField("component", "tui")

	// Setup textarea
	ta := textarea.New()
	ta.Placeholder = "Anweisung eingeben... (z.B. \"lösche Zeile 3\" oder \"sortiere nach Umsatz\")"
	ta.Focus()
	ta.CharLimit = 2000
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = FocusedInputStyle
	ta.BlurredStyle.Base = InputStyle

	// Setup spinner
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	// Saved model selection wins over the configured default
	model := cfg.App.Translator.DefaultModel
	if p := cfg.App.Translator.DefaultProvider; p != "" && p != string(translate.ProviderOllama) {
		model = p + ":" + model
	}
	if saved := LoadLastModel(); saved != "" {
		model = saved
	}

	var messages []ChatMessage
	translator, err := buildTranslator(cfg.App, model)
	if err != nil {
		// Fall back to the local provider so the client still starts
		fallback := translate.DefaultOllamaConfig().DefaultModel
		messages = append(messages, ChatMessage{
			Role:      "system",
			Content:   fmt.Sprintf("Modell %s nicht verfügbar (%s), nutze %s", model, err, fallback),
			Timestamp: time.Now(),
		})
		model = fallback
		translator, _ = buildTranslator(cfg.App, fallback)
	}

	eng := engine.New(cfg.Table, engine.Options{})
	tbl := eng.Table()
	messages = append(messages, ChatMessage{
		Role:      "system",
		Content:   fmt.Sprintf("%s geladen: %d Zeilen, %d Spalten", displayName(cfg.File), tbl.RowCount(), tbl.ColumnCount()),
		Timestamp: time.Now(),
	})

	pt, name := translate.ParseProviderModel(model)
	m := Model{
		textarea:        ta,
		spinner:         sp,
		messages:        messages,
		translator:      translator,
		currentModel:    model,
		availableModels: []translate.ModelInfo{{Name: name, Provider: string(pt)}},
		inputHistory:    LoadInputHistory(),
		historyIndex:    -1,
		file:            cfg.File,
		eng:             eng,
		store:           cfg.Store,
		app:             cfg.App,
		logger:          logger,
		focus:           FocusChat,
	}

	if cfg.Store != nil {
		sess, err := cfg.Store.CreateSession(context.Background(), cfg.File)
		if err != nil {
			logger.Warn("Session persistence disabled", logging.Fields{"error": err.Error()})
			m.store = nil
		} else {
			m.sessionID = sess.ID
		}
	}

	return m
}

// buildTranslator wires a translator for the given "provider:model"
// selection using the configured provider settings
func buildTranslator(app *config.Config, selection string) (*translate.Translator, error) {
	providerType, model := translate.ParseProviderModel(selection)
	t := app.Translator

	var provider translate.Provider
	switch providerType {
	case translate.ProviderOpenAI:
		p, err := translate.NewOpenAIProvider(translate.OpenAIConfig{
			APIKey:  t.Providers.OpenAI.APIKey,
			BaseURL: t.Providers.OpenAI.BaseURL,
			Timeout: t.Timeout.Duration,
		})
		if err != nil {
			return nil, err
		}
		provider = p
	case translate.ProviderGroq:
		gc := translate.DefaultGroqConfig()
		gc.APIKey = t.Providers.Groq.APIKey
		if t.Providers.Groq.BaseURL != "" {
			gc.BaseURL = t.Providers.Groq.BaseURL
		}
		gc.Timeout = t.Timeout.Duration
		p, err := translate.NewOpenAIProvider(gc)
		if err != nil {
			return nil, err
		}
		provider = p
	default:
		provider = translate.NewOllamaProvider(translate.OllamaConfig{
			BaseURL: t.Providers.Ollama.BaseURL,
			Timeout: t.Timeout.Duration,
		})
	}

	opts := translate.Options{
		Provider:    provider,
		Model:       model,
		Temperature: float64(t.DefaultTemperature),
		MaxTokens:   t.DefaultMaxTokens,
		CacheTTL:    t.CacheTTL.Duration,
	}
	if !t.CacheEnabled {
		opts.CacheSize = -1
	}
	return translate.New(opts)
}

// buildProvider creates a bare provider of the given type from the
// application configuration
func buildProvider(app *config.Config, pt translate.ProviderType) (translate.Provider, error) {
	switch pt {
	case translate.ProviderOpenAI:
		return translate.NewOpenAIProvider(translate.OpenAIConfig{
			APIKey:  app.Translator.Providers.OpenAI.APIKey,
			BaseURL: app.Translator.Providers.OpenAI.BaseURL,
			Timeout: app.Translator.Timeout.Duration,
		})
	case translate.ProviderGroq:
		gc := translate.DefaultGroqConfig()
		gc.APIKey = app.Translator.Providers.Groq.APIKey
		if app.Translator.Providers.Groq.BaseURL != "" {
			gc.BaseURL = app.Translator.Providers.Groq.BaseURL
		}
		gc.Timeout = app.Translator.Timeout.Duration
		return translate.NewOpenAIProvider(gc)
	default:
		return translate.NewOllamaProvider(translate.OllamaConfig{
			BaseURL: app.Translator.Providers.Ollama.BaseURL,
			Timeout: app.Translator.Timeout.Duration,
		}), nil
	}
}

// displayName returns the file name shown in the UI
func displayName(file string) string {
	if file == "" {
		return "neue Tabelle"
	}
	return filepath.Base(file)
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.checkProviderStatus,
		m.loadModels,
		m.tick(),
		tea.EnterAltScreen,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // title panel
		footerHeight := 8 // input + status bar + help
		viewportHeight := msg.Height - headerHeight - m.tablePaneHeight() - footerHeight
		if viewportHeight < 3 {
			viewportHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.textarea.SetWidth(msg.Width - 4)
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case translateDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.addSystemMessage("Fehler: " + msg.err.Error())
		} else {
			cmds = append(cmds, m.applyPlan(msg))
		}
		m.updateViewportContent()
		m.viewport.GotoBottom()

	case insightAnswerMsg:
		if msg.err != nil {
			m.logger.Debug("Insight answer skipped", logging.Fields{"error": msg.err.Error()})
		} else if msg.answer != "" {
			m.messages = append(m.messages, ChatMessage{
				Role:      "assistant",
				Content:   msg.answer,
				Model:     m.currentModel,
				Timestamp: time.Now(),
				Duration:  msg.duration,
			})
			m.updateViewportContent()
			m.viewport.GotoBottom()
		}

	case modelsLoadedMsg:
		if msg.err == nil && len(msg.models) > 0 {
			m.availableModels = msg.models
			// Keep the cursor on the active model if it is in the list
			for i, mi := range m.availableModels {
				if selectionValue(mi) == m.currentModel {
					m.modelIndex = i
					break
				}
			}
		}

	case providerStatusMsg:
		m.providerOnline = msg.online

	case tickMsg:
		// Periodic status check
		return m, tea.Batch(
			m.checkProviderStatus,
			m.tick(),
		)
	}

	// Update components
	if m.focus == FocusChat && !m.showModelList {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Model selector navigation - handle FIRST when list is shown
	if m.showModelList {
		switch msg.Type {
		case tea.KeyUp:
			if m.modelIndex > 0 {
				m.modelIndex--
			}
			return m, nil

		case tea.KeyDown:
			if m.modelIndex < len(m.availableModels)-1 {
				m.modelIndex++
			}
			return m, nil

		case tea.KeyEnter:
			if m.modelIndex < len(m.availableModels) {
				m.selectModel(m.availableModels[m.modelIndex])
			}
			m.showModelList = false
			m.focus = FocusChat
			m.textarea.Focus()
			m.updateViewportContent()
			return m, m.checkProviderStatus

		case tea.KeyEsc:
			m.showModelList = false
			m.focus = FocusChat
			m.textarea.Focus()
			return m, nil

		case tea.KeyRunes:
			// j/k for vim-style navigation
			switch string(msg.Runes) {
			case "k":
				if m.modelIndex > 0 {
					m.modelIndex--
				}
				return m, nil
			case "j":
				if m.modelIndex < len(m.availableModels)-1 {
					m.modelIndex++
				}
				return m, nil
			}
		}
		// Ignore all other keys while the model list is open
		return m, nil
	}

	// Global shortcuts
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyCtrlL:
		m.showModelList = true
		m.focus = FocusModelSelector
		m.textarea.Blur()
		for i, mi := range m.availableModels {
			if selectionValue(mi) == m.currentModel {
				m.modelIndex = i
				break
			}
		}
		return m, m.loadModels
	}

	// Check for Ctrl+Z (undo last mutation)
	if msg.String() == "ctrl+z" {
		if m.loading {
			return m, nil
		}
		if m.eng.Undo() {
			m.dirty = true
			m.addSystemMessage("Letzte Aktion rückgängig gemacht")
			m.recordUndo()
		} else {
			m.addSystemMessage("Nichts zum Rückgängigmachen vorhanden")
		}
		m.updateViewportContent()
		m.viewport.GotoBottom()
		return m, nil
	}

	// Check for Ctrl+S (save to the opened file)
	if msg.String() == "ctrl+s" {
		if m.loading {
			return m, nil
		}
		if m.file == "" {
			m.addSystemMessage("Keine Datei zum Speichern angegeben")
		} else if err := dataio.Save(m.eng.Table(), m.file); err != nil {
			m.addSystemMessage("Fehler beim Speichern: " + err.Error())
		} else {
			m.dirty = false
			m.addSystemMessage("Gespeichert: " + m.file)
		}
		m.updateViewportContent()
		m.viewport.GotoBottom()
		return m, nil
	}

	// Chat input handling
	if m.focus == FocusChat && !m.loading {
		switch msg.Type {
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input != "" {
				// Append to history unless it repeats the last entry
				if len(m.inputHistory) == 0 || m.inputHistory[len(m.inputHistory)-1] != input {
					m.inputHistory = append(m.inputHistory, input)
					if len(m.inputHistory) > 100 {
						m.inputHistory = m.inputHistory[len(m.inputHistory)-100:]
					}
					_ = SaveInputHistory(m.inputHistory)
				}
				m.historyIndex = -1
				m.currentInput = ""

				m.messages = append(m.messages, ChatMessage{
					Role:      "user",
					Content:   input,
					Timestamp: time.Now(),
				})
				m.recordUserMessage(input)
				m.textarea.Reset()
				m.updateViewportContent()
				m.viewport.GotoBottom()

				m.loading = true
				return m, tea.Batch(
					m.spinner.Tick,
					m.translateRequest(input),
				)
			}
			return m, nil

		case tea.KeyUp:
			// Navigate up through the input history
			if len(m.inputHistory) > 0 {
				if m.historyIndex == -1 {
					m.currentInput = m.textarea.Value()
					m.historyIndex = len(m.inputHistory) - 1
				} else if m.historyIndex > 0 {
					m.historyIndex--
				}
				m.textarea.SetValue(m.inputHistory[m.historyIndex])
				m.textarea.CursorEnd()
			}
			return m, nil

		case tea.KeyDown:
			// Navigate down, back to the stashed input at the end
			if m.historyIndex != -1 {
				if m.historyIndex < len(m.inputHistory)-1 {
					m.historyIndex++
					m.textarea.SetValue(m.inputHistory[m.historyIndex])
				} else {
					m.historyIndex = -1
					m.textarea.SetValue(m.currentInput)
				}
				m.textarea.CursorEnd()
			}
			return m, nil

		case tea.KeyPgUp:
			m.viewport.ViewUp()
			return m, nil

		case tea.KeyPgDown:
			m.viewport.ViewDown()
			return m, nil
		}
	}

	// Pass other keys to textarea
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// applyPlan executes a translated plan and folds every step result
// into the conversation. Returns a follow-up command when an insight
// carries structured data worth a phrased answer.
func (m *Model) applyPlan(msg translateDoneMsg) tea.Cmd {
	plan := m.eng.ExecutePlan(msg.cmds)
	var followUp tea.Cmd

	for i, res := range plan.Results {
		chat := ChatMessage{
			Role:      "assistant",
			Content:   formatResult(res),
			Model:     m.currentModel,
			IsError:   res.IsError(),
			Timestamp: time.Now(),
		}
		if i == len(plan.Results)-1 {
			chat.Duration = msg.duration
		}
		if m.app.UI.ShowReasoning {
			chat.Reasoning = res.Reasoning
		}
		m.messages = append(m.messages, chat)
		m.recordResult(msg.cmds[i], res, chat.Content)

		if res.Status == engine.StatusSuccess {
			m.dirty = true
		}
		if res.Status == engine.StatusInsight && len(res.Data) > 0 && followUp == nil {
			followUp = m.answerInsight(msg.request, res.Data)
		}
	}

	if plan.Summary != "" {
		m.addSystemMessage(plan.Summary)
	}
	return followUp
}

// selectModel switches translator and provider to the given model
func (m *Model) selectModel(mi translate.ModelInfo) {
	selection := selectionValue(mi)
	if selection == m.currentModel {
		return
	}
	translator, err := buildTranslator(m.app, selection)
	if err != nil {
		m.addSystemMessage("Modellwechsel fehlgeschlagen: " + err.Error())
		return
	}
	m.translator = translator
	m.currentModel = selection
	_ = SaveLastModel(selection)
	m.addSystemMessage("Modell gewechselt: " + selection)
}

// selectionValue is the persisted form of a model choice. Local models
// keep their plain name so existing settings stay valid.
func selectionValue(mi translate.ModelInfo) string {
	if mi.Provider == "" || mi.Provider == string(translate.ProviderOllama) {
		return mi.Name
	}
	return mi.Provider + ":" + mi.Name
}

// formatResult renders one execution result for the chat view
func formatResult(res engine.ExecutionResult) string {
	switch res.Status {
	case engine.StatusInsight:
		return res.Response
	case engine.StatusError:
		content := res.Message
		if res.RawResponse != "" {
			content += "\n\nModell-Antwort: " + truncate(res.RawResponse, 300)
		}
		return content
	default:
		return fmt.Sprintf("%s\nTabelle: %d Zeilen x %d Spalten", res.Message, res.NewRowCount, res.NewColumnCount)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func (m *Model) addSystemMessage(content string) {
	m.messages = append(m.messages, ChatMessage{
		Role:      "system",
		Content:   content,
		Timestamp: time.Now(),
	})
}

// recordUserMessage persists one user turn
func (m *Model) recordUserMessage(content string) {
	if m.store == nil {
		return
	}
	if err := m.store.AppendMessage(context.Background(), m.sessionID, "user", content, ""); err != nil {
		m.logger.Warn("Failed to record message", logging.Fields{"error": err.Error()})
	}
}

// recordResult persists one executed command and its rendered reply
func (m *Model) recordResult(cmd command.Command, res engine.ExecutionResult, content string) {
	if m.store == nil {
		return
	}
	ctx := context.Background()
	params, _ := json.Marshal(cmd.Params)
	if err := m.store.AppendAction(ctx, m.sessionID, string(cmd.Action), string(params), cmd.Reasoning, res.Status); err != nil {
		m.logger.Warn("Failed to record action", logging.Fields{"error": err.Error()})
	}
	if err := m.store.AppendMessage(ctx, m.sessionID, "assistant", content, res.Status); err != nil {
		m.logger.Warn("Failed to record message", logging.Fields{"error": err.Error()})
	}
}

func (m *Model) recordUndo() {
	if m.store == nil {
		return
	}
	if err := m.store.AppendAction(context.Background(), m.sessionID, "undo_last", "", "", engine.StatusSuccess); err != nil {
		m.logger.Warn("Failed to record action", logging.Fields{"error": err.Error()})
	}
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade meinTABELLENWERK..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// If the model list is shown, it replaces table and chat area
	if m.showModelList {
		b.WriteString(m.renderModelDropdown())
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTablePane())
		b.WriteString("\n")
		b.WriteString(m.renderChatArea())
		b.WriteString("\n")
		b.WriteString(m.renderInputArea())
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderHeader renders the title panel with file name and table shape
func (m Model) renderHeader() string {
	logo := LogoStyle.Render(Logo)

	name := displayName(m.file)
	if m.dirty {
		name += " *"
	}
	file := FileNameStyle.Render(IconTable + name)

	rows, cols := m.eng.Table().Shape()
	shape := HelpDescStyle.Render(fmt.Sprintf("%d Zeilen x %d Spalten", rows, cols))

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		logo,
		strings.Repeat(" ", 3),
		file,
		strings.Repeat(" ", 3),
		shape,
	)

	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// renderTablePane renders the live preview of the current table
func (m Model) renderTablePane() string {
	preview := strings.TrimRight(m.eng.Table().Preview(m.previewPaneRows()), "\n")
	lines := strings.Split(preview, "\n")
	maxw := m.width - 6
	for i, line := range lines {
		lines[i] = clipLine(line, maxw)
	}
	// First line carries the column names
	lines[0] = TableHeaderStyle.Render(lines[0])
	return TablePanelStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

// renderModelDropdown renders the model selection as a full panel
func (m Model) renderModelDropdown() string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("  Modell auswählen"))
	content.WriteString("\n\n")

	for i, mi := range m.availableModels {
		label := selectionValue(mi)
		details := ""
		if mi.ParameterSize != "" {
			details = " - " + mi.ParameterSize
		}
		if mi.Size > 0 {
			details += fmt.Sprintf(" (%.1f GB)", float64(mi.Size)/(1024*1024*1024))
		}

		var line string
		if i == m.modelIndex {
			line = SelectedModelItemStyle.Render(fmt.Sprintf(" ▶ %s ", label)) + HelpDescStyle.Render(details)
		} else {
			line = ModelItemStyle.Render(fmt.Sprintf("   %s ", label)) + HelpDescStyle.Render(details)
		}
		content.WriteString(line)
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(HelpDescStyle.Render(fmt.Sprintf("  [%d von %d Modellen]", m.modelIndex+1, len(m.availableModels))))
	content.WriteString("\n\n")
	content.WriteString(HelpStyle.Render("  ↑/↓ navigieren • Enter auswählen • Esc schließen"))

	panelHeight := m.viewport.Height + m.tablePaneHeight()
	return FocusedModelSelectorStyle.
		Width(m.width - 2).
		Height(panelHeight).
		Render(content.String())
}

// renderChatArea renders the conversation viewport
func (m Model) renderChatArea() string {
	return ChatPanelStyle.Width(m.width - 2).Height(m.viewport.Height + 2).Render(m.viewport.View())
}

// renderInputArea renders the input textarea
func (m Model) renderInputArea() string {
	var input string
	if m.loading {
		input = m.spinner.View() + ThinkingStyle.Render(" Übersetze Anweisung...")
	} else {
		input = m.textarea.View()
	}

	style := InputStyle.Width(m.width - 2)
	if !m.loading {
		style = FocusedInputStyle.Width(m.width - 2)
	}
	return style.Render(input)
}

// renderStatusBar renders the status bar with model, history and
// provider state
func (m Model) renderStatusBar() string {
	leftPart := ModelLabelStyle.Render("Modell: ") + IconModel + SelectedModelItemStyle.Render(m.currentModel)

	steps := m.eng.HistoryDepth() - 1
	centerPart := HelpDescStyle.Render(fmt.Sprintf("v%s | Verlauf: %d", version.Version, steps))

	var saveState string
	if m.dirty {
		saveState = DirtyMarkerStyle.Render("geändert ")
	}
	providerName := m.translator.Provider().Name()
	var status string
	if m.providerOnline {
		status = StatusOnlineStyle.Render(IconOnline + providerName)
	} else {
		status = StatusOfflineStyle.Render(IconOffline + providerName + " offline")
	}
	rightPart := saveState + status

	leftLen := lipgloss.Width(leftPart)
	centerLen := lipgloss.Width(centerPart)
	rightLen := lipgloss.Width(rightPart)
	availableSpace := m.width - leftLen - centerLen - rightLen - 4
	if availableSpace < 2 {
		availableSpace = 2
	}
	leftPadding := availableSpace / 2
	rightPadding := availableSpace - leftPadding

	content := leftPart + strings.Repeat(" ", leftPadding) + centerPart + strings.Repeat(" ", rightPadding) + rightPart

	return StatusBarStyle.Width(m.width - 2).Render(content)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	var items []string

	if m.showModelList {
		items = []string{
			RenderKeyHint("↑/↓", "navigieren"),
			RenderKeyHint("Enter", "auswählen"),
			RenderKeyHint("Esc", "schließen"),
		}
	} else {
		items = []string{
			RenderKeyHint("Enter", "senden"),
			RenderKeyHint("↑/↓", "Historie"),
			RenderKeyHint("Ctrl+Z", "rückgängig"),
			RenderKeyHint("Ctrl+S", "speichern"),
			RenderKeyHint("Ctrl+L", "Modell"),
			RenderKeyHint("Ctrl+C", "beenden"),
		}
	}

	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent updates the viewport with current messages
func (m *Model) updateViewportContent() {
	var content strings.Builder

	for _, msg := range m.messages {
		switch msg.Role {
		case "user":
			timeStr := msg.Timestamp.Format("15:04")
			content.WriteString(RenderUserLabel() + "  " + HelpDescStyle.Render(timeStr))
			content.WriteString("\n")
			content.WriteString(UserMessageStyle.Width(m.width - 6).Render(msg.Content))
			content.WriteString("\n\n")

		case "assistant":
			modelLabel := m.currentModel
			if msg.Model != "" {
				modelLabel = msg.Model
			}
			timeStr := msg.Timestamp.Format("15:04")
			durationStr := ""
			if msg.Duration > 0 {
				durationStr = fmt.Sprintf(" (%.1fs)", msg.Duration.Seconds())
			}
			content.WriteString(RenderAssistantLabel(modelLabel) + "  " + HelpDescStyle.Render(timeStr+durationStr))
			content.WriteString("\n")
			style := AssistantMessageStyle
			if msg.IsError {
				style = ErrorMessageStyle
			}
			content.WriteString(style.Width(m.width - 6).Render(msg.Content))
			content.WriteString("\n")
			if msg.Reasoning != "" {
				content.WriteString(ReasoningStyle.Render("Begründung: " + msg.Reasoning))
				content.WriteString("\n")
			}
			content.WriteString("\n")

		case "system":
			content.WriteString(SystemMessageStyle.Render(msg.Content))
			content.WriteString("\n\n")
		}
	}

	m.viewport.SetContent(content.String())
}

// previewPaneRows returns how many table rows the preview pane shows,
// capped so the chat area keeps room on small terminals
func (m Model) previewPaneRows() int {
	rows := m.app.UI.TableRows
	if m.height > 0 && rows > m.height/3 {
		rows = m.height / 3
	}
	if rows < 3 {
		rows = 3
	}
	return rows
}

// tablePaneHeight is the full height of the preview pane including
// borders and the column header line
func (m Model) tablePaneHeight() int {
	return m.previewPaneRows() + 4
}

// clipLine shortens a line to the given display width
func clipLine(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// translateRequest sends the request through the translation layer
func (m *Model) translateRequest(request string) tea.Cmd {
	translator := m.translator
	tc := m.eng.Context()
	history := m.promptHistory()
	timeout := m.app.Translator.Timeout.Duration

	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		cmds, err := translator.Translate(ctx, request, tc, history)
		return translateDoneMsg{
			request:  request,
			cmds:     cmds,
			duration: time.Since(start),
			err:      err,
		}
	}
}

// answerInsight asks the model to phrase an answer to the original
// question grounded on the computed statistics
func (m *Model) answerInsight(question string, data map[string]interface{}) tea.Cmd {
	stats, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	translator := m.translator
	tc := m.eng.Context()
	timeout := m.app.Translator.Timeout.Duration

	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		answer, err := translator.AnswerInsight(ctx, question, tc, string(stats))
		return insightAnswerMsg{
			answer:   answer,
			duration: time.Since(start),
			err:      err,
		}
	}
}

// promptHistory maps the chat log to translation history turns
func (m Model) promptHistory() []translate.Message {
	var history []translate.Message
	for _, msg := range m.messages {
		if msg.Role == "user" || msg.Role == "assistant" {
			history = append(history, translate.Message{Role: msg.Role, Content: msg.Content})
		}
	}
	return history
}

// checkProviderStatus checks if the active provider is reachable
func (m Model) checkProviderStatus() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := m.translator.Provider().HealthCheck(ctx); err != nil {
		return providerStatusMsg{online: false, err: err}
	}
	return providerStatusMsg{online: true}
}

// loadModels loads the model lists of every reachable provider
func (m Model) loadModels() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var models []translate.ModelInfo
	var firstErr error
	for _, p := range m.candidateProviders() {
		list, err := p.ListModels(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		models = append(models, list...)
	}
	if len(models) == 0 {
		return modelsLoadedMsg{err: firstErr}
	}
	return modelsLoadedMsg{models: models}
}

// candidateProviders returns every provider the client can switch to:
// the local Ollama daemon plus each remote provider with an API key
func (m Model) candidateProviders() []translate.Provider {
	types := []translate.ProviderType{translate.ProviderOllama}
	if p := m.app.Translator.Providers.OpenAI; p.Enabled && p.APIKey != "" {
		types = append(types, translate.ProviderOpenAI)
	}
	if p := m.app.Translator.Providers.Groq; p.Enabled && p.APIKey != "" {
		types = append(types, translate.ProviderGroq)
	}

	providers := make([]translate.Provider, 0, len(types))
	for _, pt := range types {
		p, err := buildProvider(m.app, pt)
		if err != nil {
			continue
		}
		providers = append(providers, p)
	}
	return providers
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(10*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the terminal client and blocks until it exits
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
