package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/DaanHessen/ragterm/internal/api"
	"github.com/DaanHessen/ragterm/internal/settings"
	"github.com/DaanHessen/ragterm/internal/store"
	"github.com/DaanHessen/ragterm/internal/text"
	"github.com/DaanHessen/ragterm/internal/util"
)

const (
	viewHome     = "home"
	viewChat     = "chat"
	viewHistory  = "history"
	viewSettings = "settings"
)

const historyLimit = 50

// settings form rows
const (
	fieldMaxSections = iota
	fieldMaxDocs
	fieldAPIKey
	fieldDebug
	fieldTheme
	fieldCount
)

type (
	queryDoneMsg struct {
		req  api.QueryRequest
		resp api.QueryResponse
		raw  []byte
		err  error
	}
	healthMsg struct {
		health api.HealthResponse
		err    error
	}
	settingsChangedMsg struct{ settings settings.Settings }
	settingsSavedMsg   struct {
		settings settings.Settings
		err      error
	}
	historyLoadedMsg struct {
		entries []store.Entry
		err     error
	}
	historySavedMsg struct{ err error }
	exportDoneMsg   struct {
		path string
		err  error
	}
)

type model struct {
	ctx      context.Context
	client   *api.Client
	history  store.History
	store    *settings.Store
	renderer *text.Renderer
	cfg      util.Config
	debugLog *DebugLog

	view   string
	width  int
	height int
	pal    palette
	styles styles

	// saved is what requests use; draft is what the settings form edits.
	saved settings.Settings
	draft settings.Settings
	dirty bool

	// chat
	input     textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
	pending   bool
	cancel    context.CancelFunc
	submitted string
	resp      *api.QueryResponse
	raw       []byte
	errMsg    string
	health    string

	// history browser
	entries       []store.Entry
	historyIndex  int
	historyDetail bool
	historyStatus string
	detail        viewport.Model

	// settings form
	field          int
	keyInput       textinput.Model
	settingsStatus string
}

func initialModel(ctx context.Context, client *api.Client, history store.History, st *settings.Store, saved settings.Settings, cfg util.Config) model {
	saved = saved.Clamp()
	if cfg.Theme != "" {
		saved.Theme = cfg.Theme
	}
	pal := paletteFor(saved.Theme)

	in := textinput.New()
	in.Placeholder = "Ask a question..."
	in.Prompt = "› "
	in.CharLimit = 4000
	in.Focus()

	key := textinput.New()
	key.Placeholder = "API key"
	key.EchoMode = textinput.EchoPassword
	key.EchoCharacter = '•'
	key.SetValue(saved.APIKey)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		ctx:      ctx,
		client:   client,
		history:  history,
		store:    st,
		renderer: text.NewRenderer(pal.Dark, 100),
		cfg:      cfg,
		view:     viewHome,
		width:    100,
		height:   30,
		saved:    saved,
		draft:    saved,
		input:    in,
		keyInput: key,
		spinner:  sp,
		viewport: viewport.New(100, 20),
		detail:   viewport.New(100, 20),
		health:   "checking service…",
	}
	m.applyTheme(saved.Theme)
	return m
}

func (m *model) applyTheme(name string) {
	m.pal = paletteFor(name)
	m.styles = newStyles(m.pal)
	m.spinner.Style = lipgloss.NewStyle().Foreground(m.pal.Accent)
	m.renderer.SetDark(m.pal.Dark)
}

// tea.Model implementation ---------------------------------------------------
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.checkHealth())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case healthMsg:
		if msg.err != nil {
			m.health = "service unreachable: " + api.Message(msg.err)
		} else {
			m.health = fmt.Sprintf("service %s · v%s", msg.health.Status, msg.health.Version)
		}
		return m, nil
	case queryDoneMsg:
		return m.handleQueryDone(msg)
	case historySavedMsg:
		if msg.err != nil {
			m.historyStatus = "history not saved: " + msg.err.Error()
		}
		return m, nil
	case historyLoadedMsg:
		if msg.err != nil {
			m.historyStatus = "failed to load history: " + msg.err.Error()
			return m, nil
		}
		m.entries = msg.entries
		if m.historyIndex >= len(m.entries) {
			m.historyIndex = len(m.entries) - 1
		}
		if m.historyIndex < 0 {
			m.historyIndex = 0
		}
		return m, nil
	case exportDoneMsg:
		if msg.err != nil {
			m.historyStatus = "export failed: " + msg.err.Error()
		} else {
			m.historyStatus = "exported to " + msg.path
		}
		return m, nil
	case settingsSavedMsg:
		if msg.err != nil {
			m.settingsStatus = "Failed to save settings: " + msg.err.Error()
			return m, nil
		}
		m.dirty = false
		m.adoptSettings(msg.settings)
		m.settingsStatus = "Settings saved successfully!"
		return m, nil
	case settingsChangedMsg:
		m.adoptSettings(msg.settings)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) resize(w, h int) {
	m.width, m.height = w, h
	bodyH := h - 9
	if bodyH < 3 {
		bodyH = 3
	}
	m.viewport.Width = w
	m.viewport.Height = bodyH
	m.detail.Width = w
	m.detail.Height = bodyH
	m.input.Width = w - 16
	m.renderer.SetWidth(w)
	m.refreshResponse()
}

// adoptSettings makes s the active record. An unsaved form is left alone.
func (m *model) adoptSettings(s settings.Settings) {
	s = s.Clamp()
	if m.cfg.Theme != "" {
		s.Theme = m.cfg.Theme
	}
	m.saved = s
	if !m.dirty {
		m.draft = s
		m.keyInput.SetValue(s.APIKey)
	}
	m.applyTheme(s.Theme)
	m.refreshResponse()
	if m.debugLog != nil {
		if err := m.debugLog.Set(m.cfg.Debug || s.DebugMode); err != nil {
			m.settingsStatus = "debug log unavailable: " + err.Error()
		}
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch k {
	case "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case "tab":
		return m.switchView(nextView(m.view, 1))
	case "shift+tab":
		return m.switchView(nextView(m.view, -1))
	}
	switch m.view {
	case viewHome:
		return m.handleHomeKey(k)
	case viewChat:
		return m.handleChatKey(msg)
	case viewHistory:
		return m.handleHistoryKey(msg)
	case viewSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func nextView(cur string, step int) string {
	order := []string{viewHome, viewChat, viewHistory, viewSettings}
	idx := 0
	for i, v := range order {
		if v == cur {
			idx = i
			break
		}
	}
	idx = (idx + step + len(order)) % len(order)
	return order[idx]
}

func (m model) switchView(v string) (tea.Model, tea.Cmd) {
	m.view = v
	switch v {
	case viewChat:
		m.keyInput.Blur()
		cmd := m.input.Focus()
		return m, cmd
	case viewHistory:
		m.input.Blur()
		m.keyInput.Blur()
		m.historyDetail = false
		return m, m.loadHistory()
	case viewSettings:
		m.input.Blur()
		m.settingsStatus = ""
		if m.field == fieldAPIKey {
			cmd := m.keyInput.Focus()
			return m, cmd
		}
	default:
		m.input.Blur()
		m.keyInput.Blur()
	}
	return m, nil
}

func (m model) handleHomeKey(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "c", "enter", "1", "2":
		return m.switchView(viewChat)
	case "h":
		return m.switchView(viewHistory)
	case "s", "3":
		return m.switchView(viewSettings)
	case "r":
		m.health = "checking service…"
		return m, m.checkHealth()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// Chat -----------------------------------------------------------------------

// canSubmit mirrors the disabled state of the Ask button.
func (m model) canSubmit() bool {
	return !m.pending && strings.TrimSpace(m.input.Value()) != ""
}

func (m model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.switchView(viewHome)
	case "enter":
		return m.submit()
	case "pgup", "pgdown", "ctrl+u", "ctrl+d", "up", "down":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) submit() (tea.Model, tea.Cmd) {
	if !m.canSubmit() {
		return m, nil
	}
	q := strings.TrimSpace(m.input.Value())
	req := api.QueryRequest{
		Query:       q,
		MaxSections: api.IntPtr(m.saved.MaxSections),
		MaxDocs:     api.IntPtr(m.saved.MaxDocs),
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.pending = true
	m.submitted = q
	m.errMsg = ""
	return m, tea.Batch(m.spinner.Tick, runQuery(ctx, m.client.WithAPIKey(m.saved.APIKey), req))
}

func runQuery(ctx context.Context, client *api.Client, req api.QueryRequest) tea.Cmd {
	return func() tea.Msg {
		resp, raw, err := client.QueryRaw(ctx, req)
		return queryDoneMsg{req: req, resp: resp, raw: raw, err: err}
	}
}

func (m model) handleQueryDone(msg queryDoneMsg) (tea.Model, tea.Cmd) {
	m.pending = false
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if msg.err != nil {
		m.errMsg = api.Message(msg.err)
		return m, nil
	}
	resp := msg.resp
	m.resp = &resp
	m.raw = msg.raw
	m.errMsg = ""
	m.input.SetValue("")
	m.refreshResponse()
	m.viewport.GotoTop()
	return m, m.saveHistory(store.NewEntry(msg.req, msg.resp))
}

// refreshResponse re-renders the current answer into the chat viewport.
func (m *model) refreshResponse() {
	if m.resp == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(responseCard(*m.resp, m.raw, m.saved.DebugMode, m.renderer, m.pal.Dark, m.styles))
}

// responseCard lays out the answer followed by the metadata row.
func responseCard(resp api.QueryResponse, raw []byte, debug bool, r *text.Renderer, dark bool, st styles) string {
	var b strings.Builder
	b.WriteString(st.title.Render("Response") + "\n")
	b.WriteString(r.MustRender(resp.Answer))
	b.WriteString(st.muted.Render(strings.Repeat("─", 40)) + "\n")
	b.WriteString(st.muted.Render(fmt.Sprintf("Documents used: %d    Processing time: %.2fs", resp.DocumentsUsed, resp.ProcessingTime)))
	b.WriteString("\n")
	if debug {
		b.WriteString("\n" + st.accent.Render("Sections") + "\n")
		if len(resp.Sections) == 0 {
			b.WriteString("(none)\n")
		}
		for i, s := range resp.Sections {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.Join(strings.Fields(s), " ")))
		}
		if len(raw) > 0 {
			b.WriteString("\n" + st.accent.Render("Raw response") + "\n")
			b.WriteString(text.Highlight(text.PrettyJSON(raw), "json", dark))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m model) saveHistory(e store.Entry) tea.Cmd {
	if m.history == nil {
		return nil
	}
	ctx, h := m.ctx, m.history
	return func() tea.Msg {
		return historySavedMsg{err: h.Insert(ctx, e)}
	}
}

func (m model) checkHealth() tea.Cmd {
	ctx, client := m.ctx, m.client.WithAPIKey(m.saved.APIKey)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		h, err := client.Health(ctx)
		return healthMsg{health: h, err: err}
	}
}

// History --------------------------------------------------------------------

func (m model) loadHistory() tea.Cmd {
	if m.history == nil {
		return nil
	}
	ctx, h := m.ctx, m.history
	return func() tea.Msg {
		entries, err := h.ListRecent(ctx, historyLimit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m model) exportHistory() tea.Cmd {
	entries := append([]store.Entry(nil), m.entries...)
	return func() tea.Msg {
		path, err := store.WriteExport(util.ExportDir(), entries, time.Now())
		return exportDoneMsg{path: path, err: err}
	}
}

func (m model) clearHistory() tea.Cmd {
	if m.history == nil {
		return nil
	}
	ctx, h := m.ctx, m.history
	return func() tea.Msg {
		if err := h.Clear(ctx); err != nil {
			return historyLoadedMsg{err: err}
		}
		return historyLoadedMsg{}
	}
}

func (m model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if m.historyDetail {
		switch k {
		case "esc", "enter", "q":
			m.historyDetail = false
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	switch k {
	case "up", "k":
		if m.historyIndex > 0 {
			m.historyIndex--
		}
	case "down", "j":
		if m.historyIndex < len(m.entries)-1 {
			m.historyIndex++
		}
	case "enter":
		if len(m.entries) > 0 {
			e := m.entries[m.historyIndex]
			m.detail.SetContent(m.styles.accent.Render("Q: "+e.Query) + "\n\n" + responseCard(api.QueryResponse{
				Answer:         e.Answer,
				Sections:       e.Sections,
				DocumentsUsed:  e.DocumentsUsed,
				ProcessingTime: e.ProcessingTime,
				Timestamp:      e.ServerTS,
			}, nil, m.saved.DebugMode, m.renderer, m.pal.Dark, m.styles))
			m.detail.GotoTop()
			m.historyDetail = true
		}
	case "e":
		m.historyStatus = "exporting…"
		return m, m.exportHistory()
	case "x":
		m.historyStatus = "history cleared"
		return m, m.clearHistory()
	case "r":
		return m, m.loadHistory()
	case "esc", "q":
		return m.switchView(viewHome)
	}
	return m, nil
}

// Settings -------------------------------------------------------------------

func (m model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch k {
	case "ctrl+s":
		return m, m.saveSettings()
	case "esc":
		return m.switchView(viewHome)
	case "up", "shift+up":
		return m.focusField(m.field - 1)
	case "down", "shift+down":
		return m.focusField(m.field + 1)
	}
	if m.field == fieldAPIKey {
		if k == "enter" {
			return m.focusField(m.field + 1)
		}
		var cmd tea.Cmd
		m.keyInput, cmd = m.keyInput.Update(msg)
		if v := m.keyInput.Value(); v != m.draft.APIKey {
			m.draft.APIKey = v
			m.markDirty()
		}
		return m, cmd
	}
	step := 0
	switch k {
	case "left", "h", "-":
		step = -1
	case "right", "l", "+", "=":
		step = 1
	case " ", "enter":
		if m.field == fieldDebug {
			m.draft.DebugMode = !m.draft.DebugMode
			m.markDirty()
		}
		if m.field == fieldTheme {
			step = 1
		}
	case "s":
		return m, m.saveSettings()
	}
	if step != 0 {
		switch m.field {
		case fieldMaxSections:
			m.draft.MaxSections += step
		case fieldMaxDocs:
			m.draft.MaxDocs += step
		case fieldDebug:
			m.draft.DebugMode = !m.draft.DebugMode
		case fieldTheme:
			m.draft.Theme = nextThemeName(m.draft.Theme, step)
		}
		m.draft = m.draft.Clamp()
		m.markDirty()
	}
	return m, nil
}

func (m *model) markDirty() {
	m.dirty = m.draft != m.saved
	m.settingsStatus = ""
}

func (m model) focusField(f int) (tea.Model, tea.Cmd) {
	if f < 0 {
		f = 0
	}
	if f >= fieldCount {
		f = fieldCount - 1
	}
	m.field = f
	if f == fieldAPIKey {
		cmd := m.keyInput.Focus()
		return m, cmd
	}
	m.keyInput.Blur()
	return m, nil
}

func (m model) saveSettings() tea.Cmd {
	st := m.draft.Clamp()
	s := m.store
	return func() tea.Msg {
		if s == nil {
			return settingsSavedMsg{settings: st}
		}
		return settingsSavedMsg{settings: st, err: s.Save(st)}
	}
}

// Rendering ------------------------------------------------------------------

func (m model) View() string {
	var body string
	switch m.view {
	case viewChat:
		body = m.renderChat()
	case viewHistory:
		body = m.renderHistory()
	case viewSettings:
		body = m.renderSettings()
	default:
		body = m.renderHome()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), body, m.renderBottomBar())
}

func (m model) renderTabs() string {
	labels := map[string]string{viewHome: "Home", viewChat: "Chat", viewHistory: "History", viewSettings: "Settings"}
	var parts []string
	for _, v := range []string{viewHome, viewChat, viewHistory, viewSettings} {
		if v == m.view {
			parts = append(parts, m.styles.tabOn.Render(labels[v]))
		} else {
			parts = append(parts, m.styles.tab.Render(labels[v]))
		}
	}
	return m.styles.title.Render("MCP RAG") + "  " + strings.Join(parts, "")
}

func (m model) renderBottomBar() string {
	var hint string
	switch m.view {
	case viewHome:
		hint = "[C] chat  [H] history  [S] settings  [R] recheck  [Tab] cycle  [Q] quit"
	case viewChat:
		hint = "[Enter] ask  [PgUp/PgDn] scroll  [Esc] home  [Tab] cycle  [Ctrl+C] quit"
	case viewHistory:
		hint = "[↑/↓] select  [Enter] open  [E] export  [X] clear  [Esc] home"
	case viewSettings:
		hint = "[↑/↓] field  [←/→] adjust  [Space] toggle  [Ctrl+S] save  [Esc] home"
	}
	return m.styles.muted.Render(truncate(hint, m.width))
}

type feature struct {
	title, description, key string
}

var features = []feature{
	{"Advanced RAG Pipeline", "Powerful document processing and semantic search capabilities.", ""},
	{"Interactive Chat", "Ask questions and get detailed, context-aware responses.", "C"},
	{"Customizable Settings", "Configure the system to match your needs.", "S"},
}

func (m model) renderHome() string {
	var b strings.Builder
	b.WriteString("\n" + m.styles.title.Render("Welcome to MCP RAG System") + "\n")
	b.WriteString(m.styles.subtitle.Render("A powerful Retrieval-Augmented Generation system for intelligent document processing and Q&A") + "\n\n")

	cardW := (m.width - 6) / 3
	if cardW < 24 {
		cardW = 24
	}
	cards := make([]string, 0, len(features))
	for _, f := range features {
		content := m.styles.accent.Render(f.title) + "\n" + f.description
		if f.key != "" {
			content += "\n\n" + m.styles.muted.Render("["+f.key+"] open")
		}
		cards = append(cards, m.styles.card.Width(cardW).Render(content))
	}
	if m.width >= 3*cardW+6 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	}
	b.WriteString("\n\n" + m.styles.selected.Render("Start Chatting  [Enter]") + "\n")
	b.WriteString("\n" + m.styles.muted.Render(truncate(m.client.BaseURL()+" · "+m.health, m.width)) + "\n")
	return b.String()
}

func (m model) renderChat() string {
	var b strings.Builder
	button := "[Ask]"
	if m.pending {
		button = m.spinner.View() + " asking"
	} else if !m.canSubmit() {
		button = m.styles.muted.Render("[Ask]")
	}
	b.WriteString(m.styles.card.Render(m.input.View()+"  "+button) + "\n")
	if m.errMsg != "" {
		b.WriteString(m.styles.errText.Render("Error: "+m.errMsg) + "\n")
	}
	if m.pending {
		b.WriteString(m.styles.muted.Render(truncate("Q: "+m.submitted, m.width)) + "\n")
	}
	if m.resp != nil {
		b.WriteString(m.viewport.View())
	}
	return b.String()
}

func (m model) renderHistory() string {
	if m.historyDetail {
		return m.detail.View()
	}
	var b strings.Builder
	b.WriteString(m.styles.title.Render(fmt.Sprintf("History (%d)", len(m.entries))) + "\n")
	if len(m.entries) == 0 {
		b.WriteString("(no queries yet)\n")
	}
	for i, e := range m.entries {
		cursor := "  "
		if i == m.historyIndex {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s  %s", cursor, e.CreatedAt.Local().Format("Jan 02 15:04"), strings.Join(strings.Fields(e.Query), " "))
		line = truncate(line, m.width)
		if i == m.historyIndex {
			line = m.styles.accent.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if m.historyStatus != "" {
		b.WriteString("\n" + m.styles.muted.Render(truncate(m.historyStatus, m.width)) + "\n")
	}
	return b.String()
}

func (m model) renderSettings() string {
	row := func(f int, label, value string) string {
		cursor := "  "
		if m.field == f {
			cursor = "> "
			label = m.styles.accent.Render(label)
		}
		return fmt.Sprintf("%s%-20s %s\n", cursor, label, value)
	}
	debug := "Off"
	if m.draft.DebugMode {
		debug = "On"
	}
	var pipeline, apiCfg strings.Builder
	pipeline.WriteString(m.styles.title.Render("RAG Pipeline Configuration") + "\n")
	pipeline.WriteString(row(fieldMaxSections, "Maximum Sections", slider(m.draft.MaxSections, settings.MinMaxSections, settings.MaxMaxSections)))
	pipeline.WriteString(row(fieldMaxDocs, "Maximum Documents", slider(m.draft.MaxDocs, settings.MinMaxDocs, settings.MaxMaxDocs)))
	apiCfg.WriteString(m.styles.title.Render("API Configuration") + "\n")
	apiCfg.WriteString(row(fieldAPIKey, "API Key", m.keyInput.View()))
	apiCfg.WriteString(m.styles.muted.Render("    Your API key for the RAG system") + "\n")
	apiCfg.WriteString(row(fieldDebug, "Debug Mode", debug))
	apiCfg.WriteString(row(fieldTheme, "Theme", m.draft.Theme))

	var b strings.Builder
	b.WriteString(m.styles.card.Render(strings.TrimRight(pipeline.String(), "\n")) + "\n")
	b.WriteString(m.styles.card.Render(strings.TrimRight(apiCfg.String(), "\n")) + "\n")
	status := m.settingsStatus
	if status == "" && m.dirty {
		status = "unsaved changes"
	}
	if status != "" {
		style := m.styles.muted
		if status == "Settings saved successfully!" {
			style = m.styles.success
		}
		b.WriteString(style.Render(status) + "\n")
	}
	if m.store != nil {
		b.WriteString(m.styles.muted.Render(truncate("stored in "+m.store.Path(), m.width)) + "\n")
	}
	return b.String()
}

func slider(v, lo, hi int) string {
	var b strings.Builder
	for i := lo; i <= hi; i++ {
		if i == v {
			b.WriteString("●")
		} else {
			b.WriteString("─")
		}
	}
	return fmt.Sprintf("%s %2d", b.String(), v)
}

func truncate(s string, w int) string {
	if w <= 0 {
		return s
	}
	return runewidth.Truncate(s, w, "…")
}
