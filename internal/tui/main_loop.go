package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kotobadev/kotoba-sync/internal/service"
	"github.com/kotobadev/kotoba-sync/models"
)

const conflictPageSize = 20

type mainScreen int

const (
	screenHome mainScreen = iota
	screenWords
	screenSync
	screenConflicts
	screenConflictDetail
)

var homeItems = []string{"Words", "Sync now", "Conflicts", "Log out"}

// mainLoopModel drives the post-login screens: the vocabulary list, manual
// sync, and the pending-conflict review where the user settles conflicts the
// resolution engine left for manual decision.
type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices
	userID   int64

	screen  mainScreen
	homeIdx int

	words    []models.LocalEntity
	wordIdx  int
	loading  bool
	errMsg   string
	infoMsg  string
	syncResp *models.SyncResponse

	conflicts   []models.SyncConflict
	conflictIdx int
	settling    bool

	logout bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, userID int64) mainLoopModel {
	return mainLoopModel{
		ctx:      ctx,
		services: services,
		userID:   userID,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return nil
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case wordsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.words = msg.words
		if m.wordIdx >= len(m.words) {
			m.wordIdx = 0
		}
		return m, nil

	case syncDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		resp := msg.resp
		m.syncResp = &resp
		return m, nil

	case conflictsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.conflicts = msg.conflicts
		if m.conflictIdx >= len(m.conflicts) {
			m.conflictIdx = 0
		}
		return m, nil

	case conflictSettledMsg:
		m.settling = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.infoMsg = "Conflict settled"
		m.screen = screenConflicts
		m.loading = true
		return m, m.cmdLoadConflicts()

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.infoMsg = "Copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m mainLoopModel) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenHome:
		return m.handleHomeKey(key)
	case screenWords:
		return m.handleWordsKey(key)
	case screenSync:
		return m.handleSyncKey(key)
	case screenConflicts:
		return m.handleConflictsKey(key)
	case screenConflictDetail:
		return m.handleConflictDetailKey(key)
	}

	return m, nil
}

func (m mainLoopModel) handleHomeKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.homeIdx > 0 {
			m.homeIdx--
		}
	case "down", "j":
		if m.homeIdx < len(homeItems)-1 {
			m.homeIdx++
		}
	case "enter":
		m.errMsg = ""
		m.infoMsg = ""
		switch m.homeIdx {
		case 0:
			m.screen = screenWords
			m.loading = true
			return m, m.cmdLoadWords()
		case 1:
			m.screen = screenSync
			m.syncResp = nil
			m.loading = true
			return m, m.cmdSync()
		case 2:
			m.screen = screenConflicts
			m.loading = true
			return m, m.cmdLoadConflicts()
		case 3:
			m.logout = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m mainLoopModel) handleWordsKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.screen = screenHome
		m.errMsg = ""
		m.infoMsg = ""
	case "up", "k":
		if m.wordIdx > 0 {
			m.wordIdx--
		}
	case "down", "j":
		if m.wordIdx < len(m.words)-1 {
			m.wordIdx++
		}
	case "r":
		m.loading = true
		m.errMsg = ""
		return m, m.cmdLoadWords()
	case "c":
		if m.wordIdx < len(m.words) {
			payload := string(m.words[m.wordIdx].Payload)
			return m, cmdCopyToClipboard(payload)
		}
	}

	return m, nil
}

func (m mainLoopModel) handleSyncKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.screen = screenHome
		m.errMsg = ""
		m.infoMsg = ""
	case "r":
		if !m.loading {
			m.syncResp = nil
			m.errMsg = ""
			m.loading = true
			return m, m.cmdSync()
		}
	}

	return m, nil
}

func (m mainLoopModel) handleConflictsKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.screen = screenHome
		m.errMsg = ""
		m.infoMsg = ""
	case "up", "k":
		if m.conflictIdx > 0 {
			m.conflictIdx--
		}
	case "down", "j":
		if m.conflictIdx < len(m.conflicts)-1 {
			m.conflictIdx++
		}
	case "r":
		m.loading = true
		m.errMsg = ""
		return m, m.cmdLoadConflicts()
	case "enter":
		if m.conflictIdx < len(m.conflicts) {
			m.screen = screenConflictDetail
			m.errMsg = ""
			m.infoMsg = ""
		}
	}

	return m, nil
}

func (m mainLoopModel) handleConflictDetailKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.conflictIdx >= len(m.conflicts) {
		m.screen = screenConflicts
		return m, nil
	}
	conflict := m.conflicts[m.conflictIdx]

	switch key.String() {
	case "esc":
		m.screen = screenConflicts
		m.errMsg = ""
		m.infoMsg = ""
	case "m":
		if !m.settling {
			m.settling = true
			m.errMsg = ""
			return m, m.cmdResolveWithClient(conflict)
		}
	case "s":
		if !m.settling {
			m.settling = true
			m.errMsg = ""
			return m, m.cmdIgnore(conflict)
		}
	case "c":
		return m, cmdCopyToClipboard(string(conflict.ClientData))
	}

	return m, nil
}

func (m mainLoopModel) View() string {
	switch m.screen {
	case screenWords:
		return m.viewWords()
	case screenSync:
		return m.viewSync()
	case screenConflicts:
		return m.viewConflicts()
	case screenConflictDetail:
		return m.viewConflictDetail()
	default:
		return m.viewHome()
	}
}

func (m mainLoopModel) viewHome() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Signed in as user #%d\n\n", m.userID))

	if m.infoMsg != "" {
		b.WriteString("OK: ")
		b.WriteString(m.infoMsg)
		b.WriteString("\n\n")
	}

	for i, item := range homeItems {
		cursor := " "
		if i == m.homeIdx {
			cursor = ">"
		}
		b.WriteString(cursor)
		b.WriteString(" ")
		b.WriteString(item)
		b.WriteString("\n")
	}

	return renderPage("KOTOBA SYNC", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: move")
}

func (m mainLoopModel) viewWords() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString("Loading...")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	case len(m.words) == 0:
		b.WriteString("No words yet. Sync to pull your vocabulary.")
	default:
		for i, word := range m.words {
			cursor := " "
			if i == m.wordIdx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s #%d v%d  %s\n", cursor, word.EntityID, word.RowVersion, fitText(string(word.Payload), 60)))
		}
		if m.infoMsg != "" {
			b.WriteString("\nOK: ")
			b.WriteString(m.infoMsg)
		}
	}

	return renderPage("WORDS", strings.TrimRight(b.String(), "\n"), "esc: back │ r: refresh │ c: copy │ ↑/↓: move")
}

func (m mainLoopModel) viewSync() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString("Syncing...")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	case m.syncResp == nil:
		b.WriteString("Press r to start a sync.")
	default:
		resp := m.syncResp
		b.WriteString(fmt.Sprintf("Status:             %s\n", resp.Status))
		b.WriteString(fmt.Sprintf("Items synced:       %d\n", resp.Stats.ItemsSynced))
		b.WriteString(fmt.Sprintf("Conflicts detected: %d\n", resp.Stats.ConflictsDetected))
		b.WriteString(fmt.Sprintf("Conflicts resolved: %d\n", resp.Stats.ConflictsResolved))
		b.WriteString(fmt.Sprintf("Server time:        %s\n", resp.ServerTime.Local().Format("2006-01-02 15:04:05")))
		if n := len(resp.PendingConflicts); n > 0 {
			b.WriteString(fmt.Sprintf("\n%d conflict(s) need your attention on the Conflicts screen.\n", n))
		}
		if n := len(resp.RejectedChanges); n > 0 {
			b.WriteString(fmt.Sprintf("%d change(s) were rejected by the server.\n", n))
		}
	}

	return renderPage("SYNC", strings.TrimRight(b.String(), "\n"), "esc: back │ r: sync again")
}

func (m mainLoopModel) viewConflicts() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString("Loading...")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	case len(m.conflicts) == 0:
		b.WriteString("No pending conflicts.")
	default:
		for i, conflict := range m.conflicts {
			cursor := " "
			if i == m.conflictIdx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %s #%d  %s  %s\n",
				cursor, conflict.EntityType, conflict.EntityID, conflict.ConflictType, fitText(conflict.ConflictID, 12)))
		}
		if m.infoMsg != "" {
			b.WriteString("\nOK: ")
			b.WriteString(m.infoMsg)
		}
	}

	return renderPage("CONFLICTS", strings.TrimRight(b.String(), "\n"), "esc: back │ enter: review │ r: refresh │ ↑/↓: move")
}

func (m mainLoopModel) viewConflictDetail() string {
	if m.conflictIdx >= len(m.conflicts) {
		return renderPage("CONFLICT", "", "esc: back")
	}
	conflict := m.conflicts[m.conflictIdx]

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Entity:   %s #%d\n", conflict.EntityType, conflict.EntityID))
	b.WriteString(fmt.Sprintf("Type:     %s\n", conflict.ConflictType))
	b.WriteString(fmt.Sprintf("Conflict: %s\n", conflict.ConflictID))
	b.WriteString("\nYour version:\n")
	b.WriteString("  " + fitText(string(conflict.ClientData), 70) + "\n")
	b.WriteString("\nServer version:\n")
	b.WriteString("  " + fitText(string(conflict.ServerData), 70) + "\n")

	if m.settling {
		b.WriteString("\nApplying...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("CONFLICT", strings.TrimRight(b.String(), "\n"),
		"m: keep mine │ s: keep server's │ c: copy mine │ esc: back")
}

func (m mainLoopModel) cmdLoadWords() tea.Cmd {
	ctx := m.ctx
	entities := m.services.EntityService

	return func() tea.Msg {
		words, err := entities.List(ctx, models.EntityTypeVocabulary)
		return wordsLoadedMsg{words: words, err: err}
	}
}

func (m mainLoopModel) cmdSync() tea.Cmd {
	ctx := m.ctx
	sync := m.services.SyncService

	return func() tea.Msg {
		resp, err := sync.Sync(ctx)
		return syncDoneMsg{resp: resp, err: err}
	}
}

func (m mainLoopModel) cmdLoadConflicts() tea.Cmd {
	ctx := m.ctx
	sync := m.services.SyncService

	return func() tea.Msg {
		conflicts, err := sync.ListConflicts(ctx, string(models.ConflictStatusPending), conflictPageSize)
		return conflictsLoadedMsg{conflicts: conflicts, err: err}
	}
}

func (m mainLoopModel) cmdResolveWithClient(conflict models.SyncConflict) tea.Cmd {
	ctx := m.ctx
	sync := m.services.SyncService

	return func() tea.Msg {
		err := sync.ResolveConflict(ctx, conflict.ConflictID, conflict.ClientData)
		return conflictSettledMsg{err: err}
	}
}

func (m mainLoopModel) cmdIgnore(conflict models.SyncConflict) tea.Cmd {
	ctx := m.ctx
	sync := m.services.SyncService

	return func() tea.Msg {
		err := sync.IgnoreConflict(ctx, conflict.ConflictID)
		return conflictSettledMsg{err: err}
	}
}

func cmdCopyToClipboard(v string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(v)}
	}
}
