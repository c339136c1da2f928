package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tableflip.dev/jquest/pkg/api"
	"tableflip.dev/jquest/pkg/app"
	"tableflip.dev/jquest/pkg/archetype"
	"tableflip.dev/jquest/pkg/cache"
	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/runner/tea/internal/bottombar"
	"tableflip.dev/jquest/pkg/runner/tea/internal/theme"
	"tableflip.dev/jquest/pkg/session"
	"tableflip.dev/jquest/pkg/store"
	"tableflip.dev/jquest/pkg/viewmodel"
)

type action int

const (
	actionNone action = iota
	actionCreate
	actionRename
)

const normalHelp = "/ search, f folder, a archetype, s sort, n new, e rename, d delete, ? help"

var commandOptions = []bottombar.CommandOption{
	{Name: "quit", Description: "leave jquest"},
	{Name: "refresh", Description: "reload journals from the server"},
	{Name: "clear", Description: "reset search and filters"},
	{Name: "sort", Description: "latest or oldest"},
	{Name: "folder", Description: "all, unassigned or a folder name"},
	{Name: "archetype", Description: "an archetype name, empty for any"},
}

// Model contains UI state
type Model struct {
	svc *app.Service
	ctx context.Context
	log *zap.Logger

	theme  theme.Theme
	footer bottombar.Model

	list   list.Model
	detail viewport.Model
	input  textinput.Model

	filter      viewmodel.Filter
	prevSearch  string
	action      action
	focus       int // 0: journals, 1: detail
	confirmID   int64
	confirmName string
	offline     bool

	storeEvents <-chan store.Event
	cacheEvents <-chan cache.ChangeMsg

	termWidth  int
	termHeight int
}

// New creates a new UI model backed by the Service.
func New(svc *app.Service, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	t := theme.Default()

	d := list.NewDefaultDelegate()
	d.SetSpacing(0)

	l := list.New([]list.Item{}, d, 40, 20)
	l.Title = "Journals"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""

	footer := bottombar.New(t.Footer)
	footer.SetHelp(normalHelp)
	footer.SetCommandDefinitions(commandOptions)

	m := Model{
		svc:    svc,
		ctx:    context.Background(),
		log:    log.Named("tui"),
		theme:  t,
		footer: footer,
		list:   l,
		detail: viewport.New(40, 20),
		input:  ti,
		filter: viewmodel.DefaultFilter(),
	}
	if svc != nil {
		m.cacheEvents = svc.Cache.Events()
	}
	m.footer.SetFilter(m.filter.String())
	return m
}

// messages
type errMsg struct{ err error }

type loadedMsg struct {
	offline bool
	savedAt time.Time
	err     error
}

type watchStartedMsg struct {
	events <-chan store.Event
}

type storeEventMsg struct {
	ev store.Event
	ok bool
}

type cacheEventMsg struct {
	change cache.ChangeMsg
	ok     bool
}

// syncedMsg follows a snapshot written by another jquest process.
type syncedMsg struct {
	savedAt time.Time
}

type deletedMsg struct {
	id  int64
	err error
}

type savedMsg struct {
	journal *model.Journal
	created bool
	err     error
}

// Init loads initial data and starts listening for changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.startWatch(), waitForCache(m.cacheEvents))
}

// load bootstraps the session and journals. When the API is unreachable the
// saved snapshots are shown instead.
func (m Model) load() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if svc == nil {
			return loadedMsg{}
		}
		_, err := svc.Bootstrap(ctx)
		var netErr *api.NetworkError
		switch {
		case errors.As(err, &netErr):
			savedAt, snapErr := svc.LoadSnapshots()
			if snapErr != nil {
				return loadedMsg{err: err}
			}
			return loadedMsg{offline: true, savedAt: savedAt}
		case err != nil:
			return loadedMsg{err: err}
		}
		if _, err := svc.Folders(ctx); err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{}
	}
}

func (m Model) startWatch() tea.Cmd {
	if m.svc == nil || m.svc.Persistence == nil {
		return nil
	}
	p, ctx, log := m.svc.Persistence, m.ctx, m.log
	return func() tea.Msg {
		ch, err := p.Watch(ctx)
		if err != nil {
			log.Warn("watch disabled", zap.Error(err))
			return nil
		}
		return watchStartedMsg{events: ch}
	}
}

func waitForStore(ch <-chan store.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		return storeEventMsg{ev: ev, ok: ok}
	}
}

func waitForCache(ch <-chan cache.ChangeMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		return cacheEventMsg{change: c, ok: ok}
	}
}

func (m Model) reloadSnapshots() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		savedAt, err := svc.LoadSnapshots()
		if errors.Is(err, store.ErrNoSnapshot) {
			return nil
		}
		if err != nil {
			return errMsg{err}
		}
		return syncedMsg{savedAt: savedAt}
	}
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
		m.refreshDetail()
		return m, nil

	case errMsg:
		m.footer.SetError("ERR: " + api.UserMessage(msg.err, msg.err.Error()))
		return m, nil

	case loadedMsg:
		m.offline = msg.offline
		switch {
		case errors.Is(msg.err, session.ErrSignedOut):
			m.footer.SetError("Not signed in. Run `jquest login` first.")
		case msg.err != nil:
			m.footer.SetError("ERR: " + api.UserMessage(msg.err, api.GenericMessage))
		case msg.offline:
			m.footer.SetStatus(fmt.Sprintf("offline copy from %s", msg.savedAt.Local().Format("Jan 2 15:04")))
		case m.svc != nil:
			m.footer.SetStatus(fmt.Sprintf("Welcome, %s", m.svc.Session.User().DisplayName()))
		}
		m.refreshList()
		return m, nil

	case syncedMsg:
		m.refreshList()
		return m, nil

	case watchStartedMsg:
		m.storeEvents = msg.events
		return m, waitForStore(m.storeEvents)

	case storeEventMsg:
		if !msg.ok {
			m.storeEvents = nil
			return m, nil
		}
		switch msg.ev.Type {
		case store.EventSnapshotChanged:
			if msg.ev.Collection != store.CollectionUser && !m.hasPending() {
				cmds = append(cmds, m.reloadSnapshots())
			}
		case store.EventInvalidated:
			m.footer.SetStatus("saved data changed elsewhere, press r to refresh")
		}
		cmds = append(cmds, waitForStore(m.storeEvents))
		return m, tea.Batch(cmds...)

	case cacheEventMsg:
		if !msg.ok {
			m.cacheEvents = nil
			return m, nil
		}
		m.refreshList()
		return m, waitForCache(m.cacheEvents)

	case deletedMsg:
		if msg.err != nil {
			m.footer.SetError("Failed to delete journal: " + strings.Join(app.FailureMessages(msg.err, api.GenericMessage), " "))
		} else {
			m.footer.SetStatus("Journal deleted")
		}
		m.refreshList()
		return m, nil

	case savedMsg:
		switch {
		case msg.err != nil:
			m.footer.SetError("Failed to save journal: " + strings.Join(app.FailureMessages(msg.err, api.GenericMessage), " "))
		case msg.created:
			m.footer.SetStatus("Journal saved")
			m.selectJournal(msg.journal.ID)
		default:
			m.footer.SetStatus("Journal saved")
		}
		m.refreshList()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.footer.Mode() {
		case bottombar.ModeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.footer.SetMode(bottombar.ModeNormal)
			}
			return m, nil
		case bottombar.ModeConfirm:
			return m.updateConfirm(msg)
		case bottombar.ModeSearch:
			return m.updateSearch(msg)
		case bottombar.ModeEdit:
			return m.updateEdit(msg)
		case bottombar.ModeCommand:
			return m.updateCommand(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg.String() {
	case "q":
		m.footer.SetStatus("Use :q or :quit to quit")
		return m, nil
	case "?":
		m.footer.SetMode(bottombar.ModeHelp)
		return m, nil
	case ":":
		m.footer.SetMode(bottombar.ModeCommand)
		return m, m.focusInput("")
	case "/":
		m.prevSearch = m.filter.Search
		m.footer.SetMode(bottombar.ModeSearch)
		return m, m.focusInput(m.filter.Search)
	case "esc":
		if m.focus == 1 {
			m.focus = 0
			return m, nil
		}
		if m.filter.Search != "" {
			m.filter.Search = ""
			m.refreshList()
		}
		return m, nil
	case "tab", "enter":
		if m.focus == 0 && m.selected() != nil {
			m.focus = 1
		} else {
			m.focus = 0
		}
		m.refreshDetail()
		return m, nil
	case "f":
		m.filter.Folder = nextFolder(m.filter.Folder, m.svc.Cache.Folders())
		m.refreshList()
		return m, nil
	case "a":
		m.filter.Archetype = nextArchetype(m.filter.Archetype, viewmodel.Archetypes(m.svc.Cache.Journals()))
		m.refreshList()
		return m, nil
	case "s":
		if m.filter.Sort == viewmodel.SortOldest {
			m.filter.Sort = viewmodel.SortLatest
		} else {
			m.filter.Sort = viewmodel.SortOldest
		}
		m.refreshList()
		return m, nil
	case "c":
		m.filter = viewmodel.DefaultFilter()
		m.refreshList()
		return m, nil
	case "r":
		m.footer.SetStatus("Refreshing...")
		return m, m.load()
	case "n":
		m.action = actionCreate
		m.footer.SetMode(bottombar.ModeEdit)
		return m, m.focusInput("")
	case "e":
		if j := m.selected(); j != nil {
			m.action = actionRename
			m.footer.SetMode(bottombar.ModeEdit)
			return m, m.focusInput(j.Title)
		}
		return m, nil
	case "d":
		if j := m.selected(); j != nil {
			m.confirmID = j.ID
			m.confirmName = j.Title
			m.footer.SetMode(bottombar.ModeConfirm)
			m.footer.SetStatus(fmt.Sprintf("Delete %q? (y/n)", j.Title))
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 1 {
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	prev := m.selectedID()
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	if m.selectedID() != prev {
		m.refreshDetail()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.confirmID
		m.footer.SetMode(bottombar.ModeNormal)
		m.footer.SetStatus(fmt.Sprintf("Deleting %q...", m.confirmName))
		m.confirmID, m.confirmName = 0, ""
		svc, ctx := m.svc, m.ctx
		return m, func() tea.Msg {
			return deletedMsg{id: id, err: svc.DeleteJournal(ctx, id)}
		}
	case "n", "N", "esc", "q":
		m.footer.SetMode(bottombar.ModeNormal)
		m.footer.SetStatus("Delete cancelled")
		m.confirmID, m.confirmName = 0, ""
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.blurInput()
		m.footer.SetMode(bottombar.ModeNormal)
		return m, nil
	case "esc":
		m.filter.Search = m.prevSearch
		m.blurInput()
		m.footer.SetMode(bottombar.ModeNormal)
		m.refreshList()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter.Search = m.input.Value()
	m.footer.UpdateInput(m.input.Value(), m.input.View())
	m.refreshList()
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		act := m.action
		m.action = actionNone
		m.blurInput()
		m.footer.SetMode(bottombar.ModeNormal)
		return m, m.save(act, title)
	case "esc":
		m.action = actionNone
		m.blurInput()
		m.footer.SetMode(bottombar.ModeNormal)
		m.footer.SetStatus("Edit cancelled")
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.footer.UpdateInput(m.input.Value(), m.input.View())
	return m, cmd
}

// save creates a journal in the current folder or renames the selected one.
// A rename shows at once and is rolled back if the server refuses.
func (m *Model) save(act action, title string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	switch act {
	case actionCreate:
		req := forms.JournalRequest{Title: title}
		if id, ok := m.filter.Folder.ID(); ok {
			req.FolderID = model.FolderRef(id)
		}
		if a, ok := archetype.Lookup(m.filter.Archetype); ok {
			req.Archetype = a.Name
		}
		return func() tea.Msg {
			j, err := svc.CreateJournal(ctx, req)
			return savedMsg{journal: j, created: true, err: err}
		}
	case actionRename:
		j := m.selected()
		if j == nil {
			return nil
		}
		req := forms.JournalFromModel(*j)
		req.Title = title
		id := j.ID
		return func() tea.Msg {
			j, err := svc.UpdateJournal(ctx, id, req)
			return savedMsg{journal: j, err: err}
		}
	}
	return nil
}

func (m Model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(m.input.Value())
		m.blurInput()
		m.footer.SetMode(bottombar.ModeNormal)
		return m.runCommand(input)
	case "esc":
		m.blurInput()
		m.footer.SetMode(bottombar.ModeNormal)
		m.footer.SetStatus("Command cancelled")
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.footer.UpdateInput(m.input.Value(), m.input.View())
	return m, cmd
}

func (m Model) runCommand(input string) (tea.Model, tea.Cmd) {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case "":
		return m, nil
	case "q", "quit", "exit":
		return m, tea.Quit
	case "refresh":
		return m, m.load()
	case "clear":
		m.filter = viewmodel.DefaultFilter()
	case "sort":
		s, err := viewmodel.ParseSortOrder(arg)
		if err != nil {
			m.footer.SetError(err.Error())
			return m, nil
		}
		m.filter.Sort = s
	case "folder":
		f, err := folderFilterByName(arg, m.svc.Cache.Folders())
		if err != nil {
			m.footer.SetError(err.Error())
			return m, nil
		}
		m.filter.Folder = f
	case "archetype":
		m.filter.Archetype = archetype.Normalize(arg)
	default:
		m.footer.SetError(fmt.Sprintf("Unknown command: %s", input))
		return m, nil
	}
	m.refreshList()
	return m, nil
}

func (m *Model) focusInput(value string) tea.Cmd {
	m.input.Reset()
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	m.footer.UpdateInput(m.input.Value(), m.input.View())
	return tea.Batch(cmd, textinput.Blink)
}

func (m *Model) blurInput() {
	m.input.Reset()
	m.input.Blur()
}

func (m Model) hasPending() bool {
	for _, j := range m.svc.Cache.Journals() {
		if m.svc.JournalPending(j.ID) {
			return true
		}
	}
	return false
}

// refreshList rebuilds the list from the cache through the current filter.
func (m *Model) refreshList() {
	if m.svc == nil {
		return
	}
	folders := m.svc.Cache.Folders()
	view := viewmodel.Derive(m.svc.Cache.Journals(), m.filter)
	prev := m.selectedID()

	items := make([]list.Item, 0, len(view))
	sel := 0
	for i, j := range view {
		items = append(items, journalItem{
			journal: j,
			folder:  viewmodel.FolderLabel(folders, j.FolderID),
			pending: m.svc.JournalPending(j.ID),
		})
		if j.ID == prev {
			sel = i
		}
	}
	m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(sel)
	}
	m.list.Title = fmt.Sprintf("Journals (%d)", len(items))
	m.footer.SetFilter(m.filter.String())
	m.refreshDetail()
}

func (m *Model) selectJournal(id int64) {
	for i, it := range m.list.Items() {
		if ji, ok := it.(journalItem); ok && ji.journal.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) selected() *model.Journal {
	if len(m.list.Items()) == 0 {
		return nil
	}
	it, ok := m.list.SelectedItem().(journalItem)
	if !ok {
		return nil
	}
	j := it.journal
	return &j
}

func (m Model) selectedID() int64 {
	if j := m.selected(); j != nil {
		return j.ID
	}
	return 0
}

// applySizes recalculates pane sizes based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	left := m.termWidth * 2 / 5
	if left < 28 {
		left = 28
	}
	if left > 60 {
		left = 60
	}
	right := m.termWidth - left - 4
	if right < 20 {
		right = 20
	}
	height := m.termHeight - 3
	if height < 5 {
		height = 5
	}
	m.list.SetSize(left, height)
	m.detail.Width = right
	m.detail.Height = height - m.theme.Detail.Frame.GetVerticalFrameSize()
}
