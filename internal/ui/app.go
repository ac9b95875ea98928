package ui

import (
	"io"
	"strings"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/debug"
	"taskboard/internal/domain"
	"taskboard/internal/github"
	"taskboard/internal/refresh"
	"taskboard/internal/ui/theme"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	log "github.com/sirupsen/logrus"
)

const (
	minColumnWidth  = 18
	minDetailHeight = 6
)

var (
	// openURLFn and writeClipboardFn are swapped out in tests.
	openURLFn        = browser.OpenURL
	writeClipboardFn = clipboard.WriteAll
	saveThemeFn      = config.SaveTheme
)

func init() {
	// pkg/browser echoes the launcher's output, which would corrupt the
	// alternate screen.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// Config configures the terminal board.
type Config struct {
	Fetcher github.Fetcher
	Links   github.Links
	// RefreshInterval is shown in the footer. Ticks are delivered from
	// outside as TriggerRefreshMsg.
	RefreshInterval time.Duration
	AutoRefresh     bool
	OutputFormat    string
	Theme           string
	Title           string
	Subtitle        string
	Version         string
	Logger          *log.Logger
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// App implements the Bubble Tea model of the task board.
type App struct {
	fetcher github.Fetcher
	links   github.Links
	logger  *log.Logger
	now     func() time.Time

	state refresh.LoadState

	keys    KeyMap
	styles  styles
	spinner spinner.Model

	column  int
	cursors [3]int
	offsets [3]int

	viewport   viewport.Model
	showDetail bool
	showHelp   bool

	toast   string
	toastID int

	width  int
	height int
	ready  bool

	refreshInterval time.Duration
	autoRefresh     bool
	outputFormat    string
	title           string
	subtitle        string
	version         string
}

// NewApp builds the board model. The first fetch starts from Init.
func NewApp(cfg Config) (*App, error) {
	if cfg.Fetcher == nil {
		return nil, errNoFetcher
	}
	if name := strings.TrimSpace(cfg.Theme); name != "" && !theme.Set(name) {
		debug.Logf("unknown theme %q, keeping %s", name, theme.CurrentName())
	}
	logger := cfg.Logger
	if logger == nil {
		logger = debug.Logger()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	title := cfg.Title
	if strings.TrimSpace(title) == "" {
		title = config.DefaultTitle
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		fetcher:         cfg.Fetcher,
		links:           cfg.Links,
		logger:          logger,
		now:             now,
		state:           refresh.Initial(),
		keys:            DefaultKeyMap(),
		styles:          newStyles(theme.Current()),
		spinner:         sp,
		viewport:        viewport.New(0, 0),
		refreshInterval: cfg.RefreshInterval,
		autoRefresh:     cfg.AutoRefresh,
		outputFormat:    cfg.OutputFormat,
		title:           title,
		subtitle:        cfg.Subtitle,
		version:         cfg.Version,
	}, nil
}

// Init starts the initial load.
func (m *App) Init() tea.Cmd {
	return m.startRefresh()
}

// State returns the current load state.
func (m *App) State() refresh.LoadState {
	return m.state
}

func (m *App) currentCategory() domain.Category {
	return domain.Columns[m.column].Category
}

func (m *App) currentLane() []domain.Issue {
	if m.state.ColumnStatus(m.currentCategory()) != refresh.ColumnItems {
		return nil
	}
	return m.state.Board.Lane(m.currentCategory())
}

// selectedIssue is the card under the cursor, if cards are shown.
func (m *App) selectedIssue() (domain.Issue, bool) {
	if m.state.ColumnStatus(m.currentCategory()) != refresh.ColumnItems {
		return domain.Issue{}, false
	}
	return m.cursorIssue()
}

// cursorIssue is the issue at the cursor on the last good board, even while
// a refresh hides the cards.
func (m *App) cursorIssue() (domain.Issue, bool) {
	lane := m.state.Board.Lane(m.currentCategory())
	idx := m.cursors[m.column]
	if idx < 0 || idx >= len(lane) {
		return domain.Issue{}, false
	}
	return lane[idx], true
}

// restoreSelection moves the cursor back to issue id after a refresh,
// following it into another column if it changed lanes.
func (m *App) restoreSelection(id int64) {
	for col, meta := range domain.Columns {
		for i, issue := range m.state.Board.Lane(meta.Category) {
			if issue.ID == id {
				m.column = col
				m.cursors[col] = i
				return
			}
		}
	}
}

func (m *App) clampCursors() {
	for col, meta := range domain.Columns {
		n := len(m.state.Board.Lane(meta.Category))
		switch {
		case n == 0:
			m.cursors[col] = 0
		case m.cursors[col] >= n:
			m.cursors[col] = n - 1
		case m.cursors[col] < 0:
			m.cursors[col] = 0
		}
		if m.offsets[col] > m.cursors[col] {
			m.offsets[col] = m.cursors[col]
		}
	}
}

func (m *App) moveCursor(delta int) {
	lane := m.currentLane()
	if len(lane) == 0 {
		return
	}
	next := m.cursors[m.column] + delta
	if next < 0 {
		next = 0
	}
	if next >= len(lane) {
		next = len(lane) - 1
	}
	m.cursors[m.column] = next
	m.updateDetailContent()
}

func (m *App) moveColumn(delta int) {
	n := len(domain.Columns)
	m.column = (m.column + delta + n) % n
	m.updateDetailContent()
}

func (m *App) showToast(text string) tea.Cmd {
	m.toastID++
	m.toast = text
	return scheduleToastExpiry(m.toastID)
}

func openURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return urlOpenedMsg{url: url, err: openURLFn(url)}
	}
}
