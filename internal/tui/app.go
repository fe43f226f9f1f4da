package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"askmira/internal/chat"
	"askmira/internal/rag/pipeline"
	"askmira/internal/rag/storages/objectstore"
	"askmira/pkg/logger"
)

// Deps are the backend services the TUI talks to. History and Objects are
// optional; the matching screens degrade when they are nil.
type Deps struct {
	Auth      *AuthClient
	Retriever *pipeline.RetrievalPipeline
	QA        *pipeline.QAPipeline
	History   *chat.HistoryStore
	Objects   *objectstore.Store
	TopK      int
	Log       *logger.Logger
}

type viewType int

const (
	viewAuth viewType = iota
	viewChat
	viewBrowse
)

// App is the root Bubbletea model. It owns the screens and routes messages
// to whichever one is active.
type App struct {
	deps   *Deps
	styles *Styles

	current  viewType
	auth     *AuthView
	chat     *ChatView
	browse   *BrowseView
	username string
	token    string

	width  int
	height int
}

var _ tea.Model = (*App)(nil)

// NewApp creates the application starting at the login screen.
func NewApp(deps *Deps) *App {
	styles := DefaultStyles()
	return &App{
		deps:   deps,
		styles: styles,
		auth:   NewAuthView(styles, deps.Auth),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("AskMira"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.chat != nil {
			a.chat.SetSize(msg.Width, msg.Height)
		}
		if a.browse != nil {
			a.browse.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if a.token != "" {
				// Best effort; the token expires on its own anyway.
				go a.deps.Auth.Logout(a.token)
			}
			return a, tea.Quit
		case "ctrl+e":
			if a.current == viewChat && a.deps.Objects != nil {
				a.current = viewBrowse
				if a.browse == nil {
					a.browse = NewBrowseView(a.styles, a.deps)
					a.browse.SetSize(a.width, a.height)
					return a, a.browse.Init()
				}
				return a, nil
			}
		case "esc":
			if a.current == viewBrowse && a.browse.AtRoot() {
				a.current = viewChat
				return a, nil
			}
		}

	case authResultMsg:
		if msg.err == nil && msg.token != "" {
			a.username = msg.username
			a.token = msg.token
			a.chat = NewChatView(a.styles, a.deps, a.username)
			a.chat.SetSize(a.width, a.height)
			a.current = viewChat
			return a, a.chat.Init()
		}
		// Registration success and errors stay on the auth screen.
	}

	var cmd tea.Cmd
	switch a.current {
	case viewAuth:
		a.auth, cmd = a.auth.Update(msg)
	case viewChat:
		a.chat, cmd = a.chat.Update(msg)
	case viewBrowse:
		a.browse, cmd = a.browse.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	switch a.current {
	case viewChat:
		return a.chat.View()
	case viewBrowse:
		return a.browse.View()
	default:
		return a.auth.View()
	}
}
