package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/whispers/internal/core"
	"github.com/vovakirdan/whispers/internal/locale"
	"github.com/vovakirdan/whispers/internal/session"
	"github.com/vovakirdan/whispers/internal/storage"
	"github.com/vovakirdan/whispers/internal/story"
)

// LangEnv is the client environment variable that selects the story language
// for an SSH connection (ssh -o SendEnv=WHISPERS_LANG).
const LangEnv = "WHISPERS_LANG"

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.whispers/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Lang is the default story language.
	Lang string
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.whispers/whispers.db",
		IdleTimeout: 30 * time.Minute,
		Lang:        locale.DefaultLang,
	}
}

// SSHServer serves one story session per SSH connection.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	engine   *story.Engine
	sessions *session.Registry
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, engine *story.Engine, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "whispers-ssh",
		})
	}
	if _, err := locale.New(cfg.Lang); err != nil {
		return nil, err
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open database, runs will not be saved", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config:   cfg,
		store:    store,
		engine:   engine,
		sessions: session.NewRegistry(),
		logger:   logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".whispers", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cat, err := locale.New(langFromEnv(sshSession.Environ(), s.config.Lang))
	if err != nil {
		s.logger.Warn("unsupported language requested", "user", sshSession.User(), "error", err)
		cat = locale.MustNew(s.config.Lang)
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height

	model := NewSessionModel(s, sshSession.Context().SessionID(), sshSession.User(), cat, cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// langFromEnv picks the language from a client environment, falling back to def.
func langFromEnv(environ []string, def string) string {
	for _, kv := range environ {
		if v, ok := strings.CutPrefix(kv, LangEnv+"="); ok && v != "" {
			return v
		}
	}
	return def
}

// sessionMiddleware logs SSH session events and saves unfinished stories
// when a connection drops.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("connection opened",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.release(sshSession.Context().SessionID())
		s.logger.Info("connection closed",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"active", s.sessions.Count(),
		)
	}
}

// release saves the story registered under id, if unfinished, and forgets it.
func (s *SSHServer) release(id string) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		return
	}
	s.sessions.Unregister(id)
	s.saveProgress(sess)
}

func (s *SSHServer) saveProgress(sess *session.Session) {
	if s.store == nil || sess.State().Terminal() {
		return
	}
	if err := s.store.SaveProgress(sess.Snapshot()); err != nil {
		s.logger.Warn("could not save progress", "player", sess.Player(), "error", err)
		return
	}
	s.logger.Debug("progress saved", "player", sess.Player(), "scene", sess.State().Scene)
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server, saving every unfinished story.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)

	for _, sess := range s.sessions.List() {
		s.sessions.Unregister(sess.ID())
		s.saveProgress(sess)
	}
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// progressStore returns the store as a ProgressStore, or nil without a database.
func (s *SSHServer) progressStore() ProgressStore {
	if s.store == nil {
		return nil
	}
	return s.store
}

func (s *SSHServer) historySource() HistorySource {
	if s.store == nil {
		return nil
	}
	return s.store
}

func (s *SSHServer) hasSave(player string) bool {
	if s.store == nil {
		return false
	}
	ok, err := s.store.HasProgress(player)
	if err != nil {
		s.logger.Warn("could not check saved progress", "player", player, "error", err)
	}
	return ok
}

type screen int

const (
	screenMenu screen = iota
	screenStory
	screenHistory
)

// SessionModel manages the full flow of one connection: menu -> story -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	srv     *SSHServer
	connID  string
	user    string
	cat     *locale.Catalog
	config  core.RuntimeConfig
	screen  screen
	menu    MenuModel
	story   Model
	history HistoryModel
	status  string
}

// NewSessionModel creates a new session model.
func NewSessionModel(srv *SSHServer, connID, user string, cat *locale.Catalog, cfg core.RuntimeConfig) SessionModel {
	m := SessionModel{
		srv:    srv,
		connID: connID,
		user:   user,
		cat:    cat,
		config: cfg,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	menu := NewMenuModel(m.cat, m.config, m.srv.hasSave(m.user))
	menu.embedded = true
	return menu
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenStory:
		return m.updateStory(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		return m, tea.Quit
	}

	switch m.menu.Selected() {
	case MenuNewGame:
		return m.startStory(false)
	case MenuContinue:
		return m.startStory(true)
	case MenuHistory:
		m.history = NewHistoryModel(m.srv.historySource(), m.user, m.config.ScreenW, m.config.ScreenH)
		m.history.embedded = true
		m.screen = screenHistory
		return m, m.history.Init()
	}

	return m, cmd
}

// startStory creates or resumes the player's session and switches to it.
func (m SessionModel) startStory(resume bool) (tea.Model, tea.Cmd) {
	opts := session.Options{
		ID:     m.connID,
		Player: m.user,
		Logger: m.srv.logger,
	}
	if m.srv.store != nil {
		opts.Recorder = m.srv.store
	}

	var (
		sess *session.Session
		err  error
	)
	if resume {
		sess, err = m.resume(opts)
	} else {
		sess, err = session.New(m.srv.engine, opts)
	}
	if err != nil {
		m.srv.logger.Warn("could not start story", "user", m.user, "error", err)
		m.menu = m.newMenu()
		m.status = err.Error()
		return m, nil
	}

	m.srv.sessions.Register(sess)
	m.story = NewModel(sess, m.srv.progressStore(), m.cat, m.config)
	m.story.embedded = true
	m.screen = screenStory
	m.status = ""
	return m, m.story.Init()
}

func (m SessionModel) resume(opts session.Options) (*session.Session, error) {
	if m.srv.store == nil {
		return nil, fmt.Errorf("no database")
	}
	snap, err := m.srv.store.LoadProgress(m.user)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, fmt.Errorf("no saved story for %s", m.user)
	}
	return session.Resume(m.srv.engine, *snap, opts)
}

// updateStory handles updates when a story is running.
func (m SessionModel) updateStory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.story.Update(msg)
	if storyModel, ok := newModel.(Model); ok {
		m.story = storyModel
	}

	if m.story.BackToMenu() {
		// Leaving the story keeps it resumable.
		m.srv.release(m.connID)
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	// Quitting falls through to the connection middleware, which saves.
	if m.story.IsQuitting() {
		return m, tea.Quit
	}

	return m, cmd
}

// updateHistory handles updates when the history screen is open.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if historyModel, ok := newModel.(HistoryModel); ok {
		m.history = historyModel
	}

	if m.history.IsQuitting() {
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	switch m.screen {
	case screenStory:
		return m.story.View()
	case screenHistory:
		return m.history.View()
	}

	if m.status != "" {
		return m.menu.View() + "\n" + statusStyle.Render(centerText(m.status, m.config.ScreenW))
	}
	return m.menu.View()
}
