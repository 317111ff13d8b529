package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2222").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.pong/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MetricsAddress serves /metrics and /healthz when set.
	MetricsAddress string

	// New sessions admitted per remote IP.
	SessionsPerMinute float64
	SessionBurst      int

	// Display settings for every session.
	TickRate   int
	CellWidth  float64
	CellHeight float64
	KeyHold    time.Duration
}

// SSHServerConfigFrom derives server settings from the loaded config.
func SSHServerConfigFrom(cfg config.Config) SSHServerConfig {
	return SSHServerConfig{
		Address:           cfg.Server.Address,
		HostKeyPath:       cfg.Server.HostKeyPath,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MetricsAddress:    cfg.Server.MetricsAddress,
		SessionsPerMinute: cfg.Server.SessionsPerMinute,
		SessionBurst:      cfg.Server.SessionBurst,
		TickRate:          cfg.Display.TickRate,
		CellWidth:         cfg.Display.CellWidth,
		CellHeight:        cfg.Display.CellHeight,
		KeyHold:           cfg.Display.KeyHold,
	}
}

// SSHServer wraps a Wish SSH server that hands every session its own match.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	metrics *Metrics
	http    *http.Server // nil when metrics are disabled
	limiter *SessionLimiter
	store   *storage.Store
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server. store may be nil, in which case
// no match history is recorded.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pong-ssh",
		})
	}

	srv := &SSHServer{
		config:  cfg,
		metrics: NewMetrics(),
		limiter: NewSessionLimiter(cfg.SessionsPerMinute, cfg.SessionBurst),
		store:   store,
		logger:  logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		dir := config.Dir()
		if dir == "" {
			return nil, errors.New("cannot get home directory for host key")
		}
		hostKeyPath = filepath.Join(dir, "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if err := os.MkdirAll(hostKeyDir, 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	// The last middleware runs first.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.metricsMiddleware,
			srv.rateLimitMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server

	if cfg.MetricsAddress != "" {
		srv.http = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           NewMetricsRouter(srv.metrics),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return srv, nil
}

// runtimeConfig builds the display settings for a session window.
func (s *SSHServer) runtimeConfig(width, height int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW = width
	cfg.ScreenH = height
	if s.config.TickRate > 0 {
		cfg.TickRate = s.config.TickRate
	}
	if s.config.CellWidth > 0 {
		cfg.CellWidth = s.config.CellWidth
	}
	if s.config.CellHeight > 0 {
		cfg.CellHeight = s.config.CellHeight
	}
	return cfg
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		s.metrics.SessionRejected("no_pty")
		wish.Fatalln(sshSession, "pong needs an interactive terminal: connect with ssh -t")
		return nil, nil
	}

	model := NewSessionModel(SessionOptions{
		Store:   s.store,
		Logger:  s.logger.With("user", sshSession.User()),
		Metrics: s.metrics,
		User:    sshSession.User(),
		KeyHold: s.config.KeyHold,
	}, s.runtimeConfig(pty.Window.Width, pty.Window.Height))

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// rateLimitMiddleware refuses sessions from addresses that connect too often.
func (s *SSHServer) rateLimitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		ip := remoteIP(sshSession.RemoteAddr())
		if !s.limiter.Allow(ip) {
			s.logger.Warn("session rate limited", "remote", ip)
			s.metrics.SessionRejected("rate_limit")
			wish.Fatalln(sshSession, "too many sessions from your address, try again in a minute")
			return
		}
		next(sshSession)
	}
}

// metricsMiddleware tracks active sessions.
func (s *SSHServer) metricsMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.metrics.SessionStarted()
		defer s.metrics.SessionEnded()
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server (and the metrics listener, if
// configured) and blocks until ctx is cancelled or a listener fails.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 2)

	s.logger.Info("starting SSH server", "address", s.config.Address)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- fmt.Errorf("ssh server: %w", err)
		}
	}()

	if s.http != nil {
		s.logger.Info("serving metrics", "address", s.config.MetricsAddress)
		go func() {
			if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down...")
	case runErr = <-errCh:
		s.logger.Error("server error", "error", runErr)
	}

	if err := s.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Shutdown gracefully stops the servers.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if s.http != nil {
		errs = append(errs, s.http.Shutdown(ctx))
	}
	errs = append(errs, s.server.Shutdown(ctx))
	return errors.Join(errs...)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Metrics returns the server's collectors.
func (s *SSHServer) Metrics() *Metrics {
	return s.metrics
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Store   *storage.Store
	Logger  *log.Logger
	Metrics *Metrics
	User    string
	KeyHold time.Duration
	Mode    string // recorded for played matches, defaults to ModeSSH
}

// SessionModel manages the full session flow: menu -> match or history -> menu.
// It is the top-level model for SSH sessions and for local play without
// a subcommand.
type SessionModel struct {
	opts       SessionOptions
	config     core.RuntimeConfig
	menu       MenuModel
	game       *Model
	scoreboard *ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions, cfg core.RuntimeConfig) SessionModel {
	if opts.Mode == "" {
		opts.Mode = ModeSSH
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}
	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(cfg),
	}
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

	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	switch selected.Choice {
	case ChoicePlay, ChoiceDemo:
		demo := selected.Choice == ChoiceDemo
		mode := m.opts.Mode
		if demo {
			mode = ModeDemo
		}
		game := NewModel(ModelOptions{
			Store:   m.opts.Store,
			Logger:  m.opts.Logger,
			Metrics: m.opts.Metrics,
			Mode:    mode,
			Player:  m.opts.User,
			KeyHold: m.opts.KeyHold,
			Demo:    demo,
		}, m.config)
		m.game = &game
		m.opts.Logger.Debug("match started", "mode", mode)
		return m, m.game.Init()

	case ChoiceScoreboard:
		sb := NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		return m, sb.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates when the match history is open.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreboard.IsGoingBack() {
		m.scoreboard = nil
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.game != nil:
		return m.game.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(opts SessionOptions, cfg core.RuntimeConfig) error {
	if opts.Mode == "" {
		opts.Mode = ModeLocal
	}
	p := tea.NewProgram(
		NewSessionModel(opts, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
