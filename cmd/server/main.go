package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/Mshel/typejumper/internal/config"
	"github.com/Mshel/typejumper/internal/game"
	"github.com/Mshel/typejumper/internal/highscore"
	"github.com/Mshel/typejumper/internal/spectate"
	"github.com/Mshel/typejumper/internal/ui"
)

const shutdownTimeout = 30 * time.Second

// connectionLimiter caps concurrent SSH sessions per remote IP.
type connectionLimiter struct {
	limit int
	mu    sync.Mutex
	count map[string]int
}

func newConnectionLimiter(limit int) *connectionLimiter {
	return &connectionLimiter{limit: limit, count: make(map[string]int)}
}

func remoteIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

// acquire reserves a slot for ip and reports the count it saw.
func (l *connectionLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	current := l.count[ip]
	if current >= l.limit {
		return current, false
	}
	l.count[ip]++
	return current + 1, true
}

func (l *connectionLimiter) release(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count[ip]--
	if l.count[ip] <= 0 {
		delete(l.count, ip)
		return 0
	}
	return l.count[ip]
}

func (l *connectionLimiter) Middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := remoteIP(s)
		count, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", count+1, "current_limit", l.limit)
			wish.Fatalf(s, "Too many active connections from your IP (%d/%d). Please try again later.\n", count+1, l.limit)
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", count, "limit", l.limit)
		next(s)
		log.Info("Connection closed", "ip", ip, "count_after", l.release(ip))
	}
}

func teaHandler(opts ui.Options) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := s.Pty()
		sessionOpts := opts
		sessionOpts.Renderer = bubbletea.MakeRenderer(s)
		model := ui.NewControllerModel(sessionOpts, pty.Window.Width, pty.Window.Height)
		return model, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

func main() {
	cfg := config.Load()
	log.SetLevel(cfg.LogLevel)

	if err := cfg.Game.Validate(); err != nil {
		log.Fatal("Invalid game settings", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := highscore.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to open high score store", "err", err)
	}
	defer store.Close()

	opts := ui.Options{
		GameConfig: cfg.Game,
		Viewport:   game.DefaultViewport(),
		Seed:       cfg.Seed,
		Store:      store,
	}

	var spectateServer *http.Server
	if cfg.SpectateAddr != "" {
		hub := spectate.NewHub()
		go hub.Run(ctx)
		opts.Spectators = hub

		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		spectateServer = &http.Server{Addr: cfg.SpectateAddr, Handler: mux}
		go func() {
			log.Info("Starting spectator feed", "addr", cfg.SpectateAddr)
			if err := spectateServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Spectator feed stopped", "err", err)
			}
		}()
	}

	limiter := newConnectionLimiter(cfg.MaxConnPerIP)
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	sshServer, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.PrivateKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(opts)),
			activeterm.Middleware(),
			limiter.Middleware,
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatal("Failed to create ssh server", "err", err)
	}

	log.Info("Starting SSH server", "addr", addr)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("Stopping SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sshServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "err", err)
	}
	if spectateServer != nil {
		if err := spectateServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Could not stop spectator feed", "err", fmt.Errorf("shutdown: %w", err))
		}
	}
}
