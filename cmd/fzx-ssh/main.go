package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/jakecoffman/fzx"
	"github.com/jakecoffman/fzx/internal/draw"
	"github.com/jakecoffman/fzx/internal/scene"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = ".ssh/fzx_host_key"
	defaultScene       = "boxes"
)

var logger = fzx.NewLogger(os.Stderr, "")

func main() {
	host := fzx.GetEnv("SSH_HOST", defaultHost)
	port := fzx.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := fzx.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "host_key", hostKeyPath)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			sceneMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// frames are small and latency matters more than throughput
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// sceneMiddleware runs a private simulation per session. The command names
// the scene and an optional seed: ssh -t host pyramid 42
func sceneMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}
		sessLog := logger.With("user", sess.User())
		sessLog.Info("new session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		name, seed := defaultScene, time.Now().UnixNano()
		if args := sess.Command(); len(args) > 0 {
			name = args[0]
			if len(args) > 1 {
				if n, err := strconv.ParseInt(args[1], 10, 64); err == nil {
					seed = n
				}
			}
		}
		// remote users may not read files from the server
		s, err := scene.Get(name)
		if err != nil {
			fmt.Fprintln(sess, err)
			return
		}
		space, err := scene.New(s, nil, seed)
		if err != nil {
			fmt.Fprintln(sess, err)
			return
		}

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		err = draw.Run(sess.Context(), space, sess, sess, draw.ViewerOptions{
			FPS:      30,
			DT:       1.0 / 30,
			SizeFunc: sizeTracker.getSize,
			Logger:   sessLog,
		})
		if err != nil {
			sessLog.Error("session failed", "err", err)
		}
		sessLog.Info("session ended", "steps", space.Stats().Steps)
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
