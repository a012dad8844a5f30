// Package httpserver is the single HTTP surface: a static placeholder page
// at "/" and a WebSocket upgrade at "/ws" that spins up one session.Session
// per connection. Grounded on
// _examples/original_source/src/screen_server.rs's run_server/ws_handler,
// translated from axum's Router to net/http.ServeMux — no router library
// appears anywhere in the reference pack for a surface this small.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cloudomate/streamio/internal/config"
	"github.com/cloudomate/streamio/internal/logging"
	"github.com/cloudomate/streamio/internal/session"
	"github.com/cloudomate/streamio/internal/signaling"
)

const indexPage = `<!DOCTYPE html>
<html>
<head><title>streamio</title></head>
<body>
<video id="remote" autoplay playsinline></video>
<p>streamio is running. Connect a signaling client to /ws.</p>
</body>
</html>
`

// Server wraps an http.Server exposing the index page and the /ws upgrade.
type Server struct {
	cfg config.Config
	srv *http.Server
}

// New builds a Server bound to cfg.Port. It doesn't start listening until Run
// is called.
func New(cfg config.Config) *Server {
	mux := http.NewServeMux()
	s := &Server{cfg: cfg}

	mux.HandleFunc("/", indexHandler)
	mux.HandleFunc("/ws", s.wsHandler)

	s.srv = &http.Server{
		Addr:              addr(cfg.Port),
		Handler:           permissiveCORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func addr(port int) string {
	return ":" + strconv.Itoa(port)
}

// permissiveCORS mirrors tower_http's CorsLayer::permissive(): spec.md has
// no cross-origin restriction of its own, the signaling client is served
// from the same origin in production but browser devtools and local dev
// pages need this relaxed.
func permissiveCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	log := logging.L("httpserver")

	conn, err := signaling.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "error", err)
		return
	}

	log.Info("new websocket connection", "remote", r.RemoteAddr)

	sess, err := session.New(s.cfg, conn)
	if err != nil {
		log.Error("failed to construct session", "error", err)
		conn.Close()
		return
	}

	sess.Run()
	log.Info("websocket session ended", "remote", r.RemoteAddr)
}

// Run starts the HTTP server and blocks until it stops or ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
