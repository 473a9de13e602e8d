package websocket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/finbright/sparkfield/sim"
)

// Config holds the bridge's listen address and static asset root.
type Config struct {
	Addr   string
	Prefix string
	Root   string

	// EventRate/EventBurst bound how many pointer frames per second a
	// connection may deliver. A flooding client is throttled, not trusted
	// to behave.
	EventRate  float64
	EventBurst int
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = "localhost:5000"
	}
	if c.Prefix == "" {
		c.Prefix = "/"
	}
	if c.Root == "" {
		c.Root = "."
	}
	if c.EventRate <= 0 {
		c.EventRate = 240
	}
	if c.EventBurst <= 0 {
		c.EventBurst = 480
	}
	return c
}

// Bridge serves the front-end assets and accepts pointer frames on /ws,
// publishing them as sim events to whoever consumes Events. Frames are also
// fanned out to the other /ws connections, which is how a native renderer
// attached with Dial sees what the browser page produces.
type Bridge struct {
	cfg      Config
	log      *zap.Logger
	upgrader websocket.Upgrader
	events   chan sim.PointerEvent

	mu    sync.Mutex
	conns map[*websocket.Conn]chan []byte
}

func NewBridge(cfg Config, log *zap.Logger) *Bridge {
	return &Bridge{
		cfg: cfg.withDefaults(),
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The bridge only ever runs next to the page it serves.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		events: make(chan sim.PointerEvent, 256),
		conns:  make(map[*websocket.Conn]chan []byte),
	}
}

// Events is the stream of decoded pointer events from all connections.
func (b *Bridge) Events() <-chan sim.PointerEvent { return b.events }

// Run serves until the context is canceled, then shuts down gracefully.
func (b *Bridge) Run(ctx context.Context) error {
	root, err := filepath.Abs(b.cfg.Root)
	if err != nil {
		return fmt.Errorf("resolve asset root: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(b.cfg.Prefix, http.StripPrefix(b.cfg.Prefix, http.FileServer(http.Dir(root))))
	mux.HandleFunc("/ws", b.handleWS)

	srv := &http.Server{
		Addr:    b.cfg.Addr,
		Handler: b.logged(mux),
	}
	b.log.Info("bridge listening",
		zap.String("addr", b.cfg.Addr),
		zap.String("root", root),
		zap.String("prefix", b.cfg.Prefix))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (b *Bridge) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.log.Debug("request",
			zap.String("remote", r.RemoteAddr),
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()))
		next.ServeHTTP(w, r)
	})
}

// handleWS upgrades the connection and pumps pointer frames into the event
// stream until the client goes away.
func (b *Bridge) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		var handshake websocket.HandshakeError
		if !errors.As(err, &handshake) {
			b.log.Warn("upgrade failed", zap.Error(err))
		}
		return
	}
	defer conn.Close()
	b.log.Info("input connection opened", zap.String("remote", conn.RemoteAddr().String()))

	send := b.register(conn)
	defer b.unregister(conn)
	go writePump(conn, send)

	limiter := rate.NewLimiter(rate.Limit(b.cfg.EventRate), b.cfg.EventBurst)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				b.log.Warn("input connection lost", zap.Error(err))
			}
			return
		}
		if !limiter.Allow() {
			continue
		}
		var f Frame
		if err := json.Unmarshal(msg, &f); err != nil {
			b.log.Debug("bad frame", zap.Error(err))
			continue
		}
		ev, ok := f.Event()
		if !ok {
			continue
		}
		select {
		case b.events <- ev:
		default:
			// Consumers fell behind; dropping input beats blocking reads.
		}
		b.broadcast(conn, msg)
	}
}

func (b *Bridge) register(conn *websocket.Conn) chan []byte {
	send := make(chan []byte, 64)
	b.mu.Lock()
	b.conns[conn] = send
	b.mu.Unlock()
	return send
}

func (b *Bridge) unregister(conn *websocket.Conn) {
	b.mu.Lock()
	if send, ok := b.conns[conn]; ok {
		delete(b.conns, conn)
		close(send)
	}
	b.mu.Unlock()
}

// broadcast fans a raw frame out to every other connection, dropping for
// clients that fall behind.
func (b *Bridge) broadcast(from *websocket.Conn, msg []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn, send := range b.conns {
		if conn == from {
			continue
		}
		select {
		case send <- msg:
		default:
		}
	}
}

func writePump(conn *websocket.Conn, send <-chan []byte) {
	for msg := range send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
