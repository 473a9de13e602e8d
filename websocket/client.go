package websocket

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/finbright/sparkfield/sim"
)

// Dial attaches to a running bridge and returns its pointer event stream.
// The channel closes when the connection drops; the returned func tears the
// connection down.
func Dial(ctx context.Context, url string, log *zap.Logger) (<-chan sim.PointerEvent, func() error, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("dial bridge %s: %w", url, err)
	}

	events := make(chan sim.PointerEvent, 64)
	go func() {
		defer close(events)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn("bridge connection lost", zap.Error(err))
				}
				return
			}
			var f Frame
			if err := json.Unmarshal(msg, &f); err != nil {
				continue
			}
			if ev, ok := f.Event(); ok {
				events <- ev
			}
		}
	}()
	return events, conn.Close, nil
}
