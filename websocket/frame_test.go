package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbright/sparkfield/sim"
)

func TestFrameEventTranslation(t *testing.T) {
	tests := []struct {
		name string
		in   Frame
		want sim.EventKind
		ok   bool
	}{
		{"press", Frame{Kind: KindDown, X: 10, Y: 20, Buttons: 1}, sim.PointerDown, true},
		{"drag", Frame{Kind: KindMove, X: 11, Y: 21, Buttons: 1}, sim.PointerMove, true},
		{"release", Frame{Kind: KindUp}, sim.PointerUp, true},
		{"leave", Frame{Kind: KindLeave}, sim.PointerLeave, true},
		{"press on page UI", Frame{Kind: KindDown, Interactive: true}, 0, false},
		{"unknown kind", Frame{Kind: "hover"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := tt.in.Event()
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, ev.Kind)
				assert.Equal(t, tt.in.X, ev.X)
				assert.Equal(t, tt.in.Y, ev.Y)
			}
		})
	}
}

func TestFrameRoundTrip(t *testing.T) {
	orig := sim.PointerEvent{Kind: sim.PointerMove, X: 42.5, Y: 17, Buttons: 1}

	payload, err := json.Marshal(FrameFor(orig))
	require.NoError(t, err)

	var f Frame
	require.NoError(t, json.Unmarshal(payload, &f))
	ev, ok := f.Event()
	require.True(t, ok)
	assert.Equal(t, orig, ev)
}

func TestConfigDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	assert.NotEmpty(t, c.Addr)
	assert.Greater(t, c.EventRate, 0.0)
	assert.Greater(t, c.EventBurst, 0)

	c = Config{Addr: ":9000", EventRate: 60}.withDefaults()
	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, 60.0, c.EventRate)
}
