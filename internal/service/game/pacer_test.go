package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

func TestPacerZeroDelayRevealsInline(t *testing.T) {
	c := newStarted(t, domain.ModeAI, 5)
	rec := &recorder{}
	p := NewPacer(c, rec, 0, 0)

	turn, err := p.Submit(2)
	require.NoError(t, err)
	assert.False(t, c.Busy())
	assert.False(t, turn.Final().Busy)

	frames := rec.Frames()
	require.Len(t, frames, 2)
	assert.True(t, frames[0].View.Busy, "intermediate frames are shown while the gate is held")
	assert.False(t, frames[1].View.Busy)
	assert.True(t, frames[1].Drop.AI)
}

func TestPacerHoldsGateDuringReveal(t *testing.T) {
	c := newStarted(t, domain.ModeAI, 5)
	rec := &recorder{}
	p := NewPacer(c, rec, 300*time.Millisecond, 500*time.Millisecond)

	var slept []time.Duration
	unblock := make(chan struct{})
	p.sleep = func(d time.Duration) {
		slept = append(slept, d)
		<-unblock
	}

	_, err := p.Submit(2)
	require.NoError(t, err)
	assert.True(t, c.Busy())

	_, err = p.Submit(3)
	assert.ErrorIs(t, err, ErrBusy)
	_, err = c.Undo()
	assert.ErrorIs(t, err, ErrBusy)

	close(unblock)
	require.Eventually(t, func() bool { return !c.Busy() }, 2*time.Second, 5*time.Millisecond)
	require.Len(t, rec.Frames(), 2)
	assert.Equal(t, []time.Duration{300 * time.Millisecond, 500 * time.Millisecond, 300 * time.Millisecond}, slept)

	// state was applied up front; the next move goes through
	assert.Equal(t, []int{2, 5}, c.View().Moves)
}

// gateWatcher records whether the gate was held when each frame went out.
type gateWatcher struct {
	ctrl *Controller
	held []bool
}

func (g *gateWatcher) Publish(_ string, f Frame) {
	g.held = append(g.held, g.ctrl.Busy())
}

func TestPacerPublishesLastFrameBeforeRelease(t *testing.T) {
	c := newStarted(t, domain.ModeAI, 5)
	watcher := &gateWatcher{ctrl: c}
	p := NewPacer(c, watcher, 0, 0)

	_, err := p.Submit(2)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, true}, watcher.held)
	assert.False(t, c.Busy())
}

func TestPacerErrorReleasesGate(t *testing.T) {
	c := NewController("g1", nil, nil, nil)
	p := NewPacer(c, nil, time.Second, time.Second)

	_, err := p.Submit(1)
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.False(t, c.Busy())
}

func TestPacerBroadcast(t *testing.T) {
	c := newStarted(t, domain.ModePvP)
	rec := &recorder{}
	p := NewPacer(c, rec, 0, 0)
	p.Broadcast(c.View())

	frames := rec.Frames()
	require.Len(t, frames, 1)
	assert.Nil(t, frames[0].Drop)
	assert.Equal(t, "g1", frames[0].View.GameID)
}
