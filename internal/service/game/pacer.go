package game

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Publisher receives frames for a game as they become visible.
type Publisher interface {
	Publish(gameID string, frame Frame)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, Frame) {}

// Pacer reveals a computed turn one drop at a time. The controller gate
// stays held until the last frame is out, so input arriving during the
// animation is rejected with ErrBusy.
type Pacer struct {
	ctrl       *Controller
	publisher  Publisher
	dropDelay  time.Duration
	thinkDelay time.Duration
	sleep      func(time.Duration)
}

func NewPacer(ctrl *Controller, publisher Publisher, dropDelay, thinkDelay time.Duration) *Pacer {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &Pacer{
		ctrl:       ctrl,
		publisher:  publisher,
		dropDelay:  dropDelay,
		thinkDelay: thinkDelay,
		sleep:      time.Sleep,
	}
}

// Submit takes a column from the player to move. The returned turn is
// already applied; its frames are published after the configured delays.
func (p *Pacer) Submit(column int) (*Turn, error) {
	if !p.ctrl.tryHold() {
		return nil, ErrBusy
	}

	turn, err := p.ctrl.playHeld(column)
	if err != nil {
		p.ctrl.release()
		return nil, err
	}

	if p.dropDelay <= 0 && p.thinkDelay <= 0 {
		p.reveal(turn)
		turn.settle()
	} else {
		go p.reveal(turn)
	}
	return turn, nil
}

// Broadcast publishes a view that did not come from a drop (undo, redo,
// reset, start).
func (p *Pacer) Broadcast(view View) {
	p.publisher.Publish(p.ctrl.GameID, Frame{View: view})
}

func (p *Pacer) reveal(turn *Turn) {
	last := len(turn.Frames) - 1
	for i, frame := range turn.Frames {
		if frame.Drop != nil && frame.Drop.AI && p.thinkDelay > 0 {
			p.sleep(p.thinkDelay)
		}
		if p.dropDelay > 0 {
			p.sleep(p.dropDelay)
		}

		if i != last {
			p.publisher.Publish(p.ctrl.GameID, frame)
			continue
		}
		// the gate opens only once the last frame is out, so a following
		// turn cannot overtake it
		frame.View.Busy = false
		p.publisher.Publish(p.ctrl.GameID, frame)
		p.ctrl.release()
	}
	log.Debugf("[PACER] Revealed %d frame(s) for game %s", len(turn.Frames), p.ctrl.GameID)
}
