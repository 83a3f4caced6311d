package game

import (
	"github.com/pkg/errors"
	"github.com/thoas/go-funk"
)

var (
	ErrUnknownAction = errors.New("game: unknown action")
	ErrInvalidRaise  = errors.New("game: raiseTo must be a positive integer")
)

// Action is a player intent forwarded to the server. The client never
// judges legality; it only checks the variant is one it knows.
type Action string

const (
	ActionFold  Action = "Fold"
	ActionCall  Action = "Call"
	ActionRaise Action = "Raise"
)

var validActions = []Action{ActionFold, ActionCall, ActionRaise}

func (a Action) Validate() error {
	if !funk.Contains(validActions, a) {
		return errors.Wrapf(ErrUnknownAction, "%q", string(a))
	}
	return nil
}

// PlayerInput is the POST body for a player action. RaiseTo is present
// if and only if the action is Raise.
type PlayerInput struct {
	PlayerID string `json:"playerId"`
	Action   Action `json:"action"`
	RaiseTo  *int64 `json:"raiseTo,omitempty"`
}

func (p PlayerInput) Validate() error {
	if err := p.Action.Validate(); err != nil {
		return err
	}
	if p.Action == ActionRaise {
		if p.RaiseTo == nil || *p.RaiseTo <= 0 {
			return ErrInvalidRaise
		}
	} else if p.RaiseTo != nil {
		return errors.Errorf("game: raiseTo not allowed with action %s", p.Action)
	}
	return nil
}
