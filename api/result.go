package api

import (
	"voyager.com/pokerclient/game"
)

// Results are tagged success/failure values. Callers check Failed()
// before touching any success field; Err carries the server's error
// message or, when the server supplied none, the HTTP status text.
// Transport-level faults never end up here. They are returned as errors
// by the client methods instead.

type CreateGameResult struct {
	Game *game.Game
	Err  string
}

func (r CreateGameResult) Failed() bool {
	return r.Err != ""
}

// FetchGameResult is the three-way fetch contract: skip (ModifiedOnly
// set, Modified false, no Game), update (Modified true, Game present),
// or error (Err set).
type FetchGameResult struct {
	ModifiedOnly bool
	Modified     bool
	Game         *game.Game
	Err          string
}

func (r FetchGameResult) Failed() bool {
	return r.Err != ""
}

type ActionResult struct {
	Game *game.Game
	Err  string
}

func (r ActionResult) Failed() bool {
	return r.Err != ""
}
