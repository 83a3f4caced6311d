package engine

import (
	"regexp"
	"sync"

	"github.com/pkg/errors"
)

var ErrNoGameID = errors.New("engine: no game id in navigation path")

// Navigator resolves the active game id from the current navigation
// context. The engine re-resolves on every poll tick so navigation
// within the same loaded view is picked up.
type Navigator interface {
	GameID() (string, error)
}

var gamePathPattern = regexp.MustCompile(`game/([^/?#]+)`)

// PathNavigator extracts the game id from the path segment following a
// literal "game/" marker, e.g. "/table/game/8f3a.../": "8f3a...".
type PathNavigator struct {
	mu   sync.RWMutex
	path string
}

func NewPathNavigator(path string) *PathNavigator {
	return &PathNavigator{path: path}
}

// SetPath replaces the navigation path, as in-page navigation would.
func (n *PathNavigator) SetPath(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = path
}

func (n *PathNavigator) GameID() (string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	match := gamePathPattern.FindStringSubmatch(n.path)
	if match == nil {
		return "", ErrNoGameID
	}
	return match[1], nil
}
