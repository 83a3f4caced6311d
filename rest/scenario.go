package rest

import (
	"io/ioutil"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"voyager.com/pokerclient/game"
	"voyager.com/pokerclient/util"
)

// Scenario seeds the store with a playable table. Amounts are in chips
// (major units), converted to cents on load.
//
//	players:
//	  - name: Alice
//	    chips: 100.0
//	  - name: Bob
//	    chips: 150.0
//	blinds:
//	  small: 0.5
//	  big: 1.0
//	flop: true
type Scenario struct {
	Players []ScenarioPlayer `yaml:"players"`
	Blinds  *ScenarioBlinds  `yaml:"blinds"`
	Flop    bool             `yaml:"flop"`
}

type ScenarioPlayer struct {
	Name  string  `yaml:"name"`
	Chips float64 `yaml:"chips"`
}

type ScenarioBlinds struct {
	Small float64 `yaml:"small"`
	Big   float64 `yaml:"big"`
}

func LoadScenario(filename string) (*Scenario, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario file %s", filename)
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, errors.Wrap(err, "parsing scenario")
	}
	return &scenario, nil
}

// Seed creates a game in the store and applies the scenario to it.
func (sc *Scenario) Seed(store *Store) (game.Game, error) {
	g := store.CreateGame()
	for _, p := range sc.Players {
		if _, err := store.AddPlayer(g.ID, p.Name, util.ChipsToCents(p.Chips)); err != nil {
			return game.Game{}, errors.Wrapf(err, "seating %s", p.Name)
		}
	}
	if sc.Blinds != nil {
		small := util.ChipsToCents(sc.Blinds.Small)
		big := util.ChipsToCents(sc.Blinds.Big)
		if err := store.PostBlinds(g.ID, small, big); err != nil {
			return game.Game{}, err
		}
	}
	if sc.Flop {
		if err := store.DealCommunity(g.ID, 3); err != nil {
			return game.Game{}, err
		}
	}
	return store.Get(g.ID)
}
