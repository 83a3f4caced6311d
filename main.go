package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"voyager.com/pokerclient/api"
	"voyager.com/pokerclient/engine"
	"voyager.com/pokerclient/game"
	"voyager.com/pokerclient/rest"
	"voyager.com/pokerclient/util"
	"voyager.com/pokerclient/view"
)

var runServer *bool
var watch *bool
var apiURL *string
var gamePath *string
var scenarioFile *string
var mainLogger = util.GetZeroLogger("main::main", nil)

func init() {
	runServer = flag.Bool("server", true, "runs the dev game server")
	watch = flag.Bool("watch", false, "runs the console watcher against the game API")
	apiURL = flag.String("url", util.Env.GetAPIServerURL(), "game API base URL")
	gamePath = flag.String("game-path", "", "navigation path carrying the game id, e.g. game/<id>")
	scenarioFile = flag.String("scenario", "", "YAML scenario seeding the dev server with a table")
}

func main() {
	err := run()
	if err != nil {
		mainLogger.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *runServer {
		store := rest.NewStore()
		if *scenarioFile != "" {
			scenario, err := rest.LoadScenario(*scenarioFile)
			if err != nil {
				return err
			}
			g, err := scenario.Seed(store)
			if err != nil {
				return errors.Wrap(err, "seeding scenario")
			}
			mainLogger.Info().Msgf("Seeded game %s with %d players", g.ID, len(g.Players))
			if *gamePath == "" {
				*gamePath = "game/" + g.ID
			}
		}
		server := rest.NewServer(store)
		addr := fmt.Sprintf(":%d", util.Env.GetServerPort())
		if !*watch {
			return server.Run(addr)
		}
		go func() {
			if err := server.Run(addr); err != nil {
				mainLogger.Error().Msgf("Dev server stopped: %s", err.Error())
			}
		}()
		// Give the listener a moment before the watcher's first fetch.
		time.Sleep(200 * time.Millisecond)
	}

	if *watch {
		if *gamePath == "" {
			return errors.New("no game to watch; pass -game-path or seed a -scenario")
		}
		tree := view.NewTreeView(util.Env.GetSeatCount())
		client := api.NewClient(*apiURL)
		eng := engine.NewEngine(client, tree, engine.NewPathNavigator(*gamePath))
		eng.OnSnapshotApplied(func(g *game.Game) {
			fmt.Print(tree.Render())
		})
		eng.Run()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		eng.Stop()
	}
	return nil
}
