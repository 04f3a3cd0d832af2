// Command play runs one game in the environment: each turn it lists the legal
// moves, picks one (at random, or read from stdin with -human), converts it
// to an action and steps, until the game is done.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	gymchess "github.com/gymchess"
	"github.com/gymchess/game"
	"github.com/gymchess/minimax"
	"github.com/gymchess/render"
)

var (
	configFlag   = flag.String("config", "", "JSON config file, flags below override it")
	colourFlag   = flag.String("colour", "white", "colour played by the agent")
	opponentFlag = flag.String("opponent", "minimax", "opponent policy: minimax or random")
	depthFlag    = flag.Int("depth", 3, "minimax opponent depth")
	evalFlag     = flag.String("eval", "positional", "minimax evaluator: material or positional")
	seedFlag     = flag.Uint64("seed", 1, "random seed")
	fenFlag      = flag.String("fen", "", "start position, standard when empty")
	humanFlag    = flag.Bool("human", false, "read the agent's moves from stdin")
	quietFlag    = flag.Bool("q", false, "do not print the board every turn")
	verboseFlag  = flag.Bool("v", false, "log steps and searches")
	pgnFlag      = flag.Bool("pgn", false, "print the game record at the end")
	pngFlag      = flag.String("png", "", "write the final position as PNG to this file")
	svgFlag      = flag.String("svg", "", "write the final position as SVG to this file")
	dotFlag      = flag.String("dot", "", "write the opponent's search of the final position as DOT to this file")
)

func main() {
	flag.Parse()
	conf, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	env, err := gymchess.New(conf, nil)
	if err != nil {
		log.Fatalf("%+v", err)
	}

	var agent gymchess.Policy = gymchess.NewRandomPolicy(*seedFlag + 1)
	if *humanFlag {
		agent = gymchess.NewHumanPolicy(os.Stdin, os.Stdout)
	}

	var (
		reward float32
		done   = env.Done()
		info   gymchess.Info
		last   *game.Move
	)
	for !done {
		if !*quietFlag {
			fmt.Print(env.Render())
		}
		if len(env.LegalMoves()) == 0 {
			break
		}
		m, err := agent.Choose(env.State())
		if err != nil {
			log.Fatal(err)
		}
		a, err := env.MoveToAction(m)
		if err != nil {
			log.Fatal(err)
		}
		if _, reward, done, info, err = env.Step(a); err != nil {
			log.Fatalf("%+v", err)
		}
		last = &info.PlayerMove
		if info.OpponentMove != nil {
			last = info.OpponentMove
			fmt.Printf("%v %v\n", info.PlayerMove, *info.OpponentMove)
		} else {
			fmt.Printf("%v\n", info.PlayerMove)
		}
	}
	fmt.Print(env.Render())
	fmt.Printf("Game Over: %v, reward %v\n", env.Outcome(), reward)

	if *pgnFlag {
		pgn, err := env.PGN()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(pgn)
	}
	if err := writeImages(env.State(), last, conf); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() (gymchess.Config, error) {
	conf := gymchess.DefaultConfig()
	if *configFlag != "" {
		var err error
		if conf, err = gymchess.LoadConfig(*configFlag); err != nil {
			return conf, err
		}
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	override := *configFlag == ""

	if override || set["colour"] {
		c, err := game.ParseColor(*colourFlag)
		if err != nil {
			return conf, err
		}
		conf.Player = c
	}
	if override || set["opponent"] {
		conf.Opponent = *opponentFlag
	}
	if override || set["depth"] {
		conf.Search.Depth = *depthFlag
	}
	if override || set["eval"] {
		conf.Search.Eval = *evalFlag
	}
	if override || set["seed"] {
		conf.Seed = *seedFlag
	}
	if override || set["fen"] {
		conf.StartFEN = *fenFlag
	}
	if *verboseFlag {
		conf.Logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return conf, conf.Validate()
}

func writeImages(p *game.Position, last *game.Move, conf gymchess.Config) error {
	if *pngFlag != "" {
		f, err := os.Create(*pngFlag)
		if err != nil {
			return err
		}
		if err := render.PNG(p, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	if *svgFlag != "" {
		f, err := os.Create(*svgFlag)
		if err != nil {
			return err
		}
		render.SVG(p, last, f)
		if err := f.Close(); err != nil {
			return err
		}
	}
	if *dotFlag != "" && !p.Outcome().Ended() {
		s, err := minimax.New(conf.Search, nil)
		if err != nil {
			return err
		}
		g, err := s.Graph(p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*dotFlag, []byte(g.String()), 0644); err != nil {
			return err
		}
	}
	return nil
}
