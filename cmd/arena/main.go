// Command arena plays a match between two policies and prints the result.
package main

import (
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	gymchess "github.com/gymchess"
)

var (
	aFlag        = flag.String("a", "minimax:2", "policy A: random or minimax[:depth]")
	bFlag        = flag.String("b", "random", "policy B: random or minimax[:depth]")
	gamesFlag    = flag.Int("games", 10, "number of games, colours alternate")
	maxPliesFlag = flag.Int("max_plies", 400, "adjudicate a draw after this many half moves, 0 for no limit")
	seedFlag     = flag.Uint64("seed", 1, "random seed")
	fenFlag      = flag.String("fen", "", "start position, standard when empty")
	verboseFlag  = flag.Bool("v", false, "log every game")
	recordsFlag  = flag.Bool("records", false, "print the PGN of every game")
)

func main() {
	flag.Parse()

	conf := gymchess.DefaultConfig()
	conf.Name = *aFlag + " vs " + *bFlag
	conf.StartFEN = *fenFlag
	if *verboseFlag {
		conf.Logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	if err := conf.Validate(); err != nil {
		log.Fatal(err)
	}

	a, err := policy(*aFlag, conf, *seedFlag)
	if err != nil {
		log.Fatal(err)
	}
	b, err := policy(*bFlag, conf, *seedFlag+1)
	if err != nil {
		log.Fatal(err)
	}

	arena := gymchess.MakeArena(a, b, conf)
	arena.MaxPlies = *maxPliesFlag
	defer arena.Close()

	if _, err := arena.Run(*gamesFlag); err != nil {
		log.Printf("%+v", err)
	}
	if *recordsFlag {
		arena.Log(os.Stdout)
		return
	}
	s := arena.Summary()
	log.Printf("%s: %d games, A %v wins, B %v wins, %v draws, A scores %.3f",
		conf.Name, s.Games, s.AWins, s.BWins, s.Draws, s.ScoreMean)
}

// policy parses "random" or "minimax[:depth]".
func policy(name string, conf gymchess.Config, seed uint64) (gymchess.Policy, error) {
	kind, arg := name, ""
	if i := strings.IndexByte(name, ':'); i >= 0 {
		kind, arg = name[:i], name[i+1:]
	}
	conf.Seed = seed
	if arg != "" {
		depth, err := strconv.Atoi(arg)
		if err != nil {
			return nil, err
		}
		conf.Search.Depth = depth
	}
	return gymchess.NewPolicy(kind, conf)
}
