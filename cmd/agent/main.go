package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/minelogic/minesweeper-agent/internal/board"
	"github.com/minelogic/minesweeper-agent/internal/player"
)

var (
	log = logrus.New()

	width     int
	height    int
	mineCount int
	games     int
	seed      uint64
	verbose   bool
	showBoard bool
)

func init() {
	flag.IntVar(&width, "width", 8, "board width")
	flag.IntVar(&height, "height", 8, "board height")
	flag.IntVar(&mineCount, "mines", 8, "number of mines")
	flag.IntVar(&games, "games", 1, "number of games to play")
	flag.Uint64Var(&seed, "seed", 0, "rng seed (0 = random)")
	flag.BoolVar(&verbose, "v", false, "log every move")
	flag.BoolVar(&showBoard, "board", false, "print the final board of each game")
}

func setupLogging() {
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
}

func createRand() *rand.Rand {
	if seed != 0 {
		return rand.New(rand.NewPCG(seed, seed+1))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func main() {
	flag.Parse()
	setupLogging()

	params := board.Params{Width: width, Height: height, MineCount: mineCount}
	if err := params.Validate(); err != nil {
		log.Fatal(err)
	}

	log.Infof("playing %d games of %s", games, params.Seed())

	r := createRand()
	wins, losses, stalls := 0, 0, 0
	for i := range games {
		b, err := board.New(params, r)
		if err != nil {
			log.Fatal("unable to generate board: ", err)
		}
		p, err := player.New(b, r)
		if err != nil {
			log.Fatal("unable to create player: ", err)
		}

		outcome, err := p.Play()
		if err != nil {
			log.Fatal("game aborted: ", err)
		}

		guesses := 0
		for _, m := range p.Moves() {
			if verbose {
				log.Debugf("game %d: %s count=%d guess=%v",
					i+1, m.Cell, m.Count, m.Guess)
			}
			if m.Guess {
				guesses++
			}
		}

		switch outcome {
		case player.Won:
			wins++
		case player.Lost:
			losses++
		default:
			stalls++
		}
		log.Infof("game %d: %s in %d moves (%d guesses)",
			i+1, outcome, len(p.Moves()), guesses)

		if showBoard {
			fmt.Print(b)
		}
	}

	log.Infof("done: %d won, %d lost, %d stalled (%.1f%% win rate)",
		wins, losses, stalls, float64(wins)/float64(games)*100)
}
