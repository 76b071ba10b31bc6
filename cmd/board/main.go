// Command board generates a board, optionally plays a few moves on it and
// prints the result as an ASCII table.
package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-server/internal/mines"
)

var log = logrus.New()

var (
	levelName string
	rows      int
	columns   int
	mineCount int
	seed      uint64
	moves     string
	solution  bool
	verbose   bool
	logFile   string
)

func init() {
	flag.StringVar(&levelName, "level", "", "beginner, intermediate or expert (overrides -rows/-columns/-mines)")
	flag.IntVar(&rows, "rows", mines.Beginner.Rows, "board rows")
	flag.IntVar(&columns, "columns", mines.Beginner.Columns, "board columns")
	flag.IntVar(&mineCount, "mines", mines.Beginner.Mines, "mine count")
	flag.Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	flag.StringVar(&moves, "moves", "", `moves to play, e.g. "reveal 0 0; flag 1 2"`)
	flag.BoolVar(&solution, "solution", false, "also print the revealed board")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.StringVar(&logFile, "log", "", "also write logs to this rotating file")
}

func setupLogging() {
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if logFile == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
	})
	if err != nil {
		log.Fatal("unable to open log file: ", err)
	}
	log.AddHook(hook)
}

func parseMove(s string) (func(mines.Game) (mines.Change, error), error) {
	fields := strings.Fields(s)
	if len(fields) == 1 && fields[0] == "pause" {
		return func(g mines.Game) (mines.Change, error) { return g.Pause(), nil }, nil
	}
	if len(fields) != 3 {
		return nil, fmt.Errorf("bad move %q", s)
	}
	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("bad row in %q", s)
	}
	column, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("bad column in %q", s)
	}
	switch fields[0] {
	case "reveal":
		return func(g mines.Game) (mines.Change, error) { return g.Reveal(row, column) }, nil
	case "flag":
		return func(g mines.Game) (mines.Change, error) { return g.Flag(row, column) }, nil
	case "unflag":
		return func(g mines.Game) (mines.Change, error) { return g.Unflag(row, column) }, nil
	}
	return nil, fmt.Errorf("unknown move %q", fields[0])
}

func main() {
	flag.Parse()
	setupLogging()

	if levelName != "" {
		level, err := mines.ParseLevel(levelName)
		if err != nil {
			log.Fatal(err)
		}
		rows, columns, mineCount = level.Rows, level.Columns, level.Mines
	}
	if seed == 0 {
		seed = new(maphash.Hash).Sum64()
	}

	log.WithFields(logrus.Fields{
		"rows":    rows,
		"columns": columns,
		"mines":   mineCount,
		"seed":    seed,
	}).Debug("generating board")

	board, err := mines.Generate(rows, columns, mineCount, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		log.Fatal("unable to generate board: ", err)
	}

	now := time.Now()
	game := mines.NewGame(0, "", board, now)
	for _, s := range strings.Split(moves, ";") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		move, err := parseMove(s)
		if err != nil {
			log.Fatal(err)
		}
		change, err := move(game)
		if err != nil {
			log.WithError(err).Warn("move rejected")
			continue
		}
		if change.HasNoChanges() {
			log.WithField("move", strings.TrimSpace(s)).Info("nothing to do")
			continue
		}
		game = game.Apply(change, now)
		log.WithFields(logrus.Fields{
			"move":   strings.TrimSpace(s),
			"status": game.Status,
		}).Debug("played")
	}

	fmt.Print(game.ASCII())
	if solution && !game.IsFinished() {
		fmt.Println()
		fmt.Print(mines.RenderASCII(game.Board, true))
	}
	log.WithField("status", game.Status).Info("done")
}
