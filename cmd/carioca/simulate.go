package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"carioca/internal/bot"
	"carioca/internal/game"
)

// SimulateCmd runs bot-only games end to end. Useful for exercising the
// engine and comparing difficulty tiers.
type SimulateCmd struct {
	Games      int      `kong:"default='1',help='Number of games to simulate'"`
	Players    int      `kong:"default='4',help='Seats per game (2-4)'"`
	Difficulty string   `kong:"default='hard',enum='easy,medium,hard',help='Difficulty for every seat'"`
	Seed       int64    `kong:"default='0',help='RNG seed (0 for random)'"`
	MaxTurns   int      `kong:"default='5000',help='Turn cap per game before calling it off'"`
	Verbose    bool     `kong:"short='v',help='Verbose logging'"`
}

func (c *SimulateCmd) Run() error {
	if c.Players < game.MinPlayers || c.Players > game.MaxPlayers {
		return fmt.Errorf("players must be between %d and %d", game.MinPlayers, game.MaxPlayers)
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	level := log.WarnLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	fmt.Printf("Simulating %d game(s), %d %s bots each (seed: %d)\n",
		c.Games, c.Players, c.Difficulty, c.Seed)

	for i := 0; i < c.Games; i++ {
		c.runGame(i, logger)
	}
	return nil
}

func (c *SimulateCmd) runGame(idx int, logger *log.Logger) {
	rng := rand.New(rand.NewSource(c.Seed + int64(idx)))
	difficulty := game.Difficulty(c.Difficulty)

	host := &game.Player{ID: "bot-0", Name: "bot-0", IsBot: true, Difficulty: difficulty}
	s := game.NewSession(fmt.Sprintf("sim-%d", idx), host, rng)
	for p := 1; p < c.Players; p++ {
		name := fmt.Sprintf("bot-%d", p)
		if err := s.AddPlayer(&game.Player{ID: name, Name: name, IsBot: true, Difficulty: difficulty}); err != nil {
			logger.Error("seating bot", "err", err)
			return
		}
	}
	if err := s.Start(); err != nil {
		logger.Error("starting game", "err", err)
		return
	}

	controller := bot.NewController(logger)
	turns := 0
	for turns < c.MaxTurns && s.Status == game.StatusPlaying {
		if err := controller.Run(s, len(s.Players)); err != nil {
			logger.Error("bot play failed", "err", err)
			break
		}
		turns += len(s.Players)
	}

	fmt.Printf("\nGame %d: %s after ~%d turns (round %d, %d reshuffles)\n",
		idx+1, s.Status, turns, s.Round, s.ReshuffleCount)
	for rank, p := range s.Standings() {
		fmt.Printf("  %d. %-8s score=%-4d buys=%d rounds=%v\n",
			rank+1, p.Name, p.Score, p.BuysUsed, p.RoundScores)
	}
}
