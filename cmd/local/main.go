package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iamasit07/connect4-tcp/internal/config"
	"github.com/iamasit07/connect4-tcp/internal/domain"
	"github.com/iamasit07/connect4-tcp/internal/service/game"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.LoadConfig()

	seed := flag.Int64("seed", cfg.AdvisorSeed, "advisor random seed")
	think := flag.Duration("think", cfg.ThinkDelay, "pause before the computer announces its move")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := game.NewSession(game.Options{
		ID:         "local",
		Transport:  "local",
		RemoteAddr: "terminal",
		Yellow:     game.NewTerminalPlayer(os.Stdin, os.Stdout),
		Red:        game.NewAdvisorPlayer(*seed),
		Announce:   domain.Red,
		Out:        os.Stdout,
		ThinkDelay: *think,
	})

	if _, err := session.Run(ctx); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			fmt.Println()
			return
		}
		log.Fatalf("Game aborted: %v", err)
	}
}
