package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iamasit07/connect4-tcp/internal/config"
	"github.com/iamasit07/connect4-tcp/internal/domain"
	"github.com/iamasit07/connect4-tcp/internal/protocol"
	"github.com/iamasit07/connect4-tcp/internal/service/game"
	"github.com/iamasit07/connect4-tcp/internal/transport/tcp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.LoadConfig()

	host := flag.String("host", "localhost", "game server host")
	port := flag.String("port", cfg.Port, "game server port")
	framingName := flag.String("framing", cfg.Framing, "wire framing: raw or line")
	think := flag.Duration("think", cfg.ThinkDelay, "pause before the server's move is announced")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [hostname port]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() >= 2 {
		*host, *port = flag.Arg(0), flag.Arg(1)
	}

	framing, err := protocol.ParseFraming(*framingName)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	peer, err := tcp.Dial(ctx, net.JoinHostPort(*host, *port), framing, cfg.ReadTimeout)
	if err != nil {
		log.Fatalf("ERROR connecting: %v", err)
	}
	defer peer.Close()

	// the server replies at once, the pause is for whoever is watching
	session := game.NewSession(game.Options{
		ID:         "client",
		Transport:  "tcp",
		RemoteAddr: peer.RemoteAddr(),
		Yellow:     &game.Relay{Player: game.NewTerminalPlayer(os.Stdin, os.Stdout), Peer: peer},
		Red:        &game.RemotePlayer{Peer: peer},
		Announce:   domain.Red,
		ThinkDelay: *think,
		Out:        os.Stdout,
	})

	if _, err := session.Run(ctx); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			fmt.Println()
			return
		}
		log.Fatalf("Game aborted: %v", err)
	}
}
