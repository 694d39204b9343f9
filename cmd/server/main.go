package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/iamasit07/connect4-tcp/internal/config"
	"github.com/iamasit07/connect4-tcp/internal/domain"
	"github.com/iamasit07/connect4-tcp/internal/protocol"
	"github.com/iamasit07/connect4-tcp/internal/repository/journal"
	"github.com/iamasit07/connect4-tcp/internal/repository/postgres"
	"github.com/iamasit07/connect4-tcp/internal/repository/redis"
	"github.com/iamasit07/connect4-tcp/internal/service/cleanup"
	"github.com/iamasit07/connect4-tcp/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-tcp/internal/transport/http"
	"github.com/iamasit07/connect4-tcp/internal/transport/tcp"
	"github.com/iamasit07/connect4-tcp/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}
	cfg := config.LoadConfig()

	port := flag.String("port", cfg.Port, "TCP port for game clients")
	httpPort := flag.String("http", cfg.HTTPPort, "HTTP port for the API and websocket players (empty disables)")
	framingName := flag.String("framing", cfg.Framing, "wire framing: raw or line")
	verbose := flag.Bool("v", false, "print every session's board to stdout")
	flag.Parse()
	if flag.NArg() > 0 {
		*port = flag.Arg(0)
	}

	framing, err := protocol.ParseFraming(*framingName)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Observers
	var observers []game.Observer

	if cfg.LogPath != "" {
		sessionLog, err := journal.Open(cfg.LogPath)
		if err != nil {
			log.Fatalf("Failed to open session log: %v", err)
		}
		defer sessionLog.Close()
		observers = append(observers, &game.JournalObserver{Journal: sessionLog, ServerSide: domain.Red})
	}

	var gameRepo *postgres.GameRepo
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.Options{
			Driver:             cfg.DBDriver,
			MaxOpenConns:       cfg.DBMaxOpenConns,
			MaxIdleConns:       cfg.DBMaxIdleConns,
			ConnMaxLifetimeMin: cfg.DBConnMaxLifetimeMin,
		})
		if err != nil {
			log.Printf("[DB] Warning: %v. Finished games will not be stored.", err)
		} else {
			defer db.Close()
			gameRepo = postgres.NewGameRepo(db)
		}
	}

	recorder := &game.RecorderObserver{}
	if gameRepo != nil {
		recorder.Repo = gameRepo
		observers = append(observers, recorder)
	}

	var cache game.CacheRepository
	if cfg.RedisURL != "" {
		client, err := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err == nil {
			redisCache := redis.NewRedisCache(client)
			defer redisCache.Close()
			cache = redisCache
			observers = append(observers, &game.SnapshotObserver{Cache: redisCache, TTL: cfg.SnapshotTTL})
		}
	}

	// 2. Services
	sessionManager := game.NewSessionManager()
	gameService := game.NewService(sessionManager, cfg.AdvisorSeed, observers...)
	gameService.ThinkDelay = cfg.ThinkDelay
	if *verbose {
		gameService.Out = os.Stdout
	}

	var history cleanup.GameHistory
	if gameRepo != nil {
		history = gameRepo
	}
	cleanupWorker := cleanup.NewWorker(sessionManager, history, cfg.CleanupInterval, cfg.HistoryRetention)

	// 3. Servers
	g, gctx := errgroup.WithContext(ctx)

	tcpServer := tcp.NewServer(net.JoinHostPort("", *port), gameService, framing, cfg.ReadTimeout)
	g.Go(func() error {
		return tcpServer.ListenAndServe(gctx)
	})

	g.Go(func() error {
		cleanupWorker.Start(gctx)
		return nil
	})

	var wsHandler *websocket.Handler
	if *httpPort != "" {
		wsHandler = websocket.NewHandler(gameService, cfg.ReadTimeout, cfg.AllowedOrigins)
		routerCfg := transportHttp.RouterConfig{
			Sessions:       sessionManager,
			Cache:          cache,
			WebSocket:      wsHandler.HandleWebSocket,
			AllowedOrigins: cfg.AllowedOrigins,
		}
		if gameRepo != nil {
			routerCfg.Games = gameRepo
		}

		srv := &http.Server{
			Addr:    ":" + *httpPort,
			Handler: transportHttp.NewRouter(routerCfg),
			BaseContext: func(net.Listener) context.Context {
				return gctx
			},
		}

		g.Go(func() error {
			log.Printf("[HTTP] Server starting on :%s", *httpPort)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()
			log.Println("[HTTP] Server is shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("Server error: %v", err)
	}

	if wsHandler != nil {
		wsHandler.Wait()
	}
	recorder.Wait()
	log.Println("Server exited gracefully")
}
