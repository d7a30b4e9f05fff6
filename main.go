package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GestureBoard/internal/board"
	"GestureBoard/internal/config"
	"GestureBoard/internal/document"
	"GestureBoard/internal/generate"
	"GestureBoard/internal/gesture"
	gnet "GestureBoard/internal/net"
	"GestureBoard/internal/state"
	"GestureBoard/internal/ui"
)

func main() {
	configPath := flag.String("config", "gestureboard.toml", "TOML or YAML config file")
	headless := flag.Bool("headless", false, "run the viewer without a window and export the session on exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [viewer|relay]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch flag.Arg(0) {
	case "relay":
		runRelay(cfg)
	case "", "viewer":
		runViewer(cfg, *configPath, *headless)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runRelay(cfg *config.Config) {
	log.Println("Starting as RELAY")
	relay, err := gnet.NewRelay()
	if err != nil {
		log.Fatalf("Failed to create relay: %v", err)
	}

	ln, err := net.Listen("tcp", cfg.RelayAddr)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	log.Printf("[RELAY] listening on %s; viewers connect to ws://%s:%d/ws?id=<viewer>", ln.Addr(), gnet.GetOutgoingIP(), port)

	if cfg.Advertise {
		server, err := gnet.Advertise(port)
		if err != nil {
			log.Printf("[MDNS] advertise failed: %v", err)
		} else {
			defer server.Shutdown()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	srv := &http.Server{Handler: relay.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Relay stopped: %v", err)
	}
	log.Println("[RELAY] stopped")
}

// frameHandler adapts the board to the socket callbacks.
type frameHandler struct{ b *board.Board }

func (h frameHandler) Connected()               { h.b.Connected() }
func (h frameHandler) HandleFrame(frame []byte) { h.b.HandleFrame(frame) }
func (h frameHandler) Disconnected(err error)   { h.b.Disconnected(err) }

func runViewer(cfg *config.Config, configPath string, headless bool) {
	log.Printf("Starting as VIEWER %s", cfg.ViewerID)
	b, err := board.New(board.Options{
		ViewerID:    cfg.ViewerID,
		Viewport:    gesture.Viewport{Width: float64(cfg.Render.Width), Height: float64(cfg.Render.Height)},
		Tunables:    cfg.Tunables(),
		Pen:         cfg.Pen(),
		LaserRadius: cfg.Render.LaserRadius,
		LaserColor:  cfg.LaserColor(),
		Clock:       state.SystemClock(),
	})
	if err != nil {
		log.Fatalf("Failed to create board: %v", err)
	}

	if cfg.Document.Dir != "" {
		deck, err := document.Open(cfg.Document.Dir)
		if err != nil {
			log.Printf("[DOC] %v", err)
		} else {
			deck.OnLoaded = b.DocumentLoaded
			deck.OnPageRendered = b.PageRendered
			deck.Load()
			b.FollowPages(deck, cfg.Render.Width)
		}
	}

	resolve := gnet.StaticRelay(cfg.RelayURL)
	if cfg.RelayURL == "" {
		resolve = gnet.DiscoverRelay(cfg.DiscoveryTimeout)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var watcher *config.Watcher
	start := func(schedule board.Scheduler) {
		sup := &gnet.Supervisor{
			Resolve:  resolve,
			ViewerID: cfg.ViewerID,
			Handler:  frameHandler{b},
			Schedule: schedule,
			Interval: cfg.ReconnectInterval,
			OnClient: func(c *gnet.Client) { schedule(func() { b.Attach(c) }) },
		}
		go func() {
			if err := sup.Run(ctx); err != nil {
				log.Printf("[WS] %v", err)
			}
		}()

		// Watcher.Close waits for this callback; it must not block on the UI thread.
		w, err := config.Watch(configPath, cfg, func(next *config.Config) {
			go schedule(func() {
				b.Tune(next.Tunables())
				b.SetPen(next.Pen())
				b.SetLaserStyle(next.Render.LaserRadius, next.LaserColor())
			})
		})
		if err != nil {
			log.Printf("[CONFIG] hot reload disabled: %v", err)
			return
		}
		watcher = w
	}
	stop := func() {
		cancel()
		if watcher != nil {
			watcher.Close()
		}
	}

	if headless {
		runHeadless(b, cfg, start, stop)
		return
	}
	ui.RunApp(ui.Options{
		Board:     b,
		Text:      generate.NewTextGenerator(cfg.Generate.TextURL, cfg.Generate.TextAPIKey, cfg.Generate.Timeout),
		Image:     generate.NewImageGenerator(cfg.Generate.ImageURL, cfg.Generate.ImageAccount, cfg.Generate.ImageAPIKey, cfg.Generate.Timeout),
		ExportDir: cfg.Document.ExportDir,
		Start:     start,
		Stop:      stop,
	})
}

func runHeadless(b *board.Board, cfg *config.Config, start func(board.Scheduler), stop func()) {
	schedule := board.Serial()
	start(schedule)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-ctx.Done()
	stop()

	schedule(func() {
		path, err := ui.ExportSession(b, cfg.Document.ExportDir, time.Now())
		if err != nil {
			log.Printf("[EXPORT] failed: %v", err)
		} else {
			log.Printf("[EXPORT] session saved to %s", path)
		}
		if err := b.Close(); err != nil {
			log.Printf("[BOARD] close: %v", err)
		}
	})
}
