package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"LocalAnnotator/internal/applog"
	"LocalAnnotator/internal/config"
	"LocalAnnotator/internal/export"
	boardnet "LocalAnnotator/internal/net"
	"LocalAnnotator/internal/state"
	"LocalAnnotator/internal/ui"
)

var log = applog.WithComponent("main")

func main() {
	configPath := flag.String("config", "", "YAML config file")
	share := flag.Bool("share", false, "serve a live read-only mirror on the LAN")
	port := flag.Int("port", 0, "mirror port (overrides config)")
	noMDNS := flag.Bool("no-mdns", false, "do not advertise the mirror over mDNS")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	flag.Usage = usage
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if *share {
		cfg.Share.Enabled = true
	}
	if *port != 0 {
		cfg.Share.Port = *port
	}
	if *noMDNS {
		cfg.Share.Advertise = false
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if err := applog.Init(cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(2)
	}

	args := flag.Args()
	switch {
	case len(args) == 0:
		runHost(cfg)
	case args[0] == "view" && len(args) == 2:
		runViewer(args[1])
	case strings.HasPrefix(args[0], boardnet.LinkScheme):
		runViewer(args[0])
	case args[0] == "discover":
		if err := runDiscover(os.Stdout, 3*time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "discover: %v\n", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  annotator [flags]              open the annotation surface")
	fmt.Fprintln(out, "  annotator view <link>          mirror a shared session")
	fmt.Fprintln(out, "  annotator discover             list sessions shared on the LAN")
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func runHost(cfg config.Config) {
	log.Info("Starting as HOST")
	store := state.NewStore()
	surface := state.NewSurface(store, state.Size{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height})

	var shareLink string
	if cfg.Share.Enabled {
		ctx, cancel := context.WithCancel(context.Background())
		var stopped <-chan struct{}
		shareLink, stopped = startSharing(ctx, cfg, store)
		// sharing ends with the window
		defer func() {
			cancel()
			<-stopped
		}()
	}

	ui.RunApp(surface, cfg, shareLink)
}

// startSharing runs the mirror server and mDNS advertisement until ctx is
// done. It returns the share link and a channel closed once the server has
// shut down.
func startSharing(ctx context.Context, cfg config.Config, store *state.Store) (string, <-chan struct{}) {
	hub := boardnet.NewHub(store.Snapshot)
	store.Subscribe(func(state.Op) { hub.Publish() })

	srv := boardnet.NewServer(fmt.Sprintf(":%d", cfg.Share.Port), hub, func(w io.Writer) error {
		return export.Summary(w, store.Rects())
	})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if err := srv.Run(ctx); err != nil {
			log.Error("mirror server stopped", "err", err)
		}
	}()

	if cfg.Share.Advertise {
		server, err := boardnet.Advertise(cfg.Share.Name, cfg.Share.Port)
		if err != nil {
			log.Warn("mDNS advertisement failed", "err", err)
		} else {
			context.AfterFunc(ctx, func() { server.Shutdown() })
		}
	}

	link := boardnet.ShareLink(boardnet.OutgoingIP().String(), cfg.Share.Port)
	log.Info("sharing", "link", link)
	return link, stopped
}

func runViewer(link string) {
	log.Info("Starting as VIEWER", "link", link)
	if _, err := boardnet.ParseLink(link); err != nil {
		fmt.Fprintf(os.Stderr, "view: %v\n", err)
		os.Exit(2)
	}
	ui.RunViewer("Mirror of "+strings.TrimPrefix(link, boardnet.LinkScheme),
		func(ctx context.Context, onSnapshot func(state.Snapshot)) error {
			return boardnet.Watch(ctx, link, onSnapshot)
		})
}

func runDiscover(w io.Writer, timeout time.Duration) error {
	found := 0
	err := boardnet.Browse(timeout, func(s boardnet.Session) {
		found++
		fmt.Fprintf(w, "%s\t%s\n", s.Name, s.Link())
	})
	if err != nil {
		return err
	}
	if found == 0 {
		return errors.New("no shared sessions found")
	}
	return nil
}
