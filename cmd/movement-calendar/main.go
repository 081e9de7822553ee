package main

import (
	"embed"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/klabast/wb-services/movement-calendar/internal/app"
	"github.com/klabast/wb-services/movement-calendar/internal/commands"
)

//go:embed static/*
var staticFiles embed.FS

//go:embed static/index.html
var indexHTML []byte

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := app.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("Failed to set up logging: %v", err)
	}
	app.SetLogger(logger, "movement-calendar")

	if _, err := maxprocs.Set(maxprocs.Logger(app.Log.Debugf)); err != nil {
		app.Log.WithError(err).Warn("⚠️  could not set GOMAXPROCS")
	}

	// Check for subcommands
	if len(os.Args) > 1 {
		if run, ok := subcommands[os.Args[1]]; ok {
			if err := runSubcommand(cfg, os.Args[1], run, os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	serve(cfg)
}

var subcommands = map[string]func([]string) error{
	"hash-password": commands.HashPassword,
	"tui":           commands.TUI,
	"print":         commands.Print,
}

func runSubcommand(cfg app.Config, name string, run func([]string) error, args []string) error {
	if name == "hash-password" {
		// Only the auth file location is needed
		app.Settings = cfg
		return run(args)
	}

	// Keep log lines out of the rendered calendar
	if cfg.LogLevel == "info" {
		app.Log.Logger.SetLevel(logrus.WarnLevel)
	}
	if err := app.Setup(cfg); err != nil {
		return err
	}
	return run(args)
}

func serve(cfg app.Config) {
	port := flag.Int("port", 8080, "Port to listen on")
	flag.BoolVar(&app.EditMode, "edit", false, "Enable edit mode (recording movements)")
	flag.Parse()

	// Make the embedded page available to app package
	app.IndexHTML = indexHTML

	if err := app.Setup(cfg); err != nil {
		app.Log.Fatalf("Failed to set up calendar: %v", err)
	}

	// Load and validate auth credentials (if edit mode)
	if app.EditMode {
		if err := app.LoadAuthCredentials(); err != nil {
			app.Log.Fatalf("Failed to load auth credentials: %v", err)
		}
	}

	// Setup routes
	http.HandleFunc("/", app.ServeIndex)
	http.HandleFunc("/api/config", app.GetConfig)
	http.HandleFunc("/api/grid", app.HandleGrid)
	http.HandleFunc("/api/frame", app.HandleFrame)
	http.HandleFunc("/api/overlay", app.HandleOverlay)
	http.HandleFunc("/api/text", app.HandleText)
	http.HandleFunc("/api/days/", app.HandleDay)
	http.HandleFunc("/api/download", app.HandleDownload)

	// Edit mode routes (protected with Basic Auth)
	if app.EditMode {
		http.HandleFunc("/api/movements", app.RequireAuth(app.AddMovement))
	}

	// Serve static files
	http.Handle("/static/", http.FileServer(http.FS(staticFiles)))

	mode := app.ModeServe
	if app.EditMode {
		mode = app.ModeEdit
	}

	app.Log.WithFields(logrus.Fields{"mode": mode, "port": *port}).Infof("Starting movement calendar on http://localhost:%d", *port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", *port), nil); err != nil {
		app.Log.Fatal(err)
	}
}
