package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/DaanHessen/ragterm/internal/api"
	"github.com/DaanHessen/ragterm/internal/settings"
	"github.com/DaanHessen/ragterm/internal/store"
	"github.com/DaanHessen/ragterm/internal/text"
	"github.com/DaanHessen/ragterm/internal/ui"
	"github.com/DaanHessen/ragterm/internal/util"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	apiURL := flag.String("api-url", envOr("RAG_API_URL", api.DefaultBaseURL), "RAG service base URL")
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL DSN for query history (optional)")
	settingsPath := flag.String("settings", filepath.Join(util.ConfigDir(), "settings.toml"), "Settings file")
	theme := flag.String("theme", "", "Theme override: dark|light|catppuccin|dracula|gruvbox|solarized_dark")
	debug := flag.Bool("debug", os.Getenv("RAGTERM_DEBUG") == "1", "Write a debug log")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ragterm [--api-url URL] [--dsn DSN] [--settings FILE] [--theme NAME] [--debug] | ask QUESTION | health | migrate up|down | history export | version\n")
	}
	flag.Parse()

	cfg := util.Config{
		APIURL:       *apiURL,
		DSN:          *dsn,
		SettingsPath: *settingsPath,
		Theme:        *theme,
		Debug:        *debug,
		Version:      version,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := settings.NewStore(cfg.SettingsPath)
	saved, err := st.Load()
	if err != nil {
		log.Printf("settings: %v (using defaults)", err)
	}
	client := api.NewClient(cfg.APIURL, api.WithToken(saved.APIKey))

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Println("ragterm", version)
			return
		case "health":
			hctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			h, err := client.Health(hctx)
			if err != nil {
				log.Fatal(api.Message(err))
			}
			fmt.Printf("%s (version %s, %s)\n", h.Status, h.Version, h.Timestamp)
			return
		case "ask":
			if err := ask(ctx, client, saved, cfg, strings.Join(args[1:], " ")); err != nil {
				log.Fatal(err)
			}
			return
		case "migrate":
			if len(args) < 2 {
				log.Fatal("migrate requires 'up' or 'down'")
			}
			migrateCmd(ctx, cfg.DSN, args[1])
			return
		case "history":
			if len(args) < 2 || args[1] != "export" {
				log.Fatal("history requires 'export'")
			}
			historyExport(ctx, cfg.DSN)
			return
		default:
			flag.Usage()
			os.Exit(2)
		}
	}

	history, closeHistory := openHistory(ctx, cfg.DSN)
	defer closeHistory()

	if err := ui.Run(ctx, client, history, st, cfg); err != nil {
		log.Fatal(err)
	}
}

func ask(ctx context.Context, client *api.Client, s settings.Settings, cfg util.Config, question string) error {
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("ask requires a question")
	}
	req := api.QueryRequest{
		Query:       question,
		MaxSections: api.IntPtr(s.MaxSections),
		MaxDocs:     api.IntPtr(s.MaxDocs),
	}
	resp, raw, err := client.QueryRaw(ctx, req)
	if err != nil {
		return fmt.Errorf("%s", api.Message(err))
	}
	theme := s.Theme
	if cfg.Theme != "" {
		theme = cfg.Theme
	}
	r := text.NewRenderer(theme != "light", 100)
	fmt.Print(r.MustRender(resp.Answer))
	fmt.Printf("\nDocuments used: %d    Processing time: %.2fs\n", resp.DocumentsUsed, resp.ProcessingTime)
	if s.DebugMode || cfg.Debug {
		fmt.Println(text.Highlight(text.PrettyJSON(raw), "json", theme != "light"))
	}

	if cfg.DSN != "" {
		history, closeHistory := openHistory(ctx, cfg.DSN)
		defer closeHistory()
		if err := history.Insert(ctx, store.NewEntry(req, resp)); err != nil {
			log.Printf("history not saved: %v", err)
		}
	}
	return nil
}

// openHistory prefers Postgres and falls back to an in-memory history.
func openHistory(ctx context.Context, dsn string) (store.History, func()) {
	if dsn == "" {
		return store.NewMemoryHistory(), func() {}
	}
	migCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	mig, err := store.NewMigrator(dsn)
	if err == nil {
		if err = mig.Up(migCtx); err == store.ErrNoChange {
			err = nil
		}
	}
	if err != nil {
		log.Printf("history migrations failed, keeping history in memory: %v", err)
		return store.NewMemoryHistory(), func() {}
	}
	db, err := store.Open(ctx, dsn)
	if err != nil {
		log.Printf("history database unavailable, keeping history in memory: %v", err)
		return store.NewMemoryHistory(), func() {}
	}
	return store.NewHistoryRepo(db), func() { db.Close() }
}

func migrateCmd(ctx context.Context, dsn, action string) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	migrator, err := store.NewMigrator(dsn)
	if err != nil {
		log.Fatal(err)
	}
	switch action {
	case "up":
		if err := migrator.Up(ctx); err != nil && err != store.ErrNoChange {
			log.Fatal(err)
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := migrator.Down(ctx); err != nil && err != store.ErrNoChange {
			log.Fatal(err)
		}
		fmt.Println("Migrations rolled back")
	default:
		log.Fatal("unknown migrate action; use up|down")
	}
}

func historyExport(ctx context.Context, dsn string) {
	if dsn == "" {
		log.Fatal("history export needs --dsn or DATABASE_URL")
	}
	db, err := store.Open(ctx, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	entries, err := store.NewHistoryRepo(db).ListRecent(ctx, 0)
	if err != nil {
		log.Fatal(err)
	}
	path, err := store.WriteExport(util.ExportDir(), entries, time.Now())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(path)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
