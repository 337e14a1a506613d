package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/matheus3301/tgrab/internal/app"
	"github.com/matheus3301/tgrab/internal/downloader"
	"github.com/matheus3301/tgrab/internal/session"
	"go.uber.org/fx"
)

func main() {
	sessionFlag := flag.String("session", "", "session name (overrides config default)")
	listChats := flag.Bool("list-chats", false, "list available chats and exit")
	chatRef := flag.String("chat-id", "", "chat to download from: numeric id or @username")
	mediaType := flag.String("media-type", "photo", "media to download: photo, video, document, both or all")
	extensions := flag.String("extensions", "", "comma-separated document extensions to keep, e.g. pdf,docx")
	startDate := flag.String("start-date", "", "only messages on or after this date (YYYY-MM-DD)")
	endDate := flag.String("end-date", "", "only messages on or before this date (YYYY-MM-DD)")
	outputDir := flag.String("output-dir", "", "directory to download into (default: config output_dir or ./downloads)")
	dbPath := flag.String("db", "", "tracking database path (overrides config)")
	concurrency := flag.Int("concurrency", downloader.DefaultConcurrency, "simultaneous downloads")
	flag.Parse()

	sessionName := session.Resolve(*sessionFlag)
	if err := session.ValidateName(sessionName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if !*listChats && *chatRef == "" {
		fmt.Fprintln(os.Stderr, "error: --chat-id is required (use --list-chats to find one)")
		os.Exit(1)
	}

	a := fx.New(
		fx.NopLogger,
		app.Module(app.Params{
			SessionName: sessionName,
			ListChats:   *listChats,
			ChatRef:     *chatRef,
			MediaType:   *mediaType,
			Extensions:  *extensions,
			StartDate:   *startDate,
			EndDate:     *endDate,
			OutputDir:   *outputDir,
			DBPath:      *dbPath,
			Concurrency: *concurrency,
		}),
	)
	// Provider failures (bad filter, missing credentials, held lock) happen
	// during construction; with fx's own logging silenced they must be
	// printed here or the process dies with a bare exit code.
	if err := a.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	a.Run()
}
