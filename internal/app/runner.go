package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/matheus3301/tgrab/internal/bus"
	"github.com/matheus3301/tgrab/internal/config"
	"github.com/matheus3301/tgrab/internal/downloader"
	"github.com/matheus3301/tgrab/internal/media"
	"github.com/matheus3301/tgrab/internal/tg"
	"go.uber.org/zap"
)

// runner executes the requested command against a live Telegram client.
type runner struct {
	params Params
	cfg    *config.Config
	client *tg.Client
	filter *media.Filter
	track  *Tracking
	bus    *bus.Bus
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func newRunner(p Params, cfg *config.Config, client *tg.Client, filter *media.Filter, tr *Tracking, b *bus.Bus, logger *zap.Logger) *runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &runner{
		params: p, cfg: cfg, client: client, filter: filter,
		track: tr, bus: b, logger: logger,
		ctx: ctx, cancel: cancel,
	}
}

func (r *runner) stop() {
	r.cancel()
}

func (r *runner) run() error {
	return r.client.Run(r.ctx, func(ctx context.Context) error {
		if r.params.ListChats {
			return r.listChats(ctx)
		}
		return r.download(ctx)
	})
}

func (r *runner) listChats(ctx context.Context) error {
	chats, err := r.client.ListDialogs(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tTITLE")
	for _, c := range chats {
		title := c.Title
		if c.Username != "" {
			title += " (@" + c.Username + ")"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Type, title)
	}
	return w.Flush()
}

func (r *runner) download(ctx context.Context) error {
	chat, err := r.client.ResolveChat(ctx, r.params.ChatRef)
	if err != nil {
		return err
	}
	r.logger.Info("chat resolved",
		zap.Int64("chat_id", chat.ID),
		zap.String("title", chat.Title),
		zap.Stringer("type", chat.Type))

	outDir := r.params.OutputDir
	if outDir == "" {
		outDir = r.cfg.OutputDir
	}
	if outDir == "" {
		outDir = "downloads"
	}
	dir := filepath.Join(outDir, media.ChatDir(chat.Title, chat.ID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	api := r.client.API()
	exec := downloader.NewExecutor(tg.NewFetcher(api), r.logger)
	orch := downloader.NewOrchestrator(exec, r.track.Tracker, r.bus, r.logger)

	fmt.Printf("Downloading from %q into %s\n", chat.Title, dir)
	summary, err := orch.Run(ctx, tg.NewHistorySource(api, chat), downloader.Request{
		ChatID:      chat.ID,
		Filter:      r.filter,
		ChatDir:     dir,
		Concurrency: r.params.Concurrency,
	})
	if summary != nil {
		fmt.Println(summary)
	}
	return err
}
