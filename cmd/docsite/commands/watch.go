package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output      string        `short:"o" help:"JSON file rewritten after every accepted change" default:"docsite.config.json"`
	Debounce    time.Duration `help:"Quiet period after a change before reloading" default:"500ms"`
	Poll        time.Duration `help:"Also reload on this interval (0 disables polling)" default:"0s"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9105)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.run(ctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	reg := prom.NewRegistry()
	opts := []watch.Option{
		watch.WithDebounce(w.Debounce),
		watch.WithPollInterval(w.Poll),
		watch.WithMetrics(watch.NewMetrics(reg)),
	}
	watcher, err := watch.New(root.Config, root.LoadSite, func(_ context.Context, site *config.Site) error {
		return writeExport(g, site, w.Output)
	}, opts...)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		_ = watcher.Stop()
		return err
	}

	var srv *http.Server
	if w.MetricsAddr != "" {
		srv = &http.Server{
			Addr:              w.MetricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			slog.Info("Serving metrics", slog.String("addr", w.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", logfields.Error(err))
			}
		}()
	}

	<-ctx.Done()
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Metrics server shutdown", logfields.Error(err))
		}
	}
	return watcher.Stop()
}
