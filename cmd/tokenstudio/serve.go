package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/phyten/tokenstudio/internal/config"
	"github.com/phyten/tokenstudio/internal/store"
	"github.com/phyten/tokenstudio/internal/theme"
	"github.com/phyten/tokenstudio/internal/web"
)

// openURL is replaced in tests.
var openURL = browser.OpenURL

func newServeCmd(a *app) *cobra.Command {
	var host string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web studio",
		Long: `Start the local web studio with live ramp, harmony and contrast previews.
Saved themes persist in the theme database when --db (or ui.db) is set.

Examples:
  tokenstudio serve
  tokenstudio serve --port 9000 --open`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", net.JoinHostPort(host, fmt.Sprint(a.settings.UI.Port)))
			if err != nil {
				return err
			}
			return a.serve(ctx, ln)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&host, "host", "127.0.0.1", "address to bind")
	fs.Int("port", config.DefaultPort, "port to listen on")
	fs.Bool("open", false, "open the studio in a browser")
	fs.String("db", "", "theme database path (empty keeps themes in memory)")
	return cmd
}

// serve runs the studio on ln until ctx is done.
func (a *app) serve(ctx context.Context, ln net.Listener) error {
	themes := theme.NewManager(a.logger)
	var st *store.Store
	if a.settings.UI.DB != "" {
		var err error
		st, err = store.Open(ctx, a.settings.UI.DB)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Load(ctx, themes); err != nil {
			return err
		}
		a.logger.Info("themes loaded", "db", a.settings.UI.DB, "count", len(themes.List()))
	}
	cancel := themes.Watch(func(t theme.Theme) {
		a.logger.Info("active theme", "name", t.Name)
	})
	defer cancel()

	mux := http.NewServeMux()
	web.Register(mux, web.NewAPI(themes, st, a.logger))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	url := "http://" + ln.Addr().String() + "/"
	a.logger.Info("serving", "url", url)
	if a.settings.UI.Open {
		if err := openURL(url); err != nil {
			a.logger.Warn("open browser", "err", err)
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
