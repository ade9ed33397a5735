package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/phyten/tokenstudio/internal/config"
)

func TestServeHandlesAPIAndShutsDown(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	a.settings = config.Defaults()
	a.settings.UI.DB = filepath.Join(a.dir, "themes.db")
	a.settings.UI.Open = true

	opened := make(chan string, 1)
	prev := openURL
	openURL = func(url string) error {
		opened <- url
		return nil
	}
	t.Cleanup(func() { openURL = prev })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, ln) }()

	base := "http://" + ln.Addr().String()
	select {
	case url := <-opened:
		if url != base+"/" {
			t.Fatalf("opened %s want %s/", url, base)
		}
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("browser was not opened")
	}

	resp, err := http.Get(base + "/api/convert?hex=%232563eb")
	if err != nil {
		cancel()
		t.Fatalf("GET /api/convert: %v", err)
	}
	var body struct {
		Hex string `json:"hex"`
	}
	err = json.NewDecoder(resp.Body).Decode(&body)
	resp.Body.Close()
	if err != nil || resp.StatusCode != http.StatusOK || body.Hex != "#2563eb" {
		cancel()
		t.Fatalf("status=%d hex=%q err=%v", resp.StatusCode, body.Hex, err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not shut down")
	}
}
