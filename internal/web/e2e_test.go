//go:build e2e

package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
)

func TestStudioはランプを描画する(t *testing.T) {
	t.Parallel()

	if !hasBrowser() {
		t.Skip("Chrome/Chromiumが見つからないためスキップします")
	}

	mux := http.NewServeMux()
	Register(mux, NewAPI(nil, nil, nil))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// chromedp navigation can take some time in CI environments.
	ctx, cancel = context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	var swatches int
	var firstTitle string
	var contrastHTML string
	var themesText string
	var injected int

	err := chromedp.Run(ctx,
		chromedp.Navigate(srv.URL),
		chromedp.WaitVisible(`#ramp-form`, chromedp.ByID),
		chromedp.Click(`#ramp-form button`, chromedp.ByQuery),
		chromedp.WaitVisible(`#ramp-out .swatch`, chromedp.ByQuery),
		chromedp.Evaluate(`document.querySelectorAll('#ramp-out .swatch').length`, &swatches),
		chromedp.AttributeValue(`#ramp-out .swatch`, "title", &firstTitle, nil, chromedp.ByQuery),
		chromedp.Click(`#contrast-form button`, chromedp.ByQuery),
		chromedp.WaitVisible(`#contrast-out table`, chromedp.ByQuery),
		chromedp.InnerHTML(`#contrast-out`, &contrastHTML, chromedp.ByQuery),
		chromedp.Text(`#themes-out`, &themesText, chromedp.ByQuery),
		chromedp.Evaluate(`document.getElementById('harmony-out').innerHTML = renderSwatches(['<img src=x onerror=alert(1)>']);
			document.querySelectorAll('#harmony-out img, #harmony-out script').length`, &injected),
	)
	if err != nil {
		t.Fatalf("chromedpの操作に失敗しました: %v", err)
	}

	if swatches != 12 {
		t.Fatalf("スウォッチ数が期待値と異なります: %d", swatches)
	}
	if !strings.HasPrefix(firstTitle, "#") || len(firstTitle) != 7 {
		t.Fatalf("スウォッチのタイトルが不正です: %q", firstTitle)
	}
	if !strings.Contains(contrastHTML, "WCAG") || !strings.Contains(contrastHTML, "APCA") {
		t.Fatalf("コントラスト表が描画されていません: %q", contrastHTML)
	}
	if !strings.Contains(themesText, "No saved themes") {
		t.Fatalf("テーマ一覧が描画されていません: %q", themesText)
	}
	if injected != 0 {
		t.Fatalf("危険なノードが挿入されています: %d", injected)
	}
}

func hasBrowser() bool {
	candidates := []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"}
	for _, name := range candidates {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
