package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phyten/tokenstudio/internal/colorutil"
	"github.com/phyten/tokenstudio/internal/store"
	"github.com/phyten/tokenstudio/internal/theme"
	"github.com/phyten/tokenstudio/internal/tokens"
)

func newTestMux(t *testing.T, withStore bool) (*http.ServeMux, *API) {
	t.Helper()
	var st *store.Store
	if withStore {
		var err error
		st, err = store.Open(context.Background(), filepath.Join(t.TempDir(), "themes.db"))
		if err != nil {
			t.Fatalf("store.Open に失敗しました: %v", err)
		}
		t.Cleanup(func() { _ = st.Close() })
	}
	api := NewAPI(nil, st, nil)
	mux := http.NewServeMux()
	Register(mux, api)
	return mux, api
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("レスポンスのデコードに失敗しました: %v", err)
	}
	return v
}

func TestIndexはアセットのパスを埋め込んで返す(t *testing.T) {
	mux, _ := newTestMux(t, false)
	rr := doRequest(t, mux, http.MethodGet, "/", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("ステータスコードが一致しません: got=%d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{stylesPath, scriptPath, "<option>violet</option>", "<option>split-complementary</option>"} {
		if !strings.Contains(body, want) {
			t.Fatalf("index に %q が含まれていません", want)
		}
	}
	if csp := rr.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "script-src 'self'") {
		t.Fatalf("CSP が設定されていません: %q", csp)
	}

	rr = doRequest(t, mux, http.MethodGet, scriptPath, "")
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/javascript") {
		t.Fatalf("ui.js の Content-Type が不正です: %q", ct)
	}
	rr = doRequest(t, mux, http.MethodGet, "/missing", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("未知のパスは404になるべきです: got=%d", rr.Code)
	}
}

func TestConvertは色情報を返す(t *testing.T) {
	mux, _ := newTestMux(t, false)
	rr := doRequest(t, mux, http.MethodGet, "/api/convert?hex=%23FFF", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("ステータスコードが一致しません: got=%d body=%s", rr.Code, rr.Body.String())
	}
	got := decode[convertResponse](t, rr)
	if got.Hex != "#ffffff" || got.Nearest != "white" || got.TextColor != "#000000" {
		t.Fatalf("変換結果が期待値と異なります: %+v", got)
	}
	if got.RGB != (rgbJSON{255, 255, 255}) || got.OKLCH.C != 0 {
		t.Fatalf("RGB/OKLCH が期待値と異なります: %+v", got)
	}

	rr = doRequest(t, mux, http.MethodGet, "/api/convert?hex=nope", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("不正な色は400になるべきです: got=%d", rr.Code)
	}
	if e := decode[errorResponse](t, rr); e.Error == "" {
		t.Fatal("エラーメッセージが空です")
	}
}

func TestRampはプリセットとアルファを扱う(t *testing.T) {
	mux, _ := newTestMux(t, false)
	rr := doRequest(t, mux, http.MethodGet, "/api/ramp?preset=blue&alpha=1&steps=10", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("ステータスコードが一致しません: got=%d body=%s", rr.Code, rr.Body.String())
	}
	got := decode[rampResponse](t, rr)
	want, err := colorutil.GenerateRamp(colorutil.RampOptions{BaseColor: "#3b82f6", Steps: 10, ChromaScale: 1})
	if err != nil {
		t.Fatalf("GenerateRamp に失敗しました: %v", err)
	}
	if diff := cmp.Diff(want, got.Ramp); diff != "" {
		t.Fatalf("ランプが一致しません (-want +got):\n%s", diff)
	}
	if len(got.Alpha) != 10 || got.Base != "#3b82f6" {
		t.Fatalf("アルファランプまたはベースが不正です: %+v", got)
	}

	for _, q := range []string{"", "base=%23123456&steps=9", "base=%23123456&chroma_scale=5", "preset=nope", "base=%23123456&alpha_format=hsl"} {
		rr := doRequest(t, mux, http.MethodGet, "/api/ramp?"+q, "")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%q は400になるべきです: got=%d", q, rr.Code)
		}
	}
}

func TestHarmonyとContrast(t *testing.T) {
	mux, _ := newTestMux(t, false)
	rr := doRequest(t, mux, http.MethodGet, "/api/harmony?base=%232563eb&type=triadic", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("ステータスコードが一致しません: got=%d body=%s", rr.Code, rr.Body.String())
	}
	h := decode[harmonyResponse](t, rr)
	if len(h.Colors) != 3 || h.Type != "triadic" {
		t.Fatalf("ハーモニーが期待値と異なります: %+v", h)
	}
	if rr := doRequest(t, mux, http.MethodGet, "/api/harmony?base=%232563eb&type=pentadic", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("未知のハーモニーは400になるべきです: got=%d", rr.Code)
	}

	rr = doRequest(t, mux, http.MethodGet, "/api/contrast?fg=%23000000&bg=%23ffffff&usage=large", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("ステータスコードが一致しません: got=%d body=%s", rr.Code, rr.Body.String())
	}
	report := decode[colorutil.ContrastReport](t, rr)
	if report.WCAG.Rating != colorutil.RatingAAA || report.Usage != colorutil.UsageLarge {
		t.Fatalf("コントラスト結果が期待値と異なります: %+v", report)
	}
	if rr := doRequest(t, mux, http.MethodGet, "/api/contrast?fg=%23000000&bg=%23ffffff&usage=tiny", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("未知の usage は400になるべきです: got=%d", rr.Code)
	}
}

func TestPresetsは全プリセットを返す(t *testing.T) {
	mux, _ := newTestMux(t, false)
	rr := doRequest(t, mux, http.MethodGet, "/api/presets", "")
	got := decode[[]presetResponse](t, rr)
	if len(got) != len(colorutil.PresetNames()) {
		t.Fatalf("プリセット数が一致しません: got=%d", len(got))
	}
	for _, p := range got {
		if len(p.Ramp) != colorutil.DefaultSteps || p.BaseColor == "" {
			t.Fatalf("プリセット %s が不正です: %+v", p.Name, p)
		}
	}
}

func TestThemesは保存とアクティブ化を行う(t *testing.T) {
	mux, api := newTestMux(t, true)

	var notified []string
	api.Themes.Watch(func(th theme.Theme) { notified = append(notified, th.Name) })

	body := `{"name":"Ocean","spec":{"steps":10,"alpha":false,"semantic":true,"palettes":[{"name":"brand","base":"#2563eb"},{"name":"gray"}]}}`
	rr := doRequest(t, mux, http.MethodPost, "/api/themes", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("ステータスコードが一致しません: got=%d body=%s", rr.Code, rr.Body.String())
	}
	saved := decode[theme.Theme](t, rr)
	if saved.Name != "ocean" || saved.ID == "" {
		t.Fatalf("保存結果が不正です: %+v", saved)
	}
	if _, err := api.Store.Get(context.Background(), saved.ID); err != nil {
		t.Fatalf("ストアに保存されていません: %v", err)
	}

	rr = doRequest(t, mux, http.MethodPost, "/api/themes/ocean/activate", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("アクティブ化に失敗しました: got=%d body=%s", rr.Code, rr.Body.String())
	}
	list := decode[themesResponse](t, doRequest(t, mux, http.MethodGet, "/api/themes", ""))
	if list.Active != "ocean" || len(list.Themes) != 1 {
		t.Fatalf("テーマ一覧が期待値と異なります: %+v", list)
	}
	if diff := cmp.Diff([]string{"ocean"}, notified); diff != "" {
		t.Fatalf("通知が期待値と異なります (-want +got):\n%s", diff)
	}

	set := decode[tokens.Set](t, doRequest(t, mux, http.MethodGet, "/api/themes/OCEAN/tokens", ""))
	if set.Steps != 10 || len(set.Palettes) != 2 {
		t.Fatalf("トークンセットが不正です: %+v", set)
	}
	if _, ok := set.Lookup("on-brand"); !ok {
		t.Fatal("on-brand トークンがありません")
	}
}

func TestThemesのエラー応答(t *testing.T) {
	mux, _ := newTestMux(t, false)
	cases := []struct {
		method, target, body string
		want                 int
	}{
		{http.MethodPost, "/api/themes/missing/activate", "", http.StatusNotFound},
		{http.MethodGet, "/api/themes/missing/tokens", "", http.StatusNotFound},
		{http.MethodPost, "/api/themes", `{"name":"x","spec":{"palettes":[{"name":"nope"}]}}`, http.StatusBadRequest},
		{http.MethodPost, "/api/themes", `{"name":"x","unknown":1}`, http.StatusBadRequest},
		{http.MethodPost, "/api/themes", `not json`, http.StatusBadRequest},
		{http.MethodDelete, "/api/themes", "", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		rr := doRequest(t, mux, tc.method, tc.target, tc.body)
		if rr.Code != tc.want {
			t.Fatalf("%s %s: got=%d want=%d body=%s", tc.method, tc.target, rr.Code, tc.want, rr.Body.String())
		}
	}
}

func TestJSONはHTMLをエスケープしない(t *testing.T) {
	mux, _ := newTestMux(t, false)
	rr := doRequest(t, mux, http.MethodGet, "/api/convert?hex=%3Cscript%3E", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("ステータスコードが一致しません: got=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "<script>") {
		t.Fatalf("エラーメッセージがエスケープされています: %s", rr.Body.String())
	}
}
