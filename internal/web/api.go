package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/phyten/tokenstudio/internal/colorutil"
	"github.com/phyten/tokenstudio/internal/opts"
	"github.com/phyten/tokenstudio/internal/store"
	"github.com/phyten/tokenstudio/internal/theme"
	"github.com/phyten/tokenstudio/internal/tokens"
)

const maxBodyBytes = 1 << 20

// API serves the studio's JSON endpoints. Store is optional; without it
// themes live only in Themes.
type API struct {
	Themes *theme.Manager
	Store  *store.Store
	Logger *slog.Logger
}

func NewAPI(themes *theme.Manager, st *store.Store, logger *slog.Logger) *API {
	if themes == nil {
		themes = theme.NewManager(logger)
	}
	return &API{Themes: themes, Store: st, Logger: logger}
}

func (a *API) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

func (a *API) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/convert", a.handleConvert)
	mux.HandleFunc("GET /api/ramp", a.handleRamp)
	mux.HandleFunc("GET /api/harmony", a.handleHarmony)
	mux.HandleFunc("GET /api/contrast", a.handleContrast)
	mux.HandleFunc("GET /api/presets", a.handlePresets)
	mux.HandleFunc("GET /api/themes", a.handleListThemes)
	mux.HandleFunc("POST /api/themes", a.handleSaveTheme)
	mux.HandleFunc("GET /api/themes/{name}/tokens", a.handleThemeTokens)
	mux.HandleFunc("POST /api/themes/{name}/activate", a.handleActivate)
}

type rgbJSON struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

type convertResponse struct {
	Hex       string          `json:"hex"`
	RGB       rgbJSON         `json:"rgb"`
	OKLCH     colorutil.OKLCH `json:"oklch"`
	Nearest   string          `json:"nearest"`
	TextColor string          `json:"text_color"`
}

func (a *API) handleConvert(w http.ResponseWriter, r *http.Request) {
	rgb, err := colorutil.ParseColor(r.URL.Query().Get("hex"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	hex := rgb.Hex()
	nearest, _, err := colorutil.NearestName(hex)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	a.writeJSON(w, http.StatusOK, convertResponse{
		Hex:       hex,
		RGB:       rgbJSON{R: rgb.R, G: rgb.G, B: rgb.B},
		OKLCH:     rgb.OKLCH(),
		Nearest:   nearest,
		TextColor: colorutil.AutoTextColor(rgb).Hex(),
	})
}

type rampResponse struct {
	Base        string   `json:"base"`
	Steps       int      `json:"steps"`
	ChromaScale float64  `json:"chroma_scale"`
	Ramp        []string `json:"ramp"`
	Alpha       []string `json:"alpha,omitempty"`
}

func (a *API) handleRamp(w http.ResponseWriter, r *http.Request) {
	req, err := opts.ApplyWebQuery(opts.Defaults(), r.URL.Query())
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := opts.NormalizeAndValidate(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	ramp, err := colorutil.GenerateRamp(req.RampOptions())
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	resp := rampResponse{Base: req.Base, Steps: req.Steps, ChromaScale: req.ChromaScale, Ramp: ramp}
	if req.Alpha {
		resp.Alpha, err = colorutil.GenerateAlphaRamp(req.AlphaOptions())
		if err != nil {
			a.writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	a.writeJSON(w, http.StatusOK, resp)
}

type harmonyResponse struct {
	Base   string   `json:"base"`
	Type   string   `json:"type"`
	Colors []string `json:"colors"`
}

func (a *API) handleHarmony(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h, err := colorutil.ParseHarmony(q.Get("type"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	rgb, err := colorutil.ParseColor(q.Get("base"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	colors, err := colorutil.GenerateHarmony(rgb.Hex(), h)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	a.writeJSON(w, http.StatusOK, harmonyResponse{Base: rgb.Hex(), Type: string(h), Colors: colors})
}

func (a *API) handleContrast(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	usage, err := colorutil.ParseUsage(q.Get("usage"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	report, err := colorutil.CheckContrast(q.Get("fg"), q.Get("bg"), usage)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	a.writeJSON(w, http.StatusOK, report)
}

type presetResponse struct {
	colorutil.Preset
	Ramp []string `json:"ramp"`
}

func (a *API) handlePresets(w http.ResponseWriter, r *http.Request) {
	names := colorutil.PresetNames()
	out := make([]presetResponse, 0, len(names))
	for _, name := range names {
		p, err := colorutil.LookupPreset(name)
		if err != nil {
			a.writeError(w, http.StatusInternalServerError, err)
			return
		}
		ramp, err := colorutil.GeneratePresetRamp(name)
		if err != nil {
			a.writeError(w, http.StatusInternalServerError, err)
			return
		}
		out = append(out, presetResponse{Preset: p, Ramp: ramp})
	}
	a.writeJSON(w, http.StatusOK, out)
}

type themesResponse struct {
	Active string        `json:"active,omitempty"`
	Themes []theme.Theme `json:"themes"`
}

func (a *API) handleListThemes(w http.ResponseWriter, r *http.Request) {
	resp := themesResponse{Themes: a.Themes.List()}
	if active, ok := a.Themes.Active(); ok {
		resp.Active = active.Name
	}
	a.writeJSON(w, http.StatusOK, resp)
}

type saveThemeRequest struct {
	Name string      `json:"name"`
	Spec tokens.Spec `json:"spec"`
}

func (a *API) handleSaveTheme(w http.ResponseWriter, r *http.Request) {
	var req saveThemeRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	t := theme.Theme{Name: req.Name, Spec: req.Spec}
	if a.Store != nil {
		saved, err := a.Store.Save(r.Context(), t)
		if err != nil {
			a.writeError(w, http.StatusBadRequest, err)
			return
		}
		t = saved
	}
	if err := a.Themes.Put(t); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	stored, err := a.Themes.Get(t.Name)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, err)
		return
	}
	a.logger().Info("theme saved", "name", stored.Name)
	a.writeJSON(w, http.StatusCreated, stored)
}

func (a *API) handleThemeTokens(w http.ResponseWriter, r *http.Request) {
	t, err := a.Themes.Get(r.PathValue("name"))
	if err != nil {
		a.writeThemeError(w, err)
		return
	}
	set, err := tokens.Build(t.Spec)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, err)
		return
	}
	a.writeJSON(w, http.StatusOK, set)
}

func (a *API) handleActivate(w http.ResponseWriter, r *http.Request) {
	t, err := a.Themes.Activate(r.PathValue("name"))
	if err != nil {
		a.writeThemeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, t)
}

func (a *API) writeThemeError(w http.ResponseWriter, err error) {
	if errors.Is(err, theme.ErrUnknownTheme) {
		a.writeError(w, http.StatusNotFound, err)
		return
	}
	a.writeError(w, http.StatusInternalServerError, err)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		a.logger().Error("request failed", "status", status, "err", err)
	}
	a.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		a.logger().Debug("write response", "err", err)
	}
}

func presetNames() []string {
	return colorutil.PresetNames()
}

func harmonyNames() []string {
	out := make([]string, 0, len(colorutil.Harmonies))
	for _, h := range colorutil.Harmonies {
		out = append(out, string(h))
	}
	return out
}
