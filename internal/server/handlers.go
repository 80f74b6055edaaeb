package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/SeriesLens/internal/analyze"
	"github.com/Alias1177/SeriesLens/internal/anomaly"
	"github.com/Alias1177/SeriesLens/internal/api/assistant"
	"github.com/Alias1177/SeriesLens/internal/calculate"
	"github.com/Alias1177/SeriesLens/internal/export"
	"github.com/Alias1177/SeriesLens/internal/filter"
	"github.com/Alias1177/SeriesLens/internal/generator"
	"github.com/Alias1177/SeriesLens/internal/ingest"
	"github.com/Alias1177/SeriesLens/internal/patterns"
	"github.com/Alias1177/SeriesLens/models"
)

type analyzeRequest struct {
	Values              []models.RawPoint `json:"values"`
	WindowSize          int               `json:"window_size"`
	ThresholdMultiplier float64           `json:"threshold_multiplier"`
}

type generateRequest struct {
	Config *models.GenerationConfig `json:"config"`
	Preset string                   `json:"preset"`
	Random bool                     `json:"random"`
	Seed   *uint64                  `json:"seed"`
}

type filterParams struct {
	TimeWindow    string   `json:"time_window"`
	ValueMin      *float64 `json:"value_min"`
	ValueMax      *float64 `json:"value_max"`
	ShowAnomalies *bool    `json:"show_anomalies"`
	ShowNormal    *bool    `json:"show_normal"`
	SortKey       string   `json:"sort_key"`
	SortOrder     string   `json:"sort_order"`
}

type filterRequest struct {
	Data   []export.WirePoint `json:"data"`
	Filter filterParams       `json:"filter"`
}

type askRequest struct {
	Question string `json:"question"`
}

type analysisResponse struct {
	Config     *models.GenerationConfig `json:"config,omitempty"`
	Data       []export.WirePoint       `json:"data"`
	Statistics *calculate.Snapshot      `json:"statistics"`
	Insights   models.InsightReport     `json:"insights"`
	Profile    patterns.SeriesProfile   `json:"profile"`
	Histogram  []calculate.Bin          `json:"histogram"`
	Summary    *models.Summary          `json:"summary"`
}

type filterResponse struct {
	Data    []export.WirePoint `json:"data"`
	Summary *models.Summary    `json:"summary"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "serieslens"})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"presets":  generator.Presets(),
		"default":  generator.DefaultConfig(),
		"patterns": models.Patterns,
		"trends":   models.Trends,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.Values) == 0 {
		writeError(w, http.StatusBadRequest, "values must not be empty")
		return
	}
	if req.WindowSize < 0 || req.ThresholdMultiplier < 0 {
		writeError(w, http.StatusBadRequest, "window_size and threshold_multiplier must not be negative")
		return
	}
	if err := calculate.CheckRange(models.RawValues(req.Values)); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	series := s.detector(req.WindowSize, req.ThresholdMultiplier).Label(req.Values)
	s.respondAnalysis(w, series, analyze.SourceUpload, nil)
}

// handleUpload analyzes a multipart "file" field in any format ingest understands
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("missing file: %v", err))
		return
	}
	defer file.Close()

	windowSize, err := formInt(r, "window_size")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	multiplier, err := formFloat(r, "threshold_multiplier")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raw, err := ingest.Read(header.Filename, file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	series := s.detector(windowSize, multiplier).Label(raw)
	s.respondAnalysis(w, series, analyze.SourceUpload, nil)
}

func formInt(r *http.Request, key string) (int, error) {
	v := r.FormValue(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}

func formFloat(r *http.Request, key string) (float64, error) {
	v := r.FormValue(key)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number", key)
	}
	return f, nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decode(w, r, &req) {
		return
	}

	rng := generator.NewRandom()
	if req.Seed != nil {
		rng = generator.NewSeededRandom(*req.Seed)
	}

	cfg, err := s.resolveConfig(req, rng)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	gen := generator.New(rng,
		generator.WithClock(s.clock),
		generator.WithDetector(anomaly.DefaultDetector()),
	)
	s.respondAnalysis(w, gen.Generate(cfg), analyze.SourceGenerated, &cfg)
}

func (s *Server) resolveConfig(req generateRequest, rng generator.Random) (models.GenerationConfig, error) {
	var cfg models.GenerationConfig
	switch {
	case req.Preset != "":
		preset, err := generator.LookupPreset(req.Preset)
		if err != nil {
			return cfg, err
		}
		cfg = preset.Config
	case req.Config != nil:
		cfg = *req.Config
	case req.Random:
		cfg = generator.RandomConfig(rng)
	default:
		cfg = generator.DefaultConfig()
	}

	pattern, err := models.ParsePattern(string(cfg.Pattern))
	if err != nil {
		return cfg, err
	}
	trend, err := models.ParseTrend(string(cfg.Trend))
	if err != nil {
		return cfg, err
	}
	cfg.Pattern, cfg.Trend = pattern, trend

	if cfg.PointCount <= 0 || cfg.PointCount > maxGeneratedPoints {
		return cfg, fmt.Errorf("data_points must be between 1 and %d", maxGeneratedPoints)
	}
	return cfg.Normalize(), nil
}

func (s *Server) respondAnalysis(w http.ResponseWriter, series models.Series, source analyze.Source, cfg *models.GenerationConfig) {
	result, err := analyze.RunSeries(series, source)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, analyze.ErrEmptySeries) || errors.Is(err, calculate.ErrOutOfRange) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	s.setContext(assistant.BuildContext(result.Series))

	writeJSON(w, http.StatusOK, analysisResponse{
		Config:     cfg,
		Data:       export.ToWire(result.Series),
		Statistics: result.Statistics,
		Insights:   result.Insights,
		Profile:    result.Profile,
		Histogram:  result.Histogram,
		Summary:    result.Summary,
	})
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if !decode(w, r, &req) {
		return
	}

	state, err := req.Filter.state()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view := s.engine.Apply(export.FromWire(req.Data), state)
	writeJSON(w, http.StatusOK, filterResponse{
		Data:    export.ToWire(view),
		Summary: filter.Summarize(view),
	})
}

func (p filterParams) state() (models.FilterState, error) {
	state := filter.DefaultState()

	var err error
	if state.TimeWindow, err = models.ParseTimeWindow(p.TimeWindow); err != nil {
		return state, err
	}
	if state.SortKey, err = models.ParseSortKey(p.SortKey); err != nil {
		return state, err
	}
	if state.SortOrder, err = models.ParseSortOrder(p.SortOrder); err != nil {
		return state, err
	}
	if p.ValueMin != nil && p.ValueMax != nil && *p.ValueMin > *p.ValueMax {
		return state, errors.New("value_min must not exceed value_max")
	}
	state.ValueMin, state.ValueMax = p.ValueMin, p.ValueMax
	if p.ShowAnomalies != nil {
		state.ShowAnomalies = *p.ShowAnomalies
	}
	if p.ShowNormal != nil {
		state.ShowNormal = *p.ShowNormal
	}
	return state, nil
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !decode(w, r, &req) {
		return
	}
	if s.asker == nil {
		writeError(w, http.StatusServiceUnavailable, assistant.ErrNotConfigured.Error())
		return
	}

	answer, err := s.asker.Ask(r.Context(), req.Question, s.currentContext())
	switch {
	case errors.Is(err, assistant.ErrEmptyQuestion):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, assistant.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		s.logger.Error().Err(err).Str("request_id", RequestIDFromContext(r.Context())).Msg("Assistant failed")
		writeError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// writeJSON encodes v before touching the response so an encoding failure still reaches the
// client as a JSON error
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("component", "http_server").Msg("Failed to encode response")
		status = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
