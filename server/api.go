package server

import (
	"bufio"
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/DrmagicE/gcolor"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RequestIDHeader carries the request id of every API response.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID returns the request id stored in ctx, or an empty string.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type colorRequest struct {
	// Color is a label ("blue") or a code ("3").
	Color string `json:"color"`
}

type colorResponse struct {
	Cell
	Code  uint8  `json:"code"`
	Label string `json:"label"`
}

type testAverages struct {
	Test     int       `json:"test"`
	Subjects []float64 `json:"subjects"`
}

type averagesResponse struct {
	Averages []testAverages `json:"averages"`
}

type topByColorResponse struct {
	Test         int    `json:"test"`
	Subject      int    `json:"subject"`
	Color        string `json:"color"`
	Participants []int  `json:"participants"`
}

type rankingsResponse struct {
	Test     int       `json:"test,omitempty"`
	Rankings []Ranking `json:"rankings"`
}

type randomizeResponse struct {
	Seed int64 `json:"seed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type api struct {
	service ColorService
}

func registerAPI(r *mux.Router, service ColorService) {
	a := &api{service: service}
	v1 := r.PathPrefix("/v1").Subrouter()
	cellPath := "/participants/{participant}/tests/{test}/subjects/{subject}"
	v1.HandleFunc(cellPath, a.setColor).Methods(http.MethodPut)
	v1.HandleFunc(cellPath, a.getColor).Methods(http.MethodGet)
	v1.HandleFunc("/stats/averages", a.averages).Methods(http.MethodGet)
	v1.HandleFunc("/stats/top/color", a.topByColor).Methods(http.MethodGet)
	v1.HandleFunc("/stats/top/tests/{test}", a.topInTest).Methods(http.MethodGet)
	v1.HandleFunc("/stats/top/overall", a.topOverall).Methods(http.MethodGet)
	v1.HandleFunc("/randomize", a.randomize).Methods(http.MethodPost)
	v1.HandleFunc("/dimensions", a.dimensions).Methods(http.MethodGet)
}

// wrapHandler adds request id, access log, panic recovery and compression to h.
func wrapHandler(h http.Handler) http.Handler {
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	return accessLog(h)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Hijack is required by the websocket upgrader.
func (s *statusRecorder) Hijack() (c net.Conn, rw *bufio.ReadWriter, err error) {
	hj, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	s.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func accessLog(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		h.ServeHTTP(rec, r)
		zaplog.Debug("http request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zaplog.Warn("write response error", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrInvalidInput) {
		status = http.StatusBadRequest
	} else {
		zaplog.Error("request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeJSON(w, status, &errorResponse{Error: err.Error()})
}

func invalidParam(name, value string) error {
	return errors.Wrapf(ErrInvalidInput, "invalid %s: %q", name, value)
}

func parseInt(name, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, invalidParam(name, value)
	}
	return v, nil
}

// queryInt reads an integer query parameter, returning def if absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return def, nil
	}
	return parseInt(name, value)
}

func parseColor(value string) (gcolor.Color, error) {
	c, err := gcolor.ParseColor(value)
	if err != nil {
		return 0, invalidParam("color", value)
	}
	return c, nil
}

func parseCell(r *http.Request) (cell Cell, err error) {
	vars := mux.Vars(r)
	if cell.Participant, err = parseInt("participant", vars["participant"]); err != nil {
		return
	}
	if cell.Test, err = parseInt("test", vars["test"]); err != nil {
		return
	}
	cell.Subject, err = parseInt("subject", vars["subject"])
	return
}

func (a *api) setColor(w http.ResponseWriter, r *http.Request) {
	cell, err := parseCell(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	req := &colorRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, r, errors.Wrap(ErrInvalidInput, "malformed body"))
		return
	}
	c, err := parseColor(req.Color)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.service.SetColor(r.Context(), cell, c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &colorResponse{
		Cell:  cell,
		Code:  uint8(c),
		Label: c.Label(r.URL.Query().Get("lang")),
	})
}

func (a *api) getColor(w http.ResponseWriter, r *http.Request) {
	cell, err := parseCell(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := a.service.GetColor(r.Context(), cell)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &colorResponse{
		Cell:  cell,
		Code:  uint8(c),
		Label: c.Label(r.URL.Query().Get("lang")),
	})
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func (a *api) averages(w http.ResponseWriter, r *http.Request) {
	avg, err := a.service.Averages(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := &averagesResponse{
		Averages: make([]testAverages, len(avg)),
	}
	for t, row := range avg {
		subjects := make([]float64, len(row))
		for s, v := range row {
			subjects[s] = round3(v)
		}
		resp.Averages[t] = testAverages{
			Test:     t + 1,
			Subjects: subjects,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *api) topByColor(w http.ResponseWriter, r *http.Request) {
	test, err := queryInt(r, "test", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	subject, err := queryInt(r, "subject", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	n, err := queryInt(r, "n", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c := gcolor.Blue
	if v := r.URL.Query().Get("color"); v != "" {
		if c, err = parseColor(v); err != nil {
			writeError(w, r, err)
			return
		}
	}
	users, err := a.service.TopByColor(r.Context(), test, subject, c, n)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &topByColorResponse{
		Test:         test,
		Subject:      subject,
		Color:        c.Label(r.URL.Query().Get("lang")),
		Participants: users,
	})
}

func (a *api) topInTest(w http.ResponseWriter, r *http.Request) {
	test, err := parseInt("test", mux.Vars(r)["test"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	n, err := queryInt(r, "n", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rs, err := a.service.TopInTest(r.Context(), test, n)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &rankingsResponse{
		Test:     test,
		Rankings: rs,
	})
}

func (a *api) topOverall(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rs, err := a.service.TopOverall(r.Context(), n)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &rankingsResponse{
		Rankings: rs,
	})
}

func (a *api) randomize(w http.ResponseWriter, r *http.Request) {
	var seed int64
	if v := r.URL.Query().Get("seed"); v != "" {
		var err error
		seed, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, r, invalidParam("seed", v))
			return
		}
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if err := a.service.Randomize(r.Context(), seed); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &randomizeResponse{Seed: seed})
}

func (a *api) dimensions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.service.Dimensions())
}
