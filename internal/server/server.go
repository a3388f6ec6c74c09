package server

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"togglpace/internal/core/model"
	"togglpace/internal/core/trajectory"
	"togglpace/internal/data/source"
	"togglpace/internal/util"
)

// Server exposes the chart page and the JSON API over an entry source.
type Server struct {
	source  source.Source
	builder *trajectory.Builder
	tmpl    *template.Template
}

// New creates a Server over the given source and trajectory builder.
func New(src source.Source, builder *trajectory.Builder) (*Server, error) {
	tmpl, err := template.New("index").Parse(pageHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &Server{
		source:  src,
		builder: builder,
		tmpl:    tmpl,
	}, nil
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /api/toggl", s.handleToggl)
	mux.HandleFunc("GET /api/trajectory", s.handleTrajectory)
	return withRequestLog(mux)
}

type pageModel struct {
	Timezone  string
	StartHour int
	EndHour   int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	startHour, endHour := s.builder.WindowHours()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, pageModel{
		Timezone:  s.builder.Location().String(),
		StartHour: startHour,
		EndHour:   endHour,
	}); err != nil {
		util.LogErrorf("Failed to render page: %v", err)
	}
}

// handleToggl serves the raw {today, historical} payload, timestamps
// already rendered in the configured timezone.
func (s *Server) handleToggl(w http.ResponseWriter, r *http.Request) {
	payload, err := s.source.Payload(r.Context())
	if err != nil {
		util.LogErrorf("Failed to fetch entries: %v", err)
		writeError(w, http.StatusBadGateway, "Failed to fetch data")
		return
	}
	writeJSON(w, payload)
}

type trajectoryMeta struct {
	Timezone    string `json:"timezone"`
	StartHour   int    `json:"startHour"`
	EndHour     int    `json:"endHour"`
	GeneratedAt string `json:"generatedAt"`
}

type trajectoryResponse struct {
	Today      []trajectory.Point `json:"today"`
	Historical []trajectory.Point `json:"historical"`
	Meta       trajectoryMeta     `json:"meta"`
}

// handleTrajectory computes the point sequences server-side so the page
// only draws.
func (s *Server) handleTrajectory(w http.ResponseWriter, r *http.Request) {
	payload, err := s.source.Payload(r.Context())
	if err != nil {
		util.LogErrorf("Failed to fetch entries: %v", err)
		writeError(w, http.StatusBadGateway, "Failed to fetch data")
		return
	}

	now := time.Now()
	loc := s.builder.Location()

	todayEntries, droppedToday := model.ValidateAll(payload.Today)
	historicalEntries, droppedHist := model.ValidateAll(payload.Historical)
	if dropped := droppedToday + droppedHist; dropped > 0 {
		util.LogDebugf("Dropped %d malformed entries", dropped)
	}

	startHour, endHour := s.builder.WindowHours()
	resp := trajectoryResponse{
		Today:      s.builder.BuildDay(todayEntries, now, now),
		Historical: s.builder.BuildHistorical(historicalEntries, now),
		Meta: trajectoryMeta{
			Timezone:    loc.String(),
			StartHour:   startHour,
			EndHour:     endHour,
			GeneratedAt: now.In(loc).Format(time.RFC3339),
		},
	}

	// The chart iterates both series; null would make it crash.
	if resp.Today == nil {
		resp.Today = []trajectory.Point{}
	}
	if resp.Historical == nil {
		resp.Historical = []trajectory.Point{}
	}

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	data, err := sonic.Marshal(v)
	if err != nil {
		util.LogErrorf("Failed to encode response: %v", err)
		writeError(w, http.StatusInternalServerError, "Encoding failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`, msg)
}

func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		util.LogDebugf("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}
