package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"treemap/internal/geom"
	"treemap/internal/interact"
	"treemap/internal/render"
	"treemap/internal/trees"
)

type summaryResponse struct {
	Borough string        `json:"borough"`
	Total   int           `json:"total"`
	Health  trees.Summary `json:"health"`
}

type treeResponse struct {
	ID        int     `json:"id"`
	TreeID    string  `json:"tree_id,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Health    string  `json:"health"`
	Species   string  `json:"species"`
	Diameter  float64 `json:"dbh"`
	Borough   string  `json:"borough"`
}

type boroughResponse struct {
	Name  string `json:"name"`
	Trees int    `json:"trees"`
}

// borough reads the filter query parameter; absent means All.
func borough(r *http.Request) string {
	if b := r.URL.Query().Get("borough"); b != "" {
		return b
	}
	return interact.AllBoroughs
}

// transform reads an optional view transform (k, x, y), clamping the scale.
func (s *Server) transform(r *http.Request) geom.Transform {
	q := r.URL.Query()
	t := geom.Identity
	if v, err := strconv.ParseFloat(q.Get("k"), 64); err == nil {
		t.K = v
	}
	if v, err := strconv.ParseFloat(q.Get("x"), 64); err == nil {
		t.X = v
	}
	if v, err := strconv.ParseFloat(q.Get("y"), 64); err == nil {
		t.Y = v
	}
	z := interact.NewZoom(s.opts.ZoomMin, s.opts.ZoomMax, 0)
	return z.Set(t)
}

// scene renders the settled map for one request.
func (s *Server) scene(r *http.Request) render.Scene {
	e := render.NewEngine(s.opts.Projection, s.opts.CanvasWidth, s.opts.CanvasHeight,
		render.WithEnterDuration(0))
	e.SetBoundaries(s.data.Boundaries)
	e.DrawTrees(interact.VisibleSubset(s.data.Trees.Sample, borough(r)))
	return e.Scene(time.Now(), s.transform(r))
}

func (s *Server) mapSVG(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, s.scene(r)); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) mapPNG(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := render.WritePNG(&buf, s.scene(r)); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `inline; filename="tree_map.png"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	b := borough(r)
	sum := trees.Summarize(interact.VisibleSubset(s.data.Trees.Sample, b))
	s.writeJSON(w, summaryResponse{Borough: b, Total: sum.Total(), Health: sum})
}

func (s *Server) listTrees(w http.ResponseWriter, r *http.Request) {
	visible := interact.VisibleSubset(s.data.Trees.Sample, borough(r))
	out := make([]treeResponse, 0, len(visible))
	for _, rec := range visible {
		out = append(out, toTreeResponse(rec))
	}
	s.writeJSON(w, out)
}

func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid tree id", http.StatusBadRequest)
		return
	}
	for _, rec := range s.data.Trees.Sample {
		if rec.ID == id {
			s.writeJSON(w, toTreeResponse(rec))
			return
		}
	}
	http.Error(w, "tree not found", http.StatusNotFound)
}

func (s *Server) listBoroughs(w http.ResponseWriter, r *http.Request) {
	counts := map[string]int{}
	for _, rec := range s.data.Trees.Sample {
		counts[rec.Borough]++
	}
	out := make([]boroughResponse, 0, len(s.data.Boundaries))
	for _, f := range s.data.Boundaries {
		out = append(out, boroughResponse{Name: f.Name, Trees: counts[f.Name]})
	}
	s.writeJSON(w, out)
}

func toTreeResponse(r trees.Record) treeResponse {
	return treeResponse{
		ID:        r.ID,
		TreeID:    r.TreeID,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Health:    string(r.Health),
		Species:   r.Species,
		Diameter:  r.Diameter,
		Borough:   r.Borough,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encode response", zap.Error(err))
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.log.Error("render failed", zap.Error(err))
	http.Error(w, "render failed", http.StatusInternalServerError)
}
