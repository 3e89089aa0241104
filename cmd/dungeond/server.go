package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"dungeon-generator/internal/archive"
	"dungeon-generator/internal/config"
	"dungeon-generator/internal/dungeon"
	"dungeon-generator/internal/export"
	"dungeon-generator/internal/logger"
	"dungeon-generator/internal/pathfind"
)

// GenerateRequest is the body of POST /generate. Unset fields keep the
// configured value; an unset seed is taken from the clock.
type GenerateRequest struct {
	Seed            *int64 `json:"seed,omitempty"`
	GridWidth       *int   `json:"gridWidth,omitempty"`
	GridHeight      *int   `json:"gridHeight,omitempty"`
	MinRoomSize     *int   `json:"minRoomSize,omitempty"`
	MaxRoomSize     *int   `json:"maxRoomSize,omitempty"`
	MaxRooms        *int   `json:"maxRooms,omitempty"`
	Margin          *int   `json:"margin,omitempty"`
	ExtraEdgeChance *int   `json:"extraEdgeChance,omitempty"`
}

// apply returns base with the request's overrides.
func (r GenerateRequest) apply(base config.Generation) config.Generation {
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&base.GridWidth, r.GridWidth)
	set(&base.GridHeight, r.GridHeight)
	set(&base.MinRoomSize, r.MinRoomSize)
	set(&base.MaxRoomSize, r.MaxRoomSize)
	set(&base.MaxRooms, r.MaxRooms)
	set(&base.Margin, r.Margin)
	set(&base.ExtraEdgeChance, r.ExtraEdgeChance)
	return base
}

// GenerateResponse is returned by POST /generate.
type GenerateResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Summary *dungeon.Summary `json:"summary,omitempty"`
	Name    string           `json:"name,omitempty"`
}

// RouteRequest is the body of POST /route.
type RouteRequest struct {
	Start pathfind.Coord `json:"start"`
	End   pathfind.Coord `json:"end"`
}

// RouteResponse is returned by POST /route.
type RouteResponse struct {
	Path    []pathfind.Coord `json:"path"`
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Cost    float64          `json:"cost,omitempty"`
}

type server struct {
	cfg     config.Generation
	archive *archive.Archive // nil when archiving is disabled

	// genMu serialises generations so one finishes before the next starts.
	genMu sync.Mutex

	mu      sync.RWMutex
	current *dungeon.Layout
}

func newServer(cfg config.Generation, a *archive.Archive) *server {
	return &server{cfg: cfg, archive: a}
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func (s *server) routes() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/generate", corsMiddleware(s.generateHandler)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/route", corsMiddleware(s.routeHandler)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/layout/lines", corsMiddleware(s.linesHandler)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/layout/geojson", corsMiddleware(s.geojsonHandler)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/layout/ascii", corsMiddleware(s.asciiHandler)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/layouts", corsMiddleware(s.listHandler)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/layouts/{seed:-?[0-9]+}", corsMiddleware(s.archivedHandler)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/health", corsMiddleware(s.healthHandler)).Methods(http.MethodGet, http.MethodOptions)
	return router
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *server) currentLayout() *dungeon.Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// POST /generate - Generate a new layout and make it current
func (s *server) generateHandler(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warning("❌ invalid generate request", "error", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	cfg := req.apply(s.cfg)
	if err := cfg.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, GenerateResponse{Success: false, Message: err.Error()})
		return
	}

	logger.Info("🗺️  generate request received", "seed", seed, "grid_width", cfg.GridWidth, "grid_height", cfg.GridHeight)

	s.genMu.Lock()
	defer s.genMu.Unlock()

	layout, err := dungeon.NewGenerator(cfg, seed).Generate()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, GenerateResponse{Success: false, Message: err.Error()})
		return
	}

	s.mu.Lock()
	s.current = layout
	s.mu.Unlock()

	summary := layout.Summary()
	resp := GenerateResponse{Success: true, Summary: &summary}

	if s.archive != nil {
		record, err := s.archive.Save(r.Context(), layout)
		if err != nil {
			logger.Error("⚠️  failed to archive layout", "seed", layout.Seed, "error", err)
		} else {
			resp.Name = record.Name
		}
	}

	logger.Info("✅ layout stored as current", "seed", layout.Seed, "rooms", summary.Rooms)
	writeJSON(w, http.StatusOK, resp)
}

// POST /route - Find the cheapest walk between two tiles of the current layout
func (s *server) routeHandler(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warning("❌ invalid route request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	layout := s.currentLayout()
	if layout == nil {
		http.Error(w, "No layout generated. Call /generate first", http.StatusBadRequest)
		return
	}

	logger.Info("📍 route request received", "start", req.Start.String(), "end", req.End.String())

	grid := layout.WalkGrid()
	path, ok := pathfind.FindPath(grid, req.Start, req.End)

	resp := RouteResponse{Path: path, Success: ok}
	if !ok {
		logger.Info("❌ no route found", "start", req.Start.String(), "end", req.End.String())
		resp.Message = "No walkable route between start and end"
	} else {
		resp.Cost = pathfind.PathCost(grid, path)
		logger.Info("✅ route found", "tiles", len(path), "cost", resp.Cost)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /layout/lines - Get graph edges as line segments for visualization
func (s *server) linesHandler(w http.ResponseWriter, r *http.Request) {
	layout := s.currentLayout()
	if layout == nil {
		http.Error(w, "No layout generated. Call /generate first", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"tree":     export.Lines(layout.Tree),
		"extra":    export.Lines(layout.Extra),
		"lines":    export.Lines(layout.Edges()),
		"numRooms": len(layout.Rooms),
		"numEdges": len(layout.Tree) + len(layout.Extra),
	})
}

// GET /layout/geojson - Get the current layout as a GeoJSON feature collection
func (s *server) geojsonHandler(w http.ResponseWriter, r *http.Request) {
	layout := s.currentLayout()
	if layout == nil {
		http.Error(w, "No layout generated. Call /generate first", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	if err := export.EncodeGeoJSON(w, layout); err != nil {
		logger.Error("failed to write GeoJSON", "error", err)
	}
}

// GET /layout/ascii - Get the current tile map as text
func (s *server) asciiHandler(w http.ResponseWriter, r *http.Request) {
	layout := s.currentLayout()
	if layout == nil {
		http.Error(w, "No layout generated. Call /generate first", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	export.WriteASCII(w, layout, false)
}

// GET /layouts - List archived layouts
func (s *server) listHandler(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		http.Error(w, "Archive disabled", http.StatusNotFound)
		return
	}

	records, err := s.archive.List(r.Context())
	if err != nil {
		logger.Error("failed to list layouts", "error", err)
		http.Error(w, "Failed to list layouts", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"layouts": records,
	})
}

// GET /layouts/{seed} - Get an archived layout as YAML
func (s *server) archivedHandler(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		http.Error(w, "Archive disabled", http.StatusNotFound)
		return
	}

	seed, err := strconv.ParseInt(mux.Vars(r)["seed"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid seed", http.StatusBadRequest)
		return
	}

	record, err := s.archive.Get(r.Context(), seed)
	if errors.Is(err, archive.ErrNotFound) {
		http.Error(w, "Layout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("failed to load layout", "seed", seed, "error", err)
		http.Error(w, "Failed to load layout", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.Write(record.YAML)
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	layout := s.currentLayout()

	status := "ready"
	numRooms := 0
	if layout == nil {
		status = "waiting for layout"
	} else {
		numRooms = len(layout.Rooms)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"hasLayout": layout != nil,
		"numRooms":  numRooms,
		"archive":   s.archive != nil,
	})
}
