package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Tachoss/doodlechemy-playground/game/engine"
	"github.com/Tachoss/doodlechemy-playground/game/service"
	"github.com/Tachoss/doodlechemy-playground/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(metricsMiddleware)

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Game operations
	api.HandleFunc("/sessions/{id}/progress", s.handleGetProgress).Methods("GET")
	api.HandleFunc("/sessions/{id}/stage", s.handleStage).Methods("POST")
	api.HandleFunc("/sessions/{id}/unstage", s.handleUnstage).Methods("POST")
	api.HandleFunc("/sessions/{id}/combine", s.handleCombine).Methods("POST")
	api.HandleFunc("/sessions/{id}/favorite", s.handleToggleFavorite).Methods("POST")
	api.HandleFunc("/sessions/{id}/details", s.handleViewDetails).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods("POST")

	// Power-ups
	api.HandleFunc("/sessions/{id}/powerups", s.handleListPowerUps).Methods("GET")
	api.HandleFunc("/sessions/{id}/powerups/{powerUpId}/activate", s.handleActivatePowerUp).Methods("POST")

	// Derived views
	api.HandleFunc("/sessions/{id}/stats", s.handleGetStats).Methods("GET")
	api.HandleFunc("/sessions/{id}/hint", s.handleGetHint).Methods("GET")
	api.HandleFunc("/sessions/{id}/assistant", s.handleGetAssistant).Methods("GET")
	api.HandleFunc("/sessions/{id}/achievements", s.handleGetAchievements).Methods("GET")
	api.HandleFunc("/sessions/{id}/discoveries", s.handleGetDiscoveries).Methods("GET")

	// Catalogs
	api.HandleFunc("/catalogs", s.handleListCatalogs).Methods("GET")
	api.HandleFunc("/catalogs", s.handleCreateCatalog).Methods("POST")
	api.HandleFunc("/catalogs/{name}", s.handleGetCatalog).Methods("GET")

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Prometheus scrape endpoint
	s.router.Handle("/metrics", metricsHandler())

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeElementRequest reads the {"element_id": ...} body shared by the
// stage/unstage/favorite handlers.
func decodeElementRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		ElementID string `json:"element_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	if req.ElementID == "" {
		respondError(w, http.StatusBadRequest, "element_id is required")
		return "", false
	}
	return req.ElementID, true
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CatalogID   string `json:"catalog_id,omitempty"`
		CatalogName string `json:"catalog_name,omitempty"` // alias for catalog_id
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	catalogID := req.CatalogID
	if catalogID == "" && req.CatalogName != "" {
		catalogID = req.CatalogName
	}

	session, err := s.service.CreateSession(r.Context(), catalogID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sessionsCreated.Inc()
	fmt.Printf("[API] session created id=%s catalog=%s\n", session.ID, session.CatalogName)

	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	session, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	err := s.service.DeleteSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Game Operation Handlers

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	progress, err := s.service.GetProgress(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, progress)
}

func (s *Server) handleStage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	elementID, ok := decodeElementRequest(w, r)
	if !ok {
		return
	}

	progress, err := s.service.Stage(r.Context(), sessionID, elementID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastProgress(sessionID, progress)
	}

	respondJSON(w, http.StatusOK, progress)
}

func (s *Server) handleUnstage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	elementID, ok := decodeElementRequest(w, r)
	if !ok {
		return
	}

	progress, err := s.service.Unstage(r.Context(), sessionID, elementID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastProgress(sessionID, progress)
	}

	respondJSON(w, http.StatusOK, progress)
}

func (s *Server) handleCombine(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	result, err := s.service.Combine(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	// Broadcast updated progress and any game events to WebSocket clients
	if s.hub != nil {
		s.hub.BroadcastProgress(sessionID, result.Progress)
		s.hub.BroadcastEvents(sessionID, result.Events)
	}

	observeCombination(result.Success, result.Discovery != nil)

	// Compact server log for observability
	status := "MISS"
	resultID := "-"
	if result.Success {
		status = "REPEAT"
		if result.Discovery != nil {
			status = "NEW"
		}
		if result.Element != nil {
			resultID = result.Element.ID
		}
	}
	fmt.Printf("[COMBINE] session=%s result=%s status=%s points=%d power=%d score=%d level=%d\n",
		sessionID, resultID, status, result.PointsGained, result.PowerGained,
		result.Progress.GameState.Score, result.Progress.GameState.Level)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	elementID, ok := decodeElementRequest(w, r)
	if !ok {
		return
	}

	progress, err := s.service.ToggleFavorite(r.Context(), sessionID, elementID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastProgress(sessionID, progress)
	}

	respondJSON(w, http.StatusOK, progress)
}

func (s *Server) handleViewDetails(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	// Unlike stage/unstage/favorite, an empty element_id is meaningful
	// here: it clears the current selection.
	var req struct {
		ElementID string `json:"element_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	elementID := req.ElementID

	progress, err := s.service.ViewDetails(r.Context(), sessionID, elementID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, progress)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	progress, err := s.service.Reset(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastProgress(sessionID, progress)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Game reset successfully",
		"progress": progress,
	})
}

// Power-Up Handlers

func (s *Server) handleListPowerUps(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	statuses, err := s.service.ListPowerUps(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"power_ups": statuses,
	})
}

func (s *Server) handleActivatePowerUp(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]
	powerUpID := vars["powerUpId"]

	result, err := s.service.ActivatePowerUp(r.Context(), sessionID, powerUpID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastProgress(sessionID, result.Progress)
		s.hub.BroadcastEvents(sessionID, result.Events)
	}

	if result.Activated {
		powerUpActivations.WithLabelValues(powerUpID).Inc()
		fmt.Printf("[POWERUP] session=%s id=%s activated power=%d\n",
			sessionID, powerUpID, result.Progress.GameState.TotalPowerGained)
	} else {
		fmt.Printf("[POWERUP] session=%s id=%s rejected reason=%q\n", sessionID, powerUpID, result.Reason)
	}

	respondJSON(w, http.StatusOK, result)
}

// Derived View Handlers

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	stats, err := s.service.GetStats(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGetHint(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	hint, err := s.service.GetHint(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, hint)
}

func (s *Server) handleGetAssistant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	message, err := s.service.GetAssistant(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": message,
	})
}

func (s *Server) handleGetAchievements(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	view, err := s.service.GetAchievements(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetDiscoveries(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	history, err := s.service.GetDiscoveries(r.Context(), sessionID, opts)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Catalog Handlers

func (s *Server) handleListCatalogs(w http.ResponseWriter, r *http.Request) {
	catalogs, err := s.service.ListCatalogs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, catalogs)
}

func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	catalogName := vars["name"]

	// Remove .json extension if present
	catalogName = strings.TrimSuffix(catalogName, ".json")

	catalog, err := s.service.GetCatalog(r.Context(), catalogName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, catalog)
}

func (s *Server) handleCreateCatalog(w http.ResponseWriter, r *http.Request) {
	var catalog engine.Catalog

	if err := json.NewDecoder(r.Body).Decode(&catalog); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if catalog.Name == "" {
		respondError(w, http.StatusBadRequest, "Catalog name is required")
		return
	}

	if err := s.service.SaveCatalog(r.Context(), catalog.Name, &catalog); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save catalog: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Catalog saved successfully",
		"catalog_id": catalog.Name,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	// Verify session exists
	_, err := s.service.GetSession(context.Background(), sessionID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
