// Package api provides HTTP API capabilities for the kashf extractor.
// This is a capability module that can be enabled via the CLI or used programmatically.
package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/nbakri/kashf/extractor"
	"github.com/nbakri/kashf/extractor/common"
	"github.com/nbakri/kashf/extractor/facts"
	"github.com/nbakri/kashf/extractor/pipeline"
)

// Config holds the API server configuration
type Config struct {
	Port      string
	LogPrefix string
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port:      ":8080",
		LogPrefix: "API: ",
	}
}

// Server represents the HTTP API server
type Server struct {
	config  Config
	mux     *http.ServeMux
	service *extractor.Service
	facts   *facts.Extractor
}

// New creates a new API server with the given configuration
func New(cfg Config) *Server {
	s := &Server{
		config:  cfg,
		mux:     http.NewServeMux(),
		service: extractor.NewService(),
		facts:   facts.New(),
	}
	s.registerRoutes()
	return s
}

// registerRoutes sets up the API endpoints
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/extract", s.handleExtract)
	s.mux.HandleFunc("/facts", s.handleFacts)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the http.Handler for the server
// This allows the server to be used with custom http.Server configurations
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	log.Printf("%sStarting server on %s", s.config.LogPrefix, s.config.Port)
	return http.ListenAndServe(s.config.Port, s.mux)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleExtract handles statement extraction requests
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	log.Printf("%s[%s] Received request from %s", s.config.LogPrefix, requestID, r.RemoteAddr)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse multipart form with 32MB max memory
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Printf("%s[%s] Error parsing multipart form: %v", s.config.LogPrefix, requestID, err)
		http.Error(w, "Could not parse multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		log.Printf("%s[%s] Error getting file from form: %v", s.config.LogPrefix, requestID, err)
		http.Error(w, "Could not get uploaded file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	if handler.Header.Get("Content-Type") != "" && handler.Header.Get("Content-Type") != "application/pdf" {
		http.Error(w, "File must be a PDF", http.StatusBadRequest)
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		log.Printf("%s[%s] Error reading file bytes: %v", s.config.LogPrefix, requestID, err)
		http.Error(w, "Could not read file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	doc := common.RawDocument{Bytes: fileBytes, MediaType: "application/pdf"}
	out := s.service.ExtractDocument(r.Context(), doc, s.parseProfile(r))
	out.Source = handler.Filename

	if out.Extraction.Kind == pipeline.Failed {
		log.Printf("%s[%s] Extraction failed: %s", s.config.LogPrefix, requestID, out.Extraction.Reason)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(out)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// handleFacts extracts financial facts from raw statement text
func (s *Server) handleFacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		http.Error(w, "Request body must contain statement text", http.StatusBadRequest)
		return
	}

	extracted := s.facts.FromText(common.CleanText(string(body)))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(extracted)
}

// parseProfile extracts the customer profile fields from the request
func (s *Server) parseProfile(r *http.Request) common.CustomerProfile {
	profile := common.CustomerProfile{
		NameParts:   strings.Fields(coalesce(r.FormValue("name"), r.URL.Query().Get("name"))),
		PhoneNumber: coalesce(r.FormValue("phone"), r.URL.Query().Get("phone")),
		DateOfBirth: coalesce(r.FormValue("date_of_birth"), r.URL.Query().Get("date_of_birth")),
	}
	if cards := coalesce(r.FormValue("cards"), r.URL.Query().Get("cards")); cards != "" {
		for _, card := range strings.Split(cards, ",") {
			if card = strings.TrimSpace(card); card != "" {
				profile.CardLastFours = append(profile.CardLastFours, card)
			}
		}
	}
	return profile
}

// coalesce returns the first non-empty string
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
