// Package handlers implements the HTTP endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/domaincomb/domaincomb/internal/config"
	"github.com/domaincomb/domaincomb/internal/core"
	"github.com/domaincomb/domaincomb/internal/core/checker"
	"github.com/domaincomb/domaincomb/internal/core/engine"
)

// BatchRequest is the JSON body for POST /v0/batch.
type BatchRequest struct {
	Prefixes []string `json:"prefixes"`
	Suffixes []string `json:"suffixes"`
	TLD      string   `json:"tld,omitempty"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BatchHandler runs combination checks for HTTP clients, reusing the exact
// engine the CLI drives.
type BatchHandler struct {
	Cfg *config.Config
}

// Handle decodes a batch request, runs the batch, and responds with the
// run report.
func (h *BatchHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prefixes := normalizeFragments(req.Prefixes)
	suffixes := normalizeFragments(req.Suffixes)
	if len(prefixes) == 0 {
		respondError(w, http.StatusBadRequest, "at least one prefix is required")
		return
	}
	if len(suffixes) == 0 {
		respondError(w, http.StatusBadRequest, "at least one suffix is required")
		return
	}

	tld := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(req.TLD)), ".")
	if tld == "" {
		tld = "com"
	}

	orchestrator := &engine.Orchestrator{
		Checker: h.buildChecker(tld),
		Pacer:   &engine.Pacer{Interval: h.Cfg.Batch.Delay},
		Workers: h.Cfg.Batch.Workers,
	}

	records, err := orchestrator.Run(r.Context(), prefixes, suffixes, tld)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, core.NewReport(tld, records))
}

func (h *BatchHandler) buildChecker(tld string) *checker.RDAPChecker {
	return &checker.RDAPChecker{
		BaseURL:    h.Cfg.Registry.EndpointFor(tld),
		UserAgent:  h.Cfg.Registry.UserAgent,
		Timeout:    h.Cfg.Registry.Timeout,
		MaxRetries: h.Cfg.Registry.MaxRetries,
		Backoff:    h.Cfg.Registry.Backoff,
	}
}

// normalizeFragments mirrors the CLI list loading: lowercase, trim, drop
// blanks, de-dupe preserving order.
func normalizeFragments(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	items := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		items = append(items, value)
	}
	return items
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
