package handler

import (
	"encoding/json"
	"net/http"
)

const (
	APIBasePath = "/api/v1"
	HealthPath  = "/healthz"
	DocsPath    = "/swagger/index.html"
)

// Banner is the root document: it tells a client where the API, its docs
// and the health probe live.
type Banner struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Path    string `json:"path"`
	API     string `json:"api"`
	Docs    string `json:"docs"`
	Health  string `json:"health"`
}

// Handler serves the Banner for GET and headers only for HEAD.
func Handler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	_ = json.NewEncoder(w).Encode(Banner{
		Status:  "ok",
		Message: "Guate Servicios API",
		Path:    r.URL.Path,
		API:     APIBasePath,
		Docs:    DocsPath,
		Health:  HealthPath,
	})
}
