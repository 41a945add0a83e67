package dashboard

import "net/http"

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("GET /api/animals", h.handleAnimals)
	mux.HandleFunc("GET /api/breeds", h.handleBreeds)
	mux.HandleFunc("GET /api/animals/location", h.handleLocation)
	mux.HandleFunc("POST /api/animals", h.requireAdmin(h.handleCreate))
	mux.HandleFunc("PATCH /api/animals", h.requireAdmin(h.handleUpdate))
	mux.HandleFunc("DELETE /api/animals", h.requireAdmin(h.handleDelete))
}

// NewHandler builds the dashboard HTTP handler.
func NewHandler(service Service, adminSecret []byte) http.Handler {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(service, adminSecret))
	return mux
}
