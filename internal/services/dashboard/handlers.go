package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/graziososalvare/rescuehub/internal/animal"
	"github.com/graziososalvare/rescuehub/internal/platform/authtoken"
	"github.com/graziososalvare/rescuehub/internal/services/dashboard/templates"
	"github.com/graziososalvare/rescuehub/internal/services/registry/storage"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Fallback map center when a record carries no coordinates: the Austin area
// the AAC dataset covers.
const (
	defaultMapLat  = 30.75
	defaultMapLong = -97.48
)

// Service is the registry surface the dashboard consumes.
type Service interface {
	ProfileFrame(ctx context.Context, profile animal.Profile) ([]animal.Record, error)
	Create(ctx context.Context, record animal.Record) error
	UpdateMany(ctx context.Context, query storage.Query, set map[string]any) (int64, error)
	DeleteMany(ctx context.Context, query storage.Query) (int64, error)
}

type handlers struct {
	service     Service
	adminSecret []byte
}

func newHandlers(service Service, adminSecret []byte) handlers {
	return handlers{service: service, adminSecret: adminSecret}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := templates.Dashboard(templates.DashboardView{
		Profiles: templates.DefaultProfiles(),
	})
	templ.Handler(page).ServeHTTP(w, r)
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type animalsResponse struct {
	Profile  string          `json:"profile"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Total    int             `json:"total"`
	Rows     []animal.Record `json:"rows"`
}

func (h handlers) handleAnimals(w http.ResponseWriter, r *http.Request) {
	profile, err := animal.ParseProfile(r.URL.Query().Get("profile"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	page, pageSize, err := parsePaging(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	frame, err := h.service.ProfileFrame(r.Context(), profile)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	// Comparing against len(frame)/pageSize keeps the bound check free of
	// integer overflow for arbitrarily large page numbers.
	start := len(frame)
	if page-1 <= len(frame)/pageSize {
		start = (page - 1) * pageSize
		if start > len(frame) {
			start = len(frame)
		}
	}
	end := start + pageSize
	if end > len(frame) {
		end = len(frame)
	}
	rows := frame[start:end]
	if rows == nil {
		rows = []animal.Record{}
	}

	writeJSON(w, http.StatusOK, animalsResponse{
		Profile:  string(profile),
		Page:     page,
		PageSize: pageSize,
		Total:    len(frame),
		Rows:     rows,
	})
}

type breedsResponse struct {
	Profile string              `json:"profile"`
	Breeds  []animal.BreedCount `json:"breeds"`
}

func (h handlers) handleBreeds(w http.ResponseWriter, r *http.Request) {
	profile, err := animal.ParseProfile(r.URL.Query().Get("profile"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	frame, err := h.service.ProfileFrame(r.Context(), profile)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	writeJSON(w, http.StatusOK, breedsResponse{
		Profile: string(profile),
		Breeds:  animal.BreedDistribution(frame),
	})
}

type locationResponse struct {
	Lat   float64 `json:"lat"`
	Long  float64 `json:"long"`
	Breed string  `json:"breed"`
	Name  string  `json:"name"`
}

func (h handlers) handleLocation(w http.ResponseWriter, r *http.Request) {
	profile, err := animal.ParseProfile(r.URL.Query().Get("profile"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	row := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("row")); raw != "" {
		row, err = strconv.Atoi(raw)
		if err != nil || row < 0 {
			writeError(w, http.StatusBadRequest, errors.New("row must be a non-negative integer"))
			return
		}
	}

	frame, err := h.service.ProfileFrame(r.Context(), profile)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	writeJSON(w, http.StatusOK, markerForRow(frame, row))
}

// markerForRow picks the map marker for a selected table row. Out-of-range
// selections fall back to the first row; missing data falls back to the
// Austin default center, matching the original dashboard's defensive
// extraction.
func markerForRow(frame []animal.Record, row int) locationResponse {
	marker := locationResponse{
		Lat:   defaultMapLat,
		Long:  defaultMapLong,
		Breed: "Unknown",
		Name:  "Unknown",
	}
	if len(frame) == 0 {
		return marker
	}
	if row >= len(frame) {
		row = 0
	}
	record := frame[row]
	if record.LocationLat != 0 {
		marker.Lat = record.LocationLat
	}
	if record.LocationLong != 0 {
		marker.Long = record.LocationLong
	}
	if record.Breed != "" {
		marker.Breed = record.Breed
	}
	if record.Name != "" {
		marker.Name = record.Name
	}
	return marker
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	var record animal.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}
	if err := h.service.Create(r.Context(), record); err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"created": true})
}

type rangePayload struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

type queryPayload struct {
	Eq    map[string]string       `json:"eq"`
	In    map[string][]string     `json:"in"`
	Range map[string]rangePayload `json:"range"`
}

func (p queryPayload) toQuery() storage.Query {
	query := storage.Query{Eq: p.Eq, In: p.In}
	if len(p.Range) > 0 {
		query.Range = make(map[string]storage.Range, len(p.Range))
		for field, bounds := range p.Range {
			query.Range[field] = storage.Range{Min: bounds.Min, Max: bounds.Max}
		}
	}
	return query
}

type updateRequest struct {
	Query queryPayload   `json:"query"`
	Set   map[string]any `json:"set"`
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}
	modified, err := h.service.UpdateMany(r.Context(), req.Query.toQuery(), req.Set)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"modified": modified})
}

type deleteRequest struct {
	Query queryPayload `json:"query"`
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}
	deleted, err := h.service.DeleteMany(r.Context(), req.Query.toQuery())
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// requireAdmin guards mutating routes with a bearer token. When no secret is
// configured the admin API is disabled entirely.
func (h handlers) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(h.adminSecret) == 0 {
			writeError(w, http.StatusServiceUnavailable, errors.New("admin API is not configured"))
			return
		}
		raw := strings.TrimSpace(r.Header.Get("Authorization"))
		token, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(w, http.StatusUnauthorized, errors.New("bearer token required"))
			return
		}
		if _, err := authtoken.Verify(h.adminSecret, strings.TrimSpace(token)); err != nil {
			writeError(w, http.StatusUnauthorized, errors.New("invalid bearer token"))
			return
		}
		next(w, r)
	}
}

func parsePaging(r *http.Request) (page, pageSize int, err error) {
	page = 1
	pageSize = defaultPageSize
	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, errors.New("page must be a positive integer")
		}
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("page_size")); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil || pageSize < 1 {
			return 0, 0, errors.New("page_size must be a positive integer")
		}
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize, nil
}
