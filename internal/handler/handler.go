package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mkotov/card-wallet/internal/barcode"
	"github.com/mkotov/card-wallet/internal/models"
	"github.com/mkotov/card-wallet/internal/store"
	"github.com/sirupsen/logrus"
)

// Handler is the REST facade consumed by the presentation layer. It maps
// store outcomes onto HTTP statuses and leaves all user-facing messaging
// to the caller.
type Handler struct {
	store    *store.Store
	renderer barcode.Renderer
	log      *logrus.Logger
}

func NewHandler(s *store.Store, r barcode.Renderer, log *logrus.Logger) *Handler {
	return &Handler{store: s, renderer: r, log: log}
}

// Register mounts all routes on the router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/formats", h.ListFormats).Methods("GET")
	r.HandleFunc("/cards", h.ListCards).Methods("GET")
	r.HandleFunc("/cards", h.CreateCard).Methods("POST")
	r.HandleFunc("/cards", h.WipeCards).Methods("DELETE")
	r.HandleFunc("/cards/{id}", h.GetCard).Methods("GET")
	r.HandleFunc("/cards/{id}", h.UpdateCard).Methods("PATCH")
	r.HandleFunc("/cards/{id}", h.DeleteCard).Methods("DELETE")
	r.HandleFunc("/cards/{id}/favorite", h.ToggleFavorite).Methods("POST")
	r.HandleFunc("/cards/{id}/used", h.MarkUsed).Methods("POST")
	r.HandleFunc("/cards/{id}/barcode", h.RenderBarcode).Methods("GET")
	r.HandleFunc("/export", h.Export).Methods("GET")
	r.HandleFunc("/import", h.Import).Methods("POST")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

// writeError translates store errors into HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "card not found", http.StatusNotFound)
	case errors.Is(err, store.ErrMissingFields), errors.Is(err, store.ErrInvalidFormat):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.Errorf("Request failed: %v", err)
		http.Error(w, "persistence failed", http.StatusInternalServerError)
	}
}

// Health reports service liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListFormats returns the selectable barcode formats in display order
func (h *Handler) ListFormats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, barcode.All())
}

// ListCards returns the sorted card collection
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.List())
}

// CreateCard adds a card from user input or a scanner result
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var in models.CreateCardInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	card, err := h.store.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, card)
}

// GetCard returns a single card by id
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.store.Get(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, card)
}

// UpdateCard merges a partial patch into a card
func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var patch models.CardPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	card, err := h.store.Update(mux.Vars(r)["id"], patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, card)
}

// DeleteCard removes a card permanently
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	removed, err := h.store.Delete(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !removed {
		http.Error(w, "card not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite flips the favorite flag and returns the new state
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	favorite, err := h.store.ToggleFavorite(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": favorite})
}

// MarkUsed stamps the card's last-used timestamp (called on detail-view)
func (h *Handler) MarkUsed(w http.ResponseWriter, r *http.Request) {
	if err := h.store.MarkUsed(mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenderBarcode hands the card's value and format to the renderer
// collaborator and streams back whatever it produces.
func (h *Handler) RenderBarcode(w http.ResponseWriter, r *http.Request) {
	card, err := h.store.Get(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	data, contentType, err := h.renderer.Render(card.CardNumber, card.BarcodeFormat)
	if err != nil {
		h.log.Errorf("Failed to render barcode for %s: %v", card.ID, err)
		http.Error(w, "failed to render barcode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// WipeCards removes every card unconditionally
func (h *Handler) WipeCards(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Wipe(); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export serializes the collection; ?format=xml selects the XML document
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var (
		data []byte
		err  error
	)
	if r.URL.Query().Get("format") == "xml" {
		data, err = h.store.ExportXML()
		w.Header().Set("Content-Type", "application/xml")
		w.Header().Set("Content-Disposition", `attachment; filename="cards.xml"`)
	} else {
		data, err = h.store.ExportJSON()
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="cards.json"`)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Write(data)
}

// Import re-creates cards from an export document; the response carries
// the number of records actually imported.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	var count int
	if r.URL.Query().Get("format") == "xml" {
		count, err = h.store.ImportXML(r.Context(), body)
	} else {
		count, err = h.store.ImportJSON(r.Context(), body)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"imported": count})
}
