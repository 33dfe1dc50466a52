package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/talkweave/forum-backend-go/internal/domain/notfpref"
	"github.com/talkweave/forum-backend-go/internal/handler/http/response"
)

type NotfPrefHandler interface {
	SetPreference(w http.ResponseWriter, r *http.Request)
	RemovePreference(w http.ResponseWriter, r *http.Request)
	ListPreferences(w http.ResponseWriter, r *http.Request)
	ResolveForPage(w http.ResponseWriter, r *http.Request)
	ResolveForPages(w http.ResponseWriter, r *http.Request)
	ResolveForSite(w http.ResponseWriter, r *http.Request)
	ListLevels(w http.ResponseWriter, r *http.Request)
}

type NotfPrefHandlerImpl struct {
	prefService notfpref.Service
	siteID      string
}

func NewNotfPrefHandler(prefService notfpref.Service, siteID string) NotfPrefHandler {
	return &NotfPrefHandlerImpl{
		prefService: prefService,
		siteID:      siteID,
	}
}

// SetPreference implements NotfPrefHandler.
func (h *NotfPrefHandlerImpl) SetPreference(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req notfpref.SetPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetPreference decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	pref, err := h.prefService.SetPreference(r.Context(), h.siteID, actor.MemberID, req)
	if err != nil {
		slog.Error("SetPreference service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification preference saved", pref)
}

// RemovePreference implements NotfPrefHandler.
func (h *NotfPrefHandlerImpl) RemovePreference(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req notfpref.RemovePreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RemovePreference decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	removed, err := h.prefService.RemovePreference(r.Context(), h.siteID, actor.MemberID, req)
	if err != nil {
		slog.Error("RemovePreference service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]bool{"removed": removed})
}

// ListPreferences implements NotfPrefHandler.
func (h *NotfPrefHandlerImpl) ListPreferences(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	prefs, err := h.prefService.ListPreferences(r.Context(), h.siteID, actor.MemberID)
	if err != nil {
		slog.Error("ListPreferences service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, prefs)
}

// ResolveForPage implements NotfPrefHandler.
func (h *NotfPrefHandlerImpl) ResolveForPage(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	pageID := chi.URLParam(r, "pageID")
	effective, err := h.prefService.ResolveForPage(r.Context(), h.siteID, actor.MemberID, pageID)
	if err != nil {
		slog.Error("ResolveForPage service error", "error", err, "page_id", pageID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, effective)
}

// ResolveForPages implements NotfPrefHandler. Page ids come comma-separated
// in the page_ids query parameter.
func (h *NotfPrefHandlerImpl) ResolveForPages(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	raw := r.URL.Query().Get("page_ids")
	if raw == "" {
		response.BadRequest(w, "page_ids query parameter is required", nil)
		return
	}
	pageIDs := splitIDs(raw)
	if len(pageIDs) == 0 {
		response.BadRequest(w, "page_ids query parameter is required", nil)
		return
	}

	results, err := h.prefService.ResolveForPages(r.Context(), h.siteID, actor.MemberID, pageIDs)
	if err != nil {
		slog.Error("ResolveForPages service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ResolveForSite implements NotfPrefHandler.
func (h *NotfPrefHandlerImpl) ResolveForSite(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	effective, err := h.prefService.ResolveForSite(r.Context(), h.siteID, actor.MemberID)
	if err != nil {
		slog.Error("ResolveForSite service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, effective)
}

// ListLevels implements NotfPrefHandler.
func (h *NotfPrefHandlerImpl) ListLevels(w http.ResponseWriter, r *http.Request) {
	response.Success(w, notfpref.AllLevelResponses())
}

// splitIDs splits a comma-separated id list, dropping empty and
// whitespace-padded segments.
func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
