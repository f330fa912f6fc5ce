package main

import (
	"net/http"

	"github.com/Simplici0/menucost/internal/catalog"
)

func (s *server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.GetSettings(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var body catalog.SettingsUpdate
	if !decodeJSON(w, r, &body) {
		return
	}

	st, err := s.store.UpdateSettings(r.Context(), userIDFrom(r.Context()), body)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
