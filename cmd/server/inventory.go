package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/menucost/internal/catalog"
	"github.com/Simplici0/menucost/internal/sheet"
)

const maxUploadBytes = 10 << 20

func (s *server) handleInventoryList(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListInventory(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleInventoryCreate(w http.ResponseWriter, r *http.Request) {
	var body catalog.InventoryInput
	if !decodeJSON(w, r, &body) {
		return
	}

	item, err := s.store.CreateInventoryItem(r.Context(), userIDFrom(r.Context()), body)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *server) handleInventoryUpdate(w http.ResponseWriter, r *http.Request) {
	var body catalog.InventoryInput
	if !decodeJSON(w, r, &body) {
		return
	}

	item, err := s.store.UpdateInventoryItem(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"), body)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *server) handleInventoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteInventoryItem(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleInventoryImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file es requerido")
		return
	}
	defer file.Close()

	userID := userIDFrom(r.Context())
	format := sheet.FormatFor(header.Filename, header.Header.Get("Content-Type"))
	res, err := sheet.Import(r.Context(), s.store, userID, format, file)
	switch {
	case errors.Is(err, sheet.ErrMissingColumns):
		writeError(w, http.StatusBadRequest, "el archivo debe incluir las columnas name, unit y price_per_unit")
		return
	case errors.Is(err, sheet.ErrInvalidWorkbook):
		writeError(w, http.StatusBadRequest, "el archivo no es un .xlsx o .csv válido")
		return
	}
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.log.Info("inventory imported",
		zap.String("user_id", userID),
		zap.Int("imported", res.Imported),
		zap.Int("rejected", len(res.Errors)),
	)
	writeJSON(w, http.StatusOK, res)
}
