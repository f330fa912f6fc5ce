package main

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/menucost/internal/costing"
	"github.com/Simplici0/menucost/internal/menu"
	"github.com/Simplici0/menucost/internal/sheet"
)

func (s *server) handleMenuStats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.countCosting("stats")
	writeJSON(w, http.StatusOK, menu.Build(snap, costing.ParseCostMode(r.URL.Query().Get("mode"))))
}

func (s *server) handleMenuProfitability(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.countCosting("profitability")
	writeJSON(w, http.StatusOK, menu.Profitability(snap))
}

func (s *server) handleMenuExport(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	report := menu.Build(snap, costing.ParseCostMode(r.URL.Query().Get("mode")))
	filename := fmt.Sprintf("menu_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := sheet.ExportMenu(w, report); err != nil {
		s.log.Error("export menu", zap.Error(err))
		return
	}
	s.countCosting("export")
}
