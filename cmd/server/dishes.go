package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/menucost/internal/catalog"
	"github.com/Simplici0/menucost/internal/costing"
)

type previewResponse struct {
	costing.DishBreakdown
	TaxPercent float64  `json:"tax_percentage"`
	Warnings   []string `json:"warnings"`
}

func (s *server) handleDishesList(w http.ResponseWriter, r *http.Request) {
	dishes, err := s.store.ListDishes(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (s *server) handleDishGet(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.GetDish(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *server) handleDishesCreate(w http.ResponseWriter, r *http.Request) {
	s.saveDish(w, r, "", http.StatusCreated)
}

func (s *server) handleDishesUpdate(w http.ResponseWriter, r *http.Request) {
	s.saveDish(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (s *server) saveDish(w http.ResponseWriter, r *http.Request, id string, status int) {
	var body catalog.DishInput
	if !decodeJSON(w, r, &body) {
		return
	}

	d, err := s.store.SaveDish(r.Context(), userIDFrom(r.Context()), id, body)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, status, d)
}

func (s *server) handleDishesDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteDish(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDishPreview costs an unsaved builder payload. Nothing is stored.
func (s *server) handleDishPreview(w http.ResponseWriter, r *http.Request) {
	var body catalog.DishInput
	if !decodeJSON(w, r, &body) {
		return
	}

	tax, err := s.taxFor(r.Context(), userIDFrom(r.Context()), body.TaxPercent)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	d, warnings := previewDish(body)
	s.countCosting("preview")
	writeJSON(w, http.StatusOK, previewResponse{
		DishBreakdown: costing.Breakdown(d, tax, costing.ModeUnitAware),
		TaxPercent:    tax,
		Warnings:      warnings,
	})
}

func previewDish(in catalog.DishInput) (costing.Dish, []string) {
	warnings := []string{}
	d := costing.Dish{Name: in.Name, Price: in.Price, WastagePercent: in.WastagePercentage, CategoryID: in.CategoryID}
	for _, ing := range in.Ingredients {
		purchase, ok := costing.ParseUnit(ing.PurchaseUnit)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: unidad de compra %q desconocida", ing.Name, ing.PurchaseUnit))
		}
		dishUnit := purchase
		if ing.DishUnit != "" {
			if u, ok := costing.ParseUnit(ing.DishUnit); ok {
				dishUnit = u
			} else {
				warnings = append(warnings, fmt.Sprintf("%s: unidad %q desconocida", ing.Name, ing.DishUnit))
			}
		}
		if ok && !costing.Compatible(dishUnit, purchase) {
			warnings = append(warnings, fmt.Sprintf("%s: %s no se puede convertir a %s, se usa 1:1", ing.Name, dishUnit, purchase))
		}
		d.Lines = append(d.Lines, costing.IngredientLine{
			Name:                 ing.Name,
			PurchaseUnit:         purchase,
			PricePerPurchaseUnit: ing.PricePerUnit,
			DishUnit:             dishUnit,
			QuantityInDish:       ing.Quantity,
			IngredientWastage:    ing.WastePercentage,
		})
	}
	return d, warnings
}

func (s *server) handleDishBreakdown(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	d, err := s.store.GetDish(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	tax, err := s.taxFor(r.Context(), userID, nil)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	mode := costing.ParseCostMode(r.URL.Query().Get("mode"))
	s.countCosting("breakdown")
	writeJSON(w, http.StatusOK, costing.Breakdown(d.ToCosting(mode), tax, mode))
}

// taxFor returns override when set, else the account tax.
func (s *server) taxFor(ctx context.Context, userID string, override *float64) (float64, error) {
	if override != nil {
		return *override, nil
	}
	st, err := s.store.EffectiveSettings(ctx, userID)
	if err != nil {
		return 0, err
	}
	return st.TaxPercentage, nil
}
