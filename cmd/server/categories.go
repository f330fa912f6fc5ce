package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/menucost/internal/catalog"
	"github.com/Simplici0/menucost/internal/costing"
)

type categoryView struct {
	catalog.Category
	Target *costing.Target `json:"target"`
}

func newCategoryView(c catalog.Category) categoryView {
	return categoryView{Category: c, Target: c.Target()}
}

func (s *server) handleCategoriesList(w http.ResponseWriter, r *http.Request) {
	cats, err := s.store.ListCategories(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	views := make([]categoryView, 0, len(cats))
	for _, c := range cats {
		views = append(views, newCategoryView(c))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *server) handleCategoriesCreate(w http.ResponseWriter, r *http.Request) {
	var body catalog.CategoryInput
	if !decodeJSON(w, r, &body) {
		return
	}

	c, err := s.store.CreateCategory(r.Context(), userIDFrom(r.Context()), body)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newCategoryView(c))
}

func (s *server) handleCategoriesUpdate(w http.ResponseWriter, r *http.Request) {
	var body catalog.CategoryInput
	if !decodeJSON(w, r, &body) {
		return
	}

	c, err := s.store.UpdateCategory(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"), body)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCategoryView(c))
}

func (s *server) handleCategoriesDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCategory(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleCategoriesVisibility(hidden bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.SetCategoryHidden(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"), hidden); err != nil {
			s.writeStoreError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
