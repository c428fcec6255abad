package httpapi

import (
	"net/http"

	"backstage/internal/models"
)

func (s *Server) handleCreateMerchandise(w http.ResponseWriter, r *http.Request) {
	var input models.MerchandiseInput
	if !s.decodeJSON(w, r, &input) {
		return
	}
	item, err := s.merchandise.Create(r.Context(), input)
	s.reply(w, r, http.StatusCreated, "Merchandise created successfully", item, err)
}

func (s *Server) handleListMerchandise(w http.ResponseWriter, r *http.Request) {
	merchandise, err := s.merchandise.List(r.Context())
	s.reply(w, r, http.StatusOK, "Merchandise fetched successfully", merchandise, err)
}

func (s *Server) handleSearchMerchandise(w http.ResponseWriter, r *http.Request) {
	merchandise, err := s.merchandise.Search(r.Context(), searchQuery(r))
	s.reply(w, r, http.StatusOK, "Search results", merchandise, err)
}

func (s *Server) handleGetMerchandise(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	item, err := s.merchandise.Get(r.Context(), id)
	s.reply(w, r, http.StatusOK, "Merchandise retrieved successfully", item, err)
}

func (s *Server) handleUpdateMerchandise(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var patch models.MerchandisePatch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	item, err := s.merchandise.Update(r.Context(), id, patch)
	s.reply(w, r, http.StatusOK, "Merchandise updated successfully", item, err)
}

func (s *Server) handleDeleteMerchandise(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	err := s.merchandise.Delete(r.Context(), id)
	s.reply(w, r, http.StatusOK, "Merchandise deleted successfully", nil, err)
}
