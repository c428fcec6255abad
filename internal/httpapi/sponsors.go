package httpapi

import (
	"net/http"

	"backstage/internal/models"
)

func (s *Server) handleCreateSponsor(w http.ResponseWriter, r *http.Request) {
	var input models.SponsorInput
	if !s.decodeJSON(w, r, &input) {
		return
	}
	sponsor, err := s.sponsors.Create(r.Context(), input)
	s.reply(w, r, http.StatusCreated, "Sponsor created successfully", sponsor, err)
}

func (s *Server) handleListSponsors(w http.ResponseWriter, r *http.Request) {
	sponsors, err := s.sponsors.List(r.Context())
	s.reply(w, r, http.StatusOK, "Sponsors fetched successfully", sponsors, err)
}

func (s *Server) handleSearchSponsors(w http.ResponseWriter, r *http.Request) {
	sponsors, err := s.sponsors.Search(r.Context(), searchQuery(r))
	s.reply(w, r, http.StatusOK, "Search results", sponsors, err)
}

func (s *Server) handleGetSponsor(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	sponsor, err := s.sponsors.Get(r.Context(), id)
	s.reply(w, r, http.StatusOK, "Sponsor retrieved successfully", sponsor, err)
}

func (s *Server) handleUpdateSponsor(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var patch models.SponsorPatch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	sponsor, err := s.sponsors.Update(r.Context(), id, patch)
	s.reply(w, r, http.StatusOK, "Sponsor updated successfully", sponsor, err)
}

func (s *Server) handleDeleteSponsor(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	err := s.sponsors.Delete(r.Context(), id)
	s.reply(w, r, http.StatusOK, "Sponsor deleted successfully", nil, err)
}
