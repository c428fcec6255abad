package httpapi

import (
	"net/http"

	"backstage/internal/models"
)

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	var input models.VenueInput
	if !s.decodeJSON(w, r, &input) {
		return
	}
	venue, err := s.venues.Create(r.Context(), input)
	s.reply(w, r, http.StatusCreated, "Venue created successfully", venue, err)
}

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := s.venues.List(r.Context())
	s.reply(w, r, http.StatusOK, "Venues fetched successfully", venues, err)
}

func (s *Server) handleSearchVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := s.venues.Search(r.Context(), searchQuery(r))
	s.reply(w, r, http.StatusOK, "Search results", venues, err)
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	venue, err := s.venues.Get(r.Context(), id)
	s.reply(w, r, http.StatusOK, "Venue retrieved successfully", venue, err)
}

func (s *Server) handleUpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var patch models.VenuePatch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	venue, err := s.venues.Update(r.Context(), id, patch)
	s.reply(w, r, http.StatusOK, "Venue updated successfully", venue, err)
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	err := s.venues.Delete(r.Context(), id)
	s.reply(w, r, http.StatusOK, "Venue deleted successfully", nil, err)
}
