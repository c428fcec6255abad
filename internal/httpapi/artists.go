package httpapi

import (
	"net/http"

	"backstage/internal/models"
)

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	var input models.ArtistInput
	if !s.decodeJSON(w, r, &input) {
		return
	}
	artist, err := s.artists.Create(r.Context(), input)
	s.reply(w, r, http.StatusCreated, "Artist created successfully", artist, err)
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.artists.List(r.Context())
	s.reply(w, r, http.StatusOK, "Artists fetched successfully", artists, err)
}

func (s *Server) handleSearchArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.artists.Search(r.Context(), searchQuery(r))
	s.reply(w, r, http.StatusOK, "Search results", artists, err)
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	artist, err := s.artists.Get(r.Context(), id)
	s.reply(w, r, http.StatusOK, "Artist retrieved successfully", artist, err)
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var patch models.ArtistPatch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	artist, err := s.artists.Update(r.Context(), id, patch)
	s.reply(w, r, http.StatusOK, "Artist updated successfully", artist, err)
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	err := s.artists.Delete(r.Context(), id)
	s.reply(w, r, http.StatusOK, "Artist deleted successfully", nil, err)
}
