package httpapi

import (
	"net/http"

	"backstage/internal/models"
)

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var input models.SongInput
	if !s.decodeJSON(w, r, &input) {
		return
	}
	song, err := s.songs.Create(r.Context(), input)
	s.reply(w, r, http.StatusCreated, "Song created successfully", song, err)
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.songs.List(r.Context())
	s.reply(w, r, http.StatusOK, "Songs fetched successfully", songs, err)
}

func (s *Server) handleSearchSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.songs.Search(r.Context(), searchQuery(r))
	s.reply(w, r, http.StatusOK, "Search results", songs, err)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	song, err := s.songs.Get(r.Context(), id)
	s.reply(w, r, http.StatusOK, "Song retrieved successfully", song, err)
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var patch models.SongPatch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	song, err := s.songs.Update(r.Context(), id, patch)
	s.reply(w, r, http.StatusOK, "Song updated successfully", song, err)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	err := s.songs.Delete(r.Context(), id)
	s.reply(w, r, http.StatusOK, "Song deleted successfully", nil, err)
}
