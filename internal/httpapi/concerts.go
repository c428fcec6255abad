package httpapi

import (
	"net/http"

	"backstage/internal/models"
)

func (s *Server) handleCreateConcert(w http.ResponseWriter, r *http.Request) {
	var input models.ConcertInput
	if !s.decodeJSON(w, r, &input) {
		return
	}
	concert, err := s.concerts.Create(r.Context(), input)
	s.reply(w, r, http.StatusCreated, "Concert created successfully", concert, err)
}

func (s *Server) handleListConcerts(w http.ResponseWriter, r *http.Request) {
	concerts, err := s.concerts.List(r.Context())
	s.reply(w, r, http.StatusOK, "Concerts fetched successfully", concerts, err)
}

func (s *Server) handleSearchConcerts(w http.ResponseWriter, r *http.Request) {
	concerts, err := s.concerts.Search(r.Context(), searchQuery(r))
	s.reply(w, r, http.StatusOK, "Search results", concerts, err)
}

func (s *Server) handleGetConcert(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	concert, err := s.concerts.Get(r.Context(), id)
	s.reply(w, r, http.StatusOK, "Concert retrieved successfully", concert, err)
}

func (s *Server) handleUpdateConcert(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var patch models.ConcertPatch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	concert, err := s.concerts.Update(r.Context(), id, patch)
	s.reply(w, r, http.StatusOK, "Concert updated successfully", concert, err)
}

func (s *Server) handleDeleteConcert(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	err := s.concerts.Delete(r.Context(), id)
	s.reply(w, r, http.StatusOK, "Concert deleted successfully", nil, err)
}

func (s *Server) handleConcertCollaborations(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	collaborations, err := s.concerts.Collaborations(r.Context(), id)
	s.reply(w, r, http.StatusOK, "Collaborations fetched successfully", collaborations, err)
}

func (s *Server) handleAddConcertArtist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConcertID int64 `json:"concertId"`
		ArtistID  int64 `json:"artistId"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	concert, err := s.concerts.AddArtist(r.Context(), req.ConcertID, req.ArtistID)
	s.reply(w, r, http.StatusOK, "Artist added to concert", concert, err)
}

func (s *Server) handleAddConcertSponsor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConcertID int64 `json:"concertId"`
		SponsorID int64 `json:"sponsorId"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	concert, err := s.concerts.AddSponsor(r.Context(), req.ConcertID, req.SponsorID)
	s.reply(w, r, http.StatusOK, "Sponsor added to concert", concert, err)
}

func (s *Server) handleAddConcertSong(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConcertID int64 `json:"concertId"`
		SongID    int64 `json:"songId"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	concert, err := s.concerts.AddSong(r.Context(), req.ConcertID, req.SongID)
	s.reply(w, r, http.StatusOK, "Song added to concert playlist", concert, err)
}

func (s *Server) handleAttendeesMoreThan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Threshold int `json:"threshold"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	rows, err := s.concerts.AttendeesMoreThan(r.Context(), req.Threshold)
	s.reply(w, r, http.StatusOK, "Concerts fetched successfully", rows, err)
}
