package httpapi

import (
	"net/http"

	"backstage/internal/models"
)

func (s *Server) handleRegisterAttendee(w http.ResponseWriter, r *http.Request) {
	var input models.RegistrationInput
	if !s.decodeJSON(w, r, &input) {
		return
	}
	ticket, err := s.attendees.Register(r.Context(), input)
	s.reply(w, r, http.StatusCreated, "Attendee registered successfully", ticket, err)
}

func (s *Server) handleListAttendees(w http.ResponseWriter, r *http.Request) {
	attendees, err := s.attendees.ListAll(r.Context())
	s.reply(w, r, http.StatusOK, "All attendees retrieved successfully", attendees, err)
}

func (s *Server) handleListConcertAttendees(w http.ResponseWriter, r *http.Request) {
	concertID, ok := s.pathID(w, r, "concertId")
	if !ok {
		return
	}
	attendees, err := s.attendees.ListByConcert(r.Context(), concertID)
	s.reply(w, r, http.StatusOK, "Attendees retrieved successfully", attendees, err)
}
