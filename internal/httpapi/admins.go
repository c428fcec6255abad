package httpapi

import (
	"net/http"

	"backstage/internal/models"
)

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !s.decodeJSON(w, r, &creds) {
		return
	}
	session, err := s.admins.Login(r.Context(), creds)
	s.reply(w, r, http.StatusOK, "Login successful", session, err)
}

func (s *Server) handleAdminRegister(w http.ResponseWriter, r *http.Request) {
	var input models.AdminRegistration
	if !s.decodeJSON(w, r, &input) {
		return
	}
	admin, err := s.admins.Register(r.Context(), input)
	s.reply(w, r, http.StatusCreated, "Admin registered successfully", admin, err)
}
