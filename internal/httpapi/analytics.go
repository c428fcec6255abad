package httpapi

import "net/http"

func (s *Server) handleHighAttendance(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.HighAttendance(r.Context())
	s.reply(w, r, http.StatusOK, "Concerts with high attendance", rows, err)
}

// handleTopBandSales answers with data null when no artist has sold a ticket.
func (s *Server) handleTopBandSales(w http.ResponseWriter, r *http.Request) {
	top, err := s.reports.TopBandSales(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if top == nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "No ticket sales recorded", "data": nil})
		return
	}
	respond(w, http.StatusOK, "Band with the highest ticket sales", top)
}

func (s *Server) handleTopVenues(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.TopVenues(r.Context())
	s.reply(w, r, http.StatusOK, "Venues hosting the most concerts", rows, err)
}

func (s *Server) handleSoldOutMerchandise(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.SoldOutMerchandise(r.Context())
	s.reply(w, r, http.StatusOK, "Sold out merchandise", rows, err)
}

func (s *Server) handleMultipleConcertArtists(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.MultipleConcertArtists(r.Context(), r.URL.Query().Get("type"))
	s.reply(w, r, http.StatusOK, "Artists performing in multiple concerts", rows, err)
}

func (s *Server) handleAverageTicketSales(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.AverageTicketSalesPerVenue(r.Context())
	s.reply(w, r, http.StatusOK, "Average ticket sales per venue", rows, err)
}

func (s *Server) handleCollaborationConcerts(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.CollaborationConcerts(r.Context())
	s.reply(w, r, http.StatusOK, "Concerts with artist collaborations", rows, err)
}

func (s *Server) handleSponsorCoverage(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.SponsorCoverage(r.Context())
	s.reply(w, r, http.StatusOK, "Sponsors supporting multiple concerts", rows, err)
}

func (s *Server) handleLoyalFans(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.LoyalFans(r.Context())
	s.reply(w, r, http.StatusOK, "Attendees with repeat tickets", rows, err)
}

func (s *Server) handlePopularSong(w http.ResponseWriter, r *http.Request) {
	song, err := s.reports.PopularSong(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if song == nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "No songs on any playlist", "data": nil})
		return
	}
	respond(w, http.StatusOK, "Most performed song", song)
}

func (s *Server) handleTopMerchandiseRevenue(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.TopMerchandiseRevenue(r.Context())
	s.reply(w, r, http.StatusOK, "Merchandise revenue per concert", rows, err)
}

func (s *Server) handleMultiVenueArtists(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.MultiVenueArtists(r.Context())
	s.reply(w, r, http.StatusOK, "Artists performing at multiple venues", rows, err)
}
