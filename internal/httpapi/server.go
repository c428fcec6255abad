package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"backstage/internal/auth"
	"backstage/internal/http/middleware"
	"backstage/internal/logging"
	"backstage/internal/models"
)

// ArtistService describes the artist catalogue workflows.
type ArtistService interface {
	Create(ctx context.Context, input models.ArtistInput) (models.Artist, error)
	List(ctx context.Context) ([]models.Artist, error)
	Get(ctx context.Context, id int64) (models.ArtistDetails, error)
	Update(ctx context.Context, id int64, patch models.ArtistPatch) (models.Artist, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Artist, error)
}

// VenueService describes the venue catalogue workflows.
type VenueService interface {
	Create(ctx context.Context, input models.VenueInput) (models.Venue, error)
	List(ctx context.Context) ([]models.Venue, error)
	Get(ctx context.Context, id int64) (models.VenueDetails, error)
	Update(ctx context.Context, id int64, patch models.VenuePatch) (models.Venue, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Venue, error)
}

// SponsorService describes the sponsor catalogue workflows.
type SponsorService interface {
	Create(ctx context.Context, input models.SponsorInput) (models.Sponsor, error)
	List(ctx context.Context) ([]models.Sponsor, error)
	Get(ctx context.Context, id int64) (models.SponsorDetails, error)
	Update(ctx context.Context, id int64, patch models.SponsorPatch) (models.Sponsor, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Sponsor, error)
}

// SongService coordinates song-level operations.
type SongService interface {
	Create(ctx context.Context, input models.SongInput) (models.Song, error)
	List(ctx context.Context) ([]models.Song, error)
	Get(ctx context.Context, id int64) (models.SongDetails, error)
	Update(ctx context.Context, id int64, patch models.SongPatch) (models.Song, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Song, error)
}

// ConcertService covers concert CRUD and line-up management.
type ConcertService interface {
	Create(ctx context.Context, input models.ConcertInput) (models.Concert, error)
	List(ctx context.Context) ([]models.ConcertDetails, error)
	Get(ctx context.Context, id int64) (models.ConcertDetails, error)
	Update(ctx context.Context, id int64, patch models.ConcertPatch) (models.Concert, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Concert, error)

	AddArtist(ctx context.Context, concertID, artistID int64) (models.Concert, error)
	AddSponsor(ctx context.Context, concertID, sponsorID int64) (models.Concert, error)
	AddSong(ctx context.Context, concertID, songID int64) (models.Concert, error)
	Collaborations(ctx context.Context, concertID int64) (models.ConcertCollaborations, error)
	AttendeesMoreThan(ctx context.Context, threshold int) ([]models.AttendanceRow, error)
}

// MerchandiseService describes merchandise workflows.
type MerchandiseService interface {
	Create(ctx context.Context, input models.MerchandiseInput) (models.Merchandise, error)
	List(ctx context.Context) ([]models.Merchandise, error)
	Get(ctx context.Context, id int64) (models.MerchandiseDetails, error)
	Update(ctx context.Context, id int64, patch models.MerchandisePatch) (models.Merchandise, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Merchandise, error)
}

// AttendeeService handles ticket registration.
type AttendeeService interface {
	Register(ctx context.Context, input models.RegistrationInput) (models.Ticket, error)
	ListAll(ctx context.Context) ([]models.TicketDetails, error)
	ListByConcert(ctx context.Context, concertID int64) ([]models.TicketDetails, error)
}

// AdminService handles admin accounts and session tokens.
type AdminService interface {
	Register(ctx context.Context, input models.AdminRegistration) (models.Admin, error)
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)
	VerifyToken(token string) (*auth.Claims, error)
}

// ReportService exposes the analytics queries.
type ReportService interface {
	HighAttendance(ctx context.Context) ([]models.AttendanceRow, error)
	TopBandSales(ctx context.Context) (*models.ArtistSales, error)
	TopVenues(ctx context.Context) ([]models.VenueActivity, error)
	SoldOutMerchandise(ctx context.Context) ([]models.SoldOutItem, error)
	MultipleConcertArtists(ctx context.Context, performanceType string) ([]models.ArtistConcertCount, error)
	AverageTicketSalesPerVenue(ctx context.Context) ([]models.VenueTicketAverages, error)
	CollaborationConcerts(ctx context.Context) ([]models.CollaborationConcert, error)
	SponsorCoverage(ctx context.Context) ([]models.SponsorCoverage, error)
	LoyalFans(ctx context.Context) ([]models.LoyalFan, error)
	PopularSong(ctx context.Context) (*models.SongPopularity, error)
	TopMerchandiseRevenue(ctx context.Context) ([]models.MerchandiseRevenue, error)
	MultiVenueArtists(ctx context.Context) ([]models.ArtistVenueSpread, error)
}

// HealthChecker reports database reachability.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Services bundles the workflows the HTTP layer depends on.
type Services struct {
	Artists     ArtistService
	Venues      VenueService
	Sponsors    SponsorService
	Songs       SongService
	Concerts    ConcertService
	Merchandise MerchandiseService
	Attendees   AttendeeService
	Admins      AdminService
	Reports     ReportService
	Health      HealthChecker
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the logger used for unexpected failures.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics instruments every matched route.
func WithMetrics(metrics *middleware.Metrics) Option {
	return func(s *Server) { s.metrics = metrics }
}

// Server wires HTTP handlers to the application services.
type Server struct {
	artists     ArtistService
	venues      VenueService
	sponsors    SponsorService
	songs       SongService
	concerts    ConcertService
	merchandise MerchandiseService
	attendees   AttendeeService
	admins      AdminService
	reports     ReportService
	health      HealthChecker

	logger  *logging.Logger
	metrics *middleware.Metrics
}

// New constructs a Server.
func New(services Services, opts ...Option) *Server {
	s := &Server{
		artists:     services.Artists,
		venues:      services.Venues,
		sponsors:    services.Sponsors,
		songs:       services.Songs,
		concerts:    services.Concerts,
		merchandise: services.Merchandise,
		attendees:   services.Attendees,
		admins:      services.Admins,
		reports:     services.Reports,
		health:      services.Health,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the /api router.
func (s *Server) Routes() *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "route not found", nil)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})
	if s.metrics != nil {
		router.Use(s.metrics.Instrument)
	}

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api.HandleFunc("/admin/login", s.handleAdminLogin).Methods(http.MethodPost)
	api.HandleFunc("/admin/register", s.handleAdminRegister).Methods(http.MethodPost)

	s.catalogueRoutes(api, "/artists", catalogueHandlers{
		create: s.handleCreateArtist,
		list:   s.handleListArtists,
		search: s.handleSearchArtists,
		get:    s.handleGetArtist,
		update: s.handleUpdateArtist,
		delete: s.handleDeleteArtist,
	})
	s.catalogueRoutes(api, "/venues", catalogueHandlers{
		create: s.handleCreateVenue,
		list:   s.handleListVenues,
		search: s.handleSearchVenues,
		get:    s.handleGetVenue,
		update: s.handleUpdateVenue,
		delete: s.handleDeleteVenue,
	})
	s.catalogueRoutes(api, "/sponsors", catalogueHandlers{
		create: s.handleCreateSponsor,
		list:   s.handleListSponsors,
		search: s.handleSearchSponsors,
		get:    s.handleGetSponsor,
		update: s.handleUpdateSponsor,
		delete: s.handleDeleteSponsor,
	})
	s.catalogueRoutes(api, "/songs", catalogueHandlers{
		create: s.handleCreateSong,
		list:   s.handleListSongs,
		search: s.handleSearchSongs,
		get:    s.handleGetSong,
		update: s.handleUpdateSong,
		delete: s.handleDeleteSong,
	})
	s.catalogueRoutes(api, "/merchandise", catalogueHandlers{
		create: s.handleCreateMerchandise,
		list:   s.handleListMerchandise,
		search: s.handleSearchMerchandise,
		get:    s.handleGetMerchandise,
		update: s.handleUpdateMerchandise,
		delete: s.handleDeleteMerchandise,
	})

	// Static concert paths must be registered before /concerts/{id}.
	api.Handle("/concerts/add-artist", s.requireAdmin(s.handleAddConcertArtist)).Methods(http.MethodPost)
	api.Handle("/concerts/add-sponsor", s.requireAdmin(s.handleAddConcertSponsor)).Methods(http.MethodPost)
	api.Handle("/concerts/add-song", s.requireAdmin(s.handleAddConcertSong)).Methods(http.MethodPost)
	api.HandleFunc("/concerts/attendees-more-than", s.handleAttendeesMoreThan).Methods(http.MethodPost)
	api.HandleFunc("/concerts/{id}/collaborations", s.handleConcertCollaborations).Methods(http.MethodGet)
	s.catalogueRoutes(api, "/concerts", catalogueHandlers{
		create: s.handleCreateConcert,
		list:   s.handleListConcerts,
		search: s.handleSearchConcerts,
		get:    s.handleGetConcert,
		update: s.handleUpdateConcert,
		delete: s.handleDeleteConcert,
	})

	api.HandleFunc("/attendees/register", s.handleRegisterAttendee).Methods(http.MethodPost)
	api.HandleFunc("/attendees", s.handleListAttendees).Methods(http.MethodGet)
	api.HandleFunc("/attendees/concert/{concertId}", s.handleListConcertAttendees).Methods(http.MethodGet)

	// Reports stay on api itself: a nested subrouter would swallow the
	// method-mismatch state of the routes above and turn 405s into 404s.
	api.HandleFunc("/analytics/q1/high-attendance", s.handleHighAttendance).Methods(http.MethodGet)
	api.HandleFunc("/analytics/q2/top-band-sales", s.handleTopBandSales).Methods(http.MethodGet)
	api.HandleFunc("/analytics/q3/top-venues", s.handleTopVenues).Methods(http.MethodGet)
	api.HandleFunc("/analytics/q4/sold-out-merchandise", s.handleSoldOutMerchandise).Methods(http.MethodGet)
	api.HandleFunc("/analytics/q5/multiple-concert-artists", s.handleMultipleConcertArtists).Methods(http.MethodGet)
	api.HandleFunc("/analytics/q6/avg-ticket-sales-per-venue", s.handleAverageTicketSales).Methods(http.MethodGet)
	api.HandleFunc("/analytics/q7/collaboration-concerts", s.handleCollaborationConcerts).Methods(http.MethodGet)
	api.HandleFunc("/analytics/q8/sponsor-coverage", s.handleSponsorCoverage).Methods(http.MethodGet)
	api.HandleFunc("/analytics/q9/loyal-fans", s.handleLoyalFans).Methods(http.MethodGet)
	api.HandleFunc("/analytics/q10/popular-song", s.handlePopularSong).Methods(http.MethodGet)
	api.HandleFunc("/analytics/q11/top-merchandise-revenue", s.handleTopMerchandiseRevenue).Methods(http.MethodGet)
	api.HandleFunc("/analytics/q12/multi-venue-artists", s.handleMultiVenueArtists).Methods(http.MethodGet)

	return router
}

type catalogueHandlers struct {
	create, list, search, get, update, delete http.HandlerFunc
}

// catalogueRoutes registers the CRUD surface shared by every catalogue
// resource. Writes require an admin token.
func (s *Server) catalogueRoutes(api *mux.Router, prefix string, h catalogueHandlers) {
	api.Handle(prefix, s.requireAdmin(h.create)).Methods(http.MethodPost)
	api.Handle(prefix+"/create", s.requireAdmin(h.create)).Methods(http.MethodPost)
	api.HandleFunc(prefix, h.list).Methods(http.MethodGet)
	api.HandleFunc(prefix+"/search", h.search).Methods(http.MethodGet)
	api.HandleFunc(prefix+"/{id}", h.get).Methods(http.MethodGet)
	api.Handle(prefix+"/{id}", s.requireAdmin(h.update)).Methods(http.MethodPut)
	api.Handle(prefix+"/{id}", s.requireAdmin(h.delete)).Methods(http.MethodDelete)
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.Handler {
	return middleware.RequireAdmin(s.admins, s.writeError)(next)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "up"}
	if s.health == nil || s.health.Ping(r.Context()) != nil {
		status["status"] = "degraded"
		status["database"] = "down"
	}
	respond(w, http.StatusOK, "Service is running", status)
}
