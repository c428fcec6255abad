package reports

import (
	"context"

	"backstage/internal/models"
)

// Report thresholds.
const (
	HighAttendanceThreshold = 1000
	BusyVenueMinConcerts    = 5
	RepeatArtistMinConcerts = 1
	CollaborationMinArtists = 2
	SponsorMinConcerts      = 3
	LoyalFanMinTickets      = 3
	MultiVenueMinVenues     = 1
)

// Store captures the aggregation queries behind the analytics endpoints.
type Store interface {
	HighAttendanceConcerts(ctx context.Context, threshold int) ([]models.AttendanceRow, error)
	TopArtistBySales(ctx context.Context) (*models.ArtistSales, error)
	BusyVenues(ctx context.Context, minConcerts int) ([]models.VenueActivity, error)
	SoldOutMerchandise(ctx context.Context) ([]models.SoldOutItem, error)
	ArtistsInManyConcerts(ctx context.Context, minConcerts int, performanceType string) ([]models.ArtistConcertCount, error)
	VenueTicketTotals(ctx context.Context) ([]models.VenueTicketAverages, error)
	CollaborationConcerts(ctx context.Context, minArtists int) ([]models.CollaborationConcert, error)
	SponsorCoverage(ctx context.Context, minConcerts int) ([]models.SponsorCoverage, error)
	LoyalFans(ctx context.Context, minTickets int) ([]models.LoyalFan, error)
	PopularSong(ctx context.Context) (*models.SongPopularity, error)
	MerchandiseRevenueByConcert(ctx context.Context) ([]models.MerchandiseRevenue, error)
	MultiVenueArtists(ctx context.Context, minVenues int) ([]models.ArtistVenueSpread, error)
}

// Service exposes the twelve fixed analytics reports.
type Service interface {
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

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) HighAttendance(ctx context.Context) ([]models.AttendanceRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.HighAttendanceConcerts(ctx, HighAttendanceThreshold)
}

func (s *service) TopBandSales(ctx context.Context) (*models.ArtistSales, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.TopArtistBySales(ctx)
}

func (s *service) TopVenues(ctx context.Context) ([]models.VenueActivity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.BusyVenues(ctx, BusyVenueMinConcerts)
}

func (s *service) SoldOutMerchandise(ctx context.Context) ([]models.SoldOutItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SoldOutMerchandise(ctx)
}

// MultipleConcertArtists lists artists booked on more than one concert. An
// empty performanceType disables the type filter.
func (s *service) MultipleConcertArtists(ctx context.Context, performanceType string) ([]models.ArtistConcertCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch models.PerformanceType(performanceType) {
	case "", models.PerformanceSolo, models.PerformanceBand, models.PerformanceGuest:
	default:
		return nil, models.NewValidationError("type", "must be one of [solo band guest]")
	}
	return s.store.ArtistsInManyConcerts(ctx, RepeatArtistMinConcerts, performanceType)
}

func (s *service) AverageTicketSalesPerVenue(ctx context.Context) ([]models.VenueTicketAverages, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.store.VenueTicketTotals(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].ComputeAverages()
	}
	return rows, nil
}

func (s *service) CollaborationConcerts(ctx context.Context) ([]models.CollaborationConcert, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CollaborationConcerts(ctx, CollaborationMinArtists)
}

func (s *service) SponsorCoverage(ctx context.Context) ([]models.SponsorCoverage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SponsorCoverage(ctx, SponsorMinConcerts)
}

func (s *service) LoyalFans(ctx context.Context) ([]models.LoyalFan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.LoyalFans(ctx, LoyalFanMinTickets)
}

func (s *service) PopularSong(ctx context.Context) (*models.SongPopularity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.PopularSong(ctx)
}

func (s *service) TopMerchandiseRevenue(ctx context.Context) ([]models.MerchandiseRevenue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.MerchandiseRevenueByConcert(ctx)
}

func (s *service) MultiVenueArtists(ctx context.Context) ([]models.ArtistVenueSpread, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.MultiVenueArtists(ctx, MultiVenueMinVenues)
}
