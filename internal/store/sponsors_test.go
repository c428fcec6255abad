package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"backstage/internal/models"
)

func TestCreateSponsorDuplicateName(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(q(`INSERT INTO sponsors (name, category, website, logo)`)).
		WithArgs("Acme", "general", "", "").
		WillReturnError(uniqueViolation)

	_, err := s.CreateSponsor(context.Background(), models.Sponsor{Name: "Acme", Category: "general"})
	if !errors.Is(err, ErrSponsorExists) || !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrSponsorExists, got %v", err)
	}
	expectMet(t, mock)
}

func TestDeleteSponsorUnlinksConcerts(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(q(`DELETE FROM concert_sponsors`)).WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(q(`DELETE FROM sponsors WHERE id = $1`)).WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.DeleteSponsor(context.Background(), 4); err != nil {
		t.Fatalf("DeleteSponsor: %v", err)
	}
	expectMet(t, mock)
}

func TestCreateSongUnknownArtist(t *testing.T) {
	s, mock := newMockStore(t)
	artistID := int64(50)

	mock.ExpectQuery(q(`INSERT INTO songs`)).
		WillReturnError(foreignKeyViolation)

	_, err := s.CreateSong(context.Background(), models.Song{Title: "Maria También", ArtistID: &artistID, Genre: "general"})
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
	expectMet(t, mock)
}

func TestSearchVenuesEscapesPattern(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(q(`FROM venues v`)).
		WithArgs(`%50\% off%`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "city", "state", "postal_code", "created_at", "updated_at"}).
			AddRow(int64(1), "50% off Hall", int64(300), "Austin", "TX", "78701", now, now))

	got, err := s.SearchVenues(context.Background(), "50% off")
	if err != nil {
		t.Fatalf("SearchVenues: %v", err)
	}
	if len(got) != 1 || got[0].Address.City != "Austin" {
		t.Fatalf("unexpected venues: %+v", got)
	}
	expectMet(t, mock)
}
