package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"backstage/internal/models"
)

var artistRowColumns = []string{"id", "name", "performance_type", "genres", "bio", "created_at", "updated_at"}

func TestCreateArtist(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(q(`INSERT INTO artists (name, performance_type, genres, bio)`)).
		WithArgs("Khruangbin", "band", `["psych","funk"]`, "Houston trio").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	got, err := s.CreateArtist(context.Background(), models.Artist{
		Name:   "Khruangbin",
		Type:   models.PerformanceBand,
		Genres: []string{"psych", "funk"},
		Bio:    "Houston trio",
	})
	if err != nil {
		t.Fatalf("CreateArtist: %v", err)
	}
	if got.ID != 7 || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected artist: %+v", got)
	}
	expectMet(t, mock)
}

func TestGetArtistDecodesGenres(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(q(`FROM artists a`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(artistRowColumns).
			AddRow(int64(3), "Nils Frahm", "solo", []byte(`["modern classical"]`), "", now, now))

	got, err := s.GetArtist(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetArtist: %v", err)
	}
	if got.Type != models.PerformanceSolo || len(got.Genres) != 1 || got.Genres[0] != "modern classical" {
		t.Fatalf("unexpected artist: %+v", got)
	}
	expectMet(t, mock)
}

func TestGetArtistNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(q(`FROM artists a`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(artistRowColumns))

	_, err := s.GetArtist(context.Background(), 404)
	if !errors.Is(err, ErrArtistNotFound) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}
	expectMet(t, mock)
}

func TestUpdateArtistNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(q(`UPDATE artists`)).
		WithArgs("Ghost", "guest", `[]`, "", int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	_, err := s.UpdateArtist(context.Background(), models.Artist{ID: 9, Name: "Ghost", Type: models.PerformanceGuest})
	if !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}
	expectMet(t, mock)
}

func TestDeleteArtistCascades(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(q(`DELETE FROM concert_artists`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(q(`UPDATE songs`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(`DELETE FROM artists WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.DeleteArtist(context.Background(), 5); err != nil {
		t.Fatalf("DeleteArtist: %v", err)
	}
	expectMet(t, mock)
}

func TestDeleteArtistMissingRollsBack(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(q(`DELETE FROM concert_artists`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q(`UPDATE songs`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q(`DELETE FROM artists WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := s.DeleteArtist(context.Background(), 5); !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}
	expectMet(t, mock)
}

func TestSearchArtists(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(q(`WHERE a.name ILIKE $1 OR a.genres::text ILIKE $1 OR a.bio ILIKE $1`)).
		WithArgs("%jazz%").
		WillReturnRows(sqlmock.NewRows(artistRowColumns).
			AddRow(int64(1), "Kamasi Washington", "band", []byte(`["jazz"]`), "", now, now).
			AddRow(int64(2), "Thundercat", "solo", []byte(`["funk","jazz"]`), "", now, now))

	got, err := s.SearchArtists(context.Background(), "jazz")
	if err != nil {
		t.Fatalf("SearchArtists: %v", err)
	}
	if len(got) != 2 || got[1].Name != "Thundercat" {
		t.Fatalf("unexpected results: %+v", got)
	}
	expectMet(t, mock)
}
