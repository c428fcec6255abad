package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"backstage/internal/models"
)

func TestCreateAdmin(t *testing.T) {
	tests := []struct {
		name    string
		admin   models.Admin
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name:  "created",
			admin: models.Admin{Username: " stagehand ", PasswordHash: []byte("hash")},
			setup: func(mock sqlmock.Sqlmock) {
				now := time.Now()
				mock.ExpectQuery(q(`INSERT INTO admins`)).
					WithArgs("stagehand", []byte("hash"), "").
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))
			},
		},
		{
			name:  "duplicate username",
			admin: models.Admin{Username: "stagehand", PasswordHash: []byte("hash")},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(q(`INSERT INTO admins`)).WillReturnError(uniqueViolation)
			},
			wantErr: ErrAdminExists,
		},
		{
			name:  "missing hash",
			admin: models.Admin{Username: "stagehand"},
			setup: func(sqlmock.Sqlmock) {},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			tc.setup(mock)

			got, err := s.CreateAdmin(context.Background(), tc.admin)
			switch {
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
			case len(tc.admin.PasswordHash) == 0:
				if err == nil {
					t.Fatalf("expected error for missing hash")
				}
			default:
				if err != nil {
					t.Fatalf("CreateAdmin: %v", err)
				}
				if got.ID != 1 || got.Username != "stagehand" {
					t.Fatalf("unexpected admin: %+v", got)
				}
			}
			expectMet(t, mock)
		})
	}
}

func TestAdminByUsernameNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(q(`FROM admins`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "phone", "created_at", "updated_at"}))

	if _, err := s.AdminByUsername(context.Background(), "ghost"); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
	expectMet(t, mock)
}
