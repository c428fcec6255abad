package models

import "time"

// DefaultSongGenre is assigned when a song is created without a genre.
const DefaultSongGenre = "general"

// Song is a track that can appear on concert playlists.
type Song struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title" validate:"required"`
	ArtistID  *int64    `json:"artistId"`
	Duration  int       `json:"duration" validate:"gte=0"` // seconds
	Genre     string    `json:"genre"`
	PlayCount int       `json:"playCount" validate:"gte=0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SongInput is the payload accepted when creating a song.
type SongInput struct {
	Title    string `json:"title" validate:"required"`
	ArtistID *int64 `json:"artistId" validate:"omitempty,gt=0"`
	Duration int    `json:"duration" validate:"gte=0"`
	Genre    string `json:"genre"`
}

// Song converts the input into a new record with defaults applied.
func (in SongInput) Song() Song {
	s := Song{
		Title:    in.Title,
		ArtistID: in.ArtistID,
		Duration: in.Duration,
		Genre:    in.Genre,
	}
	if s.Genre == "" {
		s.Genre = DefaultSongGenre
	}
	return s
}

// SongPatch carries the fields of a partial song update. An explicit null
// artistId detaches the song from its artist.
type SongPatch struct {
	Title     *string    `json:"title" validate:"omitempty,min=1"`
	ArtistID  OptionalID `json:"artistId" validate:"omitempty,gt=0"`
	Duration  *int       `json:"duration" validate:"omitempty,gte=0"`
	Genre     *string    `json:"genre"`
	PlayCount *int       `json:"playCount" validate:"omitempty,gte=0"`
}

// Apply merges the provided fields into s.
func (s *Song) Apply(p SongPatch) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	p.ArtistID.applyTo(&s.ArtistID)
	if p.Duration != nil {
		s.Duration = *p.Duration
	}
	if p.Genre != nil {
		s.Genre = *p.Genre
	}
	if p.PlayCount != nil {
		s.PlayCount = *p.PlayCount
	}
}

// SongDetails is a song with its performer and the concerts that play it.
type SongDetails struct {
	Song
	Artist   *Artist   `json:"artist"`
	Concerts []Concert `json:"concerts"`
}
