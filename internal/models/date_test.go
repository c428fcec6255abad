package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	var c struct {
		When Date `json:"when"`
	}
	if err := json.Unmarshal([]byte(`{"when":"2025-06-01"}`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := c.When.String(); got != "2025-06-01" {
		t.Fatalf("unexpected date %q", got)
	}

	if err := json.Unmarshal([]byte(`{"when":"2025-06-01T21:00:00Z"}`), &c); err != nil {
		t.Fatalf("unmarshal timestamp: %v", err)
	}
	if got := c.When.String(); got != "2025-06-01" {
		t.Fatalf("timestamp not truncated: %q", got)
	}

	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"when":"2025-06-01"}` {
		t.Fatalf("unexpected json %s", out)
	}

	if err := json.Unmarshal([]byte(`{"when":"01/06/2025"}`), &c); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2024-12-31" {
		t.Fatalf("unexpected date %q", d.String())
	}

	if err := d.Scan([]byte("2023-01-02")); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if d.String() != "2023-01-02" {
		t.Fatalf("unexpected date %q", d.String())
	}

	if err := d.Scan(42); err == nil {
		t.Fatalf("expected error for int source")
	}
}

func TestTimestampAcceptsDayOrInstant(t *testing.T) {
	tests := []struct {
		name string
		body string
		want time.Time
	}{
		{name: "day", body: `"2025-06-01"`, want: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", body: `"2025-06-01T21:30:00Z"`, want: time.Date(2025, time.June, 1, 21, 30, 0, 0, time.UTC)},
		{name: "offset", body: `"2025-06-01T21:30:00+02:00"`, want: time.Date(2025, time.June, 1, 19, 30, 0, 0, time.UTC)},
		{name: "null", body: `null`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tc.body), &ts); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !ts.Equal(tc.want) {
				t.Fatalf("got %v, want %v", ts.Time, tc.want)
			}
		})
	}

	var ts Timestamp
	if err := json.Unmarshal([]byte(`"06/01/2025"`), &ts); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}

func TestRegistrationKeepsSuppliedDay(t *testing.T) {
	var in RegistrationInput
	if err := json.Unmarshal([]byte(`{"ticketDate":"2025-06-01"}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	now := time.Date(2025, time.July, 4, 12, 0, 0, 0, time.UTC)
	got := in.Ticket(now).TicketDate
	if !got.Equal(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected ticket date %v", got)
	}

	if got := (RegistrationInput{}).Ticket(now).TicketDate; !got.Equal(now) {
		t.Fatalf("expected now when no date is supplied, got %v", got)
	}
}
