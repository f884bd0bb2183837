package converters

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/juanbolano/mini-trello/internal/models"
)

// ============================================================================
// TEST CASES - ParseCreated
// ============================================================================

func TestParseCreated(t *testing.T) {
	t.Parallel()

	want := time.Date(2023, 10, 1, 12, 34, 56, 123456000, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "python datetime string", input: "2023-10-01 12:34:56.123456", want: want},
		{name: "rfc3339", input: "2023-10-01T12:34:56.123456Z", want: want},
		{name: "no fraction", input: "2023-10-01 12:34:56", want: want.Truncate(time.Second)},
		{name: "empty", input: "", want: time.Time{}},
		{name: "garbage", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCreated(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseCreated(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatCreated_ParsesBack(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 2, 29, 8, 0, 1, 500000000, time.UTC)
	got, err := ParseCreated(FormatCreated(created))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(created) {
		t.Errorf("expected %v, got %v", created, got)
	}
}

// ============================================================================
// TEST CASES - payload decoding
// ============================================================================

func TestDecodeCards_MapsColumnField(t *testing.T) {
	t.Parallel()

	raw := json.RawMessage(`[{"id":"c1","title":"Write","content":"x","column":"doing","created":"2023-10-01 12:34:56.123456"}]`)
	cards, err := DecodeCards(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	if cards[0].ColumnID != "doing" {
		t.Errorf("expected ColumnID doing, got %s", cards[0].ColumnID)
	}
}

func TestDecodeColumns_MapsBoardField(t *testing.T) {
	t.Parallel()

	raw := json.RawMessage(`[{"id":"col","title":"Backlog","board":"b1","order":3}]`)
	columns, err := DecodeColumns(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.Column{ID: "col", Title: "Backlog", BoardID: "b1", Order: 3}
	if columns[0] != want {
		t.Errorf("expected %+v, got %+v", want, columns[0])
	}
}

func TestDecodeCardPayload_Empty(t *testing.T) {
	t.Parallel()

	_, err := DecodeCardPayload(json.RawMessage(`{"card":null}`))
	if !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestDecodeOK(t *testing.T) {
	t.Parallel()

	if err := DecodeOK(json.RawMessage(`{"ok":true}`)); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := DecodeOK(json.RawMessage(`{"ok":false}`)); err == nil {
		t.Error("expected error for ok=false")
	}
}
