package services

import (
	"courier-route-service/internal/domain"
	"testing"
)

func TestValidateRowAccepts(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   domain.DeliveryStop
	}{
		{
			name:   "plain row",
			fields: []string{"Kaffebrenneriet", "59.9170", "10.7600", "High", "2.5"},
			want: domain.DeliveryStop{
				Customer: "Kaffebrenneriet",
				Coord:    domain.Coordinates{Lat: 59.9170, Lon: 10.7600},
				Priority: domain.PriorityHigh,
				WeightKg: 2.5,
			},
		},
		{
			name:   "padded fields and punctuated name",
			fields: []string{"  O'Learys, Byporten  ", " 59.911 ", " 10.753 ", " Medium ", " 0 "},
			want: domain.DeliveryStop{
				Customer: "O'Learys, Byporten",
				Coord:    domain.Coordinates{Lat: 59.911, Lon: 10.753},
				Priority: domain.PriorityMedium,
				WeightKg: 0,
			},
		},
		{
			name:   "boundary coordinates",
			fields: []string{"Edge Case AS", "-90", "180", "Low", "12"},
			want: domain.DeliveryStop{
				Customer: "Edge Case AS",
				Coord:    domain.Coordinates{Lat: -90, Lon: 180},
				Priority: domain.PriorityLow,
				WeightKg: 12,
			},
		},
		{
			name:   "accented letters",
			fields: []string{"Café Østbanen", "59.9107", "10.7525", "Low", "1.2"},
			want: domain.DeliveryStop{
				Customer: "Café Østbanen",
				Coord:    domain.Coordinates{Lat: 59.9107, Lon: 10.7525},
				Priority: domain.PriorityLow,
				WeightKg: 1.2,
			},
		},
		{
			name:   "extra trailing columns ignored",
			fields: []string{"Trailing Co", "59.9", "10.7", "High", "3", "note", "extra"},
			want: domain.DeliveryStop{
				Customer: "Trailing Co",
				Coord:    domain.Coordinates{Lat: 59.9, Lon: 10.7},
				Priority: domain.PriorityHigh,
				WeightKg: 3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rej := ValidateRow(tt.fields, 2)
			if rej != nil {
				t.Fatalf("unexpected reject: %s (%s)", rej.Reason, rej.Detail)
			}
			if got != tt.want {
				t.Fatalf("stop = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidateRowRejects(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		reason domain.ErrorKind
	}{
		{"empty customer", []string{"", "59.9", "10.7", "High", "1"}, domain.InvalidCustomerName},
		{"whitespace customer", []string{"   ", "59.9", "10.7", "High", "1"}, domain.InvalidCustomerName},
		{"forbidden characters", []string{"Bob <script>", "59.9", "10.7", "High", "1"}, domain.InvalidCustomerName},
		{"latitude not a number", []string{"Alice", "north", "10.7", "High", "1"}, domain.InvalidLatitude},
		{"latitude out of range", []string{"Alice", "95.0", "10.7", "High", "1"}, domain.InvalidLatitude},
		{"latitude NaN", []string{"Alice", "NaN", "10.7", "High", "1"}, domain.InvalidLatitude},
		{"longitude not a number", []string{"Alice", "59.9", "east", "High", "1"}, domain.InvalidLongitude},
		{"longitude out of range", []string{"Alice", "59.9", "-180.5", "High", "1"}, domain.InvalidLongitude},
		{"lowercase priority", []string{"Alice", "59.9", "10.7", "high", "1"}, domain.InvalidPriority},
		{"unknown priority", []string{"Alice", "59.9", "10.7", "Urgent", "1"}, domain.InvalidPriority},
		{"weight not a number", []string{"Alice", "59.9", "10.7", "High", "heavy"}, domain.InvalidWeight},
		{"negative weight", []string{"Alice", "59.9", "10.7", "High", "-0.5"}, domain.InvalidWeight},
		{"infinite weight", []string{"Alice", "59.9", "10.7", "High", "Inf"}, domain.InvalidWeight},
		{"short row", []string{"Alice", "59.9"}, domain.InvalidLongitude},
		{"empty row", []string{}, domain.InvalidCustomerName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rej := ValidateRow(tt.fields, 7)
			if rej == nil {
				t.Fatal("expected a reject, got none")
			}
			if rej.Reason != tt.reason {
				t.Fatalf("reason = %s, want %s (detail: %s)", rej.Reason, tt.reason, rej.Detail)
			}
			if rej.RowIndex != 7 {
				t.Fatalf("row index = %d, want 7", rej.RowIndex)
			}
		})
	}
}

func TestValidateRowFirstFailureWins(t *testing.T) {
	// Bad latitude and bad weight on the same row; the rule order reports
	// the latitude.
	_, rej := ValidateRow([]string{"Alice", "oops", "10.7", "High", "-3"}, 2)
	if rej == nil {
		t.Fatal("expected a reject, got none")
	}
	if rej.Reason != domain.InvalidLatitude {
		t.Fatalf("reason = %s, want %s", rej.Reason, domain.InvalidLatitude)
	}
}

func TestValidateRowsPartitionsAndPreservesOrder(t *testing.T) {
	rows := [][]string{
		{"Alpha", "59.91", "10.75", "High", "1"},
		{"", "59.92", "10.76", "Low", "1"},
		{"Gamma", "59.93", "10.77", "Medium", "2"},
		{"Delta", "999", "10.78", "Low", "3"},
		{"Epsilon", "59.95", "10.79", "Low", "4"},
	}

	stops, rejects := ValidateRows(rows)

	if len(stops)+len(rejects) != len(rows) {
		t.Fatalf("conservation broken: %d stops + %d rejects != %d rows", len(stops), len(rejects), len(rows))
	}

	wantStops := []string{"Alpha", "Gamma", "Epsilon"}
	for i, name := range wantStops {
		if stops[i].Customer != name {
			t.Fatalf("stop %d = %q, want %q", i, stops[i].Customer, name)
		}
	}

	// Header is row 1, so data rows start at 2.
	if rejects[0].RowIndex != 3 {
		t.Fatalf("first reject row index = %d, want 3", rejects[0].RowIndex)
	}
	if rejects[0].Reason != domain.InvalidCustomerName {
		t.Fatalf("first reject reason = %s, want %s", rejects[0].Reason, domain.InvalidCustomerName)
	}
	if rejects[1].RowIndex != 5 {
		t.Fatalf("second reject row index = %d, want 5", rejects[1].RowIndex)
	}
	if rejects[1].Reason != domain.InvalidLatitude {
		t.Fatalf("second reject reason = %s, want %s", rejects[1].Reason, domain.InvalidLatitude)
	}
}

func TestValidateRowsEmptyInput(t *testing.T) {
	stops, rejects := ValidateRows(nil)
	if len(stops) != 0 || len(rejects) != 0 {
		t.Fatalf("empty input: got %d stops, %d rejects", len(stops), len(rejects))
	}
}

func TestValidateRowsDeterministic(t *testing.T) {
	rows := [][]string{
		{"Alpha", "59.91", "10.75", "High", "1"},
		{"Beta", "bad", "10.76", "Low", "1"},
	}

	s1, r1 := ValidateRows(rows)
	s2, r2 := ValidateRows(rows)

	if len(s1) != len(s2) || len(r1) != len(r2) {
		t.Fatalf("runs disagree: %d/%d stops, %d/%d rejects", len(s1), len(s2), len(r1), len(r2))
	}
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Fatalf("stop %d differs between runs", i)
		}
	}
	for i := range r1 {
		if r1[i].Reason != r2[i].Reason || r1[i].RowIndex != r2[i].RowIndex {
			t.Fatalf("reject %d differs between runs", i)
		}
	}
}
