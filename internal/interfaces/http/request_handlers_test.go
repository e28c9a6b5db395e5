package http

import (
	"encoding/json"
	"testing"
)

func TestFlexNumber_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantInt int
		wantErr bool
	}{
		{"bare number", `{"n": 5}`, 5, false},
		{"quoted number", `{"n": "5"}`, 5, false},
		{"quoted with spaces", `{"n": " 12 "}`, 12, false},
		{"non-numeric string", `{"n": "five"}`, 0, true},
		{"empty string", `{"n": ""}`, 0, true},
		{"boolean", `{"n": true}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				N flexNumber `json:"n"`
			}
			if err := json.Unmarshal([]byte(tt.input), &payload); err != nil {
				t.Fatalf("Unmarshal() failed: %v", err)
			}

			got, err := payload.N.Int()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Int() = %d, want parse error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Int() failed: %v", err)
			}
			if got != tt.wantInt {
				t.Errorf("Int() = %d, want %d", got, tt.wantInt)
			}
		})
	}
}

func TestFlexNumber_Decimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare decimal", `{"n": 19.99}`, "19.99"},
		{"quoted decimal", `{"n": "19.99"}`, "19.99"},
		{"integer as decimal", `{"n": "100"}`, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				N flexNumber `json:"n"`
			}
			if err := json.Unmarshal([]byte(tt.input), &payload); err != nil {
				t.Fatalf("Unmarshal() failed: %v", err)
			}

			d, err := payload.N.Decimal()
			if err != nil {
				t.Fatalf("Decimal() failed: %v", err)
			}
			if d.String() != tt.want {
				t.Errorf("Decimal() = %s, want %s", d, tt.want)
			}
		})
	}
}
