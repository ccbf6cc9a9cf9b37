// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package validation

import (
	"strings"
	"testing"
)

type testQuery struct {
	Title     string  `query:"title" validate:"notblank,max=20"`
	K         int     `query:"k" validate:"min=1,max=10"`
	MinRating float64 `json:"min_rating" validate:"gte=0,lte=10"`
	Format    string  `koanf:"format" validate:"omitempty,oneof=csv tsv parquet"`
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     testQuery
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"valid", testQuery{Title: "Heat", K: 5, MinRating: 7}, "", "", ""},
		{"blank title", testQuery{Title: "   ", K: 5}, "title", "notblank", "title must not be blank"},
		{"long title", testQuery{Title: strings.Repeat("a", 21), K: 5}, "title", "max", "title must be at most 20 characters"},
		{"k too small", testQuery{Title: "Heat", K: 0}, "k", "min", "k must be at least 1"},
		{"k too large", testQuery{Title: "Heat", K: 11}, "k", "max", "k must be at most 10"},
		{"rating too high", testQuery{Title: "Heat", K: 1, MinRating: 10.5}, "min_rating", "lte", "min_rating must be less than or equal to 10"},
		{"bad format", testQuery{Title: "Heat", K: 1, Format: "xlsx"}, "format", "oneof", "format must be one of: csv tsv parquet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() error = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("len(Errors()) = %d, want 1", len(errs))
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("field/tag = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
			if verr.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", verr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&testQuery{Title: "Heat", K: 0}).ToAPIError()
	if single.Code != CodeValidationError {
		t.Errorf("Code = %s, want %s", single.Code, CodeValidationError)
	}
	if single.Details["field"] != "k" {
		t.Errorf("Details[field] = %v, want k", single.Details["field"])
	}

	multi := ValidateStruct(&testQuery{Title: "", K: 0, MinRating: -1}).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 3 {
		t.Fatalf("Details[fields] = %v, want 3 entries", multi.Details["fields"])
	}
	if !strings.Contains(multi.Message, "; ") {
		t.Errorf("Message = %q, want joined messages", multi.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty Message = %q", empty.Message)
	}
}
