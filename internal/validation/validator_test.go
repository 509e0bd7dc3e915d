// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package validation

import (
	"strings"
	"testing"
)

type testRequest struct {
	ArticleID string   `json:"articleId" validate:"omitempty,max=8"`
	Liked     []string `json:"likedArticleIds" validate:"max=3,dive,notblank"`
	Query     string   `json:"query" validate:"notblank,max=20"`
	TopK      int      `json:"topK" validate:"omitempty,min=1"`
	Sentiment string   `json:"sentiment" validate:"omitempty,sentiment"`
	Internal  string   `json:"-" validate:"omitempty,max=2"`
}

func validRequest() testRequest {
	return testRequest{ArticleID: "a1", Liked: []string{"b"}, Query: "rates", TopK: 5, Sentiment: "positive"}
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *testRequest)
	}{
		{"all fields", func(r *testRequest) {}},
		{"zero topK uses default", func(r *testRequest) { r.TopK = 0 }},
		{"empty sentiment", func(r *testRequest) { r.Sentiment = "" }},
		{"uppercase sentiment", func(r *testRequest) { r.Sentiment = "Negative" }},
		{"any sentiment", func(r *testRequest) { r.Sentiment = "any" }},
		{"no liked ids", func(r *testRequest) { r.Liked = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			if err := ValidateStruct(&req); err != nil {
				t.Errorf("ValidateStruct() error = %v, want nil", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *testRequest)
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"blank query", func(r *testRequest) { r.Query = "   " }, "query", "notblank", "query must not be blank"},
		{"query too long", func(r *testRequest) { r.Query = strings.Repeat("q", 21) }, "query", "max", "query must be at most 20 characters"},
		{"negative topK", func(r *testRequest) { r.TopK = -1 }, "topK", "min", "topK must be at least 1"},
		{"bad sentiment", func(r *testRequest) { r.Sentiment = "angry" }, "sentiment", "sentiment", "sentiment must be one of: positive, neutral, negative, any"},
		{"too many likes", func(r *testRequest) { r.Liked = []string{"a", "b", "c", "d"} }, "likedArticleIds", "max", "likedArticleIds must be at most 3 items"},
		{"blank liked id", func(r *testRequest) { r.Liked = []string{"a", " "} }, "likedArticleIds[1]", "notblank", "likedArticleIds[1] must not be blank"},
		{"long article id", func(r *testRequest) { r.ArticleID = "123456789" }, "articleId", "max", "articleId must be at most 8 characters"},
		{"json dash uses struct name", func(r *testRequest) { r.Internal = "xyz" }, "Internal", "max", "Internal must be at most 2 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := ValidateStruct(&req)
			if err == nil {
				t.Fatal("ValidateStruct() error = nil, want error")
			}

			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	req := validRequest()
	req.Query = ""

	apiErr := ValidateStruct(&req).ToAPIError()

	if apiErr.Code != ErrorCode {
		t.Errorf("Code = %q, want %q", apiErr.Code, ErrorCode)
	}
	if apiErr.Message != "query must not be blank" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "query must not be blank")
	}
	if apiErr.Details["field"] != "query" {
		t.Errorf("Details[field] = %v, want query", apiErr.Details["field"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	req := validRequest()
	req.Query = ""
	req.TopK = -3

	apiErr := ValidateStruct(&req).ToAPIError()

	if !strings.Contains(apiErr.Message, "query must not be blank") || !strings.Contains(apiErr.Message, "topK must be at least 1") {
		t.Errorf("Message = %q, want both field messages", apiErr.Message)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
	}
}

func TestToAPIError_Empty(t *testing.T) {
	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Code != ErrorCode || apiErr.Message != "Validation failed" {
		t.Errorf("ToAPIError() = %+v, want generic validation error", apiErr)
	}
}
