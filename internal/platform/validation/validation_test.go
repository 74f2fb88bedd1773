package validation

import (
	"errors"
	"strings"
	"testing"
)

type testStruct struct {
	Name   string `json:"name" validate:"required,min=3,max=10"`
	Note   string `json:"note" validate:"max=5"`
	Rating int    `json:"rating" validate:"gt=0,lt=6"`
	Year   *int   `json:"year,omitempty" validate:"omitempty,gte=0"`
}

func TestStruct_ValidInput(t *testing.T) {
	err := Struct(testStruct{Name: "valid", Rating: 3})
	if err != nil {
		t.Errorf("Expected no validation error, got %v", err)
	}
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(testStruct{Name: "ab", Rating: 0})

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *Error, got %T", err)
	}

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}

	if msg, ok := fields["name"]; !ok || !strings.Contains(msg, "at least 3 characters") {
		t.Errorf("Expected name length error, got %q", msg)
	}
	if msg, ok := fields["rating"]; !ok || !strings.Contains(msg, "greater than 0") {
		t.Errorf("Expected rating range error, got %q", msg)
	}
}

func TestStruct_RequiredField(t *testing.T) {
	err := Struct(testStruct{Rating: 1})

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0].Field != "name" {
		t.Errorf("Expected a single name error, got %v", verr.Fields)
	}
	if !strings.Contains(verr.Fields[0].Message, "required") {
		t.Errorf("Expected required message, got %q", verr.Fields[0].Message)
	}
}

func TestStruct_RatingRange(t *testing.T) {
	testCases := []struct {
		rating int
		valid  bool
	}{
		{0, false},
		{1, true},
		{5, true},
		{6, false},
	}

	for _, tc := range testCases {
		err := Struct(testStruct{Name: "valid", Rating: tc.rating})
		if tc.valid && err != nil {
			t.Errorf("Rating %d should be valid but got %v", tc.rating, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("Rating %d should be invalid but no error", tc.rating)
		}
	}
}

func TestStruct_CountsRunesNotBytes(t *testing.T) {
	// five runes, ten bytes
	err := Struct(testStruct{Name: "valid", Note: "ééééé", Rating: 1})
	if err != nil {
		t.Errorf("Expected multi-byte note within limit to pass, got %v", err)
	}
}

func TestError_Message(t *testing.T) {
	err := &Error{Fields: []FieldError{
		{Field: "a", Message: "a is required"},
		{Field: "b", Message: "b is invalid"},
	}}

	if got := err.Error(); got != "validation failed: a is required; b is invalid" {
		t.Errorf("Unexpected error message %q", got)
	}
}
