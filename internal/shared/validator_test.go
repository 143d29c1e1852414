package shared

import (
	"errors"
	"testing"
)

type contactForm struct {
	Name  string `validate:"trimmed_min=2"`
	Email string `validate:"simple_email"`
	Phone string `validate:"phone10"`
}

var contactMessages = map[string]string{
	"Name.trimmed_min":   "Name must be at least 2 characters",
	"Email.simple_email": "Please enter a valid email address",
	"Phone.phone10":      "Phone number must be exactly 10 digits",
}

func TestValidateForm(t *testing.T) {
	v := NewValidator()

	tt := []struct {
		name      string
		form      contactForm
		wantField string
		wantMsg   string
	}{
		{name: "valid", form: contactForm{"Jo", "jo@example.com", "9876543210"}},
		{name: "name only spaces", form: contactForm{"  J  ", "jo@example.com", "9876543210"}, wantField: "Name", wantMsg: "Name must be at least 2 characters"},
		{name: "email without tld", form: contactForm{"Jo", "jo@example", "9876543210"}, wantField: "Email", wantMsg: "Please enter a valid email address"},
		{name: "email with space", form: contactForm{"Jo", "jo @example.com", "9876543210"}, wantField: "Email", wantMsg: "Please enter a valid email address"},
		{name: "phone too short", form: contactForm{"Jo", "jo@example.com", "12345"}, wantField: "Phone", wantMsg: "Phone number must be exactly 10 digits"},
		{name: "phone with letters", form: contactForm{"Jo", "jo@example.com", "98765abcde"}, wantField: "Phone", wantMsg: "Phone number must be exactly 10 digits"},
		{name: "first failing field wins", form: contactForm{"", "bad", "1"}, wantField: "Name", wantMsg: "Name must be at least 2 characters"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateForm(v, tc.form, contactMessages)
			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.wantField {
				t.Errorf("Field = %s, want %s", ve.Field, tc.wantField)
			}
			if ve.Message != tc.wantMsg {
				t.Errorf("Message = %q, want %q", ve.Message, tc.wantMsg)
			}
		})
	}
}
