package services

import (
	"testing"

	"github.com/GregMSThompson/task-tracker/internal/errs"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"Strong1!", true},
		{"Aa1@Aa1@Aa1@", true},
		{"weakpass", false},
		{"Short1!", false},
		{"alllower1!", false},
		{"ALLUPPER1!", false},
		{"NoDigits!!", false},
		{"NoSymbol12", false},
		{"Bad#Char1a", false},
		{"Spaced 1!a", false},
		{"Ünicode1!a", false},
		{"", false},
	}

	for _, tc := range cases {
		err := ValidatePassword(tc.password)
		if tc.ok && err != nil {
			t.Fatalf("ValidatePassword(%q) = %v, want nil", tc.password, err)
		}
		if !tc.ok {
			v, isValidation := err.(*errs.ValidationError)
			if !isValidation {
				t.Fatalf("ValidatePassword(%q) = %v, want validation error", tc.password, err)
			}
			if v.Message != PasswordPolicyMessage {
				t.Fatalf("unexpected message: %q", v.Message)
			}
		}
	}
}
