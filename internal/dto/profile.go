package dto

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/GregMSThompson/task-tracker/internal/models"
	"github.com/GregMSThompson/task-tracker/pkg/helpers"
)

// Profile is the profile document plus the badge letter shown when there is
// no photo.
type Profile struct {
	*models.User
	Initial string `json:"initial"`
}

func NewProfile(user *models.User) *Profile {
	return &Profile{
		User:    user,
		Initial: initial(user),
	}
}

func initial(user *models.User) string {
	if helpers.Value(user.PhotoURL) != "" {
		return ""
	}
	for _, s := range []string{user.FirstName, user.Email} {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(s)
		return string(unicode.ToUpper(r))
	}
	return "U"
}

type ProfileName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}
