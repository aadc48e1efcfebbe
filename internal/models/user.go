package models

import (
	"time"
)

// User is the profile document stored at users/{uid}.
type User struct {
	UID       string    `firestore:"uid" json:"uid"`
	Email     string    `firestore:"email" json:"email"`
	FirstName string    `firestore:"firstName" json:"firstName"`
	LastName  string    `firestore:"lastName" json:"lastName"`
	PhotoURL  *string   `firestore:"photoURL" json:"photoURL"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
