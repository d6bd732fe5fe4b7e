package model

import (
	"fmt"
	"strings"
	"time"
)

// Source is the registration channel of a user record. A person who signs up
// natively and again through an OAuth provider owns one record per source.
type Source string

const (
	SourceApp      Source = "App"
	SourceGoogle   Source = "Google"
	SourceFacebook Source = "Facebook"
)

// ParseSource normalizes a source tag case-insensitively.
func ParseSource(s string) (Source, error) {
	for _, known := range []Source{SourceApp, SourceGoogle, SourceFacebook} {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown source %q", s)
}

// User is a document in the users collection. Uniqueness is scoped to
// (email, source), not email alone. PasswordHash is only set for SourceApp
// records and is never serialized to JSON.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Source       Source    `bson:"source" json:"source"`
	PasswordHash string    `bson:"password,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
