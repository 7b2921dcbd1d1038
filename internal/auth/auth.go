// Package auth hashes and checks operator passwords.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/harmonic-pos/salonledger/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUser        = errors.New("username and password are required")
	ErrInvalidRole        = errors.New("role must be admin or staff")
)

// Cost is the bcrypt work factor. Tests lower it to bcrypt.MinCost.
var Cost = bcrypt.DefaultCost

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// NewUser builds a user record with a hashed password.
func NewUser(username, password, role string) (model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.User{}, ErrInvalidUser
	}
	if role == "" {
		role = model.RoleStaff
	}
	if role != model.RoleAdmin && role != model.RoleStaff {
		return model.User{}, ErrInvalidRole
	}
	hash, err := HashPassword(password)
	if err != nil {
		return model.User{}, err
	}
	return model.User{Username: username, PasswordHash: hash, Role: role}, nil
}

// Authenticate checks username (case-sensitive) and password against doc.
// Unknown users and wrong passwords return the same error.
func Authenticate(doc *model.Document, username, password string) (*model.User, error) {
	u := doc.UserByName(username)
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// UpsertUser adds a user or replaces the password and role of an existing one.
// It reports whether a new user was created.
func UpsertUser(doc *model.Document, username, password, role string) (bool, error) {
	u, err := NewUser(username, password, role)
	if err != nil {
		return false, err
	}
	if existing := doc.UserByName(u.Username); existing != nil {
		*existing = u
		return false, nil
	}
	doc.Users = append(doc.Users, u)
	return true, nil
}
