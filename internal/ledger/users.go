package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harmonic-pos/salonledger/internal/auth"
	"github.com/harmonic-pos/salonledger/internal/model"
)

// UpsertUser adds a user or changes an existing user's password and role.
func (l *Ledger) UpsertUser(ctx context.Context, username, password, role string) (bool, error) {
	return commit(ctx, l, func(_ time.Time) (bool, []Change, error) {
		created, err := auth.UpsertUser(l.doc, username, password, role)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidUser) || errors.Is(err, auth.ErrInvalidRole) {
				return false, nil, fmt.Errorf("%w: %w", ErrValidation, err)
			}
			return false, nil, err
		}
		details := "password changed"
		if created {
			details = "user added"
		}
		return created, []Change{{Action: ActionUpsertUser, RecordID: username, Details: details}}, nil
	})
}

// Authenticate checks a username and password.
func (l *Ledger) Authenticate(username, password string) (model.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	u, err := auth.Authenticate(l.doc, username, password)
	if err != nil {
		return model.User{}, err
	}
	return *u, nil
}
