package domain

import "github.com/google/uuid"

// UserID identifies the user a scan belongs to. It wraps uuid.UUID for type
// safety at the domain layer; the zero value means "anonymous".
type UserID uuid.UUID

// IsZero reports whether the ID is the anonymous zero value.
func (u UserID) IsZero() bool { return uuid.UUID(u) == uuid.Nil }

// String returns the canonical UUID form.
func (u UserID) String() string { return uuid.UUID(u).String() }

// MarshalText encodes the ID in canonical UUID form.
func (u UserID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText parses a canonical UUID.
func (u *UserID) UnmarshalText(data []byte) error {
	parsed, err := uuid.ParseBytes(data)
	if err != nil {
		return err //nolint: wrapcheck
	}
	*u = UserID(parsed)

	return nil
}
