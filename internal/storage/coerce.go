package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
)

// Typed read/write helpers over the byte-valued Store.
//
// Reads coerce the stored value to the type of the fallback and return the
// fallback when the key is absent or the stored value is malformed. A
// malformed value never surfaces as an error; the bool result lets callers
// log the fallback for diagnostics.

// GetString returns the stored string, or fallback if absent
func GetString(ctx context.Context, s Store, key, fallback string) (string, bool) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return fallback, false
	}
	return string(data), true
}

// GetInt returns the stored integer, or fallback if absent or malformed
func GetInt(ctx context.Context, s Store, key string, fallback int) (int, bool) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return fallback, false
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fallback, false
	}
	return n, true
}

// GetBool returns the stored boolean, or fallback if absent or malformed
func GetBool(ctx context.Context, s Store, key string, fallback bool) (bool, bool) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return fallback, false
	}
	b, err := strconv.ParseBool(string(data))
	if err != nil {
		return fallback, false
	}
	return b, true
}

// GetJSON decodes the stored value into dest. dest is untouched when the
// key is absent or the value does not round-trip.
func GetJSON(ctx context.Context, s Store, key string, dest any) bool {
	data, err := s.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false
	}
	return true
}

// SetString writes a plain string value
func SetString(ctx context.Context, s Store, key, value string) error {
	return s.Set(ctx, key, []byte(value))
}

// SetInt writes an integer as its decimal text form
func SetInt(ctx context.Context, s Store, key string, value int) error {
	return s.Set(ctx, key, []byte(strconv.Itoa(value)))
}

// SetBool writes a boolean as "true"/"false"
func SetBool(ctx context.Context, s Store, key string, value bool) error {
	return s.Set(ctx, key, []byte(strconv.FormatBool(value)))
}

// SetJSON writes a structured value as JSON. Serialization is lossless for
// the profile's field types, so a reload yields a field-for-field copy.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data)
}

// IsNotFound reports whether err is the missing-key sentinel
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
