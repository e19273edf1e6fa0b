package middleware

import (
	"context"
	"errors"
)

type contextKey string

const (
	profileEmailKey contextKey = "profile_email"
	profileIDKey    contextKey = "profile_id"
)

var ErrUnauthenticated = errors.New("no authenticated profile in context")

func SetProfileEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, profileEmailKey, email)
}

func GetProfileEmail(ctx context.Context) (string, error) {
	email, ok := ctx.Value(profileEmailKey).(string)
	if !ok || email == "" {
		return "", ErrUnauthenticated
	}
	return email, nil
}

func SetProfileID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, profileIDKey, id)
}

func GetProfileID(ctx context.Context) (uint, error) {
	id, ok := ctx.Value(profileIDKey).(uint)
	if !ok || id == 0 {
		return 0, ErrUnauthenticated
	}
	return id, nil
}
