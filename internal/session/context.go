package session

import (
	"context"

	"github.com/google/uuid"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

type sessionKey struct{}

func AttachToContext(c context.Context, s *Session) context.Context {
	return context.WithValue(c, sessionKey{}, s)
}

func FromContext(c context.Context) (*Session, error) {
	s, ok := c.Value(sessionKey{}).(*Session)
	if !ok || s == nil || s.UserID == uuid.Nil {
		return nil, inErrors.ErrUnauthenticated
	}
	return s, nil
}
