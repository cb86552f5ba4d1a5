package session

import (
	"fmt"

	"github.com/sistemaclass/classcli/core/user"
)

// NotAuthenticatedError redirects the caller to the login entry point while
// recording the originally requested command so login can return to it.
type NotAuthenticatedError struct {
	Attempted string
}

func (e *NotAuthenticatedError) Error() string {
	if e.Attempted == "" {
		return "faça login para continuar"
	}
	return fmt.Sprintf("faça login para continuar (comando solicitado: %s)", e.Attempted)
}

// RequireUser is the route-guard analogue: it yields the session user or a
// NotAuthenticatedError carrying the attempted command. No side effects.
func RequireUser(store *Store, attempted string) (*user.User, error) {
	u := store.Current()
	if u == nil {
		return nil, &NotAuthenticatedError{Attempted: attempted}
	}
	return u, nil
}
