package client

import (
	"errors"

	"github.com/dmitrijs2005/moviedeck/internal/api"
)

var ErrNotSignedIn = errors.New("not signed in")

// mapError turns a stub error into a *common.Error tagged with the method
// name, so callers can branch on common.KindOf.
func mapError(method string, err error) error {
	return api.FromStatus(method, err)
}
