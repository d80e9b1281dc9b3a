package cli

import (
	"errors"

	"github.com/dmitrijs2005/moviedeck/internal/common"
)

var kindMessages = map[common.Kind]string{
	common.KindValidation:         "Please check the entered data",
	common.KindInvalidCredentials: "Wrong email or password",
	common.KindUserNotFound:       "There is no account with this email",
	common.KindAlreadyExists:      "An account with this email already exists",
	common.KindNotFound:           "Nothing found with this id",
	common.KindUnauthorized:       "Please log in first",
	common.KindTokenExpired:       "Your session has expired, please log in again",
	common.KindPermissionDenied:   "You are not allowed to do that",
	common.KindUnavailable:        "The server is unavailable, try again later",
	common.KindRateLimited:        "Too many attempts, wait a moment and retry",
	common.KindInternal:           "Something went wrong on the server",
}

const unknownMessage = "Unexpected error"

// messageFor turns err into the text shown to the user. Only the Kind is
// consulted; validation failures also carry their detail.
func messageFor(err error) string {
	kind := common.KindOf(err)
	msg, ok := kindMessages[kind]
	if !ok {
		return unknownMessage
	}
	if kind == common.KindValidation {
		var ke *common.Error
		if errors.As(err, &ke) && ke.Err != nil {
			msg += ": " + ke.Err.Error()
		}
	}
	return msg
}
