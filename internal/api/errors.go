package api

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/moviedeck/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var kindCodes = map[common.Kind]codes.Code{
	common.KindUnknown:            codes.Unknown,
	common.KindValidation:         codes.InvalidArgument,
	common.KindInvalidCredentials: codes.Unauthenticated,
	common.KindUserNotFound:       codes.NotFound,
	common.KindAlreadyExists:      codes.AlreadyExists,
	common.KindNotFound:           codes.NotFound,
	common.KindUnauthorized:       codes.Unauthenticated,
	common.KindTokenExpired:       codes.Unauthenticated,
	common.KindPermissionDenied:   codes.PermissionDenied,
	common.KindUnavailable:        codes.Unavailable,
	common.KindRateLimited:        codes.ResourceExhausted,
	common.KindInternal:           codes.Internal,
}

// codeKinds is the fallback when a status message carries no kind code,
// e.g. errors raised by grpc itself.
var codeKinds = map[codes.Code]common.Kind{
	codes.InvalidArgument:   common.KindValidation,
	codes.Unauthenticated:   common.KindUnauthorized,
	codes.NotFound:          common.KindNotFound,
	codes.AlreadyExists:     common.KindAlreadyExists,
	codes.PermissionDenied:  common.KindPermissionDenied,
	codes.Unavailable:       common.KindUnavailable,
	codes.DeadlineExceeded:  common.KindUnavailable,
	codes.Canceled:          common.KindUnavailable,
	codes.ResourceExhausted: common.KindRateLimited,
	codes.Internal:          common.KindInternal,
}

// CodeOf returns the gRPC code used to transport a kind.
func CodeOf(k common.Kind) codes.Code {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return codes.Unknown
}

// ToStatus converts a service error to a gRPC status error. The status
// message is the kind code, optionally followed by ": detail" for
// validation failures. Unclassified errors become internal so causes do
// not leak to clients.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, common.KindUnavailable.String())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, common.KindUnavailable.String())
	}

	kind := common.KindOf(err)
	if kind == common.KindUnknown {
		kind = common.KindInternal
	}

	msg := kind.String()
	var ke *common.Error
	if kind == common.KindValidation && errors.As(err, &ke) && ke.Err != nil {
		msg += ": " + ke.Err.Error()
	}
	return status.Error(CodeOf(kind), msg)
}

// FromStatus converts an error returned by a stub call into a *common.Error
// carrying the closed Kind. Non-status errors are reported as unavailable.
func FromStatus(op string, err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return common.E(common.KindUnavailable, op, err)
	}

	code, detail, _ := strings.Cut(st.Message(), ": ")
	if kind := common.ParseKind(code); kind != common.KindUnknown {
		var cause error
		if detail != "" {
			cause = errors.New(detail)
		}
		return common.E(kind, op, cause)
	}

	kind, ok := codeKinds[st.Code()]
	if !ok {
		kind = common.KindUnknown
	}
	return common.E(kind, op, errors.New(st.Message()))
}
