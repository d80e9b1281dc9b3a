package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrInternal         = errors.New("internal error")
	ErrValidation       = errors.New("validation failed")
	ErrUnavailable      = errors.New("service unavailable")
	ErrRateLimited      = errors.New("too many requests")
	ErrPermissionDenied = errors.New("permission denied")

	// Identity errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// Kind is the closed set of failure classes shared by client and server.
// Callers branch on Kind instead of inspecting message text.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindValidation
	KindInvalidCredentials
	KindUserNotFound
	KindAlreadyExists
	KindNotFound
	KindUnauthorized
	KindTokenExpired
	KindPermissionDenied
	KindUnavailable
	KindRateLimited
	KindInternal
)

var kindCodes = [...]string{
	KindUnknown:            "unknown",
	KindValidation:         "validation",
	KindInvalidCredentials: "invalid_credentials",
	KindUserNotFound:       "user_not_found",
	KindAlreadyExists:      "already_exists",
	KindNotFound:           "not_found",
	KindUnauthorized:       "unauthorized",
	KindTokenExpired:       "token_expired",
	KindPermissionDenied:   "permission_denied",
	KindUnavailable:        "unavailable",
	KindRateLimited:        "rate_limited",
	KindInternal:           "internal",
}

var kindSentinels = map[Kind]error{
	KindValidation:         ErrValidation,
	KindInvalidCredentials: ErrInvalidCredentials,
	KindUserNotFound:       ErrUserNotFound,
	KindAlreadyExists:      ErrAlreadyExists,
	KindNotFound:           ErrNotFound,
	KindUnauthorized:       ErrUnauthorized,
	KindTokenExpired:       ErrTokenExpired,
	KindPermissionDenied:   ErrPermissionDenied,
	KindUnavailable:        ErrUnavailable,
	KindRateLimited:        ErrRateLimited,
	KindInternal:           ErrInternal,
}

// classification order matters: more specific sentinels first.
var classifyOrder = []struct {
	err  error
	kind Kind
}{
	{ErrValidation, KindValidation},
	{ErrInvalidCredentials, KindInvalidCredentials},
	{ErrUserNotFound, KindUserNotFound},
	{ErrAlreadyExists, KindAlreadyExists},
	{ErrNotFound, KindNotFound},
	{ErrTokenExpired, KindTokenExpired},
	{ErrRefreshTokenExpired, KindUnauthorized},
	{ErrInvalidToken, KindUnauthorized},
	{ErrUnauthorized, KindUnauthorized},
	{ErrPermissionDenied, KindPermissionDenied},
	{ErrUnavailable, KindUnavailable},
	{ErrRateLimited, KindRateLimited},
	{ErrInternal, KindInternal},
}

// String returns the stable wire code of the kind.
func (k Kind) String() string {
	if int(k) < len(kindCodes) {
		return kindCodes[k]
	}
	return kindCodes[KindUnknown]
}

// Sentinel returns the package-level error matching k, or nil for KindUnknown.
func (k Kind) Sentinel() error {
	return kindSentinels[k]
}

// ParseKind maps a wire code back to a Kind. Unrecognised codes yield KindUnknown.
func ParseKind(code string) Kind {
	for k, c := range kindCodes {
		if c == code {
			return Kind(k)
		}
	}
	return KindUnknown
}

// Error attaches a Kind and the failing operation to an underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// E builds an *Error. err may be nil, in which case the kind's sentinel text is used.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	switch {
	case e.Err != nil:
		msg = e.Err.Error()
	case e.Kind.Sentinel() != nil:
		msg = e.Kind.Sentinel().Error()
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNotFound) succeed for an *Error of KindNotFound
// even when the cause was rebuilt on the other side of the wire.
func (e *Error) Is(target error) bool {
	s := e.Kind.Sentinel()
	return s != nil && s == target
}

// KindOf classifies err. A nil error yields KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var ke *Error
	if errors.As(err, &ke) {
		return ke.Kind
	}
	for _, c := range classifyOrder {
		if errors.Is(err, c.err) {
			return c.kind
		}
	}
	return KindUnknown
}
