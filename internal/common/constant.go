// Package common contains shared constants, sentinel errors and the error
// Kind enumeration used by both the MovieDeck client and server.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// FavoritesBatchSize is the largest number of ids resolved by a single
// catalog lookup when expanding a favorites document.
const FavoritesBatchSize = 10

// MinPasswordLength is enforced by callers before any auth request is issued.
const MinPasswordLength = 6
