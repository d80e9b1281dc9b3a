// Package client contains the transport side of the MovieDeck CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     identity calls (SignUp/SignIn/SignInFederated, password reset, SignOut,
//     profile) and the catalog calls (list, get, search, favorites, seed,
//     add, poster uploads).
//  2. A gRPC implementation (see GRPCClient) that keeps the token pair,
//     injects the access token via an interceptor, refreshes it once when
//     the server answers token_expired, and maps status errors to
//     *common.Error values carrying a common.Kind.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     SQLite preferences store, applying embedded goose migrations.
//
// # Error Handling
//
// Every call returns errors that common.KindOf can classify; callers branch
// on the kind, never on message text. ErrNotSignedIn is returned by SignOut
// when no session exists.
//
// GRPCClient is safe for concurrent use.
package client
