// Package session implements the authentication and session-issuance core.
//
// It issues two signed, time-limited JWTs per login: a short-lived access
// token carrying the identity claim set, and a longer-lived refresh token
// carrying only the record id. The two tokens are signed with separate
// secrets, so compromise of one secret does not forge the other token type.
//
// The refresh token is persisted onto the student record (the single session
// slot); access tokens are never persisted and verify by signature and expiry
// alone. Logout overwrites the session slot and therefore only prevents
// refresh-based renewal: an already-issued access token stays valid until it
// expires naturally.
//
// Transport (HTTP, cookies) integration is intentionally out of scope here.
package session
