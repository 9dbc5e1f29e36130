// Package google handles OAuth authentication against Google for all
// Drive operations.
//
// Tokens are cached per account under the user cache directory
// (e.g. ~/.cache/drivesh/google-default.token) as an access/refresh token
// pair. The auth command obtains the initial token through the standard
// out-of-band installed-application flow; afterwards the refresh token is
// used transparently whenever the access token expires.
package google
