// Package drive provides a client for interacting with the Google Drive API.
//
// This package is the only component that talks to the Drive service. It
// wraps the v3 REST client with a small local model (FileInfo, User,
// Permission) and exposes exactly the operations the shell needs:
//   - Listing children of a folder and exact name lookups (path resolution)
//   - Downloading content and exporting Google-native documents
//   - Uploading new files and updating content in place
//   - Creating folders, moving and renaming files
//   - Trashing, untrashing and permanently deleting files
//   - Managing sharing permissions
//
// Every failed call is wrapped in *Error so callers can tell remote service
// failures apart from local errors with a single errors.As check.
//
// The client supports multiple accounts; each instance is bound to one
// account whose OAuth token is managed by the google package.
package drive
