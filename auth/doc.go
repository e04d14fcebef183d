// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity fingerprinting and session token utilities.

# Email Fingerprints

Fingerprints are one-way SHA-256 hashes of normalized email addresses:

	fp := auth.Fingerprint("student@university.edu")

The input is trimmed and lowercased before hashing, so case and
surrounding whitespace never produce distinct fingerprints. The output
is a deterministic 64-character hex digest used as the pseudonymous key
for submissions - the raw email is never stored.

For display, fingerprints can be shortened:

	auth.ShortenFingerprint(fp, 8)  // "a1b2c3d4...e9f0"

The shortened form is cosmetic only and never used for lookups.

# Session Tokens

Dashboard access is gated on proof of prior participation. Once a
fingerprint is verified against the submissions table, the server issues
a signed HS256 token:

	token, err := auth.IssueSessionToken(fp, secret, 12*time.Hour)
	claims, err := auth.ParseSessionToken(token, secret)

Claims carry only the fingerprint, never the email. Tokens are validated
by middleware.RequireSession on every dashboard route.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
