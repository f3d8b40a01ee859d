// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth generates identifiers and edit tokens and validates them.

# Identifiers

Poll and suggestion IDs are short random strings from a 64-character
URL-safe alphabet:

	pollID, err := auth.GenerateID(auth.IDLength)

IDs are generated locally with crypto/rand and inserted without a
uniqueness pre-check. A primary-key collision on insert is the fallback
detection mechanism and is not expected in practice.

# Edit Tokens

The edit token is a bearer capability: anyone holding the string has
full edit rights over the poll's suggestions. It is generated once at
poll creation and never rotated:

	token, err := auth.NewEditToken()

Validation is an exact constant-time string comparison against the
stored token:

	if err := auth.ValidateEditToken(header, poll.EditToken); err != nil {
		// 403
	}

There is no hashing and no expiry; the token is valid for the lifetime
of the poll.
*/
package auth
