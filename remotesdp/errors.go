// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package remotesdp

import "errors"

var (
	// ErrNoFingerprints indicates DTLS parameters without any fingerprint.
	ErrNoFingerprints = errors.New("DTLS parameters carry no fingerprint")

	// ErrMediaSectionNotFound indicates no media section uses the given mid.
	ErrMediaSectionNotFound = errors.New("no media section found with mid")

	// ErrDuplicateMid indicates a media section with the given mid exists
	// already.
	ErrDuplicateMid = errors.New("media section already exists with mid")
)
