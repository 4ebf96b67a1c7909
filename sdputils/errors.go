// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdputils

import "errors"

var (
	// ErrNoActiveMediaSection indicates no media section carries ICE
	// credentials on a non-zero port.
	ErrNoActiveMediaSection = errors.New("no active media section found")

	// ErrNoFingerprint indicates neither the active media section nor the
	// session carry a fingerprint attribute.
	ErrNoFingerprint = errors.New("no fingerprint found")

	// ErrNoSsrc indicates a media section without a=ssrc lines.
	ErrNoSsrc = errors.New("no a=ssrc lines found")

	// ErrNoMsid indicates a media section without an a=ssrc msid line.
	ErrNoMsid = errors.New("a=ssrc line with msid information not found")

	// ErrNoCname indicates a media section without an a=ssrc cname line.
	ErrNoCname = errors.New("a=ssrc line with cname information not found")

	// ErrInvalidNumStreams indicates legacy simulcast was asked for fewer
	// than two streams.
	ErrInvalidNumStreams = errors.New("numStreams must be greater than 1")
)
