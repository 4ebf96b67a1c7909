// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ortc

import (
	"errors"
)

var (
	errInvalidMimeType        = errors.New("invalid codec.mimeType")
	errMissingClockRate       = errors.New("missing codec.clockRate")
	errMissingFeedbackType    = errors.New("missing fb.type")
	errInvalidExtKind         = errors.New("invalid ext.kind")
	errMissingExtURI          = errors.New("missing ext.uri")
	errMissingExtPreferredID  = errors.New("missing ext.preferredId")
	errMissingExtID           = errors.New("missing ext.id")
	errInvalidEncodingRID     = errors.New("invalid encoding.rid")
	errMissingFingerprintHash = errors.New("missing fingerprint.value")

	// ErrNoMatchingCodec indicates no codec matched the requested capability.
	ErrNoMatchingCodec = errors.New("no matching codec found")

	// ErrNoCodecs indicates RTP parameters without any codec were given.
	ErrNoCodecs = errors.New("no codecs given")

	// ErrFingerprintMismatch indicates a certificate does not produce the
	// advertised DTLS fingerprint.
	ErrFingerprintMismatch = errors.New("certificate fingerprint mismatch")

	// ErrUnknownCandidateType indicates an ICE candidate of a type this
	// package does not model.
	ErrUnknownCandidateType = errors.New("unknown ICE candidate type")
)
