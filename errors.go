// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdptransform

import (
	"errors"
)

var (
	// ErrSessionNotObject indicates Write was handed something other than a
	// session document.
	ErrSessionNotObject = errors.New("session description is not an object")

	// ErrInvalidPayloads indicates a payload type list contained a token that
	// is not an integer.
	ErrInvalidPayloads = errors.New("invalid payload type list")

	// ErrUnknownLineType indicates a write order referenced a line type that
	// has no grammar.
	ErrUnknownLineType = errors.New("unknown line type")

	errMediaInWriteOrder = errors.New("m= lines can not be reordered")
)
