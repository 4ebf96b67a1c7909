// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package fmtp

type h264FMTP struct {
	parameters map[string]string
}

func (h *h264FMTP) MimeType() string {
	return "video/h264"
}

// Match returns true if h and b use the same packetization mode.
//
// RFC 6184 Section 8.1: if no packetization-mode is present,
// single NAL unit mode (0) MUST be inferred.
func (h *h264FMTP) Match(b FMTP) bool {
	c, ok := b.(*h264FMTP)
	if !ok {
		return false
	}

	return valueOr(h.parameters, "packetization-mode", "0") ==
		valueOr(c.parameters, "packetization-mode", "0")
}

func (h *h264FMTP) Parameter(key string) (string, bool) {
	v, ok := h.parameters[key]
	return v, ok
}
