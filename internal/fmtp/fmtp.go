// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package fmtp decides whether the codec specific parameters of two codecs
// with the same mime type describe a compatible configuration.
package fmtp

import (
	"strconv"
	"strings"
)

// FMTP interface for implementing custom
// FMTP matchers based on MimeType.
type FMTP interface {
	// MimeType returns the MimeType associated with
	// the fmtp
	MimeType() string
	// Match compares two fmtp descriptions for
	// compatibility based on the MimeType
	Match(f FMTP) bool
	// Parameter returns a value for the associated key
	// if contained in the parameters
	Parameter(key string) (string, bool)
}

// Parse wraps the parameters of a codec based on the MimeType. Values may be
// strings or numbers as produced by sdptransform.ParseParams.
func Parse(mimeType string, parameters map[string]interface{}) FMTP {
	params := normalize(parameters)

	switch {
	case strings.EqualFold(mimeType, "video/h264"):
		return &h264FMTP{parameters: params}
	case strings.EqualFold(mimeType, "video/vp9"):
		return &vp9FMTP{parameters: params}
	case strings.EqualFold(mimeType, "video/av1"):
		return &av1FMTP{parameters: params}
	default:
		return &genericFMTP{mimeType: mimeType, parameters: params}
	}
}

func normalize(parameters map[string]interface{}) map[string]string {
	params := make(map[string]string, len(parameters))
	for k, v := range parameters {
		params[strings.ToLower(k)] = stringify(v)
	}
	return params
}

func stringify(v interface{}) string {
	switch n := v.(type) {
	case string:
		return n
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint8:
		return strconv.Itoa(int(n))
	case uint32:
		return strconv.FormatUint(uint64(n), 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(n)
	default:
		return ""
	}
}

// valueOr returns the parameter stored under key, or def when it is missing.
func valueOr(params map[string]string, key, def string) string {
	if v, ok := params[key]; ok && v != "" {
		return v
	}
	return def
}

type genericFMTP struct {
	mimeType   string
	parameters map[string]string
}

func (g *genericFMTP) MimeType() string {
	return g.mimeType
}

// Match returns true if g and b are compatible fmtp descriptions.
// Parameters of codecs without a dedicated matcher never prevent a match.
func (g *genericFMTP) Match(b FMTP) bool {
	fmtp, ok := b.(*genericFMTP)
	if !ok {
		return false
	}

	return strings.EqualFold(g.mimeType, fmtp.MimeType())
}

func (g *genericFMTP) Parameter(key string) (string, bool) {
	v, ok := g.parameters[key]

	return v, ok
}
