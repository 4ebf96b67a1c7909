// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package fmtp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		name       string
		mimeType   string
		parameters map[string]interface{}
		expected   FMTP
	}{
		{
			"generic",
			"audio/opus",
			map[string]interface{}{"useinbandfec": 1, "minptime": 10},
			&genericFMTP{
				mimeType: "audio/opus",
				parameters: map[string]string{
					"useinbandfec": "1",
					"minptime":     "10",
				},
			},
		},
		{
			"generic case normalization",
			"audio/opus",
			map[string]interface{}{"SPROP-stereo": "1"},
			&genericFMTP{
				mimeType: "audio/opus",
				parameters: map[string]string{
					"sprop-stereo": "1",
				},
			},
		},
		{
			"h264",
			"video/H264",
			map[string]interface{}{"packetization-mode": 1, "profile-level-id": "42e01f"},
			&h264FMTP{
				parameters: map[string]string{
					"packetization-mode": "1",
					"profile-level-id":   "42e01f",
				},
			},
		},
		{
			"vp9",
			"video/vp9",
			map[string]interface{}{"profile-id": 2},
			&vp9FMTP{
				parameters: map[string]string{
					"profile-id": "2",
				},
			},
		},
		{
			"av1",
			"video/AV1",
			nil,
			&av1FMTP{
				parameters: map[string]string{},
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Parse(test.mimeType, test.parameters))
		})
	}
}

func TestMatch(t *testing.T) {
	for _, test := range []struct {
		name       string
		a          FMTP
		b          FMTP
		compatible bool
	}{
		{
			"generic parameters are ignored",
			Parse("audio/opus", map[string]interface{}{"useinbandfec": 1}),
			Parse("audio/OPUS", map[string]interface{}{"useinbandfec": 0, "stereo": 1}),
			true,
		},
		{
			"generic different mime",
			Parse("audio/opus", nil),
			Parse("audio/pcmu", nil),
			false,
		},
		{
			"h264 same packetization mode",
			Parse("video/h264", map[string]interface{}{"packetization-mode": 1, "profile-level-id": "42e01f"}),
			Parse("video/h264", map[string]interface{}{"packetization-mode": "1", "profile-level-id": "640c1f"}),
			true,
		},
		{
			"h264 inferred packetization mode",
			Parse("video/h264", nil),
			Parse("video/h264", map[string]interface{}{"packetization-mode": 0}),
			true,
		},
		{
			"h264 different packetization mode",
			Parse("video/h264", map[string]interface{}{"packetization-mode": 1}),
			Parse("video/h264", nil),
			false,
		},
		{
			"vp9 inferred profile",
			Parse("video/vp9", map[string]interface{}{"profile-id": 0}),
			Parse("video/vp9", nil),
			true,
		},
		{
			"vp9 different profile",
			Parse("video/vp9", map[string]interface{}{"profile-id": 2}),
			Parse("video/vp9", nil),
			false,
		},
		{
			"av1 different profile",
			Parse("video/av1", map[string]interface{}{"profile": 1}),
			Parse("video/av1", nil),
			false,
		},
		{
			"different matchers",
			Parse("video/h264", nil),
			Parse("video/vp9", nil),
			false,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.compatible, test.a.Match(test.b))
			assert.Equal(t, test.compatible, test.b.Match(test.a), "match must be symmetric")
		})
	}
}

func TestParameter(t *testing.T) {
	f := Parse("video/H264", map[string]interface{}{"Profile-Level-Id": "42e01f", "level-asymmetry-allowed": 1})

	v, ok := f.Parameter("profile-level-id")
	assert.True(t, ok)
	assert.Equal(t, "42e01f", v)

	v, ok = f.Parameter("level-asymmetry-allowed")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = f.Parameter("sprop-parameter-sets")
	assert.False(t, ok)
	assert.Equal(t, "video/h264", f.MimeType())
}
