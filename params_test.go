// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdptransform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	for _, test := range []struct {
		name     string
		in       string
		expected Object
	}{
		{"typed values", "a=1;b=2.5;c=foo", Object{"a": 1, "b": 2.5, "c": "foo"}},
		{"white space", " profile-level-id=42e01f ; level-asymmetry-allowed=1", Object{
			"profile-level-id": "42e01f", "level-asymmetry-allowed": 1,
		}},
		{"key without value", "usedtx;stereo=1", Object{"usedtx": "", "stereo": 1}},
		{"non canonical numbers stay strings", "x=010;y=1.0;z=NaN;w=+Inf", Object{
			"x": "010", "y": "1.0", "z": "NaN", "w": "+Inf",
		}},
		{"value containing =", "config=a=b", Object{"config": "a=b"}},
		{"empty", "", Object{}},
		{"trailing separator", "apt=96;", Object{"apt": 96}},
	} {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ParseParams(test.in))
		})
	}
}

func TestParseFmtpConfig(t *testing.T) {
	fmtp := Parse(chromeOffer).Media()[0].List("fmtp")[0]
	assert.Equal(t, Object{"minptime": 10, "useinbandfec": 1}, ParseFmtpConfig(fmtp.String("config")))
}

func TestParsePayloads(t *testing.T) {
	payloads, err := ParsePayloads("111 63  9 0")
	require.NoError(t, err)
	assert.Equal(t, []int{111, 63, 9, 0}, payloads)

	payloads, err = ParsePayloads("")
	require.NoError(t, err)
	assert.Empty(t, payloads)

	_, err = ParsePayloads("96 webrtc-datachannel")
	assert.True(t, errors.Is(err, ErrInvalidPayloads))
}

func TestParseImageAttributes(t *testing.T) {
	assert.Equal(t, ImageAttributes{Wildcard: true}, ParseImageAttributes("*"))
	assert.Equal(t, ImageAttributes{Sets: []Object{
		{"x": 800, "y": 640, "sar": 1.1, "q": 0.6},
		{"x": 480, "y": 320},
	}}, ParseImageAttributes("[x=800,y=640,sar=1.1,q=0.6] [x=480,y=320]"))
}

func TestParseSimulcastStreamList(t *testing.T) {
	assert.Equal(t, [][]SimulcastStream{
		{{Scid: "1"}, {Scid: "4", Paused: true}},
		{{Scid: "2"}},
		{{Scid: "3"}},
	}, ParseSimulcastStreamList("1,~4;2;3"))
}

func TestParseRemoteCandidates(t *testing.T) {
	assert.Equal(t, []RemoteCandidate{
		{Component: 1, IP: "203.0.113.1", Port: 54400},
		{Component: 2, IP: "203.0.113.1", Port: 54401},
	}, ParseRemoteCandidates("1 203.0.113.1 54400 2 203.0.113.1 54401 3"))
}
