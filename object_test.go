// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdptransform

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectAccessors(t *testing.T) {
	o := Object{
		"port":      9,
		"rate":      "90000",
		"framerate": 29.97,
		"bad":       "abc",
		"nothing":   nil,
		"origin":    Object{"username": "-"},
	}

	assert.True(t, o.Has("port"))
	assert.False(t, o.Has("nothing"))
	assert.False(t, o.Has("missing"))

	assert.Equal(t, "9", o.String("port"))
	assert.Equal(t, "29.97", o.String("framerate"))
	assert.Equal(t, "", o.String("nothing"))

	assert.Equal(t, 9, o.Int("port"))
	assert.Equal(t, 90000, o.Int("rate"))
	assert.Equal(t, 0, o.Int("bad"))
	assert.Equal(t, 29, o.Int("framerate"))

	assert.Equal(t, 29.97, o.Float("framerate"))
	assert.Equal(t, 9.0, o.Float("port"))
	assert.Equal(t, 0.0, o.Float("bad"))

	assert.Equal(t, "-", o.Object("origin").String("username"))
	assert.Nil(t, o.Object("port"))
}

func TestObjectLists(t *testing.T) {
	o := Object{}
	assert.Nil(t, o.List("rtp"))

	o.Append("rtp", Object{"payload": 96})
	o.Append("rtp", Object{"payload": 97})
	require.Len(t, o.List("rtp"), 2)
	assert.Equal(t, 97, o.List("rtp")[1].Int("payload"))

	o["fmtp"] = []Object{}
	assert.NotNil(t, o.List("fmtp"))
	assert.Empty(t, o.List("fmtp"))
}

func TestObjectFromJSON(t *testing.T) {
	var o Object
	require.NoError(t, json.Unmarshal([]byte(`{
		"media": [
			{"type": "audio", "port": 9, "rtp": [{"payload": 111, "codec": "opus"}]},
			"not an object"
		]
	}`), &o))

	media := o.Media()
	require.Len(t, media, 1)
	assert.Equal(t, 9, media[0].Int("port"))

	rtp := media[0].List("rtp")
	require.Len(t, rtp, 1)
	assert.Equal(t, 111, rtp[0].Int("payload"))
	assert.Equal(t, "111", rtp[0].String("payload"))

	media[0].Append("rtp", Object{"payload": 0, "codec": "PCMU"})
	assert.Len(t, media[0].List("rtp"), 2)
}
