// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ortc

import (
	"errors"
	"testing"

	"github.com/pion/sdp/v3"
	"github.com/pion/sdptransform/pkg/rtcerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRtpCapabilities(t *testing.T) {
	caps := RtpCapabilities{
		Codecs: []RtpCodecCapability{
			{MimeType: "audio/PCMU", PreferredPayloadType: 0, ClockRate: 8000},
			{MimeType: "video/VP8", PreferredPayloadType: 96, ClockRate: 90000},
		},
		HeaderExtensions: []RtpHeaderExtension{
			{Kind: MediaKindAudio, URI: sdp.AudioLevelURI, PreferredID: 1},
		},
	}

	require.NoError(t, ValidateRtpCapabilities(&caps))
	assert.Equal(t, MediaKindAudio, caps.Codecs[0].Kind)
	assert.Equal(t, uint8(1), caps.Codecs[0].Channels)
	assert.Equal(t, MediaKindVideo, caps.Codecs[1].Kind)
	assert.Equal(t, uint8(0), caps.Codecs[1].Channels)
	assert.Equal(t, RtpCodecSpecificParameters{}, caps.Codecs[1].Parameters)
	assert.Equal(t, DirectionSendrecv, caps.HeaderExtensions[0].Direction)
}

func TestValidateRtpCapabilitiesErrors(t *testing.T) {
	caps := RtpCapabilities{
		Codecs: []RtpCodecCapability{
			{MimeType: "application/foo", ClockRate: 8000},
			{MimeType: "video/VP8"},
			{MimeType: "video/VP8", ClockRate: 90000, RtcpFeedback: []RtcpFeedback{{Parameter: "pli"}}},
		},
		HeaderExtensions: []RtpHeaderExtension{
			{Kind: "data", URI: sdp.SDESMidURI, PreferredID: 1},
			{Kind: MediaKindVideo, PreferredID: 1},
			{Kind: MediaKindVideo, URI: sdp.SDESMidURI},
		},
	}

	err := ValidateRtpCapabilities(&caps)
	require.Error(t, err)

	for _, expected := range []error{
		errInvalidMimeType, errMissingClockRate, errMissingFeedbackType,
		errInvalidExtKind, errMissingExtURI, errMissingExtPreferredID,
	} {
		assert.True(t, errors.Is(err, expected), "expected %v in %v", expected, err)
	}

	var typeErr *rtcerr.TypeError
	assert.True(t, errors.As(err, &typeErr))
}

func TestValidateRtpParameters(t *testing.T) {
	params := RtpParameters{
		Codecs: []RtpCodecParameters{
			{MimeType: "audio/opus", PayloadType: 111, ClockRate: 48000},
		},
		HeaderExtensions: []RtpHeaderExtensionParameters{{URI: sdp.SDESMidURI, ID: 1}},
		Encodings:        []RtpEncodingParameters{{RID: "hi-res_1"}},
	}

	require.NoError(t, ValidateRtpParameters(&params))
	assert.Equal(t, uint8(1), params.Codecs[0].Channels)
	require.NotNil(t, params.Rtcp.ReducedSize)
	assert.True(t, *params.Rtcp.ReducedSize)

	params = RtpParameters{
		Codecs: []RtpCodecParameters{
			{MimeType: "video/rtx", PayloadType: 97, ClockRate: 90000},
		},
		HeaderExtensions: []RtpHeaderExtensionParameters{{URI: sdp.SDESMidURI}},
		Encodings:        []RtpEncodingParameters{{RID: "bad rid"}},
	}

	err := ValidateRtpParameters(&params)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingExtID))
	assert.True(t, errors.Is(err, errInvalidEncodingRID))
	assert.Contains(t, err.Error(), "missing apt parameter")
}
