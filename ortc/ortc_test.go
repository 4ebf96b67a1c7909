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

func u8(v uint8) *uint8 { return &v }

func localCapabilities() RtpCapabilities {
	return RtpCapabilities{
		Codecs: []RtpCodecCapability{
			{
				Kind: MediaKindAudio, MimeType: "audio/opus", PreferredPayloadType: 100, ClockRate: 48000, Channels: 2,
				Parameters:   RtpCodecSpecificParameters{"useinbandfec": 1},
				RtcpFeedback: []RtcpFeedback{{Type: "transport-cc"}},
			},
			{
				Kind: MediaKindVideo, MimeType: "video/VP8", PreferredPayloadType: 101, ClockRate: 90000,
				RtcpFeedback: []RtcpFeedback{
					{Type: "nack"}, {Type: "nack", Parameter: "pli"}, {Type: "goog-remb"}, {Type: "transport-cc"},
				},
			},
			{
				Kind: MediaKindVideo, MimeType: "video/rtx", PreferredPayloadType: 102, ClockRate: 90000,
				Parameters: RtpCodecSpecificParameters{"apt": 101},
			},
		},
		HeaderExtensions: []RtpHeaderExtension{
			{Kind: MediaKindAudio, URI: sdp.AudioLevelURI, PreferredID: 1},
			{Kind: MediaKindVideo, URI: sdp.TransportCCURI, PreferredID: 5},
			{Kind: MediaKindVideo, URI: sdp.ABSSendTimeURI, PreferredID: 4},
			{Kind: MediaKindVideo, URI: sdp.SDESMidURI, PreferredID: 9},
		},
	}
}

func remoteCapabilities() RtpCapabilities {
	return RtpCapabilities{
		Codecs: []RtpCodecCapability{
			{
				Kind: MediaKindAudio, MimeType: "audio/opus", PreferredPayloadType: 100, ClockRate: 48000, Channels: 2,
				Parameters:   RtpCodecSpecificParameters{"useinbandfec": 0},
				RtcpFeedback: []RtcpFeedback{{Type: "transport-cc"}},
			},
			{
				Kind: MediaKindVideo, MimeType: "video/vp8", PreferredPayloadType: 97, ClockRate: 90000,
				Parameters: RtpCodecSpecificParameters{"x-google-start-bitrate": 1000},
				RtcpFeedback: []RtcpFeedback{
					{Type: "goog-remb"}, {Type: "nack", Parameter: "pli"}, {Type: "ccm", Parameter: "fir"}, {Type: "transport-cc"},
				},
			},
			{
				Kind: MediaKindVideo, MimeType: "video/rtx", PreferredPayloadType: 98, ClockRate: 90000,
				Parameters: RtpCodecSpecificParameters{"apt": 97},
			},
			{
				Kind: MediaKindVideo, MimeType: "video/H264", PreferredPayloadType: 125, ClockRate: 90000,
				Parameters: RtpCodecSpecificParameters{"packetization-mode": 1},
			},
		},
		HeaderExtensions: []RtpHeaderExtension{
			{Kind: MediaKindVideo, URI: sdp.TransportCCURI, PreferredID: 3},
			{Kind: MediaKindVideo, URI: sdp.ABSSendTimeURI, PreferredID: 2, Direction: DirectionRecvonly},
			{Kind: MediaKindVideo, URI: sdp.SDESMidURI, PreferredID: 1, Direction: DirectionSendonly},
			{Kind: MediaKindAudio, URI: sdp.SDESMidURI, PreferredID: 1},
		},
	}
}

func TestGetExtendedRtpCapabilities(t *testing.T) {
	extended := GetExtendedRtpCapabilities(localCapabilities(), remoteCapabilities())

	require.Len(t, extended.Codecs, 2)

	opus := extended.Codecs[0]
	assert.Equal(t, "opus", opus.Name)
	assert.Equal(t, MediaKindAudio, opus.Kind)
	assert.Equal(t, uint8(100), opus.LocalPayloadType)
	assert.Equal(t, uint8(100), opus.RemotePayloadType)
	assert.Nil(t, opus.LocalRtxPayloadType)
	assert.Nil(t, opus.RemoteRtxPayloadType)
	assert.Equal(t, RtpCodecSpecificParameters{"useinbandfec": 1}, opus.LocalParameters)
	assert.Equal(t, RtpCodecSpecificParameters{"useinbandfec": 0}, opus.RemoteParameters)

	vp8 := extended.Codecs[1]
	assert.Equal(t, "video/VP8", vp8.MimeType)
	assert.Equal(t, uint8(101), vp8.LocalPayloadType)
	assert.Equal(t, uint8(97), vp8.RemotePayloadType)
	assert.Equal(t, u8(102), vp8.LocalRtxPayloadType)
	assert.Equal(t, u8(98), vp8.RemoteRtxPayloadType)
	assert.Equal(t, []RtcpFeedback{
		{Type: "nack", Parameter: "pli"}, {Type: "goog-remb"}, {Type: "transport-cc"},
	}, vp8.RtcpFeedback)

	assert.Equal(t, []ExtendedHeaderExtension{
		{Kind: MediaKindVideo, URI: sdp.TransportCCURI, SendID: 5, RecvID: 3, Direction: DirectionSendrecv},
		{Kind: MediaKindVideo, URI: sdp.ABSSendTimeURI, SendID: 4, RecvID: 2, Direction: DirectionSendonly},
		{Kind: MediaKindVideo, URI: sdp.SDESMidURI, SendID: 9, RecvID: 1, Direction: DirectionRecvonly},
	}, extended.HeaderExtensions)
}

func TestGetExtendedRtpCapabilitiesRtxNeedsBothSides(t *testing.T) {
	remote := remoteCapabilities()
	remote.Codecs = remote.Codecs[:2]

	extended := GetExtendedRtpCapabilities(localCapabilities(), remote)
	require.Len(t, extended.Codecs, 2)
	assert.Nil(t, extended.Codecs[1].LocalRtxPayloadType)
	assert.Nil(t, extended.Codecs[1].RemoteRtxPayloadType)
}

func TestMatchCodecs(t *testing.T) {
	for _, test := range []struct {
		name  string
		a, b  RtpCodecCapability
		match bool
	}{
		{
			"mime is case insensitive",
			RtpCodecCapability{MimeType: "video/VP8", ClockRate: 90000},
			RtpCodecCapability{MimeType: "video/vp8", ClockRate: 90000},
			true,
		},
		{
			"clock rate differs",
			RtpCodecCapability{MimeType: "audio/opus", ClockRate: 48000, Channels: 2},
			RtpCodecCapability{MimeType: "audio/opus", ClockRate: 16000, Channels: 2},
			false,
		},
		{
			"channel presence differs",
			RtpCodecCapability{MimeType: "audio/opus", ClockRate: 48000, Channels: 2},
			RtpCodecCapability{MimeType: "audio/opus", ClockRate: 48000},
			false,
		},
		{
			"h264 default packetization mode",
			RtpCodecCapability{MimeType: "video/H264", ClockRate: 90000},
			RtpCodecCapability{MimeType: "video/H264", ClockRate: 90000, Parameters: RtpCodecSpecificParameters{"packetization-mode": 0}},
			true,
		},
		{
			"h264 packetization mode differs",
			RtpCodecCapability{MimeType: "video/H264", ClockRate: 90000, Parameters: RtpCodecSpecificParameters{"packetization-mode": "1"}},
			RtpCodecCapability{MimeType: "video/H264", ClockRate: 90000},
			false,
		},
		{
			"vp9 profile differs",
			RtpCodecCapability{MimeType: "video/VP9", ClockRate: 90000, Parameters: RtpCodecSpecificParameters{"profile-id": 2}},
			RtpCodecCapability{MimeType: "video/VP9", ClockRate: 90000},
			false,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, ok := findMatchingCodec([]RtpCodecCapability{test.a}, test.b)
			assert.Equal(t, test.match, ok)
		})
	}
}

func TestGetRecvRtpCapabilities(t *testing.T) {
	caps := GetRecvRtpCapabilities(GetExtendedRtpCapabilities(localCapabilities(), remoteCapabilities()))

	require.Len(t, caps.Codecs, 3)
	assert.Equal(t, uint8(97), caps.Codecs[1].PreferredPayloadType)
	assert.Equal(t, RtpCodecSpecificParameters(nil), caps.Codecs[1].Parameters)
	assert.Equal(t, RtpCodecCapability{
		Kind:                 MediaKindVideo,
		MimeType:             "video/rtx",
		PreferredPayloadType: 98,
		ClockRate:            90000,
		Parameters:           RtpCodecSpecificParameters{"apt": 97},
		RtcpFeedback:         []RtcpFeedback{},
	}, caps.Codecs[2])

	assert.Equal(t, []RtpHeaderExtension{
		{Kind: MediaKindVideo, URI: sdp.TransportCCURI, PreferredID: 3, Direction: DirectionSendrecv},
		{Kind: MediaKindVideo, URI: sdp.SDESMidURI, PreferredID: 1, Direction: DirectionRecvonly},
	}, caps.HeaderExtensions)
}

func TestGetSendingRtpParameters(t *testing.T) {
	extended := GetExtendedRtpCapabilities(localCapabilities(), remoteCapabilities())

	params := GetSendingRtpParameters(MediaKindVideo, extended)
	require.Len(t, params.Codecs, 2)
	assert.Equal(t, uint8(101), params.Codecs[0].PayloadType)
	assert.Equal(t, RtpCodecParameters{
		MimeType:     "video/rtx",
		PayloadType:  102,
		ClockRate:    90000,
		Parameters:   RtpCodecSpecificParameters{"apt": 101},
		RtcpFeedback: []RtcpFeedback{},
	}, params.Codecs[1])
	assert.Equal(t, []RtpHeaderExtensionParameters{
		{URI: sdp.TransportCCURI, ID: 5},
		{URI: sdp.ABSSendTimeURI, ID: 4},
	}, params.HeaderExtensions)
	assert.Len(t, params.Codecs[0].RtcpFeedback, 3)

	audio := GetSendingRtpParameters(MediaKindAudio, extended)
	require.Len(t, audio.Codecs, 1)
	assert.Empty(t, audio.HeaderExtensions)
}

func TestGetSendingRemoteRtpParameters(t *testing.T) {
	extended := GetExtendedRtpCapabilities(localCapabilities(), remoteCapabilities())

	params := GetSendingRemoteRtpParameters(MediaKindVideo, extended)
	require.Len(t, params.Codecs, 2)
	assert.Equal(t, RtpCodecSpecificParameters{"x-google-start-bitrate": 1000}, params.Codecs[0].Parameters)
	assert.Equal(t, []RtcpFeedback{
		{Type: "nack", Parameter: "pli"}, {Type: "transport-cc"},
	}, params.Codecs[0].RtcpFeedback, "goog-remb is dropped in favour of transport-cc")

	// The extended capabilities are not modified.
	assert.Len(t, extended.Codecs[1].RtcpFeedback, 3)

	t.Run("abs-send-time only", func(t *testing.T) {
		extended := GetExtendedRtpCapabilities(localCapabilities(), remoteCapabilities())
		extended.HeaderExtensions = extended.HeaderExtensions[1:]

		params := GetSendingRemoteRtpParameters(MediaKindVideo, extended)
		assert.Equal(t, []RtcpFeedback{
			{Type: "nack", Parameter: "pli"}, {Type: "goog-remb"},
		}, params.Codecs[0].RtcpFeedback)
	})

	t.Run("no congestion control extension", func(t *testing.T) {
		extended := GetExtendedRtpCapabilities(localCapabilities(), remoteCapabilities())
		extended.HeaderExtensions = nil

		params := GetSendingRemoteRtpParameters(MediaKindVideo, extended)
		assert.Equal(t, []RtcpFeedback{{Type: "nack", Parameter: "pli"}}, params.Codecs[0].RtcpFeedback)
	})
}

func TestCanSendAndReceive(t *testing.T) {
	extended := GetExtendedRtpCapabilities(localCapabilities(), remoteCapabilities())

	assert.True(t, CanSend(MediaKindAudio, extended))
	assert.True(t, CanSend(MediaKindVideo, extended))
	assert.False(t, CanSend(MediaKindAudio, ExtendedRtpCapabilities{}))

	assert.True(t, CanReceive(RtpParameters{Codecs: []RtpCodecParameters{{PayloadType: 97}}}, extended))
	assert.False(t, CanReceive(RtpParameters{Codecs: []RtpCodecParameters{{PayloadType: 101}}}, extended))
	assert.False(t, CanReceive(RtpParameters{}, extended))
}

func TestReduceCodecs(t *testing.T) {
	codecs := []RtpCodecParameters{
		{MimeType: "video/VP8", PayloadType: 96, ClockRate: 90000},
		{MimeType: "video/rtx", PayloadType: 97, ClockRate: 90000, Parameters: RtpCodecSpecificParameters{"apt": 96}},
		{MimeType: "video/H264", PayloadType: 102, ClockRate: 90000, Parameters: RtpCodecSpecificParameters{"packetization-mode": 1}},
		{MimeType: "video/rtx", PayloadType: 103, ClockRate: 90000, Parameters: RtpCodecSpecificParameters{"apt": 102}},
		{MimeType: "video/H264", PayloadType: 104, ClockRate: 90000},
	}

	reduced, err := ReduceCodecs(codecs, nil)
	require.NoError(t, err)
	assert.Equal(t, codecs[:2], reduced)

	reduced, err = ReduceCodecs(codecs, &RtpCodecCapability{
		MimeType: "video/h264", ClockRate: 90000, Parameters: RtpCodecSpecificParameters{"packetization-mode": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, codecs[2:4], reduced)

	reduced, err = ReduceCodecs(codecs, &RtpCodecCapability{MimeType: "video/h264", ClockRate: 90000})
	require.NoError(t, err)
	assert.Equal(t, codecs[4:], reduced)

	_, err = ReduceCodecs(codecs, &RtpCodecCapability{MimeType: "video/AV1", ClockRate: 90000})
	var typeErr *rtcerr.TypeError
	assert.True(t, errors.As(err, &typeErr))
	assert.True(t, errors.Is(err, ErrNoMatchingCodec))

	_, err = ReduceCodecs(nil, nil)
	assert.True(t, errors.Is(err, ErrNoCodecs))
}

func TestGenerateProbatorRtpParameters(t *testing.T) {
	video := RtpParameters{
		Mid: "1",
		Codecs: []RtpCodecParameters{
			{MimeType: "video/VP8", PayloadType: 96, ClockRate: 90000, Parameters: RtpCodecSpecificParameters{"x": 1}},
			{MimeType: "video/rtx", PayloadType: 97, ClockRate: 90000, Parameters: RtpCodecSpecificParameters{"apt": 96}},
		},
		HeaderExtensions: []RtpHeaderExtensionParameters{{URI: sdp.TransportCCURI, ID: 5}},
		Encodings:        []RtpEncodingParameters{{SSRC: 1111}},
	}

	probator, err := GenerateProbatorRtpParameters(video)
	require.NoError(t, err)
	assert.Equal(t, "probator", probator.Mid)
	require.Len(t, probator.Codecs, 1)
	assert.Equal(t, uint8(127), probator.Codecs[0].PayloadType)
	assert.Equal(t, []RtpEncodingParameters{{SSRC: 1234}}, probator.Encodings)
	assert.Equal(t, "probator", probator.Rtcp.Cname)
	assert.Equal(t, video.HeaderExtensions, probator.HeaderExtensions)

	probator.Codecs[0].Parameters["x"] = 2
	assert.Equal(t, 1, video.Codecs[0].Parameters["x"])

	_, err = GenerateProbatorRtpParameters(RtpParameters{})
	assert.True(t, errors.Is(err, ErrNoCodecs))
}

func TestNegotiateVP8WithRtx(t *testing.T) {
	local := RtpCapabilities{Codecs: []RtpCodecCapability{
		{MimeType: "audio/opus", PreferredPayloadType: 100, ClockRate: 48000, Channels: 2},
		{MimeType: "video/VP8", PreferredPayloadType: 101, ClockRate: 90000},
		{MimeType: "video/rtx", PreferredPayloadType: 102, ClockRate: 90000, Parameters: RtpCodecSpecificParameters{"apt": 101}},
	}}
	remote := RtpCapabilities{Codecs: []RtpCodecCapability{
		{MimeType: "audio/opus", PreferredPayloadType: 100, ClockRate: 48000, Channels: 2},
		{MimeType: "video/VP8", PreferredPayloadType: 97, ClockRate: 90000},
		{MimeType: "video/rtx", PreferredPayloadType: 98, ClockRate: 90000, Parameters: RtpCodecSpecificParameters{"apt": 97}},
	}}

	extended := GetExtendedRtpCapabilities(local, remote)

	var vp8 []ExtendedCodec
	for _, c := range extended.Codecs {
		if c.Kind == MediaKindVideo {
			vp8 = append(vp8, c)
		}
	}
	require.Len(t, vp8, 1)
	assert.Equal(t, uint8(101), vp8[0].LocalPayloadType)
	assert.Equal(t, uint8(97), vp8[0].RemotePayloadType)
	assert.Equal(t, u8(102), vp8[0].LocalRtxPayloadType)
	assert.Equal(t, u8(98), vp8[0].RemoteRtxPayloadType)
}
