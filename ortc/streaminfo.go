// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ortc

import (
	"github.com/pion/interceptor"
	"github.com/pion/sdptransform/pkg/rtcerr"
)

// StreamInfo describes one encoding of params the way interceptors bound by
// a media engine expect it. The codec used is the one named by the
// encoding's CodecPayloadType, or the first codec.
func StreamInfo(id string, params RtpParameters, encoding RtpEncodingParameters) (*interceptor.StreamInfo, error) {
	if len(params.Codecs) == 0 {
		return nil, &rtcerr.TypeError{Err: ErrNoCodecs}
	}

	codec := params.Codecs[0]
	if encoding.CodecPayloadType != nil {
		found := false
		for _, c := range params.Codecs {
			if c.PayloadType == *encoding.CodecPayloadType {
				codec, found = c, true
				break
			}
		}
		if !found {
			return nil, &rtcerr.TypeError{Err: ErrNoMatchingCodec}
		}
	}

	headerExtensions := make([]interceptor.RTPHeaderExtension, 0, len(params.HeaderExtensions))
	for _, h := range params.HeaderExtensions {
		headerExtensions = append(headerExtensions, interceptor.RTPHeaderExtension{ID: int(h.ID), URI: h.URI})
	}
	feedbacks := make([]interceptor.RTCPFeedback, 0, len(codec.RtcpFeedback))
	for _, f := range codec.RtcpFeedback {
		feedbacks = append(feedbacks, interceptor.RTCPFeedback{Type: f.Type, Parameter: f.Parameter})
	}

	return &interceptor.StreamInfo{
		ID:                  id,
		Attributes:          interceptor.Attributes{},
		SSRC:                encoding.SSRC,
		PayloadType:         codec.PayloadType,
		RTPHeaderExtensions: headerExtensions,
		MimeType:            codec.MimeType,
		ClockRate:           codec.ClockRate,
		Channels:            uint16(codec.Channels),
		SDPFmtpLine:         codec.Parameters.FmtpLine(),
		RTCPFeedback:        feedbacks,
	}, nil
}
