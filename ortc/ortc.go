// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package ortc negotiates RTP capabilities between a local and a remote peer
// and derives the parameters each direction is sent and received with.
package ortc

import (
	"strings"

	"github.com/pion/sdp/v3"
	"github.com/pion/sdptransform/internal/fmtp"
	"github.com/pion/sdptransform/pkg/rtcerr"
)

const (
	probatorMid         = "probator"
	probatorSSRC        = 1234
	probatorPayloadType = 127
)

// GetExtendedRtpCapabilities matches the remote capabilities against the
// local ones. The result keeps the remote codec order. A codec only appears
// if both sides support it, and carries RTX payload types only if both sides
// offer RTX for it.
func GetExtendedRtpCapabilities(local, remote RtpCapabilities) ExtendedRtpCapabilities {
	extended := ExtendedRtpCapabilities{
		Codecs:           []ExtendedCodec{},
		HeaderExtensions: []ExtendedHeaderExtension{},
	}

	for _, remoteCodec := range remote.Codecs {
		if isRtxMimeType(remoteCodec.MimeType) {
			continue
		}

		localCodec, ok := findMatchingCodec(local.Codecs, remoteCodec)
		if !ok {
			continue
		}

		extended.Codecs = append(extended.Codecs, ExtendedCodec{
			Name:              nameOf(localCodec.MimeType),
			MimeType:          localCodec.MimeType,
			Kind:              kindOf(localCodec.MimeType),
			ClockRate:         localCodec.ClockRate,
			Channels:          localCodec.Channels,
			LocalPayloadType:  localCodec.PreferredPayloadType,
			RemotePayloadType: remoteCodec.PreferredPayloadType,
			RtcpFeedback:      reduceRtcpFeedback(localCodec.RtcpFeedback, remoteCodec.RtcpFeedback),
			LocalParameters:   localCodec.Parameters,
			RemoteParameters:  remoteCodec.Parameters,
		})
	}

	for i := range extended.Codecs {
		codec := &extended.Codecs[i]

		localRtx, ok := findRtxCodec(local.Codecs, codec.LocalPayloadType)
		if !ok {
			continue
		}
		remoteRtx, ok := findRtxCodec(remote.Codecs, codec.RemotePayloadType)
		if !ok {
			continue
		}

		localPT, remotePT := localRtx.PreferredPayloadType, remoteRtx.PreferredPayloadType
		codec.LocalRtxPayloadType = &localPT
		codec.RemoteRtxPayloadType = &remotePT
	}

	for _, remoteExt := range remote.HeaderExtensions {
		for _, localExt := range local.HeaderExtensions {
			if localExt.Kind != remoteExt.Kind || localExt.URI != remoteExt.URI {
				continue
			}

			extended.HeaderExtensions = append(extended.HeaderExtensions, ExtendedHeaderExtension{
				Kind:      remoteExt.Kind,
				URI:       remoteExt.URI,
				SendID:    localExt.PreferredID,
				RecvID:    remoteExt.PreferredID,
				Encrypt:   localExt.PreferredEncrypt,
				Direction: reverseDirection(remoteExt.Direction),
			})
			break
		}
	}

	return extended
}

// reverseDirection maps the direction the remote announced to the one the
// local peer uses.
func reverseDirection(remote Direction) Direction {
	switch remote {
	case DirectionRecvonly:
		return DirectionSendonly
	case DirectionSendonly:
		return DirectionRecvonly
	case DirectionInactive:
		return DirectionInactive
	default:
		return DirectionSendrecv
	}
}

func findMatchingCodec(codecs []RtpCodecCapability, needle RtpCodecCapability) (RtpCodecCapability, bool) {
	for _, c := range codecs {
		if matchCodecs(c.MimeType, c.ClockRate, c.Channels, c.Parameters,
			needle.MimeType, needle.ClockRate, needle.Channels, needle.Parameters) {
			return c, true
		}
	}
	return RtpCodecCapability{}, false
}

func findRtxCodec(codecs []RtpCodecCapability, apt uint8) (RtpCodecCapability, bool) {
	for _, c := range codecs {
		if !isRtxMimeType(c.MimeType) {
			continue
		}
		if a, ok := c.Parameters.Int("apt"); ok && a == int(apt) {
			return c, true
		}
	}
	return RtpCodecCapability{}, false
}

// matchCodecs compares mime type, clock rate and channel count, then lets
// fmtp decide whether codec specific parameters are compatible.
func matchCodecs(
	aMimeType string, aClockRate uint32, aChannels uint8, aParams RtpCodecSpecificParameters,
	bMimeType string, bClockRate uint32, bChannels uint8, bParams RtpCodecSpecificParameters,
) bool {
	if !strings.EqualFold(aMimeType, bMimeType) {
		return false
	}
	if aClockRate != bClockRate {
		return false
	}
	if aChannels != bChannels {
		return false
	}

	return fmtp.Parse(aMimeType, aParams).Match(fmtp.Parse(bMimeType, bParams))
}

func reduceRtcpFeedback(local, remote []RtcpFeedback) []RtcpFeedback {
	reduced := []RtcpFeedback{}
	for _, l := range local {
		for _, r := range remote {
			if l.Type == r.Type && l.Parameter == r.Parameter {
				reduced = append(reduced, r)
				break
			}
		}
	}
	return reduced
}

// GetRecvRtpCapabilities returns what the local peer can receive, using the
// payload types and header extension ids the remote peer sends with.
func GetRecvRtpCapabilities(extended ExtendedRtpCapabilities) RtpCapabilities {
	caps := RtpCapabilities{
		Codecs:           []RtpCodecCapability{},
		HeaderExtensions: []RtpHeaderExtension{},
		FecMechanisms:    []string{},
	}

	for _, ec := range extended.Codecs {
		caps.Codecs = append(caps.Codecs, RtpCodecCapability{
			Kind:                 ec.Kind,
			MimeType:             ec.MimeType,
			PreferredPayloadType: ec.RemotePayloadType,
			ClockRate:            ec.ClockRate,
			Channels:             ec.Channels,
			Parameters:           ec.LocalParameters,
			RtcpFeedback:         ec.RtcpFeedback,
		})

		if ec.RemoteRtxPayloadType == nil {
			continue
		}

		caps.Codecs = append(caps.Codecs, RtpCodecCapability{
			Kind:                 ec.Kind,
			MimeType:             string(ec.Kind) + "/rtx",
			PreferredPayloadType: *ec.RemoteRtxPayloadType,
			ClockRate:            ec.ClockRate,
			Parameters:           RtpCodecSpecificParameters{"apt": int(ec.RemotePayloadType)},
			RtcpFeedback:         []RtcpFeedback{},
		})
	}

	for _, ext := range extended.HeaderExtensions {
		if ext.Direction != DirectionSendrecv && ext.Direction != DirectionRecvonly {
			continue
		}

		caps.HeaderExtensions = append(caps.HeaderExtensions, RtpHeaderExtension{
			Kind:             ext.Kind,
			URI:              ext.URI,
			PreferredID:      ext.RecvID,
			PreferredEncrypt: ext.Encrypt,
			Direction:        ext.Direction,
		})
	}

	return caps
}

// GetSendingRtpParameters returns the parameters the local peer sends media
// of kind with. Only the first codec of that kind and its RTX are used.
func GetSendingRtpParameters(kind MediaKind, extended ExtendedRtpCapabilities) RtpParameters {
	return sendingRtpParameters(kind, extended, false)
}

// GetSendingRemoteRtpParameters is like GetSendingRtpParameters but carries
// the remote codec parameters, as needed to build the remote answer. Only
// one congestion control feedback survives: transport-cc when the
// transport-wide-cc extension is negotiated, goog-remb when abs-send-time is.
func GetSendingRemoteRtpParameters(kind MediaKind, extended ExtendedRtpCapabilities) RtpParameters {
	params := sendingRtpParameters(kind, extended, true)

	var hasTransportCC, hasAbsSendTime bool
	for _, ext := range params.HeaderExtensions {
		switch ext.URI {
		case sdp.TransportCCURI:
			hasTransportCC = true
		case sdp.ABSSendTimeURI:
			hasAbsSendTime = true
		}
	}

	var drop func(RtcpFeedback) bool
	switch {
	case hasTransportCC:
		drop = func(fb RtcpFeedback) bool { return fb.Type == "goog-remb" }
	case hasAbsSendTime:
		drop = func(fb RtcpFeedback) bool { return fb.Type == "transport-cc" }
	default:
		drop = func(fb RtcpFeedback) bool { return fb.Type == "transport-cc" || fb.Type == "goog-remb" }
	}

	for i := range params.Codecs {
		kept := []RtcpFeedback{}
		for _, fb := range params.Codecs[i].RtcpFeedback {
			if !drop(fb) {
				kept = append(kept, fb)
			}
		}
		params.Codecs[i].RtcpFeedback = kept
	}

	return params
}

func sendingRtpParameters(kind MediaKind, extended ExtendedRtpCapabilities, remote bool) RtpParameters {
	params := RtpParameters{
		Codecs:           []RtpCodecParameters{},
		HeaderExtensions: []RtpHeaderExtensionParameters{},
		Encodings:        []RtpEncodingParameters{},
	}

	for _, ec := range extended.Codecs {
		if ec.Kind != kind {
			continue
		}

		codecParams := ec.LocalParameters
		if remote {
			codecParams = ec.RemoteParameters
		}

		params.Codecs = append(params.Codecs, RtpCodecParameters{
			MimeType:     ec.MimeType,
			PayloadType:  ec.LocalPayloadType,
			ClockRate:    ec.ClockRate,
			Channels:     ec.Channels,
			Parameters:   codecParams.clone(),
			RtcpFeedback: append([]RtcpFeedback{}, ec.RtcpFeedback...),
		})

		if ec.LocalRtxPayloadType != nil {
			params.Codecs = append(params.Codecs, RtpCodecParameters{
				MimeType:     string(ec.Kind) + "/rtx",
				PayloadType:  *ec.LocalRtxPayloadType,
				ClockRate:    ec.ClockRate,
				Parameters:   RtpCodecSpecificParameters{"apt": int(ec.LocalPayloadType)},
				RtcpFeedback: []RtcpFeedback{},
			})
		}

		// Multiple codecs per kind are not sent.
		break
	}

	for _, ext := range extended.HeaderExtensions {
		if ext.Kind != kind {
			continue
		}
		if ext.Direction != DirectionSendrecv && ext.Direction != DirectionSendonly {
			continue
		}

		params.HeaderExtensions = append(params.HeaderExtensions, RtpHeaderExtensionParameters{
			URI:     ext.URI,
			ID:      ext.SendID,
			Encrypt: ext.Encrypt,
		})
	}

	return params
}

// CanSend reports whether media of kind can be sent.
func CanSend(kind MediaKind, extended ExtendedRtpCapabilities) bool {
	for _, ec := range extended.Codecs {
		if ec.Kind == kind {
			return true
		}
	}
	return false
}

// CanReceive reports whether a stream described by params can be received,
// which is the case when its first codec is one the remote may send.
func CanReceive(params RtpParameters, extended ExtendedRtpCapabilities) bool {
	if len(params.Codecs) == 0 {
		return false
	}

	first := params.Codecs[0]
	for _, ec := range extended.Codecs {
		if ec.RemotePayloadType == first.PayloadType {
			return true
		}
	}
	return false
}

// ReduceCodecs picks a single media codec, plus the RTX codec following it,
// out of codecs. Without capCodec the first codec is picked, otherwise the
// first one matching capCodec.
func ReduceCodecs(codecs []RtpCodecParameters, capCodec *RtpCodecCapability) ([]RtpCodecParameters, error) {
	if len(codecs) == 0 {
		return nil, &rtcerr.TypeError{Err: ErrNoCodecs}
	}

	pick := func(idx int) []RtpCodecParameters {
		filtered := []RtpCodecParameters{codecs[idx]}
		if idx+1 < len(codecs) && isRtxMimeType(codecs[idx+1].MimeType) {
			filtered = append(filtered, codecs[idx+1])
		}
		return filtered
	}

	if capCodec == nil {
		return pick(0), nil
	}

	for idx, c := range codecs {
		if matchCodecs(c.MimeType, c.ClockRate, c.Channels, c.Parameters,
			capCodec.MimeType, capCodec.ClockRate, capCodec.Channels, capCodec.Parameters) {
			return pick(idx), nil
		}
	}

	return nil, &rtcerr.TypeError{Err: ErrNoMatchingCodec}
}

// GenerateProbatorRtpParameters derives the parameters of the bandwidth
// probation stream from the parameters of a video stream.
func GenerateProbatorRtpParameters(video RtpParameters) (RtpParameters, error) {
	video.Codecs = append([]RtpCodecParameters{}, video.Codecs...)
	if err := ValidateRtpParameters(&video); err != nil {
		return RtpParameters{}, err
	}
	if len(video.Codecs) == 0 {
		return RtpParameters{}, &rtcerr.TypeError{Err: ErrNoCodecs}
	}

	codec := video.Codecs[0]
	codec.PayloadType = probatorPayloadType
	codec.Parameters = codec.Parameters.clone()

	return RtpParameters{
		Mid:              probatorMid,
		Codecs:           []RtpCodecParameters{codec},
		HeaderExtensions: append([]RtpHeaderExtensionParameters{}, video.HeaderExtensions...),
		Encodings:        []RtpEncodingParameters{{SSRC: probatorSSRC}},
		Rtcp:             RtcpParameters{Cname: probatorMid},
	}, nil
}
