// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package sdputils extracts negotiation parameters from parsed session
// descriptions and edits media sections in place.
package sdputils

import (
	"strconv"
	"strings"

	"github.com/pion/logging"
	"github.com/pion/sdp/v3"
	"github.com/pion/sdptransform"
	"github.com/pion/sdptransform/ortc"
)

var log = logging.NewDefaultLoggerFactory().NewLogger("sdputils") //nolint:gochecknoglobals

// SetLoggerFactory replaces the logger used to report lines that are
// skipped while extracting parameters. It is not safe to call concurrently
// with the other functions of this package.
func SetLoggerFactory(f logging.LoggerFactory) {
	log = f.NewLogger("sdputils")
}

// ExtractRtpCapabilities collects the codecs, RTCP feedback and header
// extensions of the first audio and the first video section of sdpObject.
// Codecs are returned in the order their rtpmap lines appear.
func ExtractRtpCapabilities(sdpObject sdptransform.Object) ortc.RtpCapabilities {
	caps := ortc.RtpCapabilities{
		Codecs:           []ortc.RtpCodecCapability{},
		HeaderExtensions: []ortc.RtpHeaderExtension{},
	}

	gotAudio, gotVideo := false, false
	for _, m := range sdpObject.Media() {
		kind := ortc.MediaKind(m.String("type"))
		switch kind {
		case ortc.MediaKindAudio:
			if gotAudio {
				continue
			}
			gotAudio = true
		case ortc.MediaKindVideo:
			if gotVideo {
				continue
			}
			gotVideo = true
		default:
			continue
		}

		first := len(caps.Codecs)
		byPayload := map[int]int{}
		for _, rtp := range m.List("rtp") {
			codec := ortc.RtpCodecCapability{
				Kind:                 kind,
				MimeType:             string(kind) + "/" + rtp.String("codec"),
				PreferredPayloadType: uint8(rtp.Int("payload")), //nolint:gosec // G115
				ClockRate:            uint32(rtp.Int("rate")),   //nolint:gosec // G115
				Parameters:           ortc.RtpCodecSpecificParameters{},
				RtcpFeedback:         []ortc.RtcpFeedback{},
			}
			if kind == ortc.MediaKindAudio {
				codec.Channels = 1
				if rtp.Has("encoding") {
					codec.Channels = uint8(rtp.Int("encoding")) //nolint:gosec // G115
				}
			}
			byPayload[rtp.Int("payload")] = len(caps.Codecs)
			caps.Codecs = append(caps.Codecs, codec)
		}

		for _, fmtp := range m.List("fmtp") {
			idx, ok := byPayload[fmtp.Int("payload")]
			if !ok {
				continue
			}
			for k, v := range sdptransform.ParseParams(fmtp.String("config")) {
				caps.Codecs[idx].Parameters[k] = v
			}
		}

		for _, fb := range m.List("rtcpFb") {
			feedback := ortc.RtcpFeedback{Type: fb.String("type"), Parameter: fb.String("subtype")}

			if fb.String("payload") == "*" {
				for i := first; i < len(caps.Codecs); i++ {
					caps.Codecs[i].RtcpFeedback = append(caps.Codecs[i].RtcpFeedback, feedback)
				}
				continue
			}

			payload, err := strconv.Atoi(fb.String("payload"))
			if err != nil {
				log.Warnf("Failed to parse rtcp-fb payload: %v", err)
				continue
			}
			if idx, ok := byPayload[payload]; ok {
				caps.Codecs[idx].RtcpFeedback = append(caps.Codecs[idx].RtcpFeedback, feedback)
			}
		}

		for _, ext := range m.List("ext") {
			if ext.Has("encrypt-uri") {
				continue
			}
			caps.HeaderExtensions = append(caps.HeaderExtensions, ortc.RtpHeaderExtension{
				Kind:        kind,
				URI:         ext.String("uri"),
				PreferredID: uint8(ext.Int("value")), //nolint:gosec // G115
			})
		}
	}

	return caps
}

// ExtractDtlsParameters returns the DTLS role and fingerprint of the first
// active media section, falling back to the session level fingerprint.
func ExtractDtlsParameters(sdpObject sdptransform.Object) (ortc.DtlsParameters, error) {
	var media sdptransform.Object
	for _, m := range sdpObject.Media() {
		if m.String("iceUfrag") != "" && m.Int("port") != 0 {
			media = m
			break
		}
	}
	if media == nil {
		return ortc.DtlsParameters{}, ErrNoActiveMediaSection
	}

	fingerprint := media.Object("fingerprint")
	if fingerprint == nil {
		fingerprint = sdpObject.Object("fingerprint")
	}
	if fingerprint == nil {
		return ortc.DtlsParameters{}, ErrNoFingerprint
	}

	var role ortc.DtlsRole
	switch media.String("setup") {
	case sdp.ConnectionRoleActive.String():
		role = ortc.DtlsRoleClient
	case sdp.ConnectionRolePassive.String():
		role = ortc.DtlsRoleServer
	case sdp.ConnectionRoleActpass.String():
		role = ortc.DtlsRoleAuto
	}

	return ortc.DtlsParameters{
		Role: role,
		Fingerprints: []ortc.DtlsFingerprint{{
			Algorithm: fingerprint.String("type"),
			Value:     fingerprint.String("hash"),
		}},
	}, nil
}

// GetCname returns the value of the first a=ssrc cname line of media, or an
// empty string.
func GetCname(media sdptransform.Object) string {
	for _, line := range media.List("ssrcs") {
		if line.String("attribute") == "cname" {
			return line.String("value")
		}
	}
	return ""
}

// ApplyCodecParameters copies the stereo setting of each Opus codec in params
// into the matching fmtp line of answerMedia, adding the line if needed.
func ApplyCodecParameters(params ortc.RtpParameters, answerMedia sdptransform.Object) {
	for _, codec := range params.Codecs {
		mimeType := strings.ToLower(codec.MimeType)
		if mimeType != "audio/opus" && mimeType != "audio/multiopus" {
			continue
		}

		found := false
		for _, rtp := range answerMedia.List("rtp") {
			if rtp.Int("payload") == int(codec.PayloadType) {
				found = true
				break
			}
		}
		if !found {
			continue
		}

		var fmtp sdptransform.Object
		for _, f := range answerMedia.List("fmtp") {
			if f.Int("payload") == int(codec.PayloadType) {
				fmtp = f
				break
			}
		}
		if fmtp == nil {
			fmtp = sdptransform.Object{"payload": int(codec.PayloadType), "config": ""}
			answerMedia.Append("fmtp", fmtp)
		}

		spropStereo, ok := codec.Parameters.Int("sprop-stereo")
		if !ok {
			continue
		}
		stereo := 0
		if spropStereo != 0 {
			stereo = 1
		}

		fmtp["config"] = setConfigParam(fmtp.String("config"), "stereo", strconv.Itoa(stereo))
	}
}

// setConfigParam sets key in an fmtp config, keeping the order of the other
// parameters.
func setConfigParam(config, key, value string) string {
	params := sdptransform.ParseParams(config)
	params[key] = value

	var parts []string
	seen := map[string]bool{}
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		if v := params.String(name); v != "" {
			parts = append(parts, name+"="+v)
		} else {
			parts = append(parts, name)
		}
	}

	for _, expr := range strings.Split(config, ";") {
		if name := strings.TrimSpace(strings.SplitN(expr, "=", 2)[0]); name != "" {
			add(name)
		}
	}
	add(key)

	return strings.Join(parts, ";")
}
