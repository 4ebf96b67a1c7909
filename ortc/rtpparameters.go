// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ortc

import (
	"sort"
	"strconv"
	"strings"
)

// MediaKind is the kind of media a codec or header extension applies to.
type MediaKind string

// List of supported media kinds.
const (
	MediaKindAudio MediaKind = "audio"
	MediaKindVideo MediaKind = "video"
)

// Direction describes in which directions a header extension is used.
type Direction string

// List of header extension directions.
const (
	DirectionSendrecv Direction = "sendrecv"
	DirectionSendonly Direction = "sendonly"
	DirectionRecvonly Direction = "recvonly"
	DirectionInactive Direction = "inactive"
)

// RtpCodecSpecificParameters holds codec parameters as carried in an fmtp
// line. Values are strings or numbers.
type RtpCodecSpecificParameters map[string]interface{}

// Int returns the numeric value stored under key. Numeric strings are
// accepted, other values report false.
func (p RtpCodecSpecificParameters) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case uint8:
		return int(v), true
	case uint32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	default:
		return 0, false
	}
}

// FmtpLine renders the parameters as the config of an fmtp line, keys in
// lexical order.
func (p RtpCodecSpecificParameters) FmtpLine() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := p[k]
		if s, ok := v.(string); ok && s == "" {
			parts = append(parts, k)
			continue
		}
		parts = append(parts, k+"="+paramString(v))
	}
	return strings.Join(parts, ";")
}

func (p RtpCodecSpecificParameters) clone() RtpCodecSpecificParameters {
	if p == nil {
		return nil
	}
	c := make(RtpCodecSpecificParameters, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

func paramString(v interface{}) string {
	switch n := v.(type) {
	case string:
		return n
	case int:
		return strconv.Itoa(n)
	case uint8:
		return strconv.Itoa(int(n))
	case uint32:
		return strconv.FormatUint(uint64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case bool:
		if n {
			return "1"
		}
		return "0"
	default:
		return ""
	}
}

// RtcpFeedback signals a RTCP feedback mechanism supported by a codec.
type RtcpFeedback struct {
	Type      string `json:"type"`
	Parameter string `json:"parameter,omitempty"`
}

// RtpCodecCapability describes a codec a peer is able to send or receive.
type RtpCodecCapability struct {
	Kind                 MediaKind                  `json:"kind"`
	MimeType             string                     `json:"mimeType"`
	PreferredPayloadType uint8                      `json:"preferredPayloadType"`
	ClockRate            uint32                     `json:"clockRate"`
	Channels             uint8                      `json:"channels,omitempty"`
	Parameters           RtpCodecSpecificParameters `json:"parameters,omitempty"`
	RtcpFeedback         []RtcpFeedback             `json:"rtcpFeedback,omitempty"`
}

// RtpHeaderExtension describes a header extension a peer supports.
type RtpHeaderExtension struct {
	Kind             MediaKind `json:"kind"`
	URI              string    `json:"uri"`
	PreferredID      uint8     `json:"preferredId"`
	PreferredEncrypt bool      `json:"preferredEncrypt,omitempty"`
	Direction        Direction `json:"direction,omitempty"`
}

// RtpCapabilities lists the codecs and header extensions of a peer.
type RtpCapabilities struct {
	Codecs           []RtpCodecCapability `json:"codecs"`
	HeaderExtensions []RtpHeaderExtension `json:"headerExtensions"`
	FecMechanisms    []string             `json:"fecMechanisms"`
}

// RtpCodecParameters describes a codec used by a single stream.
type RtpCodecParameters struct {
	MimeType     string                     `json:"mimeType"`
	PayloadType  uint8                      `json:"payloadType"`
	ClockRate    uint32                     `json:"clockRate"`
	Channels     uint8                      `json:"channels,omitempty"`
	Parameters   RtpCodecSpecificParameters `json:"parameters,omitempty"`
	RtcpFeedback []RtcpFeedback             `json:"rtcpFeedback,omitempty"`
}

// RtpHeaderExtensionParameters describes a header extension used by a
// single stream.
type RtpHeaderExtensionParameters struct {
	URI        string                     `json:"uri"`
	ID         uint8                      `json:"id"`
	Encrypt    bool                       `json:"encrypt,omitempty"`
	Parameters RtpCodecSpecificParameters `json:"parameters,omitempty"`
}

// RtpEncodingRtx holds the retransmission stream of an encoding.
type RtpEncodingRtx struct {
	SSRC uint32 `json:"ssrc"`
}

// RtpEncodingParameters describes one encoding (layer) of a stream.
type RtpEncodingParameters struct {
	SSRC                  uint32          `json:"ssrc,omitempty"`
	RID                   string          `json:"rid,omitempty"`
	CodecPayloadType      *uint8          `json:"codecPayloadType,omitempty"`
	RTX                   *RtpEncodingRtx `json:"rtx,omitempty"`
	Dtx                   bool            `json:"dtx,omitempty"`
	ScalabilityMode       string          `json:"scalabilityMode,omitempty"`
	ScaleResolutionDownBy float64         `json:"scaleResolutionDownBy,omitempty"`
	MaxBitrate            uint32          `json:"maxBitrate,omitempty"`
}

// RtcpParameters describes the RTCP settings of a stream.
type RtcpParameters struct {
	Cname       string `json:"cname,omitempty"`
	ReducedSize *bool  `json:"reducedSize,omitempty"`
	Mux         *bool  `json:"mux,omitempty"`
}

// RtpParameters describes what a single stream is sent or received with.
type RtpParameters struct {
	Mid              string                         `json:"mid,omitempty"`
	Codecs           []RtpCodecParameters           `json:"codecs"`
	HeaderExtensions []RtpHeaderExtensionParameters `json:"headerExtensions"`
	Encodings        []RtpEncodingParameters        `json:"encodings"`
	Rtcp             RtcpParameters                 `json:"rtcp"`
}

// ExtendedCodec is a codec both peers support, with the payload types and
// parameters each side uses for it.
type ExtendedCodec struct {
	Name                 string                     `json:"name"`
	MimeType             string                     `json:"mimeType"`
	Kind                 MediaKind                  `json:"kind"`
	ClockRate            uint32                     `json:"clockRate"`
	Channels             uint8                      `json:"channels,omitempty"`
	LocalPayloadType     uint8                      `json:"localPayloadType"`
	LocalRtxPayloadType  *uint8                     `json:"localRtxPayloadType,omitempty"`
	RemotePayloadType    uint8                      `json:"remotePayloadType"`
	RemoteRtxPayloadType *uint8                     `json:"remoteRtxPayloadType,omitempty"`
	RtcpFeedback         []RtcpFeedback             `json:"rtcpFeedback"`
	LocalParameters      RtpCodecSpecificParameters `json:"localParameters"`
	RemoteParameters     RtpCodecSpecificParameters `json:"remoteParameters"`
}

// ExtendedHeaderExtension is a header extension both peers support.
// SendID is the id used by the local peer, RecvID the one used by the remote.
type ExtendedHeaderExtension struct {
	Kind      MediaKind `json:"kind"`
	URI       string    `json:"uri"`
	SendID    uint8     `json:"sendId"`
	RecvID    uint8     `json:"recvId"`
	Encrypt   bool      `json:"encrypt"`
	Direction Direction `json:"direction"`
}

// ExtendedRtpCapabilities is the intersection of a local and a remote
// RtpCapabilities.
type ExtendedRtpCapabilities struct {
	Codecs           []ExtendedCodec           `json:"codecs"`
	HeaderExtensions []ExtendedHeaderExtension `json:"headerExtensions"`
}

func isRtxMimeType(mimeType string) bool {
	return strings.HasSuffix(strings.ToLower(mimeType), "/rtx")
}

func kindOf(mimeType string) MediaKind {
	return MediaKind(strings.ToLower(strings.SplitN(mimeType, "/", 2)[0]))
}

func nameOf(mimeType string) string {
	parts := strings.SplitN(mimeType, "/", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
