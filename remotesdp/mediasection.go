// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package remotesdp

import (
	"strconv"
	"strings"

	"github.com/pion/sdp/v3"
	"github.com/pion/sdptransform"
	"github.com/pion/sdptransform/internal/util"
	"github.com/pion/sdptransform/ortc"
)

const (
	protocolRtp       = "UDP/TLS/RTP/SAVPF"
	protocolSctp      = "UDP/DTLS/SCTP"
	protocolSctpOld   = "DTLS/SCTP"
	dataChannelApp    = "webrtc-datachannel"
	placeholderIP     = "127.0.0.1"
	placeholderPort   = 7
	generatedIDLength = 16
)

// CodecOptions tune the codecs a media section advertises. Nil and zero
// members leave the negotiated parameters untouched.
type CodecOptions struct {
	OpusStereo          *bool  `json:"opusStereo,omitempty"`
	OpusFec             *bool  `json:"opusFec,omitempty"`
	OpusDtx             *bool  `json:"opusDtx,omitempty"`
	OpusMaxPlaybackRate uint32 `json:"opusMaxPlaybackRate,omitempty"`
	OpusPtime           uint32 `json:"opusPtime,omitempty"`

	VideoGoogleStartBitrate uint32 `json:"videoGoogleStartBitrate,omitempty"`
	VideoGoogleMaxBitrate   uint32 `json:"videoGoogleMaxBitrate,omitempty"`
	VideoGoogleMinBitrate   uint32 `json:"videoGoogleMinBitrate,omitempty"`
}

// MediaSection is one m= section of a remote description.
type MediaSection interface {
	// Mid returns the identification tag of the section.
	Mid() string
	// Closed reports whether the section was closed. Closed sections keep
	// their slot in the description with port zero.
	Closed() bool
	// Object returns the section document, as rendered by the writer.
	Object() sdptransform.Object
	SetIceParameters(params ortc.IceParameters)
	SetDtlsRole(role ortc.DtlsRole)
	// Disable makes the section inactive and drops its streams.
	Disable()
	// Close disables the section and sets its port to zero.
	Close()
}

type mediaSection struct {
	object sdptransform.Object
}

func newMediaSection(iceParameters *ortc.IceParameters, iceCandidates []ortc.IceCandidate) mediaSection {
	m := mediaSection{object: sdptransform.Object{}}

	if iceParameters != nil {
		m.SetIceParameters(*iceParameters)
	}

	if iceCandidates != nil {
		candidates := make([]sdptransform.Object, 0, len(iceCandidates))
		for _, c := range iceCandidates {
			candidate := sdptransform.Object{
				"foundation": c.Foundation,
				"component":  1,
				"transport":  c.Protocol,
				"priority":   int(c.Priority),
				"ip":         c.IP,
				"port":       int(c.Port),
				"type":       string(c.Type),
			}
			if c.RelatedAddress != "" {
				candidate["raddr"] = c.RelatedAddress
				candidate["rport"] = int(c.RelatedPort)
			}
			if c.TCPType != "" {
				candidate["tcptype"] = c.TCPType
			}
			candidates = append(candidates, candidate)
		}

		m.object["candidates"] = candidates
		m.object["endOfCandidates"] = "end-of-candidates"
		m.object["iceOptions"] = "renomination"
	}

	return m
}

func (m *mediaSection) Mid() string {
	return m.object.String("mid")
}

func (m *mediaSection) Closed() bool {
	return m.object.Int("port") == 0
}

func (m *mediaSection) Object() sdptransform.Object {
	return m.object
}

func (m *mediaSection) SetIceParameters(params ortc.IceParameters) {
	m.object["iceUfrag"] = params.UsernameFragment
	m.object["icePwd"] = params.Password
}

func (m *mediaSection) Disable() {
	m.object["direction"] = "inactive"

	for _, key := range []string{"ext", "ssrcs", "ssrcGroups", "simulcast", "simulcast_03", "rids"} {
		delete(m.object, key)
	}
}

func (m *mediaSection) Close() {
	m.Disable()
	m.object["port"] = 0
	delete(m.object, "extmapAllowMixed")
}

func (m *mediaSection) setPlaceholderConnection() {
	m.object["connection"] = sdptransform.Object{"ip": placeholderIP, "version": 4}
	m.object["port"] = placeholderPort
}

// addCodecs writes the rtpmap, fmtp, rtcp-fb and payloads of codecs.
// parameters, when not nil, supplies the fmtp parameters to use for the codec
// at the same index.
func (m *mediaSection) addCodecs(codecs []ortc.RtpCodecParameters, parameters []ortc.RtpCodecSpecificParameters) {
	rtp := []sdptransform.Object{}
	fmtp := []sdptransform.Object{}
	rtcpFb := []sdptransform.Object{}
	payloads := make([]string, 0, len(codecs))

	for i, codec := range codecs {
		entry := sdptransform.Object{
			"payload": int(codec.PayloadType),
			"codec":   codecName(codec.MimeType),
			"rate":    int(codec.ClockRate),
		}
		if codec.Channels > 1 {
			entry["encoding"] = int(codec.Channels)
		}
		rtp = append(rtp, entry)

		params := codec.Parameters
		if parameters != nil {
			params = parameters[i]
		}
		if config := params.FmtpLine(); config != "" {
			fmtp = append(fmtp, sdptransform.Object{"payload": int(codec.PayloadType), "config": config})
		}

		for _, fb := range codec.RtcpFeedback {
			line := sdptransform.Object{
				"payload": strconv.Itoa(int(codec.PayloadType)),
				"type":    fb.Type,
			}
			if fb.Parameter != "" {
				line["subtype"] = fb.Parameter
			}
			rtcpFb = append(rtcpFb, line)
		}

		payloads = append(payloads, strconv.Itoa(int(codec.PayloadType)))
	}

	m.object["rtp"] = rtp
	m.object["fmtp"] = fmtp
	m.object["rtcpFb"] = rtcpFb
	m.object["payloads"] = strings.Join(payloads, " ")
}

func codecName(mimeType string) string {
	if i := strings.IndexByte(mimeType, '/'); i >= 0 {
		return mimeType[i+1:]
	}
	return mimeType
}

func setupForRole(role ortc.DtlsRole) (string, bool) {
	switch role {
	case ortc.DtlsRoleClient:
		return sdp.ConnectionRoleActive.String(), true
	case ortc.DtlsRoleServer:
		return sdp.ConnectionRolePassive.String(), true
	case ortc.DtlsRoleAuto:
		return sdp.ConnectionRoleActpass.String(), true
	default:
		return "", false
	}
}

// AnswerMediaSection answers a media section of a local offer.
type AnswerMediaSection struct {
	mediaSection
}

// AnswerOptions describe an answer media section.
type AnswerOptions struct {
	IceParameters  *ortc.IceParameters
	IceCandidates  []ortc.IceCandidate
	DtlsParameters *ortc.DtlsParameters
	SctpParameters *ortc.SctpParameters

	// OfferMediaObject is the offered section being answered.
	OfferMediaObject sdptransform.Object
	// OfferRtpParameters are updated with the Opus settings CodecOptions
	// apply, so the local description can be adjusted to match.
	OfferRtpParameters  *ortc.RtpParameters
	AnswerRtpParameters *ortc.RtpParameters
	CodecOptions        *CodecOptions
	ExtmapAllowMixed    bool
}

// NewAnswerMediaSection builds the answer to opts.OfferMediaObject.
func NewAnswerMediaSection(opts AnswerOptions) *AnswerMediaSection {
	m := &AnswerMediaSection{newMediaSection(opts.IceParameters, opts.IceCandidates)}
	offer := opts.OfferMediaObject

	m.object["mid"] = offer.String("mid")
	m.object["type"] = offer.String("type")
	m.object["protocol"] = offer.String("protocol")
	m.setPlaceholderConnection()

	if opts.DtlsParameters != nil {
		m.SetDtlsRole(opts.DtlsParameters.Role)
	}

	switch ortc.MediaKind(offer.String("type")) {
	case ortc.MediaKindAudio, ortc.MediaKindVideo:
		m.object["direction"] = "recvonly"

		if opts.AnswerRtpParameters != nil {
			m.addAnswerCodecs(opts)
			m.addAnswerHeaderExtensions(offer, opts.AnswerRtpParameters.HeaderExtensions)
		}

		if opts.ExtmapAllowMixed && offer.String("extmapAllowMixed") == "extmap-allow-mixed" {
			m.object["extmapAllowMixed"] = "extmap-allow-mixed"
		}

		m.answerSimulcast(offer)

		m.object["rtcpMux"] = "rtcp-mux"
		m.object["rtcpRsize"] = "rtcp-rsize"
	default:
		if opts.SctpParameters == nil {
			break
		}
		sctp := opts.SctpParameters

		if offer.Has("sctpPort") {
			m.object["payloads"] = dataChannelApp
			m.object["sctpPort"] = int(sctp.Port)
			m.object["maxMessageSize"] = int(sctp.MaxMessageSize)
		} else if offer.Has("sctpmap") {
			m.object["payloads"] = strconv.Itoa(int(sctp.Port))
			m.object["sctpmap"] = sdptransform.Object{
				"app":            dataChannelApp,
				"sctpmapNumber":  int(sctp.Port),
				"maxMessageSize": int(sctp.MaxMessageSize),
			}
		}
	}

	return m
}

func (m *AnswerMediaSection) addAnswerCodecs(opts AnswerOptions) {
	codecs := opts.AnswerRtpParameters.Codecs
	parameters := make([]ortc.RtpCodecSpecificParameters, len(codecs))

	for i, codec := range codecs {
		params := ortc.RtpCodecSpecificParameters{}
		for k, v := range codec.Parameters {
			params[k] = v
		}
		parameters[i] = params

		if opts.CodecOptions == nil {
			continue
		}

		var offerParams ortc.RtpCodecSpecificParameters
		if opts.OfferRtpParameters != nil {
			for j := range opts.OfferRtpParameters.Codecs {
				offerCodec := &opts.OfferRtpParameters.Codecs[j]
				if offerCodec.PayloadType != codec.PayloadType {
					continue
				}
				if offerCodec.Parameters == nil {
					offerCodec.Parameters = ortc.RtpCodecSpecificParameters{}
				}
				offerParams = offerCodec.Parameters
				break
			}
		}

		applyCodecOptions(strings.ToLower(codec.MimeType), opts.CodecOptions, params, offerParams)
	}

	m.addCodecs(codecs, parameters)
}

func applyCodecOptions(mimeType string, options *CodecOptions, params, offerParams ortc.RtpCodecSpecificParameters) {
	setOffer := func(key string, value int) {
		if offerParams != nil {
			offerParams[key] = value
		}
	}

	switch mimeType {
	case "audio/opus", "audio/multiopus":
		if options.OpusStereo != nil {
			setOffer("sprop-stereo", boolInt(*options.OpusStereo))
			params["stereo"] = boolInt(*options.OpusStereo)
		}
		if options.OpusFec != nil {
			setOffer("useinbandfec", boolInt(*options.OpusFec))
			params["useinbandfec"] = boolInt(*options.OpusFec)
		}
		if options.OpusDtx != nil {
			setOffer("usedtx", boolInt(*options.OpusDtx))
			params["usedtx"] = boolInt(*options.OpusDtx)
		}
		if options.OpusMaxPlaybackRate != 0 {
			params["maxplaybackrate"] = int(options.OpusMaxPlaybackRate)
		}
		if options.OpusPtime != 0 {
			params["ptime"] = int(options.OpusPtime)
		}
	case "video/vp8", "video/vp9", "video/h264", "video/h265", "video/av1":
		if options.VideoGoogleStartBitrate != 0 {
			params["x-google-start-bitrate"] = int(options.VideoGoogleStartBitrate)
		}
		if options.VideoGoogleMaxBitrate != 0 {
			params["x-google-max-bitrate"] = int(options.VideoGoogleMaxBitrate)
		}
		if options.VideoGoogleMinBitrate != 0 {
			params["x-google-min-bitrate"] = int(options.VideoGoogleMinBitrate)
		}
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// addAnswerHeaderExtensions keeps only the extensions the offer carries.
func (m *AnswerMediaSection) addAnswerHeaderExtensions(
	offer sdptransform.Object, exts []ortc.RtpHeaderExtensionParameters,
) {
	offered := map[string]bool{}
	for _, ext := range offer.List("ext") {
		offered[ext.String("uri")] = true
	}

	lines := []sdptransform.Object{}
	for _, ext := range exts {
		if !offered[ext.URI] {
			continue
		}
		lines = append(lines, sdptransform.Object{"uri": ext.URI, "value": int(ext.ID)})
	}
	m.object["ext"] = lines
}

func (m *AnswerMediaSection) answerSimulcast(offer sdptransform.Object) {
	switch {
	case offer.Has("simulcast"):
		m.object["simulcast"] = sdptransform.Object{
			"dir1":  "recv",
			"list1": offer.Object("simulcast").String("list1"),
		}
	case offer.Has("simulcast_03"):
		m.object["simulcast_03"] = sdptransform.Object{
			"value": strings.ReplaceAll(offer.Object("simulcast_03").String("value"), "send", "recv"),
		}
	default:
		return
	}

	rids := []sdptransform.Object{}
	for _, rid := range offer.List("rids") {
		if rid.String("direction") != "send" {
			continue
		}
		rids = append(rids, sdptransform.Object{"id": rid.String("id"), "direction": "recv"})
	}
	m.object["rids"] = rids
}

// SetDtlsRole sets the setup attribute matching role.
func (m *AnswerMediaSection) SetDtlsRole(role ortc.DtlsRole) {
	if setup, ok := setupForRole(role); ok {
		m.object["setup"] = setup
	}
}

// OfferMediaSection offers a media section the remote side sends on.
type OfferMediaSection struct {
	mediaSection
}

// OfferOptions describe an offer media section.
type OfferOptions struct {
	IceParameters  *ortc.IceParameters
	IceCandidates  []ortc.IceCandidate
	SctpParameters *ortc.SctpParameters

	Mid                string
	Kind               ortc.MediaKind
	OfferRtpParameters *ortc.RtpParameters
	// StreamID defaults to "-" and TrackID to a random identifier.
	StreamID string
	TrackID  string

	// OldDataChannelSpec selects the sctpmap signaling of early data channel
	// drafts.
	OldDataChannelSpec bool
}

// NewOfferMediaSection builds a section offering opts.OfferRtpParameters, or
// an SCTP association when opts.Kind is "application".
func NewOfferMediaSection(opts OfferOptions) *OfferMediaSection {
	m := &OfferMediaSection{newMediaSection(opts.IceParameters, opts.IceCandidates)}

	m.object["mid"] = opts.Mid
	m.object["type"] = string(opts.Kind)

	switch {
	case opts.SctpParameters == nil:
		m.object["protocol"] = protocolRtp
	case opts.OldDataChannelSpec:
		m.object["protocol"] = protocolSctpOld
	default:
		m.object["protocol"] = protocolSctp
	}

	m.setPlaceholderConnection()
	m.object["setup"] = sdp.ConnectionRoleActpass.String()

	switch opts.Kind {
	case ortc.MediaKindAudio, ortc.MediaKindVideo:
		m.object["direction"] = "sendonly"

		streamID, trackID := opts.StreamID, opts.TrackID
		if streamID == "" {
			streamID = "-"
		}
		if trackID == "" {
			trackID = util.MathRandAlpha(generatedIDLength)
		}
		msid := streamID + " " + trackID
		m.object["msid"] = msid

		if opts.OfferRtpParameters == nil {
			m.addCodecs(nil, nil)
			break
		}
		params := opts.OfferRtpParameters

		m.addCodecs(params.Codecs, nil)

		exts := []sdptransform.Object{}
		for _, ext := range params.HeaderExtensions {
			exts = append(exts, sdptransform.Object{"uri": ext.URI, "value": int(ext.ID)})
		}
		m.object["ext"] = exts

		m.object["rtcpMux"] = "rtcp-mux"
		m.object["rtcpRsize"] = "rtcp-rsize"

		if len(params.Encodings) > 0 {
			m.addSsrcs(params.Encodings[0], params.Rtcp.Cname, msid)
		}
	case "application":
		if opts.SctpParameters == nil {
			break
		}
		sctp := opts.SctpParameters

		if opts.OldDataChannelSpec {
			m.object["payloads"] = strconv.Itoa(int(sctp.Port))
			m.object["sctpmap"] = sdptransform.Object{
				"app":            dataChannelApp,
				"sctpmapNumber":  int(sctp.Port),
				"maxMessageSize": int(sctp.MaxMessageSize),
			}
		} else {
			m.object["payloads"] = dataChannelApp
			m.object["sctpPort"] = int(sctp.Port)
			m.object["maxMessageSize"] = int(sctp.MaxMessageSize)
		}
	}

	return m
}

func (m *OfferMediaSection) addSsrcs(encoding ortc.RtpEncodingParameters, cname, msid string) {
	ssrcs := []sdptransform.Object{}
	groups := []sdptransform.Object{}

	var rtxSsrc uint32
	if encoding.RTX != nil {
		rtxSsrc = encoding.RTX.SSRC
	}

	if cname != "" {
		ssrcs = append(ssrcs,
			sdptransform.Object{"id": int(encoding.SSRC), "attribute": "cname", "value": cname},
			sdptransform.Object{"id": int(encoding.SSRC), "attribute": "msid", "value": msid},
		)
		if rtxSsrc != 0 {
			ssrcs = append(ssrcs,
				sdptransform.Object{"id": int(rtxSsrc), "attribute": "cname", "value": cname},
				sdptransform.Object{"id": int(rtxSsrc), "attribute": "msid", "value": msid},
			)
		}
	}

	if rtxSsrc != 0 {
		groups = append(groups, sdptransform.Object{
			"semantics": sdp.SemanticTokenFlowIdentification,
			"ssrcs":     strconv.FormatUint(uint64(encoding.SSRC), 10) + " " + strconv.FormatUint(uint64(rtxSsrc), 10),
		})
	}

	m.object["ssrcs"] = ssrcs
	m.object["ssrcGroups"] = groups
}

// SetDtlsRole keeps the section at actpass, the only setup an offer may use.
func (m *OfferMediaSection) SetDtlsRole(ortc.DtlsRole) {
	m.object["setup"] = sdp.ConnectionRoleActpass.String()
}
