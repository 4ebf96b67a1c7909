// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package remotesdp builds the description of a remote endpoint that is
// only known through its ORTC parameters, such as a media server, so it can
// be handed to an SDP based engine.
package remotesdp

import (
	"strconv"
	"strings"

	"github.com/pion/logging"
	"github.com/pion/randutil"
	"github.com/pion/sdp/v3"
	"github.com/pion/sdptransform"
	"github.com/pion/sdptransform/ortc"
	"github.com/pkg/errors"
)

// Params are the transport parameters of the remote endpoint.
type Params struct {
	IceParameters  *ortc.IceParameters
	IceCandidates  []ortc.IceCandidate
	DtlsParameters *ortc.DtlsParameters
	SctpParameters *ortc.SctpParameters
}

// Option configures a RemoteSdp.
type Option func(*RemoteSdp)

// WithLoggerFactory sets the logger factory the RemoteSdp logs through.
func WithLoggerFactory(f logging.LoggerFactory) Option {
	return func(r *RemoteSdp) {
		r.log = f.NewLogger("remotesdp")
	}
}

// WithAPI sets the API used to render the description, e.g. to change the
// order attributes are written in.
func WithAPI(api *sdptransform.API) Option {
	return func(r *RemoteSdp) {
		r.api = api
	}
}

// MediaSectionIdx is the position the next media section takes. ReuseMid is
// set when that position is a closed section to recycle.
type MediaSectionIdx struct {
	Idx      int
	ReuseMid string
}

// RemoteSdp is the remote description of a transport. It is not safe for
// concurrent use.
type RemoteSdp struct {
	iceParameters  *ortc.IceParameters
	iceCandidates  []ortc.IceCandidate
	dtlsParameters *ortc.DtlsParameters
	sctpParameters *ortc.SctpParameters

	mediaSections []MediaSection
	midToIndex    map[string]int
	firstMid      string

	sdpObject sdptransform.Object
	bundle    sdptransform.Object

	api *sdptransform.API
	log logging.LeveledLogger
}

// New creates the remote description of a transport with params.
func New(params Params, options ...Option) (*RemoteSdp, error) {
	sessionID, err := randutil.CryptoUint64()
	if err != nil {
		return nil, errors.Wrap(err, "generating session id")
	}

	r := &RemoteSdp{
		iceParameters:  params.IceParameters,
		iceCandidates:  params.IceCandidates,
		sctpParameters: params.SctpParameters,
		midToIndex:     map[string]int{},
		sdpObject: sdptransform.Object{
			"version": 0,
			"origin": sdptransform.Object{
				"username":       "pion",
				"sessionId":      strconv.FormatUint(sessionID&^(uint64(1)<<63), 10),
				"sessionVersion": 0,
				"netType":        "IN",
				"ipVer":          4,
				"address":        "0.0.0.0",
			},
			"name":   "-",
			"timing": sdptransform.Object{"start": 0, "stop": 0},
		},
	}

	for _, o := range options {
		o(r)
	}
	if r.api == nil {
		r.api = sdptransform.NewAPI()
	}
	if r.log == nil {
		r.log = logging.NewDefaultLoggerFactory().NewLogger("remotesdp")
	}

	if r.iceParameters != nil && r.iceParameters.IceLite {
		r.sdpObject["icelite"] = "ice-lite"
	}

	if params.DtlsParameters != nil {
		fingerprints := params.DtlsParameters.Fingerprints
		if len(fingerprints) == 0 {
			return nil, ErrNoFingerprints
		}

		r.dtlsParameters = &ortc.DtlsParameters{
			Role:         params.DtlsParameters.Role,
			Fingerprints: append([]ortc.DtlsFingerprint{}, fingerprints...),
		}

		r.sdpObject["msidSemantic"] = sdptransform.Object{
			"semantic": sdp.SemanticTokenWebRTCMediaStreams,
			"token":    "*",
		}
		last := fingerprints[len(fingerprints)-1]
		r.sdpObject["fingerprint"] = sdptransform.Object{"type": last.Algorithm, "hash": last.Value}

		r.bundle = sdptransform.Object{"type": "BUNDLE", "mids": ""}
		r.sdpObject["groups"] = []sdptransform.Object{r.bundle}
	}

	return r, nil
}

// UpdateIceParameters replaces the ICE credentials of every media section.
func (r *RemoteSdp) UpdateIceParameters(params ortc.IceParameters) {
	r.iceParameters = &params

	if params.IceLite {
		r.sdpObject["icelite"] = "ice-lite"
	} else {
		delete(r.sdpObject, "icelite")
	}

	for _, m := range r.mediaSections {
		m.SetIceParameters(params)
	}
}

// UpdateDtlsRole applies role to every media section.
func (r *RemoteSdp) UpdateDtlsRole(role ortc.DtlsRole) {
	if r.dtlsParameters != nil {
		r.dtlsParameters.Role = role
	}

	for _, m := range r.mediaSections {
		m.SetDtlsRole(role)
	}
}

// GetNextMediaSectionIdx returns the first closed section, or the position
// after the last one.
func (r *RemoteSdp) GetNextMediaSectionIdx() MediaSectionIdx {
	for idx, m := range r.mediaSections {
		if m.Closed() {
			return MediaSectionIdx{Idx: idx, ReuseMid: m.Mid()}
		}
	}
	return MediaSectionIdx{Idx: len(r.mediaSections)}
}

// SendOptions describe a local sending section to answer.
type SendOptions struct {
	OfferMediaObject sdptransform.Object
	// ReuseMid is the mid of a closed section the answer replaces.
	ReuseMid            string
	OfferRtpParameters  *ortc.RtpParameters
	AnswerRtpParameters *ortc.RtpParameters
	CodecOptions        *CodecOptions
	ExtmapAllowMixed    bool
}

// Send answers a section of the local offer the local endpoint sends on.
func (r *RemoteSdp) Send(opts SendOptions) error {
	m := NewAnswerMediaSection(AnswerOptions{
		IceParameters:       r.iceParameters,
		IceCandidates:       r.iceCandidates,
		DtlsParameters:      r.dtlsParameters,
		OfferMediaObject:    opts.OfferMediaObject,
		OfferRtpParameters:  opts.OfferRtpParameters,
		AnswerRtpParameters: opts.AnswerRtpParameters,
		CodecOptions:        opts.CodecOptions,
		ExtmapAllowMixed:    opts.ExtmapAllowMixed,
	})

	switch _, exists := r.midToIndex[m.Mid()]; {
	case opts.ReuseMid != "":
		return r.replaceMediaSection(m, opts.ReuseMid)
	case !exists:
		r.addMediaSection(m)
		return nil
	default:
		return r.replaceMediaSection(m, "")
	}
}

// ReceiveOptions describe a section the remote endpoint sends on.
type ReceiveOptions struct {
	Mid                string
	Kind               ortc.MediaKind
	OfferRtpParameters *ortc.RtpParameters
	StreamID           string
	TrackID            string
}

// Receive offers a section the local endpoint receives on. A closed section
// is recycled when there is one, whatever its kind.
func (r *RemoteSdp) Receive(opts ReceiveOptions) error {
	if _, exists := r.midToIndex[opts.Mid]; exists {
		return errors.Wrapf(ErrDuplicateMid, "%q", opts.Mid)
	}

	m := NewOfferMediaSection(OfferOptions{
		IceParameters:      r.iceParameters,
		IceCandidates:      r.iceCandidates,
		Mid:                opts.Mid,
		Kind:               opts.Kind,
		OfferRtpParameters: opts.OfferRtpParameters,
		StreamID:           opts.StreamID,
		TrackID:            opts.TrackID,
	})

	for _, old := range r.mediaSections {
		if old.Closed() {
			return r.replaceMediaSection(m, old.Mid())
		}
	}

	r.addMediaSection(m)
	return nil
}

// SendSctpAssociation answers the application section of the local offer.
func (r *RemoteSdp) SendSctpAssociation(offerMediaObject sdptransform.Object) {
	r.addMediaSection(NewAnswerMediaSection(AnswerOptions{
		IceParameters:    r.iceParameters,
		IceCandidates:    r.iceCandidates,
		DtlsParameters:   r.dtlsParameters,
		SctpParameters:   r.sctpParameters,
		OfferMediaObject: offerMediaObject,
	}))
}

// ReceiveSctpAssociation offers an application section with mid
// "datachannel".
func (r *RemoteSdp) ReceiveSctpAssociation(oldDataChannelSpec bool) {
	r.addMediaSection(NewOfferMediaSection(OfferOptions{
		IceParameters:      r.iceParameters,
		IceCandidates:      r.iceCandidates,
		SctpParameters:     r.sctpParameters,
		Mid:                "datachannel",
		Kind:               "application",
		OldDataChannelSpec: oldDataChannelSpec,
	}))
}

// DisableMediaSection disables the section with mid.
func (r *RemoteSdp) DisableMediaSection(mid string) error {
	idx, ok := r.midToIndex[mid]
	if !ok {
		return errors.Wrapf(ErrMediaSectionNotFound, "%q", mid)
	}

	r.mediaSections[idx].Disable()
	return nil
}

// CloseMediaSection closes the section with mid and reports whether it did.
// The first section carries the BUNDLE transport, so it is disabled instead.
func (r *RemoteSdp) CloseMediaSection(mid string) (bool, error) {
	idx, ok := r.midToIndex[mid]
	if !ok {
		return false, errors.Wrapf(ErrMediaSectionNotFound, "%q", mid)
	}

	if mid == r.firstMid {
		r.log.Debugf("Cannot close first media section, disabling it instead [mid:%s]", mid)
		return false, r.DisableMediaSection(mid)
	}

	r.mediaSections[idx].Close()
	r.regenerateBundleMids()

	return true, nil
}

// GetSdp bumps the origin session version and renders the description.
func (r *RemoteSdp) GetSdp() (string, error) {
	origin := r.sdpObject.Object("origin")
	origin["sessionVersion"] = origin.Int("sessionVersion") + 1

	media := make([]sdptransform.Object, 0, len(r.mediaSections))
	for _, m := range r.mediaSections {
		media = append(media, m.Object())
	}
	r.sdpObject["media"] = media

	return r.api.Write(r.sdpObject)
}

func (r *RemoteSdp) addMediaSection(m MediaSection) {
	if r.firstMid == "" {
		r.firstMid = m.Mid()
	}

	r.mediaSections = append(r.mediaSections, m)
	r.midToIndex[m.Mid()] = len(r.mediaSections) - 1
	r.log.Tracef("Added media section [mid:%s]", m.Mid())

	r.regenerateBundleMids()
}

// replaceMediaSection puts m in place of the section with reuseMid, or of
// the section sharing its mid when reuseMid is empty.
func (r *RemoteSdp) replaceMediaSection(m MediaSection, reuseMid string) error {
	if reuseMid == "" {
		idx, ok := r.midToIndex[m.Mid()]
		if !ok {
			return errors.Wrapf(ErrMediaSectionNotFound, "%q", m.Mid())
		}
		r.mediaSections[idx] = m
		return nil
	}

	idx, ok := r.midToIndex[reuseMid]
	if !ok {
		return errors.Wrapf(ErrMediaSectionNotFound, "%q", reuseMid)
	}

	delete(r.midToIndex, r.mediaSections[idx].Mid())
	r.mediaSections[idx] = m
	r.midToIndex[m.Mid()] = idx
	r.log.Tracef("Replaced media section [mid:%s] with [mid:%s]", reuseMid, m.Mid())

	r.regenerateBundleMids()
	return nil
}

func (r *RemoteSdp) regenerateBundleMids() {
	if r.bundle == nil {
		return
	}

	mids := make([]string, 0, len(r.mediaSections))
	for _, m := range r.mediaSections {
		if !m.Closed() {
			mids = append(mids, m.Mid())
		}
	}
	r.bundle["mids"] = strings.Join(mids, " ")
}
