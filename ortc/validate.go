// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ortc

import (
	"regexp"
	"strings"

	"github.com/pion/sdptransform/internal/util"
	"github.com/pion/sdptransform/pkg/rtcerr"
	"github.com/pkg/errors"
)

var ridPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)

// ValidateRtpCapabilities checks caps and fills in optional members: codec
// kind from its mime type, one channel for audio codecs that do not say, and
// sendrecv for header extensions without direction. All problems found are
// returned together.
func ValidateRtpCapabilities(caps *RtpCapabilities) error {
	var errs []error

	for i := range caps.Codecs {
		errs = append(errs, validateRtpCodecCapability(&caps.Codecs[i]))
	}
	for i := range caps.HeaderExtensions {
		errs = append(errs, validateRtpHeaderExtension(&caps.HeaderExtensions[i]))
	}

	return util.FlattenErrs(errs)
}

func validateRtpCodecCapability(codec *RtpCodecCapability) error {
	kind, err := validateMimeType(codec.MimeType)
	if err != nil {
		return err
	}
	codec.Kind = kind

	if codec.ClockRate == 0 {
		return &rtcerr.TypeError{Err: errors.Wrap(errMissingClockRate, codec.MimeType)}
	}

	if codec.Kind == MediaKindAudio && codec.Channels == 0 {
		codec.Channels = 1
	}

	if codec.Parameters == nil {
		codec.Parameters = RtpCodecSpecificParameters{}
	}

	return validateRtcpFeedback(codec.RtcpFeedback)
}

func validateMimeType(mimeType string) (MediaKind, error) {
	kind := kindOf(mimeType)
	if (kind != MediaKindAudio && kind != MediaKindVideo) || nameOf(mimeType) == "" {
		return "", &rtcerr.TypeError{Err: errors.Wrapf(errInvalidMimeType, "%q", mimeType)}
	}
	return kind, nil
}

func validateRtcpFeedback(feedback []RtcpFeedback) error {
	for _, fb := range feedback {
		if fb.Type == "" {
			return &rtcerr.TypeError{Err: errMissingFeedbackType}
		}
	}
	return nil
}

func validateRtpHeaderExtension(ext *RtpHeaderExtension) error {
	if ext.Kind != MediaKindAudio && ext.Kind != MediaKindVideo {
		return &rtcerr.TypeError{Err: errors.Wrapf(errInvalidExtKind, "%q", ext.Kind)}
	}
	if ext.URI == "" {
		return &rtcerr.TypeError{Err: errMissingExtURI}
	}
	if ext.PreferredID == 0 {
		return &rtcerr.TypeError{Err: errors.Wrap(errMissingExtPreferredID, ext.URI)}
	}
	if ext.Direction == "" {
		ext.Direction = DirectionSendrecv
	}
	return nil
}

// ValidateRtpParameters checks params and fills in optional members: one
// channel for audio codecs that do not say and reduced size RTCP.
func ValidateRtpParameters(params *RtpParameters) error {
	var errs []error

	for i := range params.Codecs {
		errs = append(errs, validateRtpCodecParameters(&params.Codecs[i]))
	}
	for _, ext := range params.HeaderExtensions {
		switch {
		case ext.URI == "":
			errs = append(errs, &rtcerr.TypeError{Err: errMissingExtURI})
		case ext.ID == 0:
			errs = append(errs, &rtcerr.TypeError{Err: errors.Wrap(errMissingExtID, ext.URI)})
		}
	}
	for _, enc := range params.Encodings {
		if enc.RID != "" && !ridPattern.MatchString(enc.RID) {
			errs = append(errs, &rtcerr.TypeError{Err: errors.Wrapf(errInvalidEncodingRID, "%q", enc.RID)})
		}
	}

	if params.Rtcp.ReducedSize == nil {
		reducedSize := true
		params.Rtcp.ReducedSize = &reducedSize
	}

	return util.FlattenErrs(errs)
}

func validateRtpCodecParameters(codec *RtpCodecParameters) error {
	kind, err := validateMimeType(codec.MimeType)
	if err != nil {
		return err
	}

	if codec.ClockRate == 0 {
		return &rtcerr.TypeError{Err: errors.Wrap(errMissingClockRate, codec.MimeType)}
	}

	if kind == MediaKindAudio && codec.Channels == 0 {
		codec.Channels = 1
	}

	if codec.Parameters == nil {
		codec.Parameters = RtpCodecSpecificParameters{}
	}

	if isRtxMimeType(codec.MimeType) {
		if _, ok := codec.Parameters.Int("apt"); !ok {
			return &rtcerr.TypeError{Err: errors.Errorf("missing apt parameter in %s codec %d",
				strings.ToLower(codec.MimeType), codec.PayloadType)}
		}
	}

	return validateRtcpFeedback(codec.RtcpFeedback)
}
