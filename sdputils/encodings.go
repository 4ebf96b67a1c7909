// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdputils

import (
	"strconv"
	"strings"

	"github.com/pion/sdp/v3"
	"github.com/pion/sdptransform"
	"github.com/pion/sdptransform/ortc"
	"github.com/pkg/errors"
)

// GetRtpEncodings returns one encoding per media SSRC of media. SSRCs paired
// by an FID group become the RTX SSRC of their encoding.
func GetRtpEncodings(media sdptransform.Object) ([]ortc.RtpEncodingParameters, error) {
	var ssrcs []uint32
	pending := map[uint32]bool{}
	for _, line := range media.List("ssrcs") {
		ssrc := uint32(line.Int("id")) //nolint:gosec // G115
		if !pending[ssrc] {
			pending[ssrc] = true
			ssrcs = append(ssrcs, ssrc)
		}
	}
	if len(ssrcs) == 0 {
		return nil, ErrNoSsrc
	}

	encodings := []ortc.RtpEncodingParameters{}
	for _, group := range media.List("ssrcGroups") {
		if group.String("semantics") != sdp.SemanticTokenFlowIdentification {
			continue
		}

		pair, err := parseSsrcs(group.String("ssrcs"))
		if err != nil {
			log.Warnf("Failed to parse FID group %q: %v", group.String("ssrcs"), err)
			continue
		}
		if len(pair) != 2 {
			log.Warnf("Ignoring FID group with %d SSRCs", len(pair))
			continue
		}

		ssrc, rtxSsrc := pair[0], pair[1]
		if !pending[ssrc] {
			continue
		}
		delete(pending, ssrc)
		delete(pending, rtxSsrc)

		encodings = append(encodings, ortc.RtpEncodingParameters{
			SSRC: ssrc,
			RTX:  &ortc.RtpEncodingRtx{SSRC: rtxSsrc},
		})
	}

	for _, ssrc := range ssrcs {
		if pending[ssrc] {
			encodings = append(encodings, ortc.RtpEncodingParameters{SSRC: ssrc})
		}
	}

	return encodings, nil
}

// AddLegacySimulcast rewrites the a=ssrc and a=ssrc-group lines of media into
// a SIM group of numStreams consecutive SSRCs, each with its own FID group
// when the section uses RTX. It serves engines that only understand
// SSRC based simulcast.
func AddLegacySimulcast(media sdptransform.Object, numStreams int) error {
	if numStreams <= 1 {
		return errors.Wrapf(ErrInvalidNumStreams, "%d", numStreams)
	}

	var msidLine, cnameLine sdptransform.Object
	for _, line := range media.List("ssrcs") {
		switch {
		case msidLine == nil && line.String("attribute") == "msid":
			msidLine = line
		case cnameLine == nil && line.String("attribute") == "cname":
			cnameLine = line
		}
	}
	if msidLine == nil {
		return ErrNoMsid
	}
	if cnameLine == nil {
		return ErrNoCname
	}

	firstSsrc := uint32(msidLine.Int("id")) //nolint:gosec // G115
	var firstRtxSsrc uint32
	for _, group := range media.List("ssrcGroups") {
		if group.String("semantics") != sdp.SemanticTokenFlowIdentification {
			continue
		}
		pair, err := parseSsrcs(group.String("ssrcs"))
		if err != nil {
			log.Warnf("Failed to parse FID group %q: %v", group.String("ssrcs"), err)
			continue
		}
		if len(pair) == 2 && pair[0] == firstSsrc {
			firstRtxSsrc = pair[1]
			break
		}
	}

	cname := cnameLine.String("value")
	msid := msidLine.String("value")

	ssrcs := make([]string, 0, numStreams)
	lines := []sdptransform.Object{}
	groups := []sdptransform.Object{}
	for i := 0; i < numStreams; i++ {
		ssrc := int(firstSsrc) + i
		ssrcs = append(ssrcs, strconv.Itoa(ssrc))
		lines = append(lines,
			sdptransform.Object{"id": ssrc, "attribute": "cname", "value": cname},
			sdptransform.Object{"id": ssrc, "attribute": "msid", "value": msid},
		)
	}
	groups = append(groups, sdptransform.Object{"semantics": "SIM", "ssrcs": strings.Join(ssrcs, " ")})

	if firstRtxSsrc != 0 {
		for i := 0; i < numStreams; i++ {
			rtxSsrc := int(firstRtxSsrc) + i
			lines = append(lines,
				sdptransform.Object{"id": rtxSsrc, "attribute": "cname", "value": cname},
				sdptransform.Object{"id": rtxSsrc, "attribute": "msid", "value": msid},
			)
			groups = append(groups, sdptransform.Object{
				"semantics": sdp.SemanticTokenFlowIdentification,
				"ssrcs":     ssrcs[i] + " " + strconv.Itoa(rtxSsrc),
			})
		}
	}

	media["ssrcs"] = lines
	media["ssrcGroups"] = groups

	return nil
}

func parseSsrcs(list string) ([]uint32, error) {
	fields := strings.Fields(list)
	ssrcs := make([]uint32, 0, len(fields))
	for _, f := range fields {
		ssrc, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, err
		}
		ssrcs = append(ssrcs, uint32(ssrc))
	}
	return ssrcs, nil
}
