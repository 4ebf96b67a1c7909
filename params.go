// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdptransform

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseParams parses a ;-separated key=value list as found in fmtp configs
// and rid restrictions. A key without value maps to "". Values that are
// written in canonical integer or decimal form become int or float64, all
// others stay strings so they render back exactly as they were.
func ParseParams(str string) Object {
	params := Object{}
	for _, expr := range strings.Split(str, ";") {
		parseParam(params, expr)
	}
	return params
}

// ParseFmtpConfig parses the config field of an fmtp entry.
func ParseFmtpConfig(config string) Object {
	return ParseParams(config)
}

func parseParam(params Object, expr string) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return
	}

	kv := strings.SplitN(expr, "=", 2)
	key := strings.TrimSpace(kv[0])
	if key == "" {
		return
	}
	if len(kv) == 1 {
		params[key] = ""
		return
	}
	params[key] = toNumberIfNumber(strings.TrimSpace(kv[1]))
}

func toNumberIfNumber(s string) interface{} {
	if i, err := strconv.Atoi(s); err == nil && strconv.Itoa(i) == s {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) &&
		strconv.FormatFloat(f, 'f', -1, 64) == s {
		return f
	}
	return s
}

// ParsePayloads parses the payloads field of a media section.
func ParsePayloads(str string) ([]int, error) {
	fields := strings.Fields(str)
	payloads := make([]int, 0, len(fields))
	for _, f := range fields {
		pt, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidPayloads, "%q", f)
		}
		payloads = append(payloads, pt)
	}
	return payloads, nil
}

// ImageAttributes is one side of an a=imageattr line. Either Wildcard is set
// or Sets holds one entry per bracketed set, e.g. [x=1280,y=720].
type ImageAttributes struct {
	Wildcard bool
	Sets     []Object
}

// ParseImageAttributes parses the attrs1 or attrs2 field of an imageattr
// entry.
func ParseImageAttributes(str string) ImageAttributes {
	if strings.TrimSpace(str) == "*" {
		return ImageAttributes{Wildcard: true}
	}

	attrs := ImageAttributes{}
	for _, item := range strings.Fields(str) {
		item = strings.TrimSuffix(strings.TrimPrefix(item, "["), "]")
		set := Object{}
		for _, expr := range strings.Split(item, ",") {
			parseParam(set, expr)
		}
		attrs.Sets = append(attrs.Sets, set)
	}
	return attrs
}

// SimulcastStream is one stream id of a simulcast list.
type SimulcastStream struct {
	Scid   string `json:"scid"`
	Paused bool   `json:"paused"`
}

// ParseSimulcastStreamList parses the list1 or list2 field of a simulcast
// entry. The outer slice holds the ;-separated streams, the inner one the
// ,-separated alternatives of each stream.
func ParseSimulcastStreamList(str string) [][]SimulcastStream {
	var streams [][]SimulcastStream
	for _, stream := range strings.Split(str, ";") {
		var alternatives []SimulcastStream
		for _, format := range strings.Split(stream, ",") {
			s := SimulcastStream{Scid: format}
			if strings.HasPrefix(format, "~") {
				s.Scid = format[1:]
				s.Paused = true
			}
			alternatives = append(alternatives, s)
		}
		streams = append(streams, alternatives)
	}
	return streams
}

// RemoteCandidate is one entry of an a=remote-candidates line.
type RemoteCandidate struct {
	Component int    `json:"component"`
	IP        string `json:"ip"`
	Port      int    `json:"port"`
}

// ParseRemoteCandidates parses the remoteCandidates field. A trailing partial
// triple is ignored.
func ParseRemoteCandidates(str string) []RemoteCandidate {
	parts := strings.Fields(str)
	var candidates []RemoteCandidate
	for i := 0; i+2 < len(parts); i += 3 {
		component, _ := strconv.Atoi(parts[i])
		port, _ := strconv.Atoi(parts[i+2])
		candidates = append(candidates, RemoteCandidate{
			Component: component,
			IP:        parts[i+1],
			Port:      port,
		})
	}
	return candidates
}
