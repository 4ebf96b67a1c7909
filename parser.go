// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdptransform

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var validLine = regexp.MustCompile(`^([a-z])=(.*)`)

// Parse turns SDP text into a session document. It never fails: lines that
// are not of the form <letter>=<value> are skipped, attributes no rule
// understands are kept verbatim under "invalid".
func (api *API) Parse(sdp string) Object {
	session := Object{}
	var media []Object

	// location is where session or media level fields land. It is the last
	// media section once the first m= line has been seen.
	location := session

	for n, line := range strings.Split(sdp, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !validLine.MatchString(line) {
			if line != "" {
				api.log.Tracef("dropping malformed line %d: %q", n+1, line)
			}
			continue
		}

		typ := line[0]
		content := line[2:]

		if typ == 'm' {
			location = Object{"rtp": []Object{}, "fmtp": []Object{}}
			media = append(media, location)
		}

		rules, ok := grammar[typ]
		if !ok {
			api.log.Tracef("no grammar for line %d: %q", n+1, line)
			continue
		}

		matched := false
		for _, r := range rules {
			if r.regexp().MatchString(content) {
				parseReg(r, location, content)
				matched = true
				break
			}
		}
		if !matched {
			api.log.Tracef("line %d did not match its grammar: %q", n+1, line)
		}
	}

	if media == nil {
		media = []Object{}
	}
	session["media"] = media

	return session
}

func parseReg(r rule, location Object, content string) {
	match := r.regexp().FindStringSubmatch(content)
	needsBlank := r.name != "" && len(r.names) > 0

	switch {
	case r.push != "":
		entry := Object{}
		attachProperties(match, entry, r)
		location.Append(r.push, entry)
	case needsBlank:
		nested := location.Object(r.name)
		if nested == nil {
			nested = Object{}
			location[r.name] = nested
		}
		attachProperties(match, nested, r)
	default:
		attachProperties(match, location, r)
	}
}

func attachProperties(match []string, location Object, r rule) {
	if r.name != "" && len(r.names) == 0 {
		var raw string
		if len(match) > 1 {
			raw = match[1]
		}
		location[r.name] = coerce(raw, r.kind)
		return
	}

	for i, c := range r.names {
		if i+1 >= len(match) || match[i+1] == "" {
			continue
		}
		location[c.name] = coerce(match[i+1], c.kind)
	}
}

// coerce converts a captured string to the declared kind. Values that do not
// parse become 0, matching how the writer later renders them.
func coerce(raw string, kind valueKind) interface{} {
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0
		}
		return n
	case kindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0.0
		}
		return f
	default:
		return raw
	}
}
