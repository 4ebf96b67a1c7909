// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdptransform

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Write renders a session document as SDP text. Missing version, name and
// media fields are filled with defaults, session itself is left untouched.
func (api *API) Write(session Object) (string, error) {
	if session == nil {
		return "", ErrSessionNotObject
	}

	session = api.withDefaults(session)

	var b strings.Builder

	outer := api.settingEngine.outerOrder()
	for i := 0; i < len(outer); i++ {
		writeRules(&b, outer[i], session)
	}

	mRule := grammar['m'][0]
	inner := api.settingEngine.innerOrder()
	for _, media := range session.Media() {
		writeLine(&b, 'm', mRule, media)
		for i := 0; i < len(inner); i++ {
			writeRules(&b, inner[i], media)
		}
	}

	return b.String(), nil
}

// WriteJSON renders a JSON encoded session document.
func (api *API) WriteJSON(session []byte) (string, error) {
	var doc interface{}
	if err := json.Unmarshal(session, &doc); err != nil {
		return "", errors.Wrap(err, "decoding session description")
	}

	obj := toObject(doc)
	if obj == nil {
		return "", ErrSessionNotObject
	}

	return api.Write(obj)
}

func (api *API) withDefaults(session Object) Object {
	out := make(Object, len(session)+3)
	for k, v := range session {
		out[k] = v
	}

	if !out.Has("version") {
		api.log.Trace("session has no version, writing 0")
		out["version"] = 0
	}
	if !out.Has("name") {
		api.log.Trace("session has no name, writing -")
		out["name"] = "-"
	}

	media := out.Media()
	withPayloads := make([]Object, 0, len(media))
	for _, m := range media {
		if !m.Has("payloads") {
			cp := make(Object, len(m)+1)
			for k, v := range m {
				cp[k] = v
			}
			cp["payloads"] = ""
			m = cp
		}
		withPayloads = append(withPayloads, m)
	}
	out["media"] = withPayloads

	return out
}

func writeRules(b *strings.Builder, typ byte, location Object) {
	for _, r := range grammar[typ] {
		switch {
		case r.name != "" && location.Has(r.name):
			writeLine(b, typ, r, location)
		case r.push != "" && location.Has(r.push):
			for _, entry := range location.List(r.push) {
				writeLine(b, typ, r, entry)
			}
		}
	}
}

func writeLine(b *strings.Builder, typ byte, r rule, location Object) {
	var args []interface{}
	var template string

	switch {
	case len(r.names) == 0:
		args = []interface{}{location[r.name]}
		template = r.template(nil)
	case r.name != "":
		nested := location.Object(r.name)
		for _, c := range r.names {
			args = append(args, nested[c.name])
		}
		template = r.template(nested)
	default:
		for _, c := range r.names {
			args = append(args, location[c.name])
		}
		template = r.template(location)
	}

	b.WriteByte(typ)
	b.WriteByte('=')
	format(b, template, args)
	b.WriteString("\r\n")
}

// format expands %s, %d and %v against args in order. %v consumes an argument
// without output, %% is a literal percent sign. Absent arguments render as
// nothing.
func format(b *strings.Builder, template string, args []interface{}) {
	next := 0
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' || i+1 == len(template) {
			b.WriteByte(c)
			continue
		}

		switch template[i+1] {
		case '%':
			b.WriteByte('%')
		case 's', 'd':
			if next < len(args) {
				b.WriteString(formatValue(args[next]))
			}
			next++
		case 'v':
			next++
		default:
			b.WriteByte(c)
			continue
		}
		i++
	}
}
