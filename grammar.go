// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdptransform

import (
	"regexp"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
)

// capture names one regexp submatch and the type it is coerced to.
type capture struct {
	name string
	kind valueKind
}

func str(name string) capture { return capture{name, kindString} }
func num(name string) capture { return capture{name, kindInt} }
func flt(name string) capture { return capture{name, kindFloat} }

// rule recognizes one line type, or one attribute for a=.
//
// A rule with only name stores its first submatch under name. A rule with
// name and names stores the submatches in a nested object under name. A rule
// with push appends a new object holding the submatches to the list push.
// Rules with neither name nor push (the m= line) write onto the location.
type rule struct {
	name  string
	push  string
	reg   *regexp.Regexp
	names []capture
	kind  valueKind

	// format is the template used by the writer. formatFunc, when set, picks
	// the template from the fields present on the value being written and
	// must agree with which submatches the parser can leave empty.
	format     string
	formatFunc func(Object) string
}

var catchAll = regexp.MustCompile(`(.*)`)

func (r rule) regexp() *regexp.Regexp {
	if r.reg == nil {
		return catchAll
	}
	return r.reg
}

func (r rule) template(o Object) string {
	if r.formatFunc != nil {
		return r.formatFunc(o)
	}
	if r.format == "" {
		return "%s"
	}
	return r.format
}

func when(o Object, key, yes, no string) string {
	if o.Has(key) {
		return yes
	}
	return no
}

var grammar = map[byte][]rule{
	'v': {{
		name: "version",
		reg:  regexp.MustCompile(`^(\d*)$`),
		kind: kindInt,
	}},
	'o': {{
		// o=- 20518 0 IN IP4 203.0.113.1
		// sessionId is kept as a string, it routinely overflows 64 bits.
		name:   "origin",
		reg:    regexp.MustCompile(`^(\S*) (\d*) (\d*) (\S*) IP(\d) (\S*)`),
		names:  []capture{str("username"), str("sessionId"), num("sessionVersion"), str("netType"), num("ipVer"), str("address")},
		format: "%s %s %d %s IP%d %s",
	}},
	's': {{name: "name"}},
	'i': {{name: "description"}},
	'u': {{name: "uri"}},
	'e': {{name: "email"}},
	'p': {{name: "phone"}},
	'z': {{name: "timezones"}},
	'r': {{name: "repeats"}},
	't': {{
		// t=0 0
		name:   "timing",
		reg:    regexp.MustCompile(`^(\d*) (\d*)`),
		names:  []capture{num("start"), num("stop")},
		format: "%d %d",
	}},
	'c': {{
		// c=IN IP4 10.47.197.26
		name:   "connection",
		reg:    regexp.MustCompile(`^IN IP(\d) (\S*)`),
		names:  []capture{num("version"), str("ip")},
		format: "IN IP%d %s",
	}},
	'b': {{
		// b=AS:4000
		push:   "bandwidth",
		reg:    regexp.MustCompile(`^(TIAS|AS|CT|RR|RS):(\d*)`),
		names:  []capture{str("type"), num("limit")},
		format: "%s:%s",
	}},
	'm': {{
		// m=video 51744 RTP/AVP 126 97 98 34 31
		reg:    regexp.MustCompile(`^(\w*) (\d*) ([\w/]*)(?: (.*))?`),
		names:  []capture{str("type"), num("port"), str("protocol"), str("payloads")},
		format: "%s %d %s %s",
	}},
	'a': attributeRules,
}

var attributeRules = []rule{
	{
		// a=rtpmap:110 opus/48000/2
		push:  "rtp",
		reg:   regexp.MustCompile(`^rtpmap:(\d*) ([\w\-.]*)(?:\s*/(\d*)(?:\s*/(\S*))?)?`),
		names: []capture{num("payload"), str("codec"), num("rate"), num("encoding")},
		formatFunc: func(o Object) string {
			switch {
			case o.Has("encoding"):
				return "rtpmap:%d %s/%s/%s"
			case o.Has("rate"):
				return "rtpmap:%d %s/%s"
			default:
				return "rtpmap:%d %s"
			}
		},
	},
	{
		// a=fmtp:108 profile-level-id=24;object=23;bitrate=64000
		push:   "fmtp",
		reg:    regexp.MustCompile(`^fmtp:(\d*) ([\S| ]*)`),
		names:  []capture{num("payload"), str("config")},
		format: "fmtp:%d %s",
	},
	{
		// a=control:streamid=0
		name:   "control",
		reg:    regexp.MustCompile(`^control:(.*)`),
		format: "control:%s",
	},
	{
		// a=rtcp:65179 IN IP4 193.84.77.194
		name:  "rtcp",
		reg:   regexp.MustCompile(`^rtcp:(\d*)(?: (\S*) IP(\d) (\S*))?`),
		names: []capture{num("port"), str("netType"), num("ipVer"), str("address")},
		formatFunc: func(o Object) string {
			return when(o, "address", "rtcp:%d %s IP%d %s", "rtcp:%d")
		},
	},
	{
		// a=rtcp-fb:98 trr-int 100
		push:   "rtcpFbTrrInt",
		reg:    regexp.MustCompile(`^rtcp-fb:(\*|\d*) trr-int (\d*)`),
		names:  []capture{str("payload"), num("value")},
		format: "rtcp-fb:%s trr-int %d",
	},
	{
		// a=rtcp-fb:98 nack rpsi
		push:  "rtcpFb",
		reg:   regexp.MustCompile(`^rtcp-fb:(\*|\d*) ([\w\-_]*)(?: ([\w\-_]*))?`),
		names: []capture{str("payload"), str("type"), str("subtype")},
		formatFunc: func(o Object) string {
			return when(o, "subtype", "rtcp-fb:%s %s %s", "rtcp-fb:%s %s")
		},
	},
	{
		// a=extmap:2 urn:ietf:params:rtp-hdrext:toffset
		// a=extmap:1/recvonly URI-gps-string
		// a=extmap:3 urn:ietf:params:rtp-hdrext:encrypt urn:ietf:params:rtp-hdrext:smpte-tc 25@600/24
		push:  "ext",
		reg:   regexp.MustCompile(`^extmap:(\d+)(?:/(\w+))?(?: (urn:ietf:params:rtp-hdrext:encrypt))? (\S*)(?: (\S*))?`),
		names: []capture{num("value"), str("direction"), str("encrypt-uri"), str("uri"), str("config")},
		formatFunc: func(o Object) string {
			return "extmap:%d" +
				when(o, "direction", "/%s", "%v") +
				when(o, "encrypt-uri", " %s", "%v") +
				" %s" +
				when(o, "config", " %s", "")
		},
	},
	{
		// a=extmap-allow-mixed
		name: "extmapAllowMixed",
		reg:  regexp.MustCompile(`^(extmap-allow-mixed)`),
	},
	{
		// a=crypto:1 AES_CM_128_HMAC_SHA1_80 inline:PS1uQCVeeCFCanVmcjkpPywjNWhcYD0mXXtxaVBR|2^20|1:32
		push:  "crypto",
		reg:   regexp.MustCompile(`^crypto:(\d*) ([\w_]*) (\S*)(?: (\S*))?`),
		names: []capture{num("id"), str("suite"), str("config"), str("sessionConfig")},
		formatFunc: func(o Object) string {
			return when(o, "sessionConfig", "crypto:%d %s %s %s", "crypto:%d %s %s")
		},
	},
	{
		// a=setup:actpass
		name:   "setup",
		reg:    regexp.MustCompile(`^setup:(\w*)`),
		format: "setup:%s",
	},
	{
		// a=connection:new
		name:   "connectionType",
		reg:    regexp.MustCompile(`^connection:(new|existing)`),
		format: "connection:%s",
	},
	{
		// a=mid:1
		name:   "mid",
		reg:    regexp.MustCompile(`^mid:([^\s]*)`),
		format: "mid:%s",
	},
	{
		// a=msid:0c8b064d-d807-43b4-b434-f92a889d8587 98178685-d409-46e0-8e16-7ef0db0db64a
		name:   "msid",
		reg:    regexp.MustCompile(`^msid:(.*)`),
		format: "msid:%s",
	},
	{
		// a=ptime:20
		name:   "ptime",
		reg:    regexp.MustCompile(`^ptime:(\d*(?:\.\d*)*)`),
		kind:   kindFloat,
		format: "ptime:%d",
	},
	{
		// a=maxptime:60
		name:   "maxptime",
		reg:    regexp.MustCompile(`^maxptime:(\d*(?:\.\d*)*)`),
		kind:   kindFloat,
		format: "maxptime:%d",
	},
	{
		// a=sendrecv
		name: "direction",
		reg:  regexp.MustCompile(`^(sendrecv|recvonly|sendonly|inactive)`),
	},
	{
		// a=ice-lite
		name: "icelite",
		reg:  regexp.MustCompile(`^(ice-lite)`),
	},
	{
		// a=ice-ufrag:F7gI
		name:   "iceUfrag",
		reg:    regexp.MustCompile(`^ice-ufrag:(\S*)`),
		format: "ice-ufrag:%s",
	},
	{
		// a=ice-pwd:x9cml/YzichV2+XlhiMu8g
		name:   "icePwd",
		reg:    regexp.MustCompile(`^ice-pwd:(\S*)`),
		format: "ice-pwd:%s",
	},
	{
		// a=fingerprint:SHA-1 00:11:22:33:44:55:66:77:88:99:AA:BB:CC:DD:EE:FF:00:11:22:33
		name:   "fingerprint",
		reg:    regexp.MustCompile(`^fingerprint:(\S*) (\S*)`),
		names:  []capture{str("type"), str("hash")},
		format: "fingerprint:%s %s",
	},
	{
		// a=candidate:0 1 UDP 2113667327 203.0.113.1 54400 typ host
		// a=candidate:3289912957 2 udp 1845501695 193.84.77.194 60017 typ srflx raddr 192.168.34.75 rport 60017 generation 0 network-id 3 network-cost 10
		// a=candidate:229815620 1 tcp 1518280447 192.168.150.19 60017 typ host tcptype active generation 0 network-id 3 network-cost 10
		push: "candidates",
		reg: regexp.MustCompile(`^candidate:(\S*) (\d*) (\S*) (\d*) (\S*) (\d*) typ (\S*)` +
			`(?: raddr (\S*) rport (\d*))?(?: tcptype (\S*))?(?: generation (\d*))?` +
			`(?: network-id (\d*))?(?: network-cost (\d*))?`),
		names: []capture{
			str("foundation"), num("component"), str("transport"), num("priority"),
			str("ip"), num("port"), str("type"), str("raddr"), num("rport"),
			str("tcptype"), num("generation"), num("network-id"), num("network-cost"),
		},
		formatFunc: func(o Object) string {
			// Every optional chunk voids its placeholders when missing so the
			// following chunks stay aligned with their values.
			return "candidate:%s %d %s %d %s %d typ %s" +
				when(o, "raddr", " raddr %s rport %d", "%v%v") +
				when(o, "tcptype", " tcptype %s", "%v") +
				when(o, "generation", " generation %d", "%v") +
				when(o, "network-id", " network-id %d", "%v") +
				when(o, "network-cost", " network-cost %d", "%v")
		},
	},
	{
		// a=end-of-candidates
		name: "endOfCandidates",
		reg:  regexp.MustCompile(`^(end-of-candidates)`),
	},
	{
		// a=remote-candidates:1 203.0.113.1 54400 2 203.0.113.1 54401
		name:   "remoteCandidates",
		reg:    regexp.MustCompile(`^remote-candidates:(.*)`),
		format: "remote-candidates:%s",
	},
	{
		// a=ice-options:google-ice
		name:   "iceOptions",
		reg:    regexp.MustCompile(`^ice-options:(\S*)`),
		format: "ice-options:%s",
	},
	{
		// a=ssrc:2566107569 cname:t9YU8M1UxTF8Y1A1
		push:  "ssrcs",
		reg:   regexp.MustCompile(`^ssrc:(\d*) ([\w_-]*)(?::(.*))?`),
		names: []capture{num("id"), str("attribute"), str("value")},
		formatFunc: func(o Object) string {
			line := "ssrc:%d"
			if o.Has("attribute") {
				line += " %s"
				if o.Has("value") {
					line += ":%s"
				}
			}
			return line
		},
	},
	{
		// a=ssrc-group:FEC-FR 3004364195 1080772241
		push:   "ssrcGroups",
		reg:    regexp.MustCompile(`^ssrc-group:([\x21\x23\x24\x25\x26\x27\x2A\x2B\x2D\x2E\w]*) (.*)`),
		names:  []capture{str("semantics"), str("ssrcs")},
		format: "ssrc-group:%s %s",
	},
	{
		// a=msid-semantic: WMS Jvlam5X3SX1OP6pn20zWogvaKJz5Hjf9OnlV
		name:   "msidSemantic",
		reg:    regexp.MustCompile(`^msid-semantic:\s?(\w*) (\S*)`),
		names:  []capture{str("semantic"), str("token")},
		format: "msid-semantic: %s %s",
	},
	{
		// a=group:BUNDLE audio video
		push:   "groups",
		reg:    regexp.MustCompile(`^group:(\w*) (.*)`),
		names:  []capture{str("type"), str("mids")},
		format: "group:%s %s",
	},
	{
		// a=rtcp-mux
		name: "rtcpMux",
		reg:  regexp.MustCompile(`^(rtcp-mux)`),
	},
	{
		// a=rtcp-rsize
		name: "rtcpRsize",
		reg:  regexp.MustCompile(`^(rtcp-rsize)`),
	},
	{
		// a=sctpmap:5000 webrtc-datachannel 1024
		name:  "sctpmap",
		reg:   regexp.MustCompile(`^sctpmap:([\w_/]*) (\S*)(?: (\S*))?`),
		names: []capture{num("sctpmapNumber"), str("app"), num("maxMessageSize")},
		formatFunc: func(o Object) string {
			return when(o, "maxMessageSize", "sctpmap:%s %s %s", "sctpmap:%s %s")
		},
	},
	{
		// a=x-google-flag:conference
		name:   "xGoogleFlag",
		reg:    regexp.MustCompile(`^x-google-flag:([^\s]*)`),
		format: "x-google-flag:%s",
	},
	{
		// a=rid:1 send max-width=1280;max-height=720;max-fps=30;depend=0
		push:  "rids",
		reg:   regexp.MustCompile(`^rid:([\d\w]+) (\w+)(?: ([\S| ]*))?`),
		names: []capture{str("id"), str("direction"), str("params")},
		formatFunc: func(o Object) string {
			return when(o, "params", "rid:%s %s %s", "rid:%s %s")
		},
	},
	{
		// a=imageattr:97 send [x=800,y=640,sar=1.1,q=0.6] [x=480,y=320] recv [x=330,y=250]
		// a=imageattr:* send [x=800,y=640] recv *
		push: "imageattrs",
		reg: regexp.MustCompile(`^imageattr:(\d+|\*)` +
			`[\s\t]+(send|recv)[\s\t]+(\*|\[\S+\](?:[\s\t]+\[\S+\])*)` +
			`(?:[\s\t]+(recv|send)[\s\t]+(\*|\[\S+\](?:[\s\t]+\[\S+\])*))?`),
		names: []capture{str("pt"), str("dir1"), str("attrs1"), str("dir2"), str("attrs2")},
		formatFunc: func(o Object) string {
			return "imageattr:%s %s %s" + when(o, "dir2", " %s %s", "")
		},
	},
	{
		// a=simulcast:send 1,2,3;~4,~5 recv 6;~7,~8
		// a=simulcast:recv 1;4,5 send 6;7
		name: "simulcast",
		reg: regexp.MustCompile(`^simulcast:` +
			`(send|recv) ([a-zA-Z0-9\-_~;,]+)` +
			`(?:\s?(send|recv) ([a-zA-Z0-9\-_~;,]+))?$`),
		names: []capture{str("dir1"), str("list1"), str("dir2"), str("list2")},
		formatFunc: func(o Object) string {
			return "simulcast:%s %s" + when(o, "dir2", " %s %s", "")
		},
	},
	{
		// simulcast draft 03, still sent by some Firefox versions
		// a=simulcast: recv pt=97;98 send pt=97
		// a=simulcast: send rid=5;6;7 paused=6,7
		name:   "simulcast_03",
		reg:    regexp.MustCompile(`^simulcast:[\s\t]+([\S+\s\t]+)$`),
		names:  []capture{str("value")},
		format: "simulcast: %s",
	},
	{
		// a=framerate:25
		// a=framerate:29.97
		name:   "framerate",
		reg:    regexp.MustCompile(`^framerate:(\d+(?:$|\.\d+))`),
		kind:   kindFloat,
		format: "framerate:%s",
	},
	{
		// RFC 4570
		// a=source-filter: incl IN IP4 239.5.2.31 10.1.15.5
		name:   "sourceFilter",
		reg:    regexp.MustCompile(`^source-filter: *(excl|incl) (\S*) (IP4|IP6|\*) (\S*) (.*)`),
		names:  []capture{str("filterMode"), str("netType"), str("addressTypes"), str("destAddress"), str("srcList")},
		format: "source-filter: %s %s %s %s %s",
	},
	{
		// a=bundle-only
		name: "bundleOnly",
		reg:  regexp.MustCompile(`^(bundle-only)`),
	},
	{
		// a=label:1
		name:   "label",
		reg:    regexp.MustCompile(`^label:(.+)`),
		format: "label:%s",
	},
	{
		// draft-ietf-mmusic-sctp-sdp-26 section 5
		name:   "sctpPort",
		reg:    regexp.MustCompile(`^sctp-port:(\d+)$`),
		kind:   kindInt,
		format: "sctp-port:%s",
	},
	{
		// draft-ietf-mmusic-sctp-sdp-26 section 6
		name:   "maxMessageSize",
		reg:    regexp.MustCompile(`^max-message-size:(\d+)$`),
		kind:   kindInt,
		format: "max-message-size:%s",
	},
	{
		// RFC 7273
		// a=ts-refclk:ptp=IEEE1588-2008:39-A7-94-FF-FE-07-CB-D0:37
		push:  "tsRefClocks",
		reg:   regexp.MustCompile(`^ts-refclk:([^\s=]*)(?:=(\S*))?`),
		names: []capture{str("clksrc"), str("clksrcExt")},
		formatFunc: func(o Object) string {
			return "ts-refclk:%s" + when(o, "clksrcExt", "=%s", "")
		},
	},
	{
		// RFC 7273
		// a=mediaclk:direct=963214424
		name:  "mediaClk",
		reg:   regexp.MustCompile(`^mediaclk:(?:id=(\S*))? *([^\s=]*)(?:=(\S*))?(?: *rate=(\d+)/(\d+))?`),
		names: []capture{str("id"), str("mediaClockName"), str("mediaClockValue"), num("rateNumerator"), num("rateDenominator")},
		formatFunc: func(o Object) string {
			return "mediaclk:" +
				when(o, "id", "id=%s %s", "%v%s") +
				when(o, "mediaClockValue", "=%s", "%v") +
				when(o, "rateNumerator", " rate=%s", "%v") +
				when(o, "rateDenominator", "/%s", "")
		},
	},
	{
		// a=keywds:keywords
		name:   "keywords",
		reg:    regexp.MustCompile(`^keywds:(.+)$`),
		format: "keywds:%s",
	},
	{
		// a=content:main
		name:   "content",
		reg:    regexp.MustCompile(`^content:(.+)`),
		format: "content:%s",
	},
	{
		// RFC 4583
		// a=floorctrl:c-s
		name:   "bfcpFloorCtrl",
		reg:    regexp.MustCompile(`^floorctrl:(c-only|s-only|c-s)`),
		format: "floorctrl:%s",
	},
	{
		// a=confid:1
		name:   "bfcpConfId",
		reg:    regexp.MustCompile(`^confid:(\d+)`),
		kind:   kindInt,
		format: "confid:%s",
	},
	{
		// a=userid:1
		name:   "bfcpUserId",
		reg:    regexp.MustCompile(`^userid:(\d+)`),
		kind:   kindInt,
		format: "userid:%s",
	},
	{
		// a=floorid:1 mstrm:10
		name:   "bfcpFloorId",
		reg:    regexp.MustCompile(`^floorid:(.+) (?:m-stream|mstrm):(.+)`),
		names:  []capture{str("id"), str("mStream")},
		format: "floorid:%s mstrm:%s",
	},
	{
		// Any a= line nothing above understands is kept verbatim. Must stay last.
		push:  "invalid",
		names: []capture{str("value")},
	},
}
