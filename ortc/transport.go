// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ortc

import (
	"crypto/x509"
	"strings"

	"github.com/pion/dtls/v3/pkg/crypto/fingerprint"
	"github.com/pion/ice/v4"
	"github.com/pion/sdptransform/pkg/rtcerr"
	"github.com/pkg/errors"
)

// IceParameters are the ICE credentials of a transport.
type IceParameters struct {
	UsernameFragment string `json:"usernameFragment"`
	Password         string `json:"password"`
	IceLite          bool   `json:"iceLite,omitempty"`
}

// IceCandidateType is the type of an ICE candidate.
type IceCandidateType string

// List of ICE candidate types.
const (
	IceCandidateTypeHost  IceCandidateType = "host"
	IceCandidateTypeSrflx IceCandidateType = "srflx"
	IceCandidateTypePrflx IceCandidateType = "prflx"
	IceCandidateTypeRelay IceCandidateType = "relay"
)

// IceCandidate is a transport address a peer can be reached at.
type IceCandidate struct {
	Foundation     string           `json:"foundation"`
	Priority       uint32           `json:"priority"`
	IP             string           `json:"ip"`
	Protocol       string           `json:"protocol"`
	Port           uint16           `json:"port"`
	Type           IceCandidateType `json:"type"`
	TCPType        string           `json:"tcpType,omitempty"`
	RelatedAddress string           `json:"relatedAddress,omitempty"`
	RelatedPort    uint16           `json:"relatedPort,omitempty"`
}

// ParseIceCandidate parses the value of a candidate attribute, with or
// without the leading "candidate:".
func ParseIceCandidate(raw string) (IceCandidate, error) {
	c, err := ice.UnmarshalCandidate(strings.TrimPrefix(raw, "candidate:"))
	if err != nil {
		return IceCandidate{}, &rtcerr.SyntaxError{Err: err}
	}

	var typ IceCandidateType
	switch c.Type() {
	case ice.CandidateTypeHost:
		typ = IceCandidateTypeHost
	case ice.CandidateTypeServerReflexive:
		typ = IceCandidateTypeSrflx
	case ice.CandidateTypePeerReflexive:
		typ = IceCandidateTypePrflx
	case ice.CandidateTypeRelay:
		typ = IceCandidateTypeRelay
	default:
		return IceCandidate{}, errors.Wrapf(ErrUnknownCandidateType, "%s", c.Type())
	}

	candidate := IceCandidate{
		Foundation: c.Foundation(),
		Priority:   c.Priority(),
		IP:         c.Address(),
		Protocol:   c.NetworkType().NetworkShort(),
		Port:       uint16(c.Port()), //nolint:gosec // G115
		Type:       typ,
	}
	if candidate.Protocol == "tcp" {
		candidate.TCPType = c.TCPType().String()
	}
	if rel := c.RelatedAddress(); rel != nil {
		candidate.RelatedAddress = rel.Address
		candidate.RelatedPort = uint16(rel.Port) //nolint:gosec // G115
	}

	return candidate, nil
}

// DtlsRole indicates the role of the DTLS transport.
type DtlsRole string

// List of DTLS roles.
const (
	DtlsRoleAuto   DtlsRole = "auto"
	DtlsRoleClient DtlsRole = "client"
	DtlsRoleServer DtlsRole = "server"
)

// DtlsFingerprint specifies the hash function algorithm and certificate
// fingerprint.
type DtlsFingerprint struct {
	// Algorithm specifies one of the hash function algorithms defined in
	// the 'Hash function Textual Names' registry.
	Algorithm string `json:"algorithm"`

	// Value specifies the value of the certificate fingerprint in lowercase
	// hex string as expressed utilizing the syntax of 'fingerprint' in
	// https://tools.ietf.org/html/rfc4572#section-5.
	Value string `json:"value"`
}

// NewDtlsFingerprint computes the fingerprint of cert with the named hash
// algorithm, e.g. "sha-256".
func NewDtlsFingerprint(cert *x509.Certificate, algorithm string) (DtlsFingerprint, error) {
	algorithm = strings.ToLower(algorithm)

	hash, err := fingerprint.HashFromString(algorithm)
	if err != nil {
		return DtlsFingerprint{}, &rtcerr.NotSupportedError{Err: err}
	}

	value, err := fingerprint.Fingerprint(cert, hash)
	if err != nil {
		return DtlsFingerprint{}, err
	}

	return DtlsFingerprint{Algorithm: algorithm, Value: value}, nil
}

// Validate checks that the fingerprint names a known algorithm and, when
// cert is not nil, that cert hashes to Value.
func (f DtlsFingerprint) Validate(cert *x509.Certificate) error {
	if f.Value == "" {
		return &rtcerr.TypeError{Err: errMissingFingerprintHash}
	}

	hash, err := fingerprint.HashFromString(strings.ToLower(f.Algorithm))
	if err != nil {
		return &rtcerr.NotSupportedError{Err: err}
	}
	if cert == nil {
		return nil
	}

	value, err := fingerprint.Fingerprint(cert, hash)
	if err != nil {
		return err
	}
	if !strings.EqualFold(value, f.Value) {
		return ErrFingerprintMismatch
	}

	return nil
}

// DtlsParameters are the DTLS role and certificate fingerprints of a
// transport.
type DtlsParameters struct {
	Role         DtlsRole          `json:"role,omitempty"`
	Fingerprints []DtlsFingerprint `json:"fingerprints"`
}

// SctpParameters describes the SCTP association of a transport.
type SctpParameters struct {
	Port           uint16 `json:"port"`
	OS             uint16 `json:"OS"`
	MIS            uint16 `json:"MIS"`
	MaxMessageSize uint32 `json:"maxMessageSize"`
}
