// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package sdptransform converts between SDP text and a structured session
// document, line for line, in both directions.
package sdptransform

import (
	"github.com/pion/logging"
)

// API bundles the parser and writer with the settings they run under.
// The package level Parse and Write functions use a default API.
type API struct {
	settingEngine *SettingEngine
	log           logging.LeveledLogger
}

// NewAPI creates a new API object for keeping semi-global settings.
func NewAPI(options ...func(*API)) *API {
	a := &API{}

	for _, o := range options {
		o(a)
	}

	if a.settingEngine == nil {
		a.settingEngine = &SettingEngine{}
	}

	if a.settingEngine.LoggerFactory == nil {
		a.settingEngine.LoggerFactory = logging.NewDefaultLoggerFactory()
	}

	a.log = a.settingEngine.LoggerFactory.NewLogger("sdp")

	return a
}

// WithSettingEngine allows providing a SettingEngine to the API.
// Settings should not be changed after passing the engine to an API.
func WithSettingEngine(s SettingEngine) func(a *API) {
	return func(a *API) {
		a.settingEngine = &s
	}
}

var defaultAPI = NewAPI() //nolint:gochecknoglobals

// Parse parses sdp with the default API.
func Parse(sdp string) Object {
	return defaultAPI.Parse(sdp)
}

// Write renders session with the default API.
func Write(session Object) (string, error) {
	return defaultAPI.Write(session)
}

// WriteJSON renders a JSON encoded session document with the default API.
func WriteJSON(session []byte) (string, error) {
	return defaultAPI.WriteJSON(session)
}
