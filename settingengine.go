// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdptransform

import (
	"github.com/pion/logging"
	"github.com/pkg/errors"
)

const (
	defaultOuterOrder = "vosiuepcbtrza"
	defaultInnerOrder = "icba"
)

// SettingEngine allows influencing behavior in ways that are not covered by
// the plain Parse and Write functions. Settings should not be changed after
// passing the engine to an API.
type SettingEngine struct {
	writeOrder struct {
		outer string
		inner string
	}
	LoggerFactory logging.LoggerFactory
}

// SetWriteOrder overrides the order in which line types are rendered.
// outer applies to the session level, inner to every media section after its
// m= line. An empty string keeps the default for that level.
func (e *SettingEngine) SetWriteOrder(outer, inner string) error {
	if err := checkWriteOrder(outer); err != nil {
		return errors.Wrap(err, "outer order")
	}
	if err := checkWriteOrder(inner); err != nil {
		return errors.Wrap(err, "inner order")
	}

	e.writeOrder.outer = outer
	e.writeOrder.inner = inner

	return nil
}

func (e *SettingEngine) outerOrder() string {
	if e.writeOrder.outer == "" {
		return defaultOuterOrder
	}
	return e.writeOrder.outer
}

func (e *SettingEngine) innerOrder() string {
	if e.writeOrder.inner == "" {
		return defaultInnerOrder
	}
	return e.writeOrder.inner
}

func checkWriteOrder(order string) error {
	for i := 0; i < len(order); i++ {
		c := order[i]
		if c == 'm' {
			return errMediaInWriteOrder
		}
		if _, ok := grammar[c]; !ok {
			return errors.Wrapf(ErrUnknownLineType, "%q", c)
		}
	}
	return nil
}
