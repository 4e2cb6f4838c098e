/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"errors"
	"fmt"
)

var (
	ErrSelfPairing      = errors.New("swiss: player and opponent share an id")
	ErrInvalidScore     = errors.New("swiss: negative game count")
	ErrInvalidPlayerID  = errors.New("swiss: player id must be non-negative")
	ErrDuplicatePlayer  = errors.New("swiss: player id already registered")
	ErrUnknownPlayer    = errors.New("swiss: unknown player id")
	ErrRoundStarted     = errors.New("swiss: players cannot be added once play has begun")
	ErrDuplicatePairing = errors.New("swiss: player received more than one result in a round")
	ErrNoPairing        = errors.New("swiss: no satisfying pairing")
)

// NoPairingError is returned when a pairing algorithm cannot find a legal
// assignment within its search bounds. It matches ErrNoPairing.
type NoPairingError struct {
	Algorithm string
	Players   int
	// MaxWindow is the widest look-ahead tried; 0 for unbounded searches.
	MaxWindow int
}

func (e *NoPairingError) Error() string {
	if e.MaxWindow > 0 {
		return fmt.Sprintf("%v: %v pairing of %d players (window up to %d)",
			ErrNoPairing, e.Algorithm, e.Players, e.MaxWindow)
	}
	return fmt.Sprintf("%v: %v pairing of %d players", ErrNoPairing,
		e.Algorithm, e.Players)
}

func (e *NoPairingError) Is(target error) bool {
	return target == ErrNoPairing
}
