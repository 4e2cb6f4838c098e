/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package metrics

// Metrics records pairing engine activity. It decouples the commands from
// the Prometheus implementation.
type Metrics interface {
	ObservePairingDuration(algorithm string, seconds float64)
	IncPairingFailures(algorithm string)
	IncRoundsApplied()
}
