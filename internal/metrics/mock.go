/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package metrics

import "sync"

// Noop discards every observation.
type Noop struct{}

func (Noop) ObservePairingDuration(string, float64) {}
func (Noop) IncPairingFailures(string) {}
func (Noop) IncRoundsApplied() {}

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	pairingDurations map[string][]float64
	pairingFailures  map[string]int
	roundsApplied    int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		pairingDurations: make(map[string][]float64),
		pairingFailures:  make(map[string]int),
	}
}

func (m *Mock) ObservePairingDuration(algorithm string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairingDurations[algorithm] = append(m.pairingDurations[algorithm],
		seconds)
}

func (m *Mock) IncPairingFailures(algorithm string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairingFailures[algorithm]++
}

func (m *Mock) IncRoundsApplied() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsApplied++
}

// PairingObservations returns how many durations were observed for
// algorithm.
func (m *Mock) PairingObservations(algorithm string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pairingDurations[algorithm])
}

// PairingFailures returns the number of failures recorded for algorithm.
func (m *Mock) PairingFailures(algorithm string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pairingFailures[algorithm]
}

// RoundsApplied returns the number of times IncRoundsApplied was called.
func (m *Mock) RoundsApplied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsApplied
}
