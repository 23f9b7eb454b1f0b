package ports

import (
	"todsim/domain/stream"
)

// KeystreamPort provides counter-based deterministic random number
// generation. The same stream.Key always yields the same values, independent
// of history, process, or thread; the counter advances internally by one
// unit per scalar output, so callers can reproduce any sub-range of a stream
// by seeking the counter.
type KeystreamPort interface {
	// Gaussian returns n IID standard-normal draws starting at the key's
	// counter position.
	Gaussian(key stream.Key, n int) []float64

	// Uniform returns n IID draws on the open interval (0, 1) starting at
	// the key's counter position. Gaussian(k, n)[i] is a pure function of
	// Uniform(k, n)[i].
	Uniform(key stream.Key, n int) []float64
}
