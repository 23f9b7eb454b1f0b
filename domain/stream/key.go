// Package stream defines the 128-bit key and counter construction that maps
// simulation identifiers onto disjoint pseudo-random streams.
package stream

// Key fully determines one pseudo-random stream. The key halves identify the
// stream and the counter halves identify a position within it, so the same
// Key always yields the same values regardless of process, thread, or call
// order.
type Key struct {
	KeyHi     uint64
	KeyLo     uint64
	CounterHi uint64 // reserved, always zero for noise synthesis
	CounterLo uint64
}

// NewKey packs simulation identifiers into a stream key:
//
//	KeyHi = realization*2^32 + telescope*2^16 + component
//	KeyLo = obsUID*2^32 + detIndex
//
// Every (realization, telescope, component, observation, detector)
// combination maps to a distinct key, so no two synthesis requests ever
// alias random values. The counter starts at zero.
func NewKey(realization, telescope, component, obsUID, detIndex uint64) Key {
	return Key{
		KeyHi: realization<<32 + telescope<<16 + component,
		KeyLo: obsUID<<32 + detIndex,
	}
}

// AtSample returns a copy of the key with the counter positioned at the
// first oversampled draw for the given starting sample. Requests for a
// sub-range of samples reproduce exactly the corresponding sub-range of a
// full-range request.
func (k Key) AtSample(firstSample uint64, oversample int) Key {
	k.CounterLo = firstSample * uint64(oversample)
	return k
}

// Advance returns a copy of the key with the counter moved forward by n
// scalar draws, carrying into the high half on wraparound.
func (k Key) Advance(n uint64) Key {
	lo := k.CounterLo + n
	if lo < k.CounterLo {
		k.CounterHi++
	}
	k.CounterLo = lo
	return k
}
