package ports

// NoiseModel exposes a read-only noise description attached to an
// observation: a set of PSD component keys with, per key, a PSD table and a
// unique integer index, and per (detector, key) a scalar mixing weight.
type NoiseModel interface {
	// Keys returns the PSD component keys in a stable order.
	Keys() []string

	// Freq returns the PSD frequency points for a key. Frequencies are
	// non-negative, strictly increasing, and include the Nyquist frequency
	// of the target sample rate within 1%.
	Freq(key string) []float64

	// PSD returns the non-negative PSD values for a key.
	PSD(key string) []float64

	// Index returns the unique PSD stream index for a key.
	Index(key string) uint64

	// Weight returns the scalar coupling of a component into a detector.
	Weight(det, key string) float64
}

// ObservationPort is the view of the external data container that noise
// simulation needs. Implementations own the detector lists, shared
// timestamp arrays, and per-detector output buffers.
type ObservationPort interface {
	// UID returns the unique observation index.
	UID() uint64

	// TelescopeID returns the unique telescope index.
	TelescopeID() uint64

	// GlobalOffset returns the observation's offset into a global sample
	// stream, zero when unspecified.
	GlobalOffset() uint64

	// LocalDetectors returns the locally-owned detectors, restricted to the
	// requested selection when it is non-nil.
	LocalDetectors(selection []string) []string

	// SharedTimes returns the shared timestamp array stored under key.
	SharedTimes(key string) []float64

	// NoiseModel returns the noise model stored under key, if present.
	NoiseModel(key string) (NoiseModel, bool)

	// SampleRanks returns the number of processes the sample range is
	// split across. Noise simulation requires this to be 1.
	SampleRanks() int

	// LocalSamples returns the number of locally-owned samples.
	LocalSamples() int

	// LocalSampleOffset returns the local-to-global sample index offset.
	LocalSampleOffset() uint64

	// EnsureDetData lazily creates a zero-initialized per-detector output
	// buffer of n samples under key for every local detector. Existing
	// buffers are left untouched.
	EnsureDetData(key string, n int)

	// AccumulateDetData adds weight*samples into the detector's buffer
	// under key. Accumulation, not assignment: components layer additively.
	AccumulateDetData(key, det string, weight float64, samples []float64)
}
