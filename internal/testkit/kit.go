// Package testkit provides in-memory implementations of the observation and
// noise-model ports, plus synthetic data builders, for tests and drivers.
package testkit

import (
	"gonum.org/v1/gonum/floats"

	"todsim/ports"
)

// MemNoiseModel is an in-memory noise model with a stable key order.
type MemNoiseModel struct {
	keys    []string
	freq    map[string][]float64
	psd     map[string][]float64
	index   map[string]uint64
	weights map[string]map[string]float64 // det -> key -> weight
}

// NewMemNoiseModel creates an empty noise model.
func NewMemNoiseModel() *MemNoiseModel {
	return &MemNoiseModel{
		freq:    make(map[string][]float64),
		psd:     make(map[string][]float64),
		index:   make(map[string]uint64),
		weights: make(map[string]map[string]float64),
	}
}

// AddComponent registers a PSD component under key with a unique stream
// index. Keys iterate in insertion order.
func (m *MemNoiseModel) AddComponent(key string, index uint64, freq, psd []float64) *MemNoiseModel {
	m.keys = append(m.keys, key)
	m.freq[key] = freq
	m.psd[key] = psd
	m.index[key] = index
	return m
}

// SetWeight couples a component into a detector.
func (m *MemNoiseModel) SetWeight(det, key string, weight float64) *MemNoiseModel {
	if m.weights[det] == nil {
		m.weights[det] = make(map[string]float64)
	}
	m.weights[det][key] = weight
	return m
}

func (m *MemNoiseModel) Keys() []string            { return m.keys }
func (m *MemNoiseModel) Freq(key string) []float64 { return m.freq[key] }
func (m *MemNoiseModel) PSD(key string) []float64  { return m.psd[key] }
func (m *MemNoiseModel) Index(key string) uint64   { return m.index[key] }
func (m *MemNoiseModel) Weight(det, key string) float64 {
	return m.weights[det][key]
}

// MemObservation is an in-memory observation container implementing
// ports.ObservationPort, with per-detector additive output buffers.
type MemObservation struct {
	ID           uint64
	Telescope    uint64
	Offset       uint64 // global sample offset
	Detectors    []string
	Ranks        int
	Samples      int
	SampleOffset uint64
	Shared       map[string][]float64
	Models       map[string]ports.NoiseModel
	DetData      map[string]map[string][]float64
}

// NewMemObservation creates an observation with evenly spaced timestamps at
// the given rate under the "times" shared key, owned by a single process.
func NewMemObservation(id, telescope uint64, dets []string, rate float64, samples int) *MemObservation {
	return &MemObservation{
		ID:        id,
		Telescope: telescope,
		Detectors: dets,
		Ranks:     1,
		Samples:   samples,
		Shared:    map[string][]float64{"times": SyntheticTimes(samples, rate, 0)},
		Models:    make(map[string]ports.NoiseModel),
		DetData:   make(map[string]map[string][]float64),
	}
}

// SetModel attaches a noise model under the given observation key.
func (o *MemObservation) SetModel(key string, model ports.NoiseModel) *MemObservation {
	o.Models[key] = model
	return o
}

func (o *MemObservation) UID() uint64               { return o.ID }
func (o *MemObservation) TelescopeID() uint64       { return o.Telescope }
func (o *MemObservation) GlobalOffset() uint64      { return o.Offset }
func (o *MemObservation) SampleRanks() int          { return o.Ranks }
func (o *MemObservation) LocalSamples() int         { return o.Samples }
func (o *MemObservation) LocalSampleOffset() uint64 { return o.SampleOffset }

func (o *MemObservation) LocalDetectors(selection []string) []string {
	if selection == nil {
		return append([]string(nil), o.Detectors...)
	}
	requested := make(map[string]bool, len(selection))
	for _, det := range selection {
		requested[det] = true
	}
	var dets []string
	for _, det := range o.Detectors {
		if requested[det] {
			dets = append(dets, det)
		}
	}
	return dets
}

func (o *MemObservation) SharedTimes(key string) []float64 {
	return o.Shared[key]
}

func (o *MemObservation) NoiseModel(key string) (ports.NoiseModel, bool) {
	model, ok := o.Models[key]
	return model, ok
}

func (o *MemObservation) EnsureDetData(key string, n int) {
	if o.DetData[key] == nil {
		o.DetData[key] = make(map[string][]float64)
	}
	for _, det := range o.Detectors {
		if o.DetData[key][det] == nil {
			o.DetData[key][det] = make([]float64, n)
		}
	}
}

func (o *MemObservation) AccumulateDetData(key, det string, weight float64, samples []float64) {
	floats.AddScaled(o.DetData[key][det], weight, samples)
}

// SyntheticTimes returns n evenly spaced timestamps at the given rate.
func SyntheticTimes(n int, rate, start float64) []float64 {
	times := make([]float64, n)
	for i := range times {
		times[i] = start + float64(i)/rate
	}
	return times
}
