// Package config holds the one immutable configuration value the
// pipeline threads through every stage. There is no package-level
// mutable state here: callers build a Config (or load one from YAML)
// and pass it by value to urh.AnalyzeIQ via urh.WithConfig.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ChecksumAlgorithm names one entry of the trailing-checksum
// catalogue the format finder tries, in the order given. Width is in
// bits; the default catalogue is ordered widest-first, and the finder
// does not reorder a catalogue it is given.
type ChecksumAlgorithm struct {
	Name       string `yaml:"name"`
	Width      int    `yaml:"width"`      // 8, 16, or 32
	Polynomial uint32 `yaml:"polynomial"` // ignored when Additive is true
	Init       uint32 `yaml:"init"`
	RefIn      bool   `yaml:"ref_in"`
	RefOut     bool   `yaml:"ref_out"`
	XorOut     uint32 `yaml:"xor_out"`
	Additive   bool   `yaml:"additive"` // byte-sum mod 2^Width instead of CRC
}

// Config collects every tunable default named across spec section 4.
// Zero value is not meaningful; use Default() or Load().
type Config struct {
	// Noise Estimator (section 4.C)
	NoiseWindow   int     `yaml:"noise_window"`
	NoiseQuantile float64 `yaml:"noise_quantile"`
	NoiseFloor    float64 `yaml:"noise_floor"`

	// Message Segmenter (section 4.D)
	HysteresisIn  float64 `yaml:"hysteresis_in"`
	HysteresisOut float64 `yaml:"hysteresis_out"`
	MinPause      int     `yaml:"min_pause"`
	MinPlateau    int     `yaml:"min_plateau"`

	// Symbol-Rate Estimator (section 4.F)
	RunLengthTolerance float64 `yaml:"run_length_tolerance"`

	// Center & Tolerance (section 4.G)
	TwoMeansEpsilon   float64 `yaml:"two_means_epsilon"`
	MinClusterShare   float64 `yaml:"min_cluster_share"`
	ToleranceFraction float64 `yaml:"tolerance_fraction"`

	// Demodulator (section 4.H)
	MaxAmbiguousSymbolFraction float64 `yaml:"max_ambiguous_symbol_fraction"`

	// Modulation Classifier (section 4.E)
	ModulationAmbiguityBand float64 `yaml:"modulation_ambiguity_band"`

	// Format Finder (section 4.I). AddressFieldWidths and
	// SequenceWidths record the widths the address and sequence-number
	// stages use; those stages have the widths built in and do not
	// read these two fields.
	MinPreambleBits    int                 `yaml:"min_preamble_bits"`
	MinSyncBits        int                 `yaml:"min_sync_bits"`
	LengthFieldWidths  []int               `yaml:"length_field_widths"`
	AddressFieldWidths []int               `yaml:"address_field_widths"`
	SequenceWidths     []int               `yaml:"sequence_widths"`
	ChecksumCatalogue  []ChecksumAlgorithm `yaml:"checksum_catalogue"`
}

// Default returns the configuration spec section 4 names as the
// implementation's defaults.
func Default() Config {
	return Config{
		NoiseWindow:   64,
		NoiseQuantile: 0.05,
		NoiseFloor:    1e-6,

		HysteresisIn:  0.1,
		HysteresisOut: 0.05,
		MinPause:      1000,
		MinPlateau:    10,

		RunLengthTolerance: 0.10,

		TwoMeansEpsilon:   1e-6,
		MinClusterShare:   0.05,
		ToleranceFraction: 0.05,

		MaxAmbiguousSymbolFraction: 0.25,
		ModulationAmbiguityBand:    0.10,

		MinPreambleBits:    8,
		MinSyncBits:        8,
		LengthFieldWidths:  []int{4, 8, 12, 16},
		AddressFieldWidths: []int{8, 16, 24, 32, 48, 64},
		SequenceWidths:     []int{8, 16},
		ChecksumCatalogue:  DefaultChecksumCatalogue(),
	}
}

// DefaultChecksumCatalogue is the catalogue named in spec section 9's
// open question: CRC-8, CRC-16/CCITT-FALSE (the polynomial family the
// teacher's IL2P trailing-CRC feature documents for AX.25/IL2P
// frames), CRC-16/IBM, CRC-32 (IEEE 802.3), plus the two additive
// fallbacks spec section 4.I.6 names directly.
// Entries are ordered widest-first (ties broken CRC before additive,
// in the order listed) since the format finder's checksum stage
// (spec section 4.I.6) wants "the largest c such that some ...
// algorithm ... reproduces the trailing c bits for every message."
func DefaultChecksumCatalogue() []ChecksumAlgorithm {
	return []ChecksumAlgorithm{
		{Name: "CRC-32", Width: 32, Polynomial: 0xEDB88320, Init: 0xFFFFFFFF, RefIn: true, RefOut: true, XorOut: 0xFFFFFFFF},
		{Name: "CRC-16/CCITT-FALSE", Width: 16, Polynomial: 0x1021, Init: 0xFFFF},
		{Name: "CRC-16/IBM", Width: 16, Polynomial: 0x8005, Init: 0x0000, RefIn: true, RefOut: true},
		{Name: "SUM-16", Width: 16, Additive: true},
		{Name: "CRC-8", Width: 8, Polynomial: 0x07, Init: 0x00},
		{Name: "SUM-8", Width: 8, Additive: true},
	}
}

// Load reads a Config from a YAML file, starting from Default() so a
// file only needs to override the fields it cares about.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
