package audio

import (
	"encoding/binary"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// MeterBands is the number of level bars produced per frame.
	MeterBands = 16
	meterSize  = 1024
	// Magnitudes at or below this are silence; fullScale maps to 1.
	meterFloorDB = -60.0
)

// Meter turns a block of 16-bit stereo PCM into per-band levels in [0,1].
// Bands are spaced logarithmically over the spectrum.
type Meter struct {
	fft    *fourier.FFT
	window []float64
	frame  []float64
	edges  []int
}

// NewMeter builds a meter with MeterBands bands.
func NewMeter() *Meter {
	m := &Meter{
		fft:    fourier.NewFFT(meterSize),
		window: make([]float64, meterSize),
		frame:  make([]float64, meterSize),
		edges:  make([]int, MeterBands+1),
	}
	for i := range m.window {
		m.window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(meterSize-1)))
	}

	bins := meterSize / 2
	for b := 0; b <= MeterBands; b++ {
		edge := int(math.Round(math.Pow(float64(bins), float64(b)/MeterBands)))
		if b > 0 && edge <= m.edges[b-1] {
			edge = m.edges[b-1] + 1
		}
		if edge > bins {
			edge = bins
		}
		m.edges[b] = edge
	}
	return m
}

// Levels analyses up to meterSize frames of pcm. Short blocks are zero
// padded.
func (m *Meter) Levels(pcm []byte) []float64 {
	for i := range m.frame {
		m.frame[i] = 0
		off := i * 4
		if off+4 > len(pcm) {
			continue
		}
		l := int16(binary.LittleEndian.Uint16(pcm[off:]))
		r := int16(binary.LittleEndian.Uint16(pcm[off+2:]))
		m.frame[i] = (float64(l) + float64(r)) / 2 / math.MaxInt16 * m.window[i]
	}

	spectrum := m.fft.Coefficients(nil, m.frame)
	levels := make([]float64, MeterBands)
	norm := float64(meterSize) / 4
	for b := 0; b < MeterBands; b++ {
		lo, hi := m.edges[b], m.edges[b+1]
		peak := 0.0
		for k := lo; k < hi && k < len(spectrum); k++ {
			mag := math.Hypot(real(spectrum[k]), imag(spectrum[k])) / norm
			if mag > peak {
				peak = mag
			}
		}
		levels[b] = toLevel(peak)
	}
	return levels
}

func toLevel(mag float64) float64 {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	if db <= meterFloorDB {
		return 0
	}
	if db >= 0 {
		return 1
	}
	return 1 - db/meterFloorDB
}
