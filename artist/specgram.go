package artist

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
)

// Spectrogram shows the power spectral density in dB of consecutive windowed segments of a signal as an image with
// time along x and frequency along y.
type Spectrogram struct {
	*Image

	NFFT     int     // segment length
	Overlap  int     // samples shared by consecutive segments
	Fs       float64 // sampling frequency
	Times    []float32
	Freqs    []float32
	PowerMin float64 // lowest power in dB, lower values are clipped
}

// NewSpectrogram returns the spectrogram of x sampled at fs with segments of nfft samples overlapping by noverlap.
func NewSpectrogram(x []float32, nfft, noverlap int, fs float64) (*Spectrogram, error) {
	if nfft <= 0 {
		nfft = 256
	}
	if noverlap < 0 || nfft <= noverlap {
		return nil, fmt.Errorf("spectrogram: overlap %d for segments of %d: %w", noverlap, nfft, ErrInvalidShape)
	}
	if fs <= 0.0 {
		fs = 2.0
	}
	if len(x) < nfft {
		return nil, fmt.Errorf("spectrogram: %d samples for segments of %d: %w", len(x), nfft, ErrEmptyData)
	}

	step := nfft - noverlap
	segments := 1 + (len(x)-nfft)/step
	bins := nfft/2 + 1

	window := hann(nfft)
	scale := 0.0
	for _, w := range window {
		scale += w * w
	}
	scale *= fs

	fft := fourier.NewFFT(nfft)
	seq := make([]float64, nfft)
	coeff := make([]complex128, bins)
	g := Grid{Rows: bins, Cols: segments, Data: make([]float32, bins*segments)}
	times := make([]float32, segments)
	for j := 0; j < segments; j++ {
		offset := j * step
		mean := 0.0
		for k := 0; k < nfft; k++ {
			mean += float64(x[offset+k])
		}
		mean /= float64(nfft)
		for k := 0; k < nfft; k++ {
			seq[k] = (float64(x[offset+k]) - mean) * window[k]
		}
		coeff = fft.Coefficients(coeff, seq)
		for i, c := range coeff {
			p := cmplx.Abs(c)
			p = p * p / scale
			if 0 < i && (i < bins-1 || nfft%2 == 1) {
				p *= 2.0 // one-sided
			}
			g.Set(i, j, float32(10.0*math.Log10(math.Max(p, 1e-20))))
		}
		times[j] = float32((float64(offset) + float64(nfft)/2.0) / fs)
	}

	freqs := make([]float32, bins)
	for i := range freqs {
		freqs[i] = float32(fft.Freq(i) * fs)
	}

	im, err := NewImage(g)
	if err != nil {
		return nil, err
	}
	dt := float64(step) / fs / 2.0
	df := fs / float64(nfft) / 2.0
	im.Bounds = geom.Rect[geom.Data](float64(times[0])-dt, float64(freqs[0])-df, float64(times[segments-1])+dt, float64(freqs[bins-1])+df)

	s := &Spectrogram{
		Image:    im,
		NFFT:     nfft,
		Overlap:  noverlap,
		Fs:       fs,
		Times:    times,
		Freqs:    freqs,
		PowerMin: math.Inf(-1),
	}
	return s, nil
}

// SetDynamicRange clips the power to at most db below the maximum.
func (s *Spectrogram) SetDynamicRange(db float64) {
	_, hi, ok := s.Grid.MinMax()
	if !ok {
		return
	}
	s.PowerMin = float64(hi) - db
	s.Norm = colors.LinearNorm{Min: s.PowerMin, Max: float64(hi)}
	s.Invalidate()
}

// Power returns the power in dB of frequency bin i in segment j.
func (s *Spectrogram) Power(i, j int) float64 {
	return float64(s.Grid.At(i, j))
}

func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1.0
		return w
	}
	for k := range w {
		w[k] = 0.5 - 0.5*math.Cos(2.0*math.Pi*float64(k)/float64(n))
	}
	return w
}
