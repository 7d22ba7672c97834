package playback

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strings"
	"sync"
)

// ErrNoVolumeControl is returned when the active source does not expose a
// volume control.
var ErrNoVolumeControl = errors.New("source does not support adjusting volume")

// Source is a stream of 48kHz stereo s16le PCM.
type Source interface {
	io.ReadCloser
}

// VolumeAdjuster is implemented by sources whose volume can be changed
// mid-stream. Volume is a factor in [0.0, 1.0].
type VolumeAdjuster interface {
	SetVolume(float64)
	Volume() float64
}

// stripMaskers removes enclosing link-suppression markers ("<uri>") that chat
// clients use to avoid embedding.
func stripMaskers(uri string) string {
	return strings.TrimRight(strings.TrimLeft(uri, "<"), ">")
}

// ClampPercent converts a user-supplied percentage to the internal volume
// factor, clamped to [0.0, 1.0].
func ClampPercent(pct float64) float64 {
	v := pct / 100
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

type ffmpegSource struct {
	io.ReadCloser
	cmd *exec.Cmd
}

// newFFmpegSource spawns ffmpeg decoding uri (local file or URL) to raw PCM
// on stdout. All demuxing and decoding stays in the subprocess.
func newFFmpegSource(uri string) (Source, error) {
	cmd := exec.Command("ffmpeg",
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
		"-i", uri,
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-ac", fmt.Sprintf("%d", channels),
		"-loglevel", "warning",
		"pipe:1",
	)

	reader, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("command start error: %w", err)
	}

	return &ffmpegSource{ReadCloser: reader, cmd: cmd}, nil
}

func (s *ffmpegSource) Close() error {
	_ = s.cmd.Process.Kill()
	err := s.ReadCloser.Close()
	_ = s.cmd.Wait()
	return err
}

// VolumeSource wraps a PCM source and scales every sample by an adjustable
// volume factor.
type VolumeSource struct {
	src Source

	mu     sync.Mutex
	volume float64

	odd    byte
	hasOdd bool
}

func NewVolumeSource(src Source, volume float64) *VolumeSource {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &VolumeSource{src: src, volume: volume}
}

func (v *VolumeSource) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n := 0
	if v.hasOdd {
		p[0] = v.odd
		v.hasOdd = false
		n = 1
	}

	m, err := v.src.Read(p[n:])
	n += m

	// Samples are two bytes little-endian; an odd trailing byte is held back
	// so scaling never splits a sample across reads.
	if n%2 == 1 && err == nil {
		n--
		v.odd = p[n]
		v.hasOdd = true
	}

	vol := v.Volume()
	if vol != 1.0 {
		for i := 0; i+1 < n; i += 2 {
			sample := float64(int16(binary.LittleEndian.Uint16(p[i:i+2]))) * vol
			if sample > math.MaxInt16 {
				sample = math.MaxInt16
			} else if sample < math.MinInt16 {
				sample = math.MinInt16
			}
			binary.LittleEndian.PutUint16(p[i:i+2], uint16(int16(sample)))
		}
	}

	return n, err
}

func (v *VolumeSource) Close() error {
	return v.src.Close()
}

func (v *VolumeSource) Volume() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.volume
}

func (v *VolumeSource) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	v.mu.Lock()
	v.volume = volume
	v.mu.Unlock()
}
