package wavecodec

import (
	"encoding/binary"
	"fmt"
)

// formatPCM is the only wFormatTag the codec accepts.
const formatPCM = 1

// Waveform holds decoded PCM audio alongside its container parameters.
// Samples are interleaved across channels in frame order.
type Waveform struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	Samples       []int
}

// FrameCount returns the number of sample frames (samples per channel).
func (w *Waveform) FrameCount() int {
	if w.Channels <= 0 {
		return 0
	}
	return len(w.Samples) / w.Channels
}

// Duration returns the clip length in seconds, 0 when the sample rate is 0.
func (w *Waveform) Duration() float64 {
	if w.SampleRate <= 0 {
		return 0
	}
	return float64(w.FrameCount()) / float64(w.SampleRate)
}

// MaxMagnitude returns the largest representable sample magnitude for the
// clip's bit depth, used to normalize samples into [-1, 1].
func (w *Waveform) MaxMagnitude() float64 {
	bits := w.BitsPerSample
	if bits <= 0 {
		return 0
	}
	if bits == 8 {
		// 8-bit WAV is unsigned; samples are stored centered on zero.
		return 128
	}
	return float64(int64(1) << (bits - 1))
}

// DecodeError reports a malformed or unsupported WAVE container.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "decode wav: " + e.Reason
}

func decodeErrf(format string, args ...any) error {
	return &DecodeError{Reason: fmt.Sprintf(format, args...)}
}

// Decode parses a RIFF/WAVE byte stream into a Waveform.
func Decode(data []byte) (*Waveform, error) {
	if len(data) < 12 {
		return nil, decodeErrf("container truncated (%d bytes)", len(data))
	}
	if string(data[0:4]) != "RIFF" {
		return nil, decodeErrf("missing RIFF header")
	}
	if string(data[8:12]) != "WAVE" {
		return nil, decodeErrf("missing WAVE form type")
	}

	var (
		wf       Waveform
		haveFmt  bool
		haveData bool
		pcm      []byte
	)

	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if chunkSize < 0 || body+chunkSize > len(data) {
			return nil, decodeErrf("chunk %q overruns container", chunkID)
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, decodeErrf("fmt chunk too small (%d bytes)", chunkSize)
			}
			format := int(binary.LittleEndian.Uint16(data[body : body+2]))
			if format != formatPCM {
				return nil, decodeErrf("unsupported format tag %d (PCM only)", format)
			}
			wf.Channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			wf.SampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			wf.BitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true
		case "data":
			pcm = data[body : body+chunkSize]
			haveData = true
		}

		// Chunks are word-aligned; odd sizes carry a pad byte.
		offset = body + chunkSize
		if chunkSize%2 == 1 {
			offset++
		}
	}

	if !haveFmt {
		return nil, decodeErrf("missing fmt chunk")
	}
	if !haveData {
		return nil, decodeErrf("missing data chunk")
	}
	if wf.Channels <= 0 {
		return nil, decodeErrf("invalid channel count %d", wf.Channels)
	}

	switch wf.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		return nil, decodeErrf("unsupported bit depth %d", wf.BitsPerSample)
	}

	bytesPerSample := wf.BitsPerSample / 8
	if len(pcm)%bytesPerSample != 0 {
		pcm = pcm[:len(pcm)-len(pcm)%bytesPerSample]
	}

	count := len(pcm) / bytesPerSample
	wf.Samples = make([]int, count)
	for i := 0; i < count; i++ {
		chunk := pcm[i*bytesPerSample : (i+1)*bytesPerSample]
		switch wf.BitsPerSample {
		case 8:
			wf.Samples[i] = int(chunk[0]) - 128
		case 16:
			wf.Samples[i] = int(int16(binary.LittleEndian.Uint16(chunk)))
		case 24:
			v := int32(chunk[0]) | int32(chunk[1])<<8 | int32(chunk[2])<<16
			if v&0x800000 != 0 {
				v |= ^int32(0xFFFFFF)
			}
			wf.Samples[i] = int(v)
		case 32:
			wf.Samples[i] = int(int32(binary.LittleEndian.Uint32(chunk)))
		}
	}

	return &wf, nil
}

// Encode serializes a Waveform back into RIFF/WAVE bytes. It is the exact
// inverse of Decode for the supported bit depths.
func Encode(w *Waveform) ([]byte, error) {
	if w == nil {
		return nil, fmt.Errorf("encode wav: nil waveform")
	}
	switch w.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("encode wav: unsupported bit depth %d", w.BitsPerSample)
	}
	if w.Channels <= 0 {
		return nil, fmt.Errorf("encode wav: invalid channel count %d", w.Channels)
	}

	bytesPerSample := w.BitsPerSample / 8
	dataSize := len(w.Samples) * bytesPerSample
	byteRate := w.SampleRate * w.Channels * bytesPerSample
	blockAlign := w.Channels * bytesPerSample

	out := make([]byte, 0, 44+dataSize)
	out = append(out, "RIFF"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(36+dataSize))
	out = append(out, "WAVE"...)

	out = append(out, "fmt "...)
	out = binary.LittleEndian.AppendUint32(out, 16)
	out = binary.LittleEndian.AppendUint16(out, formatPCM)
	out = binary.LittleEndian.AppendUint16(out, uint16(w.Channels))
	out = binary.LittleEndian.AppendUint32(out, uint32(w.SampleRate))
	out = binary.LittleEndian.AppendUint32(out, uint32(byteRate))
	out = binary.LittleEndian.AppendUint16(out, uint16(blockAlign))
	out = binary.LittleEndian.AppendUint16(out, uint16(w.BitsPerSample))

	out = append(out, "data"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(dataSize))
	for _, sample := range w.Samples {
		switch w.BitsPerSample {
		case 8:
			out = append(out, byte(sample+128))
		case 16:
			out = binary.LittleEndian.AppendUint16(out, uint16(int16(sample)))
		case 24:
			out = append(out, byte(sample), byte(sample>>8), byte(sample>>16))
		case 32:
			out = binary.LittleEndian.AppendUint32(out, uint32(int32(sample)))
		}
	}

	return out, nil
}
