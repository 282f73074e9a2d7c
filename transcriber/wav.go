package transcriber

import (
	"encoding/binary"
	"math"
)

const wavHeaderSize = 44

// pcm16le converts float32 samples in [-1, 1] to little-endian PCM16,
// clipping out-of-range values.
func pcm16le(samples []float32) []byte {
	pcm := make([]byte, len(samples)*2)
	for i, sample := range samples {
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}
		val := int16(sample * math.MaxInt16)
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(val))
	}
	return pcm
}

// encodeWAV wraps mono PCM16 data in a 44-byte RIFF header.
func encodeWAV(samples []float32, sampleRate int) []byte {
	pcm := pcm16le(samples)
	buf := make([]byte, wavHeaderSize+len(pcm))

	copy(buf[0:], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:], uint32(36+len(pcm)))
	copy(buf[8:], "WAVE")

	copy(buf[12:], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:], 16)                    // fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:], 1)                     // PCM
	binary.LittleEndian.PutUint16(buf[22:], 1)                     // mono
	binary.LittleEndian.PutUint32(buf[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:], uint32(sampleRate*2))  // byte rate
	binary.LittleEndian.PutUint16(buf[32:], 2)                     // block align
	binary.LittleEndian.PutUint16(buf[34:], 16)                    // bits per sample

	copy(buf[36:], "data")
	binary.LittleEndian.PutUint32(buf[40:], uint32(len(pcm)))
	copy(buf[wavHeaderSize:], pcm)

	return buf
}
