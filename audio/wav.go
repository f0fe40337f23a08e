package audio

import (
	"encoding/base64"
	"encoding/binary"
	"math"
)

// EncodeWAV encodes mono samples as a 16-bit PCM WAV file at SampleRate,
// scaled by gain.
func EncodeWAV(samples []float64, gain float64) []byte {
	const headerSize = 44
	dataSize := len(samples) * 2
	buf := make([]byte, headerSize+dataSize)

	copy(buf[0:], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:], uint32(36+dataSize))
	copy(buf[8:], "WAVE")
	copy(buf[12:], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:], 1)  // PCM
	binary.LittleEndian.PutUint16(buf[22:], 1)  // mono
	binary.LittleEndian.PutUint32(buf[24:], SampleRate)
	binary.LittleEndian.PutUint32(buf[28:], SampleRate*2) // byte rate
	binary.LittleEndian.PutUint16(buf[32:], 2)            // block align
	binary.LittleEndian.PutUint16(buf[34:], 16)           // bits per sample
	copy(buf[36:], "data")
	binary.LittleEndian.PutUint32(buf[40:], uint32(dataSize))

	for i, s := range samples {
		v := math.Max(-1, math.Min(1, s*gain))
		binary.LittleEndian.PutUint16(buf[headerSize+i*2:], uint16(int16(v*32767)))
	}
	return buf
}

// DataURL renders a cue as a base64 WAV data URL for HTML audio elements.
func (b *Bank) DataURL(name string) (string, error) {
	s, err := b.Samples(name)
	if err != nil {
		return "", err
	}
	c, _ := b.Cue(name)
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(EncodeWAV(s, c.Volume)), nil
}
