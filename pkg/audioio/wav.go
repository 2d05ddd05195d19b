package audioio

import (
	"bytes"
	"encoding/binary"
)

// WAVBytes encodes a chunk as a 16-bit PCM WAV file.
// Used for debug dumps and for handing captured audio to WAV decoders.
func WAVBytes(chunk *AudioChunk) []byte {
	data := SamplesToBytes(chunk.Samples)
	channels := chunk.Channels
	if channels == 0 {
		channels = 1
	}

	var (
		bitsPerSample = 16
		byteRate      = chunk.SampleRate * channels * bitsPerSample / 8
		blockAlign    = channels * bitsPerSample / 8
	)

	buf := &bytes.Buffer{}
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(data)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(chunk.SampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)

	return buf.Bytes()
}
