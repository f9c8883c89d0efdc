// SPDX-License-Identifier: EPL-2.0

package audio

// Codec turns files into buffers and back.
type Codec interface {
	// Decode reads and fully decodes the audio file at path.
	Decode(path string) (*Buffer, error)
	// Encode writes b to path in the named container format, replacing any
	// existing file.
	Encode(b *Buffer, path, format string) error
}

// Player starts asynchronous playback of raw PCM.
type Player interface {
	// Start begins rendering data, signed little-endian interleaved PCM, and
	// returns without waiting for playback to finish. The player must not
	// retain data beyond its own copy.
	Start(data []byte, sampleRate, channels, bytesPerSample int) (Handle, error)
}

// Handle is one in-flight playback session.
type Handle interface {
	// IsPlaying reports whether sound is still being rendered.
	IsPlaying() bool
	// Stop halts output and releases the session. Calling Stop more than
	// once is allowed.
	Stop() error
}
