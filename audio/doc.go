// SPDX-License-Identifier: EPL-2.0

// Package audio provides the in-memory clip type and the processing
// primitives the editor is built on.
//
// # Buffer
//
// A Buffer holds one fully decoded clip as signed little-endian
// interleaved PCM, together with its sample rate, channel count and sample
// width (1 to 4 bytes). Buffers are immutable; every edit returns a new
// one:
//
//	b, err := audio.NewBuffer(data, 44100, 2, 2)
//	louder, err := audio.ApplyGain(b, 6)
//	backwards := audio.Reverse(louder)
//	part, err := audio.Slice(backwards, time.Second, 3*time.Second)
//	faster, err := audio.ChangeSpeed(part, 1.5)
//
// # Source Interface
//
// Decoders and stream processors share the Source interface:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are float32 in [-1.0, 1.0). Buffer.Source streams a buffer and
// Collect packs any Source back into a Buffer, so decoders, the Resampler
// and the ChannelMixer can be chained freely:
//
//	src := audio.NewResampler(audio.NewChannelMixer(b.Source(), 1), 16000)
//	mono16k, err := audio.Collect(src, 2)
//
// Sources that know their bit depth implement BitDepther; NativeWidth
// uses it to keep 24-bit material at 24 bits.
//
// # Resampling and Speed
//
// The Resampler uses cubic interpolation with a light low-pass filter when
// reading faster than the source. NewResampler changes the sample rate;
// NewVarispeed keeps it and changes the playback speed instead, which is
// what ChangeSpeed uses.
//
// # Format Registry
//
// The registry maps format keys to decoders and encoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	registry.RegisterEncoder("wav", wav.Encoder{})
//	decoder, _ := registry.Get("wav")
//
// # Capabilities
//
// Codec, Player and Handle describe the file and playback services the
// editor depends on. Implementations live in the formats and playback
// packages; tests substitute fakes.
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. Edits report
// invalid input with sentinel errors (ErrInvalidRange, ErrInvalidFactor,
// ErrInvalidGain, ...) that can be matched with errors.Is:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // process buf[:n] first
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
