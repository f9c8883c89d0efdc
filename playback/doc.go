// SPDX-License-Identifier: EPL-2.0

// Package playback renders PCM through the system audio device using
// ebitengine/oto.
//
// oto permits a single device context per process, so the first Start
// opens it with that material's sample rate and channel count. Material in
// any other format is converted before it is handed to the device:
//
//	p := playback.New()
//	h, err := p.Start(buf.Data(), buf.SampleRate(), buf.Channels(), buf.BytesPerSample())
//	...
//	h.Stop()
package playback
