// Package mpa provides a pure Go MPEG audio decoder.
//
// It decodes MPEG-1, MPEG-2 and MPEG-2.5 audio streams, Layers I, II
// and III, without CGO dependencies.
//
// # Basic Usage
//
// To decode an MPEG audio stream:
//
//	dec, err := mpa.NewDecoder(r)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dec.Close()
//
//	fmt.Println(dec.SampleRate(), dec.Channels())
//	if _, err := io.Copy(pcmSink, dec); err != nil {
//	    log.Fatal(err)
//	}
//
// Read produces interleaved signed 16-bit little-endian PCM. For
// frame-level access use DecodeFrame, which returns one Frame of
// samples together with its header metadata.
//
// # Supported Formats
//
// Versions: MPEG-1, MPEG-2, MPEG-2.5
// Layers: I, II, III
// Output: interleaved 16-bit PCM, mono streams upmixed to stereo by
// default (see Config.NoUpmix)
//
// Free format streams (bitrate index 0) are not supported and are
// reported with ErrFreeFormat.
//
// # Stream Handling
//
// The decoder scans past ID3v2 and ID3v1 tags and resynchronises on
// garbage between frames. The first valid frame fixes the stream's
// version, layer, sample rate and channel count; a valid header with
// different parameters is treated as a false sync. CRC-protected
// frames are verified, and frames whose protected bits fail the check
// are muted rather than decoded into noise.
//
// # Thread Safety
//
// Decoder instances are NOT safe for concurrent use. Each goroutine
// should have its own Decoder. Read-only accessors (SampleRate,
// Channels, etc.) are safe to call concurrently after NewDecoder.
package mpa
