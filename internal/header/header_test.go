package header

import "testing"

func TestParse_FieldExtraction(t *testing.T) {
	// MPEG-1 Layer III, 128 kbps, 44.1 kHz, joint stereo (M/S on),
	// original, no CRC.
	h := Parse([]byte{0xFF, 0xFB, 0x90, 0x64})

	if !h.IsValid() {
		t.Fatal("header should be valid")
	}
	if h.Version() != MPEG1 {
		t.Errorf("Version = %v, want MPEG-1", h.Version())
	}
	if h.Layer() != LayerIII {
		t.Errorf("Layer = %v, want Layer III", h.Layer())
	}
	if h.Protected() {
		t.Error("Protected = true, want false")
	}
	if h.Bitrate() != 128000 {
		t.Errorf("Bitrate = %d, want 128000", h.Bitrate())
	}
	if h.SampleRate() != 44100 {
		t.Errorf("SampleRate = %d, want 44100", h.SampleRate())
	}
	if h.Padding() {
		t.Error("Padding = true, want false")
	}
	if h.Mode() != ModeJointStereo {
		t.Errorf("Mode = %v, want joint stereo", h.Mode())
	}
	if !h.UsesMSStereo() || h.UsesIntensityStereo() {
		t.Errorf("stereo flags: ms=%v is=%v, want ms only",
			h.UsesMSStereo(), h.UsesIntensityStereo())
	}
	if !h.Original() {
		t.Error("Original = false, want true")
	}
	if h.Emphasis() != 0 {
		t.Errorf("Emphasis = %d, want 0", h.Emphasis())
	}
	if h.Channels() != 2 {
		t.Errorf("Channels = %d, want 2", h.Channels())
	}
	if h.Granules() != 2 {
		t.Errorf("Granules = %d, want 2", h.Granules())
	}
	if h.SideInfoSize() != 32 {
		t.Errorf("SideInfoSize = %d, want 32", h.SideInfoSize())
	}
}

func TestFrameSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		want  int
	}{
		// 144 * 128000 / 44100 = 417 (truncated), +1 with padding.
		{"L3 44.1kHz 128kbps no pad", []byte{0xFF, 0xFB, 0x90, 0x64}, 417},
		{"L3 44.1kHz 128kbps padded", []byte{0xFF, 0xFB, 0x92, 0x64}, 418},
		// 144 * 128000 / 48000 = 384.
		{"L3 48kHz 128kbps", []byte{0xFF, 0xFB, 0x94, 0x64}, 384},
		// Layer I: (12 * 256000 / 44100 + 0) * 4 = 69 * 4.
		{"L1 44.1kHz 256kbps", []byte{0xFF, 0xFF, 0x80, 0x64}, 276},
		// Layer II: 144 * 192000 / 44100 = 626.
		{"L2 44.1kHz 192kbps", []byte{0xFF, 0xFD, 0xA0, 0x64}, 626},
		// MPEG-2 LSF Layer III: 72 * 64000 / 22050 = 208.
		{"MPEG2 L3 22.05kHz 64kbps", []byte{0xFF, 0xF3, 0x80, 0x64}, 208},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Parse(tt.bytes)
			if !h.IsValid() {
				t.Fatal("header should be valid")
			}
			if got := h.FrameSize(); got != tt.want {
				t.Errorf("FrameSize = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsValid_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
	}{
		{"no syncword", []byte{0x00, 0xFB, 0x90, 0x64}},
		{"reserved version", []byte{0xFF, 0xEB, 0x90, 0x64}},
		{"reserved layer", []byte{0xFF, 0xF9, 0x90, 0x64}},
		{"free format", []byte{0xFF, 0xFB, 0x00, 0x64}},
		{"forbidden bitrate", []byte{0xFF, 0xFB, 0xF0, 0x64}},
		{"reserved sample rate", []byte{0xFF, 0xFB, 0x9C, 0x64}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Parse(tt.bytes).IsValid() {
				t.Error("IsValid = true, want false")
			}
		})
	}
}

func TestSamplingRateIndex(t *testing.T) {
	tests := []struct {
		bytes []byte
		want  int
	}{
		{[]byte{0xFF, 0xFB, 0x90, 0x64}, 0}, // MPEG1 44.1k
		{[]byte{0xFF, 0xFB, 0x94, 0x64}, 1}, // MPEG1 48k
		{[]byte{0xFF, 0xFB, 0x98, 0x64}, 2}, // MPEG1 32k
		{[]byte{0xFF, 0xF3, 0x80, 0x64}, 3}, // MPEG2 22.05k
		{[]byte{0xFF, 0xE3, 0x80, 0x64}, 6}, // MPEG2.5 11.025k
	}
	for _, tt := range tests {
		h := Parse(tt.bytes)
		if got := h.SamplingRateIndex(); got != tt.want {
			t.Errorf("%x: SamplingRateIndex = %d, want %d", tt.bytes, got, tt.want)
		}
	}
}

func TestBound(t *testing.T) {
	// Joint stereo with mode extension 01: bound = 8.
	h := Parse([]byte{0xFF, 0xFD, 0x90, 0x54})
	if got := h.Bound(30); got != 8 {
		t.Errorf("Bound(30) = %d, want 8", got)
	}
	// Non-joint modes use the full subband limit.
	h = Parse([]byte{0xFF, 0xFD, 0x90, 0x04})
	if got := h.Bound(30); got != 30 {
		t.Errorf("Bound(30) stereo = %d, want 30", got)
	}
}
