//go:build ignore

// This script generates test data for MPEG audio decoder testing.
// Run with: go run testdata/generate.go
//
// Requirements: FFmpeg must be installed and available in PATH
// (libmp3lame for Layer III, the built-in mp2 encoder for Layer II).
//
// Generated test data structure:
//   testdata/generated/
//   ├── layer3/            # Layer III tests (MPEG-1, 2 and 2.5)
//   │   ├── 44100_stereo_128k/
//   │   ├── 22050_mono_32k/
//   │   └── ...
//   ├── layer2/            # Layer II tests
//   │   └── ...
//   └── real_audio/        # Real audio samples
//       └── ...

package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// Real audio samples from LibriVox (public domain)
// Source WAV files are stored in testdata/samples/
// Download instructions in testdata/samples/README.md
var realAudioSamples = []struct {
	name   string
	source string // relative to testdata/
}{
	// "Jane Eyre" by Charlotte Bronte, Chapter 1 (5 seconds)
	// LibriVox recording (public domain)
	{"librivox_jane_eyre", "samples/jane_eyre_5s.wav"},
}

// TestConfig describes a test configuration
type TestConfig struct {
	SampleRate  int `json:"sample_rate"`
	NumChannels int `json:"num_channels"` // 1=mono, 2=stereo
	Layer       int `json:"layer"`        // 2 or 3
	Bitrate     int `json:"bitrate"`      // Target bitrate in kbps
}

// Layer III configurations. The 22.05 and 11.025 kHz rates exercise
// the MPEG-2 and MPEG-2.5 low sampling frequency paths.
var layer3Configs = []TestConfig{
	{44100, 2, 3, 128}, // MPEG-1 stereo
	{44100, 2, 3, 320}, // MPEG-1 high bitrate
	{44100, 1, 3, 64},  // MPEG-1 mono
	{48000, 2, 3, 192}, // 48kHz stereo
	{32000, 2, 3, 96},  // 32kHz stereo
	{22050, 2, 3, 64},  // MPEG-2 stereo
	{22050, 1, 3, 32},  // MPEG-2 mono
	{16000, 1, 3, 24},  // MPEG-2 speech-like
	{11025, 1, 3, 16},  // MPEG-2.5 mono
	{8000, 1, 3, 8},    // MPEG-2.5 lowest rate
}

// Layer II configurations
var layer2Configs = []TestConfig{
	{44100, 2, 2, 192},
	{44100, 1, 2, 96},
	{48000, 2, 2, 256},
	{22050, 2, 2, 64}, // MPEG-2
}

var audioTypes = []string{"silence", "sine1k", "sweep", "noise", "impulse"}

func main() {
	if err := checkFFmpeg(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Please install FFmpeg: https://ffmpeg.org/download.html\n")
		os.Exit(1)
	}

	baseDir := filepath.Join("testdata", "generated")
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Generating Layer III test data ===")
	generateLayerTests(baseDir, "layer3", layer3Configs)

	fmt.Println("\n=== Generating Layer II test data ===")
	generateLayerTests(baseDir, "layer2", layer2Configs)

	fmt.Println("\n=== Generating real audio test data ===")
	realDir := filepath.Join(baseDir, "real_audio")
	if err := os.MkdirAll(realDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating real audio directory: %v\n", err)
	} else {
		for _, sample := range realAudioSamples {
			sourcePath := filepath.Join("testdata", sample.source)
			if err := generateRealAudioTestCase(realDir, sample.name, sourcePath); err != nil {
				fmt.Fprintf(os.Stderr, "Error generating real audio %s: %v\n", sample.name, err)
			} else {
				fmt.Printf("Generated real_audio/%s\n", sample.name)
			}
		}
	}

	fmt.Println("\nDone!")
}

func generateLayerTests(baseDir, layer string, configs []TestConfig) {
	layerDir := filepath.Join(baseDir, layer)
	if err := os.MkdirAll(layerDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory %s: %v\n", layerDir, err)
		return
	}

	for _, cfg := range configs {
		dirName := fmt.Sprintf("%d_%s_%dk",
			cfg.SampleRate, channelName(cfg.NumChannels), cfg.Bitrate)
		dir := filepath.Join(layerDir, dirName)
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating directory %s: %v\n", dir, err)
			continue
		}

		for _, audioType := range audioTypes {
			if err := generateTestCase(dir, audioType, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error generating %s/%s/%s: %v\n", layer, dirName, audioType, err)
			} else {
				fmt.Printf("Generated %s/%s/%s\n", layer, dirName, audioType)
			}
		}
	}
}

func checkFFmpeg() error {
	cmd := exec.Command("ffmpeg", "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg not found: %w", err)
	}
	return nil
}

func channelName(n int) string {
	if n == 1 {
		return "mono"
	}
	return "stereo"
}

func extFor(layer int) string {
	if layer == 2 {
		return ".mp2"
	}
	return ".mp3"
}

func generateTestCase(dir, audioType string, cfg TestConfig) error {
	wavPath := filepath.Join(dir, audioType+".wav")
	mpaPath := filepath.Join(dir, audioType+extFor(cfg.Layer))
	rawPath := filepath.Join(dir, audioType+".raw") // Reference PCM
	jsonPath := filepath.Join(dir, audioType+".json")

	// Skip if all files exist
	if fileExists(mpaPath) && fileExists(rawPath) && fileExists(jsonPath) {
		return nil
	}

	// Generate WAV (1 second of audio)
	duration := 1.0
	samples := int(float64(cfg.SampleRate) * duration)
	if err := generateWAV(wavPath, audioType, cfg, samples); err != nil {
		return fmt.Errorf("generating WAV: %w", err)
	}

	if err := encode(wavPath, mpaPath, cfg); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	// Decode to raw PCM (reference output)
	if err := decodeToRaw(mpaPath, rawPath, cfg); err != nil {
		return fmt.Errorf("decoding to raw: %w", err)
	}

	if err := writeConfig(jsonPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	os.Remove(wavPath)

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func generateWAV(path, audioType string, cfg TestConfig, samples int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dataSize := samples * cfg.NumChannels * 2

	if err := writeWAVHeader(f, cfg, dataSize); err != nil {
		return err
	}

	for i := 0; i < samples; i++ {
		for ch := 0; ch < cfg.NumChannels; ch++ {
			var sample float64
			t := float64(i) / float64(cfg.SampleRate)

			switch audioType {
			case "silence":
				sample = 0

			case "sine1k":
				// Pure 1kHz sine wave
				sample = 0.8 * math.Sin(2*math.Pi*1000*t)

			case "sweep":
				// Logarithmic sweep from 20Hz to Nyquist/2
				maxFreq := float64(cfg.SampleRate) / 4
				progress := float64(i) / float64(samples)
				freq := 20 * math.Pow(maxFreq/20, progress)
				sample = 0.7 * math.Sin(2*math.Pi*freq*t)

			case "noise":
				// Pseudo-random noise using LCG (deterministic)
				seed := uint32(i*cfg.NumChannels + ch + 12345)
				seed = seed*1103515245 + 12345
				sample = 0.5 * (float64(seed%65536)/32768.0 - 1.0)

			case "impulse":
				// Impulses every 100ms
				period := cfg.SampleRate / 10
				if i%period == 0 {
					sample = 0.9
				}
			}

			v := int16(sample * 32767)
			if err := binary.Write(f, binary.LittleEndian, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeWAVHeader(f *os.File, cfg TestConfig, dataSize int) error {
	byteRate := cfg.SampleRate * cfg.NumChannels * 2
	blockAlign := cfg.NumChannels * 2

	var h []byte
	h = append(h, "RIFF"...)
	h = binary.LittleEndian.AppendUint32(h, uint32(36+dataSize))
	h = append(h, "WAVEfmt "...)
	h = binary.LittleEndian.AppendUint32(h, 16)
	h = binary.LittleEndian.AppendUint16(h, 1) // PCM
	h = binary.LittleEndian.AppendUint16(h, uint16(cfg.NumChannels))
	h = binary.LittleEndian.AppendUint32(h, uint32(cfg.SampleRate))
	h = binary.LittleEndian.AppendUint32(h, uint32(byteRate))
	h = binary.LittleEndian.AppendUint16(h, uint16(blockAlign))
	h = binary.LittleEndian.AppendUint16(h, 16)
	h = append(h, "data"...)
	h = binary.LittleEndian.AppendUint32(h, uint32(dataSize))

	_, err := f.Write(h)
	return err
}

func encode(wavPath, mpaPath string, cfg TestConfig) error {
	codec := "libmp3lame"
	if cfg.Layer == 2 {
		codec = "mp2"
	}
	cmd := exec.Command("ffmpeg", "-y",
		"-i", wavPath,
		"-c:a", codec,
		"-b:a", strconv.Itoa(cfg.Bitrate)+"k",
		"-ar", strconv.Itoa(cfg.SampleRate),
		mpaPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, out)
	}
	return nil
}

func decodeToRaw(mpaPath, rawPath string, cfg TestConfig) error {
	cmd := exec.Command("ffmpeg", "-y",
		"-i", mpaPath,
		"-f", "s16le",
		"-ar", strconv.Itoa(cfg.SampleRate),
		"-ac", strconv.Itoa(cfg.NumChannels),
		rawPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, out)
	}
	return nil
}

func writeConfig(path string, cfg TestConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func generateRealAudioTestCase(dir, name, sourcePath string) error {
	if !fileExists(sourcePath) {
		return fmt.Errorf("source %s not found (see testdata/samples/README.md)", sourcePath)
	}

	cfg := TestConfig{SampleRate: 44100, NumChannels: 2, Layer: 3, Bitrate: 128}
	mpaPath := filepath.Join(dir, name+".mp3")
	rawPath := filepath.Join(dir, name+".raw")
	jsonPath := filepath.Join(dir, name+".json")

	if err := encode(sourcePath, mpaPath, cfg); err != nil {
		return err
	}
	if err := decodeToRaw(mpaPath, rawPath, cfg); err != nil {
		return err
	}
	return writeConfig(jsonPath, cfg)
}
