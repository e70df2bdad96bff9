// Package asr wraps sherpa-onnx-go's streaming OnlineRecognizer into the
// single capability the Presentation Controller needs: accept PCM
// frames, produce an updated partial transcript string.
package asr

import (
	"fmt"
	"runtime"
	"sync"

	sherpa "github.com/k2-fsa/sherpa-onnx-go/sherpa_onnx"
)

// ModelPaths locates the transducer's four artifact files.
type ModelPaths struct {
	Tokens  string
	Encoder string
	Decoder string
	Joiner  string
}

// Config configures the streaming recognizer.
type Config struct {
	Models     ModelPaths
	SampleRate int // Hz; spec.md §4.5 fixes 16_000.
	NumThreads int
	Debug      bool
}

// DefaultNumThreads matches the teacher's diarization config.
const DefaultNumThreads = 8

// Stream is a single streaming decode session: feed it waveform frames,
// it emits updated partial transcripts. Not safe for concurrent decode
// calls — the Presentation Controller's decode thread is its only
// caller, per spec.md §4.5.
type Stream struct {
	recognizer *sherpa.OnlineRecognizer
	stream     *sherpa.OnlineStream
	sampleRate int

	mu      sync.Mutex
	lastText string
}

// New constructs a streaming recognizer from the transducer model files,
// falling back to the CPU execution provider if the detected best
// provider fails to initialize (grounded on the teacher's
// detectBestProvider + fallback-to-cpu pattern).
func New(cfg Config) (*Stream, error) {
	numThreads := cfg.NumThreads
	if numThreads == 0 {
		numThreads = DefaultNumThreads
	}

	recognizerConfig := sherpa.OnlineRecognizerConfig{
		FeatConfig: sherpa.FeatureConfig{
			SampleRate: cfg.SampleRate,
			FeatureDim: 80,
		},
		ModelConfig: sherpa.OnlineModelConfig{
			Transducer: sherpa.OnlineTransducerModelConfig{
				Encoder: cfg.Models.Encoder,
				Decoder: cfg.Models.Decoder,
				Joiner:  cfg.Models.Joiner,
			},
			Tokens:     cfg.Models.Tokens,
			NumThreads: numThreads,
			Provider:   detectBestProvider(),
			Debug:      boolToInt(cfg.Debug),
		},
		DecodingMethod: "greedy_search",
	}

	recognizer := sherpa.NewOnlineRecognizer(&recognizerConfig)
	if recognizer == nil && recognizerConfig.ModelConfig.Provider != "cpu" {
		recognizerConfig.ModelConfig.Provider = "cpu"
		recognizer = sherpa.NewOnlineRecognizer(&recognizerConfig)
	}
	if recognizer == nil {
		return nil, fmt.Errorf("asr: failed to initialize streaming recognizer")
	}

	stream := sherpa.NewOnlineStream(recognizer)
	if stream == nil {
		sherpa.DeleteOnlineRecognizer(recognizer)
		return nil, fmt.Errorf("asr: failed to create streaming decode session")
	}

	return &Stream{recognizer: recognizer, stream: stream, sampleRate: cfg.SampleRate}, nil
}

// AcceptWaveform feeds one frame of mono float32 PCM samples to the
// recognizer and drains any ready decode steps, returning the updated
// partial transcript only if it changed since the last call.
func (s *Stream) AcceptWaveform(samples []float32) (text string, changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stream.AcceptWaveform(s.sampleRate, samples)
	for s.recognizer.IsReady(s.stream) {
		s.recognizer.Decode(s.stream)
	}

	result := s.recognizer.GetResult(s.stream)
	if result == nil {
		return s.lastText, false, nil
	}
	text = result.Text
	if text == s.lastText {
		return text, false, nil
	}
	s.lastText = text
	return text, true, nil
}

// Close releases the recognizer and decode stream.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream != nil {
		sherpa.DeleteOnlineStream(s.stream)
		s.stream = nil
	}
	if s.recognizer != nil {
		sherpa.DeleteOnlineRecognizer(s.recognizer)
		s.recognizer = nil
	}
}

// detectBestProvider picks coreml on Apple Silicon and cpu everywhere
// else, the same heuristic the teacher's diarization engine uses.
func detectBestProvider() string {
	if runtime.GOOS == "darwin" && runtime.GOARCH == "arm64" {
		return "coreml"
	}
	return "cpu"
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
