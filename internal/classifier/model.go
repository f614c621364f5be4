// Package classifier wraps the trained fake-news ONNX model behind a
// two-class (fake, real) scoring contract.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

const (
	LabelFake = "FAKE"
	LabelReal = "REAL"
)

// Score holds the normalized per-class probabilities of one inference.
type Score struct {
	Fake float64
	Real float64
}

// Label applies the fixed decision rule: FAKE only when strictly more
// probable than REAL. Ties resolve to REAL to avoid false fake flags.
func (s Score) Label() string {
	if s.Fake > s.Real {
		return LabelFake
	}
	return LabelReal
}

// Confidence is the winning probability scaled to [0,100].
func (s Score) Confidence() float64 {
	return math.Max(s.Fake, s.Real) * 100
}

// Model wraps the ONNX session and tokenizer.
type Model struct {
	session   *ort.AdvancedSession
	tokenizer *WordPieceTokenizer
	labels    []string
	fakeIndex int
	seqLen    int

	inputIDs      *ort.Tensor[int64]
	attentionMask *ort.Tensor[int64]
	output        *ort.Tensor[float32]

	mu sync.Mutex
}

// Load initializes the ONNX session and tokenizer from a bundle directory
// containing model.onnx, label_map.json and tokenizer/vocab.txt.
func Load(bundleDir string, seqLen int) (*Model, error) {
	if bundleDir == "" {
		return nil, errors.New("bundleDir is empty")
	}
	if seqLen <= 0 {
		seqLen = 256
	}

	libPath := resolveSharedLibraryPath(bundleDir)
	if libPath == "" {
		return nil, fmt.Errorf("onnxruntime shared library not found; set ONNXRUNTIME_SHARED_LIBRARY_PATH or install the runtime")
	}
	ort.SetSharedLibraryPath(libPath)
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	modelPath := filepath.Join(bundleDir, "model.onnx")
	labelsPath := filepath.Join(bundleDir, "label_map.json")
	vocabPath := filepath.Join(bundleDir, "tokenizer", "vocab.txt")

	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file missing at %s: %w", modelPath, err)
	}

	labels, err := loadLabels(labelsPath)
	if err != nil {
		return nil, fmt.Errorf("load labels: %w", err)
	}
	if len(labels) != 2 {
		return nil, fmt.Errorf("expected a binary label map, got %d labels", len(labels))
	}

	tokenizer, err := LoadWordPieceTokenizer(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	inputShape := ort.NewShape(1, int64(seqLen))
	inputIDs, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		return nil, fmt.Errorf("allocate input_ids tensor: %w", err)
	}
	attnMask, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		return nil, fmt.Errorf("allocate attention_mask tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(len(labels))))
	if err != nil {
		return nil, fmt.Errorf("allocate output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"input_ids", "attention_mask"},
		[]string{"logits"},
		[]ort.Value{inputIDs, attnMask},
		[]ort.Value{output},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &Model{
		session:       session,
		tokenizer:     tokenizer,
		labels:        labels,
		fakeIndex:     fakeLabelIndex(labels),
		seqLen:        seqLen,
		inputIDs:      inputIDs,
		attentionMask: attnMask,
		output:        output,
	}, nil
}

// Tokenize exposes the model's own tokenization of text, the sequence
// salience scores are aligned with.
func (m *Model) Tokenize(text string) []string {
	return m.tokenizer.Tokenize(text)
}

// Classify runs inference on text and returns normalized probabilities.
// Text beyond the model's sequence length is head-truncated, never an error.
func (m *Model) Classify(text string) (Score, error) {
	if m == nil || m.session == nil || m.tokenizer == nil {
		return Score{}, ErrModelUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return Score{}, fmt.Errorf("%w: empty input", ErrInferenceFailed)
	}

	pieces := m.tokenizer.Tokenize(text)
	inputIDs, attn := m.tokenizer.Encode(pieces, m.seqLen)

	m.mu.Lock()
	defer m.mu.Unlock()

	copy(m.inputIDs.GetData(), inputIDs)
	copy(m.attentionMask.GetData(), attn)

	if err := m.session.Run(); err != nil {
		return Score{}, fmt.Errorf("%w: onnx run: %v", ErrInferenceFailed, err)
	}

	raw := m.output.GetData()
	if len(raw) < 2 {
		return Score{}, fmt.Errorf("%w: model produced %d logits, want 2", ErrInferenceFailed, len(raw))
	}

	probs := softmax(raw[:2])
	return Score{
		Fake: float64(probs[m.fakeIndex]),
		Real: float64(probs[1-m.fakeIndex]),
	}, nil
}

// Close releases the ONNX session and its tensors.
func (m *Model) Close() {
	if m == nil {
		return
	}
	if m.session != nil {
		m.session.Destroy()
	}
	if m.inputIDs != nil {
		m.inputIDs.Destroy()
	}
	if m.attentionMask != nil {
		m.attentionMask.Destroy()
	}
	if m.output != nil {
		m.output.Destroy()
	}
}

// fakeLabelIndex maps the bundle's label taxonomy onto the fake class.
// A label containing "FAKE" wins; otherwise index 0 is the fake-equivalent
// class, which matches both the LABEL_0 training convention and the
// toxic-comment fallback model.
func fakeLabelIndex(labels []string) int {
	for i, l := range labels {
		if strings.Contains(strings.ToUpper(l), "FAKE") {
			return i
		}
	}
	return 0
}

func softmax(logits []float32) []float32 {
	max := logits[0]
	for _, l := range logits[1:] {
		if l > max {
			max = l
		}
	}
	var sum float64
	exps := make([]float64, len(logits))
	for i, l := range logits {
		exps[i] = math.Exp(float64(l - max))
		sum += exps[i]
	}
	out := make([]float32, len(logits))
	for i := range exps {
		out[i] = float32(exps[i] / sum)
	}
	return out
}

func loadLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil && len(arr) > 0 {
		return arr, nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	out := make([]string, len(m))
	for k, v := range m {
		idx, convErr := strconv.Atoi(k)
		if convErr != nil {
			return nil, fmt.Errorf("invalid label index %q: %w", k, convErr)
		}
		if idx < 0 || idx >= len(m) {
			return nil, fmt.Errorf("label index %d out of range", idx)
		}
		out[idx] = v
	}
	return out, nil
}

// resolveSharedLibraryPath attempts to locate a platform-specific onnxruntime shared library.
// If ONNXRUNTIME_SHARED_LIBRARY_PATH is set, it wins; otherwise we probe common names/locations.
func resolveSharedLibraryPath(bundleDir string) string {
	if env := strings.TrimSpace(os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")); env != "" {
		return env
	}

	names := []string{
		"libonnxruntime.dylib",
		"onnxruntime.dylib",
		"libonnxruntime.so",
		"onnxruntime.so",
		"onnxruntime.dll",
	}
	dirs := []string{
		bundleDir,
		filepath.Join(bundleDir, "lib"),
		".",
		"/opt/homebrew/lib",
		"/usr/local/lib",
		"/usr/lib",
	}

	for _, dir := range dirs {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
