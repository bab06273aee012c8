// Package onnxrerank is an optional local cross-encoder Reranker backed by
// ONNX Runtime, for deployments that want neural reranking without a
// network round trip.
package onnxrerank

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daulet/tokenizers"
	onnxruntime "github.com/yalue/onnxruntime_go"

	"github.com/pommel-dev/probe/internal/rerank"
)

// cacheEnvVar is the one environment variable the core's reranker
// collaborator recognizes: it overrides the model cache directory.
const cacheEnvVar = "FASTEMBED_CACHE_PATH"

// Reranker scores (query, document) pairs with a local cross-encoder model:
// tokenize the pair jointly, run one ONNX forward pass, and read a single
// relevance logit from the model's output.
type Reranker struct {
	session   *onnxruntime.DynamicAdvancedSession
	tokenizer *tokenizers.Tokenizer
}

// New loads a cross-encoder model from modelDir, expecting model.onnx and
// tokenizer.json there (or wherever FASTEMBED_CACHE_PATH points, if set).
func New(modelDir string) (*Reranker, error) {
	if override := os.Getenv(cacheEnvVar); override != "" {
		modelDir = override
	}

	onnxPath := filepath.Join(modelDir, "model.onnx")
	tokenizerPath := filepath.Join(modelDir, "tokenizer.json")

	tok, err := tokenizers.FromFile(tokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("onnxrerank: load tokenizer: %w", err)
	}

	inputs, outputs, err := onnxruntime.GetInputOutputInfo(onnxPath)
	if err != nil {
		tok.Close()
		return nil, fmt.Errorf("onnxrerank: model info: %w", err)
	}

	inputNames := make([]string, len(inputs))
	for i := range inputs {
		inputNames[i] = inputs[i].Name
	}
	outputNames := make([]string, len(outputs))
	for i := range outputs {
		outputNames[i] = outputs[i].Name
	}

	session, err := onnxruntime.NewDynamicAdvancedSession(onnxPath, inputNames, outputNames, nil)
	if err != nil {
		tok.Close()
		return nil, fmt.Errorf("onnxrerank: create session: %w", err)
	}

	return &Reranker{session: session, tokenizer: tok}, nil
}

const maxSequenceTokens = 512

// Rerank scores each document against query with one forward pass per
// document and returns the top `limit` in descending score.
func (r *Reranker) Rerank(ctx context.Context, query string, docs []rerank.Document, limit int) (rerank.Result, error) {
	type scored struct {
		doc   rerank.Document
		score float64
	}
	scoredDocs := make([]scored, 0, len(docs))

	for _, d := range docs {
		select {
		case <-ctx.Done():
			return rerank.Result{}, ctx.Err()
		default:
		}
		s, err := r.scorePair(query, d.Content)
		if err != nil {
			return rerank.Result{}, fmt.Errorf("onnxrerank: %w", err)
		}
		scoredDocs = append(scoredDocs, scored{doc: d, score: s})
	}

	for i := 1; i < len(scoredDocs); i++ {
		for j := i; j > 0 && scoredDocs[j-1].score < scoredDocs[j].score; j-- {
			scoredDocs[j-1], scoredDocs[j] = scoredDocs[j], scoredDocs[j-1]
		}
	}

	if limit <= 0 || limit > len(scoredDocs) {
		limit = len(scoredDocs)
	}
	result := rerank.Result{
		Documents: make([]rerank.Document, limit),
		Scores:    make([]float64, limit),
	}
	for i := 0; i < limit; i++ {
		result.Documents[i] = scoredDocs[i].doc
		result.Scores[i] = scoredDocs[i].score
	}
	return result, nil
}

func (r *Reranker) scorePair(query, doc string) (float64, error) {
	encoding := r.tokenizer.EncodeWithOptions(query+" [SEP] "+doc, true,
		tokenizers.WithReturnAttentionMask(),
		tokenizers.WithReturnTypeIDs(),
	)

	n := len(encoding.IDs)
	if n > maxSequenceTokens {
		n = maxSequenceTokens
	}

	ids := make([]int64, n)
	mask := make([]int64, n)
	types := make([]int64, n)
	for i := 0; i < n; i++ {
		ids[i] = int64(encoding.IDs[i])
		mask[i] = int64(encoding.AttentionMask[i])
		types[i] = int64(encoding.TypeIDs[i])
	}

	shape := onnxruntime.NewShape(1, int64(n))

	idTensor, err := onnxruntime.NewTensor(shape, ids)
	if err != nil {
		return 0, err
	}
	defer idTensor.Destroy()

	maskTensor, err := onnxruntime.NewTensor(shape, mask)
	if err != nil {
		return 0, err
	}
	defer maskTensor.Destroy()

	typeTensor, err := onnxruntime.NewTensor(shape, types)
	if err != nil {
		return 0, err
	}
	defer typeTensor.Destroy()

	inputs := []onnxruntime.Value{idTensor, maskTensor, typeTensor}
	outputs := []onnxruntime.Value{nil}
	if err := r.session.Run(inputs, outputs); err != nil {
		return 0, fmt.Errorf("inference: %w", err)
	}

	logits, ok := outputs[0].(*onnxruntime.Tensor[float32])
	if !ok {
		return 0, fmt.Errorf("unexpected output type")
	}
	defer logits.Destroy()

	data := logits.GetData()
	if len(data) == 0 {
		return 0, fmt.Errorf("empty output")
	}
	return float64(data[0]), nil
}

func (r *Reranker) Name() string { return "onnx-cross-encoder" }

func (r *Reranker) Available(ctx context.Context) bool {
	return r.session != nil
}

// Close releases the ONNX session and tokenizer.
func (r *Reranker) Close() error {
	if r.tokenizer != nil {
		r.tokenizer.Close()
	}
	if r.session != nil {
		return r.session.Destroy()
	}
	return nil
}
