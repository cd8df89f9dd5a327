package network

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitfsorg/tariscan-go/transaction"
)

// OutputSource supplies candidate outputs to scan. The scanner never fetches
// outputs itself.
type OutputSource interface {
	// Outputs returns the outputs to scan.
	Outputs(ctx context.Context) ([]*transaction.TransactionOutput, error)
}

// FileSource reads outputs from a file with one hex-encoded Borsh output per
// line. Blank lines and lines starting with '#' are skipped.
type FileSource struct {
	Path string
}

// Outputs implements OutputSource.
func (f *FileSource) Outputs(ctx context.Context) ([]*transaction.TransactionOutput, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("network: open output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadOutputs(ctx, file)
}

// ReadOutputs parses the FileSource line format from r.
func ReadOutputs(ctx context.Context, r io.Reader) ([]*transaction.TransactionOutput, error) {
	var outputs []*transaction.TransactionOutput
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out, err := transaction.DecodeHex(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedSource, lineNo, err)
		}
		outputs = append(outputs, out)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("network: read outputs: %w", err)
	}
	return outputs, nil
}

// WriteOutputs writes outputs in the FileSource line format.
func WriteOutputs(w io.Writer, outputs []*transaction.TransactionOutput) error {
	for i, out := range outputs {
		h, err := out.Hex()
		if err != nil {
			return fmt.Errorf("network: encode output %d: %w", i, err)
		}
		if _, err := fmt.Fprintln(w, h); err != nil {
			return fmt.Errorf("network: write output %d: %w", i, err)
		}
	}
	return nil
}

// StaticSource serves a fixed slice of outputs.
type StaticSource []*transaction.TransactionOutput

// Outputs implements OutputSource.
func (s StaticSource) Outputs(ctx context.Context) ([]*transaction.TransactionOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s, nil
}
