// Package pdftext extracts plain text from exam PDFs. Layout analysis and OCR
// are out of scope here; pages without extractable text simply contribute
// empty lines.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"
)

// Extractor turns a PDF stream into plain text in reading order.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader) (string, error)
	ExtractPath(ctx context.Context, path string) (string, error)
}

// PopplerExtractor shells out to pdftotext.
type PopplerExtractor struct {
	Bin     string
	Timeout time.Duration
}

func NewPopplerExtractor(bin string) *PopplerExtractor {
	if bin == "" {
		bin = "pdftotext"
	}
	return &PopplerExtractor{Bin: bin, Timeout: 30 * time.Second}
}

func (p *PopplerExtractor) Extract(ctx context.Context, r io.Reader) (string, error) {
	f, err := os.CreateTemp("", "exam-*.pdf")
	if err != nil {
		return "", err
	}
	defer func() { f.Close(); os.Remove(f.Name()) }()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return p.ExtractPath(ctx, f.Name())
}

func (p *PopplerExtractor) ExtractPath(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath(p.Bin); err != nil {
		return "", errors.New(p.Bin + " not found in PATH")
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, p.Bin, path, "-")
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.New(stderr.String())
	}
	return out.String(), nil
}
