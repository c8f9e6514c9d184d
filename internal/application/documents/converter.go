// Package documents turns rendered HTML reports into PDF files through an
// external converter.
package documents

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"remate/internal/domain"
)

var ErrConversionFailed = errors.New("document conversion failed")

// Converter writes a PDF next to inputPath and returns its path.
type Converter interface {
	Convert(ctx context.Context, inputPath string) (string, error)
}

// ConversionError carries what the converter reported when it failed.
type ConversionError struct {
	Input  string
	Output string
	Detail string
	Err    error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("convert %s: %v", e.Input, e.Err)
	if d := strings.TrimSpace(e.Detail); d != "" {
		msg += ": " + d
	}
	return msg
}

func (e *ConversionError) Unwrap() []error {
	return []error{ErrConversionFailed, e.Err}
}

// OutputPath replaces the extension of input with .pdf, or appends it when
// there is none.
func OutputPath(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", domain.Invalid("path", "is required")
	}
	ext := filepath.Ext(input)
	if strings.EqualFold(ext, ".pdf") {
		return "", domain.Invalid("path", "is already a PDF")
	}
	return strings.TrimSuffix(input, ext) + ".pdf", nil
}

// prepare validates the input and derives the output path.
func prepare(input string) (string, error) {
	out, err := OutputPath(input)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(input)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.Invalid("path", fmt.Sprintf("%s does not exist", input))
		}
		return "", err
	}
	if info.IsDir() {
		return "", domain.Invalid("path", fmt.Sprintf("%s is a directory", input))
	}
	return out, nil
}
