package extractor

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/rotisserie/eris"
)

// TextExtractor pulls text out of a file on disk.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// CommandExtractor runs an external tool that prints the text of a file to
// stdout.
type CommandExtractor struct {
	name    string
	binPath string
	args    func(path string) []string
}

// NewPdfToText extracts PDF text with `pdftotext -layout <file> -`. If binPath
// is empty, "pdftotext" is used.
func NewPdfToText(binPath string) *CommandExtractor {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &CommandExtractor{
		name:    "pdftotext",
		binPath: binPath,
		args:    func(path string) []string { return []string{"-layout", path, "-"} },
	}
}

// NewTesseract recognizes English text in an image with
// `tesseract <file> stdout -l eng`. If binPath is empty, "tesseract" is used.
func NewTesseract(binPath string) *CommandExtractor {
	if binPath == "" {
		binPath = "tesseract"
	}
	return &CommandExtractor{
		name:    "tesseract",
		binPath: binPath,
		args:    func(path string) []string { return []string{path, "stdout", "-l", "eng"} },
	}
}

// ExtractText runs the tool and returns its stdout.
func (c *CommandExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, c.binPath, c.args(path)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "extractor: %s failed for %s: %s", c.name, path, stderr.String())
	}
	return stdout.String(), nil
}
