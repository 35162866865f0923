package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	mimePDF  = "application/pdf"
	mimeText = "text/plain"
)

// Text extracts plain text from an uploaded resume payload. PDF resumes go
// through github.com/ledongthuc/pdf; plain-text uploads pass through as-is.
func Text(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch normalizeMimeType(mimeType, fileName) {
	case mimePDF:
		text, err := extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("extract resume %s: %w", fileName, err)
		}
		return text, nil
	case mimeText:
		return strings.TrimSpace(string(data)), nil
	default:
		return "", fmt.Errorf("unsupported resume type: %s", mimeType)
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func normalizeMimeType(mimeType, fileName string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean != "" && clean != "application/octet-stream" {
		return clean
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return mimePDF
	case ".txt":
		return mimeText
	default:
		return clean
	}
}
