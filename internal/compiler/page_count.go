package compiler

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// CountPages returns the number of pages in a PDF file
func CountPages(pdfPath string) (int, error) {
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF %s: %w", pdfPath, err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse PDF %s: %w", pdfPath, err)
	}
	return reader.NumPage(), nil
}
