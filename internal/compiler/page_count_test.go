package compiler

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalPDF builds a PDF with the given number of empty pages and a correct xref table
func minimalPDF(pages int) []byte {
	kids := make([]string, pages)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"",
	}
	for i := 0; i < pages; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
		objects = append(objects, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestCountPages(t *testing.T) {
	for _, pages := range []int{1, 2, 3} {
		t.Run(fmt.Sprintf("%d pages", pages), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "main.pdf")
			require.NoError(t, os.WriteFile(path, minimalPDF(pages), 0644))

			count, err := CountPages(path)
			require.NoError(t, err)
			assert.Equal(t, pages, count)
		})
	}
}

func TestCountPages_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	_, err := CountPages(path)
	assert.Error(t, err)
}

func TestCountPages_MissingFile(t *testing.T) {
	_, err := CountPages(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
