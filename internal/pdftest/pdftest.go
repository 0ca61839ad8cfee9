// Package pdftest builds small PDF documents for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Dim is a page size in PDF points.
type Dim struct {
	Width  float64
	Height float64
}

// Distinct returns n page sizes that differ from each other, so a page can be
// identified by its dimensions after it has been copied.
func Distinct(n int) []Dim {
	dims := make([]Dim, n)
	for i := range dims {
		dims[i] = Dim{Width: float64(200 + 20*i), Height: float64(300 + 10*i)}
	}
	return dims
}

// Build returns a valid PDF with one page per dim. Each page draws a filled
// rectangle inset from its edges.
func Build(dims ...Dim) []byte {
	var buf bytes.Buffer
	var offsets []int

	startObj := func() int {
		offsets = append(offsets, buf.Len())
		return len(offsets)
	}

	buf.WriteString("%PDF-1.4\n")

	startObj()
	buf.WriteString("1 0 obj\n<</Type/Catalog/Pages 2 0 R>>\nendobj\n")

	kids := make([]string, len(dims))
	for i := range dims {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	startObj()
	fmt.Fprintf(&buf, "2 0 obj\n<</Type/Pages/Kids[%s]/Count %d>>\nendobj\n",
		strings.Join(kids, " "), len(dims))

	for i, d := range dims {
		pageObj := startObj()
		fmt.Fprintf(&buf, "%d 0 obj\n<</Type/Page/Parent 2 0 R/MediaBox[0 0 %g %g]/Resources<<>>/Contents %d 0 R>>\nendobj\n",
			pageObj, d.Width, d.Height, pageObj+1)

		content := fmt.Sprintf("0.%d 0 0 rg 10 10 %g %g re f\n", (i%9)+1, d.Width-20, d.Height-20)
		contentObj := startObj()
		fmt.Fprintf(&buf, "%d 0 obj\n<</Length %d>>\nstream\n%sendstream\nendobj\n",
			contentObj, len(content), content)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f\r\n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n\r\n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<</Size %d/Root 1 0 R>>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

