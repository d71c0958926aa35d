// Package pdfextract pulls plain text out of PDF documents one page at a time.
package pdfextract

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/ledongthuc/pdf"
)

// Extractor reads transcript pages from PDF files on disk.
type Extractor struct{}

// ExtractPages returns the text of every page of the PDF at path, in order. A page
// whose text cannot be read yields "".
func (Extractor) ExtractPages(path string) ([]string, error) {
	return ExtractPages(path)
}

func ExtractPages(path string) (pages []string, err error) {
	defer recoverParse(&err)

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf failed: %w", err)
	}
	defer f.Close()
	return readPages(r), nil
}

// ReadPages reads the entire content of r and extracts page texts from the PDF.
// An empty input yields no pages and no error.
func ReadPages(r io.Reader) (pages []string, err error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf failed: %w", err)
	}
	if len(b) == 0 {
		return nil, nil
	}
	defer recoverParse(&err)

	pdfReader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf failed: %w", err)
	}
	return readPages(pdfReader), nil
}

func readPages(r *pdf.Reader) []string {
	n := r.NumPage()
	pages := make([]string, n)
	for i := 1; i <= n; i++ {
		pages[i-1] = pageText(r, i)
	}
	return pages
}

func pageText(r *pdf.Reader, i int) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("extract pdf page %d failed: %v", i, rec)
			text = ""
		}
	}()

	page := r.Page(i)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		log.Printf("extract pdf page %d failed: %v", i, err)
		return ""
	}
	return text
}

// The pdf package panics on some malformed documents.
func recoverParse(err *error) {
	if rec := recover(); rec != nil {
		*err = fmt.Errorf("parse pdf failed: %v", rec)
	}
}
