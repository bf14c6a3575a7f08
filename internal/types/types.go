package types

import "time"

// Kind tells downstream pipelines how a document should be processed.
type Kind string

const (
	// KindDocument is text-bearing input (pdf, txt, docx) for text extraction.
	KindDocument Kind = "document"
	// KindImage goes through OCR, object detection and face matching.
	KindImage Kind = "image"
)

// Document is a file selected for ingestion. Path is relative to the
// scanned root and uses forward slashes.
type Document struct {
	Path        string    `json:"path"`
	Kind        Kind      `json:"kind"`
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"mod_time"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	// Changed is true when the fingerprint differs from the content cache
	// or no cache was consulted.
	Changed bool `json:"changed"`
}
