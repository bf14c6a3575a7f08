package core

import (
	"encoding/json"
	"fmt"
	"io"
)

// MarshalDocuments writes docs as an indented JSON array. A nil slice is
// written as [] so consumers never see null.
func MarshalDocuments(w io.Writer, docs []Document) error {
	if docs == nil {
		docs = []Document{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}
	return nil
}

// UnmarshalDocuments reads a JSON array written by MarshalDocuments.
func UnmarshalDocuments(r io.Reader) ([]Document, error) {
	docs := []Document{}
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return docs, nil
}
