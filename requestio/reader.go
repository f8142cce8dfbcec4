package requestio

import (
	"encoding/json"
	"fmt"
	"io"
)

// ReadMakeBase decodes and validates a make_base document from r.
func ReadMakeBase(r io.Reader) (*MakeBaseDocument, error) {
	var doc MakeBaseDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("requestio: decoding make_base document: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("requestio: invalid make_base document: %w", err)
	}
	return &doc, nil
}

// ReadProcessRequests decodes and validates a process_requests document
// from r.
func ReadProcessRequests(r io.Reader) (*ProcessRequestsDocument, error) {
	var doc ProcessRequestsDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("requestio: decoding process_requests document: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("requestio: invalid process_requests document: %w", err)
	}
	return &doc, nil
}

// WriteResponses encodes the response documents as a JSON array to w.
func WriteResponses(w io.Writer, responses []map[string]any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(responses); err != nil {
		return fmt.Errorf("requestio: encoding responses: %w", err)
	}
	return nil
}
