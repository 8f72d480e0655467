package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/faultlog/internal/record"
)

// document is the wire shape of the detail blob. Field order is fixed by the
// struct; changing it changes the stored bytes for every new write.
type document struct {
	Application string    `json:"application"`
	Host        string    `json:"host"`
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	Message     string    `json:"message"`
	User        string    `json:"user"`
	StatusCode  int       `json:"statusCode"`
	Time        time.Time `json:"time"`
	Detail      string    `json:"detail"`
}

// Encode serializes a record to the detail document text.
// HTML escaping is disabled so < > & survive verbatim.
func Encode(r record.ErrorRecord) (string, error) {
	doc := document{
		Application: r.Application,
		Host:        r.Host,
		Type:        r.Type,
		Source:      r.Source,
		Message:     r.Message,
		User:        r.User,
		StatusCode:  r.StatusCode,
		Time:        r.Time.UTC(),
		Detail:      r.Detail,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encode error document: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Decode parses detail document text back into a record.
// Returns an error on malformed input; it never returns a partial record.
func Decode(text string) (record.ErrorRecord, error) {
	var doc document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return record.ErrorRecord{}, fmt.Errorf("decode error document: %w", err)
	}
	return record.ErrorRecord{
		Application: doc.Application,
		Host:        doc.Host,
		Type:        doc.Type,
		Source:      doc.Source,
		Message:     doc.Message,
		User:        doc.User,
		StatusCode:  doc.StatusCode,
		Time:        doc.Time.UTC(),
		Detail:      doc.Detail,
	}, nil
}
