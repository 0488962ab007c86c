package wizyvision

import (
	"encoding/json"
	"strings"
)

// SchemaMarker is the draft-07 $schema value emitted in every document the
// tool produces itself. Candidate documents only need the key to be present.
const SchemaMarker = "http://json-schema.org/draft-07/schema#"

// Document is an untrusted candidate application schema as decoded from
// completion-service output. It lives for one validation pass; nothing in
// this package retains it.
type Document map[string]interface{}

// Result is the outcome of one validation pass: a verdict plus the ordered
// list of violation messages. Valid is true if and only if Violations is
// empty.
type Result struct {
	Valid      bool
	Violations []string
}

// Message joins all violations into the single status line surfaced to
// callers when retries are exhausted.
func (r Result) Message() string {
	if r.Valid {
		return "schema is valid for WizyVision types"
	}
	return strings.Join(r.Violations, "; ")
}

// Properties returns the document's properties map, or nil when the key is
// absent or not an object.
func (d Document) Properties() map[string]interface{} {
	props, _ := d["properties"].(map[string]interface{})
	return props
}

// MarshalIndent renders the document as pretty-printed JSON.
func (d Document) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
