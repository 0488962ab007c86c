package wizyvision

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateValue validates an arbitrary decoded JSON value as a candidate
// document. A non-object top level is reported as a violation, never a
// panic; adversarial input must fail gracefully.
func ValidateValue(v interface{}) Result {
	doc, ok := v.(map[string]interface{})
	if !ok {
		return Result{Violations: []string{"document must be a JSON object"}}
	}
	return Validate(Document(doc))
}

// Validate checks a candidate document against the WizyVision field-type
// contract. All checks run; violations accumulate rather than short-circuit
// so the caller sees every defect in a single pass. The function is pure:
// validating the same document twice yields identical results.
func Validate(doc Document) Result {
	var violations []string

	if err := checkDraft7(doc); err != nil {
		violations = append(violations, fmt.Sprintf("document is not valid JSON Schema draft-07: %s", firstLine(err.Error())))
	}

	if t, _ := doc["type"].(string); t != "object" {
		violations = append(violations, "schema 'type' must be 'object'")
	}
	if _, ok := doc["$schema"]; !ok {
		violations = append(violations, "schema must include '$schema' property")
	}

	props := doc.Properties()
	if len(props) == 0 {
		violations = append(violations, "schema must define a non-empty 'properties' object")
	}

	for _, name := range sortedKeys(props) {
		violations = append(violations, validateProperty(name, props[name])...)
	}

	return Result{Valid: len(violations) == 0, Violations: violations}
}

// validateProperty checks one declared property against its field-type
// contract. Structural defects that make further checks meaningless
// (non-object descriptor, missing or unknown tag) stop the walk for that
// property only.
func validateProperty(name string, raw interface{}) []string {
	prop, ok := raw.(map[string]interface{})
	if !ok {
		return []string{fmt.Sprintf("property '%s' must be an object schema", name)}
	}

	tag, present := prop["x-wv-type"]
	if !present {
		return []string{fmt.Sprintf("property '%s' must include 'x-wv-type'", name)}
	}
	tagStr, _ := tag.(string)
	ft, known := ParseFieldType(tagStr)
	if !known {
		return []string{fmt.Sprintf("property '%s' has invalid x-wv-type '%v'", name, tag)}
	}

	contract, _ := ContractFor(ft)
	declared, _ := prop["type"].(string)

	var violations []string

	if contract.Type != "" && declared != contract.Type {
		violations = append(violations,
			fmt.Sprintf("'%s' with x-wv-type '%s' must have type '%s'", name, ft, contract.Type))
	}
	if len(contract.TypeIn) > 0 && !contains(contract.TypeIn, declared) {
		violations = append(violations,
			fmt.Sprintf("'%s' with x-wv-type '%s' type must be one of [%s]", name, ft, strings.Join(contract.TypeIn, ", ")))
	}

	if len(contract.FormatIn) > 0 {
		format, _ := prop["format"].(string)
		if !contains(contract.FormatIn, format) {
			violations = append(violations,
				fmt.Sprintf("'%s' must specify format in [%s]", name, strings.Join(contract.FormatIn, ", ")))
		}
	}

	if contract.RequiresEnum {
		enum, ok := prop["enum"].([]interface{})
		if !ok || len(enum) == 0 {
			violations = append(violations,
				fmt.Sprintf("'%s' with x-wv-type '%s' must define a non-empty 'enum' array", name, ft))
		}
	}

	if contract.ItemType != "" {
		items, ok := prop["items"].(map[string]interface{})
		if !ok || items["type"] != contract.ItemType {
			violations = append(violations,
				fmt.Sprintf("array property '%s' must have items of type '%s'", name, contract.ItemType))
		}
	}

	if contract.Object != nil {
		violations = append(violations, validateObjectShape(name, prop, contract.Object)...)
	}

	return violations
}

func validateObjectShape(name string, prop map[string]interface{}, shape *ObjectShape) []string {
	var violations []string

	required := stringSlice(prop["required"])
	for _, member := range shape.Required {
		if !contains(required, member) {
			violations = append(violations,
				fmt.Sprintf("'%s' must require %s", name, strings.Join(shape.Required, " and ")))
			break
		}
	}

	members, _ := prop["properties"].(map[string]interface{})
	for _, member := range shape.Required {
		want := shape.MemberTypes[member]
		def, _ := members[member].(map[string]interface{})
		if def == nil || def["type"] != want {
			violations = append(violations,
				fmt.Sprintf("'%s' must define '%s' with type '%s'", name, member, want))
		}
	}

	return violations
}

// checkDraft7 verifies the document is a structurally valid JSON Schema
// draft-07 document, mirroring a Draft7Validator.check_schema pass. The
// $schema marker is stripped first: its presence is checked separately and
// its value is deliberately unconstrained, so a placeholder value must not
// fail the compliance check.
func checkDraft7(doc Document) error {
	stripped := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		if k == "$schema" {
			continue
		}
		stripped[k] = v
	}

	raw, err := json.Marshal(stripped)
	if err != nil {
		return err
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource("candidate.json", bytes.NewReader(raw)); err != nil {
		return err
	}
	_, err = compiler.Compile("candidate.json")
	return err
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func stringSlice(v interface{}) []string {
	raw, _ := v.([]interface{})
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func contains(set []string, s string) bool {
	for _, member := range set {
		if member == s {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
