package wizyvision

// ObjectShape describes the structural requirements a Location-style
// object property must satisfy: which member names must appear in the
// property's required list, and the primitive type each member must
// declare in its nested properties map.
type ObjectShape struct {
	// Required member names (must appear in the descriptor's "required" array
	// and in its "properties" map).
	Required []string

	// MemberTypes maps member name to its expected primitive JSON type.
	// Members beyond Required (e.g. an optional label) may appear here too;
	// they are only checked when Required lists them.
	MemberTypes map[string]string
}

// TypeContract is the set of structural constraints a property must satisfy
// given its FieldType. Zero values mean "constraint not declared"; all
// declared constraints combine independently.
type TypeContract struct {
	// Type requires the declared JSON type to equal this value exactly.
	Type string

	// TypeIn requires the declared JSON type to be a member of this set.
	TypeIn []string

	// FormatIn requires the "format" string to be a member of this set.
	FormatIn []string

	// RequiresEnum requires a non-empty "enum" array to be present.
	RequiresEnum bool

	// ItemType requires declared type "array" whose items descriptor
	// declares this type.
	ItemType string

	// Object requires declared type "object" matching the given shape.
	Object *ObjectShape
}

// ContractFor returns the structural contract for a FieldType.
// The dispatch is an exhaustive switch over the closed set, so an unknown
// tag is unrepresentable here; the validator reports it before lookup.
func ContractFor(ft FieldType) (TypeContract, bool) {
	switch ft {
	case FieldToggle:
		return TypeContract{Type: "boolean"}, true
	case FieldCheckbox:
		return TypeContract{Type: "array", ItemType: "string"}, true
	case FieldDate:
		return TypeContract{Type: "string", FormatIn: []string{"date", "date-time"}}, true
	case FieldNumber:
		return TypeContract{TypeIn: []string{"number", "integer"}}, true
	case FieldLocation:
		return TypeContract{
			Type: "object",
			Object: &ObjectShape{
				Required: []string{"latitude", "longitude"},
				MemberTypes: map[string]string{
					"latitude":  "number",
					"longitude": "number",
					"label":     "string",
				},
			},
		}, true
	case FieldDropdown:
		return TypeContract{Type: "string", RequiresEnum: true}, true
	case FieldText:
		return TypeContract{Type: "string"}, true
	case FieldParagraph:
		return TypeContract{Type: "string"}, true
	case FieldPeople:
		return TypeContract{Type: "string"}, true
	case FieldPeopleList:
		return TypeContract{Type: "array", ItemType: "string"}, true
	case FieldSignature:
		return TypeContract{Type: "string"}, true
	}
	return TypeContract{}, false
}
