// Package wizyvision defines the WizyVision field-type contract system:
// the closed set of semantic field types (x-wv-type), the structural
// contract each type imposes on a JSON Schema property, and the validator
// that checks an untrusted candidate document against those contracts.
package wizyvision

// FieldType is a semantic tag classifying what kind of UI/data field a
// schema property represents. The set is closed and fixed at compile time;
// unknown tags are only representable in untrusted input.
type FieldType string

const (
	FieldToggle     FieldType = "Toggle"
	FieldCheckbox   FieldType = "Checkbox"
	FieldDate       FieldType = "Date"
	FieldNumber     FieldType = "Number"
	FieldLocation   FieldType = "Location"
	FieldDropdown   FieldType = "Dropdown"
	FieldText       FieldType = "Text"
	FieldParagraph  FieldType = "Paragraph"
	FieldPeople     FieldType = "People"
	FieldPeopleList FieldType = "People List"
	FieldSignature  FieldType = "Signature Field"
)

// AllFieldTypes returns every member of the closed set, in catalog order.
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldToggle,
		FieldCheckbox,
		FieldDate,
		FieldNumber,
		FieldLocation,
		FieldDropdown,
		FieldText,
		FieldParagraph,
		FieldPeople,
		FieldPeopleList,
		FieldSignature,
	}
}

// ParseFieldType maps a raw tag value to a FieldType.
// The second return is false for any value outside the fixed set.
func ParseFieldType(s string) (FieldType, bool) {
	ft := FieldType(s)
	switch ft {
	case FieldToggle, FieldCheckbox, FieldDate, FieldNumber, FieldLocation,
		FieldDropdown, FieldText, FieldParagraph, FieldPeople, FieldPeopleList,
		FieldSignature:
		return ft, true
	}
	return "", false
}

// Description returns the human-readable summary used for help output.
func (ft FieldType) Description() string {
	switch ft {
	case FieldToggle:
		return "A boolean switch (yes/no)"
	case FieldCheckbox:
		return "Multi-select from a list of defined values (array of enum strings)"
	case FieldDate:
		return "Date or date-time string"
	case FieldNumber:
		return "Numeric value"
	case FieldLocation:
		return "Geolocation object with latitude/longitude"
	case FieldDropdown:
		return "Single selection from a list of defined values (enum string)"
	case FieldText:
		return "Single-line text"
	case FieldParagraph:
		return "Multi-line text"
	case FieldPeople:
		return "Single user selection (userId string)"
	case FieldPeopleList:
		return "Multiple user selection (array of userId strings)"
	case FieldSignature:
		return "Signature data (string). If unsupported, treat as optional"
	}
	return ""
}
