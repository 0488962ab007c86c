package wizyvision

// PredefinedFieldNames lists the built-in field templates in catalog order.
// Go maps do not preserve insertion order, so listings iterate this slice.
var PredefinedFieldNames = []string{
	"postRef",
	"typeId",
	"statusId",
	"privacyId",
	"description",
	"tags",
	"assignedTo",
	"memId",
	"createdAt",
	"updatedAt",
}

// corePredefinedFields are the templates that become required when selected.
var corePredefinedFields = []string{"postRef", "typeId", "statusId", "description"}

// PredefinedField returns the descriptor template for a built-in field name.
func PredefinedField(name string) (map[string]interface{}, bool) {
	switch name {
	case "postRef":
		return map[string]interface{}{
			"type":        "string",
			"x-wv-type":   string(FieldText),
			"description": "Case ID (unique identifier)",
			"minLength":   1,
		}, true
	case "typeId":
		return map[string]interface{}{
			"type":        "string",
			"x-wv-type":   string(FieldText),
			"description": "Application ID",
		}, true
	case "statusId":
		return map[string]interface{}{
			"type":        "string",
			"enum":        []interface{}{"open", "closed"},
			"default":     "open",
			"x-wv-type":   string(FieldDropdown),
			"description": "Status of the record",
		}, true
	case "privacyId":
		return map[string]interface{}{
			"type":        "string",
			"enum":        []interface{}{"public", "private", "restricted"},
			"x-wv-type":   string(FieldDropdown),
			"description": "Privacy level",
		}, true
	case "description":
		return map[string]interface{}{
			"type":        "string",
			"x-wv-type":   string(FieldParagraph),
			"description": "Detailed description",
			"minLength":   1,
		}, true
	case "tags":
		return map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"x-wv-type":   string(FieldCheckbox),
			"description": "Tags for categorization",
		}, true
	case "assignedTo":
		return map[string]interface{}{
			"type":        "string",
			"x-wv-type":   string(FieldPeople),
			"description": "Assigned user",
		}, true
	case "memId":
		return map[string]interface{}{
			"type":        "string",
			"x-wv-type":   string(FieldPeople),
			"description": "Created by user (auto-populated)",
		}, true
	case "createdAt":
		return map[string]interface{}{
			"type":        "string",
			"format":      "date-time",
			"x-wv-type":   string(FieldDate),
			"description": "Creation timestamp (auto-populated)",
		}, true
	case "updatedAt":
		return map[string]interface{}{
			"type":        "string",
			"format":      "date-time",
			"x-wv-type":   string(FieldDate),
			"description": "Last update timestamp (auto-updated)",
		}, true
	}
	return nil, false
}

// ExampleDocument returns the demonstration schema shown by the example
// command. It exercises most field types and always validates clean.
func ExampleDocument() Document {
	return Document{
		"$schema": SchemaMarker,
		"type":    "object",
		"properties": map[string]interface{}{
			"priority": map[string]interface{}{
				"type":      "string",
				"enum":      []interface{}{"Low", "Medium", "High"},
				"x-wv-type": string(FieldDropdown),
			},
			"details": map[string]interface{}{
				"type":      "string",
				"minLength": 10,
				"x-wv-type": string(FieldParagraph),
			},
			"isResolved": map[string]interface{}{
				"type":      "boolean",
				"default":   false,
				"x-wv-type": string(FieldToggle),
			},
			"assignee": map[string]interface{}{
				"type":      "string",
				"x-wv-type": string(FieldPeople),
			},
			"watchers": map[string]interface{}{
				"type":      "array",
				"items":     map[string]interface{}{"type": "string"},
				"x-wv-type": string(FieldPeopleList),
			},
			"scheduledAt": map[string]interface{}{
				"type":      "string",
				"format":    "date-time",
				"x-wv-type": string(FieldDate),
			},
			"site": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"latitude", "longitude"},
				"properties": map[string]interface{}{
					"latitude":  map[string]interface{}{"type": "number"},
					"longitude": map[string]interface{}{"type": "number"},
					"label":     map[string]interface{}{"type": "string"},
				},
				"x-wv-type": string(FieldLocation),
			},
		},
		"required": []interface{}{"priority", "details"},
	}
}

// PredefinedDocument returns a schema containing every predefined field
// template, with the core fields required.
func PredefinedDocument() Document {
	return CustomPredefinedDocument(PredefinedFieldNames)
}

// CustomPredefinedDocument builds a schema from a selection of predefined
// field names. Unknown names are skipped; core fields among the selection
// become required.
func CustomPredefinedDocument(selected []string) Document {
	properties := make(map[string]interface{})
	required := make([]interface{}, 0, len(corePredefinedFields))

	for _, name := range selected {
		field, ok := PredefinedField(name)
		if !ok {
			continue
		}
		properties[name] = field
		if contains(corePredefinedFields, name) {
			required = append(required, name)
		}
	}

	return Document{
		"$schema":    SchemaMarker,
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
