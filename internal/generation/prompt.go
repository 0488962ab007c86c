package generation

import (
	"fmt"
	"strings"

	"wvassist/internal/wizyvision"
)

// systemPreamble anchors the model on the output contract before the
// chain-of-thought steps. Kept separate so the escalation suffix can
// restate the process without repeating the catalog.
const systemPreamble = `You are a JSON schema generator for WizyVision applications. You will use Chain-of-Thought reasoning to create valid JSON schemas.`

const chainOfThoughtSteps = `## Chain-of-Thought Process:

Follow these steps in order:

### Step 1: Analyze the Use Case
- Identify the core purpose and domain of the application
- Determine what type of data needs to be tracked
- Consider the business workflow and user interactions

### Step 2: Identify Required Fields
- Determine which fields are essential for the core functionality
- Consider what information must be captured for each record
- Think about unique identifiers and primary keys

### Step 3: Select Appropriate Field Types
- Match each data requirement to an appropriate x-wv-type from the list above
- Ensure only supported field types are used

### Step 4: Define Validation Rules
- Set appropriate constraints (minLength, maxLength, etc.)
- Define required vs optional fields based on business logic
- Add meaningful descriptions for each field

### Step 5: Consider Workflow Requirements
- Determine if status tracking is needed (statusId with open/closed options)
- Consider assignment and ownership (assignedTo, memId)
- Think about audit trail requirements (createdAt, updatedAt)
- Include privacy controls if needed (privacyId)

### Step 6: Finalize Schema Structure
- Ensure JSON Schema Draft 7 compliance
- Include $schema and type properties
- Set appropriate required fields array`

const promptInstructions = `## Instructions:
1. Think through each step above before generating the schema
2. Use only the x-wv-type values listed above
3. Consider using predefined field templates for common requirements
4. Include appropriate validation rules and constraints
5. Add clear descriptions for each field
6. Set required fields based on the use case analysis
7. Always include $schema and type properties
8. For every property, include an "x-wv-type" key with one of the allowed values
9. Ensure the structure matches the chosen x-wv-type contract (e.g., Dropdown requires enum; Location requires latitude/longitude)
10. Return ONLY valid JSON, no explanations or markdown formatting`

const promptExample = `## Example:

**Input:** "Create a schema for incident reports with severity levels"

**Output:**
{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "priority": {"type": "string", "enum": ["Low", "Medium", "High"], "x-wv-type": "Dropdown"},
    "details": {"type": "string", "minLength": 5, "x-wv-type": "Paragraph"},
    "isResolved": {"type": "boolean", "default": false, "x-wv-type": "Toggle"},
    "assignee": {"type": "string", "x-wv-type": "People"},
    "watchers": {"type": "array", "items": {"type": "string"}, "x-wv-type": "People List"},
    "scheduledAt": {"type": "string", "format": "date-time", "x-wv-type": "Date"}
  },
  "required": ["priority", "details"]
}`

// EscalationSuffix restates the process more forcefully. Appended to the
// system prompt for the single in-attempt retry after a validation failure.
const EscalationSuffix = `

IMPORTANT: Please follow the Chain-of-Thought process more carefully:

1. First, think about what this use case really needs
2. Then, identify the essential fields step by step
3. Finally, create the schema with proper validation

Remember: Only use the specified WizyVision field types and ensure JSON Schema Draft 7 compliance.`

// SystemPrompt assembles the fixed portion of the generation prompt: the
// type-contract catalog (derived from the registry so prompt and validator
// can never drift), the predefined templates, the reasoning steps and the
// output rules.
func SystemPrompt(includeExamples bool) string {
	var b strings.Builder
	b.WriteString(systemPreamble)
	b.WriteString("\n\n## Allowed x-wv-type values (choose one per field):\n")
	for _, ft := range wizyvision.AllFieldTypes() {
		fmt.Fprintf(&b, "- %s: %s\n", ft, contractSummary(ft))
	}

	b.WriteString("\n## Predefined Field Templates (recommended for common use cases):\n")
	for _, name := range wizyvision.PredefinedFieldNames {
		field, _ := wizyvision.PredefinedField(name)
		desc, _ := field["description"].(string)
		wvType, _ := field["x-wv-type"].(string)
		fmt.Fprintf(&b, "- %s: %s field. %s\n", name, wvType, desc)
	}

	b.WriteString("\n")
	b.WriteString(chainOfThoughtSteps)
	b.WriteString("\n\n")
	b.WriteString(promptInstructions)
	if includeExamples {
		b.WriteString("\n\n")
		b.WriteString(promptExample)
	}
	return b.String()
}

// UserPrompt wraps the caller's free-text request.
func UserPrompt(userRequest string) string {
	return fmt.Sprintf("User Request: %q\n\nNow, follow the Chain-of-Thought process and generate the schema.", userRequest)
}

// contractSummary renders one catalog line from a field type's contract.
func contractSummary(ft wizyvision.FieldType) string {
	contract, ok := wizyvision.ContractFor(ft)
	if !ok {
		return ""
	}

	var parts []string
	switch {
	case len(contract.TypeIn) > 0:
		parts = append(parts, strings.Join(contract.TypeIn, " or "))
	case contract.ItemType != "":
		parts = append(parts, fmt.Sprintf("array of %ss", contract.ItemType))
	case contract.Object != nil:
		members := make([]string, 0, len(contract.Object.Required))
		for _, m := range contract.Object.Required {
			members = append(members, fmt.Sprintf("%s:%s", m, contract.Object.MemberTypes[m]))
		}
		parts = append(parts, fmt.Sprintf("object with %s", strings.Join(members, ", ")))
	default:
		parts = append(parts, contract.Type)
	}

	if len(contract.FormatIn) > 0 {
		parts = append(parts, fmt.Sprintf("format %s", strings.Join(contract.FormatIn, " or ")))
	}
	if contract.RequiresEnum {
		parts = append(parts, "must include enum array")
	}
	return strings.Join(parts, ", ")
}
