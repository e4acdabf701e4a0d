package wizard

// Step is a position in the contact wizard.
type Step int

const (
	StepIndustry Step = iota + 1
	StepDetails
	StepContact
	StepSubmitted
)

// LastInputStep is the step that submits.
const LastInputStep = StepContact

// Name is the short title shown in the step indicator.
func (s Step) Name() string {
	switch s {
	case StepIndustry:
		return "Industry"
	case StepDetails:
		return "Details"
	case StepContact:
		return "Contact"
	case StepSubmitted:
		return "Submitted"
	}
	return "Unknown"
}

// Description is the prompt shown under the step title.
func (s Step) Description() string {
	switch s {
	case StepIndustry:
		return "Select your industry"
	case StepDetails:
		return "Tell us about your needs"
	case StepContact:
		return "Your contact information"
	case StepSubmitted:
		return ThankYouMessage
	}
	return ""
}

const (
	ThankYouTitle   = "Thank You!"
	ThankYouMessage = "We've received your message and will get back to you soon."
)

// FieldKind tells a front-end which control to render.
type FieldKind string

const (
	FieldSelect   FieldKind = "select"
	FieldText     FieldKind = "text"
	FieldTextArea FieldKind = "textarea"
	FieldEmail    FieldKind = "email"
	FieldPhone    FieldKind = "tel"
)

// Option is one choice of a select field.
type Option struct {
	Value string
	Label string
}

// Field describes one input of a step.
type Field struct {
	Name        string
	Label       string
	Kind        FieldKind
	Required    bool
	Placeholder string
	Options     []Option
}

// Industries offered on the first step.
var Industries = []Option{
	{Value: "Aviation", Label: "Aviation"},
	{Value: "Energy", Label: "Energy"},
	{Value: "Automotive", Label: "Automotive"},
	{Value: "Manufacturing", Label: "Manufacturing"},
	{Value: "Other", Label: "Other"},
}

// Timelines offered on the details step.
var Timelines = []Option{
	{Value: "immediate", Label: "Immediate"},
	{Value: "1-3 months", Label: "1-3 months"},
	{Value: "3-6 months", Label: "3-6 months"},
	{Value: "6+ months", Label: "6+ months"},
}

var stepFields = map[Step][]Field{
	StepIndustry: {
		{Name: "industry", Label: "Industry", Kind: FieldSelect, Required: true, Placeholder: "Select industry", Options: Industries},
	},
	StepDetails: {
		{Name: "need", Label: "What do you need help with?", Kind: FieldTextArea, Required: true, Placeholder: "Describe your requirements..."},
		{Name: "timeline", Label: "Timeline", Kind: FieldSelect, Required: true, Placeholder: "Select timeline", Options: Timelines},
	},
	StepContact: {
		{Name: "firstName", Label: "First Name", Kind: FieldText, Required: true},
		{Name: "lastName", Label: "Last Name", Kind: FieldText, Required: true},
		{Name: "email", Label: "Email", Kind: FieldEmail, Required: true},
		{Name: "phone", Label: "Phone", Kind: FieldPhone},
		{Name: "company", Label: "Company", Kind: FieldText},
		{Name: "message", Label: "Message (Optional)", Kind: FieldTextArea},
	},
}

// Fields returns the inputs rendered on step. Submitted has none.
func Fields(step Step) []Field {
	fields := stepFields[step]
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// StepFor returns the step that owns field, or 0 when no step does.
func StepFor(field string) Step {
	for _, step := range []Step{StepIndustry, StepDetails, StepContact} {
		for _, f := range stepFields[step] {
			if f.Name == field {
				return step
			}
		}
	}
	return 0
}
