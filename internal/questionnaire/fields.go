package questionnaire

import "fmt"

// Field names as sent to the prediction endpoint.
const (
	FieldAge       = "age"
	FieldEthnicity = "ethnicity"
	FieldSex       = "sex"
	FieldFamilyASD = "familyASD"
	FieldJaundice  = "jaundice"
)

// Answer values shared by the yes/no items.
const (
	Yes = "Yes"
	No  = "No"
)

// InputKind selects how a field is collected.
type InputKind int

const (
	KindNumeric InputKind = iota // free text, digits only
	KindChoice                   // a short row of options
	KindSelect                   // a longer list, one shown at a time
)

// Option is a selectable value with the label shown to the user.
type Option struct {
	Label string
	Value string
}

// Field describes one entry of the answer set.
type Field struct {
	Name    string
	Prompt  string
	Kind    InputKind
	Options []Option
}

// EthnicityOptions lists the background labels the prediction service knows.
var EthnicityOptions = []string{
	"White European",
	"Asian",
	"Middle Eastern",
	"Black",
	"South Asian",
	"Hispanic",
	"Others",
	"Latino",
	"Pacifica",
	"Mixed",
	"Native Indian",
}

// BehaviorQuestions are the ten screening items, q1 through q10.
var BehaviorQuestions = []string{
	"Does your child look at you when you call their name?",
	"Is it easy to make eye contact with your child?",
	"Does your child point to show you things they're interested in?",
	"Does your child enjoy playing pretend games?",
	"Does your child try to comfort you when you're sad?",
	"Can your child easily describe their first word?",
	"Does your child wave goodbye without being reminded?",
	"Does your child follow where you're looking?",
	"Does your child show you things they find interesting?",
	"Does your child respond when you call their name from another room?",
}

var (
	sexOptions = []Option{{Label: "Boy", Value: "Male"}, {Label: "Girl", Value: "Female"}}

	// History items list "No" first, behavior items "Yes" first.
	noYesOptions = []Option{{Label: No, Value: No}, {Label: Yes, Value: Yes}}
	yesNoOptions = []Option{{Label: Yes, Value: Yes}, {Label: No, Value: No}}
)

var fields = buildFields()

var fieldIndex = func() map[string]int {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.Name] = i
	}
	return idx
}()

func buildFields() []Field {
	ethnicity := make([]Option, 0, len(EthnicityOptions))
	for _, e := range EthnicityOptions {
		ethnicity = append(ethnicity, Option{Label: e, Value: e})
	}

	out := []Field{
		{Name: FieldAge, Prompt: "How old is your child? (in months)", Kind: KindNumeric},
		{Name: FieldEthnicity, Prompt: "What is your child's background?", Kind: KindSelect, Options: ethnicity},
		{Name: FieldSex, Prompt: "Is your child a boy or a girl?", Kind: KindChoice, Options: sexOptions},
		{Name: FieldFamilyASD, Prompt: "Has anyone in your family been diagnosed with ASD?", Kind: KindChoice, Options: noYesOptions},
		{Name: FieldJaundice, Prompt: "Did your child have jaundice when they were born?", Kind: KindChoice, Options: noYesOptions},
	}
	for i, q := range BehaviorQuestions {
		out = append(out, Field{
			Name:    QuestionField(i + 1),
			Prompt:  q,
			Kind:    KindChoice,
			Options: yesNoOptions,
		})
	}
	return out
}

// QuestionField returns the field name of behavior item n (1-based).
func QuestionField(n int) string {
	return fmt.Sprintf("q%d", n)
}

// Fields returns every field in canonical order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldNames returns the names of every field in canonical order.
func FieldNames() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the field with the given name.
func Lookup(name string) (Field, bool) {
	i, ok := fieldIndex[name]
	if !ok {
		return Field{}, false
	}
	return fields[i], true
}

// IsField reports whether name is part of the answer set.
func IsField(name string) bool {
	_, ok := fieldIndex[name]
	return ok
}

// OptionIndex returns the position of value among the field's options, or -1.
func (f Field) OptionIndex(value string) int {
	for i, o := range f.Options {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// LabelFor returns the display label for a stored value.
func (f Field) LabelFor(value string) string {
	if i := f.OptionIndex(value); i >= 0 {
		return f.Options[i].Label
	}
	return value
}
