package questionnaire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldNames_Canonical(t *testing.T) {
	want := []string{
		"age", "ethnicity", "sex", "familyASD", "jaundice",
		"q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9", "q10",
	}
	assert.Equal(t, want, FieldNames())
}

func TestNewAnswerSet_AllEmpty(t *testing.T) {
	a := NewAnswerSet()
	require.Equal(t, len(FieldNames()), a.Len())
	for _, name := range FieldNames() {
		assert.Equal(t, "", a.Get(name), name)
	}
	assert.Equal(t, 0, a.Answered())
}

func TestAnswerSet_SetKeepsKeyCount(t *testing.T) {
	a := NewAnswerSet()
	sets := []struct{ name, value string }{
		{"age", "24"},
		{"q3", "Yes"},
		{"age", "36"},
		{"bogus", "x"},
		{"q3", ""},
		{"ethnicity", "Asian"},
	}
	for _, s := range sets {
		a.Set(s.name, s.value)
		assert.Equal(t, len(FieldNames()), a.Len())
	}
	assert.Equal(t, "36", a.Get("age"))
	assert.Equal(t, "", a.Get("q3"))
	assert.Equal(t, "Asian", a.Get("ethnicity"))
	_, ok := a.Map()["bogus"]
	assert.False(t, ok)
}

func TestAnswerSet_ZeroValueSet(t *testing.T) {
	var a AnswerSet
	require.True(t, a.Set("sex", "Female"))
	assert.Equal(t, len(FieldNames()), a.Len())
	assert.Equal(t, "Female", a.Get("sex"))
}

func TestAnswerSet_MarshalNeverOmits(t *testing.T) {
	a := NewAnswerSet()
	a.Set("q10", "No")

	raw, err := json.Marshal(a)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded, len(FieldNames()))
	for _, name := range FieldNames() {
		v, ok := decoded[name]
		require.True(t, ok, "missing %s", name)
		assert.IsType(t, "", v)
	}
	assert.Equal(t, "No", decoded["q10"])
	assert.Equal(t, "", decoded["age"])
}

func TestAnswerSet_UnmarshalDropsUnknownKeys(t *testing.T) {
	var a AnswerSet
	require.NoError(t, json.Unmarshal([]byte(`{"age":"36","q4":"Yes","nickname":"Sam"}`), &a))

	assert.Equal(t, len(FieldNames()), a.Len())
	assert.Equal(t, "36", a.Get("age"))
	assert.Equal(t, "Yes", a.Get("q4"))
	assert.Equal(t, "", a.Get("nickname"))
	assert.Equal(t, 2, a.Answered())

	assert.Error(t, json.Unmarshal([]byte(`{"age":36}`), &a), "non-string values are rejected")
}

func TestAnswerSet_CloneIsIndependent(t *testing.T) {
	a := NewAnswerSet()
	a.Set("age", "20")
	b := a.Clone()
	b.Set("age", "30")
	assert.Equal(t, "20", a.Get("age"))
	assert.Equal(t, "30", b.Get("age"))
}

func TestPageFor(t *testing.T) {
	tests := []struct {
		step   Step
		title  string
		fields []string
	}{
		{StepDemographics, "Let's Get Started!", []string{"age", "ethnicity", "sex"}},
		{StepHistory, "A Bit More About Your Child", []string{"familyASD", "jaundice"}},
		{StepBehaviorFirst, "Let's Talk About Your Child's Behavior", []string{"q1", "q2", "q3", "q4", "q5"}},
		{StepBehaviorSecond, "Let's Talk About Your Child's Behavior", []string{"q6", "q7", "q8", "q9", "q10"}},
		{StepResult, "Here's What We Found", nil},
	}
	for _, tt := range tests {
		t.Run(tt.step.String(), func(t *testing.T) {
			p, ok := PageFor(tt.step)
			require.True(t, ok)
			assert.Equal(t, tt.title, p.Title)
			assert.Equal(t, tt.fields, p.Fields)
		})
	}

	_, ok := PageFor(Step(5))
	assert.False(t, ok)
	_, ok = PageFor(Step(-1))
	assert.False(t, ok)
}

func TestPagesCoverEveryFieldOnce(t *testing.T) {
	seen := map[string]int{}
	for _, p := range Pages() {
		for _, f := range p.Fields {
			seen[f]++
		}
	}
	for _, name := range FieldNames() {
		assert.Equal(t, 1, seen[name], name)
	}
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0.0, Progress(StepDemographics))
	assert.Equal(t, 0.5, Progress(StepBehaviorFirst))
	assert.Equal(t, 1.0, Progress(StepResult))
}

func TestActionsFor(t *testing.T) {
	assert.Equal(t, []Action{ActionNext}, ActionsFor(StepDemographics))
	assert.Equal(t, []Action{ActionBack, ActionNext}, ActionsFor(StepHistory))
	assert.Equal(t, []Action{ActionBack, ActionFinish}, ActionsFor(StepBehaviorSecond))
	assert.Equal(t, []Action{ActionBack, ActionRetake}, ActionsFor(StepResult))
}

func TestLookup_Options(t *testing.T) {
	f, ok := Lookup("sex")
	require.True(t, ok)
	assert.Equal(t, "Boy", f.LabelFor("Male"))
	assert.Equal(t, 1, f.OptionIndex("Female"))
	assert.Equal(t, -1, f.OptionIndex(""))

	f, ok = Lookup("ethnicity")
	require.True(t, ok)
	assert.Equal(t, KindSelect, f.Kind)
	assert.Len(t, f.Options, len(EthnicityOptions))

	_, ok = Lookup("q11")
	assert.False(t, ok)
}
