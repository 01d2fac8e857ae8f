package questionnaire

// Step is the index of the screen currently shown.
type Step int

const (
	StepDemographics Step = iota
	StepHistory
	StepBehaviorFirst
	StepBehaviorSecond
	StepResult
)

// LastStep is the terminal result step.
const LastStep = StepResult

// Valid reports whether s is one of the five steps.
func (s Step) Valid() bool {
	return s >= StepDemographics && s <= StepResult
}

func (s Step) String() string {
	switch s {
	case StepDemographics:
		return "demographics"
	case StepHistory:
		return "history"
	case StepBehaviorFirst:
		return "behavior-1"
	case StepBehaviorSecond:
		return "behavior-2"
	case StepResult:
		return "result"
	default:
		return "unknown"
	}
}

// Page is the static content of one step.
type Page struct {
	Step     Step
	Title    string
	Subtitle string
	Fields   []string
}

// AppTitle heads every page.
const AppTitle = "Let's Learn About Your Child!"

// ResultLead introduces the prediction on the result page.
const ResultLead = "Based on your answers, here's what our friendly helper thinks:"

// Disclaimer is shown under the prediction.
const Disclaimer = "Remember, this is just a helper tool. If you're worried about your child's development, " +
	"it's always best to talk to a doctor or a child development expert."

var pages = []Page{
	{
		Step:     StepDemographics,
		Title:    "Let's Get Started!",
		Subtitle: "Tell us a little about your child.",
		Fields:   []string{FieldAge, FieldEthnicity, FieldSex},
	},
	{
		Step:     StepHistory,
		Title:    "A Bit More About Your Child",
		Subtitle: "Just a couple more questions about your child's history.",
		Fields:   []string{FieldFamilyASD, FieldJaundice},
	},
	{
		Step:     StepBehaviorFirst,
		Title:    "Let's Talk About Your Child's Behavior",
		Subtitle: "Answer these questions about how your child acts.",
		Fields:   questionRange(1, 5),
	},
	{
		Step:     StepBehaviorSecond,
		Title:    "Let's Talk About Your Child's Behavior",
		Subtitle: "Answer these final questions about how your child acts.",
		Fields:   questionRange(6, 10),
	},
	{
		Step:     StepResult,
		Title:    "Here's What We Found",
		Subtitle: ResultLead,
	},
}

func questionRange(from, to int) []string {
	out := make([]string, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, QuestionField(n))
	}
	return out
}

// Pages returns the page definitions indexed by step.
func Pages() []Page {
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

// PageFor returns the page for step s. Out-of-range steps yield false.
func PageFor(s Step) (Page, bool) {
	if !s.Valid() {
		return Page{}, false
	}
	return pages[s], true
}

// Progress returns the completed fraction shown by the progress bar.
func Progress(s Step) float64 {
	switch {
	case s <= StepDemographics:
		return 0
	case s >= LastStep:
		return 1
	}
	return float64(s) / float64(LastStep)
}

// Action is a navigation control offered on a page.
type Action int

const (
	ActionBack Action = iota
	ActionNext
	ActionFinish
	ActionRetake
)

func (a Action) Label() string {
	switch a {
	case ActionBack:
		return "Back"
	case ActionNext:
		return "Next"
	case ActionFinish:
		return "Finish"
	case ActionRetake:
		return "Retake Quiz"
	default:
		return ""
	}
}

// ActionsFor returns the controls available on step s, in display order.
func ActionsFor(s Step) []Action {
	var out []Action
	if s > StepDemographics {
		out = append(out, ActionBack)
	}
	switch {
	case s < StepBehaviorSecond:
		out = append(out, ActionNext)
	case s == StepBehaviorSecond:
		out = append(out, ActionFinish)
	case s == StepResult:
		out = append(out, ActionRetake)
	}
	return out
}
