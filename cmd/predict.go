package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/kidscreen/internal/questionnaire"
	"github.com/abhisek/kidscreen/internal/session"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Submit answers without the TUI and print the result",
	Long: `Submit a filled-in questionnaire and print the prediction.

Answers come from a TOML file of field = "value" pairs, from repeated
--set field=value flags, or both (flags win). A .json file is read as an
object of answers, or as the output of a previous "predict --json" run.
Run "kidscreen questions" to list field names and accepted values.`,
	Example: `  kidscreen predict --answers child.toml
  kidscreen predict --answers last.json --set q4=No
  kidscreen predict --set age=24 --set sex=Male --set q1=Yes`,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().String("answers", "", "TOML or JSON file with answers")
	predictCmd.Flags().StringArray("set", nil, "Set one answer as field=value (repeatable)")
	predictCmd.Flags().Bool("json", false, "Print the result as JSON")
}

type predictOutput struct {
	Prediction string                  `json:"prediction"`
	Error      string                  `json:"error,omitempty"`
	Answers    questionnaire.AnswerSet `json:"answers"`
}

func runPredict(cmd *cobra.Command, args []string) error {
	answersFile, _ := cmd.Flags().GetString("answers")
	sets, _ := cmd.Flags().GetStringArray("set")
	asJSON, _ := cmd.Flags().GetBool("json")

	answers, unknown, err := collectAnswers(answersFile, sets)
	if err != nil {
		return err
	}
	for _, name := range unknown {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: ignoring unknown field %q\n", name)
	}

	d, err := loadDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	sess := session.New(d.predictor, session.WithLogger(d.logger))
	for _, name := range questionnaire.FieldNames() {
		if v, ok := answers[name]; ok {
			sess.SetField(name, v)
		}
	}
	for sess.Step() < questionnaire.StepBehaviorSecond {
		sess.Advance()
	}

	submitErr := sess.Submit(cmd.Context())
	prediction, _ := sess.Prediction()

	out := cmd.OutOrStdout()
	if asJSON {
		res := predictOutput{Prediction: prediction, Answers: sess.Answers()}
		if submitErr != nil {
			res.Error = submitErr.Error()
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else {
		fmt.Fprintln(out, questionnaire.ResultLead)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  "+prediction)
		fmt.Fprintln(out)
		fmt.Fprintln(out, questionnaire.Disclaimer)
	}

	if submitErr != nil {
		return fmt.Errorf("prediction failed: %w", submitErr)
	}
	return nil
}

// collectAnswers merges answers from a TOML file and field=value pairs.
// It returns the known answers and the names it did not recognise.
func collectAnswers(file string, sets []string) (map[string]string, []string, error) {
	raw := make(map[string]string)

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, nil, fmt.Errorf("read answers: %w", err)
		}
		if strings.EqualFold(filepath.Ext(file), ".json") {
			set, err := decodeJSONAnswers(data)
			if err != nil {
				return nil, nil, fmt.Errorf("parse answers %s: %w", file, err)
			}
			maps.Copy(raw, set.Map())
		} else {
			var doc map[string]any
			if err := toml.Unmarshal(data, &doc); err != nil {
				return nil, nil, fmt.Errorf("parse answers %s: %w", file, err)
			}
			for k, v := range doc {
				s, err := tomlScalar(v)
				if err != nil {
					return nil, nil, fmt.Errorf("answer %q: %w", k, err)
				}
				raw[k] = s
			}
		}
	}

	for _, kv := range sets {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, nil, fmt.Errorf("--set %q: want field=value", kv)
		}
		raw[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	answers := make(map[string]string, len(raw))
	var unknown []string
	for k, v := range raw {
		if !questionnaire.IsField(k) {
			unknown = append(unknown, k)
			continue
		}
		answers[k] = v
	}
	sort.Strings(unknown)
	return answers, unknown, nil
}

// decodeJSONAnswers reads a predict --json result, or a bare answers
// object. Keys that are not fields are dropped.
func decodeJSONAnswers(data []byte) (questionnaire.AnswerSet, error) {
	var result struct {
		Answers *questionnaire.AnswerSet `json:"answers"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return questionnaire.AnswerSet{}, err
	}
	if result.Answers != nil {
		return *result.Answers, nil
	}
	var set questionnaire.AnswerSet
	if err := json.Unmarshal(data, &set); err != nil {
		return questionnaire.AnswerSet{}, err
	}
	return set, nil
}

func tomlScalar(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		if t {
			return questionnaire.Yes, nil
		}
		return questionnaire.No, nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}
