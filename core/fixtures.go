package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fixtureFile is the on-disk shape of a test-suite fixture: a flat document
// of test cases. It carries no statement text, language config, or scoring
// metadata.
type fixtureFile struct {
	EntryPoint string        `yaml:"entry_point"`
	DeadlineMs int           `yaml:"deadline_ms"`
	Cases      []fixtureCase `yaml:"cases"`
}

type fixtureCase struct {
	Description string                 `yaml:"description"`
	Hidden      bool                   `yaml:"hidden"`
	Input       map[string]interface{} `yaml:"input"`
	Expected    interface{}            `yaml:"expected"`
}

// LoadFixture reads a YAML test-suite fixture from path and converts it into
// the TestCase slice RunSuite expects, plus the entry point and deadline the
// file declares (either may be overridden by the caller).
func LoadFixture(path string) (entryPoint string, deadlineMs int, cases []TestCase, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return "", 0, nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	out := make([]TestCase, len(f.Cases))
	for i, c := range f.Cases {
		input := make(map[string]DynamicValue, len(c.Input))
		for k, v := range c.Input {
			input[k] = fromYAML(v)
		}
		out[i] = TestCase{
			Input:       input,
			Expected:    fromYAML(c.Expected),
			Description: c.Description,
			Hidden:      c.Hidden,
		}
	}
	return f.EntryPoint, f.DeadlineMs, out, nil
}

// fromYAML converts a yaml.v3-decoded interface{} tree (map[string]interface{},
// []interface{}, and scalar types) into a DynamicValue.
func fromYAML(v interface{}) DynamicValue {
	switch t := v.(type) {
	case nil:
		return NoneValue()
	case bool:
		return BoolValue(t)
	case int:
		return IntValue(int64(t))
	case int64:
		return IntValue(t)
	case float64:
		return FloatValue(t)
	case string:
		return TextValue(t)
	case []interface{}:
		items := make([]DynamicValue, len(t))
		for i, it := range t {
			items[i] = fromYAML(it)
		}
		return SeqValue(items)
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		vals := make([]DynamicValue, 0, len(t))
		for k, it := range t {
			keys = append(keys, k)
			vals = append(vals, fromYAML(it))
		}
		return MapValue(keys, vals)
	default:
		return NoneValue()
	}
}
