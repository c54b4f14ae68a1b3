package pipeline

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/opflow/condition"
	"github.com/kbukum/opflow/errors"
	"github.com/kbukum/opflow/operator"
	"github.com/kbukum/opflow/validation"
)

// Definition is a named pipeline loaded from YAML (or JSON).
//
//	name: adults-by-city
//	steps:
//	  - operator: SEG
//	    params:
//	      filter: "item.age >= 18"
//	  - operator: SEG
//	    params:
//	      groupBy: city
type Definition struct {
	Name        string `yaml:"name" json:"name" validate:"required"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       []Step `yaml:"steps" json:"steps" validate:"min=1,dive"`
}

// expressionParams are parameters whose string values are always
// expressions rather than field paths.
var expressionParams = []string{
	operator.ParamFilter,
	operator.ParamWhere,
	operator.ParamPartition,
	operator.ParamTransform,
	operator.ParamUntil,
}

// ParseDefinition decodes a definition and normalizes its operator symbols.
// It does not validate; call Validate for that.
func ParseDefinition(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.InvalidPipeline("definition is not valid YAML").WithCause(err)
	}
	for i := range d.Steps {
		d.Steps[i].Operator = operator.ParseSymbol(string(d.Steps[i].Operator))
	}
	return &d, nil
}

// LoadDefinition reads and validates the definition at path.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: reading %s: %w", path, err)
	}
	d, err := ParseDefinition(data)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks the structure of d and compiles every expression
// parameter. Unknown operator symbols are allowed; they are skipped at run
// time.
func (d *Definition) Validate() error {
	v := validation.New().Merge("", validation.Validate(d))
	for i, step := range d.Steps {
		for _, key := range expressionParams {
			src, ok := step.Params[key].(string)
			if !ok {
				continue
			}
			if _, err := condition.Compile(src); err != nil {
				v.AddError(fmt.Sprintf("steps[%d].params.%s", i, key), err.Error())
			}
		}
	}
	if appErr := v.Validate(); appErr != nil {
		return errors.InvalidPipeline(appErr.Message).WithDetails(appErr.Details)
	}
	return nil
}

// Builder returns a Builder seeded with the definition's steps.
func (d *Definition) Builder() *Builder {
	b := NewBuilder()
	for _, s := range d.Steps {
		b.Step(s.Operator, s.Params, s.Name)
	}
	return b
}

// Run executes the definition on exec, recording its name in the metadata.
func (d *Definition) Run(ctx context.Context, exec *Executor, input any) (*Result, error) {
	if exec == nil {
		exec = NewExecutor()
	}
	return exec.Execute(ctx, d.Builder().Build(), input, map[string]any{MetaName: d.Name})
}
