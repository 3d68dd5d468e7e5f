package dao

import "strconv"

// Parameter names understood by report stores.
const (
	ParameterPolicy       = "Policy"
	ParameterSeed         = "Seed"
	ParameterAllowSharing = "AllowSharing"
)

// Parameter narrows a List call.  Value is a string or a []string; an
// entity matches a multi-value parameter when it matches any of the values.
type Parameter struct {
	Name  string
	Value interface{}
}

func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}

// Values returns the parameter value as a list of strings.
func (p *Parameter) Values() []string {
	switch actual := p.Value.(type) {
	case string:
		return []string{actual}
	case []string:
		return actual
	case int64:
		return []string{strconv.FormatInt(actual, 10)}
	case int:
		return []string{strconv.Itoa(actual)}
	case bool:
		return []string{strconv.FormatBool(actual)}
	}
	return nil
}
