// Package criteria matches archived reports against dao parameters.
package criteria

import (
	"strconv"

	"github.com/viant/memfit/model"
	"github.com/viant/memfit/policy"
	"github.com/viant/memfit/service/dao"
)

// MatchReport reports whether r satisfies every parameter.  Unknown
// parameter names are ignored.
func MatchReport(r *model.Report, parameters []*dao.Parameter) bool {
	if r == nil {
		return false
	}
	for _, parameter := range parameters {
		if parameter == nil {
			continue
		}
		values := parameter.Values()
		switch parameter.Name {
		case dao.ParameterPolicy:
			if !anyPolicy(r.Policies, values) {
				return false
			}
		case dao.ParameterSeed:
			if !contains(values, strconv.FormatInt(r.Seed, 10)) {
				return false
			}
		case dao.ParameterAllowSharing:
			if !contains(values, strconv.FormatBool(r.AllowSharing)) {
				return false
			}
		}
	}
	return true
}

func anyPolicy(policies []policy.Policy, names []string) bool {
	for _, name := range names {
		p, err := policy.Parse(name)
		if err != nil {
			continue
		}
		for _, candidate := range policies {
			if candidate == p {
				return true
			}
		}
	}
	return false
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
