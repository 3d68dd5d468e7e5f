package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/memfit/model"
	"github.com/viant/memfit/policy"
	"github.com/viant/memfit/service/dao"
)

func TestMatchReport(t *testing.T) {
	report := &model.Report{
		ID:           "r1",
		Seed:         42,
		AllowSharing: true,
		Policies:     []policy.Policy{policy.FirstFit, policy.BestFit},
	}
	testCases := []struct {
		name       string
		parameters []*dao.Parameter
		expect     bool
	}{
		{name: "no parameters", expect: true},
		{name: "policy match", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterPolicy, "best")}, expect: true},
		{name: "policy miss", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterPolicy, "worst-fit")}, expect: false},
		{name: "any of policies", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterPolicy, "worst-fit", "first-fit")}, expect: true},
		{name: "unknown policy name", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterPolicy, "next-fit")}, expect: false},
		{name: "seed match", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterSeed, "42")}, expect: true},
		{name: "typed seed", parameters: []*dao.Parameter{{Name: dao.ParameterSeed, Value: int64(42)}}, expect: true},
		{name: "seed miss", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterSeed, "7")}, expect: false},
		{name: "sharing", parameters: []*dao.Parameter{{Name: dao.ParameterAllowSharing, Value: false}}, expect: false},
		{
			name: "all must match",
			parameters: []*dao.Parameter{
				dao.NewParameter(dao.ParameterSeed, "42"),
				dao.NewParameter(dao.ParameterPolicy, "worst-fit"),
			},
			expect: false,
		},
		{name: "unknown name ignored", parameters: []*dao.Parameter{dao.NewParameter("State", "done")}, expect: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, MatchReport(report, tc.parameters))
		})
	}
	assert.False(t, MatchReport(nil, nil))
}
