package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name   string
		line   string
		verb   string
		params map[string]Param
	}{
		{
			name: "verb only",
			line: "PING",
			verb: "PING",
		},
		{
			name: "lower case verb",
			line: "ping",
			verb: "PING",
		},
		{
			name: "surrounding whitespace",
			line: "  status \t",
			verb: "STATUS",
		},
		{
			name:   "params",
			line:   "MOVE STEPS=100 SPEED=500",
			verb:   "MOVE",
			params: map[string]Param{"STEPS": {ParamValid, 100}, "SPEED": {ParamValid, 500}},
		},
		{
			name:   "negative and lower case key",
			line:   "move steps=-100",
			verb:   "MOVE",
			params: map[string]Param{"STEPS": {ParamValid, -100}},
		},
		{
			name:   "whitespace runs",
			line:   "MOVE   STEPS=1\t\tSPEED=2",
			verb:   "MOVE",
			params: map[string]Param{"STEPS": {ParamValid, 1}, "SPEED": {ParamValid, 2}},
		},
		{
			name:   "non integer value",
			line:   "MOVE STEPS=abc",
			verb:   "MOVE",
			params: map[string]Param{"STEPS": {Kind: ParamMalformed}},
		},
		{
			name:   "empty value",
			line:   "MOVE STEPS=",
			verb:   "MOVE",
			params: map[string]Param{"STEPS": {Kind: ParamMalformed}},
		},
		{
			name:   "two equal signs",
			line:   "MOVE STEPS=1=2",
			verb:   "MOVE",
			params: map[string]Param{"STEPS": {Kind: ParamMalformed}},
		},
		{
			name:   "no equal sign",
			line:   "MOVE STEPS",
			verb:   "MOVE",
			params: map[string]Param{"STEPS": {Kind: ParamMalformed}},
		},
		{
			name:   "out of range",
			line:   "MOVE STEPS=99999999999",
			verb:   "MOVE",
			params: map[string]Param{"STEPS": {Kind: ParamMalformed}},
		},
		{
			name: "empty key ignored",
			line: "MOVE =5",
			verb: "MOVE",
		},
		{
			name:   "last occurrence wins",
			line:   "MOVE STEPS=1 STEPS=2",
			verb:   "MOVE",
			params: map[string]Param{"STEPS": {ParamValid, 2}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := Parse(tc.line)
			require.Equal(t, tc.verb, cmd.Verb)
			require.Equal(t, tc.params, cmd.Params)
		})
	}
}

func TestParseBlank(t *testing.T) {
	cmd := Parse("   ")
	require.Empty(t, cmd.Verb)
	require.True(t, cmd.Param("STEPS").IsMissing())
}

func TestCommandParam(t *testing.T) {
	cmd := Parse("MOVE STEPS=7")
	require.True(t, cmd.Param("steps").IsValid())
	require.Equal(t, int32(7), cmd.Param("STEPS").Value)
	require.True(t, cmd.Param("SPEED").IsMissing())
}
