package wire

import (
	"strconv"
	"strings"
)

// ParamKind tags the result of looking up a parameter.
type ParamKind int

// Parameter kinds.
const (
	// ParamMissing means the key is absent.
	ParamMissing ParamKind = iota
	// ParamValid means the value is a signed decimal integer.
	ParamValid
	// ParamMalformed means the key is present but the token is unusable.
	ParamMalformed
)

// Param is a parsed KEY=VALUE parameter.
type Param struct {
	Kind  ParamKind
	Value int32
}

// IsMissing indicates the parameter is absent.
func (p Param) IsMissing() bool { return p.Kind == ParamMissing }

// IsValid indicates the parameter carries an integer.
func (p Param) IsValid() bool { return p.Kind == ParamValid }

// Command is a parsed command line.
type Command struct {
	Verb   string
	Params map[string]Param
}

// Param looks up a parameter by key, case-insensitive.
func (c Command) Param(key string) Param {
	return c.Params[strings.ToUpper(key)]
}

// Parse tokenizes a line into a Command. It never fails: tokens that
// can't be used are recorded as malformed and left to the command
// handler to reject.
func Parse(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}
	}
	cmd := Command{Verb: strings.ToUpper(fields[0])}
	for _, token := range fields[1:] {
		key, param := parseToken(token)
		if key == "" {
			continue
		}
		if cmd.Params == nil {
			cmd.Params = make(map[string]Param)
		}
		cmd.Params[key] = param
	}
	return cmd
}

func parseToken(token string) (string, Param) {
	pos := strings.IndexByte(token, '=')
	if pos < 0 {
		return strings.ToUpper(token), Param{Kind: ParamMalformed}
	}
	key, val := strings.ToUpper(token[:pos]), token[pos+1:]
	if strings.IndexByte(val, '=') >= 0 {
		return key, Param{Kind: ParamMalformed}
	}
	n, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return key, Param{Kind: ParamMalformed}
	}
	return key, Param{Kind: ParamValid, Value: int32(n)}
}
