package wire

import (
	"io"
	"strconv"
	"strings"
)

// Field is a KEY=VALUE pair in an OK response.
type Field struct {
	Key   string
	Value string
}

// Int creates an integer Field.
func Int(key string, val int32) Field {
	return Field{Key: key, Value: strconv.FormatInt(int64(val), 10)}
}

// Bool creates a Field encoding true as 1 and false as 0.
func Bool(key string, val bool) Field {
	if val {
		return Field{Key: key, Value: "1"}
	}
	return Field{Key: key, Value: "0"}
}

// Str creates a string Field.
func Str(key, val string) Field {
	return Field{Key: key, Value: val}
}

// Response is the result of one command.
type Response struct {
	Err    *Error
	Fields []Field
}

// OK creates a success Response with fields in the given order.
func OK(fields ...Field) Response {
	return Response{Fields: fields}
}

// Fail creates an error Response.
func Fail(err *Error) Response {
	return Response{Err: err}
}

// IsOK indicates the Response is a success.
func (r Response) IsOK() bool {
	return r.Err == nil
}

// String renders the Response as a line without terminator.
func (r Response) String() string {
	var sb strings.Builder
	if r.Err != nil {
		sb.WriteString("ERROR ")
		sb.WriteString(strconv.Itoa(r.Err.Code))
		sb.WriteByte(' ')
		sb.WriteString(r.Err.Reason)
		return sb.String()
	}
	sb.WriteString("OK")
	for _, f := range r.Fields {
		sb.WriteByte(' ')
		sb.WriteString(f.Key)
		sb.WriteByte('=')
		sb.WriteString(f.Value)
	}
	return sb.String()
}

// WriteTo writes the Response as one terminated line.
func (r Response) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String()+"\n")
	return int64(n), err
}
