package content

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kokiddp/elkcms/internal/meta"
	"github.com/kokiddp/elkcms/internal/scanner"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidationError aggregates per-field rule violations for one payload.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "content: validation failed for " + strings.Join(names, ", ")
}

// Validate checks an entry payload against a scanned definition. It returns
// a *ValidationError when any declared constraint is violated.
func Validate(def *scanner.Definition, data map[string]any) error {
	violations := make(map[string][]string)

	for _, fd := range def.Fields {
		value, present := data[fd.Name]
		str := toString(value)

		if fd.Required && (!present || str == "") {
			violations[fd.Name] = append(violations[fd.Name], "required")
			continue
		}
		if !present || str == "" {
			continue
		}

		if msg := checkType(fd.Declaration, str, value); msg != "" {
			violations[fd.Name] = append(violations[fd.Name], msg)
		}
		if fd.Declaration.MaxLength > 0 && len([]rune(str)) > fd.Declaration.MaxLength {
			violations[fd.Name] = append(violations[fd.Name], fmt.Sprintf("max:%d", fd.Declaration.MaxLength))
		}
		if fd.Declaration.MinLength > 0 && len([]rune(str)) < fd.Declaration.MinLength {
			violations[fd.Name] = append(violations[fd.Name], fmt.Sprintf("min:%d", fd.Declaration.MinLength))
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Fields: violations}
	}
	return nil
}

func checkType(f meta.Field, str string, value any) string {
	switch f.Type {
	case meta.FieldInteger:
		// JSON decoding delivers all numbers as float64, so the whole-number
		// check is the real integer rule for API payloads
		if v, isFloat := value.(float64); isFloat {
			if v != math.Trunc(v) {
				return "integer"
			}
			return ""
		}
		if _, err := strconv.ParseInt(str, 10, 64); err != nil {
			return "integer"
		}
	case meta.FieldNumber, meta.FieldFloat, meta.FieldDecimal:
		if _, isFloat := value.(float64); isFloat {
			return ""
		}
		if _, err := strconv.ParseFloat(str, 64); err != nil {
			return "numeric"
		}
	case meta.FieldBoolean:
		switch str {
		case "0", "1", "true", "false", "on", "off":
		default:
			return "boolean"
		}
	case meta.FieldEmail:
		if !emailPattern.MatchString(str) {
			return "email"
		}
	case meta.FieldURL:
		u, err := url.Parse(str)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "url"
		}
	case meta.FieldJSON:
		if _, isString := value.(string); isString && !json.Valid([]byte(str)) {
			return "json"
		}
	case meta.FieldSelect, meta.FieldRadio:
		if len(f.Options) == 0 {
			return ""
		}
		for _, opt := range f.Options {
			if opt == str {
				return ""
			}
		}
		return "in:" + strings.Join(f.Options, ",")
	}
	return ""
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
