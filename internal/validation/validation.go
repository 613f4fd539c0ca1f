// Package validation checks that JSON payloads have the shape the mock server and the
// public JSONPlaceholder API agree on.
//
// Every validator works on a decoded JSON value (the result of unmarshalling into any)
// and reports a Result: either valid, or the list of missing required fields plus any
// type or format problems found on the fields that are present.
package validation

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// jsSpace is the whitespace class of JavaScript regexps and String.prototype.trim.
// RE2 \s covers ASCII only, so the Unicode separators are listed explicitly.
// Escaped for embedding into the JSON schema text.
const jsSpace = `\\s\\x{000B}\\x{FEFF}\\p{Z}`

const (
	emailPattern    = `^[^` + jsSpace + `@]+@[^` + jsSpace + `@]+\\.[^` + jsSpace + `@]+$`
	nonBlankPattern = `[^` + jsSpace + `]`
)

// Result is the outcome of validating one payload.
type Result struct {
	Valid    bool
	Missing  []string
	Problems []string
}

// Err converts an invalid result into a *ValidationError. It returns nil for a valid one.
func (r Result) Err(resource string) error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Resource: resource, Missing: r.Missing, Problems: r.Problems}
}

// ValidationError reports a payload that does not have the expected shape.
// It is terminal: callers must not retry the request that produced it.
type ValidationError struct {
	Resource string
	Missing  []string
	Problems []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing fields: "+strings.Join(e.Missing, ", "))
	}
	parts = append(parts, e.Problems...)
	return fmt.Sprintf("invalid %s: %s", e.Resource, strings.Join(parts, "; "))
}

// Validator validates one decoded JSON value.
type Validator func(v any) Result

type shape struct {
	required []string
	schema   *jsonschema.Schema
}

func newShape(name string, required []string, properties string) shape {
	return shape{
		required: required,
		schema:   jsonschema.MustCompileString(name+".json", `{"type":"object","properties":`+properties+`}`),
	}
}

var (
	userShape = newShape("user", []string{"id", "name", "username", "email"}, `{
		"id": {"type": "integer"},
		"name": {"type": "string"},
		"username": {"type": "string"},
		"email": {"type": "string", "pattern": "`+emailPattern+`"}
	}`)
	postShape = newShape("post", []string{"id", "userId", "title", "body"}, `{
		"id": {"type": "integer"},
		"userId": {"type": "integer"},
		"title": {"type": "string", "minLength": 1, "pattern": "`+nonBlankPattern+`"},
		"body": {"type": "string", "minLength": 1, "pattern": "`+nonBlankPattern+`"}
	}`)
	commentShape = newShape("comment", []string{"id", "postId", "name", "email", "body"}, `{
		"id": {"type": "integer"},
		"postId": {"type": "integer"},
		"name": {"type": "string"},
		"email": {"type": "string", "pattern": "`+emailPattern+`"},
		"body": {"type": "string"}
	}`)
	todoShape = newShape("todo", []string{"id", "userId", "title", "completed"}, `{
		"id": {"type": "integer"},
		"userId": {"type": "integer"},
		"title": {"type": "string"},
		"completed": {"type": "boolean"}
	}`)
	albumShape = newShape("album", []string{"id", "userId", "title"}, `{
		"id": {"type": "integer"},
		"userId": {"type": "integer"},
		"title": {"type": "string"}
	}`)
)

func ValidateUser(v any) Result    { return userShape.validate(v) }
func ValidatePost(v any) Result    { return postShape.validate(v) }
func ValidateComment(v any) Result { return commentShape.validate(v) }
func ValidateTodo(v any) Result    { return todoShape.validate(v) }
func ValidateAlbum(v any) Result   { return albumShape.validate(v) }

// ValidateEach validates every element of a decoded JSON array and stops at the first
// invalid one, reporting its index.
func ValidateEach(v any, validate Validator) (Result, int) {
	items, ok := v.([]any)
	if !ok {
		return Result{Problems: []string{"expected an array"}}, -1
	}
	for i, item := range items {
		if result := validate(item); !result.Valid {
			return result, i
		}
	}
	return Result{Valid: true}, -1
}

func (s shape) validate(v any) Result {
	object, ok := v.(map[string]any)
	if !ok {
		return Result{Problems: []string{"expected an object"}}
	}

	var result Result
	for _, field := range s.required {
		// presence only: a null value still counts as present
		if _, ok := object[field]; !ok {
			result.Missing = append(result.Missing, field)
		}
	}

	if err := s.schema.Validate(object); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			collectProblems(validationErr, &result)
		} else {
			result.Problems = append(result.Problems, err.Error())
		}
	}

	result.Valid = len(result.Missing) == 0 && len(result.Problems) == 0
	return result
}

func collectProblems(err *jsonschema.ValidationError, result *Result) {
	if len(err.Causes) == 0 {
		field := strings.TrimPrefix(err.InstanceLocation, "/")
		result.Problems = append(result.Problems, field+": "+err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectProblems(cause, result)
	}
}
