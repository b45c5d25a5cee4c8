package validator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ErrMalformedBody is returned by DecodeJSON when the request body is not a
// single valid JSON document of the expected shape.
var ErrMalformedBody = errors.New("malformed request body")

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match the wire format.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("whole", isWhole)
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Rule checks a string field and returns an error whose text is the message
// reported for the field. ctx is the context passed to ValidateCtx.
type Rule func(ctx context.Context, value string) error

var (
	rulesMu sync.RWMutex
	rules   = map[string]Rule{}
)

// RegisterRule adds a custom validation tag backed by rule. It must be called
// before the first Validate that uses the tag, typically from a package init.
// A failing rule's message takes precedence over the field's `msg` tag.
func RegisterRule(tag string, rule Rule) {
	err := validate.RegisterValidationCtx(tag, func(ctx context.Context, fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return rule(ctx, fl.Field().String()) == nil
	})
	if err != nil {
		panic(fmt.Sprintf("validator: register %q: %v", tag, err))
	}

	rulesMu.Lock()
	rules[tag] = rule
	rulesMu.Unlock()
}

func ruleMessage(ctx context.Context, fe validator.FieldError) (string, bool) {
	rulesMu.RLock()
	rule, ok := rules[fe.Tag()]
	rulesMu.RUnlock()
	if !ok {
		return "", false
	}
	value, _ := fe.Value().(string)
	if err := rule(ctx, value); err != nil {
		return err.Error(), true
	}
	return "", false
}

// isWhole reports whether a numeric field holds an integral value.
func isWhole(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		v := f.Float()
		return v == math.Trunc(v) && !math.IsInf(v, 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// Validate validates a struct using go-playground/validator tags. Failures are
// reported in struct field declaration order.
func Validate(s any) error {
	return ValidateCtx(context.Background(), s)
}

// ValidateCtx is Validate with a context that is handed to registered rules.
func ValidateCtx(ctx context.Context, s any) error {
	if err := validate.StructCtx(ctx, s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return &ValidationError{Errors: validationErrors, root: reflect.TypeOf(s), ctx: ctx}
		}
		return err
	}
	return nil
}

// ValidationError wraps validator.ValidationErrors with user-friendly messages.
// A field's `msg` struct tag, when present, replaces the generated message.
type ValidationError struct {
	Errors validator.ValidationErrors
	root   reflect.Type
	ctx    context.Context
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("field '%s' %s", fe.Field(), msgForTag(fe)))
	}
	return strings.Join(msgs, "; ")
}

// First returns the message for the first failing field.
func (e *ValidationError) First() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return e.message(e.Errors[0])
}

// Fields returns a map of JSON field names to error messages.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		fields[fe.Field()] = e.message(fe)
	}
	return fields
}

func (e *ValidationError) message(fe validator.FieldError) string {
	ctx := e.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if msg, ok := ruleMessage(ctx, fe); ok {
		return msg
	}
	if sf, ok := lookupField(e.root, fe.StructNamespace()); ok {
		if msg := sf.Tag.Get("msg"); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("%s %s", fe.Field(), msgForTag(fe))
}

// lookupField resolves a namespace such as "Input.Items[0].Name" against t.
func lookupField(t reflect.Type, namespace string) (reflect.StructField, bool) {
	parts := strings.Split(namespace, ".")
	if t == nil || len(parts) < 2 {
		return reflect.StructField{}, false
	}

	var sf reflect.StructField
	for _, part := range parts[1:] {
		for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array || t.Kind() == reflect.Map {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return reflect.StructField{}, false
		}
		if i := strings.IndexByte(part, '['); i >= 0 {
			part = part[:i]
		}
		var ok bool
		sf, ok = t.FieldByName(part)
		if !ok {
			return reflect.StructField{}, false
		}
		t = sf.Type
	}
	return sf, true
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("must be at least %s", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("must be at most %s", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "whole":
		return "must be a whole number"
	case "notblank":
		return "must not be blank"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}

// DecodeJSON decodes a single JSON document from the request body into dst.
// Any decoding problem, including an oversized body, is reported as
// ErrMalformedBody.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("decode request body: %w", ErrMalformedBody)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w: %w", ErrMalformedBody, err)
	}
	return nil
}
