package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
)

var eventNameRe = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)

// rangeMessages overrides the generic bound messages for fields whose valid
// range is better stated as a whole.
var rangeMessages = map[string]string{
	"price":             "the price must be a non-negative number",
	"locationLatitude":  "the locationLatitude must be a number between -90 and 90",
	"locationLongitude": "the locationLongitude must be a number between -180 and 180",
	"maxParticipants":   "the maxParticipants must be a non-zero positive integer",
}

// Validator checks request payloads against their `validate` struct tags and
// turns the first failure into a model validation error.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds a Validator that reports fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("eventname", func(fl validator.FieldLevel) bool {
		return eventNameRe.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct validates s and returns nil or an error wrapping model.ErrValidation.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate request: %w", err)
	}
	return model.Validationf("%s", fieldMessage(fieldErrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the %s must be provided and must not be empty", field)
	case "alphanum":
		return fmt.Sprintf("the %s must contain only alphanumeric characters", field)
	case "eventname":
		return fmt.Sprintf("the %s must contain only letters, numbers, and spaces", field)
	case "min":
		return fmt.Sprintf("the %s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("the %s must be at most %s characters", field, fe.Param())
	case "gte", "lte", "gt":
		if msg, ok := rangeMessages[field]; ok {
			return msg
		}
		if fe.Tag() == "gte" && fe.Param() == "0" {
			return fmt.Sprintf("the %s cannot be a negative number", field)
		}
		return fmt.Sprintf("the %s must be %s %s", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("the %s is invalid", field)
	}
}

// ParseID parses a path or query id: a base-10, non-negative integer.
func ParseID(field, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, model.Validationf("the %s must be provided", field)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, model.Validationf("the %s is not a number", field)
	}
	if id < 0 {
		return 0, model.Validationf("the %s cannot be a negative number", field)
	}
	return id, nil
}

// ParseIDList parses a comma-separated list of ids, e.g. "1,2,3".
func ParseIDList(field, raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := ParseID(field, p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// optionalID parses raw with ParseID, returning nil when raw is empty.
func optionalID(field, raw string) (*int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := ParseID(field, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// checkFuture rejects timestamps (Unix milliseconds) that are not strictly
// after now.
func checkFuture(ts, now int64) error {
	if ts <= now {
		return model.Validationf("invalid or past date")
	}
	return nil
}
