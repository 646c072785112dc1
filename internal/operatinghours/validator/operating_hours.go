package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"groundbook/pkg/logger"
	"groundbook/pkg/model"
	"groundbook/pkg/timeslot"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type OperatingHoursValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewOperatingHoursValidator(log *logger.Logger) *OperatingHoursValidator {
	v := validator.New()

	if err := v.RegisterValidation("slot_time", validateSlotTime); err != nil {
		log.Fatal("Failed to register 'slot_time' validator", "error", err)
	}

	return &OperatingHoursValidator{
		validate: v,
		logger:   log,
	}
}

func validateSlotTime(fl validator.FieldLevel) bool {
	_, err := timeslot.ParseHHMM(fl.Field().String())
	return err == nil
}

func (v *OperatingHoursValidator) Validate(rule *model.OperatingHoursRule) error {
	if err := v.validate.Struct(rule); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if rule.IsClosed {
		return nil
	}

	startMin, err := timeslot.ParseHHMM(rule.StartTime)
	if err != nil {
		return ValidationErrors{ValidationError{Field: "StartTime", Message: "start_time must be in HH:MM format"}}
	}
	endMin, err := timeslot.ParseHHMM(rule.EndTime)
	if err != nil {
		return ValidationErrors{ValidationError{Field: "EndTime", Message: "end_time must be in HH:MM format"}}
	}
	if endMin <= startMin {
		return ValidationErrors{ValidationError{Field: "EndTime", Message: "end_time must be after start_time"}}
	}

	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "required_if":
			message = fmt.Sprintf("%s is required for an open day", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "slot_time":
			message = fmt.Sprintf("%s must be in HH:MM format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
