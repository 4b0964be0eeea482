package utils

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/mente-leve/wellbeing-service/internal/errors"
	"github.com/mente-leve/wellbeing-service/internal/models"
)

var timeHHMM = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Validator wraps the struct validator with the domain validators registered.
type Validator struct {
	structValidator *validator.Validate
}

// NewValidator creates the shared validator instance
func NewValidator() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{structValidator: structValidator}
}

// ValidateStruct validates struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("modality", validateModality)
	validate.RegisterValidation("appointment_status", validateAppointmentStatus)
	validate.RegisterValidation("risk_tier", validateRiskTier)
	validate.RegisterValidation("time_hhmm", validateTimeHHMM)
	validate.RegisterValidation("weekday", validateWeekday)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateUserRole(fl validator.FieldLevel) bool {
	validRoles := []models.UserRole{
		models.RoleStudent,
		models.RolePsychologist,
	}

	value := fl.Field().String()
	for _, validRole := range validRoles {
		if string(validRole) == value {
			return true
		}
	}
	return false
}

func validateModality(fl validator.FieldLevel) bool {
	validModalities := []models.Modality{
		models.ModalityOnline,
		models.ModalityInPerson,
	}

	value := fl.Field().String()
	for _, validModality := range validModalities {
		if string(validModality) == value {
			return true
		}
	}
	return false
}

func validateAppointmentStatus(fl validator.FieldLevel) bool {
	validStatuses := []models.AppointmentStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusFinished,
		models.StatusCancelled,
	}

	value := fl.Field().String()
	for _, validStatus := range validStatuses {
		if string(validStatus) == value {
			return true
		}
	}
	return false
}

func validateRiskTier(fl validator.FieldLevel) bool {
	validTiers := []models.RiskTier{
		models.RiskLow,
		models.RiskMedium,
		models.RiskHigh,
	}

	value := fl.Field().String()
	for _, validTier := range validTiers {
		if string(validTier) == value {
			return true
		}
	}
	return false
}

func validateTimeHHMM(fl validator.FieldLevel) bool {
	return timeHHMM.MatchString(fl.Field().String())
}

func validateWeekday(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}
