package handler

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/smiledesk/dental-api/internal/model"
)

var treatmentStatuses = []string{
	model.TreatmentStatusPending,
	model.TreatmentStatusInProgress,
	model.TreatmentStatusCompleted,
	model.TreatmentStatusCancelled,
	model.TreatmentStatusSkipped,
}

// RegisterValidators installs custom binding validations. Must run before
// the first request is bound.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("treatment_status", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, s := range treatmentStatuses {
			if strings.EqualFold(value, s) {
				return true
			}
		}
		return false
	})
}
