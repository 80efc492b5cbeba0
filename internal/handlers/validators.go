package handlers

import (
	"fmt"
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
)

var accountCodePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,31}$`)

// validateAccountCode accepts 1-32 characters of letters, digits, dot, dash and underscore.
func validateAccountCode(fl validator.FieldLevel) bool {
	return accountCodePattern.MatchString(fl.Field().String())
}

// validatePayrollPeriod accepts a calendar month written as YYYY-MM.
func validatePayrollPeriod(fl validator.FieldLevel) bool {
	_, err := time.Parse(domain.PeriodLayout, fl.Field().String())
	return err == nil
}

// RegisterValidators adds the custom binding tags used by the request DTOs to
// gin's validator engine. It must run before the routes serve traffic.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("account_code", validateAccountCode); err != nil {
		return fmt.Errorf("register account_code: %w", err)
	}
	if err := v.RegisterValidation("payroll_period", validatePayrollPeriod); err != nil {
		return fmt.Errorf("register payroll_period: %w", err)
	}
	return nil
}
