package handlers

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, v.RegisterValidation("account_code", validateAccountCode))
	require.NoError(t, v.RegisterValidation("payroll_period", validatePayrollPeriod))
	return v
}

func TestValidateAccountCode(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		code  string
		valid bool
	}{
		{"1000", true},
		{"AR-1200", true},
		{"5000.10_a", true},
		{"", false},
		{"-1000", false},
		{"10 00", false},
		{"1000/2", false},
		{"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := v.Var(tt.code, "account_code")
			assert.Equal(t, tt.valid, err == nil, "code %q", tt.code)
		})
	}
}

func TestValidatePayrollPeriod(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		period string
		valid  bool
	}{
		{"2025-03", true},
		{"1999-12", true},
		{"2025-13", false},
		{"2025-3", false},
		{"2025-03-01", false},
		{"March 2025", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			err := v.Var(tt.period, "payroll_period")
			assert.Equal(t, tt.valid, err == nil, "period %q", tt.period)
		})
	}
}

func TestRegisterValidators(t *testing.T) {
	assert.NoError(t, RegisterValidators())
}
