package service

import (
	"errors"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"activity-service/internal/metrics"
	"activity-service/internal/response"
)

// normalizeEmail trims and lower-cases an email and checks it has an address form
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", response.NewAppError(response.ErrCodeValidation, "Email is required", "")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return "", response.NewAppError(response.ErrCodeValidation, "Invalid email address", email)
	}
	return email, nil
}

// isDuplicateKeyError detects unique constraint violations
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// toAppError keeps AppErrors as they are and wraps anything else as internal
func toAppError(err error, message string) *response.AppError {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return response.NewAppError(response.ErrCodeInternal, message, err.Error())
}

// resultLabel maps an operation outcome to a metrics result label
func resultLabel(err error) string {
	if err == nil {
		return metrics.ResultSuccess
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		return metrics.ResultError
	}
	switch appErr.Code {
	case response.ErrCodeNotFound:
		return metrics.ResultNotFound
	case response.ErrCodeConflict:
		return metrics.ResultConflict
	case response.ErrCodeValidation:
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
