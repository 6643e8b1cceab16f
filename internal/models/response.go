package models

// Machine-readable error codes returned alongside HTTP statuses.
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeDuplicateUser    = "DUPLICATE_USER"
	ErrCodeDuplicateEntry   = "DUPLICATE_ENTRY"
	ErrCodeWrongCredentials = "WRONG_CREDENTIALS"
	ErrCodeUserBanned       = "USER_BANNED"
	ErrCodeTokenInvalid     = "TOKEN_INVALID"
	ErrCodeTokenExpired     = "TOKEN_EXPIRED"
	ErrCodeMailFailure      = "MAIL_FAILURE"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
