package domain

// Общий конверт ответа API
type APIError struct {
	Code string `json:"code,omitempty"`
	Text string `json:"text,omitempty"`
}

type APIEnvelope struct {
	Error    *APIError `json:"error,omitempty"`
	Response any       `json:"response,omitempty"`
	Data     any       `json:"data,omitempty"`
}

// Утилиты для сборки конвертов
func OkResponse(resp any) APIEnvelope { return APIEnvelope{Response: resp} }
func OkData(data any) APIEnvelope     { return APIEnvelope{Data: data} }
func Fail(code string, text string) APIEnvelope {
	return APIEnvelope{Error: &APIError{Code: code, Text: text}}
}

// Коды для ошибок без собственного доменного кода
const (
	ErrCodeBadParams        = "REQUEST.BAD_PARAMS"
	ErrCodeUnauth           = "AUTH.UNAUTHORIZED"
	ErrCodeForbidden        = "ACCESS.FORBIDDEN"
	ErrCodeNotFound         = "RESOURCE.NOT_FOUND"
	ErrCodeMethodNotAllowed = "REQUEST.METHOD_NOT_ALLOWED"
	ErrCodeConflict         = "RESOURCE.CONFLICT"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeUpstream         = "UPSTREAM_UNAVAILABLE"
	ErrCodeNotReady         = "SERVICE.NOT_READY"
	ErrCodeNotImplemented   = "NOT_IMPLEMENTED"
	ErrCodeUnexpected       = "INTERNAL_ERROR"
)
