package apiclient

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ConnectionFailedMessage is reported when no response was received.
const ConnectionFailedMessage = "ไม่สามารถเชื่อมต่อกับเซิร์ฟเวอร์ได้ กรุณาตรวจสอบการเชื่อมต่อ"

// GenericMessage is the fallback for statuses outside the message table.
const GenericMessage = "เกิดข้อผิดพลาด กรุณาลองใหม่อีกครั้ง"

var defaultMessages = map[int]string{
	http.StatusBadRequest:          "คำขอไม่ถูกต้อง กรุณาตรวจสอบข้อมูลอีกครั้ง",
	http.StatusUnauthorized:        "เซสชันหมดอายุ กรุณาเข้าสู่ระบบใหม่",
	http.StatusForbidden:           "คุณไม่มีสิทธิ์ในการดำเนินการนี้",
	http.StatusNotFound:            "ไม่พบข้อมูลที่ร้องขอ",
	http.StatusConflict:            "ข้อมูลซ้ำหรือขัดแย้งกับข้อมูลที่มีอยู่",
	http.StatusUnprocessableEntity: "ข้อมูลไม่ถูกต้องตามรูปแบบที่กำหนด",
	http.StatusTooManyRequests:     "มีการร้องขอมากเกินไป กรุณารอสักครู่แล้วลองใหม่",
	http.StatusInternalServerError: "เกิดข้อผิดพลาดที่เซิร์ฟเวอร์ กรุณาลองใหม่ภายหลัง",
	http.StatusBadGateway:          "เซิร์ฟเวอร์ไม่พร้อมให้บริการในขณะนี้ กรุณาลองใหม่ภายหลัง",
	http.StatusServiceUnavailable:  "เซิร์ฟเวอร์ไม่พร้อมให้บริการในขณะนี้ กรุณาลองใหม่ภายหลัง",
	http.StatusGatewayTimeout:      "เซิร์ฟเวอร์ไม่พร้อมให้บริการในขณะนี้ กรุณาลองใหม่ภายหลัง",
}

// ErrSessionExpired matches errors for a 401 outside login and register,
// after which the stored token has been purged.
var ErrSessionExpired = errors.New("session expired")

// ErrEmptyResponse is wrapped when an operation that needs a body got none.
var ErrEmptyResponse = errors.New("empty response body")

// APIError is the single error kind returned by the client. Status 0 means
// the request never produced a response.
type APIError struct {
	Message string
	Status  int
	Err     error

	sessionExpired bool
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports session expiry through errors.Is(err, ErrSessionExpired).
func (e *APIError) Is(target error) bool {
	return target == ErrSessionExpired && e.sessionExpired
}

// Transport reports whether the failure happened before any response.
func (e *APIError) Transport() bool {
	return e.Status == 0
}

// DefaultMessage returns the fixed message for status.
func DefaultMessage(status int) string {
	if status == 0 {
		return ConnectionFailedMessage
	}
	if msg, ok := defaultMessages[status]; ok {
		return msg
	}
	return GenericMessage
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// messageFromBody extracts a human readable message from an error body.
// Accepted shapes: {"message":"..."}, {"message":["...","..."]} and
// {"error":{"message":"..."}}.
func messageFromBody(body []byte, status int) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return DefaultMessage(status)
	}
	for _, path := range []string{"message", "error.message"} {
		res := gjson.GetBytes(body, path)
		switch {
		case res.IsArray():
			var parts []string
			for _, item := range res.Array() {
				if s := strings.TrimSpace(item.String()); item.Type == gjson.String && s != "" {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, ", ")
			}
		case res.Type == gjson.String:
			if s := strings.TrimSpace(res.Str); s != "" {
				return s
			}
		}
	}
	return DefaultMessage(status)
}
