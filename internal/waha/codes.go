package waha

// Error codes carried in the Response envelope. The client never retries;
// callers decide what to do with each code.
const (
	CodeConnectionError         = "CONNECTION_ERROR"
	CodeConnectionFailed        = "CONNECTION_FAILED"
	CodeSessionsError           = "SESSIONS_ERROR"
	CodeSessionsRequestError    = "SESSIONS_REQUEST_ERROR"
	CodeSessionsUnavailable     = "SESSIONS_UNAVAILABLE"
	CodeMessagesError           = "MESSAGES_ERROR"
	CodeMessagesRequestError    = "MESSAGES_REQUEST_ERROR"
	CodeScanQRRequired          = "SCAN_QR_REQUIRED"
	CodeSessionDisconnected     = "SESSION_DISCONNECTED"
	CodeContactsError           = "CONTACTS_ERROR"
	CodeContactsRequestError    = "CONTACTS_REQUEST_ERROR"
	CodeSendMessageError        = "SEND_MESSAGE_ERROR"
	CodeSendMessageRequestError = "SEND_MESSAGE_REQUEST_ERROR"
)

// Session statuses the upstream reports for a usable session.
var activeSessionStatuses = map[string]bool{
	"WORKING":   true,
	"READY":     true,
	"CONNECTED": true,
}
