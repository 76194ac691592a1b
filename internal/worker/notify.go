package worker

// ExportNotifyMessage is the payload forwarded to the browser over the
// user's WebSocket. Field names are part of the client protocol.
type ExportNotifyMessage struct {
	Status        string `json:"status"`
	CVID          uint   `json:"cv_id"`
	CorrelationID string `json:"correlation_id"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message"`
}
