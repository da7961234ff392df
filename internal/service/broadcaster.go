package service

// Broadcaster pushes live session updates to websocket clients (avoids import cycle)
type Broadcaster interface {
	BroadcastToSession(sessionID string, msgType string, payload interface{})
	DisconnectSession(sessionID string)
}

// Message types sent to session subscribers
const (
	MsgResultsUpdate  = "results_update"
	MsgInsightsUpdate = "insights_update"
	MsgSessionClosed  = "session_closed"
)
