package gateway

import "net/http"

// registerHTTPRoutes sets up all HTTP routes on the server mux.
func (s *Server) registerHTTPRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /contacts", s.handleContacts)
	mux.HandleFunc("POST /contacts", s.handleContactsPost)
	mux.HandleFunc("GET /contacts/mock", s.handleContactsMock)
	mux.HandleFunc("GET /contacts/statistics", s.handleContactsStatistics)

	mux.HandleFunc("GET /messages", s.handleMessages)
	mux.HandleFunc("POST /messages", s.handleMessagesPost)
	mux.HandleFunc("GET /messages/mock", s.handleMessagesMock)

	mux.HandleFunc("POST /send", s.handleSend)
	mux.HandleFunc("POST /send/batch", s.handleSendBatch)
	mux.HandleFunc("POST /send/mock", s.handleSendMock)

	mux.HandleFunc("GET /webhook", s.handleWebhookVerify)
	mux.HandleFunc("POST /webhook", s.handleWebhookEvent)
	mux.HandleFunc("GET /webhook/info", s.handleWebhookInfo)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/waha", s.handleHealthWaha)

	mux.HandleFunc("GET /ws/events", s.handleEventsWS)

	// Catch-all for unknown routes
	mux.HandleFunc("/", handleNotFound)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, Envelope{
		Success: false,
		Error:   "not found: " + r.URL.Path,
		Code:    "NOT_FOUND",
	})
}
