package requests

// EmailPayload is the message published to the mail queue and consumed by
// the reminder daemon's mail worker.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	HTML    bool   `json:"html"`
}
