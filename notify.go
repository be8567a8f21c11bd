package stockwatch

// Message is one alert digest ready for delivery.
type Message struct {
	Subject string
	Text    string // plain-text (markdown) body
	HTML    string // optional HTML body
}

// Notifier delivers an alert digest. Implementations never panic: a failed
// delivery is an error for the caller to log, the run's computation has
// already succeeded by the time Send is called.
type Notifier interface {
	Send(msg Message) error
}
