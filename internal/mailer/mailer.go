package mailer

import "context"

// Message is a single outbound transactional email.
type Message struct {
	ToName    string
	ToAddress string
	Subject   string
	TextBody  string
	HTMLBody  string
}

// Mailer is any service that can deliver transactional email. Delivery is
// one request/response call; no retry or queueing layer lives here.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
