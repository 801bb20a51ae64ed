package model

import "context"

// SMSSender delivers one-time codes to a mobile number. Delivery is an
// external collaborator; implementations decide transport.
type SMSSender interface {
	Send(ctx context.Context, mobile, message string) error
}
