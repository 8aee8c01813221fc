package service

import "context"

type Mailer interface {
	SendConfirmation(ctx context.Context, email, link string) error
}
