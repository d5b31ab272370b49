package notificationapimodels

import (
	"github.com/pkg/errors"
)

type SendEmailData struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	// object keys of previously uploaded files to attach
	Attachments []string `json:"attachments"`
}

func (r SendEmailData) Validate() error {
	if r.Email == "" {
		return errors.New("recipient email is not specified")
	}
	if r.Subject == "" {
		return errors.New("subject is not specified")
	}
	return nil
}
