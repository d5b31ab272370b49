package smtp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

var Instance Provider

type Attachment struct {
	Name string
	Body []byte
}

type Message struct {
	To          string
	Subject     string
	Body        string
	HTML        bool
	Attachments []Attachment
}

type Provider interface {
	SendEMail(from, to, message, subject string) error
	// SendMessage composes a full MIME message (html body, attachments) and
	// sends it within the context deadline.
	SendMessage(ctx context.Context, msg Message) error
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) SendEMail(from, to, message, subject string) (err error) {
	logger := log.WithField("sender", from)
	if !i.configured() {
		logger.Warn("email not sent, smtp client is not configured")
		return nil
	}
	sendTo := []string{
		to,
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	mimeHeaders := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\r\n"
	body := strings.NewReader(fmt.Sprintf("Subject: %s\n%s\r\n%s\r\n", subject, mimeHeaders, message))

	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.user, sendTo, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.user, sendTo, body)
	}
	if err != nil {
		log.WithError(err).Error("failed to send email")
		return err
	}
	logger.Info("email sent")
	return nil
}

func (i impl) SendMessage(ctx context.Context, msg Message) error {
	logger := log.WithField("recipient", msg.To)
	if !i.configured() {
		logger.Warn("email not sent, smtp client is not configured")
		return nil
	}
	m := gomail.NewMessage()
	m.SetHeader("From", i.user)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.HTML {
		m.SetBody("text/html", msg.Body)
	} else {
		m.SetBody("text/plain", msg.Body)
	}
	for _, attachment := range msg.Attachments {
		body := attachment.Body
		m.Attach(attachment.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(body)
			return err
		}))
	}
	buf := new(bytes.Buffer)
	if _, err := m.WriteTo(buf); err != nil {
		return errors.Wrap(err, "failed to compose mime message")
	}

	// the underlying client has no context support, bound the wait ourselves
	done := make(chan error, 1)
	go func() {
		auth := sasl.NewPlainClient("", i.user, i.password)
		sendTo := []string{msg.To}
		if i.tlsEnabled {
			done <- smtp.SendMailTLS(i.host+":"+i.port, auth, i.user, sendTo, buf)
		} else {
			done <- smtp.SendMail(i.host+":"+i.port, auth, i.user, sendTo, buf)
		}
	}()
	select {
	case <-ctx.Done():
		logger.WithError(ctx.Err()).Error("email send timed out")
		return errors.Wrap(ctx.Err(), "email send timed out")
	case err := <-done:
		if err != nil {
			logger.WithError(err).Error("failed to send email")
			return err
		}
	}
	logger.Info("email sent")
	return nil
}

func (i impl) configured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}
