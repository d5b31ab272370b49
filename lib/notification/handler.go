package notificationhandler

import (
	"context"
	"time"

	"template-approval-backend/config"
	"template-approval-backend/db"
	filestorage "template-approval-backend/lib/file-storage"
	notificationstore "template-approval-backend/lib/notification/store"
	"template-approval-backend/lib/smtp"
	"template-approval-backend/lib/utils/helpers"
	initchecker "template-approval-backend/lib/utils/init-checker"
	notificationapimodels "template-approval-backend/models/api/notification"
	dbmodels "template-approval-backend/models/db"
	"template-approval-backend/models/errs"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// StatusNotice composes the outbox row announcing the form's new status.
	// The caller persists it in the same transaction as the status write and
	// hands it to Deliver once that transaction commits.
	StatusNotice(form dbmodels.Form, employee dbmodels.Employee) (rec dbmodels.Notification, err error)
	// SubmissionNotice composes the approver-facing outbox row for a new
	// form, attaching the uploaded file when the form has one. FormID is
	// filled by the store once the form row exists.
	SubmissionNotice(form dbmodels.Form, approver dbmodels.Employee) (rec dbmodels.Notification, err error)
	// Deliver attempts to send an already persisted outbox row within the
	// send timeout; an undelivered row is retried by the worker.
	Deliver(ctx context.Context, rec dbmodels.Notification) (delivered bool)
	SendAdhoc(ctx context.Context, data notificationapimodels.SendEmailData) error
	// RedeliverPending re-attempts every outbox row still worth a try
	RedeliverPending(ctx context.Context)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:       notificationstore.NewInstance(db.DB),
		mail:        smtp.Instance,
		fileStorage: filestorage.Instance,
		sendTimeout: time.Duration(config.Conf.Smtp.SendTimeout) * time.Second,
		maxAttempts: config.Conf.Notification.MaxAttempts,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"mail", instance.mail,
		"fileStorage", instance.fileStorage,
	)
	Instance = instance
}

type impl struct {
	store       notificationstore.Provider
	mail        smtp.Provider
	fileStorage filestorage.Provider
	sendTimeout time.Duration
	maxAttempts int
}

func (i impl) StatusNotice(form dbmodels.Form, employee dbmodels.Employee) (dbmodels.Notification, error) {
	subject, body, err := BuildStatusNotice(form.Status, form.Modification)
	if err != nil {
		return dbmodels.Notification{}, err
	}
	return dbmodels.Notification{
		FormID:    form.ID,
		Recipient: employee.Email,
		Subject:   subject,
		Body:      body,
	}, nil
}

func (i impl) SubmissionNotice(form dbmodels.Form, approver dbmodels.Employee) (dbmodels.Notification, error) {
	reviewURL := config.Conf.Frontend.URL + "/templatelist"
	subject, body, err := BuildSubmissionNotice(form, reviewURL)
	if err != nil {
		return dbmodels.Notification{}, err
	}
	rec := dbmodels.Notification{
		FormID:    form.ID,
		Recipient: approver.Email,
		Subject:   subject,
		Body:      body,
		HTML:      true,
	}
	if form.UploadedFile != "" {
		rec.AttachmentKeys = []string{form.UploadedFile}
	}
	return rec, nil
}

func (i impl) Deliver(ctx context.Context, rec dbmodels.Notification) bool {
	return i.deliver(ctx, rec)
}

func (i impl) SendAdhoc(ctx context.Context, data notificationapimodels.SendEmailData) error {
	rec := dbmodels.Notification{
		Recipient:      data.Email,
		Subject:        data.Subject,
		Body:           data.Body,
		AttachmentKeys: data.Attachments,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return errors.Wrap(errs.ErrPersistence, err.Error())
	}
	rec.ID = id
	if !i.deliver(ctx, rec) {
		return errors.Wrap(errs.ErrNotification, "failed to send email")
	}
	return nil
}

func (i impl) RedeliverPending(ctx context.Context) {
	list, err := i.store.ListUndelivered(i.maxAttempts)
	if err != nil {
		log.WithError(err).Error("failed to list undelivered notifications")
		return
	}
	for _, rec := range list {
		if ctx.Err() != nil {
			return
		}
		i.deliver(ctx, rec)
	}
}

func (i impl) deliver(ctx context.Context, rec dbmodels.Notification) bool {
	logger := log.
		WithField("notification_id", rec.ID).
		WithField("recipient", rec.Recipient)
	attempts := rec.Attempts + 1
	if rec.Recipient == "" {
		i.markFailed(rec.ID, attempts, "recipient has no email")
		logger.Warn("notification skipped, recipient has no email")
		return false
	}
	sendCtx, cancel := context.WithTimeout(ctx, i.sendTimeout)
	defer cancel()
	msg := smtp.Message{
		To:      rec.Recipient,
		Subject: rec.Subject,
		Body:    rec.Body,
		HTML:    rec.HTML,
	}
	for _, key := range rec.AttachmentKeys {
		body, _, err := i.fileStorage.Get(sendCtx, key)
		if err != nil {
			i.markFailed(rec.ID, attempts, err.Error())
			logger.WithError(err).Error("failed to fetch the notification attachment")
			return false
		}
		msg.Attachments = append(msg.Attachments, smtp.Attachment{
			Name: helpers.AttachmentName(key),
			Body: body,
		})
	}
	if err := i.mail.SendMessage(sendCtx, msg); err != nil {
		i.markFailed(rec.ID, attempts, err.Error())
		logger.WithError(err).Error("failed to deliver the notification")
		return false
	}
	if err := i.store.MarkSent(rec.ID, attempts); err != nil {
		logger.WithError(err).Error("failed to mark the notification as sent")
	}
	logger.Info("notification delivered")
	return true
}

func (i impl) markFailed(id string, attempts int, reason string) {
	if err := i.store.MarkFailed(id, attempts, reason); err != nil {
		log.WithError(err).
			WithField("notification_id", id).
			Error("failed to mark the notification as failed")
	}
}
