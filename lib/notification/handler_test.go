package notificationhandler

import (
	"context"
	"testing"
	"time"

	"template-approval-backend/lib/smtp"
	notificationapimodels "template-approval-backend/models/api/notification"
	dbmodels "template-approval-backend/models/db"
	"template-approval-backend/models/errs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeOutboxStore struct {
	rows map[string]*dbmodels.Notification
}

func newFakeOutboxStore() *fakeOutboxStore {
	return &fakeOutboxStore{rows: map[string]*dbmodels.Notification{}}
}

func (f *fakeOutboxStore) Create(rec dbmodels.Notification) (string, error) {
	rec.ID = uuid.NewString()
	if rec.Status == "" {
		rec.Status = dbmodels.NotificationPending
	}
	f.rows[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeOutboxStore) GetByID(id string) (*dbmodels.Notification, error) {
	rec, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeOutboxStore) ListUndelivered(maxAttempts int) ([]dbmodels.Notification, error) {
	list := []dbmodels.Notification{}
	for _, rec := range f.rows {
		if rec.Status != dbmodels.NotificationSent && rec.Attempts < maxAttempts {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeOutboxStore) MarkSent(id string, attempts int) error {
	rec, ok := f.rows[id]
	if !ok {
		return errors.New("record not found")
	}
	now := time.Now()
	rec.Status = dbmodels.NotificationSent
	rec.Attempts = attempts
	rec.LastError = ""
	rec.SentAt = &now
	return nil
}

func (f *fakeOutboxStore) MarkFailed(id string, attempts int, lastError string) error {
	rec, ok := f.rows[id]
	if !ok {
		return errors.New("record not found")
	}
	rec.Status = dbmodels.NotificationFailed
	rec.Attempts = attempts
	rec.LastError = lastError
	return nil
}

type fakeMailer struct {
	err      error
	messages []smtp.Message
}

func (f *fakeMailer) SendEMail(from, to, message, subject string) error {
	return f.err
}

func (f *fakeMailer) SendMessage(ctx context.Context, msg smtp.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msg)
	return nil
}

type fakeFiles struct {
	files map[string][]byte
}

func (f *fakeFiles) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	f.files[key] = body
	return nil
}

func (f *fakeFiles) Get(ctx context.Context, key string) ([]byte, string, error) {
	body, ok := f.files[key]
	if !ok {
		return nil, "", errors.New("no such key")
	}
	return body, "application/octet-stream", nil
}

func (f *fakeFiles) EnsureBucket(ctx context.Context) error {
	return nil
}

func (f *fakeFiles) RetrievalURL(key string) string {
	return "http://localhost:8080/api/v1/uploads/" + key
}

func newTestNotifier() (impl, *fakeOutboxStore, *fakeMailer, *fakeFiles) {
	store := newFakeOutboxStore()
	mail := &fakeMailer{}
	files := &fakeFiles{files: map[string][]byte{}}
	handler := impl{
		store:       store,
		mail:        mail,
		fileStorage: files,
		sendTimeout: time.Second,
		maxAttempts: 3,
	}
	return handler, store, mail, files
}

func TestSendAdhoc(t *testing.T) {
	ctx := context.Background()

	t.Run(`one email carries every attachment`, func(t *testing.T) {
		handler, store, mail, files := newTestNotifier()
		files.files["1700000000000-report.pdf"] = []byte("pdf")
		files.files["1700000000001-figures.xlsx"] = []byte("xlsx")

		err := handler.SendAdhoc(ctx, notificationapimodels.SendEmailData{
			Email:       "john@corp.local",
			Subject:     "Quarterly report",
			Body:        "Please find the files attached",
			Attachments: []string{"1700000000000-report.pdf", "1700000000001-figures.xlsx"},
		})
		require.Nil(t, err)

		require.Len(t, mail.messages, 1)
		msg := mail.messages[0]
		require.Equal(t, "john@corp.local", msg.To)
		require.Len(t, msg.Attachments, 2)
		require.Equal(t, "report.pdf", msg.Attachments[0].Name)
		require.Equal(t, "figures.xlsx", msg.Attachments[1].Name)

		require.Len(t, store.rows, 1)
		for _, rec := range store.rows {
			require.Equal(t, dbmodels.NotificationSent, rec.Status)
			require.Len(t, rec.AttachmentKeys, 2)
		}
	})

	t.Run(`send failure marks the outbox row failed`, func(t *testing.T) {
		handler, store, mail, _ := newTestNotifier()
		mail.err = errors.New("smtp down")

		err := handler.SendAdhoc(ctx, notificationapimodels.SendEmailData{
			Email:   "john@corp.local",
			Subject: "Hello",
			Body:    "text",
		})
		require.True(t, errors.Is(err, errs.ErrNotification))

		require.Len(t, store.rows, 1)
		for _, rec := range store.rows {
			require.Equal(t, dbmodels.NotificationFailed, rec.Status)
			require.Equal(t, 1, rec.Attempts)
			require.Equal(t, "smtp down", rec.LastError)
		}
	})

	t.Run(`missing attachment fails before anything is sent`, func(t *testing.T) {
		handler, store, mail, _ := newTestNotifier()

		err := handler.SendAdhoc(ctx, notificationapimodels.SendEmailData{
			Email:       "john@corp.local",
			Subject:     "Hello",
			Body:        "text",
			Attachments: []string{"1700000000000-gone.pdf"},
		})
		require.True(t, errors.Is(err, errs.ErrNotification))
		require.Len(t, mail.messages, 0)
		require.Len(t, store.rows, 1)
		for _, rec := range store.rows {
			require.Equal(t, dbmodels.NotificationFailed, rec.Status)
		}
	})
}

func TestRedeliverPending(t *testing.T) {
	ctx := context.Background()

	t.Run(`undelivered rows are retried and marked sent`, func(t *testing.T) {
		handler, store, mail, _ := newTestNotifier()
		id, err := store.Create(dbmodels.Notification{
			Recipient: "john@corp.local",
			Subject:   "Approved",
			Body:      "Your form has been approved",
			Status:    dbmodels.NotificationFailed,
			Attempts:  1,
		})
		require.Nil(t, err)

		handler.RedeliverPending(ctx)

		require.Len(t, mail.messages, 1)
		rec, err := store.GetByID(id)
		require.Nil(t, err)
		require.Equal(t, dbmodels.NotificationSent, rec.Status)
		require.Equal(t, 2, rec.Attempts)
	})

	t.Run(`rows past the attempt limit are left alone`, func(t *testing.T) {
		handler, store, mail, _ := newTestNotifier()
		_, err := store.Create(dbmodels.Notification{
			Recipient: "john@corp.local",
			Subject:   "Approved",
			Body:      "Your form has been approved",
			Status:    dbmodels.NotificationFailed,
			Attempts:  3,
		})
		require.Nil(t, err)

		handler.RedeliverPending(ctx)
		require.Len(t, mail.messages, 0)
	})

	t.Run(`a row without a recipient is marked failed, not sent`, func(t *testing.T) {
		handler, store, mail, _ := newTestNotifier()
		id, err := store.Create(dbmodels.Notification{
			Subject: "Approved",
			Body:    "Your form has been approved",
		})
		require.Nil(t, err)

		handler.RedeliverPending(ctx)
		require.Len(t, mail.messages, 0)
		rec, err := store.GetByID(id)
		require.Nil(t, err)
		require.Equal(t, dbmodels.NotificationFailed, rec.Status)
	})
}
