package formhandler

import (
	"context"
	"strings"
	"testing"

	formstore "template-approval-backend/lib/form/store"
	"template-approval-backend/models"
	formapimodels "template-approval-backend/models/api/form"
	notificationapimodels "template-approval-backend/models/api/notification"
	dbmodels "template-approval-backend/models/db"
	"template-approval-backend/models/errs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeFormStore struct {
	recs             map[string]*dbmodels.Form
	notices          map[string]*dbmodels.Notification
	nextSerial       int64
	failNoticeInsert bool
}

func newFakeFormStore() *fakeFormStore {
	return &fakeFormStore{
		recs:    map[string]*dbmodels.Form{},
		notices: map[string]*dbmodels.Notification{},
	}
}

func (f *fakeFormStore) Create(rec dbmodels.Form, notice *dbmodels.Notification) (string, int64, string, error) {
	if err := rec.Validate(); err != nil {
		return "", 0, "", err
	}
	// a failed notice insert rolls the whole transaction back
	if notice != nil && f.failNoticeInsert {
		return "", 0, "", errors.New("notice insert failed")
	}
	if rec.SerialNumber == 0 {
		f.nextSerial++
		rec.SerialNumber = f.nextSerial
	}
	rec.ID = uuid.NewString()
	f.recs[rec.ID] = &rec
	noticeID := ""
	if notice != nil {
		cp := *notice
		cp.ID = uuid.NewString()
		cp.FormID = rec.ID
		f.notices[cp.ID] = &cp
		noticeID = cp.ID
	}
	return rec.ID, rec.SerialNumber, noticeID, nil
}

func (f *fakeFormStore) GetByID(id string) (*dbmodels.Form, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeFormStore) Find(filter formstore.Filter) ([]dbmodels.Form, error) {
	list := []dbmodels.Form{}
	for _, rec := range f.recs {
		if filter.SerialNumber != 0 && rec.SerialNumber != filter.SerialNumber {
			continue
		}
		if filter.Dept != "" && rec.Dept != filter.Dept {
			continue
		}
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeFormStore) ListByStatus(status string) ([]dbmodels.Form, error) {
	list := []dbmodels.Form{}
	for _, rec := range f.recs {
		if string(rec.Status) == status {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeFormStore) CountByStatus(status models.FormStatus) (int64, error) {
	var count int64
	for _, rec := range f.recs {
		if strings.EqualFold(string(rec.Status), string(status)) {
			count++
		}
	}
	return count, nil
}

func (f *fakeFormStore) Update(id string, updMap map[string]interface{}, notice *dbmodels.Notification) (string, error) {
	rec, ok := f.recs[id]
	if !ok {
		return "", errors.New("record not found")
	}
	if notice != nil && f.failNoticeInsert {
		return "", errors.New("notice insert failed")
	}
	if status, ok := updMap["status"]; ok {
		rec.Status = status.(models.FormStatus)
	}
	if modification, ok := updMap["modification"]; ok {
		rec.Modification = modification.(string)
	}
	noticeID := ""
	if notice != nil {
		cp := *notice
		cp.ID = uuid.NewString()
		f.notices[cp.ID] = &cp
		noticeID = cp.ID
	}
	return noticeID, nil
}

func (f *fakeFormStore) Delete(id string) (bool, error) {
	if _, ok := f.recs[id]; !ok {
		return false, nil
	}
	delete(f.recs, id)
	return true, nil
}

type fakeEmployeeStore struct {
	recs []dbmodels.Employee
}

func (f *fakeEmployeeStore) Create(rec dbmodels.Employee) (string, error) {
	rec.ID = uuid.NewString()
	f.recs = append(f.recs, rec)
	return rec.ID, nil
}

func (f *fakeEmployeeStore) GetByID(id string) (*dbmodels.Employee, error) {
	for _, rec := range f.recs {
		if rec.ID == id {
			cp := rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployeeStore) GetByCardNo(cardNo int64) (*dbmodels.Employee, error) {
	for _, rec := range f.recs {
		if rec.CardNo == cardNo {
			cp := rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployeeStore) List() ([]dbmodels.Employee, error) {
	return f.recs, nil
}

func (f *fakeEmployeeStore) ListManagers() ([]dbmodels.Employee, error) {
	list := []dbmodels.Employee{}
	for _, rec := range f.recs {
		if rec.Manager {
			list = append(list, rec)
		}
	}
	return list, nil
}

type fakeNotification struct {
	deliver       bool
	delivered     int
	lastDelivered dbmodels.Notification
}

func (f *fakeNotification) StatusNotice(form dbmodels.Form, employee dbmodels.Employee) (dbmodels.Notification, error) {
	return dbmodels.Notification{
		FormID:    form.ID,
		Recipient: employee.Email,
		Subject:   string(form.Status),
		Body:      form.Modification,
	}, nil
}

func (f *fakeNotification) SubmissionNotice(form dbmodels.Form, approver dbmodels.Employee) (dbmodels.Notification, error) {
	rec := dbmodels.Notification{
		FormID:    form.ID,
		Recipient: approver.Email,
		HTML:      true,
	}
	if form.UploadedFile != "" {
		rec.AttachmentKeys = []string{form.UploadedFile}
	}
	return rec, nil
}

func (f *fakeNotification) Deliver(ctx context.Context, rec dbmodels.Notification) bool {
	f.delivered++
	f.lastDelivered = rec
	return f.deliver
}

func (f *fakeNotification) SendAdhoc(ctx context.Context, data notificationapimodels.SendEmailData) error {
	return nil
}

func (f *fakeNotification) RedeliverPending(ctx context.Context) {}

type fakeFileStorage struct {
	files map[string][]byte
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{files: map[string][]byte{}}
}

func (f *fakeFileStorage) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	f.files[key] = body
	return nil
}

func (f *fakeFileStorage) Get(ctx context.Context, key string) ([]byte, string, error) {
	body, ok := f.files[key]
	if !ok {
		return nil, "", errors.New("no such key")
	}
	return body, "application/octet-stream", nil
}

func (f *fakeFileStorage) EnsureBucket(ctx context.Context) error {
	return nil
}

func (f *fakeFileStorage) RetrievalURL(key string) string {
	return "http://localhost:8080/api/v1/uploads/" + key
}

func newTestHandler() (impl, *fakeFormStore, *fakeEmployeeStore, *fakeNotification, *fakeFileStorage) {
	store := newFakeFormStore()
	employees := &fakeEmployeeStore{}
	notification := &fakeNotification{deliver: true}
	files := newFakeFileStorage()
	handler := impl{
		store:         store,
		employeeStore: employees,
		notification:  notification,
		fileStorage:   files,
	}
	return handler, store, employees, notification, files
}

func newCreateData(approverID string) formapimodels.FormCreateData {
	return formapimodels.FormCreateData{
		From:               "John Smith",
		Dept:               "IT",
		FromCardNo:         "1001",
		For:                "New laptop",
		Purpose:            "Replacement of broken unit",
		Unit:               "2",
		ApprovalNeededFrom: approverID,
	}
}

func TestFormCreate(t *testing.T) {
	ctx := context.Background()

	t.Run(`serial numbers are sequential across submissions`, func(t *testing.T) {
		handler, _, employees, _, _ := newTestHandler()
		approverID, err := employees.Create(dbmodels.Employee{Name: "Manager", Email: "manager@corp.local", Manager: true, CardNo: 1})
		require.Nil(t, err)

		for want := int64(1); want <= 5; want++ {
			result, err := handler.Create(ctx, newCreateData(approverID), nil)
			require.Nil(t, err)
			require.Equal(t, want, result.SerialNumber)
			require.NotEmpty(t, result.ID)
		}
	})

	t.Run(`unknown approver is rejected before anything is stored`, func(t *testing.T) {
		handler, store, _, notification, files := newTestHandler()
		attachment := &formapimodels.Attachment{FileName: "doc.pdf", Body: []byte("pdf")}

		_, err := handler.Create(ctx, newCreateData(uuid.NewString()), attachment)
		require.True(t, errs.IsInvalidReference(err))
		require.Empty(t, store.recs)
		require.Empty(t, files.files)
		require.Equal(t, 0, notification.delivered)
	})

	t.Run(`approver without an email is rejected`, func(t *testing.T) {
		handler, _, employees, _, _ := newTestHandler()
		approverID, err := employees.Create(dbmodels.Employee{Name: "Manager", Manager: true, CardNo: 1})
		require.Nil(t, err)

		_, err = handler.Create(ctx, newCreateData(approverID), nil)
		require.True(t, errs.IsInvalidReference(err))
	})

	t.Run(`attachment is stored and the approver is notified`, func(t *testing.T) {
		handler, store, employees, notification, files := newTestHandler()
		approverID, err := employees.Create(dbmodels.Employee{Name: "Manager", Email: "manager@corp.local", Manager: true, CardNo: 1})
		require.Nil(t, err)

		result, err := handler.Create(ctx, newCreateData(approverID), &formapimodels.Attachment{FileName: "doc.pdf", Body: []byte("pdf")})
		require.Nil(t, err)
		require.True(t, result.Notified)
		require.Equal(t, 1, notification.delivered)
		require.Equal(t, "manager@corp.local", notification.lastDelivered.Recipient)
		require.Len(t, files.files, 1)

		rec, err := store.GetByID(result.ID)
		require.Nil(t, err)
		require.NotNil(t, rec)
		require.Contains(t, rec.UploadedFile, "doc.pdf")
		require.Equal(t, models.FormStatusPending, rec.Status)

		// the notice row is persisted with the form
		require.Len(t, store.notices, 1)
		for _, notice := range store.notices {
			require.Equal(t, result.ID, notice.FormID)
		}
	})

	t.Run(`failed delivery does not fail the submission`, func(t *testing.T) {
		handler, store, employees, notification, _ := newTestHandler()
		notification.deliver = false
		approverID, err := employees.Create(dbmodels.Employee{Name: "Manager", Email: "manager@corp.local", Manager: true, CardNo: 1})
		require.Nil(t, err)

		result, err := handler.Create(ctx, newCreateData(approverID), nil)
		require.Nil(t, err)
		require.False(t, result.Notified)
		require.Len(t, store.recs, 1)
		// the undelivered notice row survives for the redelivery worker
		require.Len(t, store.notices, 1)
	})

	t.Run(`failed notice insert rolls the submission back`, func(t *testing.T) {
		handler, store, employees, notification, _ := newTestHandler()
		store.failNoticeInsert = true
		approverID, err := employees.Create(dbmodels.Employee{Name: "Manager", Email: "manager@corp.local", Manager: true, CardNo: 1})
		require.Nil(t, err)

		_, err = handler.Create(ctx, newCreateData(approverID), nil)
		require.NotNil(t, err)
		require.Empty(t, store.recs)
		require.Empty(t, store.notices)
		require.Equal(t, 0, notification.delivered)
	})
}

func TestFormUpdateStatus(t *testing.T) {
	ctx := context.Background()

	submit := func(t *testing.T, handler impl, employees *fakeEmployeeStore) string {
		approverID, err := employees.Create(dbmodels.Employee{Name: "Manager", Email: "manager@corp.local", Manager: true, CardNo: 1})
		require.Nil(t, err)
		_, err = employees.Create(dbmodels.Employee{Name: "John Smith", Email: "john@corp.local", CardNo: 1001})
		require.Nil(t, err)
		result, err := handler.Create(ctx, newCreateData(approverID), nil)
		require.Nil(t, err)
		return result.ID
	}

	t.Run(`approval commits and notifies the submitter`, func(t *testing.T) {
		handler, store, employees, notification, _ := newTestHandler()
		id := submit(t, handler, employees)
		delivered := notification.delivered

		result, err := handler.UpdateStatus(ctx, id, formapimodels.StatusUpdateData{Status: models.FormStatusApproved})
		require.Nil(t, err)
		require.True(t, result.Notified)
		require.Equal(t, models.FormStatusApproved, result.Form.Status)
		require.Equal(t, delivered+1, notification.delivered)
		require.Equal(t, "john@corp.local", notification.lastDelivered.Recipient)
		require.Equal(t, "Approved", notification.lastDelivered.Subject)

		rec, err := store.GetByID(id)
		require.Nil(t, err)
		require.Equal(t, models.FormStatusApproved, rec.Status)
	})

	t.Run(`unknown form id is a not-found, nothing is written`, func(t *testing.T) {
		handler, _, _, notification, _ := newTestHandler()

		_, err := handler.UpdateStatus(ctx, uuid.NewString(), formapimodels.StatusUpdateData{Status: models.FormStatusApproved})
		require.True(t, errs.IsNotFound(err))
		require.Equal(t, 0, notification.delivered)
	})

	t.Run(`failed notice insert rolls the status change back`, func(t *testing.T) {
		handler, store, employees, notification, _ := newTestHandler()
		id := submit(t, handler, employees)
		delivered := notification.delivered
		store.failNoticeInsert = true

		_, err := handler.UpdateStatus(ctx, id, formapimodels.StatusUpdateData{Status: models.FormStatusApproved})
		require.NotNil(t, err)
		require.Equal(t, delivered, notification.delivered)

		rec, err := store.GetByID(id)
		require.Nil(t, err)
		require.Equal(t, models.FormStatusPending, rec.Status)
	})

	t.Run(`dangling card number blocks the transition`, func(t *testing.T) {
		handler, store, employees, notification, _ := newTestHandler()
		approverID, err := employees.Create(dbmodels.Employee{Name: "Manager", Email: "manager@corp.local", Manager: true, CardNo: 1})
		require.Nil(t, err)
		data := newCreateData(approverID)
		data.FromCardNo = "9999"
		result, err := handler.Create(ctx, data, nil)
		require.Nil(t, err)
		delivered := notification.delivered

		_, err = handler.UpdateStatus(ctx, result.ID, formapimodels.StatusUpdateData{Status: models.FormStatusApproved})
		require.True(t, errs.IsInvalidReference(err))
		require.Equal(t, delivered, notification.delivered)

		rec, err := store.GetByID(result.ID)
		require.Nil(t, err)
		require.Equal(t, models.FormStatusPending, rec.Status)
	})

	t.Run(`non-numeric card number blocks the transition`, func(t *testing.T) {
		handler, _, employees, _, _ := newTestHandler()
		approverID, err := employees.Create(dbmodels.Employee{Name: "Manager", Email: "manager@corp.local", Manager: true, CardNo: 1})
		require.Nil(t, err)
		data := newCreateData(approverID)
		data.FromCardNo = "card-xyz"
		result, err := handler.Create(ctx, data, nil)
		require.Nil(t, err)

		_, err = handler.UpdateStatus(ctx, result.ID, formapimodels.StatusUpdateData{Status: models.FormStatusApproved})
		require.True(t, errs.IsInvalidReference(err))
	})

	t.Run(`modification text is stored only for the Modified status`, func(t *testing.T) {
		handler, store, employees, _, _ := newTestHandler()
		id := submit(t, handler, employees)

		result, err := handler.UpdateStatus(ctx, id, formapimodels.StatusUpdateData{
			Status:       models.FormStatusModified,
			Modification: "attach the invoice",
		})
		require.Nil(t, err)
		require.Equal(t, "attach the invoice", result.Form.Modification)

		rec, err := store.GetByID(id)
		require.Nil(t, err)
		require.Equal(t, "attach the invoice", rec.Modification)
	})

	t.Run(`Modified without text keeps the previous modification`, func(t *testing.T) {
		handler, store, employees, _, _ := newTestHandler()
		id := submit(t, handler, employees)

		_, err := handler.UpdateStatus(ctx, id, formapimodels.StatusUpdateData{Status: models.FormStatusModified})
		require.Nil(t, err)

		rec, err := store.GetByID(id)
		require.Nil(t, err)
		require.Equal(t, models.FormStatusModified, rec.Status)
		require.Equal(t, "", rec.Modification)
	})

	t.Run(`failed delivery still reports the committed form`, func(t *testing.T) {
		handler, store, employees, notification, _ := newTestHandler()
		id := submit(t, handler, employees)
		notification.deliver = false

		result, err := handler.UpdateStatus(ctx, id, formapimodels.StatusUpdateData{Status: models.FormStatusRejected})
		require.Nil(t, err)
		require.False(t, result.Notified)
		require.Equal(t, models.FormStatusRejected, result.Form.Status)

		rec, err := store.GetByID(id)
		require.Nil(t, err)
		require.Equal(t, models.FormStatusRejected, rec.Status)
	})
}

func TestFormQueries(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, handler impl, employees *fakeEmployeeStore, store *fakeFormStore) {
		approverID, err := employees.Create(dbmodels.Employee{Name: "Manager", Email: "manager@corp.local", Manager: true, CardNo: 1})
		require.Nil(t, err)
		_, err = employees.Create(dbmodels.Employee{Name: "John Smith", Email: "john@corp.local", CardNo: 1001})
		require.Nil(t, err)
		for _, status := range []models.FormStatus{
			models.FormStatusApproved,
			models.FormStatusApproved,
			models.FormStatusRejected,
			models.FormStatusPending,
		} {
			result, err := handler.Create(ctx, newCreateData(approverID), nil)
			require.Nil(t, err)
			_, err = store.Update(result.ID, map[string]interface{}{"status": status}, nil)
			require.Nil(t, err)
		}
	}

	t.Run(`counts aggregate per settled status`, func(t *testing.T) {
		handler, store, employees, _, _ := newTestHandler()
		seed(t, handler, employees, store)

		counts, err := handler.Counts()
		require.Nil(t, err)
		require.Equal(t, int64(2), counts.Approved)
		require.Equal(t, int64(1), counts.Rejected)
		require.Equal(t, int64(0), counts.Modified)
	})

	t.Run(`status listing matches the stored value`, func(t *testing.T) {
		handler, store, employees, _, _ := newTestHandler()
		seed(t, handler, employees, store)

		list, err := handler.ListByStatus("Approved")
		require.Nil(t, err)
		require.Len(t, list, 2)

		list, err = handler.ListByStatus("approved")
		require.Nil(t, err)
		require.Len(t, list, 0)
	})

	t.Run(`search filters by department`, func(t *testing.T) {
		handler, store, employees, _, _ := newTestHandler()
		seed(t, handler, employees, store)

		list, err := handler.Search(formapimodels.FormFilter{Dept: "IT"})
		require.Nil(t, err)
		require.Len(t, list, 4)

		list, err = handler.Search(formapimodels.FormFilter{Dept: "HR"})
		require.Nil(t, err)
		require.Len(t, list, 0)
	})

	t.Run(`search rejects a malformed date range`, func(t *testing.T) {
		handler, _, _, _, _ := newTestHandler()

		_, err := handler.Search(formapimodels.FormFilter{DateFrom: "01-02-2024", DateTo: "2024-02-01"})
		require.True(t, errs.IsValidation(err))
	})

	t.Run(`view carries the attachment retrieval link`, func(t *testing.T) {
		handler, _, employees, _, _ := newTestHandler()
		approverID, err := employees.Create(dbmodels.Employee{Name: "Manager", Email: "manager@corp.local", Manager: true, CardNo: 1})
		require.Nil(t, err)

		result, err := handler.Create(ctx, newCreateData(approverID), &formapimodels.Attachment{FileName: "doc.pdf", Body: []byte("pdf")})
		require.Nil(t, err)

		list, err := handler.Search(formapimodels.FormFilter{SerialNumber: result.SerialNumber})
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Contains(t, list[0].UploadedFile, "/api/v1/uploads/")
		require.Contains(t, list[0].UploadedFile, "doc.pdf")
	})
}

func TestFormDelete(t *testing.T) {
	ctx := context.Background()

	t.Run(`delete removes the record`, func(t *testing.T) {
		handler, store, employees, _, _ := newTestHandler()
		approverID, err := employees.Create(dbmodels.Employee{Name: "Manager", Email: "manager@corp.local", Manager: true, CardNo: 1})
		require.Nil(t, err)
		result, err := handler.Create(ctx, newCreateData(approverID), nil)
		require.Nil(t, err)

		require.Nil(t, handler.Delete(result.ID))
		rec, err := store.GetByID(result.ID)
		require.Nil(t, err)
		require.Nil(t, rec)
	})

	t.Run(`delete of an unknown id is a not-found`, func(t *testing.T) {
		handler, _, _, _, _ := newTestHandler()
		err := handler.Delete(uuid.NewString())
		require.True(t, errs.IsNotFound(err))
	})
}
