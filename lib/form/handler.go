package formhandler

import (
	"context"
	"strconv"
	"time"

	"template-approval-backend/db"
	employeestore "template-approval-backend/lib/employee/store"
	filestorage "template-approval-backend/lib/file-storage"
	formstore "template-approval-backend/lib/form/store"
	notificationhandler "template-approval-backend/lib/notification"
	"template-approval-backend/lib/utils/helpers"
	initchecker "template-approval-backend/lib/utils/init-checker"
	"template-approval-backend/models"
	formapimodels "template-approval-backend/models/api/form"
	dbmodels "template-approval-backend/models/db"
	"template-approval-backend/models/errs"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// Create validates the approver reference, stores the optional
	// attachment, persists the form with the next serial number and sends
	// the submission notice to the approver. The notice row commits with
	// the form; delivery is best-effort and its outcome is reported
	// alongside the persisted record.
	Create(ctx context.Context, data formapimodels.FormCreateData, attachment *formapimodels.Attachment) (result formapimodels.SubmitResult, err error)
	Search(filter formapimodels.FormFilter) (list []formapimodels.FormView, err error)
	ListByStatus(status string) (list []formapimodels.FormView, err error)
	Counts() (counts formapimodels.StatusCounts, err error)
	// UpdateStatus moves the form to the requested status and notifies the
	// submitting employee. The status write and its notice row commit
	// together; delivery happens after commit and its outcome never fails
	// the update.
	UpdateStatus(ctx context.Context, id string, data formapimodels.StatusUpdateData) (result formapimodels.StatusUpdateResult, err error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         formstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		notification:  notificationhandler.Instance,
		fileStorage:   filestorage.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"employeeStore", instance.employeeStore,
		"notification", instance.notification,
		"fileStorage", instance.fileStorage,
	)
	Instance = instance
}

type impl struct {
	store         formstore.Provider
	employeeStore employeestore.Provider
	notification  notificationhandler.Provider
	fileStorage   filestorage.Provider
}

func (i impl) Create(ctx context.Context, data formapimodels.FormCreateData, attachment *formapimodels.Attachment) (formapimodels.SubmitResult, error) {
	logger := log.WithField("from_card_no", data.FromCardNo)
	approver, err := i.employeeStore.GetByID(data.ApprovalNeededFrom)
	if err != nil {
		return formapimodels.SubmitResult{}, errors.Wrap(errs.ErrPersistence, err.Error())
	}
	// the approver is checked before the attachment is stored, an invalid
	// reference must not leave an orphaned upload behind
	if approver == nil || approver.Email == "" {
		return formapimodels.SubmitResult{}, errors.Wrap(errs.ErrInvalidReference, "invalid employee selected or email not found")
	}
	rec := dbmodels.Form{
		From:                 data.From,
		Dept:                 data.Dept,
		FromCardNo:           data.FromCardNo,
		For:                  data.For,
		Purpose:              data.Purpose,
		Unit:                 data.Unit,
		ApprovalNeededFromID: approver.ID,
		Status:               models.FormStatusPending,
	}
	if attachment != nil {
		key := helpers.AttachmentKey(time.Now(), attachment.FileName)
		err = i.fileStorage.Upload(ctx, key, attachment.Body, attachment.ContentType)
		if err != nil {
			logger.WithError(err).Error("failed to store the attachment")
			return formapimodels.SubmitResult{}, errors.Wrap(errs.ErrPersistence, err.Error())
		}
		rec.UploadedFile = key
	}
	notice, err := i.notification.SubmissionNotice(rec, *approver)
	if err != nil {
		logger.WithError(err).Error("failed to compose the submission notice")
		return formapimodels.SubmitResult{}, errors.Wrap(errs.ErrNotification, err.Error())
	}
	id, serialNumber, noticeID, err := i.store.Create(rec, &notice)
	if err != nil {
		logger.WithError(err).Error("failed to create the form")
		return formapimodels.SubmitResult{}, errors.Wrap(errs.ErrPersistence, err.Error())
	}
	rec.ID = id
	rec.SerialNumber = serialNumber
	logger.
		WithField("rec_id", id).
		WithField("serial_number", serialNumber).
		Info("form created")

	// the notice row is committed alongside the form, so a failed delivery
	// attempt here is retried by the worker instead of losing the notice
	notice.ID = noticeID
	notice.FormID = id
	notified := i.notification.Deliver(ctx, notice)
	return formapimodels.SubmitResult{
		ID:           id,
		SerialNumber: serialNumber,
		Notified:     notified,
	}, nil
}

func (i impl) Search(filter formapimodels.FormFilter) ([]formapimodels.FormView, error) {
	dateFrom, dateTo, err := filter.Period()
	if err != nil {
		return nil, errors.Wrap(errs.ErrValidation, err.Error())
	}
	recList, err := i.store.Find(formstore.Filter{
		SerialNumber: filter.SerialNumber,
		Dept:         filter.Dept,
		DateFrom:     dateFrom,
		DateTo:       dateTo,
	})
	if err != nil {
		return nil, errors.Wrap(errs.ErrPersistence, err.Error())
	}
	return i.convertList(recList), nil
}

func (i impl) ListByStatus(status string) ([]formapimodels.FormView, error) {
	recList, err := i.store.ListByStatus(status)
	if err != nil {
		return nil, errors.Wrap(errs.ErrPersistence, err.Error())
	}
	return i.convertList(recList), nil
}

func (i impl) Counts() (formapimodels.StatusCounts, error) {
	counts := formapimodels.StatusCounts{}
	var err error
	if counts.Approved, err = i.store.CountByStatus(models.FormStatusApproved); err != nil {
		return formapimodels.StatusCounts{}, errors.Wrap(errs.ErrPersistence, err.Error())
	}
	if counts.Rejected, err = i.store.CountByStatus(models.FormStatusRejected); err != nil {
		return formapimodels.StatusCounts{}, errors.Wrap(errs.ErrPersistence, err.Error())
	}
	if counts.Modified, err = i.store.CountByStatus(models.FormStatusModified); err != nil {
		return formapimodels.StatusCounts{}, errors.Wrap(errs.ErrPersistence, err.Error())
	}
	return counts, nil
}

func (i impl) UpdateStatus(ctx context.Context, id string, data formapimodels.StatusUpdateData) (formapimodels.StatusUpdateResult, error) {
	logger := log.
		WithField("rec_id", id).
		WithField("new_status", data.Status)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return formapimodels.StatusUpdateResult{}, errors.Wrap(errs.ErrPersistence, err.Error())
	}
	if rec == nil {
		return formapimodels.StatusUpdateResult{}, errors.Wrap(errs.ErrNotFound, "form not found")
	}
	if rec.Status != models.FormStatusPending {
		// allowed, nothing blocks re-deciding a settled form, but no UI
		// path does it either
		logger.WithField("current_status", rec.Status).Warn("re-transition of a settled form")
	}
	employee, err := i.resolveSubmitter(rec.FromCardNo)
	if err != nil {
		return formapimodels.StatusUpdateResult{}, err
	}
	updMap := map[string]interface{}{
		"status": data.Status,
	}
	if data.Status == models.FormStatusModified && data.Modification != "" {
		updMap["modification"] = data.Modification
	}
	rec.Status = data.Status
	if modification, ok := updMap["modification"]; ok {
		rec.Modification = modification.(string)
	}
	notice, err := i.notification.StatusNotice(*rec, *employee)
	if err != nil {
		logger.WithError(err).Error("failed to compose the status notice")
		return formapimodels.StatusUpdateResult{}, errors.Wrap(errs.ErrNotification, err.Error())
	}
	// the notice row commits with the status write; a failed insert rolls
	// the transition back instead of silently dropping the notice
	noticeID, err := i.store.Update(id, updMap, &notice)
	if err != nil {
		logger.WithError(err).Error("failed to update the form status")
		return formapimodels.StatusUpdateResult{}, errors.Wrap(errs.ErrPersistence, err.Error())
	}
	logger.Info("form status updated")

	notice.ID = noticeID
	notified := i.notification.Deliver(ctx, notice)
	return formapimodels.StatusUpdateResult{
		Form:     i.convert(*rec),
		Notified: notified,
	}, nil
}

func (i impl) Delete(id string) error {
	logger := log.WithField("rec_id", id)
	found, err := i.store.Delete(id)
	if err != nil {
		return errors.Wrap(errs.ErrPersistence, err.Error())
	}
	if !found {
		return errors.Wrap(errs.ErrNotFound, "form not found")
	}
	logger.Info("form deleted")
	return nil
}

// resolveSubmitter correlates the form's card number back to an employee so
// the status notice can be routed.
func (i impl) resolveSubmitter(fromCardNo string) (*dbmodels.Employee, error) {
	cardNo, err := strconv.ParseInt(fromCardNo, 10, 64)
	if err != nil {
		return nil, errors.Wrap(errs.ErrInvalidReference, "sender card number is not numeric")
	}
	employee, err := i.employeeStore.GetByCardNo(cardNo)
	if err != nil {
		return nil, errors.Wrap(errs.ErrPersistence, err.Error())
	}
	if employee == nil {
		return nil, errors.Wrap(errs.ErrInvalidReference, "employee not found")
	}
	return employee, nil
}

func (i impl) convert(rec dbmodels.Form) formapimodels.FormView {
	fileURL := ""
	if rec.UploadedFile != "" {
		fileURL = i.fileStorage.RetrievalURL(rec.UploadedFile)
	}
	return formapimodels.FormConvert(rec, fileURL)
}

func (i impl) convertList(recList []dbmodels.Form) []formapimodels.FormView {
	list := make([]formapimodels.FormView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, i.convert(rec))
	}
	return list
}
