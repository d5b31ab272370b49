package formapimodels

import (
	"time"

	"template-approval-backend/models"
	dbmodels "template-approval-backend/models/db"

	"github.com/pkg/errors"
)

type FormCreateData struct {
	From               string `json:"from" form:"from"`
	Dept               string `json:"dept" form:"dept"`
	FromCardNo         string `json:"fromcardno" form:"fromcardno"`
	For                string `json:"for" form:"for"`
	Purpose            string `json:"purpose" form:"purpose"`
	Unit               string `json:"unit" form:"unit"`
	ApprovalNeededFrom string `json:"approvalNeededFrom" form:"approvalNeededFrom"`
}

func (r FormCreateData) Validate() error {
	if r.From == "" {
		return errors.New("sender name is not specified")
	}
	if r.Dept == "" {
		return errors.New("department is not specified")
	}
	if r.FromCardNo == "" {
		return errors.New("sender card number is not specified")
	}
	if r.For == "" {
		return errors.New("request target is not specified")
	}
	if r.Purpose == "" {
		return errors.New("purpose is not specified")
	}
	if r.Unit == "" {
		return errors.New("unit is not specified")
	}
	if r.ApprovalNeededFrom == "" {
		return errors.New("approver is not specified")
	}
	return nil
}

// Attachment carries the uploaded file alongside the form fields.
type Attachment struct {
	FileName    string
	ContentType string
	Body        []byte
}

type FormView struct {
	ID                 string            `json:"id"`
	SerialNumber       int64             `json:"serialNumber"`
	From               string            `json:"from"`
	Dept               string            `json:"dept"`
	FromCardNo         string            `json:"fromcardno"`
	For                string            `json:"for"`
	Purpose            string            `json:"purpose"`
	Unit               string            `json:"unit"`
	ApprovalNeededFrom string            `json:"approvalNeededFrom"`
	UploadedFile       string            `json:"uploadedFile,omitempty"`
	Status             models.FormStatus `json:"status"`
	Modification       string            `json:"modification"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// FormConvert maps a stored form to its API view. fileURL is the
// fully-qualified retrieval link, empty when no file was attached.
func FormConvert(rec dbmodels.Form, fileURL string) FormView {
	return FormView{
		ID:                 rec.ID,
		SerialNumber:       rec.SerialNumber,
		From:               rec.From,
		Dept:               rec.Dept,
		FromCardNo:         rec.FromCardNo,
		For:                rec.For,
		Purpose:            rec.Purpose,
		Unit:               rec.Unit,
		ApprovalNeededFrom: rec.ApprovalNeededFromID,
		UploadedFile:       fileURL,
		Status:             rec.Status,
		Modification:       rec.Modification,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
}

const filterDateLayout = "2006-01-02"

type FormFilter struct {
	SerialNumber int64  `query:"serialNumber"`
	Dept         string `query:"dept"`
	DateFrom     string `query:"dateFrom"`
	DateTo       string `query:"dateTo"`
}

func (f FormFilter) Validate() error {
	if _, _, err := f.Period(); err != nil {
		return err
	}
	return nil
}

// Period parses the date range. Both bounds must be set for the range to
// apply; dateTo is extended to the end of its calendar day.
func (f FormFilter) Period() (from, to *time.Time, err error) {
	if f.DateFrom == "" || f.DateTo == "" {
		return nil, nil, nil
	}
	fromValue, err := time.ParseInLocation(filterDateLayout, f.DateFrom, time.Local)
	if err != nil {
		return nil, nil, errors.New("invalid dateFrom value")
	}
	toValue, err := time.ParseInLocation(filterDateLayout, f.DateTo, time.Local)
	if err != nil {
		return nil, nil, errors.New("invalid dateTo value")
	}
	toValue = EndOfDay(toValue)
	return &fromValue, &toValue, nil
}

// EndOfDay moves t to 23:59:59.999 of the same calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

type StatusUpdateData struct {
	Status       models.FormStatus `json:"status"`
	Modification string            `json:"modification"`
}

func (r StatusUpdateData) Validate() error {
	if r.Status == "" {
		return errors.New("status is not specified")
	}
	if !r.Status.IsTransitionTarget() {
		return errors.New("unknown target status")
	}
	return nil
}

// StatusUpdateResult reports the committed form state and whether the
// notification was actually delivered. The two are intentionally separate:
// a mail failure does not roll back or mask the status write.
type StatusUpdateResult struct {
	Form     FormView `json:"form"`
	Notified bool     `json:"notified"`
}

type SubmitResult struct {
	ID           string `json:"id"`
	SerialNumber int64  `json:"serialNumber"`
	Notified     bool   `json:"notified"`
}

type StatusCounts struct {
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Modified int64 `json:"modified"`
}
