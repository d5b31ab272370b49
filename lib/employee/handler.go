package employeehandler

import (
	"template-approval-backend/db"
	employeestore "template-approval-backend/lib/employee/store"
	dictapimodels "template-approval-backend/models/api/dict"
	dbmodels "template-approval-backend/models/db"
	"template-approval-backend/models/errs"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(data dictapimodels.EmployeeData) (id string, err error)
	GetByCardNo(cardNo int64) (item dictapimodels.EmployeeView, err error)
	List() (list []dictapimodels.EmployeeView, err error)
	// ListApprovers returns employees flagged as managers, the set a form's
	// approvalNeededFrom is picked from
	ListApprovers() (list []dictapimodels.EmployeeView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: employeestore.NewInstance(db.DB),
	}
}

type impl struct {
	store employeestore.Provider
}

func (i impl) Create(data dictapimodels.EmployeeData) (id string, err error) {
	rec := dbmodels.Employee{
		Name:       data.Name,
		Department: data.Department,
		Email:      data.Email,
		Manager:    data.Manager,
		CardNo:     data.CardNo,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("employee_name", rec.Name).
		WithField("rec_id", id).
		Info("employee created")
	return id, nil
}

func (i impl) GetByCardNo(cardNo int64) (item dictapimodels.EmployeeView, err error) {
	rec, err := i.store.GetByCardNo(cardNo)
	if err != nil {
		return dictapimodels.EmployeeView{}, err
	}
	if rec == nil {
		return dictapimodels.EmployeeView{}, errors.Wrap(errs.ErrNotFound, "employee not found")
	}
	return dictapimodels.EmployeeConvert(*rec), nil
}

func (i impl) List() (list []dictapimodels.EmployeeView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	return convertList(recList), nil
}

func (i impl) ListApprovers() (list []dictapimodels.EmployeeView, err error) {
	recList, err := i.store.ListManagers()
	if err != nil {
		return nil, err
	}
	return convertList(recList), nil
}

func convertList(recList []dbmodels.Employee) []dictapimodels.EmployeeView {
	list := make([]dictapimodels.EmployeeView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.EmployeeConvert(rec))
	}
	return list
}
