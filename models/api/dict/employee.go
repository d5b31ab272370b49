package dictapimodels

import (
	dbmodels "template-approval-backend/models/db"

	"github.com/pkg/errors"
)

type EmployeeData struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Email      string `json:"email"`
	Manager    bool   `json:"manager"`
	CardNo     int64  `json:"CardNo"`
}

func (r EmployeeData) Validate() error {
	if r.Name == "" {
		return errors.New("employee name is not specified")
	}
	if r.Department == "" {
		return errors.New("employee department is not specified")
	}
	if r.CardNo <= 0 {
		return errors.New("employee card number is not specified")
	}
	return nil
}

type EmployeeView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Email      string `json:"email,omitempty"`
	Manager    bool   `json:"manager"`
	CardNo     int64  `json:"CardNo"`
}

func EmployeeConvert(rec dbmodels.Employee) EmployeeView {
	return EmployeeView{
		ID:         rec.ID,
		Name:       rec.Name,
		Department: rec.Department,
		Email:      rec.Email,
		Manager:    rec.Manager,
		CardNo:     rec.CardNo,
	}
}
