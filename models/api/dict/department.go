package dictapimodels

import (
	dbmodels "template-approval-backend/models/db"

	"github.com/pkg/errors"
)

type DepartmentData struct {
	Name string `json:"name"`
}

func (r DepartmentData) Validate() error {
	if r.Name == "" {
		return errors.New("department name is not specified")
	}
	return nil
}

type DepartmentView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	return DepartmentView{
		ID:   rec.ID,
		Name: rec.Name,
	}
}
