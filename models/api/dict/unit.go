package dictapimodels

import (
	dbmodels "template-approval-backend/models/db"

	"github.com/pkg/errors"
)

type UnitData struct {
	Unit string `json:"unit"`
}

func (r UnitData) Validate() error {
	if r.Unit == "" {
		return errors.New("unit name is not specified")
	}
	return nil
}

type UnitView struct {
	ID   string `json:"id"`
	Unit string `json:"unit"`
}

func UnitConvert(rec dbmodels.Unit) UnitView {
	return UnitView{
		ID:   rec.ID,
		Unit: rec.Unit,
	}
}
