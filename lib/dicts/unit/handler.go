package unitprovider

import (
	"template-approval-backend/db"
	"template-approval-backend/lib/dicts/unit/store"
	initchecker "template-approval-backend/lib/utils/init-checker"
	dictapimodels "template-approval-backend/models/api/dict"
	dbmodels "template-approval-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(request dictapimodels.UnitData) (id string, err error)
	List() (list []dictapimodels.UnitView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: store.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store store.Provider
}

func (i impl) Create(request dictapimodels.UnitData) (id string, err error) {
	rec := dbmodels.Unit{
		Unit: request.Unit,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("unit_name", rec.Unit).
		WithField("rec_id", id).
		Info("unit created")
	return id, nil
}

func (i impl) List() (list []dictapimodels.UnitView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	list = make([]dictapimodels.UnitView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.UnitConvert(rec))
	}
	return list, nil
}
