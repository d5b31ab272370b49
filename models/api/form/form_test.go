package formapimodels

import (
	"testing"
	"time"

	"template-approval-backend/models"

	"github.com/stretchr/testify/require"
)

func TestFormFilterPeriod(t *testing.T) {
	t.Run(`no bounds means no range`, func(t *testing.T) {
		from, to, err := FormFilter{}.Period()
		require.Nil(t, err)
		require.Nil(t, from)
		require.Nil(t, to)
	})

	t.Run(`a single bound is ignored`, func(t *testing.T) {
		from, to, err := FormFilter{DateFrom: "2024-02-01"}.Period()
		require.Nil(t, err)
		require.Nil(t, from)
		require.Nil(t, to)
	})

	t.Run(`dateTo covers its whole calendar day`, func(t *testing.T) {
		from, to, err := FormFilter{DateFrom: "2024-02-01", DateTo: "2024-02-03"}.Period()
		require.Nil(t, err)
		require.NotNil(t, from)
		require.NotNil(t, to)
		require.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), *from)
		require.Equal(t, 23, to.Hour())
		require.Equal(t, 59, to.Minute())
		require.Equal(t, 59, to.Second())
		require.Equal(t, 3, to.Day())

		// a form submitted late on the last day still falls in the range
		submitted := time.Date(2024, 2, 3, 23, 30, 0, 0, time.Local)
		require.False(t, submitted.After(*to))
	})

	t.Run(`malformed bound is rejected`, func(t *testing.T) {
		_, _, err := FormFilter{DateFrom: "01.02.2024", DateTo: "2024-02-03"}.Period()
		require.NotNil(t, err)

		_, _, err = FormFilter{DateFrom: "2024-02-01", DateTo: "03-02-2024"}.Period()
		require.NotNil(t, err)
	})
}

func TestFormCreateDataValidate(t *testing.T) {
	valid := FormCreateData{
		From:               "John Smith",
		Dept:               "IT",
		FromCardNo:         "1001",
		For:                "New laptop",
		Purpose:            "Replacement of broken unit",
		Unit:               "2",
		ApprovalNeededFrom: "8b94509e-7c23-4a0a-92d1-8a53f61b0a10",
	}
	require.Nil(t, valid.Validate())

	t.Run(`every field is required`, func(t *testing.T) {
		for name, mutate := range map[string]func(*FormCreateData){
			"from":               func(d *FormCreateData) { d.From = "" },
			"dept":               func(d *FormCreateData) { d.Dept = "" },
			"fromcardno":         func(d *FormCreateData) { d.FromCardNo = "" },
			"for":                func(d *FormCreateData) { d.For = "" },
			"purpose":            func(d *FormCreateData) { d.Purpose = "" },
			"unit":               func(d *FormCreateData) { d.Unit = "" },
			"approvalNeededFrom": func(d *FormCreateData) { d.ApprovalNeededFrom = "" },
		} {
			data := valid
			mutate(&data)
			require.NotNil(t, data.Validate(), "field %s should be required", name)
		}
	})
}

func TestStatusUpdateDataValidate(t *testing.T) {
	t.Run(`settled statuses are accepted`, func(t *testing.T) {
		for _, status := range []models.FormStatus{
			models.FormStatusApproved,
			models.FormStatusRejected,
			models.FormStatusModified,
		} {
			require.Nil(t, StatusUpdateData{Status: status}.Validate())
		}
	})

	t.Run(`pending and unknown targets are rejected`, func(t *testing.T) {
		require.NotNil(t, StatusUpdateData{}.Validate())
		require.NotNil(t, StatusUpdateData{Status: models.FormStatusPending}.Validate())
		require.NotNil(t, StatusUpdateData{Status: "Archived"}.Validate())
	})
}
