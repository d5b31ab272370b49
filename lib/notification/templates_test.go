package notificationhandler

import (
	"testing"

	"template-approval-backend/models"
	dbmodels "template-approval-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestBuildStatusNotice(t *testing.T) {
	t.Run(`approved`, func(t *testing.T) {
		subject, body, err := BuildStatusNotice(models.FormStatusApproved, "")
		require.Nil(t, err)
		require.Equal(t, "Form Approval", subject)
		require.Equal(t, "Your form has been approved", body)
	})

	t.Run(`rejected`, func(t *testing.T) {
		subject, body, err := BuildStatusNotice(models.FormStatusRejected, "")
		require.Nil(t, err)
		require.Equal(t, "Form Rejection", subject)
		require.Equal(t, "Your form has been rejected", body)
	})

	t.Run(`modified embeds the detail text`, func(t *testing.T) {
		subject, body, err := BuildStatusNotice(models.FormStatusModified, "attach the invoice")
		require.Nil(t, err)
		require.Equal(t, "Form Modification Needed", subject)
		require.Equal(t, "Your form need some modifications:- attach the invoice", body)
	})

	t.Run(`pending has no notice`, func(t *testing.T) {
		_, _, err := BuildStatusNotice(models.FormStatusPending, "")
		require.NotNil(t, err)
	})
}

func TestBuildSubmissionNotice(t *testing.T) {
	form := dbmodels.Form{
		From:       "John Smith",
		Dept:       "IT",
		FromCardNo: "1001",
		For:        "New laptop",
		Purpose:    "Replacement of broken unit",
		Unit:       "2",
	}

	t.Run(`lists every submitted field and the review link`, func(t *testing.T) {
		subject, body, err := BuildSubmissionNotice(form, "http://localhost:3000/templatelist")
		require.Nil(t, err)
		require.Equal(t, "Template Approval", subject)
		require.Contains(t, body, `href="http://localhost:3000/templatelist"`)
		require.Contains(t, body, "John Smith")
		require.Contains(t, body, "IT")
		require.Contains(t, body, "1001")
		require.Contains(t, body, "New laptop")
		require.Contains(t, body, "Replacement of broken unit")
	})

	t.Run(`field values are html-escaped`, func(t *testing.T) {
		hostile := form
		hostile.Purpose = `<script>alert("x")</script>`
		_, body, err := BuildSubmissionNotice(hostile, "http://localhost:3000/templatelist")
		require.Nil(t, err)
		require.NotContains(t, body, "<script>")
	})
}
