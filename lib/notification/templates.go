package notificationhandler

import (
	"bytes"
	"html/template"

	"template-approval-backend/models"
	dbmodels "template-approval-backend/models/db"

	"github.com/pkg/errors"
)

const (
	approvedTitle     = "Form Approval"
	rejectedTitle     = "Form Rejection"
	modifiedTitle     = "Form Modification Needed"
	submissionTitle   = "Template Approval"
	approvedText      = "Your form has been approved"
	rejectedText      = "Your form has been rejected"
	modifiedTextStart = "Your form need some modifications:- "
)

const submissionNoticeTemplate = `<p>Kindly check and approve the below template via the link:</p>
<p><a href="{{.ReviewURL}}" target="_blank">{{.ReviewURL}}</a></p>
<p><strong>From:</strong> {{.From}}</p>
<p><strong>Department:</strong> {{.Dept}}</p>
<p><strong>For:</strong> {{.For}}</p>
<p><strong>Purpose:</strong> {{.Purpose}}</p>
<p><strong>Unit:</strong> {{.Unit}}</p>
<p><strong>From Card No:</strong> {{.FromCardNo}}</p>
`

var submissionNotice = template.Must(template.New("submission_notice").Parse(submissionNoticeTemplate))

type submissionNoticeData struct {
	ReviewURL  string
	From       string
	Dept       string
	For        string
	Purpose    string
	Unit       string
	FromCardNo string
}

// BuildStatusNotice renders one of the three fixed status templates. The
// Modified notice embeds the free-text modification detail.
func BuildStatusNotice(status models.FormStatus, modification string) (subject, body string, err error) {
	switch status {
	case models.FormStatusApproved:
		return approvedTitle, approvedText, nil
	case models.FormStatusRejected:
		return rejectedTitle, rejectedText, nil
	case models.FormStatusModified:
		return modifiedTitle, modifiedTextStart + modification, nil
	}
	return "", "", errors.Errorf("no notice template for status %q", status)
}

// BuildSubmissionNotice renders the html notice sent to the approver on
// submission, listing all submitted fields and linking the review UI.
func BuildSubmissionNotice(form dbmodels.Form, reviewURL string) (subject, body string, err error) {
	data := submissionNoticeData{
		ReviewURL:  reviewURL,
		From:       form.From,
		Dept:       form.Dept,
		For:        form.For,
		Purpose:    form.Purpose,
		Unit:       form.Unit,
		FromCardNo: form.FromCardNo,
	}
	buf := new(bytes.Buffer)
	if err = submissionNotice.Execute(buf, data); err != nil {
		return "", "", errors.Wrap(err, "failed to render the submission notice")
	}
	return submissionTitle, buf.String(), nil
}
