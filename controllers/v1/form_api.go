package apiv1

import (
	"fmt"
	"io"

	"template-approval-backend/controllers"
	xlsexport "template-approval-backend/lib/export/xls"
	formhandler "template-approval-backend/lib/form"
	"template-approval-backend/middleware"
	apimodels "template-approval-backend/models/api"
	formapimodels "template-approval-backend/models/api/form"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type formApiController struct {
	controllers.BaseAPIController
}

func InitFormApiRouters(app *fiber.App) {
	controller := formApiController{}
	app.Route("form", func(router fiber.Router) {
		router.Post("submit", controller.submit)
	})
	app.Route("forms", func(router fiber.Router) {
		router.Get("", controller.search)
		router.Get("counts", controller.counts)
		router.Get("status/:status", controller.listByStatus)
		router.Get("export/:status", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Post("status", middleware.ApproverRequired(), controller.updateStatus)
			idRoute.Delete("", middleware.ApproverRequired(), controller.delete)
		})
	})
}

// @Summary Submit
// @Tags Form
// @Description Creates a form with an optional attachment and notifies the approver
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 formapimodels.FormCreateData	true	"multipart fields plus optional file part"
// @Success 201 {object} apimodels.Response{data=formapimodels.SubmitResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/form/submit [post]
func (c *formApiController) submit(ctx *fiber.Ctx) error {
	var payload formapimodels.FormCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	attachment, err := c.getAttachment(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := formhandler.Instance.Create(ctx.UserContext(), payload, attachment)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to submit the form")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(result))
}

// @Summary Search
// @Tags Form
// @Description Lists forms matching every provided filter
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   serialNumber		query	int 	false	"serial number"
// @Param   dept        		query	string	false	"department name"
// @Param   dateFrom    		query	string	false	"YYYY-MM-DD"
// @Param   dateTo      		query	string	false	"YYYY-MM-DD, inclusive to end of day"
// @Success 200 {object} apimodels.Response{data=[]formapimodels.FormView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms [get]
func (c *formApiController) search(ctx *fiber.Ctx) error {
	var filter formapimodels.FormFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := formhandler.Instance.Search(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to search forms")
	}
	if len(list) == 0 {
		// empty result is not an error, the client distinguishes "no data"
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("no forms found"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary List by status
// @Tags Form
// @Description Lists forms whose status equals the value exactly, case included
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status      		path    string  true         "status value"
// @Success 200 {object} apimodels.Response{data=[]formapimodels.FormView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms/status/{status} [get]
func (c *formApiController) listByStatus(ctx *fiber.Ctx) error {
	status := ctx.Params("status")
	list, err := formhandler.Instance.ListByStatus(status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list forms by status")
	}
	if len(list) == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("no forms found"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Counts
// @Tags Form
// @Description Counts forms per decided status, matching case-insensitively
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=formapimodels.StatusCounts}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms/counts [get]
func (c *formApiController) counts(ctx *fiber.Ctx) error {
	counts, err := formhandler.Instance.Counts()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to count forms")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(counts))
}

// @Summary Export
// @Tags Form
// @Description Exports forms in the given status as an xlsx report
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status      		path    string  true         "status value"
// @Success 200 {file} binary
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms/export/{status} [get]
func (c *formApiController) export(ctx *fiber.Ctx) error {
	status := ctx.Params("status")
	list, err := formhandler.Instance.ListByStatus(status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list forms by status")
	}
	if len(list) == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("no forms found"))
	}
	buf, err := xlsexport.Instance.ExportFormList(status, list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to build the xlsx report")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="TemplateStatus_%s.xlsx"`, status))
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Update status
// @Tags Form
// @Description Transitions the form status and notifies the submitting employee
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 formapimodels.StatusUpdateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=formapimodels.StatusUpdateResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms/{id}/status [post]
func (c *formApiController) updateStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload formapimodels.StatusUpdateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := formhandler.Instance.UpdateStatus(ctx.UserContext(), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update the form status")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Delete
// @Tags Form
// @Description Deletes the form
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms/{id} [delete]
func (c *formApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = formhandler.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete the form")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *formApiController) getAttachment(ctx *fiber.Ctx) (*formapimodels.Attachment, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		// the attachment is optional
		return nil, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open the uploaded file")
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read the uploaded file")
	}
	return &formapimodels.Attachment{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Body:        body,
	}, nil
}
