package apiv1

import (
	"template-approval-backend/controllers"
	notificationhandler "template-approval-backend/lib/notification"
	apimodels "template-approval-backend/models/api"
	notificationapimodels "template-approval-backend/models/api/notification"

	"github.com/gofiber/fiber/v2"
)

type emailApiController struct {
	controllers.BaseAPIController
}

func InitEmailApiRouters(app *fiber.App) {
	controller := emailApiController{}
	app.Post("send-email", controller.sendEmail)
}

// @Summary Send email
// @Tags Email
// @Description Sends an ad-hoc email, optionally attaching stored uploads
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 notificationapimodels.SendEmailData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/send-email [post]
func (c *emailApiController) sendEmail(ctx *fiber.Ctx) error {
	var payload notificationapimodels.SendEmailData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := notificationhandler.Instance.SendAdhoc(ctx.UserContext(), payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to send the email")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
