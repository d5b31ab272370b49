package apiv1

import (
	"fmt"

	"template-approval-backend/controllers"
	filestorage "template-approval-backend/lib/file-storage"
	"template-approval-backend/lib/utils/helpers"
	apimodels "template-approval-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type fileApiController struct {
	controllers.BaseAPIController
}

func InitFileApiRouters(app *fiber.App) {
	controller := fileApiController{}
	app.Get("uploads/:key", controller.download)
}

// @Summary Download
// @Tags Files
// @Description Serves a stored attachment, the target of retrieval links
// @Param   key          		path    string  true         "object key"
// @Success 200 {file} binary
// @Failure 404 {object} apimodels.Response
// @router /api/v1/uploads/{key} [get]
func (c *fileApiController) download(ctx *fiber.Ctx) error {
	key := ctx.Params("key")
	if key == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("object key is not specified"))
	}
	body, contentType, err := filestorage.Instance.Get(ctx.UserContext(), key)
	if err != nil {
		c.GetLogger(ctx).WithError(err).Warn("attachment not found")
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("file not found"))
	}
	if contentType != "" {
		ctx.Set(fiber.HeaderContentType, contentType)
	}
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, helpers.AttachmentName(key)))
	return ctx.Status(fiber.StatusOK).Send(body)
}
