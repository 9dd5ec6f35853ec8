package controller

import (
	"errors"

	"paper-analysis-be/internal/dto"
	"paper-analysis-be/internal/pkg/serverutils"
	"paper-analysis-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	UploadBatch(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Reprocess(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("upload", c.Upload)
	h.Post("upload/batch", c.UploadBatch)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Post(":id/reprocess", c.Reprocess)
}

func uploadFileFromForm(ctx *fiber.Ctx, field string) (*service.UploadFile, func(), error) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "missing file")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}
	return &service.UploadFile{
		Filename: fileHeader.Filename,
		Content:  f,
		Size:     fileHeader.Size,
		ForceOcr: ctx.FormValue("force_ocr") == "true",
	}, func() { f.Close() }, nil
}

func mapUploadError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidFileType):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	case errors.Is(err, service.ErrFileTooLarge):
		return ctx.Status(fiber.StatusRequestEntityTooLarge).JSON(serverutils.ErrorResponse(413, err.Error()))
	}
	return err
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	file, closeFn, err := uploadFileFromForm(ctx, "file")
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := c.documentService.Upload(ctx.Context(), userId, *file)
	if err != nil {
		return mapUploadError(ctx, err)
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document accepted for processing", res))
}

func (c *documentController) UploadBatch(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid multipart form")
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no files provided")
	}

	forceOcr := ctx.FormValue("force_ocr") == "true"

	files := make([]service.UploadFile, 0, len(headers))
	var closers []func()
	defer func() {
		for _, c := range closers {
			c()
		}
	}()
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			return err
		}
		closers = append(closers, func() { f.Close() })
		files = append(files, service.UploadFile{
			Filename: h.Filename,
			Content:  f,
			Size:     h.Size,
			ForceOcr: forceOcr,
		})
	}

	res, err := c.documentService.UploadBatch(ctx.Context(), userId, files)
	if err != nil {
		return mapUploadError(ctx, err)
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Batch accepted for processing", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.documentService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	res, err := c.documentService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Document not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	if err := c.documentService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}

func (c *documentController) Reprocess(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	var req dto.ReprocessDocumentRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	res, err := c.documentService.Reprocess(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Document not found"))
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Reprocess accepted", res))
}
