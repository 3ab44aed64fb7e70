package controller

import (
	"strconv"

	"guidesphere_backend/internal/service"
	"guidesphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GenerationController struct {
	GenerationService *service.GenerationService
}

func NewGenerationController(generationService *service.GenerationService) *GenerationController {
	return &GenerationController{GenerationService: generationService}
}

// @Summary Generate a quiz from an uploaded document
// @Description Extracts the document text and builds the content item's quiz from it, replacing any previous quiz
// @Tags generation
// @Produce json
// @Security BearerAuth
// @Param docId path string true "Document asset ID"
// @Param contentId query string false "Content item to attach the quiz to (defaults to the document's own content)"
// @Param count query int false "Number of questions" default(5)
// @Success 201 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/exam/from-document/{docId} [post]
func (c *GenerationController) FromDocument(ctx *gin.Context) {
	count, _ := strconv.Atoi(ctx.Query("count"))

	view, err := c.GenerationService.CreateFromDocument(ctx.Request.Context(), ctx.Param("docId"), ctx.Query("contentId"), count)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// @Summary Generate a quiz from a lecture video
// @Description Transcribes the video's audio and builds the content item's quiz from the transcript
// @Tags generation
// @Produce json
// @Security BearerAuth
// @Param contentId path string true "Video content ID"
// @Param count query int false "Number of questions" default(5)
// @Success 201 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/exam/from-video/{contentId} [post]
func (c *GenerationController) FromVideo(ctx *gin.Context) {
	count, _ := strconv.Atoi(ctx.Query("count"))

	view, err := c.GenerationService.CreateFromVideo(ctx.Request.Context(), ctx.Param("contentId"), count)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, view)
}
