package controller

import (
	"guidesphere_backend/internal/service"
	"guidesphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

// @Summary List my certificates
// @Description Certificates earned by the authenticated learner, newest first
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/certificates/me [get]
func (c *CertificateController) ListMine(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	certs, err := c.CertificateService.ListForUser(user.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}
