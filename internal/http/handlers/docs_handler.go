package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/services"
)

// GET /admin/passageiros/:id/bilhete
func GetETicketPDF(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	svc := services.DocsService{}
	pdf, filename, err := svc.GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
