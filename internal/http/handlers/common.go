package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/mail"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/storage"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/verification"
)

var (
	env         config.Env
	mailSender  mail.Sender
	verifyStore verification.Store
	uploads     storage.Uploads
)

// Init wires the process-level collaborators the handlers share.
func Init(e config.Env, sender mail.Sender, store verification.Store, up storage.Uploads) {
	env = e
	mailSender = sender
	verifyStore = store
	uploads = up
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"estado": "falhou", "erro": message})
}

// RespondDomainError translates the domain error taxonomy to HTTP.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("erro interno")
		respondError(c, http.StatusInternalServerError, "erro interno")
	}
}

func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		respondError(c, http.StatusBadRequest, "corpo da requisição inválido")
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "id inválido")
		return 0, false
	}
	return id, true
}

// nullableID maps um id ausente (zero) para NULL em colunas FK opcionais.
func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id > 0}
}
