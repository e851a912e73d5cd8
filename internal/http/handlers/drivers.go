package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
)

// GET /admin/all/motoristas
func GetDrivers(c *gin.Context) {
	rows, err := intconfig.DB.Query(
		`SELECT id, nome, contacto, numero_passe, COALESCE(imagem,'') FROM motoristas ORDER BY nome ASC`,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar motoristas")
		return
	}
	defer rows.Close()

	list := []models.Motorista{}
	for rows.Next() {
		var m models.Motorista
		if err := rows.Scan(&m.ID, &m.Nome, &m.Contacto, &m.NumeroPasse, &m.Imagem); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao ler motoristas")
			return
		}
		if m.Imagem != "" {
			m.Imagem = env.PublicURL + "/uploads/" + m.Imagem
		}
		list = append(list, m)
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "motoristas": list})
}

// POST /admin/motoristas (multipart, foto opcional)
func CreateDriver(c *gin.Context) {
	nome := strings.TrimSpace(c.PostForm("nome"))
	contacto := strings.TrimSpace(c.PostForm("contacto"))
	passe := strings.TrimSpace(c.PostForm("numero_passe"))
	if nome == "" || passe == "" {
		respondError(c, http.StatusBadRequest, "Nome e número de passe são obrigatórios.")
		return
	}

	imagem, err := uploads.SaveImage(c, "imagem")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao guardar a imagem")
		return
	}

	res, err := intconfig.DB.Exec(
		`INSERT INTO motoristas (nome, contacto, numero_passe, imagem) VALUES (?, ?, ?, ?)`,
		nome, contacto, passe, imagem,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao criar motorista")
		return
	}
	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id})
}

// PUT /admin/motoristas/:id
func UpdateDriver(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var current models.Motorista
	err := intconfig.DB.QueryRow(
		`SELECT id, nome, contacto, numero_passe, COALESCE(imagem,'') FROM motoristas WHERE id = ?`, id,
	).Scan(&current.ID, &current.Nome, &current.Contacto, &current.NumeroPasse, &current.Imagem)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusNotFound, "motorista não encontrado")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar motorista")
		return
	}

	if v := strings.TrimSpace(c.PostForm("nome")); v != "" {
		current.Nome = v
	}
	if v := strings.TrimSpace(c.PostForm("contacto")); v != "" {
		current.Contacto = v
	}
	if v := strings.TrimSpace(c.PostForm("numero_passe")); v != "" {
		current.NumeroPasse = v
	}
	if name, err := uploads.SaveImage(c, "imagem"); err == nil && name != "" {
		current.Imagem = name
	}

	_, err = intconfig.DB.Exec(
		`UPDATE motoristas SET nome = ?, contacto = ?, numero_passe = ?, imagem = ? WHERE id = ?`,
		current.Nome, current.Contacto, current.NumeroPasse, current.Imagem, id,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao atualizar motorista")
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "motorista": current})
}

// DELETE /admin/motoristas/:id
func DeleteDriver(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := intconfig.DB.Exec(`DELETE FROM motoristas WHERE id = ?`, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao remover motorista")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		respondError(c, http.StatusNotFound, "motorista não encontrado")
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "mensagem": "Motorista removido."})
}
