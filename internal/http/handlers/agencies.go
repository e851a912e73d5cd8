package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
)

// GET /admin/agencias
// Diretório de agências com o município e a província de cada uma.
func GetAgencies(c *gin.Context) {
	rows, err := intconfig.DB.Query(
		`SELECT a.id, a.nome, COALESCE(a.municipio_id,0), COALESCE(m.municipio,''), COALESCE(p.provincia,'')
		 FROM agencias a
		 LEFT JOIN municipios_agencias m ON m.id = a.municipio_id
		 LEFT JOIN provincias_agencias p ON p.id = m.provincia_id
		 ORDER BY a.nome ASC`,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar agências")
		return
	}
	defer rows.Close()

	list := []models.Agencia{}
	for rows.Next() {
		var a models.Agencia
		if err := rows.Scan(&a.ID, &a.Nome, &a.MunicipioID, &a.Municipio, &a.Provincia); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao ler agências")
			return
		}
		list = append(list, a)
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "agencias": list})
}

// GET /admin/cargas
// Registos de carga de balcão, com viatura, agência e municípios de rota.
func GetCargoRecords(c *gin.Context) {
	rows, err := intconfig.DB.Query(
		`SELECT ca.id, ca.nome_produto, ca.destinatario,
			COALESCE(ca.agencia_id,0), COALESCE(ca.municipio_origem_id,0), COALESCE(ca.municipio_destino_id,0), COALESCE(ca.viatura_id,0),
			COALESCE(a.nome,''), COALESCE(mo.municipio,''), COALESCE(md.municipio,''), COALESCE(v.matricula,'')
		 FROM cargas ca
		 LEFT JOIN agencias a ON a.id = ca.agencia_id
		 LEFT JOIN municipios_agencias mo ON mo.id = ca.municipio_origem_id
		 LEFT JOIN municipios_agencias md ON md.id = ca.municipio_destino_id
		 LEFT JOIN viaturas v ON v.id = ca.viatura_id
		 ORDER BY ca.id DESC`,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar cargas")
		return
	}
	defer rows.Close()

	list := []models.Carga{}
	for rows.Next() {
		var ca models.Carga
		if err := rows.Scan(
			&ca.ID, &ca.NomeProduto, &ca.Destinatario,
			&ca.AgenciaID, &ca.MunicipioOrigemID, &ca.MunicipioDestinoID, &ca.ViaturaID,
			&ca.Agencia, &ca.MunicipioOrigem, &ca.MunicipioDestino, &ca.Matricula,
		); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao ler cargas")
			return
		}
		list = append(list, ca)
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "cargas": list})
}

type cargaInput struct {
	NomeProduto        string `json:"nomeProduto"`
	Destinatario       string `json:"destinatario"`
	AgenciaID          int64  `json:"agenciaId"`
	MunicipioOrigemID  int64  `json:"municipioOrigemId"`
	MunicipioDestinoID int64  `json:"municipioDestinoId"`
	ViaturaID          int64  `json:"viaturaId"`
}

// POST /admin/cargas
func CreateCargoRecord(c *gin.Context) {
	var in cargaInput
	if !bindJSON(c, &in) {
		return
	}
	if strings.TrimSpace(in.NomeProduto) == "" || strings.TrimSpace(in.Destinatario) == "" {
		respondError(c, http.StatusBadRequest, "Produto e destinatário são obrigatórios.")
		return
	}

	res, err := intconfig.DB.Exec(
		`INSERT INTO cargas (nome_produto, destinatario, agencia_id, municipio_origem_id, municipio_destino_id, viatura_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		in.NomeProduto, in.Destinatario,
		nullableID(in.AgenciaID), nullableID(in.MunicipioOrigemID), nullableID(in.MunicipioDestinoID), nullableID(in.ViaturaID),
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao criar carga")
		return
	}
	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id})
}
