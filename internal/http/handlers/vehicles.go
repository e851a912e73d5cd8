package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
)

// GET /admin/veiculos
func GetVehicles(c *gin.Context) {
	rows, err := intconfig.DB.Query(
		`SELECT v.id, v.matricula, v.codigo, COALESCE(mo.modelo,''), v.modelo_id, COALESCE(v.motorista_id,0), v.status, COALESCE(v.imagem,''),
			m.id, m.nome, m.contacto, m.numero_passe
		 FROM viaturas v
		 LEFT JOIN modelos mo ON mo.id = v.modelo_id
		 LEFT JOIN motoristas m ON m.id = v.motorista_id
		 ORDER BY v.id DESC`,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar viaturas")
		return
	}
	defer rows.Close()

	list := []models.Viatura{}
	for rows.Next() {
		var v models.Viatura
		var mID sql.NullInt64
		var mNome, mContacto, mPasse sql.NullString
		if err := rows.Scan(
			&v.ID, &v.Matricula, &v.Codigo, &v.Modelo, &v.ModeloID, &v.MotoristaID, &v.Status, &v.Imagem,
			&mID, &mNome, &mContacto, &mPasse,
		); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao ler viaturas")
			return
		}
		if mID.Valid {
			v.Motorista = &models.Motorista{
				ID: mID.Int64, Nome: mNome.String, Contacto: mContacto.String, NumeroPasse: mPasse.String,
			}
		}
		if v.Imagem != "" {
			v.Imagem = env.PublicURL + "/uploads/" + v.Imagem
		}
		list = append(list, v)
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "viaturas": list})
}

// POST /admin/criar/veiculos (multipart; marca e modelo por nome, criados quando novos)
func CreateVehicle(c *gin.Context) {
	matricula := strings.TrimSpace(c.PostForm("matricula"))
	codigo := strings.TrimSpace(c.PostForm("codigo"))
	marcaNome := strings.TrimSpace(c.PostForm("marca"))
	modeloNome := strings.TrimSpace(c.PostForm("modelo"))
	motoristaNome := strings.TrimSpace(c.PostForm("motorista"))
	if matricula == "" || codigo == "" || modeloNome == "" {
		respondError(c, http.StatusBadRequest, "Matrícula, código e modelo são obrigatórios.")
		return
	}

	marcaID, err := upsertMarca(marcaNome)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao registar a marca")
		return
	}
	modeloID, err := upsertModelo(modeloNome, marcaID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao registar o modelo")
		return
	}

	var motoristaID int64
	if motoristaNome != "" {
		err := intconfig.DB.QueryRow(`SELECT id FROM motoristas WHERE nome = ?`, motoristaNome).Scan(&motoristaID)
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "Motorista não encontrado.")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao buscar o motorista")
			return
		}
	}

	imagem, err := uploads.SaveImage(c, "imagem")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao guardar a imagem")
		return
	}

	// sem motorista a coluna fica NULL, nunca uma referência órfã
	res, err := intconfig.DB.Exec(
		`INSERT INTO viaturas (matricula, codigo, modelo_id, motorista_id, status, imagem) VALUES (?, ?, ?, ?, ?, ?)`,
		matricula, codigo, modeloID, nullableID(motoristaID), models.ViaturaDisponivel, imagem,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			respondError(c, http.StatusConflict, "Matrícula ou código já registado.")
			return
		}
		respondError(c, http.StatusInternalServerError, "falha ao criar viatura")
		return
	}
	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id})
}

// PUT /admin/atualizar/veiculo/:id (multipart; campos vazios mantêm o valor atual)
func UpdateVehicle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var current models.Viatura
	err := intconfig.DB.QueryRow(
		`SELECT id, matricula, codigo, modelo_id, COALESCE(motorista_id,0), status, COALESCE(imagem,'')
		 FROM viaturas WHERE id = ?`, id,
	).Scan(&current.ID, &current.Matricula, &current.Codigo, &current.ModeloID, &current.MotoristaID, &current.Status, &current.Imagem)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusNotFound, "viatura não encontrada")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar viatura")
		return
	}

	if v := strings.TrimSpace(c.PostForm("matricula")); v != "" {
		current.Matricula = v
	}
	if v := strings.TrimSpace(c.PostForm("codigo")); v != "" {
		current.Codigo = v
	}
	if v := strings.TrimSpace(c.PostForm("modelo")); v != "" {
		marcaID, err := upsertMarca(strings.TrimSpace(c.PostForm("marca")))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao registar a marca")
			return
		}
		modeloID, err := upsertModelo(v, marcaID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao registar o modelo")
			return
		}
		current.ModeloID = modeloID
	}
	if v := strings.TrimSpace(c.PostForm("motorista")); v != "" {
		var motoristaID int64
		err := intconfig.DB.QueryRow(`SELECT id FROM motoristas WHERE nome = ?`, v).Scan(&motoristaID)
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "Motorista não encontrado.")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao buscar o motorista")
			return
		}
		current.MotoristaID = motoristaID
	}
	if name, err := uploads.SaveImage(c, "imagem"); err == nil && name != "" {
		current.Imagem = name
	}

	_, err = intconfig.DB.Exec(
		`UPDATE viaturas SET matricula = ?, codigo = ?, modelo_id = ?, motorista_id = ?, imagem = ? WHERE id = ?`,
		current.Matricula, current.Codigo, current.ModeloID, nullableID(current.MotoristaID), current.Imagem, id,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			respondError(c, http.StatusConflict, "Matrícula ou código já registado.")
			return
		}
		respondError(c, http.StatusInternalServerError, "falha ao atualizar viatura")
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "viatura": current})
}

// DELETE /admin/viaturas/:id
func DeleteVehicle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := intconfig.DB.Exec(`DELETE FROM viaturas WHERE id = ?`, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao remover viatura")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		respondError(c, http.StatusNotFound, "viatura não encontrada")
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "mensagem": "Viatura removida."})
}

// GET /admin/marcas
func GetBrands(c *gin.Context) {
	rows, err := intconfig.DB.Query(`SELECT id, marca FROM marcas ORDER BY marca ASC`)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar marcas")
		return
	}
	defer rows.Close()

	list := []models.Marca{}
	for rows.Next() {
		var m models.Marca
		if err := rows.Scan(&m.ID, &m.Marca); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao ler marcas")
			return
		}
		list = append(list, m)
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "marcas": list})
}

// GET /admin/modelos
func GetModels(c *gin.Context) {
	rows, err := intconfig.DB.Query(`SELECT id, modelo, COALESCE(marca_id,0) FROM modelos ORDER BY modelo ASC`)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar modelos")
		return
	}
	defer rows.Close()

	list := []models.Modelo{}
	for rows.Next() {
		var m models.Modelo
		if err := rows.Scan(&m.ID, &m.Modelo, &m.MarcaID); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao ler modelos")
			return
		}
		list = append(list, m)
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "modelos": list})
}

func upsertMarca(nome string) (int64, error) {
	if nome == "" {
		return 0, nil
	}
	var id int64
	err := intconfig.DB.QueryRow(`SELECT id FROM marcas WHERE marca = ?`, nome).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	res, err := intconfig.DB.Exec(`INSERT INTO marcas (marca) VALUES (?)`, nome)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func upsertModelo(nome string, marcaID int64) (int64, error) {
	var id int64
	err := intconfig.DB.QueryRow(`SELECT id FROM modelos WHERE modelo = ?`, nome).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	res, err := intconfig.DB.Exec(`INSERT INTO modelos (modelo, marca_id) VALUES (?, ?)`, nome, marcaID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
