package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
)

type RequisitionRepository struct {
	DB *sql.DB
}

func (r RequisitionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Create stores the requisition and its pending item lines atomically.
func (r RequisitionRepository) Create(req models.Requisition) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO requisicoes (requerente, departamento_id, detalhes, status) VALUES (?, ?, ?, ?)`,
		req.Requerente, req.DepartamentoID, req.Detalhes, models.ReqStatusPendente,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, item := range req.Materiais {
		if _, err := tx.Exec(
			`INSERT INTO requisicao_itens (requisicao_id, nome, quantidade, estado) VALUES (?, ?, ?, ?)`,
			id, item.Nome, item.Quantidade, models.ItemPendente,
		); err != nil {
			return 0, err
		}
	}

	return id, tx.Commit()
}

// GetByID loads a requisition with its item lines split by estado.
func (r RequisitionRepository) GetByID(q Execer, id int64) (models.Requisition, error) {
	var req models.Requisition
	err := q.QueryRow(
		`SELECT r.id, r.requerente, r.departamento_id, COALESCE(d.nome,''), COALESCE(r.detalhes,''), r.status
		 FROM requisicoes r
		 LEFT JOIN departamentos d ON d.id = r.departamento_id
		 WHERE r.id = ?`, id,
	).Scan(&req.ID, &req.Requerente, &req.DepartamentoID, &req.Departamento, &req.Detalhes, &req.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return req, domain.NotFoundError{Resource: "requisição"}
	}
	if err != nil {
		return req, err
	}

	rows, err := q.Query(
		`SELECT nome, quantidade, estado FROM requisicao_itens WHERE requisicao_id = ? ORDER BY id ASC`, id,
	)
	if err != nil {
		return req, err
	}
	defer rows.Close()

	req.Materiais = []models.RequisitionItem{}
	req.Atendidos = []models.RequisitionItem{}
	for rows.Next() {
		var item models.RequisitionItem
		var estado string
		if err := rows.Scan(&item.Nome, &item.Quantidade, &estado); err != nil {
			return req, err
		}
		if estado == models.ItemAtendido {
			req.Atendidos = append(req.Atendidos, item)
		} else {
			req.Materiais = append(req.Materiais, item)
		}
	}
	return req, rows.Err()
}

// List returns every requisition with department name and item lines.
func (r RequisitionRepository) List() ([]models.Requisition, error) {
	db := r.db()
	rows, err := db.Query(
		`SELECT r.id, r.requerente, r.departamento_id, COALESCE(d.nome,''), COALESCE(r.detalhes,''), r.status
		 FROM requisicoes r
		 LEFT JOIN departamentos d ON d.id = r.departamento_id
		 ORDER BY r.id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Requisition{}
	index := map[int64]int{}
	for rows.Next() {
		var req models.Requisition
		if err := rows.Scan(&req.ID, &req.Requerente, &req.DepartamentoID, &req.Departamento, &req.Detalhes, &req.Status); err != nil {
			return out, err
		}
		req.Materiais = []models.RequisitionItem{}
		req.Atendidos = []models.RequisitionItem{}
		index[req.ID] = len(out)
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}

	itemRows, err := db.Query(`SELECT requisicao_id, nome, quantidade, estado FROM requisicao_itens ORDER BY id ASC`)
	if err != nil {
		return out, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var reqID int64
		var item models.RequisitionItem
		var estado string
		if err := itemRows.Scan(&reqID, &item.Nome, &item.Quantidade, &estado); err != nil {
			return out, err
		}
		i, ok := index[reqID]
		if !ok {
			continue
		}
		if estado == models.ItemAtendido {
			out[i].Atendidos = append(out[i].Atendidos, item)
		} else {
			out[i].Materiais = append(out[i].Materiais, item)
		}
	}
	return out, itemRows.Err()
}

// SaveAllocation replaces the pending lines, appends the newly fulfilled ones
// and moves the requisition to its new status.
func (r RequisitionRepository) SaveAllocation(q Execer, id int64, atendidos, pendentes []models.RequisitionItem, status string) error {
	if _, err := q.Exec(
		`DELETE FROM requisicao_itens WHERE requisicao_id = ? AND estado = ?`,
		id, models.ItemPendente,
	); err != nil {
		return err
	}

	for _, item := range atendidos {
		if _, err := q.Exec(
			`INSERT INTO requisicao_itens (requisicao_id, nome, quantidade, estado) VALUES (?, ?, ?, ?)`,
			id, item.Nome, item.Quantidade, models.ItemAtendido,
		); err != nil {
			return err
		}
	}
	for _, item := range pendentes {
		if _, err := q.Exec(
			`INSERT INTO requisicao_itens (requisicao_id, nome, quantidade, estado) VALUES (?, ?, ?, ?)`,
			id, item.Nome, item.Quantidade, models.ItemPendente,
		); err != nil {
			return err
		}
	}

	_, err := q.Exec(`UPDATE requisicoes SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r RequisitionRepository) UpdateStatus(id int64, status string) error {
	res, err := r.db().Exec(`UPDATE requisicoes SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return domain.NotFoundError{Resource: "requisição"}
	}
	return err
}

func (r RequisitionRepository) ListDepartamentos() ([]models.Departamento, error) {
	rows, err := r.db().Query(`SELECT id, nome FROM departamentos ORDER BY nome ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Departamento{}
	for rows.Next() {
		var d models.Departamento
		if err := rows.Scan(&d.ID, &d.Nome); err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r RequisitionRepository) GetDepartamentoByName(nome string) (models.Departamento, error) {
	var d models.Departamento
	err := r.db().QueryRow(`SELECT id, nome FROM departamentos WHERE nome = ?`, nome).Scan(&d.ID, &d.Nome)
	if errors.Is(err, sql.ErrNoRows) {
		return d, domain.NotFoundError{Resource: "departamento"}
	}
	return d, err
}
