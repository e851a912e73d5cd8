package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
)

type MaterialRepository struct {
	DB *sql.DB
}

func (r MaterialRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r MaterialRepository) List() ([]models.Material, error) {
	rows, err := r.db().Query(`SELECT id, nome, quantidade, COALESCE(descricao,'') FROM materiais ORDER BY nome ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Material{}
	for rows.Next() {
		var m models.Material
		if err := rows.Scan(&m.ID, &m.Nome, &m.Quantidade, &m.Descricao); err != nil {
			return out, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r MaterialRepository) Create(m models.Material) (int64, error) {
	res, err := r.db().Exec(
		`INSERT INTO materiais (nome, quantidade, descricao) VALUES (?, ?, ?)`,
		m.Nome, m.Quantidade, m.Descricao,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r MaterialRepository) GetByID(id int64) (models.Material, error) {
	var m models.Material
	err := r.db().QueryRow(
		`SELECT id, nome, quantidade, COALESCE(descricao,'') FROM materiais WHERE id = ?`, id,
	).Scan(&m.ID, &m.Nome, &m.Quantidade, &m.Descricao)
	if errors.Is(err, sql.ErrNoRows) {
		return m, domain.NotFoundError{Resource: "material"}
	}
	return m, err
}

// GetByName resolves a material by exact name, inside or outside a transaction.
func (r MaterialRepository) GetByName(q Execer, nome string) (models.Material, error) {
	var m models.Material
	err := q.QueryRow(
		`SELECT id, nome, quantidade, COALESCE(descricao,'') FROM materiais WHERE nome = ?`, nome,
	).Scan(&m.ID, &m.Nome, &m.Quantidade, &m.Descricao)
	if errors.Is(err, sql.ErrNoRows) {
		return m, domain.NotFoundError{Resource: "material"}
	}
	return m, err
}

func (r MaterialRepository) Increment(id int64, qty int) error {
	res, err := r.db().Exec(`UPDATE materiais SET quantidade = quantidade + ? WHERE id = ?`, qty, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return domain.NotFoundError{Resource: "material"}
	}
	return err
}

// Decrement only succeeds when enough stock remains, so two concurrent
// allocations cannot spend the same units.
func (r MaterialRepository) Decrement(q Execer, id int64, qty int) error {
	res, err := q.Exec(
		`UPDATE materiais SET quantidade = quantidade - ? WHERE id = ? AND quantidade >= ?`,
		qty, id, qty,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ConflictError{Resource: "material", Msg: "estoque insuficiente"}
	}
	return nil
}
