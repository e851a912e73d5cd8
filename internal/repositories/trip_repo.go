package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TripRepository) Create(destino string, idViatura *int64) (int64, error) {
	res, err := r.db().Exec(`INSERT INTO viagens (destino, id_viatura) VALUES (?, ?)`, destino, idViatura)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TripRepository) List() ([]models.Viagem, error) {
	rows, err := r.db().Query(`SELECT id, destino, id_viatura FROM viagens ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Viagem{}
	for rows.Next() {
		var v models.Viagem
		var viatura sql.NullInt64
		if err := rows.Scan(&v.ID, &v.Destino, &viatura); err != nil {
			return out, err
		}
		if viatura.Valid {
			v.IDViatura = &viatura.Int64
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r TripRepository) GetByID(id int64) (models.Viagem, error) {
	var v models.Viagem
	var viatura sql.NullInt64
	err := r.db().QueryRow(`SELECT id, destino, id_viatura FROM viagens WHERE id = ?`, id).
		Scan(&v.ID, &v.Destino, &viatura)
	if errors.Is(err, sql.ErrNoRows) {
		return v, domain.NotFoundError{Resource: "viagem"}
	}
	if viatura.Valid {
		v.IDViatura = &viatura.Int64
	}
	return v, err
}

// Update keeps the previous value for any field left empty, like the
// original PUT contract.
func (r TripRepository) Update(id int64, destino string, idViatura *int64) (models.Viagem, error) {
	v, err := r.GetByID(id)
	if err != nil {
		return v, err
	}
	if destino != "" {
		v.Destino = destino
	}
	if idViatura != nil {
		v.IDViatura = idViatura
	}
	_, err = r.db().Exec(`UPDATE viagens SET destino = ?, id_viatura = ? WHERE id = ?`, v.Destino, v.IDViatura, id)
	return v, err
}

func (r TripRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM viagens WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return domain.NotFoundError{Resource: "viagem"}
	}
	return err
}

// CreateIniciada opens the execution instance of a trip.
func (r TripRepository) CreateIniciada(q Execer, idViagem int64, idViatura *int64, inicio time.Time) (int64, error) {
	res, err := q.Exec(
		`INSERT INTO viagens_iniciadas (id_viagem, id_viatura, data_inicio, status) VALUES (?, ?, ?, ?)`,
		idViagem, idViatura, inicio, models.ViagemEmAndamento,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetIniciadaEmAndamento only finds started trips still in progress.
func (r TripRepository) GetIniciadaEmAndamento(id int64) (models.ViagemIniciada, error) {
	var vi models.ViagemIniciada
	var viatura sql.NullInt64
	err := r.db().QueryRow(
		`SELECT id, id_viagem, id_viatura, data_inicio, status FROM viagens_iniciadas WHERE id = ? AND status = ?`,
		id, models.ViagemEmAndamento,
	).Scan(&vi.ID, &vi.IDViagem, &viatura, &vi.DataInicio, &vi.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return vi, domain.NotFoundError{Resource: "viagem iniciada"}
	}
	if viatura.Valid {
		vi.IDViatura = &viatura.Int64
	}
	return vi, err
}

func (r TripRepository) ListIniciadas() ([]models.ViagemIniciada, error) {
	rows, err := r.db().Query(
		`SELECT vi.id, vi.id_viagem, vi.id_viatura, vi.data_inicio, vi.status, COALESCE(v.destino,'')
		 FROM viagens_iniciadas vi
		 LEFT JOIN viagens v ON v.id = vi.id_viagem
		 ORDER BY vi.id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ViagemIniciada{}
	for rows.Next() {
		var vi models.ViagemIniciada
		var viatura sql.NullInt64
		if err := rows.Scan(&vi.ID, &vi.IDViagem, &viatura, &vi.DataInicio, &vi.Status, &vi.Destino); err != nil {
			return out, err
		}
		if viatura.Valid {
			vi.IDViatura = &viatura.Int64
		}
		out = append(out, vi)
	}
	return out, rows.Err()
}

// Finish flips a started trip to Terminada. Reports whether a row changed.
func (r TripRepository) Finish(q Execer, id int64) (bool, error) {
	res, err := q.Exec(`UPDATE viagens_iniciadas SET status = ? WHERE id = ?`, models.ViagemTerminada, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
