package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
)

type PassengerRepository struct {
	DB *sql.DB
}

func (r PassengerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const passengerCols = `p.id, p.nome, p.bi, p.contacto, p.id_viagem, p.id_bilhete,
	p.ficar_pelo_caminho, p.desceu, p.bilhete_use, p.id_viagem_iniciada`

func scanPassenger(row interface{ Scan(...any) error }, p *models.Passageiro, extra ...any) error {
	var iniciada sql.NullInt64
	dest := []any{
		&p.ID, &p.Nome, &p.BI, &p.Contacto, &p.IDViagem, &p.IDBilhete,
		&p.FicarPeloCaminho, &p.Desceu, &p.BilheteUse, &iniciada,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	if iniciada.Valid {
		p.IDViagemIniciada = &iniciada.Int64
	}
	return nil
}

func (r PassengerRepository) Create(p models.Passageiro) (int64, error) {
	res, err := r.db().Exec(
		`INSERT INTO passageiros (nome, bi, contacto, id_viagem, id_bilhete, ficar_pelo_caminho, desceu, bilhete_use)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?)`,
		p.Nome, p.BI, p.Contacto, p.IDViagem, p.IDBilhete, p.FicarPeloCaminho, models.BilheteNaoUsado,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListByUse returns passengers filtered by ticket usage, with trip details.
func (r PassengerRepository) ListByUse(use string) ([]models.Passageiro, error) {
	rows, err := r.db().Query(
		`SELECT `+passengerCols+`, COALESCE(b.tipo_bilhete,''), COALESCE(DATE_FORMAT(b.data_partida, '%Y-%m-%d %H:%i'),''), COALESCE(v.destino,'')
		 FROM passageiros p
		 LEFT JOIN bilhetes b ON b.id = p.id_bilhete
		 LEFT JOIN viagens v ON v.id = p.id_viagem
		 WHERE p.bilhete_use = ?
		 ORDER BY p.id DESC`, use,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passageiro{}
	for rows.Next() {
		var p models.Passageiro
		if err := scanPassenger(rows, &p, &p.TipoBilhete, &p.DataPartida, &p.Destino); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PassengerRepository) ListAll() ([]models.Passageiro, error) {
	rows, err := r.db().Query(`SELECT ` + passengerCols + ` FROM passageiros p ORDER BY p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passageiro{}
	for rows.Next() {
		var p models.Passageiro
		if err := scanPassenger(rows, &p); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListAboard returns passengers currently travelling on trips in progress.
func (r PassengerRepository) ListAboard() ([]models.Passageiro, error) {
	rows, err := r.db().Query(
		`SELECT ` + passengerCols + `, COALESCE(v.destino,'')
		 FROM passageiros p
		 INNER JOIN viagens_iniciadas vi ON vi.id = p.id_viagem_iniciada AND vi.status = 'Em andamento'
		 LEFT JOIN viagens v ON v.id = vi.id_viagem
		 WHERE p.id_viagem_iniciada IS NOT NULL AND p.desceu != 1
		 ORDER BY p.id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passageiro{}
	for rows.Next() {
		var p models.Passageiro
		if err := scanPassenger(rows, &p, &p.Destino); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PassengerRepository) GetByID(id int64) (models.Passageiro, error) {
	var p models.Passageiro
	row := r.db().QueryRow(`SELECT `+passengerCols+` FROM passageiros p WHERE p.id = ?`, id)
	err := scanPassenger(row, &p)
	if errors.Is(err, sql.ErrNoRows) {
		return p, domain.NotFoundError{Resource: "passageiro"}
	}
	return p, err
}

func (r PassengerRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM passageiros WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return domain.NotFoundError{Resource: "passageiro"}
	}
	return err
}

// GetUnassigned finds a passenger that is not yet aboard any started trip.
func (r PassengerRepository) GetUnassigned(id int64) (models.Passageiro, error) {
	var p models.Passageiro
	row := r.db().QueryRow(
		`SELECT `+passengerCols+` FROM passageiros p WHERE p.id = ? AND p.id_viagem_iniciada IS NULL`, id,
	)
	err := scanPassenger(row, &p)
	if errors.Is(err, sql.ErrNoRows) {
		return p, domain.NotFoundError{Resource: "passageiro"}
	}
	return p, err
}

// AttachToTrip boards one passenger onto a started trip and burns the ticket.
func (r PassengerRepository) AttachToTrip(q Execer, id, tripID int64) error {
	_, err := q.Exec(
		`UPDATE passageiros SET id_viagem_iniciada = ?, desceu = 0, bilhete_use = ? WHERE id = ?`,
		tripID, models.BilheteUsado, id,
	)
	return err
}

// MarkAboard boards a batch of passengers and returns how many rows changed.
func (r PassengerRepository) MarkAboard(q Execer, ids []int64, tripID int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := append([]any{tripID, models.BilheteUsado}, int64Args(ids)...)
	res, err := q.Exec(
		`UPDATE passageiros SET id_viagem_iniciada = ?, desceu = 0, bilhete_use = ? WHERE id IN (`+placeholders(len(ids))+`)`,
		args...,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BelongsTo reports whether a passenger is aboard the given started trip.
func (r PassengerRepository) BelongsTo(id, tripID int64) (bool, error) {
	var n int
	err := r.db().QueryRow(
		`SELECT COUNT(*) FROM passageiros WHERE id = ? AND id_viagem_iniciada = ?`, id, tripID,
	).Scan(&n)
	return n > 0, err
}

func (r PassengerRepository) MarkAlighted(id int64) error {
	_, err := r.db().Exec(`UPDATE passageiros SET desceu = 1 WHERE id = ?`, id)
	return err
}

// AlightAll drops every passenger of a started trip when it ends.
func (r PassengerRepository) AlightAll(q Execer, tripID int64) error {
	_, err := q.Exec(`UPDATE passageiros SET desceu = 1 WHERE id_viagem_iniciada = ?`, tripID)
	return err
}
