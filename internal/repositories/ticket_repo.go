package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
)

type TicketRepository struct {
	DB *sql.DB
}

func (r TicketRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const ticketCols = `b.id, b.id_viagem, b.tipo_bilhete, b.preco, b.vendidos, b.max_pessoas,
	b.data_partida, b.valido_ate, COALESCE(b.horario,''), COALESCE(b.contato_agencia,''), b.status`

func scanTicket(row interface{ Scan(...any) error }, b *models.Bilhete, extra ...any) error {
	dest := []any{
		&b.ID, &b.IDViagem, &b.TipoBilhete, &b.Preco, &b.Vendidos, &b.MaxPessoas,
		&b.DataPartida, &b.ValidoAte, &b.Horario, &b.ContatoAgencia, &b.Status,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r TicketRepository) Create(b models.Bilhete) (int64, error) {
	res, err := r.db().Exec(
		`INSERT INTO bilhetes (id_viagem, tipo_bilhete, preco, vendidos, max_pessoas, data_partida, valido_ate, horario, contato_agencia, status)
		 VALUES (?, ?, ?, 0, ?, ?, ?, ?, ?, ?)`,
		b.IDViagem, b.TipoBilhete, b.Preco, b.MaxPessoas, b.DataPartida, b.ValidoAte,
		b.Horario, b.ContatoAgencia, models.BilheteDisponivel,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TicketRepository) List() ([]models.Bilhete, error) {
	rows, err := r.db().Query(
		`SELECT ` + ticketCols + `, COALESCE(v.destino,'')
		 FROM bilhetes b
		 LEFT JOIN viagens v ON v.id = b.id_viagem
		 ORDER BY b.id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bilhete{}
	for rows.Next() {
		var b models.Bilhete
		if err := scanTicket(rows, &b, &b.Destino); err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r TicketRepository) GetByID(id int64) (models.Bilhete, error) {
	var b models.Bilhete
	row := r.db().QueryRow(
		`SELECT `+ticketCols+`, COALESCE(v.destino,'')
		 FROM bilhetes b
		 LEFT JOIN viagens v ON v.id = b.id_viagem
		 WHERE b.id = ?`, id,
	)
	err := scanTicket(row, &b, &b.Destino)
	if errors.Is(err, sql.ErrNoRows) {
		return b, domain.NotFoundError{Resource: "bilhete"}
	}
	return b, err
}

// GetAvailableForTrip returns the sellable ticket of a trip, if any.
func (r TicketRepository) GetAvailableForTrip(idViagem int64) (models.Bilhete, error) {
	var b models.Bilhete
	row := r.db().QueryRow(
		`SELECT `+ticketCols+` FROM bilhetes b WHERE b.id_viagem = ? AND b.status = ?`,
		idViagem, models.BilheteDisponivel,
	)
	err := scanTicket(row, &b)
	if errors.Is(err, sql.ErrNoRows) {
		return b, domain.NotFoundError{Resource: "bilhete"}
	}
	return b, err
}

// IncrementVendidos only sells while capacity remains.
func (r TicketRepository) IncrementVendidos(id int64) error {
	res, err := r.db().Exec(
		`UPDATE bilhetes SET vendidos = vendidos + 1 WHERE id = ? AND vendidos < max_pessoas`, id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ConflictError{Resource: "bilhete", Msg: "capacidade esgotada"}
	}
	return nil
}

func (r TicketRepository) DecrementVendidos(id int64) error {
	_, err := r.db().Exec(
		`UPDATE bilhetes SET vendidos = vendidos - 1 WHERE id = ? AND vendidos > 0`, id,
	)
	return err
}

func (r TicketRepository) CreateReserva(res models.Reserva) (int64, error) {
	out, err := r.db().Exec(
		`INSERT INTO reservas (nome, bi, contacto, id_bilhete, id_user, codigo_reserva, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.Nome, res.BI, res.Contacto, res.IDBilhete, res.IDUser, res.CodigoReserva, models.ReservaReservado,
	)
	if err != nil {
		return 0, err
	}
	return out.LastInsertId()
}

func (r TicketRepository) GetReservaByCodigo(codigo string) (models.Reserva, error) {
	var res models.Reserva
	err := r.db().QueryRow(
		`SELECT id, nome, bi, contacto, id_bilhete, id_user, codigo_reserva, status
		 FROM reservas WHERE codigo_reserva = ?`, codigo,
	).Scan(&res.ID, &res.Nome, &res.BI, &res.Contacto, &res.IDBilhete, &res.IDUser, &res.CodigoReserva, &res.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return res, domain.NotFoundError{Resource: "reserva"}
	}
	return res, err
}

func (r TicketRepository) ListReservasByStatus(status string) ([]models.Reserva, error) {
	rows, err := r.db().Query(
		`SELECT re.id, re.nome, re.bi, re.contacto, re.id_bilhete, re.id_user, re.codigo_reserva, re.status,
			COALESCE(b.tipo_bilhete,''), COALESCE(v.destino,'')
		 FROM reservas re
		 LEFT JOIN bilhetes b ON b.id = re.id_bilhete
		 LEFT JOIN viagens v ON v.id = b.id_viagem
		 WHERE re.status = ?
		 ORDER BY re.id DESC`, status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservas(rows)
}

func (r TicketRepository) ListReservasByUser(userID int64) ([]models.Reserva, error) {
	rows, err := r.db().Query(
		`SELECT re.id, re.nome, re.bi, re.contacto, re.id_bilhete, re.id_user, re.codigo_reserva, re.status,
			COALESCE(b.tipo_bilhete,''), COALESCE(v.destino,'')
		 FROM reservas re
		 LEFT JOIN bilhetes b ON b.id = re.id_bilhete
		 LEFT JOIN viagens v ON v.id = b.id_viagem
		 WHERE re.id_user = ?
		 ORDER BY re.id DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservas(rows)
}

func collectReservas(rows *sql.Rows) ([]models.Reserva, error) {
	out := []models.Reserva{}
	for rows.Next() {
		var res models.Reserva
		if err := rows.Scan(
			&res.ID, &res.Nome, &res.BI, &res.Contacto, &res.IDBilhete, &res.IDUser,
			&res.CodigoReserva, &res.Status, &res.TipoBilhete, &res.Destino,
		); err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r TicketRepository) DeleteReserva(id int64) error {
	res, err := r.db().Exec(`DELETE FROM reservas WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return domain.NotFoundError{Resource: "reserva"}
	}
	return err
}

func (r TicketRepository) MarkReservaComprada(id int64) error {
	_, err := r.db().Exec(`UPDATE reservas SET status = ? WHERE id = ?`, models.ReservaComprado, id)
	return err
}
