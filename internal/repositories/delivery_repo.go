package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
)

type DeliveryRepository struct {
	DB *sql.DB
}

func (r DeliveryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const deliveryCols = `e.id, e.nome_destinatario, e.bi, e.numero_destinatario, e.numero_remetente,
	e.tipo_carga, e.agencia_entrega_provincia, e.agencia_entrega_municipio,
	e.agencia_busca_provincia, e.agencia_busca_municipio, COALESCE(e.descricao,''),
	COALESCE(e.peso,0), COALESCE(e.imagem,''), e.id_user, COALESCE(e.valor,0),
	e.id_viagem_iniciada, e.status`

func scanDelivery(row interface{ Scan(...any) error }, e *models.Entrega) error {
	var iniciada sql.NullInt64
	err := row.Scan(
		&e.ID, &e.NomeDestinatario, &e.BI, &e.NumeroDestinatario, &e.NumeroRemetente,
		&e.TipoCarga, &e.AgenciaEntregaProvincia, &e.AgenciaEntregaMunicipio,
		&e.AgenciaBuscaProvincia, &e.AgenciaBuscaMunicipio, &e.Descricao,
		&e.Peso, &e.Imagem, &e.IDUser, &e.Valor, &iniciada, &e.Status,
	)
	if err != nil {
		return err
	}
	if iniciada.Valid {
		e.IDViagemIniciada = &iniciada.Int64
	}
	return nil
}

func (r DeliveryRepository) Create(e models.Entrega) (int64, error) {
	res, err := r.db().Exec(
		`INSERT INTO entregas (nome_destinatario, bi, numero_destinatario, numero_remetente,
			tipo_carga, agencia_entrega_provincia, agencia_entrega_municipio,
			agencia_busca_provincia, agencia_busca_municipio, descricao, peso, imagem, id_user, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.NomeDestinatario, e.BI, e.NumeroDestinatario, e.NumeroRemetente,
		e.TipoCarga, e.AgenciaEntregaProvincia, e.AgenciaEntregaMunicipio,
		e.AgenciaBuscaProvincia, e.AgenciaBuscaMunicipio, e.Descricao, e.Peso, e.Imagem, e.IDUser,
		models.EntregaPendente,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r DeliveryRepository) ListByStatuses(statuses []string) ([]models.Entrega, error) {
	args := make([]any, len(statuses))
	for i, s := range statuses {
		args[i] = s
	}
	rows, err := r.db().Query(
		`SELECT `+deliveryCols+` FROM entregas e WHERE e.status IN (`+placeholders(len(statuses))+`) ORDER BY e.id DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeliveries(rows)
}

func (r DeliveryRepository) ListByUser(userID int64) ([]models.Entrega, error) {
	rows, err := r.db().Query(
		`SELECT `+deliveryCols+` FROM entregas e WHERE e.id_user = ? ORDER BY e.id DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeliveries(rows)
}

func collectDeliveries(rows *sql.Rows) ([]models.Entrega, error) {
	out := []models.Entrega{}
	for rows.Next() {
		var e models.Entrega
		if err := scanDelivery(rows, &e); err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r DeliveryRepository) GetByID(id int64) (models.Entrega, error) {
	var e models.Entrega
	row := r.db().QueryRow(`SELECT `+deliveryCols+` FROM entregas e WHERE e.id = ?`, id)
	err := scanDelivery(row, &e)
	if errors.Is(err, sql.ErrNoRows) {
		return e, domain.NotFoundError{Resource: "entrega"}
	}
	return e, err
}

// SetAccepted prices the delivery and moves it to Aceite.
func (r DeliveryRepository) SetAccepted(id, valor int64) error {
	res, err := r.db().Exec(
		`UPDATE entregas SET status = ?, valor = ? WHERE id = ?`, models.EntregaAceite, valor, id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return domain.NotFoundError{Resource: "entrega"}
	}
	return err
}

func (r DeliveryRepository) SetStatus(id int64, status string) error {
	res, err := r.db().Exec(`UPDATE entregas SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return domain.NotFoundError{Resource: "entrega"}
	}
	return err
}

// GetUnassigned finds a delivery that is not yet aboard any started trip.
func (r DeliveryRepository) GetUnassigned(id int64) (models.Entrega, error) {
	var e models.Entrega
	row := r.db().QueryRow(
		`SELECT `+deliveryCols+` FROM entregas e WHERE e.id = ? AND e.id_viagem_iniciada IS NULL`, id,
	)
	err := scanDelivery(row, &e)
	if errors.Is(err, sql.ErrNoRows) {
		return e, domain.NotFoundError{Resource: "entrega"}
	}
	return e, err
}

// AttachToTrip loads one delivery onto a started trip.
func (r DeliveryRepository) AttachToTrip(q Execer, id, tripID int64) error {
	_, err := q.Exec(
		`UPDATE entregas SET id_viagem_iniciada = ?, status = ? WHERE id = ?`,
		tripID, models.EntregaEmViagem, id,
	)
	return err
}

// MarkInTransit loads a batch of deliveries and returns how many rows changed.
func (r DeliveryRepository) MarkInTransit(q Execer, ids []int64, tripID int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := append([]any{tripID, models.EntregaEmViagem}, int64Args(ids)...)
	res, err := q.Exec(
		`UPDATE entregas SET id_viagem_iniciada = ?, status = ? WHERE id IN (`+placeholders(len(ids))+`)`,
		args...,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BelongsTo reports whether a delivery is aboard the given started trip.
func (r DeliveryRepository) BelongsTo(id, tripID int64) (bool, error) {
	var n int
	err := r.db().QueryRow(
		`SELECT COUNT(*) FROM entregas WHERE id = ? AND id_viagem_iniciada = ?`, id, tripID,
	).Scan(&n)
	return n > 0, err
}

func (r DeliveryRepository) MarkDelivered(id int64) error {
	return r.SetStatus(id, models.EntregaEntregue)
}

// OwnerEmails returns the e-mail of each owner with cargo on a started trip.
func (r DeliveryRepository) OwnerEmails(q Execer, tripID int64) ([]string, error) {
	rows, err := q.Query(
		`SELECT DISTINCT u.email FROM entregas e
		 INNER JOIN users u ON u.id = e.id_user
		 WHERE e.id_viagem_iniciada = ?`, tripID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return out, err
		}
		out = append(out, email)
	}
	return out, rows.Err()
}

// DeliverAll closes every delivery of a started trip when it ends.
func (r DeliveryRepository) DeliverAll(q Execer, tripID int64) error {
	_, err := q.Exec(
		`UPDATE entregas SET status = ? WHERE id_viagem_iniciada = ?`,
		models.EntregaEntregue, tripID,
	)
	return err
}
