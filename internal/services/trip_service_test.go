package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/repositories"
)

func iniciadaRows(id, idViagem int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "id_viagem", "id_viatura", "data_inicio", "status"}).
		AddRow(id, idViagem, nil, time.Now(), "Em andamento")
}

func newTripService(t *testing.T) (TripService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := TripService{
		DB:         db,
		Trips:      repositories.TripRepository{DB: db},
		Passengers: repositories.PassengerRepository{DB: db},
		Deliveries: repositories.DeliveryRepository{DB: db},
		Users:      repositories.UserRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestStartRejectsEmptyManifest(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	_, err := svc.Start(1, nil, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Pelo menos um passageiro ou uma carga deve estar presente." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStartBoardsPassengers(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectQuery("FROM viagens WHERE").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "destino", "id_viatura"}).
			AddRow(9, "Benguela", nil))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO viagens_iniciadas").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("UPDATE passageiros SET id_viagem_iniciada").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tripID, err := svc.Start(9, []int64{1, 2}, nil)
	if err != nil {
		t.Fatalf("start error: %v", err)
	}
	if tripID != 42 {
		t.Fatalf("unexpected started trip id: %d", tripID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStartRollsBackWhenNothingBoards(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectQuery("FROM viagens WHERE").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "destino", "id_viatura"}).
			AddRow(9, "Benguela", nil))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO viagens_iniciadas").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("UPDATE passageiros SET id_viagem_iniciada").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Start(9, []int64{777}, nil)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAlightSkipsPassengersOutsideTrip(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectQuery("FROM viagens_iniciadas WHERE id =").
		WithArgs(int64(42), "Em andamento").
		WillReturnRows(iniciadaRows(42, 9))
	mock.ExpectQuery("SELECT COUNT(.+) FROM passageiros WHERE id =").
		WithArgs(int64(1), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectExec("UPDATE passageiros SET desceu = 1 WHERE id =").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COUNT(.+) FROM passageiros WHERE id =").
		WithArgs(int64(2), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	count, err := svc.AlightPassengers(42, []int64{1, 2})
	if err != nil {
		t.Fatalf("alight error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 passenger alighted, got %d", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAlightAllPassengersOutsideTrip(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectQuery("FROM viagens_iniciadas WHERE id =").
		WithArgs(int64(42), "Em andamento").
		WillReturnRows(iniciadaRows(42, 9))
	mock.ExpectQuery("SELECT COUNT(.+) FROM passageiros WHERE id =").
		WithArgs(int64(7), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT(.+) FROM passageiros WHERE id =").
		WithArgs(int64(8), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	_, err := svc.AlightPassengers(42, []int64{7, 8})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUnloadDeliversCargoAndNotifiesOwner(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectQuery("FROM viagens_iniciadas WHERE id =").
		WithArgs(int64(42), "Em andamento").
		WillReturnRows(iniciadaRows(42, 9))
	mock.ExpectQuery("SELECT COUNT(.+) FROM entregas WHERE id =").
		WithArgs(int64(5), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery("FROM entregas e WHERE e.id =").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "nome_destinatario", "bi", "numero_destinatario", "numero_remetente",
			"tipo_carga", "agencia_entrega_provincia", "agencia_entrega_municipio",
			"agencia_busca_provincia", "agencia_busca_municipio", "descricao",
			"peso", "imagem", "id_user", "valor", "id_viagem_iniciada", "status",
		}).AddRow(
			5, "Maria", "001234567LA890", "923000000", "924000000",
			"Caixa", "Huíla", "Lubango", "Luanda", "Viana", "",
			12, "", 30, 5000, 42, "Em Viagem",
		))
	mock.ExpectExec("UPDATE entregas SET status").
		WithArgs("Entregue", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT email FROM users WHERE id =").
		WithArgs(int64(30)).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("dono@example.com"))

	count, err := svc.UnloadCargo(42, []int64{5})
	if err != nil {
		t.Fatalf("unload error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 delivery unloaded, got %d", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUnloadAllCargoOutsideTrip(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectQuery("FROM viagens_iniciadas WHERE id =").
		WithArgs(int64(42), "Em andamento").
		WillReturnRows(iniciadaRows(42, 9))
	mock.ExpectQuery("SELECT COUNT(.+) FROM entregas WHERE id =").
		WithArgs(int64(99), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	_, err := svc.UnloadCargo(42, []int64{99})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFinishClosesTripAndCargo(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE viagens_iniciadas SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE passageiros SET desceu = 1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery("SELECT DISTINCT u.email").WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("dono@example.com"))
	mock.ExpectExec("UPDATE entregas SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.Finish(42); err != nil {
		t.Fatalf("finish error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFinishUnknownTrip(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE viagens_iniciadas SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := svc.Finish(999)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
