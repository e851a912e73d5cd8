package services

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/mail"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/repositories"
)

type TripService struct {
	DB     *sql.DB
	Mailer mail.Sender

	Trips      repositories.TripRepository
	Passengers repositories.PassengerRepository
	Deliveries repositories.DeliveryRepository
	Users      repositories.UserRepository
}

func (s TripService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Start opens a started-trip record and boards the given passengers and
// deliveries in one transaction. If none of the ids match anything the whole
// operation rolls back, so an empty start never leaves an orphan record.
func (s TripService) Start(idViagem int64, passageiros, entregas []int64) (int64, error) {
	if len(passageiros) == 0 && len(entregas) == 0 {
		return 0, domain.ValidationError{Msg: "Pelo menos um passageiro ou uma carga deve estar presente."}
	}

	viagem, err := s.Trips.GetByID(idViagem)
	if err != nil {
		return 0, err
	}

	tx, err := s.db().Begin()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	tripID, err := s.Trips.CreateIniciada(tx, viagem.ID, viagem.IDViatura, time.Now())
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}

	boarded, err := s.Passengers.MarkAboard(tx, passageiros, tripID)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	loaded, err := s.Deliveries.MarkInTransit(tx, entregas, tripID)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	if boarded == 0 && loaded == 0 {
		return 0, domain.NotFoundError{Resource: "passageiro ou entrega", Err: fmt.Errorf("nenhuma linha atualizada")}
	}

	if err := tx.Commit(); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return tripID, nil
}

// BoardPassenger adds one late passenger to a trip already in progress.
func (s TripService) BoardPassenger(passageiroID, viagemIniciadaID int64) error {
	if _, err := s.Passengers.GetUnassigned(passageiroID); err != nil {
		if domain.IsNotFound(err) {
			return domain.NotFoundError{Resource: "passageiro", Err: fmt.Errorf("já associado a uma viagem")}
		}
		return err
	}
	if _, err := s.Trips.GetIniciadaEmAndamento(viagemIniciadaID); err != nil {
		return err
	}
	return s.Passengers.AttachToTrip(s.db(), passageiroID, viagemIniciadaID)
}

// BoardCargo adds one delivery to a trip in progress and notifies its owner.
func (s TripService) BoardCargo(entregaID, viagemIniciadaID int64) error {
	entrega, err := s.Deliveries.GetUnassigned(entregaID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.NotFoundError{Resource: "entrega", Err: fmt.Errorf("já associada a uma viagem")}
		}
		return err
	}
	if _, err := s.Trips.GetIniciadaEmAndamento(viagemIniciadaID); err != nil {
		return err
	}
	if err := s.Deliveries.AttachToTrip(s.db(), entregaID, viagemIniciadaID); err != nil {
		return err
	}

	if email, err := s.Users.EmailOf(entrega.IDUser); err == nil {
		mail.SendAsync(s.Mailer, mail.Message{
			To:      email,
			Subject: "Atualização da sua entrega",
			Text:    "A sua carga encontra-se em viagem até o seu destino.",
			HTML:    "<p>A sua carga encontra-se em viagem até o seu destino.</p>",
		})
	}
	return nil
}

// AlightPassengers marks the given passengers of a trip as having stepped off.
// Ids that do not belong to the trip are skipped.
func (s TripService) AlightPassengers(viagemIniciadaID int64, passageiros []int64) (int, error) {
	if _, err := s.Trips.GetIniciadaEmAndamento(viagemIniciadaID); err != nil {
		return 0, err
	}

	count := 0
	for _, id := range passageiros {
		ok, err := s.Passengers.BelongsTo(id, viagemIniciadaID)
		if err != nil {
			return count, err
		}
		if !ok {
			continue
		}
		if err := s.Passengers.MarkAlighted(id); err != nil {
			return count, err
		}
		count++
	}
	if count == 0 {
		return 0, domain.NotFoundError{Resource: "passageiro"}
	}
	return count, nil
}

// UnloadCargo marks deliveries of a trip as delivered and e-mails each owner.
func (s TripService) UnloadCargo(viagemIniciadaID int64, entregas []int64) (int, error) {
	if _, err := s.Trips.GetIniciadaEmAndamento(viagemIniciadaID); err != nil {
		return 0, err
	}

	count := 0
	for _, id := range entregas {
		ok, err := s.Deliveries.BelongsTo(id, viagemIniciadaID)
		if err != nil {
			return count, err
		}
		if !ok {
			continue
		}
		entrega, err := s.Deliveries.GetByID(id)
		if err != nil {
			return count, err
		}
		if err := s.Deliveries.MarkDelivered(id); err != nil {
			return count, err
		}
		count++

		if email, err := s.Users.EmailOf(entrega.IDUser); err == nil {
			mail.SendAsync(s.Mailer, mail.Message{
				To:      email,
				Subject: "Atualização da sua entrega",
				Text:    "A sua carga encontra-se no seu destino.",
				HTML:    "<p>A sua carga encontra-se no seu destino.</p>",
			})
		}
	}
	if count == 0 {
		return 0, domain.NotFoundError{Resource: "entrega"}
	}
	return count, nil
}

// Finish ends a started trip: every passenger alights, every delivery is
// marked delivered and each cargo owner is notified.
func (s TripService) Finish(viagemIniciadaID int64) error {
	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	changed, err := s.Trips.Finish(tx, viagemIniciadaID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !changed {
		return domain.NotFoundError{Resource: "viagem iniciada"}
	}

	if err := s.Passengers.AlightAll(tx, viagemIniciadaID); err != nil {
		return domain.InternalError{Err: err}
	}

	owners, err := s.Deliveries.OwnerEmails(tx, viagemIniciadaID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.Deliveries.DeliverAll(tx, viagemIniciadaID); err != nil {
		return domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}

	for _, email := range owners {
		mail.SendAsync(s.Mailer, mail.Message{
			To:      email,
			Subject: "Atualização da sua entrega",
			Text:    "A sua carga encontra-se no seu destino.",
			HTML:    "<p>A sua carga encontra-se no seu destino.</p>",
		})
	}
	return nil
}
