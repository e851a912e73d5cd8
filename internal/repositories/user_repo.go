package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(
		`SELECT id, nome, COALESCE(bi,''), email, COALESCE(contacto,''), tipo,
			COALESCE(imagem,''), COALESCE(provincia,''), COALESCE(municipio,'')
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Nome, &u.BI, &u.Email, &u.Contacto, &u.Tipo, &u.Imagem, &u.Provincia, &u.Municipio)
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "usuário"}
	}
	return u, err
}

// GetByEmail also loads the password hash, for login only.
func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	var u models.User
	var hash string
	err := r.db().QueryRow(
		`SELECT id, nome, COALESCE(bi,''), email, COALESCE(contacto,''), tipo, password
		 FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Nome, &u.BI, &u.Email, &u.Contacto, &u.Tipo, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return u, "", domain.NotFoundError{Resource: "usuário"}
	}
	return u, hash, err
}

func (r UserRepository) EmailExists(email string) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n)
	return n > 0, err
}

func (r UserRepository) Create(u models.User, passwordHash string) (int64, error) {
	res, err := r.db().Exec(
		`INSERT INTO users (nome, bi, email, contacto, password, tipo) VALUES (?, ?, ?, ?, ?, ?)`,
		u.Nome, u.BI, u.Email, u.Contacto, passwordHash, u.Tipo,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.db().Query(
		`SELECT id, nome, COALESCE(bi,''), email, COALESCE(contacto,''), tipo,
			COALESCE(imagem,''), COALESCE(provincia,''), COALESCE(municipio,'')
		 FROM users ORDER BY id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Nome, &u.BI, &u.Email, &u.Contacto, &u.Tipo, &u.Imagem, &u.Provincia, &u.Municipio); err != nil {
			return out, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateProfile overwrites only the fields the caller filled in.
func (r UserRepository) UpdateProfile(id int64, u models.User) (models.User, error) {
	current, err := r.GetByID(id)
	if err != nil {
		return current, err
	}
	if u.Nome != "" {
		current.Nome = u.Nome
	}
	if u.Contacto != "" {
		current.Contacto = u.Contacto
	}
	if u.Provincia != "" {
		current.Provincia = u.Provincia
	}
	if u.Municipio != "" {
		current.Municipio = u.Municipio
	}
	if u.Imagem != "" {
		current.Imagem = u.Imagem
	}
	_, err = r.db().Exec(
		`UPDATE users SET nome = ?, contacto = ?, provincia = ?, municipio = ?, imagem = ? WHERE id = ?`,
		current.Nome, current.Contacto, current.Provincia, current.Municipio, current.Imagem, id,
	)
	return current, err
}

// EmailOf resolves just the address, for notifications.
func (r UserRepository) EmailOf(id int64) (string, error) {
	var email string
	err := r.db().QueryRow(`SELECT email FROM users WHERE id = ?`, id).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.NotFoundError{Resource: "usuário"}
	}
	return email, err
}
