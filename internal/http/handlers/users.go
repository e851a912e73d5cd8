package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/http/middleware"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/repositories"
)

func userImageURL(u models.User) models.User {
	if u.Imagem != "" {
		u.Imagem = env.PublicURL + "/uploads/" + u.Imagem
	}
	return u
}

// GET /admin/me?id=
// Sem id na query devolve o perfil do utilizador autenticado.
func Me(c *gin.Context) {
	id := middleware.GetUserID(c)
	if q := c.Query("id"); q != "" {
		v, err := strconv.ParseInt(q, 10, 64)
		if err != nil || v <= 0 {
			respondError(c, http.StatusBadRequest, "id inválido")
			return
		}
		id = v
	}

	userRepo := repositories.UserRepository{}
	user, err := userRepo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "user": userImageURL(user)})
}

// GET /admin/users
func ListUsers(c *gin.Context) {
	userRepo := repositories.UserRepository{}
	users, err := userRepo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	for i := range users {
		users[i] = userImageURL(users[i])
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "users": users})
}

type userByIDInput struct {
	ID int64 `json:"id"`
}

// POST /admin/user
func GetUserByID(c *gin.Context) {
	var in userByIDInput
	if !bindJSON(c, &in) {
		return
	}
	if in.ID <= 0 {
		respondError(c, http.StatusBadRequest, "id inválido")
		return
	}

	userRepo := repositories.UserRepository{}
	user, err := userRepo.GetByID(in.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "user": user})
}

// PUT /admin/user (multipart; imagem opcional)
func UpdateProfile(c *gin.Context) {
	var in models.User
	in.Nome = strings.TrimSpace(c.PostForm("nome"))
	in.Contacto = strings.TrimSpace(c.PostForm("contacto"))
	in.Provincia = strings.TrimSpace(c.PostForm("provincia"))
	in.Municipio = strings.TrimSpace(c.PostForm("municipio"))

	if name, err := uploads.SaveImage(c, "imagem"); err == nil && name != "" {
		in.Imagem = name
	}

	userRepo := repositories.UserRepository{}
	user, err := userRepo.UpdateProfile(middleware.GetUserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "user": userImageURL(user)})
}

// POST /admin/register/users (multipart)
// Conta criada por um administrador, sem passar pela verificação de e-mail.
func AdminCreateUser(c *gin.Context) {
	u := models.User{
		Nome:     strings.TrimSpace(c.PostForm("nome")),
		BI:       strings.TrimSpace(c.PostForm("bi")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Contacto: strings.TrimSpace(c.PostForm("contacto")),
		Tipo:     strings.TrimSpace(c.PostForm("tipo")),
	}
	senha := c.PostForm("senha")
	if u.Nome == "" || u.Email == "" || senha == "" {
		respondError(c, http.StatusBadRequest, "Nome, e-mail e senha são obrigatórios.")
		return
	}
	if u.Tipo == "" {
		u.Tipo = "Regular"
	}

	userRepo := repositories.UserRepository{}
	exists, err := userRepo.EmailExists(u.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		respondError(c, http.StatusBadRequest, "E-mail já cadastrado.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao processar a senha")
		return
	}

	id, err := userRepo.Create(u, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id})
}
