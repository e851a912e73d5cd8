package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/mail"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/repositories"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/verification"
)

var (
	biPattern    = regexp.MustCompile(`^\d{9}[A-Z]{2}\d{3}$`)
	phonePattern = regexp.MustCompile(`^\+2449\d{8}$`)
)

const codeTTL = 15 * time.Minute

// normalizePhone coerces local numbers into the +244 international form.
func normalizePhone(raw string) string {
	p := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if strings.HasPrefix(p, "00244") {
		p = "+244" + p[5:]
	}
	if !strings.HasPrefix(p, "+") {
		p = "+244" + p
	}
	return p
}

type registerInput struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Contacto string `json:"contacto"`
	BI       string `json:"bi"`
	Password string `json:"password"`
	Tipo     string `json:"tipo"`
}

// Register validates the sign-up data, parks it in the verification store and
// e-mails a 6-digit confirmation code. The user row is only created after the
// code is confirmed.
func Register(c *gin.Context) {
	var in registerInput
	if !bindJSON(c, &in) {
		return
	}

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Nome == "" || in.Email == "" || in.Password == "" {
		respondError(c, http.StatusBadRequest, "Nome, e-mail e senha são obrigatórios.")
		return
	}
	if in.BI != "" && !biPattern.MatchString(in.BI) {
		respondError(c, http.StatusBadRequest, "Número de BI inválido.")
		return
	}
	if in.Contacto != "" {
		in.Contacto = normalizePhone(in.Contacto)
		if !phonePattern.MatchString(in.Contacto) {
			respondError(c, http.StatusBadRequest, "Número de telefone inválido.")
			return
		}
	}
	if in.Tipo == "" {
		in.Tipo = models.RoleRegular
	}

	userRepo := repositories.UserRepository{}
	exists, err := userRepo.EmailExists(in.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		respondError(c, http.StatusBadRequest, "E-mail já cadastrado.")
		return
	}

	code := 100000 + rand.Intn(900000)
	reg := verification.Registration{
		Nome:     in.Nome,
		Email:    in.Email,
		Contacto: in.Contacto,
		BI:       in.BI,
		Password: in.Password,
		Tipo:     in.Tipo,
		Code:     code,
		Expires:  time.Now().Add(codeTTL),
	}
	if err := verifyStore.Put(c.Request.Context(), in.Email, reg); err != nil {
		RespondDomainError(c, err)
		return
	}

	mail.SendAsync(mailSender, mail.Message{
		To:      in.Email,
		Subject: "Código de Verificação",
		Text:    fmt.Sprintf("Seu código de verificação é: %d", code),
		HTML:    fmt.Sprintf("<p>Seu código de verificação é: <b>%d</b></p>", code),
	})

	c.JSON(http.StatusOK, gin.H{
		"estado":   "sucesso",
		"mensagem": "Código de verificação enviado para o e-mail.",
	})
}

type verifyInput struct {
	Email  string `json:"email"`
	Codigo int    `json:"codigo"`
}

// VerifyEmail confirms the e-mailed code and creates the user.
func VerifyEmail(c *gin.Context) {
	var in verifyInput
	if !bindJSON(c, &in) {
		return
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	ctx := c.Request.Context()
	reg, ok, err := verifyStore.Get(ctx, in.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !ok {
		respondError(c, http.StatusBadRequest, "Nenhum código foi enviado para este e-mail.")
		return
	}
	if time.Now().After(reg.Expires) {
		_ = verifyStore.Delete(ctx, in.Email)
		respondError(c, http.StatusBadRequest, "Código expirado. Solicite um novo.")
		return
	}
	if in.Codigo != reg.Code {
		respondError(c, http.StatusBadRequest, "Código inválido.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	userRepo := repositories.UserRepository{}
	id, err := userRepo.Create(models.User{
		Nome:     reg.Nome,
		BI:       reg.BI,
		Email:    reg.Email,
		Contacto: reg.Contacto,
		Tipo:     reg.Tipo,
	}, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	_ = verifyStore.Delete(ctx, in.Email)

	c.JSON(http.StatusCreated, gin.H{
		"estado":   "sucesso",
		"mensagem": "Conta criada com sucesso.",
		"id":       id,
	})
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and issues a 10 hour JWT carrying id and role.
func Login(c *gin.Context) {
	var in loginInput
	if !bindJSON(c, &in) {
		return
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	userRepo := repositories.UserRepository{}
	user, hash, err := userRepo.GetByEmail(in.Email)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Usuário não encontrado")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)) != nil {
		respondError(c, http.StatusBadRequest, "Senha incorreta")
		return
	}

	claims := jwt.MapClaims{
		"id":   user.ID,
		"tipo": user.Tipo,
		"exp":  time.Now().Add(10 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(env.JWTSecret))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"estado": "sucesso",
		"token":  signed,
		"id":     user.ID,
		"tipo":   user.Tipo,
	})
}

// Logout limpa o cookie de sessão; o token em si expira sozinho.
func Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "mensagem": "Sessão terminada."})
}
