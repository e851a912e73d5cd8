package models

// Perfis de acesso reconhecidos pelo sistema.
const (
	RoleRegular       = "Regular"
	RoleAdministrador = "Administrador"
	RoleOficina       = "Oficina"
	RoleAbastecimento = "Abastecimento"
	RolePlantao       = "Plantao"
	RoleArmazem       = "Armazem"
	RoleBilhetes      = "Bilhetes"
)

type User struct {
	ID        int64  `json:"id"`
	Nome      string `json:"nome"`
	BI        string `json:"bi,omitempty"`
	Email     string `json:"email"`
	Contacto  string `json:"contacto,omitempty"`
	Tipo      string `json:"tipo"`
	Imagem    string `json:"imagem,omitempty"`
	Provincia string `json:"provincia,omitempty"`
	Municipio string `json:"municipio,omitempty"`
}
