package model

// Message is a public contact-form submission. Immutable once created;
// only an admin can delete it.
type Message struct {
	Base
	Nombre   string `json:"nombre" db:"nombre"`
	Apellido string `json:"apellido" db:"apellido"`
	Correo   string `json:"correo" db:"correo"`
	Telefono string `json:"telefono" db:"telefono"`
	Mensaje  string `json:"mensaje" db:"mensaje"`
}

type CreateMessageRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Apellido string `json:"apellido" binding:"required"`
	Correo   string `json:"correo" binding:"required,email"`
	Telefono string `json:"telefono" binding:"required,len=9,numeric"`
	Mensaje  string `json:"mensaje" binding:"required,min=10"`
}
