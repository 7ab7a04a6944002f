package model

// Role identifies what a user is allowed to do. Values are stored and
// compared verbatim, so they stay in the wire vocabulary.
type Role string

const (
	RolePaciente      Role = "Paciente"
	RoleDoctor        Role = "Doctor"
	RoleAdministrador Role = "Administrador"
)

// Gender values accepted at registration
const (
	GenderMasculino = "Masculino"
	GenderFemenino  = "Femenino"
)

// User represents any account in the system. Rol determines which of the
// optional fields are meaningful: DepartamentoMedico and the imagen fields
// only apply to doctors.
type User struct {
	Base
	Nombre          string  `json:"nombre" db:"nombre"`
	Apellido        string  `json:"apellido" db:"apellido"`
	Correo          string  `json:"correo" db:"correo"`
	Telefono        string  `json:"telefono" db:"telefono"`
	Identificacion  string  `json:"identificacion" db:"identificacion"`
	FechaNacimiento string  `json:"fechaNacimiento" db:"fecha_nacimiento"`
	Genero          string  `json:"genero" db:"genero"`
	Password        string  `json:"contrasena,omitempty" db:"-"`
	PasswordHash    string  `json:"-" db:"password_hash"`
	Rol             Role    `json:"rol" db:"rol"`
	Departamento    *string `json:"departamentoMedico,omitempty" db:"departamento_medico"`
	ImagenPublicID  *string `json:"imagenPublicId,omitempty" db:"imagen_public_id"`
	ImagenURL       *string `json:"imagenUrl,omitempty" db:"imagen_url"`
}

// RegisterUserRequest carries self-registration and admin-creation payloads.
// Patient registration and admin creation are strict; the format rules
// (9-digit phone, 8-digit id) live here, not in the appointment flow.
type RegisterUserRequest struct {
	Nombre          string `json:"nombre" binding:"required"`
	Apellido        string `json:"apellido" binding:"required"`
	Correo          string `json:"correo" binding:"required,email"`
	Telefono        string `json:"telefono" binding:"required,len=9,numeric"`
	Identificacion  string `json:"identificacion" binding:"required,len=8,numeric"`
	FechaNacimiento string `json:"fechaNacimiento" binding:"required"`
	Genero          string `json:"genero" binding:"required,oneof=Masculino Femenino"`
	Contrasena      string `json:"contrasena" binding:"required,min=8"`
}

// CreateDoctorRequest is bound from multipart/form-data because doctor
// creation carries a profile image alongside the fields.
type CreateDoctorRequest struct {
	Nombre          string `form:"nombre" binding:"required"`
	Apellido        string `form:"apellido" binding:"required"`
	Correo          string `form:"correo" binding:"required,email"`
	Telefono        string `form:"telefono" binding:"required,len=9,numeric"`
	Identificacion  string `form:"identificacion" binding:"required,len=8,numeric"`
	FechaNacimiento string `form:"fechaNacimiento" binding:"required"`
	Genero          string `form:"genero" binding:"required,oneof=Masculino Femenino"`
	Contrasena      string `form:"contrasena" binding:"required,min=8"`
	Departamento    string `form:"departamentoMedico" binding:"required"`
}

// LoginRequest carries credentials plus the role the client claims to hold.
// Login fails when the stored role differs from the requested one.
type LoginRequest struct {
	Correo     string `json:"correo" binding:"required,email"`
	Contrasena string `json:"contrasena" binding:"required"`
	Rol        Role   `json:"rol" binding:"required,oneof=Paciente Doctor Administrador"`
}
