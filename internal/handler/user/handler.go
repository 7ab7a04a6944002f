package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Marxcruz/hospital-api/internal/middleware"
	"github.com/Marxcruz/hospital-api/internal/model"
	authsvc "github.com/Marxcruz/hospital-api/internal/service/auth"
	usersvc "github.com/Marxcruz/hospital-api/internal/service/user"
	"github.com/Marxcruz/hospital-api/pkg/httputil"
)

type Handler struct {
	users        *usersvc.Service
	auth         *authsvc.Service
	cookieMaxAge int
	cookieSecure bool
}

// NewHandler wires the user endpoints. cookieMaxAge is in seconds and
// matches the token lifetime so the cookie and the JWT expire together.
func NewHandler(users *usersvc.Service, auth *authsvc.Service, cookieMaxAge int, cookieSecure bool) *Handler {
	return &Handler{
		users:        users,
		auth:         auth,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	users := r.Group("/user")
	{
		users.POST("/create-patient", h.CreatePatient)
		users.POST("/login-user", h.Login)
		users.GET("/get-all-doctor", h.ListDoctors)

		users.POST("/create-new-admin", auth.RequireRole(model.RoleAdministrador), h.CreateAdmin)
		users.POST("/create-new-doctor", auth.RequireRole(model.RoleAdministrador), h.CreateDoctor)
		users.GET("/get-all-patient", auth.RequireRole(model.RoleAdministrador), h.ListPatients)
		users.DELETE("/delete/doctor/:id", auth.RequireRole(model.RoleAdministrador), h.DeleteDoctor)
		users.DELETE("/delete/patient/:id", auth.RequireRole(model.RoleAdministrador), h.DeletePatient)

		users.GET("/single-admin", auth.RequireRole(model.RoleAdministrador), h.CurrentUser)
		users.GET("/single-doctor", auth.RequireRole(model.RoleDoctor), h.CurrentUser)
		users.GET("/single-patient", auth.RequireRole(model.RolePaciente), h.CurrentUser)
		users.GET("/get-patient/:id", auth.RequireRole(model.RoleDoctor), h.GetPatient)

		users.GET("/logout-admin", auth.RequireRole(model.RoleAdministrador), h.logout(model.CookieAdmin))
		users.GET("/logout-doctor", auth.RequireRole(model.RoleDoctor), h.logout(model.CookieDoctor))
		users.GET("/logout-patient", auth.RequireRole(model.RolePaciente), h.logout(model.CookiePatient))
	}
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req, model.RolePaciente)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, httputil.H{"message": "paciente registrado", "user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(model.CookieForRole(user.Rol), token, h.cookieMaxAge, "/", "", h.cookieSecure, true)

	httputil.OK(c, httputil.H{"message": "inicio de sesión exitoso", "user": user})
}

func (h *Handler) CreateAdmin(c *gin.Context) {
	var req model.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req, model.RoleAdministrador)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, httputil.H{"message": "administrador registrado", "user": user})
}

// CreateDoctor binds multipart/form-data because doctor creation carries a
// profile image alongside the fields. The image part is optional.
func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	image, err := c.FormFile("imagen")
	if err != nil {
		image = nil
	}

	doctor, err := h.users.CreateDoctor(c.Request.Context(), &req, image)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, httputil.H{"message": "doctor registrado", "doctor": doctor})
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.users.ListDoctors(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"doctors": doctors})
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.users.ListPatients(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"patients": patients})
}

// CurrentUser returns the user loaded by the role middleware. Shared by the
// three single-* routes since the middleware already enforced the role.
func (h *Handler) CurrentUser(c *gin.Context) {
	httputil.OK(c, httputil.H{"user": middleware.CurrentUser(c)})
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, middleware.NewInvalidID("id inválido"))
		return
	}

	patient, err := h.users.GetPatient(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"patient": patient})
}

// logout expires the role cookie. There is no server-side token
// revocation, so logout is purely cookie-visible.
func (h *Handler) logout(cookie string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookie, "", -1, "/", "", h.cookieSecure, true)
		httputil.OK(c, httputil.H{"message": "sesión cerrada"})
	}
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, middleware.NewInvalidID("id inválido"))
		return
	}

	if err := h.users.DeleteDoctor(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"message": "doctor eliminado"})
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, middleware.NewInvalidID("id inválido"))
		return
	}

	if err := h.users.DeletePatient(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"message": "paciente eliminado"})
}
