package registration

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const displayTimeLayout = "02/01/2006 15:04:05"

const (
	msgDuplicateEmail = "El email ya está registrado"
	msgServerError    = "Error interno del servidor"
	msgBadBody        = "El cuerpo de la petición no es válido"
)

// Handler exposes registration endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs a registration HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type registerRequest struct {
	Nombre   string `json:"nombre" form:"nombre"`
	Apellido string `json:"apellido" form:"apellido"`
	Email    string `json:"email" form:"email"`
	Telefono string `json:"telefono" form:"telefono"`
	Pais     string `json:"pais" form:"pais"`
}

type registrantResponse struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
}

type listItem struct {
	ID            int64  `json:"id"`
	Nombre        string `json:"nombre"`
	Apellido      string `json:"apellido"`
	Email         string `json:"email"`
	Telefono      string `json:"telefono,omitempty"`
	Pais          string `json:"pais,omitempty"`
	FechaRegistro string `json:"fecha_registro"`
}

// Register handles a registration submission.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"errors": []string{msgBadBody}})
	}

	reg, err := h.service.Register(c.UserContext(), Submission{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Email:    req.Email,
		Telefono: req.Telefono,
		Pais:     req.Pais,
	})
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"errors": verr.Messages})
		case errors.Is(err, ErrDuplicateEmail):
			return c.Status(http.StatusConflict).JSON(fiber.Map{"error": msgDuplicateEmail})
		default:
			h.logger.Error("register user", "error", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": msgServerError})
		}
	}

	h.logger.Info("user registered", "id", reg.ID, "email", reg.Email)
	return c.Status(http.StatusCreated).JSON(registrantResponse{
		ID:       reg.ID,
		Nombre:   reg.Nombre,
		Apellido: reg.Apellido,
		Email:    reg.Email,
	})
}

// List returns all registrants, most recent first.
func (h *Handler) List(c *fiber.Ctx) error {
	regs, err := h.service.List(c.UserContext())
	if err != nil {
		h.logger.Error("list users", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": msgServerError})
	}

	items := make([]listItem, 0, len(regs))
	for _, reg := range regs {
		items = append(items, listItem{
			ID:            reg.ID,
			Nombre:        reg.Nombre,
			Apellido:      reg.Apellido,
			Email:         reg.Email,
			Telefono:      reg.Telefono,
			Pais:          reg.Pais,
			FechaRegistro: reg.CreatedAt.Format(displayTimeLayout),
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"count": len(items), "data": items})
}
