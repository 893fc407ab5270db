package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/lotes-api/internal/application/dto"
	"github.com/tu-usuario/lotes-api/internal/application/lots"
	"github.com/tu-usuario/lotes-api/internal/domain"
	"github.com/tu-usuario/lotes-api/internal/domain/entity"
)

// SessionHandler expone las sesiones de edición de trazabilidad: altas de
// lotes y seriales contra los registros en memoria, con commit transaccional
// al final. Toda mutación pasa por el registro, que valida y emite la lista
// completa actualizada.
type SessionHandler struct {
	store  *lots.SessionStore
	open   *lots.OpenSessionUseCase
	commit *lots.CommitUseCase
	now    func() time.Time
}

// NewSessionHandler construye el handler. now puede ser nil (reloj real).
func NewSessionHandler(store *lots.SessionStore, open *lots.OpenSessionUseCase, commit *lots.CommitUseCase, now func() time.Time) *SessionHandler {
	if now == nil {
		now = time.Now
	}
	return &SessionHandler{store: store, open: open, commit: commit, now: now}
}

// rejection mapea un RejectionError a su respuesta HTTP 422.
func rejection(c *fiber.Ctx, rej *lots.RejectionError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
		Code:    string(rej.Kind),
		Field:   rej.Field,
		Message: rej.Message,
	})
}

func (h *SessionHandler) session(c *fiber.Ctx) (*lots.Session, error) {
	s, err := h.store.Get(c.Params("sid"))
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "sesión no encontrada o cerrada"})
	}
	return s, nil
}

// Open godoc
// @Summary      Abrir sesión de edición de lotes/seriales
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      201  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/sessions [post]
func (h *SessionHandler) Open(c *fiber.Ctx) error {
	s, err := h.open.Open(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(h.toSessionResponse(s))
}

// Get godoc
// @Summary      Estado actual de la sesión
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{sid} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	s, ferr := h.session(c)
	if s == nil {
		return ferr
	}
	return c.JSON(h.toSessionResponse(s))
}

// Close godoc
// @Summary      Cerrar la sesión descartando cambios no confirmados
// @Tags         sessions
// @Security     Bearer
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      204
// @Router       /api/sessions/{sid} [delete]
func (h *SessionHandler) Close(c *fiber.Ctx) error {
	h.store.Close(c.Params("sid"))
	return c.SendStatus(fiber.StatusNoContent)
}

// Commit godoc
// @Summary      Confirmar la sesión: persiste lotes y seriales en una transacción
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.CommitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{sid}/commit [post]
func (h *SessionHandler) Commit(c *fiber.Ctx) error {
	s, ferr := h.session(c)
	if s == nil {
		return ferr
	}
	batches, serials, err := h.commit.Commit(c.Context(), s)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	now := h.now()
	return c.JSON(dto.CommitResponse{
		Batches: dto.ToBatchResponses(batches, now),
		Serials: dto.ToSerialResponses(serials, now),
	})
}

// ── Lotes ─────────────────────────────────────────────────────────────────────

// AddBatch godoc
// @Summary      Agregar un lote a la sesión
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sid   path  string  true  "ID de la sesión"
// @Param        body  body  dto.BatchEntryRequest  true  "Datos del lote"
// @Success      201   {object}  dto.BatchResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sessions/{sid}/batches [post]
func (h *SessionHandler) AddBatch(c *fiber.Ctx) error {
	s, ferr := h.session(c)
	if s == nil {
		return ferr
	}
	var in dto.BatchEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := in.ToDraft()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
	}
	batch, err := s.Batches.Add(draft)
	if err != nil {
		if rej, ok := lots.AsRejection(err); ok {
			return rejection(c, rej)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToBatchResponse(batch, h.now()))
}

// SuggestBatchCode godoc
// @Summary      Sugerir código de lote para la sesión
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  map[string]string
// @Router       /api/sessions/{sid}/batches/suggest-code [get]
func (h *SessionHandler) SuggestBatchCode(c *fiber.Ctx) error {
	s, ferr := h.session(c)
	if s == nil {
		return ferr
	}
	return c.JSON(fiber.Map{"code": s.Batches.SuggestCode()})
}

// EditBatch godoc
// @Summary      Cargar un lote al borrador para edición
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Param        bid  path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchDraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{sid}/batches/{bid}/edit [get]
func (h *SessionHandler) EditBatch(c *fiber.Ctx) error {
	s, ferr := h.session(c)
	if s == nil {
		return ferr
	}
	id := entity.ParseLegacyID(c.Params("bid"))
	draft, quantityLocked, err := s.Batches.Edit(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado en la sesión"})
	}
	return c.JSON(dto.ToBatchDraftResponse(draft, s.Batches.Policy().BatchLabel, quantityLocked))
}

// SaveBatch godoc
// @Summary      Guardar la edición de un lote
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sid   path  string  true  "ID de la sesión"
// @Param        bid   path  string  true  "ID del lote"
// @Param        body  body  dto.BatchEntryRequest  true  "Datos del lote"
// @Success      200   {array}  dto.BatchResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sessions/{sid}/batches/{bid} [put]
func (h *SessionHandler) SaveBatch(c *fiber.Ctx) error {
	s, ferr := h.session(c)
	if s == nil {
		return ferr
	}
	var in dto.BatchEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := in.ToDraft()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
	}
	id := entity.ParseLegacyID(c.Params("bid"))
	if err := s.Batches.Save(id, draft); err != nil {
		if rej, ok := lots.AsRejection(err); ok {
			return rejection(c, rej)
		}
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado en la sesión"})
	}
	return c.JSON(dto.ToBatchResponses(s.Batches.List(), h.now()))
}

// RemoveBatch godoc
// @Summary      Eliminar un lote de la sesión
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Param        bid  path  string  true  "ID del lote"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/sessions/{sid}/batches/{bid} [delete]
func (h *SessionHandler) RemoveBatch(c *fiber.Ctx) error {
	s, ferr := h.session(c)
	if s == nil {
		return ferr
	}
	id := entity.ParseLegacyID(c.Params("bid"))
	if err := s.Batches.Remove(id); err != nil {
		if rej, ok := lots.AsRejection(err); ok {
			return rejection(c, rej)
		}
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado en la sesión"})
	}
	return c.JSON(dto.ToBatchResponses(s.Batches.List(), h.now()))
}

// BatchFEFO godoc
// @Summary      Lotes de la sesión en orden FEFO
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/sessions/{sid}/batches/fefo [get]
func (h *SessionHandler) BatchFEFO(c *fiber.Ctx) error {
	s, ferr := h.session(c)
	if s == nil {
		return ferr
	}
	return c.JSON(dto.ToBatchResponses(s.Batches.FEFOOrder(), h.now()))
}

// BatchStats godoc
// @Summary      Agregados del registro de lotes de la sesión
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.BatchStatsResponse
// @Router       /api/sessions/{sid}/batches/stats [get]
func (h *SessionHandler) BatchStats(c *fiber.Ctx) error {
	s, ferr := h.session(c)
	if s == nil {
		return ferr
	}
	st := s.Batches.Stats()
	out := dto.BatchStatsResponse{
		TotalQuantity: st.TotalQuantity,
		TotalValue:    st.TotalValue,
		ExpiredCount:  st.ExpiredCount,
	}
	if st.NextToExpire != nil {
		r := dto.ToBatchResponse(*st.NextToExpire, h.now())
		out.NextToExpire = &r
	}
	return c.JSON(out)
}

// ── Seriales ──────────────────────────────────────────────────────────────────

// AddSerial godoc
// @Summary      Agregar una unidad serial a la sesión
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sid   path  string  true  "ID de la sesión"
// @Param        body  body  dto.SerialEntryRequest  true  "Datos del serial"
// @Success      201   {object}  dto.SerialResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sessions/{sid}/serials [post]
func (h *SessionHandler) AddSerial(c *fiber.Ctx) error {
	s, ferr := h.session(c)
	if s == nil {
		return ferr
	}
	var in dto.SerialEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := in.ToDraft()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
	}
	unit, err := s.Serials.Add(draft)
	if err != nil {
		if rej, ok := lots.AsRejection(err); ok {
			return rejection(c, rej)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSerialResponse(unit, h.now()))
}

// RemoveSerial godoc
// @Summary      Eliminar una unidad serial de la sesión
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Param        uid  path  string  true  "ID de la unidad"
// @Success      200  {array}  dto.SerialResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sessions/{sid}/serials/{uid} [delete]
func (h *SessionHandler) RemoveSerial(c *fiber.Ctx) error {
	s, ferr := h.session(c)
	if s == nil {
		return ferr
	}
	id := entity.ParseLegacyID(c.Params("uid"))
	if err := s.Serials.Remove(id); err != nil {
		if rej, ok := lots.AsRejection(err); ok {
			return rejection(c, rej)
		}
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "unidad no encontrada en la sesión"})
	}
	return c.JSON(dto.ToSerialResponses(s.Serials.List(), h.now()))
}

// SerialStats godoc
// @Summary      Agregados del registro serial de la sesión
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SerialStatsResponse
// @Router       /api/sessions/{sid}/serials/stats [get]
func (h *SessionHandler) SerialStats(c *fiber.Ctx) error {
	s, ferr := h.session(c)
	if s == nil {
		return ferr
	}
	st := s.Serials.Stats()
	return c.JSON(dto.SerialStatsResponse{
		Total:      st.Total,
		Available:  st.Available,
		InWarranty: st.InWarranty,
	})
}

func (h *SessionHandler) toSessionResponse(s *lots.Session) dto.SessionResponse {
	now := h.now()
	return dto.SessionResponse{
		SessionID: s.ID,
		ProductID: s.ProductID,
		Batches:   dto.ToBatchResponses(s.Batches.List(), now),
		Serials:   dto.ToSerialResponses(s.Serials.List(), now),
	}
}
