package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authhttp "github.com/AlibekovAA/notes-app/backend/internal/auth/http"
	"github.com/AlibekovAA/notes-app/backend/internal/common/dto"
	commonerrors "github.com/AlibekovAA/notes-app/backend/internal/common/errors"
	commonhttp "github.com/AlibekovAA/notes-app/backend/internal/common/http"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
	"github.com/AlibekovAA/notes-app/backend/internal/common/mapper"
	"github.com/AlibekovAA/notes-app/backend/internal/note/domain"
	"github.com/AlibekovAA/notes-app/backend/internal/note/service"
)

type Handler struct {
	notes  *service.NoteService
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

func NewHandler(notes *service.NoteService, log *logger.Logger) *Handler {
	return &Handler{
		notes:  notes,
		errors: commonhttp.NewErrorHandler(log),
		log:    log,
	}
}

// Routes mounts the note endpoints on r. Reads are public; writes go through
// requireUser.
func (h *Handler) Routes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(requireUser)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.ListNotes(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, mapper.NotesWithOwnerToDTO(notes))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.GetNote(r.Context(), noteID(r))
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, mapper.NoteToDTO(note))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user, ok := authhttp.UserFromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrTokenMissing)
		return
	}

	input, err := decodeInput(r)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	note, err := h.notes.CreateNote(r.Context(), input, user)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusCreated, mapper.NoteToDTO(note))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	user, ok := authhttp.UserFromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrTokenMissing)
		return
	}

	input, err := decodeInput(r)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	note, err := h.notes.UpdateNote(r.Context(), noteID(r), input, user)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, mapper.NoteToDTO(note))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	user, ok := authhttp.UserFromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrTokenMissing)
		return
	}

	if err := h.notes.DeleteNote(r.Context(), noteID(r), user); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteNoContent(w)
}

func noteID(r *http.Request) domain.ID {
	return domain.ID(chi.URLParam(r, "id"))
}

func decodeInput(r *http.Request) (service.NoteInput, error) {
	var req dto.NoteInput
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		return service.NoteInput{}, err
	}

	input := service.NoteInput{Content: req.Content}
	if req.Important != nil {
		input.Important = *req.Important
	}
	return input, nil
}
