package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/postboard-api/internal/application"
	"github.com/oksasatya/postboard-api/internal/domain/entity"
	"github.com/oksasatya/postboard-api/internal/domain/repository"
	"github.com/oksasatya/postboard-api/pkg/response"
	"github.com/oksasatya/postboard-api/pkg/validation"
)

type AccountService interface {
	Get(ctx context.Context, id int64) (*entity.Account, error)
	Create(ctx context.Context, in entity.AccountPatch) (*entity.Account, error)
	Update(ctx context.Context, id int64, in entity.AccountPatch) (*entity.Account, error)
	Delete(ctx context.Context, id int64) error
}

// AccountHandler serves /user/. Errors are recorded on the context for
// the error translator.
type AccountHandler struct {
	Svc AccountService
}

func NewAccountHandler(svc AccountService) *AccountHandler {
	return &AccountHandler{Svc: svc}
}

func (h *AccountHandler) Create(c *gin.Context) {
	raw, ok := body(c)
	if !ok {
		return
	}
	in, err := application.ParseAccount(raw, validation.Create)
	if err != nil {
		_ = c.Error(err)
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, a)
}

func (h *AccountHandler) Get(c *gin.Context) {
	id, ok := pathID(c, repository.MsgAccountNotFound)
	if !ok {
		return
	}
	a, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, a)
}

func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := pathID(c, repository.MsgAccountNotFound)
	if !ok {
		return
	}
	raw, ok := body(c)
	if !ok {
		return
	}
	in, err := application.ParseAccount(raw, validation.Update)
	if err != nil {
		_ = c.Error(err)
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, a)
}

func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, repository.MsgAccountNotFound)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, deleted)
}
