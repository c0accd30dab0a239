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

type PostService interface {
	Get(ctx context.Context, id int64) (*entity.Post, error)
	Create(ctx context.Context, in entity.PostPatch) (*entity.Post, error)
	Update(ctx context.Context, id int64, in entity.PostPatch) (*entity.Post, error)
	Delete(ctx context.Context, id int64) error
}

type PostHandler struct {
	Svc PostService
}

func NewPostHandler(svc PostService) *PostHandler {
	return &PostHandler{Svc: svc}
}

func (h *PostHandler) Create(c *gin.Context) {
	raw, ok := body(c)
	if !ok {
		return
	}
	in, err := application.ParsePost(raw, validation.Create)
	if err != nil {
		_ = c.Error(err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c, repository.MsgPostNotFound)
	if !ok {
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c, repository.MsgPostNotFound)
	if !ok {
		return
	}
	raw, ok := body(c)
	if !ok {
		return
	}
	in, err := application.ParsePost(raw, validation.Update)
	if err != nil {
		_ = c.Error(err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, repository.MsgPostNotFound)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, deleted)
}
