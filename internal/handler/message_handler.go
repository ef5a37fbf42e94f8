package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"huddle/internal/middleware"
	"huddle/internal/services"
	"huddle/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// List returns one page of the feed, newest first.
func (h *MessageHandler) List(c *gin.Context) {
	limit, offset := services.ParsePage(c.Query("limit"), c.Query("offset"))

	page, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := httpdto.Page[httpdto.MessageDTO]{
		Count:   page.Total,
		Results: httpdto.FromMessageSlice(page.Items),
	}
	// offset can be arbitrarily large; subtract from Total so the sum never overflows.
	if int64(offset) < page.Total-int64(limit) {
		next := pageURL(c, limit, offset+limit)
		resp.Next = &next
	}
	if offset > 0 {
		prev := pageURL(c, limit, max(offset-limit, 0))
		resp.Previous = &prev
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MessageHandler) Create(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		writeError(c, notAuthenticated)
		return
	}

	var req httpdto.CreateMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.service.Create(c.Request.Context(), *p, req.Input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.FromMessage(msg))
}

// pageURL rebuilds the absolute request URL with limit and offset replaced.
// An offset of 0 is dropped from the query.
func pageURL(c *gin.Context, limit, offset int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	q := c.Request.URL.Query()
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	} else {
		q.Del("offset")
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: q.Encode(),
	}
	return u.String()
}
