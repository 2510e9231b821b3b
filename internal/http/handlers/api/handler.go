package api

import "github.com/gestor-next/internal/provider"

// Handler serves the management API.
type Handler struct {
	*provider.Container
}

// New creates the API handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
