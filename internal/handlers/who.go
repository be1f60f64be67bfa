package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eldtechnologies/graphmsg/internal/graph"
	"github.com/eldtechnologies/graphmsg/internal/identity"
)

// WhoResponse represents the identity profile response. Only public key
// material is exposed.
type WhoResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	SigningKey   string   `json:"signing_key,omitempty"`
	RSAPublicKey string   `json:"rsa_public_key,omitempty"`
	Neighbors    []string `json:"neighbors"`
}

// Who handles identity profile lookup.
func (h *Handler) Who(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ident, err := h.registry.Lookup(id)
	if errors.Is(err, graph.ErrNotFound) {
		h.Error(w, http.StatusNotFound, "identity not found")
		return
	}
	if err != nil {
		h.Error(w, http.StatusInternalServerError, "registry error")
		return
	}

	neighbors, err := h.registry.Neighbors(id)
	if err != nil {
		// removed between the two calls
		h.Error(w, http.StatusNotFound, "identity not found")
		return
	}

	resp := WhoResponse{
		ID:        ident.ID,
		Name:      ident.DisplayName,
		Neighbors: neighbors,
	}
	if pub := ident.Keys.SigningPublic(); pub != nil {
		resp.SigningKey = identity.EncodeSigningPublic(pub)
	}
	if pub := ident.Keys.RSAPublic(); pub != nil {
		if pemBytes, err := identity.EncodeRSAPublicKeyPEM(pub); err == nil {
			resp.RSAPublicKey = string(pemBytes)
		}
	}

	h.JSON(w, http.StatusOK, resp)
}
