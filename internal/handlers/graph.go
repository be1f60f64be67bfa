package handlers

import (
	"net/http"

	"github.com/eldtechnologies/graphmsg/internal/graph"
)

// GraphResponse represents the registry snapshot.
type GraphResponse struct {
	Nodes int          `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
}

// Graph returns the current node count and edge list.
func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	nodes, _ := h.registry.Len()
	edges := h.registry.Edges()
	if edges == nil {
		edges = []graph.Edge{}
	}
	h.JSON(w, http.StatusOK, GraphResponse{Nodes: nodes, Edges: edges})
}
