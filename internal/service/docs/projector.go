package docs

import (
	"strconv"
	"strings"

	models "ailurus/internal/domain/models/docs"
)

// ProjectNode maps an internal tree node to the external wire shape.
// Side-effect free and idempotent: ids are stringified, the type enum is
// lower-cased, slug comes from the first linked document (absent for orphaned
// FILE nodes), and count is the number of immediate children, omitted when
// zero so renderers can distinguish "no badge" from an explicit 0.
func ProjectNode(node *models.FolderTreeNode) models.FolderNodeResponse {
	resp := models.FolderNodeResponse{
		ID:    strconv.FormatInt(node.ID, 10),
		Name:  node.Name,
		Type:  strings.ToLower(string(node.Type)),
		Icon:  node.Icon,
		Path:  node.Path,
		Order: node.SortOrder,
		Count: len(node.Children),
	}

	if len(node.Documents) > 0 {
		resp.Slug = node.Documents[0].Slug
	}

	if len(node.Children) > 0 {
		resp.Children = ProjectNodes(node.Children)
	}

	return resp
}

// ProjectNodes projects a slice of tree nodes, preserving order
func ProjectNodes(nodes []*models.FolderTreeNode) []models.FolderNodeResponse {
	projected := make([]models.FolderNodeResponse, 0, len(nodes))
	for _, node := range nodes {
		projected = append(projected, ProjectNode(node))
	}
	return projected
}
