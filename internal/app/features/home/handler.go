package home

import (
	"net/http"

	"github.com/dalemusser/valids/internal/app/system/respond"
	"go.uber.org/zap"
)

// Version is reported by the root document.
const Version = "1.0.0"

// Handler serves the API root.
type Handler struct {
	ProjectName string
	APIPrefix   string
	Log         *zap.Logger
}

func NewHandler(projectName, apiPrefix string, logger *zap.Logger) *Handler {
	return &Handler{
		ProjectName: projectName,
		APIPrefix:   apiPrefix,
		Log:         logger,
	}
}

type rootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	APIBase string `json:"api_base"`
	Health  string `json:"health"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – welcome                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	respond.OK(w, rootResponse{
		Message: "Welcome to " + h.ProjectName,
		Version: Version,
		APIBase: h.APIPrefix,
		Health:  "/health",
	})
}
