package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"voltshop/internal/service"
	"voltshop/pkg/interfaces"
	"voltshop/pkg/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins, production should use stricter checks
	},
}

// ConfiguratorHandler drives a live configurator session over WebSocket. The
// client sends selection changes; each change answers with the current
// selection and the fresh compatibility verdict.
type ConfiguratorHandler struct {
	compatService *service.CompatibilityService
}

// NewConfiguratorHandler creates a new configurator handler
func NewConfiguratorHandler(compatService *service.CompatibilityService) *ConfiguratorHandler {
	return &ConfiguratorHandler{compatService: compatService}
}

type configuratorMessage struct {
	Action     string `json:"action"` // select, deselect, check
	CategoryID int64  `json:"category_id,omitempty"`
	ProductID  string `json:"product_id,omitempty"`
}

type configuratorReply struct {
	Selections []interfaces.SelectedComponent `json:"selections"`
	Status     string                         `json:"status,omitempty"`
	Issues     interface{}                    `json:"issues,omitempty"`
	Error      string                         `json:"error,omitempty"`
}

// Session runs one configurator session until the client disconnects
// @Summary Live configurator session
// @Tags Compatibility
// @Router /api/v1/configurator/session [get]
func (h *ConfiguratorHandler) Session(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "Failed to upgrade to websocket: %v", err)
		return
	}
	defer ws.Close()

	ctx := c.Request.Context()
	// One slot per category, replacing on re-select
	selected := make(map[int64]interfaces.SelectedComponent)

	for {
		var msg configuratorMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WarnCtx(ctx, "configurator session closed unexpectedly: %v", err)
			}
			return
		}

		switch msg.Action {
		case "select":
			selected[msg.CategoryID] = interfaces.SelectedComponent{
				CategoryID: msg.CategoryID,
				ProductID:  msg.ProductID,
			}
		case "deselect":
			delete(selected, msg.CategoryID)
		case "check":
			// No change, just re-evaluate
		default:
			if err := ws.WriteJSON(configuratorReply{Error: "unknown action: " + msg.Action}); err != nil {
				return
			}
			continue
		}

		reply := configuratorReply{Selections: selectionList(selected)}
		result, err := h.compatService.CheckCompatibility(ctx, reply.Selections)
		if err != nil {
			reply.Error = err.Error()
		} else {
			reply.Status = result.Status
			reply.Issues = result.Issues
		}

		if err := ws.WriteJSON(reply); err != nil {
			return
		}
	}
}

func selectionList(selected map[int64]interfaces.SelectedComponent) []interfaces.SelectedComponent {
	list := make([]interfaces.SelectedComponent, 0, len(selected))
	for _, sel := range selected {
		list = append(list, sel)
	}
	return list
}
