package workflows

import (
	"net/http"

	"note/api/contexts"
	w "note/api/workflows"

	"github.com/labstack/echo"
)

func WorkflowsGet(c echo.Context) error {
	cfg := c.(*contexts.NoteContext).Config
	return c.JSON(http.StatusOK, w.ConversionWorkflowSchema(cfg.Conversion.OutputSuffix))
}
