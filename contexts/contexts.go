package contexts

import (
	"note/api/models"
	"note/api/services"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/labstack/echo"
)

type (
	// "Helper" Context to pass into routes that need
	//  the configuration and the service singletons
	NoteContext struct {
		echo.Context
		Es7Client         *es7.Client
		Config            *models.Config
		ConversionService *services.ConversionService

		// set by middleware
		FileNames []string
	}
)
