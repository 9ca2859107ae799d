package conversions

import (
	"net/http"

	"note/api/contexts"
	"note/api/models/conversion"
	"note/api/models/dtos/errors"

	"github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"

	"github.com/labstack/echo"
)

// RunParameters are the optional query parameters of a conversion run.
type RunParameters struct {
	Index bool `mapstructure:"index"`
}

func bindRunParameters(c echo.Context, defaults RunParameters) (RunParameters, error) {
	params := defaults

	// flatten the query parameters, the first value wins
	raw := map[string]interface{}{}
	for key, values := range c.QueryParams() {
		if len(values) > 0 && key != "fileNames" {
			raw[key] = values[0]
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &params,
	})
	if err != nil {
		return params, err
	}
	if err := decoder.Decode(raw); err != nil {
		return params, err
	}
	return params, nil
}

func ConversionsRun(c echo.Context) error {
	nc := c.(*contexts.NoteContext)
	log.WithField("fileNames", nc.FileNames).Info("ConversionsRun hit!")

	params, err := bindRunParameters(c, RunParameters{Index: nc.Config.Conversion.IndexIntoElasticsearch})
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(err.Error()))
	}
	if params.Index && nc.Es7Client == nil {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("Elasticsearch indexing is not configured"))
	}

	responseDtos := []conversion.ConversionResponseDTO{}
	for _, fileName := range nc.FileNames {
		// already queued or running files are reported with an Error state
		dto, err := nc.ConversionService.Queue(fileName, params.Index)
		if err != nil {
			dto.Filename = fileName
			dto.State = conversion.Error
			dto.Message = err.Error()
		}
		responseDtos = append(responseDtos, dto)
	}

	return c.JSON(http.StatusOK, responseDtos)
}

func GetAllConversionRequests(c echo.Context) error {
	log.Debug("GetAllConversionRequests hit!")
	return c.JSON(http.StatusOK, c.(*contexts.NoteContext).ConversionService.GetRequests())
}

func ConversionsStats(c echo.Context) error {
	log.Debug("ConversionsStats hit!")
	return c.JSON(http.StatusOK, c.(*contexts.NoteContext).ConversionService.Stats())
}
