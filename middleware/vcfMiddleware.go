package middleware

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"note/api/contexts"
	"note/api/models/dtos/errors"
	"note/api/utils"

	"github.com/labstack/echo"
)

const vcfGzSuffix = ".vcf.gz"

/*
Echo middleware to ensure a valid `fileNames` HTTP query parameter was provided:
a comma separated list of `.vcf.gz` files found inside the VCF directory
*/
func MandateVcfGzFileNamesAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		nc := c.(*contexts.NoteContext)

		fileNames := utils.SplitCommaSeparated(c.QueryParam("fileNames"))
		if len(fileNames) == 0 {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("Missing 'fileNames' query parameter!"))
		}

		for _, fileName := range fileNames {
			if !strings.HasSuffix(fileName, vcfGzSuffix) {
				return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(fmt.Sprintf("File %s is not a %s file", fileName, vcfGzSuffix)))
			}

			// stay inside the vcf directory
			cleaned := filepath.Clean(fileName)
			if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
				return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(fmt.Sprintf("File %s must be relative to the VCF directory", fileName)))
			}

			info, err := os.Stat(filepath.Join(nc.Config.Api.VcfPath, cleaned))
			if err != nil || info.IsDir() {
				return c.JSON(http.StatusNotFound, errors.CreateSimpleNotFound(fmt.Sprintf("File %s not found", fileName)))
			}

			if !utils.StringInSlice(cleaned, nc.FileNames) {
				nc.FileNames = append(nc.FileNames, cleaned)
			}
		}

		return next(nc)
	}
}
