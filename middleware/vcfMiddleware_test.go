package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"note/api/contexts"
	"note/api/models/dtos"
	"note/api/utils/fixtures"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMandateVcfGzFileNamesAttribute(t *testing.T) {
	cfg := fixtures.InitConfigWithDirectories(t)
	fixtures.WriteGzipFile(t, cfg.Api.VcfPath, "a.vcf.gz", fixtures.DemoVcf)
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Api.VcfPath, "batch"), 0755))
	fixtures.WriteGzipFile(t, filepath.Join(cfg.Api.VcfPath, "batch"), "b.vcf.gz", fixtures.DemoVcf)
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Api.VcfPath, "folder.vcf.gz"), 0755))

	setUpEcho := func(path string) (*contexts.NoteContext, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		nc := &contexts.NoteContext{
			Context: e.NewContext(req, rec),
			Config:  cfg,
		}
		return nc, rec
	}

	var reached []string
	next := func(c echo.Context) error {
		reached = c.(*contexts.NoteContext).FileNames
		return c.NoContent(http.StatusOK)
	}

	t.Run("accepts existing vcf.gz files", func(t *testing.T) {
		nc, rec := setUpEcho("/conversions/run?fileNames=a.vcf.gz,batch/b.vcf.gz,a.vcf.gz")

		require.NoError(t, MandateVcfGzFileNamesAttribute(next)(nc))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"a.vcf.gz", "batch/b.vcf.gz"}, reached)
	})

	for name, tc := range map[string]struct {
		query string
		code  int
	}{
		"missing parameter":    {"", http.StatusBadRequest},
		"blank parameter":      {"?fileNames=,", http.StatusBadRequest},
		"wrong extension":      {"?fileNames=a.vcf", http.StatusBadRequest},
		"absolute path":        {"?fileNames=/etc/a.vcf.gz", http.StatusBadRequest},
		"leaves the directory": {"?fileNames=../a.vcf.gz", http.StatusBadRequest},
		"unknown file":         {"?fileNames=c.vcf.gz", http.StatusNotFound},
		"directory":            {"?fileNames=folder.vcf.gz", http.StatusNotFound},
	} {
		t.Run(name, func(t *testing.T) {
			reached = nil
			nc, rec := setUpEcho("/conversions/run" + tc.query)

			require.NoError(t, MandateVcfGzFileNamesAttribute(next)(nc))
			assert.Equal(t, tc.code, rec.Code)
			assert.Nil(t, reached)

			var body dtos.GeneralErrorResponseDto
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code)
			assert.Len(t, body.Errors, 1)
		})
	}
}
