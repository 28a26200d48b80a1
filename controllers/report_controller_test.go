package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-cropadvisor/utils"
)

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDownloadReport(t *testing.T) {
	c := NewReportController(zap.NewNop())
	r := gin.New()
	r.POST("/download_report", c.DownloadReport)

	for _, form := range []url.Values{
		{"Predicted": {"Rice"}, "District": {"Mandya"}, "Season": {"Kharif"}},
		{},
	} {
		w := postForm(r, "/download_report", form)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
		assert.Contains(t, w.Header().Get("Content-Disposition"), utils.ReportFilename)
		assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
	}
}

func TestDownloadReportUsesFormFields(t *testing.T) {
	var got utils.Report
	c := NewReportController(zap.NewNop())
	c.render = func(rep utils.Report) ([]byte, error) {
		got = rep
		return []byte("%PDF-1.3"), nil
	}
	r := gin.New()
	r.POST("/download_report", c.DownloadReport)

	postForm(r, "/download_report", url.Values{"District": {"Kodagu"}})
	assert.Equal(t, utils.Report{District: "Kodagu", PredictedCrop: "Unknown"}, got)
}

func TestDownloadReportError(t *testing.T) {
	c := NewReportController(zap.NewNop())
	c.render = func(utils.Report) ([]byte, error) { return nil, errors.New("font missing") }
	r := gin.New()
	r.POST("/download_report", c.DownloadReport)

	w := postForm(r, "/download_report", url.Values{"Predicted": {"Rice"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Equal(t, "PDF Error: font missing", w.Body.String())
}
