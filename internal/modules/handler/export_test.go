package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/marconi-lab/annotator/internal/modules/service"
)

func exportTestRouter(h *ExportHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/download/csv/:dataset_id/", h.DownloadCSV)
	r.GET("/download/csv/:dataset_id/cases", h.DownloadCSVByCase)
	r.GET("/download/zip/:dataset_id/", h.DownloadZip)
	return r
}

func TestExportHandler_DownloadCSV(t *testing.T) {
	datasetID := uuid.New()

	t.Run("streams with attachment headers", func(t *testing.T) {
		svc := &MockExportService{}
		svc.On("WriteImagesCSV", mock.Anything, mock.Anything, datasetID, false).
			Run(func(args mock.Arguments) {
				w := args.Get(1).(io.Writer)
				_, _ = w.Write([]byte("image,label,label 2,comment,cervical area\n"))
			}).
			Return(nil)

		r := exportTestRouter(NewExportHandler(svc, zap.NewNop()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/download/csv/"+datasetID.String()+"/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
		assert.Contains(t, w.Body.String(), "cervical area")
	})

	t.Run("case ordering reaches the service", func(t *testing.T) {
		svc := &MockExportService{}
		svc.On("WriteImagesCSV", mock.Anything, mock.Anything, datasetID, true).Return(nil)

		r := exportTestRouter(NewExportHandler(svc, zap.NewNop()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/download/csv/"+datasetID.String()+"/cases", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown dataset before streaming is a 404", func(t *testing.T) {
		svc := &MockExportService{}
		svc.On("WriteImagesCSV", mock.Anything, mock.Anything, datasetID, false).
			Return(service.ErrNotFound)

		r := exportTestRouter(NewExportHandler(svc, zap.NewNop()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/download/csv/"+datasetID.String()+"/", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		// The error body is JSON, not a downloadable csv.
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.Empty(t, w.Header().Get("Content-Disposition"))
	})

	t.Run("bad dataset id", func(t *testing.T) {
		r := exportTestRouter(NewExportHandler(&MockExportService{}, zap.NewNop()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/download/csv/nope/", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("mid-stream failure cannot rewrite the status", func(t *testing.T) {
		svc := &MockExportService{}
		svc.On("WriteImagesCSV", mock.Anything, mock.Anything, datasetID, false).
			Run(func(args mock.Arguments) {
				w := args.Get(1).(io.Writer)
				_, _ = w.Write([]byte("image,label\npartial"))
			}).
			Return(assert.AnError)

		r := exportTestRouter(NewExportHandler(svc, zap.NewNop()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/download/csv/"+datasetID.String()+"/", nil))

		// The 200 is already on the wire; no JSON error body may follow.
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), `"msg"`)
	})
}

func TestExportHandler_DownloadZip(t *testing.T) {
	datasetID := uuid.New()

	svc := &MockExportService{}
	svc.On("WriteZip", mock.Anything, mock.Anything, datasetID).Return(nil)

	r := exportTestRouter(NewExportHandler(svc, zap.NewNop()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/download/zip/"+datasetID.String()+"/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
}
