package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/service"
)

func uploadTestRouter(h *UploadHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/:dataset_id/item/", h.UploadItem)
	return r
}

func multipartBody(t *testing.T, filenames ...string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, name := range filenames {
		fw, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("not a real jpeg"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestUploadHandler_UploadItem(t *testing.T) {
	datasetID := uuid.New()

	tests := []struct {
		name           string
		target         string
		filenames      []string
		setup          func(*MockUploadService)
		expectedStatus int
	}{
		{
			name:      "created",
			target:    "/admin/" + datasetID.String() + "/item/",
			filenames: []string{"a.jpg"},
			setup: func(svc *MockUploadService) {
				svc.On("UploadItem", mock.Anything, datasetID, mock.Anything).
					Return(&service.ItemUploadResult{ItemID: uuid.New(), Name: "abc"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			// The FK violation surfaces through the gorm error translator
			// when the dataset row does not exist.
			name:      "unknown dataset is 404, not 500",
			target:    "/admin/" + datasetID.String() + "/item/",
			filenames: []string{"a.jpg"},
			setup: func(svc *MockUploadService) {
				svc.On("UploadItem", mock.Anything, datasetID, mock.Anything).
					Return(nil, gorm.ErrForeignKeyViolated)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "no files",
			target:         "/admin/" + datasetID.String() + "/item/",
			setup:          func(svc *MockUploadService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed dataset id",
			target:         "/admin/nope/item/",
			filenames:      []string{"a.jpg"},
			setup:          func(svc *MockUploadService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockUploadService{}
			tt.setup(svc)

			body, contentType := multipartBody(t, tt.filenames...)
			req := httptest.NewRequest(http.MethodPost, tt.target, body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			uploadTestRouter(NewUploadHandler(svc)).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
