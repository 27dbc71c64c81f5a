package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHandler_ExportCSV(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `work_entries`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "work_type", "date", "start_time", "end_time", "hourly_wage", "hours_worked", "total_wages", "created_at"}).
			AddRow(1, 1, "家教", time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), "18:00", "22:00", 120, 4, 480, time.Date(2024, 6, 1, 23, 0, 0, 0, time.Local)))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv?start_time=2024-06-01&end_time=2024-06-30", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "work_entries_2024-06-01_2024-06-30.csv")

	body := w.Body.String()
	// BOM 开头，保证 Excel 正确识别中文
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))
	assert.Contains(t, body, "工作类型")
	assert.Contains(t, body, "家教")
	assert.Contains(t, body, "480.00")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportCSV_MissingParams(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv?start_time=2024-06-01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "请提供开始时间和结束时间")
}

func TestExportHandler_ExportCSV_BadDate(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv?start_time=06/01/2024&end_time=2024-06-30", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "开始时间格式错误")
}

func TestExportHandler_ExportJSON(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `work_entries`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "work_type", "date", "start_time", "end_time", "hourly_wage", "hours_worked", "total_wages"}).
			AddRow(1, 1, "家教", time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), "18:00", "22:00", 120, 4, 480).
			AddRow(2, 1, "兼职收银", time.Date(2024, 6, 2, 0, 0, 0, 0, time.Local), "10:00", "18:00", 50, 8, 400))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/json", NewExportHandler().ExportJSON)

	req := httptest.NewRequest("GET", "/export/json?start_time=2024-06-01&end_time=2024-06-30", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "家教")
	assert.Contains(t, w.Body.String(), "兼职收银")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportExcel(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `work_entries`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "work_type", "date", "start_time", "end_time", "hourly_wage", "hours_worked", "total_wages"}).
			AddRow(1, 1, "家教", time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), "18:00", "22:00", 120, 4, 480))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/excel", NewExportHandler().ExportExcel)

	req := httptest.NewRequest("GET", "/export/excel?start_time=2024-06-01&end_time=2024-06-30", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	// xlsx 是 zip 容器，以 PK 开头
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
	require.NoError(t, mock.ExpectationsWereMet())
}
