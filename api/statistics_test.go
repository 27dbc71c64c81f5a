package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsHandler_GetPeriodTotals(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 用户设置：开启强积金扣除
	mock.ExpectQuery("SELECT .* FROM `user_settings`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "deduct_mpf"}).
			AddRow(1, 1, true))

	// 财年内记录：6月两条（家教 8000、收银 4000），4月一条（家教 3000）
	mock.ExpectQuery("SELECT .* FROM `work_entries`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "work_type", "date", "start_time", "end_time", "hourly_wage", "hours_worked", "total_wages"}).
			AddRow(1, 1, "家教", time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), "09:00", "17:00", 1000, 8, 8000).
			AddRow(2, 1, "兼职收银", time.Date(2024, 6, 2, 0, 0, 0, 0, time.Local), "10:00", "18:00", 500, 8, 4000).
			AddRow(3, 1, "家教", time.Date(2024, 4, 10, 0, 0, 0, 0, time.Local), "09:00", "12:00", 1000, 3, 3000))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/statistics/period", NewStatisticsHandler().GetPeriodTotals)

	req := httptest.NewRequest("GET", "/statistics/period?date=2024-06-15", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Month         string `json:"month"`
			FinancialYear string `json:"financial_year"`
			DeductMPF     bool   `json:"deduct_mpf"`
			MonthTotal    struct {
				Gross float64 `json:"gross"`
				Net   float64 `json:"net"`
				Hours float64 `json:"hours"`
			} `json:"month_total"`
			FinancialYearTotal struct {
				Gross float64 `json:"gross"`
				Net   float64 `json:"net"`
			} `json:"financial_year_total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "2024-06", resp.Data.Month)
	assert.Equal(t, "2024/25", resp.Data.FinancialYear)
	assert.True(t, resp.Data.DeductMPF)

	// 月度：家教 8000 扣 400，收银 4000 低于 7100 不扣
	assert.Equal(t, 12000.0, resp.Data.MonthTotal.Gross)
	assert.Equal(t, 11600.0, resp.Data.MonthTotal.Net)
	assert.Equal(t, 16.0, resp.Data.MonthTotal.Hours)

	// 财年：家教 11000 扣 550，收银 4000 不扣
	assert.Equal(t, 15000.0, resp.Data.FinancialYearTotal.Gross)
	assert.Equal(t, 14450.0, resp.Data.FinancialYearTotal.Net)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticsHandler_GetPeriodTotals_DeductDisabled(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `user_settings`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "deduct_mpf"}).
			AddRow(1, 1, false))

	mock.ExpectQuery("SELECT .* FROM `work_entries`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "work_type", "date", "start_time", "end_time", "hourly_wage", "hours_worked", "total_wages"}).
			AddRow(1, 1, "家教", time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), "09:00", "17:00", 1000, 8, 8000))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/statistics/period", NewStatisticsHandler().GetPeriodTotals)

	req := httptest.NewRequest("GET", "/statistics/period?date=2024-06-15", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			DeductMPF  bool `json:"deduct_mpf"`
			MonthTotal struct {
				Gross float64 `json:"gross"`
				Net   float64 `json:"net"`
			} `json:"month_total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// 关闭扣除时税后等于税前
	assert.False(t, resp.Data.DeductMPF)
	assert.Equal(t, resp.Data.MonthTotal.Gross, resp.Data.MonthTotal.Net)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticsHandler_GetPeriodTotals_QueryOverride(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `user_settings`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "deduct_mpf"}).
			AddRow(1, 1, true))

	mock.ExpectQuery("SELECT .* FROM `work_entries`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "work_type", "date", "start_time", "end_time", "hourly_wage", "hours_worked", "total_wages"}).
			AddRow(1, 1, "家教", time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), "09:00", "17:00", 1000, 8, 8000))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/statistics/period", NewStatisticsHandler().GetPeriodTotals)

	// query 参数覆盖用户设置
	req := httptest.NewRequest("GET", "/statistics/period?date=2024-06-15&deduct_mpf=false", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			DeductMPF bool `json:"deduct_mpf"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.DeductMPF)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticsHandler_GetPeriodTotals_InvalidDate(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/statistics/period", NewStatisticsHandler().GetPeriodTotals)

	req := httptest.NewRequest("GET", "/statistics/period?date=06-15-2024", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "日期格式错误")
}

func TestStatisticsHandler_GetDailyTotals(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT date, COALESCE.* FROM `work_entries`").
		WillReturnRows(sqlmock.NewRows([]string{"date", "total", "hours", "count"}).
			AddRow(time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), 480.0, 4.0, 1).
			AddRow(time.Date(2024, 6, 2, 0, 0, 0, 0, time.Local), 880.0, 12.0, 2))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/statistics/daily", NewStatisticsHandler().GetDailyTotals)

	req := httptest.NewRequest("GET", "/statistics/daily?month=2024-06", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data []DailyTotal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "2024-06-01", resp.Data[0].Date)
	assert.Equal(t, 480.0, resp.Data[0].Total)
	assert.Equal(t, 2, resp.Data[1].EntryCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticsHandler_GetDailyTotals_MissingMonth(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/statistics/daily", NewStatisticsHandler().GetDailyTotals)

	req := httptest.NewRequest("GET", "/statistics/daily", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "month参数必填")
}
