package api

import (
	"time"

	"wagetrack/database"
	"wagetrack/middleware"
	"wagetrack/models"
	"wagetrack/wages"

	"github.com/gin-gonic/gin"
)

// StatisticsHandler 统计处理器
type StatisticsHandler struct{}

func NewStatisticsHandler() *StatisticsHandler {
	return &StatisticsHandler{}
}

// PeriodTotalsResponse 月度与财政年度汇总返回
type PeriodTotalsResponse struct {
	Month              string            `json:"month" example:"2024-06"`
	FinancialYear      string            `json:"financial_year" example:"2024/25"`
	DeductMPF          bool              `json:"deduct_mpf"`
	MonthTotal         wages.PeriodTotal `json:"month_total"`
	FinancialYearTotal wages.PeriodTotal `json:"financial_year_total"`
}

// GetPeriodTotals 获取月度与财政年度汇总
// @Summary 获取月度与财政年度汇总
// @Description 按参考日期统计当前用户所在自然月与财政年度（4月1日至次年3月31日）的税前/税后收入、工时及各工作类型占比。默认使用用户设置中的强积金扣除开关，可通过 deduct_mpf 参数临时覆盖。
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param date query string false "参考日期 (2024-06-15)，默认今天"
// @Param deduct_mpf query bool false "临时覆盖强积金扣除开关"
// @Success 200 {object} Response{data=PeriodTotalsResponse} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/statistics/period [get]
func (h *StatisticsHandler) GetPeriodTotals(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	ref := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		t, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		ref = t
	}

	// 扣除开关：优先 query 覆盖，其次用户设置，默认开启
	deductMPF := true
	var setting models.UserSetting
	if err := database.DB.Where("user_id = ?", userID).First(&setting).Error; err == nil {
		deductMPF = setting.DeductMPF
	}
	if override := c.Query("deduct_mpf"); override != "" {
		deductMPF = override == "true" || override == "1"
	}

	// 财年窗口覆盖月窗口，一次查出财年内全部记录即可
	fyStart := wages.FinancialYearStart(ref)
	from := time.Date(fyStart, time.April, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(1, 0, 0)

	var entries []models.WorkEntry
	if err := database.DB.
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Find(&entries).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	monthTotal, yearTotal, err := wages.ComputePeriodTotals(entries, ref, deductMPF)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计计算失败"))
		return
	}

	Success(c, PeriodTotalsResponse{
		Month:              ref.Format("2006-01"),
		FinancialYear:      wages.FinancialYearLabel(ref),
		DeductMPF:          deductMPF,
		MonthTotal:         monthTotal,
		FinancialYearTotal: yearTotal,
	})
}

// DailyTotal 单日汇总（日历单元格展示用）
type DailyTotal struct {
	Date       string  `json:"date" example:"2024-06-01"`
	Total      float64 `json:"total" example:"480.00"`
	Hours      float64 `json:"hours" example:"4.0"`
	EntryCount int     `json:"entry_count" example:"2"`
}

// GetDailyTotals 获取某月每日汇总
// @Summary 获取某月每日汇总
// @Description 按月统计当前用户每日的税前收入、工时与记录条数，供日历渲染使用
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param month query string true "月份 (2024-06)"
// @Success 200 {object} Response{data=[]DailyTotal} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/statistics/daily [get]
func (h *StatisticsHandler) GetDailyTotals(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	monthStr := c.Query("month")
	if monthStr == "" {
		BadRequest(c, "month参数必填（格式：2024-06）")
		return
	}
	t, err := time.ParseInLocation("2006-01", monthStr, time.Local)
	if err != nil {
		BadRequest(c, "month格式错误，应为：2024-06")
		return
	}
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	type row struct {
		Date  time.Time
		Total float64
		Hours float64
		Count int
	}
	var rows []row
	if err := database.DB.Model(&models.WorkEntry{}).
		Select("date, COALESCE(SUM(total_wages), 0) AS total, COALESCE(SUM(hours_worked), 0) AS hours, COUNT(*) AS count").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Group("date").
		Order("date").
		Scan(&rows).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	list := make([]DailyTotal, 0, len(rows))
	for _, r := range rows {
		list = append(list, DailyTotal{
			Date:       r.Date.Format("2006-01-02"),
			Total:      r.Total,
			Hours:      r.Hours,
			EntryCount: r.Count,
		})
	}
	Success(c, list)
}
