package api

import (
	"strconv"
	"time"

	"wagetrack/database"
	"wagetrack/middleware"
	"wagetrack/models"
	"wagetrack/wages"

	"github.com/gin-gonic/gin"
)

// EntryHandler 工时记录处理器
type EntryHandler struct{}

func NewEntryHandler() *EntryHandler {
	return &EntryHandler{}
}

type CreateEntryRequest struct {
	WorkType   string  `json:"work_type" binding:"required,max=50" example:"家教"`
	Date       string  `json:"date" binding:"required" example:"2024-06-01"`
	StartTime  string  `json:"start_time" binding:"required" example:"18:00"`
	EndTime    string  `json:"end_time" binding:"required" example:"22:00"`
	HourlyWage float64 `json:"hourly_wage" binding:"required,gt=0" example:"120.00"`
}

type UpdateEntryRequest struct {
	WorkType   string  `json:"work_type" binding:"omitempty,max=50"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	HourlyWage float64 `json:"hourly_wage" binding:"omitempty,gt=0"`
}

type EntryListRequest struct {
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"10"`
	WorkType string `form:"work_type" example:"家教"`
	Month    string `form:"month" example:"2024-06"`
	Date     string `form:"date" example:"2024-06-01"`
}

type BatchDeleteEntriesRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// Create 创建工时记录
// @Summary 创建工时记录
// @Description 创建一条工时记录。工时与总薪资由服务端根据起止时间和时薪计算，结束时间早于开始时间视为跨夜班次。
// @Tags 工时记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEntryRequest true "工时信息"
// @Success 200 {object} Response{data=models.WorkEntry} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/entries [post]
func (h *EntryHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	hours := wages.ComputeHours(req.StartTime, req.EndTime)
	if hours <= 0 {
		BadRequest(c, "起止时间无效：时间格式应为 HH:MM，且班次时长必须大于 0")
		return
	}

	entry := models.WorkEntry{
		UserID:      userID,
		WorkType:    req.WorkType,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		HourlyWage:  req.HourlyWage,
		HoursWorked: hours,
		TotalWages:  hours * req.HourlyWage,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建工时记录失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", entry)
}

// List 获取工时记录列表
// @Summary 获取工时记录列表
// @Description 获取当前用户的工时记录，支持分页，以及按月份、日期、工作类型筛选
// @Tags 工时记录
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param work_type query string false "工作类型筛选"
// @Param month query string false "月份筛选 (2024-06)"
// @Param date query string false "日期筛选 (2024-06-01)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.WorkEntry}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/entries [get]
func (h *EntryHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var req EntryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.WorkEntry{}).Where("user_id = ?", userID)
	if req.WorkType != "" {
		query = query.Where("work_type = ?", req.WorkType)
	}
	if req.Month != "" {
		if t, err := time.ParseInLocation("2006-01", req.Month, time.Local); err == nil {
			from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
			query = query.Where("date >= ? AND date < ?", from, from.AddDate(0, 1, 0))
		}
	}
	if req.Date != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.Date, time.Local); err == nil {
			query = query.Where("date = ?", t)
		}
	}

	var total int64
	query.Count(&total)
	var list []models.WorkEntry
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("date DESC, created_at DESC").Offset(offset).Limit(req.PageSize).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, PageResponse{Total: total, Page: req.Page, PageSize: req.PageSize, List: list})
}

// Get 获取单条工时记录
// @Summary 获取单条工时记录
// @Description 根据ID获取工时记录详情
// @Tags 工时记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Success 200 {object} Response{data=models.WorkEntry} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/entries/{id} [get]
func (h *EntryHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var entry models.WorkEntry
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	Success(c, entry)
}

// Update 更新工时记录
// @Summary 更新工时记录
// @Description 更新指定的工时记录，起止时间或时薪变化时重新计算工时与总薪资
// @Tags 工时记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Param request body UpdateEntryRequest true "工时信息"
// @Success 200 {object} Response{data=models.WorkEntry} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/entries/{id} [put]
func (h *EntryHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var entry models.WorkEntry
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.WorkType != "" {
		updates["work_type"] = req.WorkType
	}
	if req.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		updates["date"] = t
	}

	// 起止时间或时薪任一变化都需要重算工时与总薪资
	start := entry.StartTime
	end := entry.EndTime
	wage := entry.HourlyWage
	if req.StartTime != "" {
		start = req.StartTime
	}
	if req.EndTime != "" {
		end = req.EndTime
	}
	if req.HourlyWage > 0 {
		wage = req.HourlyWage
	}
	if start != entry.StartTime || end != entry.EndTime || wage != entry.HourlyWage {
		hours := wages.ComputeHours(start, end)
		if hours <= 0 {
			BadRequest(c, "起止时间无效：时间格式应为 HH:MM，且班次时长必须大于 0")
			return
		}
		updates["start_time"] = start
		updates["end_time"] = end
		updates["hourly_wage"] = wage
		updates["hours_worked"] = hours
		updates["total_wages"] = hours * wage
	}

	if err := database.DB.Model(&entry).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&entry, entry.ID)
	SuccessWithMessage(c, "更新成功", entry)
}

// Delete 删除工时记录
// @Summary 删除工时记录
// @Description 删除指定的工时记录
// @Tags 工时记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/entries/{id} [delete]
func (h *EntryHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var entry models.WorkEntry
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	if err := database.DB.Delete(&entry).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// BatchDelete 批量删除工时记录
// @Summary 批量删除工时记录
// @Description 批量删除当前用户的多条工时记录（日历批量选择模式）
// @Tags 工时记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BatchDeleteEntriesRequest true "待删除的记录ID列表"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/entries/batch-delete [post]
func (h *EntryHandler) BatchDelete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var req BatchDeleteEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	// 只删除属于当前用户的记录
	result := database.DB.Where("user_id = ? AND id IN ?", userID, req.IDs).Delete(&models.WorkEntry{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", gin.H{"deleted": result.RowsAffected})
}
