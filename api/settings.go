package api

import (
	"wagetrack/database"
	"wagetrack/middleware"
	"wagetrack/models"

	"github.com/gin-gonic/gin"
)

// SettingsHandler 用户设置处理器
type SettingsHandler struct{}

func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{}
}

type UpdateSettingsRequest struct {
	DeductMPF *bool `json:"deduct_mpf" binding:"required" example:"true"`
}

// Get 获取用户设置
// @Summary 获取用户设置
// @Description 获取当前用户的设置，首次访问时自动创建默认设置（强积金扣除开启）
// @Tags 设置
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.UserSetting} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var setting models.UserSetting
	if err := database.DB.
		Where("user_id = ?", userID).
		Attrs(models.UserSetting{DeductMPF: true}).
		FirstOrCreate(&setting, models.UserSetting{UserID: userID}).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取设置失败"))
		return
	}
	Success(c, setting)
}

// Update 更新用户设置
// @Summary 更新用户设置
// @Description 更新强积金扣除开关
// @Tags 设置
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateSettingsRequest true "设置信息"
// @Success 200 {object} Response{data=models.UserSetting} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var setting models.UserSetting
	if err := database.DB.
		Where("user_id = ?", userID).
		Attrs(models.UserSetting{DeductMPF: true}).
		FirstOrCreate(&setting, models.UserSetting{UserID: userID}).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取设置失败"))
		return
	}

	// 用列映射更新，保证 false 也能写入
	if err := database.DB.Model(&setting).
		Update("deduct_mpf", *req.DeductMPF).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新设置失败"))
		return
	}
	setting.DeductMPF = *req.DeductMPF
	SuccessWithMessage(c, "更新成功", setting)
}
