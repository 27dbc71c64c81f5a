// Package wages 实现工时与薪资的核心计算：
// 工作时长（含跨夜班次）、强积金（MPF）扣款、按工作类型分组汇总，
// 以及月度/财政年度的总额计算。所有函数均为纯函数，不依赖时钟或全局状态。
package wages

import "time"

const clockLayout = "15:04"

// ComputeHours 根据 HH:MM 格式的起止时间计算工作小时数。
// 结束时间早于开始时间视为跨夜班次，结束时间顺延一天。
// 起止相同返回 0（视为无效班次而非 24 小时）；
// 输入为空或格式错误同样返回 0，由调用方拒绝该记录。
func ComputeHours(start, end string) float64 {
	if start == "" || end == "" {
		return 0
	}
	st, err := time.Parse(clockLayout, start)
	if err != nil {
		return 0
	}
	et, err := time.Parse(clockLayout, end)
	if err != nil {
		return 0
	}
	if et.Before(st) {
		et = et.Add(24 * time.Hour)
	}
	return et.Sub(st).Hours()
}
