package wages

import (
	"sort"
	"time"

	"wagetrack/models"
)

// 工作类型展示颜色，按字典序位置循环分配，保证同一数据集下颜色稳定
var workTypePalette = []string{
	"#ef4444", // 红色
	"#3b82f6", // 蓝色
	"#a855f7", // 紫色
	"#ec4899", // 粉色
	"#10b981", // 绿色
	"#f59e0b", // 橙色
	"#14b8a6", // 青色
	"#64748b", // 灰色
}

// WorkTypeGroup 同一时间窗口内相同工作类型的记录集合
type WorkTypeGroup struct {
	WorkType string
	Entries  []models.WorkEntry
	Gross    float64
	Hours    float64
}

// GroupByWorkType 按时间窗口过滤记录后，按工作类型精确分组。
// 工作类型为自由文本，区分大小写，不做任何归一化。
func GroupByWorkType(entries []models.WorkEntry, within func(time.Time) bool) map[string]*WorkTypeGroup {
	groups := make(map[string]*WorkTypeGroup)
	for _, e := range entries {
		if !within(e.Date) {
			continue
		}
		g, ok := groups[e.WorkType]
		if !ok {
			g = &WorkTypeGroup{WorkType: e.WorkType}
			groups[e.WorkType] = g
		}
		g.Entries = append(g.Entries, e)
		g.Gross += e.TotalWages
		g.Hours += e.HoursWorked
	}
	return groups
}

// WorkTypeBreakdown 单个工作类型在汇总中的占比明细
type WorkTypeBreakdown struct {
	WorkType   string  `json:"work_type"`
	Gross      float64 `json:"gross"`       // 税前收入
	Net        float64 `json:"net"`         // 扣除强积金后的收入
	Hours      float64 `json:"hours"`       // 工作小时数
	EntryCount int     `json:"entry_count"` // 记录条数
	Percentage float64 `json:"percentage"`  // 占税前总收入的百分比（不受扣款开关影响）
	Color      string  `json:"color"`       // 展示颜色
}

// PeriodTotal 某个时间窗口的汇总结果
type PeriodTotal struct {
	Gross     float64             `json:"gross"`
	Net       float64             `json:"net"`
	Hours     float64             `json:"hours"`
	WorkTypes []WorkTypeBreakdown `json:"work_types"`
}

// totalForWindow 对窗口内的记录分组汇总。
// 强积金按每个工作类型的收入独立计算后再求和，而不是对总收入计算一次：
// 收入分散在多个类型时各自可能落在更低档位，总扣款因此可能更少，
// 这一口径必须保持。百分比始终相对税前总收入。
func totalForWindow(entries []models.WorkEntry, within func(time.Time) bool, deductMPF bool) (PeriodTotal, error) {
	groups := GroupByWorkType(entries, within)

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	total := PeriodTotal{WorkTypes: make([]WorkTypeBreakdown, 0, len(labels))}
	for _, label := range labels {
		g := groups[label]
		total.Gross += g.Gross
		total.Hours += g.Hours
	}

	for i, label := range labels {
		g := groups[label]
		net, err := NetWages(g.Gross, deductMPF)
		if err != nil {
			return PeriodTotal{}, err
		}
		total.Net += net

		var pct float64
		if total.Gross > 0 {
			pct = g.Gross / total.Gross * 100
		}
		total.WorkTypes = append(total.WorkTypes, WorkTypeBreakdown{
			WorkType:   label,
			Gross:      g.Gross,
			Net:        net,
			Hours:      g.Hours,
			EntryCount: len(g.Entries),
			Percentage: pct,
			Color:      workTypePalette[i%len(workTypePalette)],
		})
	}
	return total, nil
}

// ComputePeriodTotals 计算参考日期所在自然月和财政年度的汇总。
// 幂等且无副作用，相同输入返回完全相同的结果。
func ComputePeriodTotals(entries []models.WorkEntry, ref time.Time, deductMPF bool) (month, year PeriodTotal, err error) {
	month, err = totalForWindow(entries, SameMonth(ref), deductMPF)
	if err != nil {
		return PeriodTotal{}, PeriodTotal{}, err
	}
	year, err = totalForWindow(entries, InFinancialYear(ref), deductMPF)
	if err != nil {
		return PeriodTotal{}, PeriodTotal{}, err
	}
	return month, year, nil
}
