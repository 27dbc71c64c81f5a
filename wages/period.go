package wages

import (
	"fmt"
	"time"
)

// FinancialYearStart 返回参考日期所属财政年度的起始年份。
// 财政年度从 4 月 1 日起至次年 3 月 31 日：
// 1-3 月属于上一年起始的财政年度。
func FinancialYearStart(ref time.Time) int {
	if ref.Month() < time.April {
		return ref.Year() - 1
	}
	return ref.Year()
}

// FinancialYearLabel 返回财政年度的显示标签，如 "2023/24"。
func FinancialYearLabel(ref time.Time) string {
	start := FinancialYearStart(ref)
	return fmt.Sprintf("%d/%02d", start, (start+1)%100)
}

// SameMonth 返回判断日期是否与参考日期同年同月的窗口谓词。
func SameMonth(ref time.Time) func(time.Time) bool {
	year, month := ref.Year(), ref.Month()
	return func(d time.Time) bool {
		return d.Year() == year && d.Month() == month
	}
}

// InFinancialYear 返回判断日期是否落在参考日期所属财政年度内的窗口谓词。
func InFinancialYear(ref time.Time) func(time.Time) bool {
	start := FinancialYearStart(ref)
	from := time.Date(start, time.April, 1, 0, 0, 0, 0, ref.Location())
	to := time.Date(start+1, time.April, 1, 0, 0, 0, 0, ref.Location())
	return func(d time.Time) bool {
		return !d.Before(from) && d.Before(to)
	}
}
