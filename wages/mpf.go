package wages

import "errors"

// 香港强积金（MPF）雇员供款档位（按月收入）
const (
	mpfLowerBound   = 7100  // 低于此值无需供款
	mpfUpperBound   = 30000 // 高于此值按封顶金额供款
	mpfRate         = 0.05  // 档内供款比例 5%
	mpfMaxDeduction = 1500  // 供款封顶（30000 × 5%，边界处连续）
)

// ErrNegativeIncome 收入为负数
var ErrNegativeIncome = errors.New("收入不能为负数")

// MPFDeduction 计算月收入对应的强积金雇员供款。
// 收入低于 7100 免供款；7100 至 30000（含）按 5% 供款；
// 超过 30000 按 1500 封顶。30000 处 5% 恰好等于封顶值，边界连续。
func MPFDeduction(monthlyIncome float64) (float64, error) {
	if monthlyIncome < 0 {
		return 0, ErrNegativeIncome
	}
	if monthlyIncome < mpfLowerBound {
		return 0, nil
	}
	if monthlyIncome <= mpfUpperBound {
		return monthlyIncome * mpfRate, nil
	}
	return mpfMaxDeduction, nil
}

// NetWages 计算税后净收入。deductMPF 关闭时净收入等于总收入。
func NetWages(grossWages float64, deductMPF bool) (float64, error) {
	if !deductMPF {
		return grossWages, nil
	}
	deduction, err := MPFDeduction(grossWages)
	if err != nil {
		return 0, err
	}
	return grossWages - deduction, nil
}
