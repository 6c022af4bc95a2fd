package domain

import "math"

// Суммы хранятся в минорных единицах int64. Операции ниже не допускают
// молчаливого переполнения: ok=false означает, что результат не помещается в int64.

// AddMinor складывает две неотрицательные суммы.
func AddMinor(a, b int64) (int64, bool) {
	if a < 0 || b < 0 || a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}

// MulMinor умножает количество на цену. Оба множителя неотрицательны.
func MulMinor(qty, unit int64) (int64, bool) {
	if qty < 0 || unit < 0 {
		return 0, false
	}
	if qty != 0 && unit > math.MaxInt64/qty {
		return 0, false
	}
	return qty * unit, true
}

// PercentOfMinor возвращает floor(amount*percent/100) без промежуточного произведения.
// percent приводится к диапазону [0, 100], отрицательная сумма даёт 0.
func PercentOfMinor(amount, percent int64) int64 {
	if amount <= 0 || percent <= 0 {
		return 0
	}
	if percent > 100 {
		percent = 100
	}
	return amount/100*percent + amount%100*percent/100
}
