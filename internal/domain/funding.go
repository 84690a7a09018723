package domain

// reachedThreshold funded/target >= 0.9 без умножения: ceil(0.9 * target) == target - target/10.
func reachedThreshold(funded, target int64) bool {
	if target <= 0 {
		return false
	}
	return funded >= target-target/10
}

// CrossedThreshold сообщает, пересекла ли доля сбора порог 0.9 при переходе от oldFunded к newFunded.
// Срабатывает ровно на том взносе, который переводит долю из < 0.9 в >= 0.9.
func CrossedThreshold(oldFunded, newFunded, target int64) bool {
	return !reachedThreshold(oldFunded, target) && reachedThreshold(newFunded, target)
}
