package clock

import "time"

// Clock 提供當前時間，讓狀態推導可以在測試中注入固定時刻
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System 回傳以 UTC 牆鐘時間為準的 Clock
func System() Clock {
	return systemClock{}
}

// Fixed 回傳永遠停在 t 的 Clock，測試用
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}
