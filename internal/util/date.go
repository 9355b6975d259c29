package util

import (
	"time"
)

const DateFormat = "2006-01-02"

// LocalDateString 把一个时间点投影到指定时区的日历日，返回 YYYY-MM-DD。
// 所有"今天"的判定（口算进度、识字进度、家务打卡）都必须经过这里，
// 保证按孩子的本地日切日，而不是服务器的UTC日。
// 时区名无法识别时返回错误，绝不静默退回UTC，否则一天的进度会被记错日子。
// "Local" 同样拒绝：它解析成服务器所在时区，跟孩子的本地日没有关系。
func LocalDateString(t time.Time, timezone string) (string, error) {
	if timezone == "" || timezone == "Local" {
		return "", ErrInvalidTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", ErrInvalidTimezone
	}
	return t.In(loc).Format(DateFormat), nil
}
