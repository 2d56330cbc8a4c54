package service

import (
	"fmt"
	"time"
)

// 公务员退休规则：年满 60 岁或服务满 35 年，以先到者为准
const (
	retirementAgeYears     = 60
	retirementServiceYears = 35
)

// RetirementDate 计算法定退休日期
// dob 与 firstAppointed 允许缺失；两者都缺失时返回 nil。
func RetirementDate(dob, firstAppointed *time.Time) *time.Time {
	var byAge, byService *time.Time
	if dob != nil {
		d := dob.AddDate(retirementAgeYears, 0, 0)
		byAge = &d
	}
	if firstAppointed != nil {
		d := firstAppointed.AddDate(retirementServiceYears, 0, 0)
		byService = &d
	}

	switch {
	case byAge == nil:
		return byService
	case byService == nil:
		return byAge
	case byService.Before(*byAge):
		return byService
	default:
		return byAge
	}
}

// FormatTimeUntil 把退休日期到 now 的剩余时间格式化为 "Ny Nm"
// 已过期返回 "retired"，无法计算返回空串。
func FormatTimeUntil(retireAt *time.Time, now time.Time) string {
	if retireAt == nil {
		return ""
	}
	if !retireAt.After(now) {
		return "retired"
	}

	years := retireAt.Year() - now.Year()
	months := int(retireAt.Month()) - int(now.Month())
	if retireAt.Day() < now.Day() {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}
	return fmt.Sprintf("%dy %dm", years, months)
}
