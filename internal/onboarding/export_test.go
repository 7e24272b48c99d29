package onboarding

import "time"

func SetClock(svc Service, now func() time.Time) {
	svc.(*service).now = now
}
