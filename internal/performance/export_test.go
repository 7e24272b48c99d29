package performance

import "time"

func SetClock(svc Service, now func() time.Time) {
	svc.(*service).now = now
}

var RenderCycleReport = renderCycleReport
