package service

import (
	"context"

	"github.com/TrustWeave/proofdao/app/validator"
	"github.com/TrustWeave/proofdao/common/util"
)

const (
	HealthStatusOnline  = "online"
	HealthStatusOffline = "offline"
)

// advertisedAccuracy is the calibration figure published for the current
// evaluator configuration.
const advertisedAccuracy = 0.95

type HealthResp struct {
	Status       string  `json:"status"`
	HasAPIKey    bool    `json:"hasApiKey"`
	Model        string  `json:"model"`
	ResponseTime int64   `json:"responseTime"`
	Accuracy     float64 `json:"accuracy"`
}

// Health reports provider reachability. It never hard-fails: any internal
// error degrades to an offline report.
func (svc *ValidatorService) Health(ctx context.Context) HealthResp {
	resp := HealthResp{
		Status:    HealthStatusOffline,
		HasAPIKey: svc.inference.Configured(),
		Model:     svc.inference.model,
		Accuracy:  advertisedAccuracy,
	}
	if !resp.HasAPIKey {
		return resp
	}
	elapsed, err := svc.inference.Ping(ctx)
	if err != nil {
		validator.Logger().WithContext(ctx).Warn("health ping: ", err.Error())
		return resp
	}
	resp.Status = HealthStatusOnline
	resp.ResponseTime = util.DurationMillis(elapsed)
	return resp
}
