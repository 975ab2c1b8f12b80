package validator

import (
	"github.com/go-redis/redis/v8"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"

	"github.com/TrustWeave/proofdao/common/log"
)

var (
	RedisClient redis.UniversalClient
	MinIOClient *minio.Client
)

func Logger() *logrus.Entry {
	return log.Logger().WithFields(logrus.Fields{
		"service": "proofdao",
		"module":  "validator",
	})
}
