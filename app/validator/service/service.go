package service

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	ext "github.com/TrustWeave/proofdao/config"
)

const CollectionValidationRecords = "validation_records"

var (
	ErrNotConfigured = errors.New("inference service not configured")
	ErrNoDoc         = errors.New("record not found")
	ErrDatabase      = errors.New("database error")
	ErrNoStorage     = errors.New("report storage not configured")
)

type Pagination struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
}

type ValidatorService struct {
	MongodbClient        *mongo.Client
	MongodbDB            *mongo.Database
	CollectionValidation *mongo.Collection

	inference  *inferenceClient
	batchPause time.Duration
}

func NewValidatorService(mongodbClient *mongo.Client) *ValidatorService {
	svc := &ValidatorService{
		inference:  newInferenceClient(),
		batchPause: time.Second,
	}
	if mongodbClient != nil {
		cfg := ext.ExtConfig.Mongodb
		svc.MongodbClient = mongodbClient
		svc.MongodbDB = mongodbClient.Database(cfg.ValidatorDB)
		svc.CollectionValidation = svc.MongodbDB.Collection(CollectionValidationRecords)
	}
	return svc
}
