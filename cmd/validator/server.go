package validator

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/config/source/file"
	sdkapi "github.com/go-admin-team/go-admin-core/sdk/api"
	"github.com/go-admin-team/go-admin-core/sdk/config"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	appvalidator "github.com/TrustWeave/proofdao/app/validator"
	"github.com/TrustWeave/proofdao/app/validator/api"
	service2 "github.com/TrustWeave/proofdao/app/validator/service"
	"github.com/TrustWeave/proofdao/common/log"
	"github.com/TrustWeave/proofdao/common/util"
	ext "github.com/TrustWeave/proofdao/config"
)

const ServiceName = "validator"

var (
	configYml string
	StartCmd  = &cobra.Command{
		Use:          "validator",
		Short:        "Start validation API server",
		Example:      "proofdao validator -c config/settings.yml",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
)

func init() {
	StartCmd.PersistentFlags().StringVarP(&configYml, "config", "c", "config/settings.yml", "Start server with provided configuration file")
}

func run() error {
	_ = log.WithTracer(startingCtx, PackageName, "load configuration", func(ctx context.Context) error {
		config.ExtendConfig = &ext.ExtConfig
		config.Setup(
			file.NewSource(file.WithPath(configYml)),
		)
		return nil
	})

	var mongodbClient *mongo.Client
	if ext.ExtConfig.Mongodb.DSN != "" {
		_ = log.WithTracer(startingCtx, PackageName, "connect MongoDB", func(ctx context.Context) error {
			cfg := ext.ExtConfig.Mongodb
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			registry := bson.NewRegistryBuilder().
				RegisterCodec(util.GzipJSONType, &util.JSONCodec{}).
				RegisterCodec(reflect.TypeOf(util.Datetime{}), util.NewTimeCodec()).
				Build()
			client, err := mongo.Connect(ctx, mongooptions.Client().ApplyURI(cfg.DSN).SetRegistry(registry))
			if err != nil {
				panic(err)
			}
			mongodbClient = client
			return nil
		})
	}

	if ext.ExtConfig.LocalRedis.Dsn != "" {
		_ = log.WithTracer(startingCtx, PackageName, "connect Redis", func(ctx context.Context) error {
			cfg := ext.ExtConfig.LocalRedis
			opt, err := redis.ParseURL(cfg.Dsn)
			if err != nil {
				panic(err)
			}
			opt.DB = cfg.DB
			if cfg.Password != "" {
				opt.Password = cfg.Password
			}
			client := redis.NewClient(opt)
			client.AddHook(redisotel.NewTracingHook())
			appvalidator.RedisClient = client
			return nil
		})
	}

	if ext.ExtConfig.MinIO.Endpoint != "" {
		_ = log.WithTracer(startingCtx, PackageName, "connect MinIO", func(ctx context.Context) error {
			cfg := ext.ExtConfig.MinIO
			client, err := minio.New(cfg.Endpoint, &minio.Options{
				Creds: credentials.NewStaticV4(cfg.Key, cfg.Secret, ""),
			})
			if err != nil {
				panic(err)
			}
			appvalidator.MinIOClient = client
			return nil
		})
	}

	service := service2.NewValidatorService(mongodbClient)
	validatorAPI := api.NewValidatorAPI(service)

	r := gin.New()
	_ = log.WithTracer(startingCtx, PackageName, "init router", func(ctx context.Context) error {
		r.Use(otelgin.Middleware(ServiceName))
		r.Use(sdkapi.SetRequestLogger)
		api.InitRouter(r, validatorAPI)
		return nil
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.ApplicationConfig.Host, config.ApplicationConfig.Port),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Logger().Fatal("listen: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Logger().Fatal("Server Shutdown:", err)
	}
	log.Logger().Println("Server exiting")

	return nil
}
