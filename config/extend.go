package config

var ExtConfig Extend

// Extend holds the yaml `extend:` block of settings.yml.
//
//	extend:
//	  inference:
//	    baseurl: https://api.openai.com/v1
//
// Read anywhere through config.ExtConfig.
type Extend struct {
	Inference  InferenceConfig `yaml:"inference"`
	LocalRedis RedisConfig     `yaml:"localredis"`
	Mongodb    MongodbConfig   `yaml:"mongodb"`
	MinIO      MinIOConfig     `yaml:"minio"`
}

type InferenceConfig struct {
	BaseURL        string  `yaml:"baseurl"`
	Model          string  `yaml:"model"`
	TimeoutSeconds int     `yaml:"timeoutseconds"`
	Temperature    float64 `yaml:"temperature"`
}

type RedisConfig struct {
	Dsn      string `yaml:"dsn"`
	DB       int    `yaml:"db"`
	Password string `yaml:"password"`
}

type MongodbConfig struct {
	DSN         string `yaml:"dsn"`
	ValidatorDB string `yaml:"validatordb"`
}

type MinIOConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Key          string `yaml:"key"`
	Secret       string `yaml:"secret"`
	ReportBucket string `yaml:"reportbucket"`
}
