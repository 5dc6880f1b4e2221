package envvar

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	ENVIRONMENT = "ENVIRONMENT"

	AWS_ACCESS_KEY_ID     = "AWS_ACCESS_KEY_ID"
	AWS_SECRET_ACCESS_KEY = "AWS_SECRET_ACCESS_KEY"
	AWS_REGION            = "AWS_REGION"

	RABBITMQ_URL        = "RABBITMQ_URL"
	RABBITMQ_QUEUE_NAME = "RABBITMQ_QUEUE_NAME"

	GOOGLE_CLOUD_KEY                 = "GOOGLE_CLOUD_KEY"
	GOOGLE_CLOUD_STORAGE_BUCKET_NAME = "GOOGLE_CLOUD_STORAGE_BUCKET_NAME"

	FFMPEG_BIN_PATH  = "FFMPEG_BIN_PATH"
	FFPROBE_BIN_PATH = "FFPROBE_BIN_PATH"

	VOCAL_SPLIT_WORKING_DIR_PATH  = "VOCAL_SPLIT_WORKING_DIR_PATH"
	VOCAL_SPLIT_ENABLED           = "VOCAL_SPLIT_ENABLED"
	VOCAL_SPLIT_CORRECTED_ANCHORS = "VOCAL_SPLIT_CORRECTED_ANCHORS"
	VOCAL_SPLIT_JOB_TIMEOUT       = "VOCAL_SPLIT_JOB_TIMEOUT"

	CHART_REGISTRY_PATH         = "CHART_REGISTRY_PATH"
	CHART_REGISTRY_SQLITE_PATH  = "CHART_REGISTRY_SQLITE_PATH"
	CHART_REGISTRY_DYNAMO_TABLE = "CHART_REGISTRY_DYNAMO_TABLE"

	SERVER_PORT        = "SERVER_PORT"
	ALLOWED_FE_ORIGINS = "ALLOWED_FE_ORIGINS"
)

func MustGet(key string) string {
	val, isSet := os.LookupEnv(key)
	if !isSet {
		panic(fmt.Sprintf("No env variable found for key %s", key))
	}

	if val == "" {
		panic(fmt.Sprintf("Env variable is empty for key %s", key))
	}

	return val
}

func GetOr(key string, fallback string) string {
	val, isSet := os.LookupEnv(key)
	if !isSet || val == "" {
		return fallback
	}

	return val
}

func GetBool(key string, fallback bool) bool {
	val := GetOr(key, "")
	if val == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		panic(fmt.Sprintf("Env variable %s is not a boolean: %s", key, val))
	}

	return parsed
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	val := GetOr(key, "")
	if val == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(val)
	if err != nil {
		panic(fmt.Sprintf("Env variable %s is not a duration: %s", key, val))
	}

	return parsed
}
