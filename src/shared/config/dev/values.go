package dev

import "github.com/veedubyou/vocal-split/src/shared/config"

// DynamoDB
const (
	DynamoAccessKeyID     = "local"
	DynamoSecretAccessKey = "local"
	DynamoDBHost          = "http://localhost:8000"
	DynamoDBRegion        = "localhost"
	ChartsTableName       = "Charts"
)

var DynamoConfig = config.LocalDynamo{
	AccessKeyID:     DynamoAccessKeyID,
	SecretAccessKey: DynamoSecretAccessKey,
	Region:          DynamoDBRegion,
	Host:            DynamoDBHost,
}

// RabbitMQ
const (
	RabbitMQHost      = "amqp://localhost:5672"
	RabbitMQQueueName = "vocal-split-dev"
)

// Cloud storage, served by fake-gcs-server
const (
	CloudStorageHost     = "http://localhost:4443/storage/v1/b"
	CloudStorageEndpoint = "http://localhost:4443/storage/v1/"
	CloudStorageBucket   = "vocal-split-dev"
)

var CloudStorageConfig = config.LocalCloudStorage{
	StorageHost:  CloudStorageHost,
	HostEndpoint: CloudStorageEndpoint,
	BucketName:   CloudStorageBucket,
}

// Server
const (
	ServerPort = ":5020"
)

// Chart registry, relative to the project root
const (
	ChartRegistryFile = "wd/charts.json"
)
