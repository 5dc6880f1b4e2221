package prod

const (
	GOOGLE_STORAGE_HOST = "https://storage.googleapis.com"
	DynamoDBRegion      = "us-east-2"
	ChartsTableName     = "Charts"
)
