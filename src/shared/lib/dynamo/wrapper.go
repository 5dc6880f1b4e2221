package dynamolib

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/cockroachdb/errors"
	"github.com/guregu/dynamo"
	"github.com/veedubyou/vocal-split/src/shared/config"
)

var encoder = dynamodbattribute.NewEncoder(func(e *dynamodbattribute.Encoder) {
	e.MarshalOptions.EnableEmptyCollections = true
	e.NullEmptyString = false
	e.NullEmptyByteSlice = false
})

// putMap keeps empty section lists as lists instead of dropping the attribute
type putMap map[string]any

func (p putMap) MarshalDynamo() (*dynamodb.AttributeValue, error) {
	var fields map[string]any = p
	return encoder.Encode(fields)
}

func NewDynamoDB(dynamoConfig config.Dynamo) (DynamoDBWrapper, error) {
	sess, err := session.NewSession()
	if err != nil {
		return DynamoDBWrapper{}, errors.Wrap(err, "Failed to create AWS session")
	}

	return NewDynamoDBWrapper(dynamo.New(sess, dynamoConfig.AWSConfig())), nil
}

func NewDynamoDBWrapper(db *dynamo.DB) DynamoDBWrapper {
	return DynamoDBWrapper{DB: db}
}

type DynamoDBWrapper struct {
	*dynamo.DB
}

type DynamoTableWrapper struct {
	dynamo.Table
}

func (d DynamoDBWrapper) Table(tableName string) DynamoTableWrapper {
	return DynamoTableWrapper{
		Table: d.DB.Table(tableName),
	}
}

func (d DynamoTableWrapper) Put(input map[string]any) *dynamo.Put {
	return d.Table.Put(putMap(input))
}

func ValidateStringField(item map[string]*dynamodb.AttributeValue, key string) error {
	value, ok := item[key]
	if !ok || value == nil {
		return errors.Newf("Item is missing the %s field", key)
	}

	if value.S == nil || *value.S == "" {
		return errors.Newf("Field %s is not a non-empty string", key)
	}

	return nil
}
