/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/suparena/reactivestore/errors"
	"github.com/suparena/reactivestore/future"
	"github.com/suparena/reactivestore/persister"
)

// Persister implements persister.EntityPersister against a DynamoDB table
// using single-table layout: each row is stored under a partition key of
// the form "<EntityName>#<id>" with an EntityType discriminator attribute.
// Optimistic version checks are expressed as conditional expressions.
type Persister struct {
	*persister.Base

	client    *sdk.Client
	tableName string
	// versionAttr is the marshaled attribute name of the version field.
	versionAttr string
}

// NewDynamoDBClient initializes a DynamoDB client using AWS credentials.
func NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg), nil
}

// NewPersister constructs a DynamoDB-backed persister for the struct type T.
func NewPersister[T any](client *sdk.Client, tableName string, mapping persister.Mapping, opts ...persister.BaseOption) (*Persister, error) {
	base, err := persister.NewBase[T](mapping, opts...)
	if err != nil {
		return nil, err
	}
	p := &Persister{
		Base:      base,
		client:    client,
		tableName: tableName,
	}
	if base.IsVersioned() {
		p.versionAttr = attributeName(base.MappedType(), mapping.VersionField)
	}
	return p, nil
}

// attributeName resolves the marshaled attribute name of a struct field,
// honoring dynamodbav and json tags the way attributevalue does.
func attributeName(typ reflect.Type, field string) string {
	f, ok := typ.FieldByName(field)
	if !ok {
		return field
	}
	for _, tag := range []string{"dynamodbav", "json"} {
		if v, ok := f.Tag.Lookup(tag); ok {
			name := strings.Split(v, ",")[0]
			if name != "" && name != "-" {
				return name
			}
		}
	}
	return field
}

func (d *Persister) partitionKey(id any) string {
	return fmt.Sprintf("%s#%v", d.EntityName(), id)
}

// item builds the stored attribute map from a state array: the state is
// applied onto a scratch instance together with the identifier, then
// marshaled, then decorated with key and discriminator attributes.
func (d *Persister) item(id any, state []any) (map[string]types.AttributeValue, error) {
	scratch := d.NewInstance()
	if err := d.SetIdentifier(scratch, id); err != nil {
		return nil, err
	}
	if err := d.SetPropertyValues(scratch, state); err != nil {
		return nil, err
	}
	av, err := attributevalue.MarshalMap(scratch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	av["PK"] = &types.AttributeValueMemberS{Value: d.partitionKey(id)}
	av["EntityType"] = &types.AttributeValueMemberS{Value: d.EntityName()}
	return av, nil
}

// Load materializes the row for id, or resolves to nil when absent. A lock
// mode other than NONE requests a strongly consistent read; DynamoDB has no
// row locks to acquire.
func (d *Persister) Load(ctx context.Context, id any, instance any, lock persister.LockOptions) *future.Future[any] {
	return future.New(ctx, func(ctx context.Context) (any, error) {
		out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
			TableName:      &d.tableName,
			Key:            d.key(id),
			ConsistentRead: aws.Bool(lock.Mode != persister.LockNone),
		})
		if err != nil {
			return nil, fmt.Errorf("GetItem error: %w", err)
		}
		if out.Item == nil {
			return nil, nil
		}

		target := instance
		if target == nil {
			target = d.NewInstance()
		}
		if err := attributevalue.UnmarshalMap(out.Item, target); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item: %w", err)
		}
		return target, nil
	})
}

// Insert stores a row without a caller-resolved identifier. DynamoDB has no
// server-side generation, so the storage layer mints a UUID and returns it,
// which is what post-insert generation means for this backend.
func (d *Persister) Insert(ctx context.Context, state []any, entity any) *future.Future[any] {
	return future.New(ctx, func(ctx context.Context) (any, error) {
		id := uuid.NewString()
		if err := d.put(ctx, id, state); err != nil {
			return nil, err
		}
		return any(id), nil
	})
}

// InsertWithID stores a row under a pre-resolved identifier.
func (d *Persister) InsertWithID(ctx context.Context, id any, state []any, entity any) *future.Future[struct{}] {
	return future.New(ctx, func(ctx context.Context) (struct{}, error) {
		var none struct{}
		if err := d.put(ctx, id, state); err != nil {
			return none, err
		}
		return none, nil
	})
}

func (d *Persister) put(ctx context.Context, id any, state []any) error {
	av, err := d.item(id, state)
	if err != nil {
		return err
	}
	condition := "attribute_not_exists(PK)"
	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName:           &d.tableName,
		Item:                av,
		ConditionExpression: &condition,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Update rewrites the row. When previousVersion is non-nil the write is
// conditioned on the stored version still matching; a failed condition
// surfaces as an optimistic lock error.
func (d *Persister) Update(ctx context.Context, id any, state []any, previousVersion any, entity any) *future.Future[struct{}] {
	return future.New(ctx, func(ctx context.Context) (struct{}, error) {
		var none struct{}
		av, err := d.item(id, state)
		if err != nil {
			return none, err
		}

		input := &sdk.PutItemInput{
			TableName: &d.tableName,
			Item:      av,
		}
		if previousVersion != nil && d.versionAttr != "" {
			prev, err := attributevalue.Marshal(previousVersion)
			if err != nil {
				return none, fmt.Errorf("failed to marshal version: %w", err)
			}
			condition := "#ver = :prev"
			input.ConditionExpression = &condition
			input.ExpressionAttributeNames = map[string]string{"#ver": d.versionAttr}
			input.ExpressionAttributeValues = map[string]types.AttributeValue{":prev": prev}
		}

		if _, err := d.client.PutItem(ctx, input); err != nil {
			var cfe *types.ConditionalCheckFailedException
			if stderrors.As(err, &cfe) {
				return none, errors.NewOptimisticLockError(d.EntityName(), id, previousVersion)
			}
			return none, fmt.Errorf("PutItem failed: %w", err)
		}
		return none, nil
	})
}

// Delete removes the row, conditioned on the stored version when non-nil.
func (d *Persister) Delete(ctx context.Context, id any, version any, entity any) *future.Future[struct{}] {
	return future.New(ctx, func(ctx context.Context) (struct{}, error) {
		var none struct{}

		input := &sdk.DeleteItemInput{
			TableName: &d.tableName,
			Key:       d.key(id),
		}
		exists := "attribute_exists(PK)"
		input.ConditionExpression = &exists
		if version != nil && d.versionAttr != "" {
			prev, err := attributevalue.Marshal(version)
			if err != nil {
				return none, fmt.Errorf("failed to marshal version: %w", err)
			}
			condition := "attribute_exists(PK) AND #ver = :prev"
			input.ConditionExpression = &condition
			input.ExpressionAttributeNames = map[string]string{"#ver": d.versionAttr}
			input.ExpressionAttributeValues = map[string]types.AttributeValue{":prev": prev}
		}

		if _, err := d.client.DeleteItem(ctx, input); err != nil {
			var cfe *types.ConditionalCheckFailedException
			if stderrors.As(err, &cfe) {
				return none, errors.NewOptimisticLockError(d.EntityName(), id, version)
			}
			return none, fmt.Errorf("failed to delete item in DynamoDB: %w", err)
		}
		return none, nil
	})
}

func (d *Persister) key(id any) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: d.partitionKey(id)},
	}
}
