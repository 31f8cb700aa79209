//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/joho/godotenv"

	"github.com/suparena/reactivestore/errors"
	"github.com/suparena/reactivestore/persister"
	"github.com/suparena/reactivestore/persister/testmodels"
)

func getOrderPersister(t *testing.T) *Persister {
	t.Helper()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}

	awsAccessKey := os.Getenv("AWS_ACCESS_KEY")
	awsSecretKey := os.Getenv("AWS_SECRET_KEY")
	region := os.Getenv("AWS_REGION")
	tableName := os.Getenv("AWS_DDB_TABLE")
	if tableName == "" {
		t.Skip("AWS_DDB_TABLE not set")
	}

	client, err := NewDynamoDBClient(awsAccessKey, awsSecretKey, region)
	if err != nil {
		t.Fatalf("failed to create DynamoDB client: %v", err)
	}

	p, err := NewPersister[testmodels.Order](client, tableName, persister.Mapping{
		EntityName:   "Order",
		IDField:      "ID",
		VersionField: "Version",
		Properties:   testmodels.OrderMappingProperties,
	})
	if err != nil {
		t.Fatalf("failed to create persister: %v", err)
	}
	return p
}

func TestPersisterRoundTrip(t *testing.T) {
	p := getOrderPersister(t)
	ctx := context.Background()

	ct := strfmt.DateTime(time.Now())
	order := &testmodels.Order{
		ID:        "o-integration-1",
		Total:     42.50,
		Status:    "new",
		CreatedAt: &ct,
	}
	state, err := p.GetPropertyValues(order)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := p.InsertWithID(ctx, order.ID, state, order).Get(ctx); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	defer func() {
		_, _ = p.Delete(ctx, order.ID, nil, order).Get(ctx)
	}()

	loaded, err := p.Load(ctx, order.ID, nil, persister.LockOptions{}).Get(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected a row")
	}
	got := loaded.(*testmodels.Order)
	if got.Total != order.Total || got.Status != order.Status {
		t.Errorf("loaded state mismatch: %+v", got)
	}
}

func TestPersisterVersionCondition(t *testing.T) {
	p := getOrderPersister(t)
	ctx := context.Background()

	order := &testmodels.Order{ID: "o-integration-2", Status: "new", Version: 0}
	state, err := p.GetPropertyValues(order)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.InsertWithID(ctx, order.ID, state, order).Get(ctx); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	defer func() {
		_, _ = p.Delete(ctx, order.ID, nil, order).Get(ctx)
	}()

	// Stale previous version must fail the conditional write.
	state[2] = int64(5)
	_, err = p.Update(ctx, order.ID, state, int64(4), order).Get(ctx)
	if !errors.IsOptimisticLock(err) {
		t.Errorf("expected optimistic lock error, got %v", err)
	}
}
