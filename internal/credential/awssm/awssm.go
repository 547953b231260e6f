// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package awssm adapts AWS Secrets Manager to credential.SecretStore.
package awssm

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/pdiddy/books-explorer/pkg/types"
)

// DefaultRegion is used when neither AWS_REGION nor AWS_DEFAULT_REGION is set.
const DefaultRegion = "ap-northeast-1"

// GetSecretValueAPI is the subset of the Secrets Manager client used here.
type GetSecretValueAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Store reads secrets from AWS Secrets Manager.
type Store struct {
	client GetSecretValueAPI
}

// New wraps an existing client.
func New(client GetSecretValueAPI) *Store {
	return &Store{client: client}
}

// NewFromConfig loads the default AWS configuration for the configured
// region and builds a Secrets Manager client.
func NewFromConfig(ctx context.Context, cfg types.SecretStoreConfig) (*Store, error) {
	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return New(secretsmanager.NewFromConfig(awsCfg)), nil
}

// GetSecret returns the SecretString of the named secret. A binary-only
// secret yields "".
func (s *Store) GetSecret(ctx context.Context, name string) (string, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("GetSecretValue: %w", err)
	}
	return aws.ToString(out.SecretString), nil
}
