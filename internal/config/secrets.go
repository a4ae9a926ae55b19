// Package config provides configuration management for the FuturoLogia service.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

const (
	errLoadAWSConfig           = "failed to load AWS config: %w"
	errGetSecretFromAWSSecrets = "failed to get secret from AWS Secrets Manager: %w"
	errParseSecretJSON         = "failed to parse secret JSON: %w"
	errParseSecretBinary       = "failed to parse secret binary: %w"
)

var errNoSecretDataFound = errors.New("no secret data found in AWS Secrets Manager")

// SecretsOverlay represents the structure of secrets stored in AWS Secrets Manager
type SecretsOverlay struct {
	DatabasePassword string `json:"database_password"`
	FootballAPIKey   string `json:"football_api_key"`
}

// SecretsSettings says whether and where to fetch secrets from
type SecretsSettings struct {
	Enabled    bool
	Region     string
	SecretName string
}

// SecretsSettingsFromEnv reads AWS_SECRETS_ENABLED, AWS_REGION and AWS_SECRET_NAME
func SecretsSettingsFromEnv() (SecretsSettings, error) {
	s := SecretsSettings{
		Enabled:    os.Getenv("AWS_SECRETS_ENABLED") == "true",
		Region:     os.Getenv("AWS_REGION"),
		SecretName: os.Getenv("AWS_SECRET_NAME"),
	}
	if s.Enabled && (s.Region == "" || s.SecretName == "") {
		return s, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
	}
	return s, nil
}

// fetchSecretsFromAWS retrieves secrets from AWS Secrets Manager
func fetchSecretsFromAWS(ctx context.Context, region string, secretName string) (*SecretsOverlay, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf(errLoadAWSConfig, err)
	}

	client := secretsmanager.NewFromConfig(awsCfg)
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	}

	result, err := client.GetSecretValue(ctx, input)
	if err != nil {
		return nil, fmt.Errorf(errGetSecretFromAWSSecrets, err)
	}

	return parseSecretData(result)
}

// parseSecretData parses secret data from AWS response
func parseSecretData(result *secretsmanager.GetSecretValueOutput) (*SecretsOverlay, error) {
	var secrets SecretsOverlay
	switch {
	case result.SecretString != nil:
		if err := json.Unmarshal([]byte(*result.SecretString), &secrets); err != nil {
			return nil, fmt.Errorf(errParseSecretJSON, err)
		}
	case result.SecretBinary != nil:
		if err := json.Unmarshal(result.SecretBinary, &secrets); err != nil {
			return nil, fmt.Errorf(errParseSecretBinary, err)
		}
	default:
		return nil, errNoSecretDataFound
	}
	return &secrets, nil
}

// overlaySecretsOnConfig applies secrets to configuration and returns the
// configuration keys that were replaced
func overlaySecretsOnConfig(cfg *Config, secrets *SecretsOverlay) []string {
	var applied []string
	if secrets.DatabasePassword != "" {
		cfg.Database.Password = secrets.DatabasePassword
		applied = append(applied, "database.password")
	}
	if secrets.FootballAPIKey != "" {
		cfg.FootballAPI.APIKey = secrets.FootballAPIKey
		applied = append(applied, "football_api.api_key")
	}
	return applied
}

// LoadSecretsFromAWS retrieves secrets from AWS Secrets Manager and overlays them onto the configuration
func LoadSecretsFromAWS(ctx context.Context, cfg *Config, region string, secretName string) ([]string, error) {
	secrets, err := fetchSecretsFromAWS(ctx, region, secretName)
	if err != nil {
		return nil, err
	}

	return overlaySecretsOnConfig(cfg, secrets), nil
}
