package bootstrap

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/spurtek/spurtek-leads/internal/config"
	"github.com/spurtek/spurtek-leads/internal/leads"
	"github.com/spurtek/spurtek-leads/internal/notify"
	"github.com/spurtek/spurtek-leads/pkg/logging"
)

// LoadAWSConfig builds the SDK config from static keys when both are set and
// the default credential chain otherwise.
func LoadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	loaders := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretAccessKey) != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	return awsconfig.LoadDefaultConfig(ctx, loaders...)
}

// NewSESClient returns an SES client, pointed at AWS_ENDPOINT_OVERRIDE when set
// (LocalStack).
func NewSESClient(awsCfg aws.Config, cfg *appconfig.Config) *sesv2.Client {
	endpoint := strings.TrimSpace(cfg.AWSEndpointOverride)
	if endpoint == "" {
		return sesv2.NewFromConfig(awsCfg)
	}
	return sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
}

// BuildEmailSender returns the sender for EMAIL_PROVIDER. Without a credential
// it returns the logging stub in development and nil elsewhere.
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	if cfg == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.EmailConfigured() {
		if cfg.IsDevelopment() {
			logger.Info("email not configured, logging notifications instead")
			return notify.NewStubEmailSender(logger)
		}
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(cfg.EmailProvider)) {
	case "ses":
		awsCfg, err := LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load aws config for ses", "error", err)
			return nil
		}
		sender := notify.NewSESSender(NewSESClient(awsCfg, cfg), notify.SESConfig{
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			return nil
		}
		logger.Info("email notifications enabled", "provider", "ses")
		return sender
	default:
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			return nil
		}
		logger.Info("email notifications enabled", "provider", "sendgrid")
		return sender
	}
}

// BuildNotifier wires lead notifications. A nil result disables them.
func BuildNotifier(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) leads.Notifier {
	if logger == nil {
		logger = logging.Default()
	}
	sender := BuildEmailSender(ctx, cfg, logger)
	if sender == nil {
		logger.Warn("email not configured, lead notifications disabled")
		return nil
	}
	notifier := notify.NewLeadNotifier(sender, cfg.LeadsAdminEmail, logger)
	if notifier == nil {
		return nil
	}
	return notifier
}
