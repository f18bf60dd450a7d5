package app

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	svc "github.com/elC0mpa/ecs-chargeback/service"
	awscloudwatch "github.com/elC0mpa/ecs-chargeback/service/aws/cloudwatch"
	awsconfig "github.com/elC0mpa/ecs-chargeback/service/aws/config"
	awscostexplorer "github.com/elC0mpa/ecs-chargeback/service/aws/costexplorer"
	awsec2 "github.com/elC0mpa/ecs-chargeback/service/aws/ec2"
	awsecs "github.com/elC0mpa/ecs-chargeback/service/aws/ecs"
	awss3 "github.com/elC0mpa/ecs-chargeback/service/aws/s3"
	awssts "github.com/elC0mpa/ecs-chargeback/service/aws/sts"
	"github.com/elC0mpa/ecs-chargeback/service/cache"
	"github.com/elC0mpa/ecs-chargeback/service/chargeback"
	"github.com/elC0mpa/ecs-chargeback/service/config"
	datadogsink "github.com/elC0mpa/ecs-chargeback/service/sink/datadog"
	sqlitestore "github.com/elC0mpa/ecs-chargeback/service/sqlite"
)

// App holds the services shared by every entrypoint
type App struct {
	Engine   *chargeback.Engine
	Identity svc.IdentityService

	closers []func() error
}

// New builds the AWS clients, the index cache and the chargeback engine
// described by cfg
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, cfg.Region, cfg.Profile)
	if err != nil {
		return nil, err
	}

	return NewFromAWSConfig(awsCfg, cfg, logger)
}

func NewFromAWSConfig(awsCfg aws.Config, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{Identity: awssts.NewService(awsCfg)}

	var store svc.BlobStore
	switch {
	case cfg.Cache.Bucket != "":
		store = awss3.NewService(awsCfg, cfg.Cache.Bucket)
		logger.Debug("caching instance type indexes in s3", "bucket", cfg.Cache.Bucket, "prefix", cfg.Cache.Prefix)
	case cfg.Cache.Path != "":
		local, err := sqlitestore.NewService(cfg.Cache.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, local.Close)
		store = local
		logger.Debug("caching instance type indexes locally", "path", cfg.Cache.Path)
	default:
		logger.Debug("instance type index cache disabled")
	}

	a.Engine = chargeback.NewEngine(chargeback.Dependencies{
		Clusters: awsecs.NewService(awsCfg, logger),
		Metrics:  awscloudwatch.NewService(awsCfg),
		Billing:  awscostexplorer.NewService(awsCfg),
		Specs:    awsec2.NewService(awsCfg),
		Cache:    cache.NewService(store, cfg.Cache.Prefix, cfg.Cache.TTL, logger),
	}, cfg.Options(), logger)

	return a, nil
}

// DatadogSink returns the Datadog sink, or nil without an API key
func DatadogSink(cfg *config.Config) svc.MetricSink {
	if cfg.Datadog.APIKey == "" {
		return nil
	}
	return datadogsink.NewService(cfg.Datadog.APIKey, cfg.Datadog.MetricPrefix)
}

func (a *App) Close() error {
	var err error
	for _, c := range a.closers {
		if cerr := c(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
