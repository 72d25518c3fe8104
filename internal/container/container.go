package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-doctor-directory/config"
	"github.com/oksasatya/campus-doctor-directory/internal/application"
	"github.com/oksasatya/campus-doctor-directory/internal/domain/repository"
	pginfra "github.com/oksasatya/campus-doctor-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/campus-doctor-directory/pkg/helpers"
	"github.com/oksasatya/campus-doctor-directory/pkg/mailer"
)

// Container holds the resource handles built once in main and the services
// wired from them. It is passed explicitly; nothing here is global.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	PGPool *pgxpool.Pool
	Redis  *redis.Client
	ES     *elasticsearch.Client
	Mailer mailer.Sender

	Auth      *application.AuthService
	Directory *application.DirectoryService

	closers []func()
}

// New opens every configured backend. Optional backends (Redis,
// Elasticsearch) are left nil when not configured.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		return nil, err
	}
	c.PGPool = pool
	c.closers = append(c.closers, pool.Close)

	if rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rdb != nil {
		c.Redis = rdb
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	c.ES = es

	sender, closeSender, err := NewMailSender(cfg, logger)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Mailer = sender
	if closeSender != nil {
		c.closers = append(c.closers, closeSender)
	}

	c.Wire()
	return c, nil
}

// Wire builds the services from the resource handles already set on c.
func (c *Container) Wire() {
	var (
		users   repository.UserRepository
		doctors repository.DirectoryRepository
	)
	if c.PGPool != nil {
		users = pginfra.NewUserRepository(c.PGPool)
		doctors = pginfra.NewDirectoryRepository(c.PGPool)
	}
	c.Auth = application.NewAuthService(users, c.Mailer, c.Logger, c.Config.AppName, c.Config.EmailDomains())
	c.Directory = application.NewDirectoryService(doctors, c.Logger, c.ES, c.Config.ESDoctorsIndex)
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// NewMailSender picks the delivery backend named by MAIL_PROVIDER. The
// returned close func is nil when the sender holds no connection.
func NewMailSender(cfg *config.Config, logger *logrus.Logger) (mailer.Sender, func(), error) {
	switch cfg.MailProvider {
	case "", "log":
		return mailer.NewLogSender(logger), nil, nil
	case "mailgun":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			return nil, nil, errors.New("mailgun not configured: MAILGUN_DOMAIN, MAILGUN_API_KEY and MAILGUN_SENDER are required")
		}
		return mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender), nil, nil
	case "smtp":
		if cfg.SMTPHost == "" || cfg.SMTPFrom == "" {
			return nil, nil, errors.New("smtp not configured: SMTP_HOST and SMTP_FROM are required")
		}
		return mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom), nil, nil
	case "queue":
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return nil, nil, fmt.Errorf("rabbitmq publisher: %w", err)
		}
		return mailer.NewQueueSender(pub), pub.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown MAIL_PROVIDER %q", cfg.MailProvider)
	}
}
