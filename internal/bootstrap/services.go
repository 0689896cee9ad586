package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/docai/flow-studio/config"
	"github.com/docai/flow-studio/internal/data"
	"github.com/docai/flow-studio/internal/service"
)

// ServiceContainer holds all initialized services.
type ServiceContainer struct {
	Auth      *service.AuthService
	Templates *service.TemplateService
	Documents *service.DocumentService
	AIWriter  *service.AIWriterService
	Creator   *service.CreatorService
}

// ServiceDeps contains the shared dependencies services are built from.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories and services from shared infrastructure.
func NewServices(deps *ServiceDeps) ServiceContainer {
	templateRepo := data.NewTemplateRepo(deps.DB)
	documentRepo := data.NewDocumentRepo(deps.DB)
	applicationRepo := data.NewCreatorApplicationRepo(deps.DB)

	return ServiceContainer{
		Auth: BuildAuthService(AuthConfig{
			Auth:        deps.Config.Auth,
			RedisClient: deps.RedisClient,
			Logger:      deps.Logger,
		}),
		Templates: service.NewTemplateService(service.TemplateServiceOptions{
			Templates: templateRepo,
		}),
		Documents: service.NewDocumentService(service.DocumentServiceOptions{
			Documents: documentRepo,
		}),
		AIWriter: service.NewAIWriterService(service.AIWriterServiceOptions{}),
		Creator: service.NewCreatorService(service.CreatorServiceOptions{
			Applications: applicationRepo,
			Templates:    templateRepo,
		}),
	}
}
