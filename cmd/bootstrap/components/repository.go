package components

import (
	"salon-scheduler/internal/infra/cache"
	"salon-scheduler/internal/infra/readstore"
	"salon-scheduler/internal/infra/repository"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewAppointmentRepository,
			fx.As(new(commands.AppointmentRepository)),
			fx.As(new(queries.BookedAppointmentSource)),
		),
		fx.Annotate(
			repository.NewStaffRepository,
			fx.As(new(commands.StaffRepository)),
			fx.As(new(queries.StaffDirectory)),
		),
		fx.Annotate(
			repository.NewCustomerRepository,
			fx.As(new(commands.CustomerRepository)),
		),
		fx.Annotate(
			repository.NewServiceRepository,
			fx.As(new(commands.ServiceRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		// The write path reads schedules straight from Postgres so the
		// conflict check never sees stale cache data.
		repository.NewAvailabilityRepository,
		func(r *repository.AvailabilityRepository) commands.AvailabilityRepository { return r },
		// Read paths go through the Redis lookaside cache.
		NewScheduleCache,
		func(c *cache.AvailabilityCache) shared.DayScheduleSource { return c },
		func(c *cache.AvailabilityCache) commands.ScheduleCacheInvalidator { return c },
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewAppointmentReadStore,
			fx.As(new(queries.AppointmentReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewScheduleCache(client *redis.Client, repo *repository.AvailabilityRepository, cfg config.Config) *cache.AvailabilityCache {
	return cache.NewAvailabilityCache(client, repo, cfg.Redis.CacheTTL)
}
