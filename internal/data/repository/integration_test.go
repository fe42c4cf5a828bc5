//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/data/repository"
	"ticket-booking/internal/usecase"
	"ticket-booking/pkg/database"
	"ticket-booking/pkg/utils"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.uber.org/zap"
)

const (
	dbName         = "ticket_booking"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"
)

// StorageSuite runs the pgx repositories and the redis seating cache against real containers.
// Run with: go test -tags integration ./internal/data/repository/...
type StorageSuite struct {
	suite.Suite
	pg    *postgres.PostgresContainer
	cache *tcredis.RedisContainer
	db    database.PgxIface
	rdb   *redis.Client
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupSuite() {
	ctx := context.Background()

	pg, err := postgres.Run(ctx, dbImageName,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.pg = pg

	host, err := pg.Host(ctx)
	s.Require().NoError(err)
	port, err := pg.MappedPort(ctx, "5432/tcp")
	s.Require().NoError(err)

	config := utils.DatabaseConfig{
		Host:     host,
		Port:     port.Port(),
		Name:     dbName,
		User:     dbUser,
		Password: dbPassword,
		MaxConns: 4,
	}
	s.Require().NoError(database.Migrate(config))
	// a second run is a no-op
	s.Require().NoError(database.Migrate(config))

	s.db, err = database.InitDB(config)
	s.Require().NoError(err)

	cache, err := tcredis.Run(ctx, cacheImageName)
	s.Require().NoError(err)
	s.cache = cache

	cacheHost, err := cache.Host(ctx)
	s.Require().NoError(err)
	cachePort, err := cache.MappedPort(ctx, "6379/tcp")
	s.Require().NoError(err)

	s.rdb = redis.NewClient(&redis.Options{Addr: cacheHost + ":" + cachePort.Port()})
}

func (s *StorageSuite) TearDownSuite() {
	if s.rdb != nil {
		_ = s.rdb.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	if s.cache != nil {
		_ = s.cache.Terminate(context.Background())
	}
	if s.pg != nil {
		_ = s.pg.Terminate(context.Background())
	}
}

func (s *StorageSuite) SetupTest() {
	ctx := context.Background()
	_, err := s.db.Exec(ctx, `TRUNCATE movies, bookings RESTART IDENTITY`)
	s.Require().NoError(err)
	s.Require().NoError(s.rdb.FlushAll(ctx).Err())
}

func (s *StorageSuite) newRepository() *repository.Repository {
	return repository.NewRepository(s.db, zap.NewNop()).
		WithSeatingCache(s.rdb, repository.DefaultSeatingKey, time.Minute, zap.NewNop())
}

func (s *StorageSuite) TestMovieRepository_CRUDAndPopularity() {
	ctx := context.Background()
	repo := s.newRepository()

	heat := &entity.Movie{Title: "Heat", ReleaseDate: time.Date(1995, 12, 15, 0, 0, 0, 0, time.UTC), DurationInMinutes: 170, Genre: "crime"}
	alien := &entity.Movie{Title: "Alien", ReleaseDate: time.Date(1979, 5, 25, 0, 0, 0, 0, time.UTC), DurationInMinutes: 117, Genre: "horror"}
	s.Require().NoError(repo.Movie.Create(ctx, heat))
	s.Require().NoError(repo.Movie.Create(ctx, alien))
	s.NotZero(heat.ID)
	s.Greater(alien.ID, heat.ID)

	s.Require().NoError(repo.Movie.IncrementPopularity(ctx, alien.ID))

	all, err := repo.Movie.FindAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Alien", all[0].Title)
	s.Equal(int64(1), all[0].Popularity)

	alien.Title = "Alien (Director's Cut)"
	alien.Popularity = 0
	s.Require().NoError(repo.Movie.Update(ctx, alien))
	s.Equal(int64(1), alien.Popularity)

	got, err := repo.Movie.FindByID(ctx, alien.ID)
	s.Require().NoError(err)
	s.Equal("Alien (Director's Cut)", got.Title)
	s.True(got.ReleaseDate.Equal(alien.ReleaseDate))

	s.Require().NoError(repo.Movie.Delete(ctx, heat.ID))
	missing, err := repo.Movie.FindByID(ctx, heat.ID)
	s.Require().NoError(err)
	s.Nil(missing)

	s.ErrorIs(repo.Movie.Delete(ctx, heat.ID), repository.ErrNotFound)
	s.ErrorIs(repo.Movie.IncrementPopularity(ctx, heat.ID), repository.ErrNotFound)
}

func (s *StorageSuite) TestBookingFlow_SurvivesRestart() {
	ctx := context.Background()
	repo := s.newRepository()
	cfg := &utils.Config{Theatre: utils.TheatreConfig{Rows: 3, Cols: 3}}

	movie := &entity.Movie{Title: "Up", ReleaseDate: time.Date(2009, 5, 29, 0, 0, 0, 0, time.UTC), DurationInMinutes: 96, Genre: "animation"}
	s.Require().NoError(repo.Movie.Create(ctx, movie))

	first, err := usecase.NewService(repo, cfg, zap.NewNop())
	s.Require().NoError(err)

	var booked []entity.Booking
	for _, seat := range [][2]int{{0, 0}, {2, 1}, {1, 2}} {
		b, err := first.Booking.RequestBooking(ctx, movie.ID, seat[0], seat[1])
		s.Require().NoError(err)
		booked = append(booked, *b)
	}

	// cache fill and invalidation against a real redis
	s.Equal(first.Booking.GetSeatingSnapshot(), first.Booking.CachedSeating(ctx))
	_, err = first.Booking.RequestBooking(ctx, movie.ID, 0, 1)
	s.Require().NoError(err)
	s.Equal(1, first.Booking.CachedSeating(ctx)[0][1])

	ledger, err := repo.Booking.LoadAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(ledger, 4)
	if diff := cmp.Diff(booked, ledger[:3], cmpopts.EquateApproxTime(time.Millisecond)); diff != "" {
		s.Failf("ledger mismatch", "(-want +got):\n%s", diff)
	}

	stored, err := repo.Movie.FindByID(ctx, movie.ID)
	s.Require().NoError(err)
	s.Equal(int64(4), stored.Popularity)

	second, err := usecase.NewService(s.newRepository(), cfg, zap.NewNop())
	s.Require().NoError(err)

	restored, err := second.Booking.RestoreSeating(ctx)
	s.Require().NoError(err)
	s.Equal(4, restored)
	s.Equal(first.Booking.GetSeatingSnapshot(), second.Booking.GetSeatingSnapshot())
	s.Zero(second.Booking.QueueDepth())

	_, err = second.Booking.RequestBooking(ctx, movie.ID, 2, 1)
	s.ErrorIs(err, usecase.ErrSeatAlreadyBooked)
}
