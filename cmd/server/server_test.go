package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/handlers/bestiary/v1alpha1"
	"github.com/KirkDiggler/rpg-encounters/internal/pkg/config"
	creaturerepo "github.com/KirkDiggler/rpg-encounters/internal/repositories/creature"
	"github.com/KirkDiggler/rpg-encounters/internal/testutils"
)

type ServerTestSuite struct {
	suite.Suite
	repo    creaturerepo.Repository
	cleanup func()
	app     *application
	lis     *bufconn.Listener
	conn    *grpc.ClientConn
	ctx     context.Context
}

func (s *ServerTestSuite) SetupTest() {
	s.ctx = context.Background()

	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := creaturerepo.NewRedis(&creaturerepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	for _, c := range testutils.FixtureBestiary() {
		_, err := repo.Put(s.ctx, &creaturerepo.PutInput{Creature: c})
		s.Require().NoError(err)
	}
	s.repo = repo

	s.app, err = newApplication(&applicationConfig{
		Repository:   repo,
		Seed:         7,
		TickInterval: 10 * time.Millisecond,
		Expiration:   time.Hour,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s.Require().NoError(err)

	s.lis = bufconn.Listen(1024 * 1024)
	s.conn, err = grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return s.lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
}

func (s *ServerTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.app.server.Stop()
	s.cleanup()
}

func (s *ServerTestSuite) healthStatus(service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	resp, err := grpc_health_v1.NewHealthClient(s.conn).Check(s.ctx, &grpc_health_v1.HealthCheckRequest{
		Service: service,
	})
	s.Require().NoError(err)
	return resp.GetStatus()
}

func (s *ServerTestSuite) TestHealthFollowsFirstRefresh() {
	go func() { _ = s.app.server.Serve(s.lis) }()

	s.Equal(grpc_health_v1.HealthCheckResponse_SERVING, s.healthStatus(""))
	s.Equal(grpc_health_v1.HealthCheckResponse_NOT_SERVING, s.healthStatus(v1alpha1.EncounterServiceName))
	s.Equal(grpc_health_v1.HealthCheckResponse_NOT_SERVING, s.healthStatus(v1alpha1.BestiaryServiceName))

	_, err := v1alpha1.NewEncounterServiceClient(s.conn).GenerateEncounter(s.ctx, &v1alpha1.GenerateEncounterRequest{
		PartyLevels: []int{1, 1, 1, 1},
	})
	s.Equal(codes.Unavailable, status.Code(err))

	snap, err := s.app.refresher.Refresh(s.ctx)
	s.Require().NoError(err)
	s.Equal(len(testutils.FixtureBestiary()), snap.Len())

	s.Eventually(func() bool {
		return s.healthStatus(v1alpha1.EncounterServiceName) == grpc_health_v1.HealthCheckResponse_SERVING &&
			s.healthStatus(v1alpha1.BestiaryServiceName) == grpc_health_v1.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)

	got, err := v1alpha1.NewBestiaryServiceClient(s.conn).GetCreature(s.ctx, &v1alpha1.GetCreatureRequest{ID: 9})
	s.Require().NoError(err)
	s.Equal("Owlbear", got.Creature.Name)
}

func (s *ServerTestSuite) TestRunRefreshesAndStops() {
	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)
	go func() { done <- s.app.run(ctx, s.lis) }()

	s.Eventually(func() bool {
		return s.healthStatus(v1alpha1.BestiaryServiceName) == grpc_health_v1.HealthCheckResponse_SERVING
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := v1alpha1.NewEncounterServiceClient(s.conn).GenerateEncounter(s.ctx, &v1alpha1.GenerateEncounterRequest{
		PartyLevels:    []int{4, 4, 4, 4},
		AdventureGroup: "MATED_PAIR",
	})
	s.Require().NoError(err)
	s.Equal(2, resp.Count)
	s.Equal(80, resp.XP)

	cancel()
	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(5 * time.Second):
		s.Fail("run did not stop")
	}
}

func (s *ServerTestSuite) TestRegisteredServices() {
	info := s.app.server.GetServiceInfo()

	names := make([]string, 0, len(info))
	for name := range info {
		names = append(names, name)
	}
	s.ElementsMatch([]string{
		grpc_health_v1.Health_ServiceDesc.ServiceName,
		v1alpha1.EncounterServiceName,
		v1alpha1.BestiaryServiceName,
	}, names)

	for _, name := range bestiaryServices {
		s.Empty(info[name].Metadata, name)
	}
}

func (s *ServerTestSuite) TestRecoverPanic() {
	testCases := []struct {
		name  string
		value any
		code  codes.Code
	}{
		{name: "coded error", value: errors.FailedPrecondition("no levels"), code: codes.FailedPrecondition},
		{name: "wrapped coded error", value: errors.Wrap(errors.NotFound("gone"), "lookup"), code: codes.NotFound},
		{name: "plain error", value: io.EOF, code: codes.Internal},
		{name: "string", value: "boom", code: codes.Internal},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := recoverPanic(s.ctx, tc.value)
			s.Equal(tc.code, status.Code(err))
		})
	}
}

func (s *ServerTestSuite) TestNewLogger() {
	testCases := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "text", level: "debug", format: config.LogFormatText},
		{name: "json", level: "warn", format: "JSON"},
		{name: "bad level", level: "loud", format: config.LogFormatText, wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			logger, err := newLogger(&config.Config{LogLevel: tc.level, LogFormat: tc.format}, io.Discard)
			if tc.wantErr {
				s.Error(err)
				return
			}
			s.Require().NoError(err)
			s.NotNil(logger)
		})
	}
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
