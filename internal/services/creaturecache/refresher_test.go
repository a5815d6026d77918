package creaturecache_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-encounters/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-encounters/internal/repositories/creature"
	creaturemock "github.com/KirkDiggler/rpg-encounters/internal/repositories/creature/mock"
	"github.com/KirkDiggler/rpg-encounters/internal/services/creaturecache"
	"github.com/KirkDiggler/rpg-encounters/internal/testutils"
)

type RefresherTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockRepo  *creaturemock.MockRepository
	holder    *creaturecache.Holder
	bus       events.EventBus
	clock     *clock.Fake
	refresher *creaturecache.Refresher
	published atomic.Int32
	ctx       context.Context
}

func TestRefresherSuite(t *testing.T) {
	suite.Run(t, new(RefresherTestSuite))
}

func (s *RefresherTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = creaturemock.NewMockRepository(s.ctrl)
	s.holder = creaturecache.NewHolder()
	s.bus = events.NewBus()
	s.clock = clock.NewFake(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()
	s.published.Store(0)

	s.bus.SubscribeFunc(creaturecache.RefreshedEventType, 0, func(_ context.Context, _ events.Event) error {
		s.published.Add(1)
		return nil
	})

	var err error
	s.refresher, err = creaturecache.NewRefresher(&creaturecache.RefresherConfig{
		Repository:   s.mockRepo,
		Holder:       s.holder,
		EventBus:     s.bus,
		Clock:        s.clock,
		IDGenerator:  idgen.NewSequential("snap"),
		TickInterval: 5 * time.Millisecond,
	})
	s.Require().NoError(err)
}

func (s *RefresherTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RefresherTestSuite) expectListAll(times int) {
	s.mockRepo.EXPECT().
		ListAll(gomock.Any(), &creature.ListAllInput{KeyPattern: creature.KeyPattern}).
		Return(&creature.ListAllOutput{Creatures: testutils.FixtureBestiary()}, nil).
		Times(times)
}

func (s *RefresherTestSuite) TestNewRefresherValidation() {
	_, err := creaturecache.NewRefresher(&creaturecache.RefresherConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Repository")
	s.Contains(err.Error(), "EventBus")

	_, err = creaturecache.NewRefresher(nil)
	s.Error(err)
}

func (s *RefresherTestSuite) TestRefreshPublishesSnapshot() {
	s.expectListAll(1)

	snap, err := s.refresher.Refresh(s.ctx)
	s.Require().NoError(err)
	s.Equal("snap_1", snap.GetID())
	s.Same(snap, s.holder.Load())
	s.Equal(s.clock.Now(), snap.BuiltAt())
	s.Equal(int32(1), s.published.Load())
	s.False(s.refresher.Expired())
}

func (s *RefresherTestSuite) TestExpiry() {
	s.expectListAll(1)
	_, err := s.refresher.Refresh(s.ctx)
	s.Require().NoError(err)

	s.clock.Advance(59 * time.Minute)
	s.False(s.refresher.Expired())

	s.clock.Advance(time.Minute)
	s.True(s.refresher.Expired())
}

func (s *RefresherTestSuite) TestFailedRefreshKeepsPreviousSnapshot() {
	s.expectListAll(1)
	first, err := s.refresher.Refresh(s.ctx)
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)
	s.mockRepo.EXPECT().
		ListAll(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	_, err = s.refresher.Refresh(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
	s.Same(first, s.holder.Load())
	s.True(s.refresher.Expired(), "last build only advances on success")
	s.Equal(int32(1), s.published.Load())
}

func (s *RefresherTestSuite) TestRunBuildsImmediatelyAndRetries() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	s.mockRepo.EXPECT().
		ListAll(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))
	s.expectListAll(1)

	done := make(chan error, 1)
	go func() { done <- s.refresher.Run(ctx) }()

	s.Eventually(func() bool { return s.published.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.NotNil(s.holder.Load())

	// the snapshot is fresh on the fake clock, so later ticks do not pull again
	time.Sleep(30 * time.Millisecond)

	cancel()
	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(time.Second):
		s.Fail("refresher did not stop")
	}
}
