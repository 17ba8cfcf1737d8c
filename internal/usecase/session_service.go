package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/aryasetia/dropshot/internal/domain/engine"
	"github.com/aryasetia/dropshot/internal/domain/match"
	"github.com/aryasetia/dropshot/internal/domain/roster"
	"github.com/aryasetia/dropshot/internal/domain/session"
	"github.com/aryasetia/dropshot/internal/platform/logging"
)

const checkpointWriteTimeout = 5 * time.Second

// RoundView is the render-ready slice of a live match.
type RoundView struct {
	MatchID  string
	State    engine.State
	Round    int
	Games    []engine.Game
	Teams    []engine.Team
	Unteamed []engine.Player
}

// MatchSessionService owns the live engines, one per running match.
// Every engine mutation happens under that match's lock and is
// followed by a checkpoint write, so a process restart resumes from
// the last successful operation.
type MatchSessionService struct {
	matchRepo      match.Repository
	playerRepo     roster.Repository
	checkpointRepo session.Repository
	pool           *ants.Pool
	logger         *logging.Logger
	now            func() time.Time

	mu       sync.Mutex
	sessions map[string]*liveSession
}

type liveSession struct {
	mu  sync.Mutex
	eng *engine.Engine
}

func NewMatchSessionService(
	matchRepo match.Repository,
	playerRepo roster.Repository,
	checkpointRepo session.Repository,
	pool *ants.Pool,
	logger *logging.Logger,
) *MatchSessionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchSessionService{
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
		checkpointRepo: checkpointRepo,
		pool:           pool,
		logger:         logger,
		now:            time.Now,
		sessions:       make(map[string]*liveSession),
	}
}

// Start builds teams and schedules round 1 for a match, or resumes a
// prior session from its checkpoint when one exists. playerIDs and
// pairs are only consulted for a fresh start.
func (s *MatchSessionService) Start(ctx context.Context, matchID string, playerIDs []string, pairs [][2]string) (RoundView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSessionService.Start")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return RoundView{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	sess := s.session(matchID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.eng != nil {
		return s.view(matchID, sess.eng), nil
	}

	var (
		m          match.Match
		matchFound bool
		matchErr   error

		cp      session.Checkpoint
		cpFound bool
		cpErr   error

		players    []roster.Player
		playersErr error
	)
	var wg conc.WaitGroup
	wg.Go(func() { m, matchFound, matchErr = s.matchRepo.GetByID(ctx, matchID) })
	wg.Go(func() { cp, cpFound, cpErr = s.checkpointRepo.GetByMatchID(ctx, matchID) })
	wg.Go(func() {
		if len(playerIDs) > 0 {
			players, playersErr = s.playerRepo.ListByIDs(ctx, playerIDs)
		}
	})
	wg.Wait()

	if matchErr != nil {
		return RoundView{}, fmt.Errorf("get match: %w", matchErr)
	}
	if !matchFound {
		return RoundView{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if cpErr != nil {
		return RoundView{}, fmt.Errorf("get checkpoint: %w", cpErr)
	}
	// A completed match stays completed even when a stale checkpoint
	// outlived a failed delete in Finish.
	if m.Status == match.StatusCompleted {
		return RoundView{}, fmt.Errorf("%w: match already completed", ErrInvalidInput)
	}

	if cpFound {
		eng, err := engine.Restore(cp.State)
		if err != nil {
			return RoundView{}, fmt.Errorf("restore checkpoint: %w", err)
		}
		if m.Status != match.StatusRunning {
			if err := s.matchRepo.UpdateStatus(ctx, matchID, match.StatusRunning); err != nil {
				return RoundView{}, fmt.Errorf("mark match running: %w", err)
			}
		}
		sess.eng = eng
		s.logger.InfoContext(ctx, "match session resumed", "match_id", matchID, "round", eng.Round())
		return s.view(matchID, eng), nil
	}

	if playersErr != nil {
		return RoundView{}, fmt.Errorf("list players: %w", playersErr)
	}
	lineup, err := buildLineup(playerIDs, players)
	if err != nil {
		return RoundView{}, err
	}

	eng, err := engine.New(engine.Config{
		Policy:     policyFromSubType(m.SubType),
		CourtCount: m.CourtCount,
		Roster:     lineup,
		Pairs:      pairs,
		Seed:       seedFromID(matchID),
	})
	if err != nil {
		return RoundView{}, err
	}
	if err := eng.Start(); err != nil {
		return RoundView{}, err
	}
	if err := s.matchRepo.UpdateStatus(ctx, matchID, match.StatusRunning); err != nil {
		return RoundView{}, fmt.Errorf("mark match running: %w", err)
	}

	sess.eng = eng
	s.writeCheckpoint(matchID, eng.Snapshot())
	s.logger.InfoContext(ctx, "match session started",
		"match_id", matchID,
		"teams", len(eng.Teams()),
		"games", len(eng.Games()),
	)
	return s.view(matchID, eng), nil
}

// CurrentRound returns the live round, restoring from the checkpoint
// when the engine is not in memory.
func (s *MatchSessionService) CurrentRound(ctx context.Context, matchID string) (RoundView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSessionService.CurrentRound")
	defer span.End()

	sess, eng, err := s.engineFor(ctx, matchID)
	if err != nil {
		return RoundView{}, err
	}
	defer sess.mu.Unlock()
	return s.view(matchID, eng), nil
}

// SubmitScore records one game's result. gameIndex is zero-based
// within the current round.
func (s *MatchSessionService) SubmitScore(ctx context.Context, matchID string, gameIndex, score1, score2 int) (RoundView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSessionService.SubmitScore")
	defer span.End()

	sess, eng, err := s.engineFor(ctx, matchID)
	if err != nil {
		return RoundView{}, err
	}
	defer sess.mu.Unlock()

	if err := eng.SubmitScore(gameIndex, score1, score2); err != nil {
		return RoundView{}, err
	}
	s.writeCheckpoint(matchID, eng.Snapshot())
	return s.view(matchID, eng), nil
}

// NextRound closes the current round and schedules the next one.
func (s *MatchSessionService) NextRound(ctx context.Context, matchID string) (RoundView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSessionService.NextRound")
	defer span.End()

	sess, eng, err := s.engineFor(ctx, matchID)
	if err != nil {
		return RoundView{}, err
	}
	defer sess.mu.Unlock()

	if err := eng.CompleteRound(); err != nil {
		return RoundView{}, err
	}
	if err := eng.NextRound(); err != nil {
		return RoundView{}, err
	}
	s.writeCheckpoint(matchID, eng.Snapshot())
	s.logger.InfoContext(ctx, "round advanced", "match_id", matchID, "round", eng.Round())
	return s.view(matchID, eng), nil
}

// Finish finalizes the match and returns the standings. The match
// record flips to completed and the checkpoint is removed.
func (s *MatchSessionService) Finish(ctx context.Context, matchID string) ([]engine.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSessionService.Finish")
	defer span.End()

	sess, eng, err := s.engineFor(ctx, matchID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if eng.State() == engine.StateRoundActive {
		if err := eng.CompleteRound(); err != nil {
			return nil, err
		}
	}
	if err := eng.Finalize(); err != nil {
		return nil, err
	}

	if err := s.matchRepo.UpdateStatus(ctx, matchID, match.StatusCompleted); err != nil {
		return nil, fmt.Errorf("mark match completed: %w", err)
	}
	if err := s.checkpointRepo.Delete(ctx, matchID); err != nil {
		s.logger.WarnContext(ctx, "delete checkpoint", "match_id", matchID, "error", err)
	}

	s.logger.InfoContext(ctx, "match finished", "match_id", matchID, "rounds", eng.Round())
	return eng.Standings(), nil
}

// Standings returns the current ranking at any point in the match.
func (s *MatchSessionService) Standings(ctx context.Context, matchID string) ([]engine.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSessionService.Standings")
	defer span.End()

	sess, eng, err := s.engineFor(ctx, matchID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()
	return eng.Standings(), nil
}

func (s *MatchSessionService) session(matchID string) *liveSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[matchID]
	if !ok {
		sess = &liveSession{}
		s.sessions[matchID] = sess
	}
	return sess
}

// engineFor returns the locked session and its engine, restoring from
// the checkpoint when the engine is not resident. The caller unlocks.
func (s *MatchSessionService) engineFor(ctx context.Context, matchID string) (*liveSession, *engine.Engine, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	sess := s.session(matchID)
	sess.mu.Lock()
	if sess.eng != nil {
		return sess, sess.eng, nil
	}

	cp, found, err := s.checkpointRepo.GetByMatchID(ctx, matchID)
	if err != nil {
		sess.mu.Unlock()
		return nil, nil, fmt.Errorf("get checkpoint: %w", err)
	}
	if !found {
		sess.mu.Unlock()
		return nil, nil, fmt.Errorf("%w: no session for match=%s", ErrNotFound, matchID)
	}

	eng, err := engine.Restore(cp.State)
	if err != nil {
		sess.mu.Unlock()
		return nil, nil, fmt.Errorf("restore checkpoint: %w", err)
	}
	sess.eng = eng
	return sess, eng, nil
}

// writeCheckpoint persists a snapshot off the request path. A full
// worker pool falls back to a synchronous write rather than dropping
// the checkpoint.
func (s *MatchSessionService) writeCheckpoint(matchID string, snap engine.Snapshot) {
	cp := session.Checkpoint{
		MatchID: matchID,
		TakenAt: s.now(),
		State:   snap,
	}
	save := func() {
		ctx, cancel := context.WithTimeout(context.Background(), checkpointWriteTimeout)
		defer cancel()
		if err := s.checkpointRepo.Save(ctx, cp); err != nil {
			s.logger.Error("write checkpoint", "match_id", matchID, "error", err)
		}
	}

	if s.pool == nil {
		save()
		return
	}
	if err := s.pool.Submit(save); err != nil {
		s.logger.Warn("checkpoint pool submit, writing inline", "match_id", matchID, "error", err)
		save()
	}
}

func (s *MatchSessionService) view(matchID string, eng *engine.Engine) RoundView {
	return RoundView{
		MatchID:  matchID,
		State:    eng.State(),
		Round:    eng.Round(),
		Games:    eng.Games(),
		Teams:    eng.Teams(),
		Unteamed: eng.Unteamed(),
	}
}

func buildLineup(playerIDs []string, players []roster.Player) ([]engine.Player, error) {
	if len(playerIDs) == 0 {
		return nil, fmt.Errorf("%w: player ids are required", ErrInvalidInput)
	}

	byID := make(map[string]roster.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	out := make([]engine.Player, 0, len(playerIDs))
	for _, pid := range playerIDs {
		p, ok := byID[pid]
		if !ok {
			return nil, fmt.Errorf("%w: player=%s", ErrNotFound, pid)
		}
		if !p.Eligible() {
			return nil, fmt.Errorf("%w: player %s has an incomplete profile", ErrInvalidInput, pid)
		}
		out = append(out, engine.Player{ID: p.ID, Name: p.Name, Gender: p.Gender})
	}
	return out, nil
}

func policyFromSubType(s match.SubType) engine.Policy {
	switch s {
	case match.SubTypeMixedGender:
		return engine.PolicyMixedGender
	case match.SubTypeSameGender:
		return engine.PolicySameGender
	case match.SubTypeSelect:
		return engine.PolicySelect
	default:
		return engine.PolicyRandom
	}
}

// seedFromID derives a stable shuffle seed so restarting the same
// match rebuilds the same teams.
func seedFromID(matchID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(matchID))
	return int64(h.Sum64())
}
