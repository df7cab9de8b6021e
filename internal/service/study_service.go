package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/palime/palime-api/internal/domain"
	"github.com/palime/palime-api/internal/domain/srs"
	"github.com/palime/palime-api/internal/platform/logger"
	"github.com/palime/palime-api/internal/store"
	"github.com/palime/palime-api/internal/study"
)

// CardView is the study-card projection returned to clients: the prompt to
// show, without the answer.
type CardView struct {
	ReviewStateID int64            `json:"review_state_id"`
	ItemID        int64            `json:"item_id"`
	Direction     domain.Direction `json:"direction"`
	Prompt        string           `json:"prompt"`
	Type          domain.ItemType  `json:"type"`
}

// SessionView is the client-facing snapshot of a session.
type SessionView struct {
	ID         uuid.UUID    `json:"id"`
	DeckID     int64        `json:"deck_id"`
	State      study.State  `json:"state"`
	Config     study.Config `json:"config"`
	Stats      study.Stats  `json:"stats"`
	Accuracy   int          `json:"accuracy"`
	TotalCards int          `json:"total_cards"`
	Remaining  int          `json:"remaining"`
	Current    *CardView    `json:"current,omitempty"`
}

// AnswerResult reports the outcome of one graded answer. ExpectedAnswer is
// always populated so the client can show the correct text after a miss.
type AnswerResult struct {
	Correct        bool        `json:"correct"`
	ExpectedAnswer string      `json:"expected_answer"`
	Session        SessionView `json:"session"`
}

// StudyService runs study sessions: it selects cards, grades typed answers,
// persists review scheduling, and sequences the in-memory session queues.
// Sessions live in memory only; a server restart abandons them, which for a
// single-user vocabulary app costs one partial session of statistics.
type StudyService interface {
	// StartSession builds a new session for the deck. In standard mode the
	// session holds the currently due cards; in endless mode it holds every
	// card of the deck and cycles indefinitely.
	StartSession(ctx context.Context, deckID int64, endless bool) (*SessionView, error)

	// SubmitAnswer grades the typed answer against the current card,
	// persists the review-state update, and advances the session.
	SubmitAnswer(ctx context.Context, sessionID uuid.UUID, answer string) (*AnswerResult, error)

	// MarkCorrect flips the most recent miss to correct, re-recording the
	// card's review as a success. The session's queue placement is left as
	// the miss arranged it.
	MarkCorrect(ctx context.Context, sessionID uuid.UUID) (*SessionView, error)

	// GetSession returns the current snapshot of a session.
	GetSession(ctx context.Context, sessionID uuid.UUID) (*SessionView, error)

	// UpdateSettings persists a new study direction for the session's deck
	// and rebuilds the session with freshly selected cards. Counters reset
	// with the rebuild.
	UpdateSettings(ctx context.Context, sessionID uuid.UUID, direction domain.StudyDirection, endless bool) (*SessionView, error)

	// EndSession removes the session and returns its final counters.
	EndSession(ctx context.Context, sessionID uuid.UUID) (study.Stats, error)
}

// sessionEntry pairs a live session with the deck it was built from.
type sessionEntry struct {
	deckID  int64
	session *study.Session
}

// studyServiceImpl implements the StudyService interface.
type studyServiceImpl struct {
	db        *sql.DB
	reviews   store.ReviewStore
	decks     store.DeckStore
	scheduler srs.Service
	logger    *slog.Logger
	now       func() time.Time
	newRand   func() *rand.Rand

	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionEntry
}

// NewStudyService creates a new StudyService. It panics on nil
// dependencies; wiring errors should fail at startup.
func NewStudyService(
	db *sql.DB,
	reviews store.ReviewStore,
	decks store.DeckStore,
	scheduler srs.Service,
	log *slog.Logger,
) StudyService {
	if db == nil {
		panic("studyService: db cannot be nil")
	}
	if reviews == nil || decks == nil || scheduler == nil {
		panic("studyService: dependencies cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &studyServiceImpl{
		db:        db,
		reviews:   reviews,
		decks:     decks,
		scheduler: scheduler,
		logger:    log.With(slog.String("component", "study_service")),
		now:       func() time.Time { return time.Now().UTC() },
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		sessions: make(map[uuid.UUID]*sessionEntry),
	}
}

// StartSession implements StudyService.StartSession.
func (s *studyServiceImpl) StartSession(
	ctx context.Context,
	deckID int64,
	endless bool,
) (*SessionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}

	cfg := study.Config{Direction: deck.StudyDirection, Endless: endless}
	session, err := s.buildSession(ctx, deckID, cfg)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	s.mu.Lock()
	s.sessions[id] = &sessionEntry{deckID: deckID, session: session}
	s.mu.Unlock()

	log.Info("study session started",
		slog.String("session_id", id.String()),
		slog.Int64("deck_id", deckID),
		slog.Bool("endless", endless),
		slog.Int("card_count", session.TotalCards()),
		slog.String("state", string(session.State())))

	view := s.view(id, deckID, session)
	return &view, nil
}

// buildSession selects cards per the config and constructs the sequencer.
// An empty selection in standard mode triggers a second query to tell an
// empty deck apart from one with nothing currently due.
func (s *studyServiceImpl) buildSession(
	ctx context.Context,
	deckID int64,
	cfg study.Config,
) (*study.Session, error) {
	var filter *domain.Direction
	if direction, ok := cfg.Direction.DirectionFilter(); ok {
		filter = &direction
	}

	var cards []domain.StudyCard
	var err error
	if cfg.Endless {
		cards, err = s.reviews.GetAllCards(ctx, deckID, filter)
	} else {
		cards, err = s.reviews.GetDueCards(ctx, deckID, filter, s.now())
	}
	if err != nil {
		return nil, NewServiceError("start_session", "failed to load cards", err)
	}

	deckHasCards := len(cards) > 0
	if !deckHasCards && !cfg.Endless {
		all, err := s.reviews.GetAllCards(ctx, deckID, filter)
		if err != nil {
			return nil, NewServiceError("start_session", "failed to probe deck contents", err)
		}
		deckHasCards = len(all) > 0
	}

	return study.NewSession(cards, deckHasCards, cfg, s.newRand()), nil
}

// SubmitAnswer implements StudyService.SubmitAnswer.
func (s *studyServiceImpl) SubmitAnswer(
	ctx context.Context,
	sessionID uuid.UUID,
	answer string,
) (*AnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	card, ok := entry.session.Current()
	if !ok {
		return nil, ErrSessionNotActive
	}

	correct := study.IsCorrect(answer, card.Answer())
	if err := s.recordReview(ctx, card, correct); err != nil {
		return nil, err
	}
	entry.session.Advance(correct)

	log.Debug("answer graded",
		slog.String("session_id", sessionID.String()),
		slog.Int64("item_id", card.ItemID),
		slog.Bool("correct", correct))

	return &AnswerResult{
		Correct:        correct,
		ExpectedAnswer: card.Answer(),
		Session:        s.view(sessionID, entry.deckID, entry.session),
	}, nil
}

// MarkCorrect implements StudyService.MarkCorrect.
func (s *studyServiceImpl) MarkCorrect(
	ctx context.Context,
	sessionID uuid.UUID,
) (*SessionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	card, flipped := entry.session.MarkCorrect()
	if flipped {
		if err := s.recordReview(ctx, card, true); err != nil {
			return nil, err
		}
		log.Debug("miss overridden to correct",
			slog.String("session_id", sessionID.String()),
			slog.Int64("item_id", card.ItemID))
	}

	view := s.view(sessionID, entry.deckID, entry.session)
	return &view, nil
}

// GetSession implements StudyService.GetSession.
func (s *studyServiceImpl) GetSession(
	_ context.Context,
	sessionID uuid.UUID,
) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	view := s.view(sessionID, entry.deckID, entry.session)
	return &view, nil
}

// UpdateSettings implements StudyService.UpdateSettings.
func (s *studyServiceImpl) UpdateSettings(
	ctx context.Context,
	sessionID uuid.UUID,
	direction domain.StudyDirection,
	endless bool,
) (*SessionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !direction.IsValid() {
		return nil, domain.ErrInvalidDirection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	// The preference outlives the session, so persist it on the deck
	// before rebuilding.
	if err := s.decks.SetStudyDirection(ctx, entry.deckID, direction); err != nil {
		return nil, err
	}

	session, err := s.buildSession(ctx, entry.deckID, study.Config{
		Direction: direction,
		Endless:   endless,
	})
	if err != nil {
		return nil, err
	}
	entry.session = session

	log.Info("study session rebuilt with new settings",
		slog.String("session_id", sessionID.String()),
		slog.String("direction", string(direction)),
		slog.Bool("endless", endless))

	view := s.view(sessionID, entry.deckID, session)
	return &view, nil
}

// EndSession implements StudyService.EndSession.
func (s *studyServiceImpl) EndSession(
	ctx context.Context,
	sessionID uuid.UUID,
) (study.Stats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return study.Stats{}, ErrSessionNotFound
	}
	delete(s.sessions, sessionID)

	stats := entry.session.Stats()
	log.Info("study session ended",
		slog.String("session_id", sessionID.String()),
		slog.Int("answered", stats.Total),
		slog.Int("correct", stats.Correct))
	return stats, nil
}

// recordReview persists the scheduling consequences of one graded answer.
// A review state deleted mid-session (item removed in another window) is a
// silent no-op; the session keeps flowing.
func (s *studyServiceImpl) recordReview(
	ctx context.Context,
	card domain.StudyCard,
	correct bool,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txReviews := s.reviews.WithTx(tx)

		state, err := txReviews.GetByID(ctx, card.ReviewStateID)
		if err != nil {
			if errors.Is(err, store.ErrReviewStateNotFound) {
				log.Warn("review state vanished mid-session",
					slog.Int64("review_state_id", card.ReviewStateID))
				return nil
			}
			return NewServiceError("record_review", "failed to load review state", err)
		}

		next := s.scheduler.NextReview(state.Interval, state.Ease, correct, now)
		if _, err := txReviews.UpdateReviewState(
			ctx, state.ID, next.Interval, next.Ease, next.Due); err != nil {
			return NewServiceError("record_review", "failed to persist review", err)
		}
		return nil
	})
}

// view assembles the client-facing snapshot of a session.
func (s *studyServiceImpl) view(id uuid.UUID, deckID int64, session *study.Session) SessionView {
	view := SessionView{
		ID:         id,
		DeckID:     deckID,
		State:      session.State(),
		Config:     session.Config(),
		Stats:      session.Stats(),
		Accuracy:   session.Stats().Accuracy(),
		TotalCards: session.TotalCards(),
		Remaining:  session.Remaining(),
	}
	if card, ok := session.Current(); ok {
		view.Current = &CardView{
			ReviewStateID: card.ReviewStateID,
			ItemID:        card.ItemID,
			Direction:     card.Direction,
			Prompt:        card.Prompt(),
			Type:          card.Type,
		}
	}
	return view
}
