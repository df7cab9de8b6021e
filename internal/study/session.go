package study

import (
	"math/rand"

	"github.com/palime/palime-api/internal/domain"
)

// State identifies where a session is in its lifecycle. EmptyDeck and
// NothingDue are degenerate entry states: the former means the deck has no
// studyable cards at all, the latter that it has cards but none are
// currently due (and endless mode is off).
type State string

// Possible session states
const (
	StateActive     State = "active"
	StateComplete   State = "complete"
	StateEmptyDeck  State = "empty_deck"
	StateNothingDue State = "nothing_due"
)

// Config is the explicit per-session configuration. Changing either field
// requires constructing a fresh session; a live session never observes
// settings changes.
type Config struct {
	Direction domain.StudyDirection `json:"direction"`
	Endless   bool                  `json:"endless"`
}

// Session sequences cards for one study session. It owns an in-memory
// queue with a cursor, advances on each grading, reinserts missed cards at
// a random position, and detects completion. In endless mode the queue
// wraps around indefinitely, reshuffling on each lap.
//
// A session is not safe for concurrent use; the owning registry serializes
// access to it.
type Session struct {
	cfg   Config
	queue []domain.StudyCard
	index int
	state State
	stats Stats
	rng   *rand.Rand

	// totalCards is the loaded card count, kept for progress display.
	totalCards int

	// lastGraded remembers the most recently graded card so a miss can be
	// flipped to correct after the fact.
	lastGraded  *domain.StudyCard
	lastCorrect bool

	reshuffles int
}

// NewSession builds a session from the cards selected for the deck.
// deckHasCards distinguishes an empty deck from one with nothing currently
// due when the selection comes back empty. The rand source drives all
// shuffling and reinsertion, and is injectable so tests can assert exact
// orderings.
func NewSession(cards []domain.StudyCard, deckHasCards bool, cfg Config, rng *rand.Rand) *Session {
	s := &Session{
		cfg:        cfg,
		queue:      append([]domain.StudyCard(nil), cards...),
		state:      StateActive,
		rng:        rng,
		totalCards: len(cards),
	}

	if len(s.queue) == 0 {
		if deckHasCards && !cfg.Endless {
			s.state = StateNothingDue
		} else {
			s.state = StateEmptyDeck
		}
		return s
	}

	// The store returns cards in no meaningful order; the session owns
	// randomization. Endless mode additionally reshuffles on every lap.
	s.shuffle()
	return s
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Config returns the configuration the session was constructed with.
func (s *Session) Config() Config {
	return s.cfg
}

// Stats returns a copy of the running session counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// TotalCards returns the number of cards the session was loaded with.
func (s *Session) TotalCards() int {
	return s.totalCards
}

// Remaining returns how many cards are left in the queue.
func (s *Session) Remaining() int {
	if s.state != StateActive {
		return 0
	}
	return len(s.queue)
}

// Current returns the card at the cursor. The second return value is false
// unless the session is active.
func (s *Session) Current() (domain.StudyCard, bool) {
	if s.state != StateActive || len(s.queue) == 0 {
		return domain.StudyCard{}, false
	}
	return s.queue[s.index], true
}

// Advance records one graded answer for the current card and moves the
// session forward.
//
// Standard mode: a correct answer removes the card from the queue,
// completing the session when the queue empties; a miss reinserts the card
// at a uniformly random position among the remaining cards, so it is seen
// again this session without being trivially next. Endless mode simply
// cycles, reshuffling the whole queue on each wraparound; misses get no
// special requeue treatment there.
func (s *Session) Advance(correct bool) {
	if s.state != StateActive {
		return
	}

	current := s.queue[s.index]
	s.stats.RecordAnswer(correct)
	s.lastGraded = &current
	s.lastCorrect = correct

	if s.cfg.Endless {
		next := (s.index + 1) % len(s.queue)
		if next == 0 {
			s.shuffle()
			s.reshuffles++
		}
		s.index = next
		return
	}

	rest := make([]domain.StudyCard, 0, len(s.queue)-1)
	rest = append(rest, s.queue[:s.index]...)
	rest = append(rest, s.queue[s.index+1:]...)

	if correct {
		if len(rest) == 0 {
			s.queue = nil
			s.state = StateComplete
			return
		}
		s.queue = rest
		// The next card slides into the vacated slot; wrap to the front
		// when the cursor was on the last card.
		if s.index >= len(s.queue) {
			s.index = 0
		}
		return
	}

	if len(rest) == 0 {
		// A single-card session cannot complete by missing its only card;
		// the card stays in place.
		s.index = 0
		return
	}

	pos := s.rng.Intn(len(rest) + 1)
	queue := make([]domain.StudyCard, 0, len(rest)+1)
	queue = append(queue, rest[:pos]...)
	queue = append(queue, current)
	queue = append(queue, rest[pos:]...)
	s.queue = queue
	if s.index >= len(s.queue) {
		s.index = 0
	}
}

// MarkCorrect flips the most recent incorrect grading to correct,
// adjusting the correct counter only. Queue placement already performed
// for the miss is deliberately left untouched. It returns the card whose
// review should be re-recorded, and false when there is no miss to flip.
func (s *Session) MarkCorrect() (domain.StudyCard, bool) {
	if s.lastGraded == nil || s.lastCorrect {
		return domain.StudyCard{}, false
	}
	s.lastCorrect = true
	s.stats.markCorrect()
	return *s.lastGraded, true
}

func (s *Session) shuffle() {
	s.rng.Shuffle(len(s.queue), func(i, j int) {
		s.queue[i], s.queue[j] = s.queue[j], s.queue[i]
	})
}
