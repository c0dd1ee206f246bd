// Terminal front-end for studying a cardbox: flip the card, score it, and
// watch the clue balloons. All review semantics live in the internal
// packages; this program only renders and routes key presses.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/namsral/flag"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/mindcolony/cardbox/config"
	"github.com/mindcolony/cardbox/internal/clues"
	"github.com/mindcolony/cardbox/internal/session"
	"github.com/mindcolony/cardbox/internal/stores"
)

type model struct {
	ctrl       *session.Controller
	maxClues   int
	flipped    bool
	showClues  bool
	hintsUsed  int
	cardClues  []clues.Clue
	expanded   bool
	startedAt  time.Time
	lastResult string
	prog       progress.Model
}

func newModel(ctrl *session.Controller, maxClues int) model {
	pr := progress.New(progress.WithDefaultGradient())
	pr.Width = 40
	m := model{ctrl: ctrl, maxClues: maxClues, showClues: true, startedAt: time.Now(), prog: pr}
	m.cardClues = ctrl.Clues()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q":
		m.ctrl.End()
		return m, tea.Quit
	}

	switch m.ctrl.State() {
	case session.Active:
		return m.updateActive(key), nil
	case session.Complete:
		return m.updateComplete(key)
	}
	return m, nil
}

func (m model) updateActive(key tea.KeyMsg) model {
	card, ok := m.ctrl.Current()
	if !ok {
		return m
	}
	switch key.String() {
	case "enter", " ", "f":
		m.flipped = !m.flipped
	case "h":
		m.showClues = !m.showClues
	case "e":
		m.expanded = !m.expanded
	case "y", "n":
		if m.showClues && len(m.cardClues) > 0 {
			helpful := key.String() == "y"
			clues.RecordFeedback(card.ID, m.cardClues[0].ID, helpful)
			if helpful {
				m.hintsUsed++
			}
		}
	case "1", "2":
		if !m.flipped {
			break
		}
		correct := key.String() == "2"
		cluesShown := 0
		if m.showClues {
			cluesShown = len(m.cardClues)
		}
		elapsed := time.Since(m.startedAt).Milliseconds()
		m.ctrl.SubmitReview(card.ID, correct, elapsed, m.hintsUsed+cluesShown)
		if correct {
			m.lastResult = "Correct!"
		} else {
			m.lastResult = "Missed - it moves down a box."
		}
		m.flipped = false
		m.showClues = true
		m.expanded = false
		m.hintsUsed = 0
		m.startedAt = time.Now()
		m.cardClues = m.ctrl.Clues()
	}
	return m
}

func (m model) updateComplete(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "r":
		m.ctrl.Restart()
		m.flipped = false
		m.hintsUsed = 0
		m.startedAt = time.Now()
		m.cardClues = m.ctrl.Clues()
	case "enter":
		m.ctrl.End()
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	switch m.ctrl.State() {
	case session.Active:
		return m.viewCard()
	case session.Complete:
		return m.viewSummary()
	}
	return "No cards due. You're all caught up!\n\nPress q to quit.\n"
}

func (m model) viewCard() string {
	card, _ := m.ctrl.Current()
	cursor, total := m.ctrl.Position()

	var b strings.Builder
	fmt.Fprintf(&b, "Card %d / %d    Box %d    [%s]\n", cursor+1, total, card.BoxLevel, card.Difficulty)
	b.WriteString(m.prog.ViewAs(float64(cursor)/float64(total)) + "\n")
	if m.lastResult != "" {
		b.WriteString(m.lastResult + "\n")
	}
	b.WriteString(strings.Repeat("-", 40) + "\n\n")

	if m.flipped {
		b.WriteString("  " + card.Back + "\n")
		for _, hint := range card.Hints {
			b.WriteString("    hint: " + hint + "\n")
		}
		b.WriteString("\n" + strings.Repeat("-", 40) + "\n")
		b.WriteString("(1) Incorrect    (2) Correct    (F) Flip back\n")
		return b.String()
	}

	b.WriteString("  " + card.Front + "\n\n")
	if m.showClues && len(m.cardClues) > 0 {
		b.WriteString("Clue balloons:\n")
		shown := m.cardClues
		if !m.expanded && len(shown) > m.maxClues {
			shown = shown[:m.maxClues]
		}
		for _, clue := range shown {
			fmt.Fprintf(&b, "  [%.2f %s] %s\n", clue.Weight, clue.Type, clue.Text)
			if m.expanded && clue.Expanded != "" {
				b.WriteString("         " + clue.Expanded + "\n")
			}
		}
		if !m.expanded && len(m.cardClues) > m.maxClues {
			fmt.Fprintf(&b, "  ... %d more (press E)\n", len(m.cardClues)-m.maxClues)
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("-", 40) + "\n")
	b.WriteString("(Enter) Reveal   (H) Toggle clues   (Y/N) Top clue feedback   (Q) End\n")
	return b.String()
}

func (m model) viewSummary() string {
	sess, _ := m.ctrl.Session()
	accuracy := 0
	if sess.CardsReviewed > 0 {
		accuracy = 100 * sess.CorrectAnswers / sess.CardsReviewed
	}
	return fmt.Sprintf(
		"Session complete!\n\nCards: %d\nCorrect: %d\nAccuracy: %d%%\nHints used: %d\n\n(R) Study again    (Enter) Finish\n",
		sess.CardsReviewed, sess.CorrectAnswers, accuracy, sess.HintsUsed,
	)
}

func main() {
	cfg := &config.Config{}

	var deckID string
	var boxLevel int
	fs := flag.NewFlagSet("studycli", flag.ContinueOnError)
	cfg.AddFlags(fs)
	fs.StringVar(&deckID, "deck", "", "study a single deck (strictly due cards only)")
	fs.IntVar(&boxLevel, "box", 0, "browse one box, ignoring due dates")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if strings.ToLower(cfg.LogLevel) == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	store, snaps, err := openStore(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("open-store")
	}
	defer snaps.Close()

	scope := stores.AllDue()
	if deckID != "" {
		scope = stores.ByDeck(deckID)
	} else if boxLevel > 0 {
		scope = stores.ByBox(boxLevel)
	}

	ctrl := session.NewController(store, clues.NewRanker())
	ctrl.Start(scope)

	p := tea.NewProgram(newModel(ctrl, cfg.MaxVisibleClues))
	if _, err := p.Run(); err != nil {
		zlog.Fatal().Err(err).Msg("tui-failed")
	}
}

func openStore(cfg *config.Config) (*stores.Store, *stores.SQLiteSnapshots, error) {
	key := stores.StorageKey
	if cfg.SnapshotKey != "" {
		key = cfg.SnapshotKey
	}
	snaps, err := stores.OpenSnapshotsWithKey(cfg.StorePath, key)
	if err != nil {
		return nil, nil, err
	}
	snap, found, err := snaps.Load()
	if err != nil {
		snaps.Close()
		return nil, nil, err
	}
	if !found && cfg.SeedIfEmpty {
		snap = stores.SeedSnapshot(time.Now())
	}
	return stores.NewFromSnapshot(snap, snaps), snaps, nil
}
