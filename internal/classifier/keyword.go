package classifier

import (
	"context"
	"strings"
	"unicode"
)

// lexicon holds cue words for common category names, keyed by lowercase name.
var lexicon = map[string][]string{
	"work":     {"meeting", "team", "project", "client", "deadline", "office", "report", "manager", "standup", "presentation", "sprint", "colleague"},
	"personal": {"family", "birthday", "home", "friend", "mom", "dad", "weekend", "gift", "party", "anniversary"},
	"finance":  {"bill", "pay", "budget", "invoice", "bank", "tax", "rent", "salary", "subscription", "expense", "loan", "savings", "credit card"},
	"health":   {"doctor", "workout", "gym", "yoga", "vitamin", "dentist", "sleep", "medicine", "diet", "run", "checkup", "physio"},
	"travel":   {"flight", "hotel", "passport", "trip", "airport", "train", "visa", "luggage", "itinerary", "vacation"},
	"learning": {"course", "chapter", "study", "tutorial", "learn", "lecture", "practice", "exam", "book", "lesson"},
	"to-do":    {"buy", "pick up", "call", "fix", "clean", "return", "renew", "schedule", "submit"},
	"todo":     {"buy", "pick up", "call", "fix", "clean", "return", "renew", "schedule", "submit"},
	"meetings": {"meeting", "agenda", "sync", "minutes", "standup", "retro", "1:1"},
	"shopping": {"buy", "groceries", "milk", "eggs", "bread", "order", "store"},
	"ideas":    {"idea", "brainstorm", "concept", "what if"},
}

// Keyword is an offline classifier scoring candidates by cue words found in
// the text. Ties go to the earlier candidate.
type Keyword struct{}

func NewKeyword() *Keyword { return &Keyword{} }

func (k *Keyword) Ref() string { return "keyword" }

func (k *Keyword) Classify(ctx context.Context, text string, candidates []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	haystack := normalize(text)
	best, bestScore := "", 0
	for _, c := range candidates {
		if score := scoreCandidate(haystack, c); score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore == 0 {
		return "", ErrNoMatch
	}
	return best, nil
}

func scoreCandidate(haystack, candidate string) int {
	cues := append([]string{}, lexicon[strings.ToLower(strings.TrimSpace(candidate))]...)
	for _, tok := range strings.Fields(normalize(candidate)) {
		if len(tok) >= 3 {
			cues = append(cues, tok)
		}
	}
	score := 0
	seen := map[string]bool{}
	for _, cue := range cues {
		cue = strings.TrimSpace(normalize(cue))
		if cue == "" || seen[cue] {
			continue
		}
		seen[cue] = true
		if strings.Contains(haystack, " "+cue+" ") || strings.Contains(haystack, " "+cue+"s ") {
			score++
		}
	}
	return score
}

// normalize lowercases s, turns anything but letters, digits and ':' into
// spaces and pads both ends so whole words can be matched with Contains.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ':' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return " " + strings.Join(strings.Fields(b.String()), " ") + " "
}
