package relay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/morlend/ghrelay/internal/github"
)

// Registrar finds or creates the issue tracking one subject. Calling
// Ensure twice with the same subject id never creates a duplicate.
type Registrar struct {
	store Store
	now   func() time.Time
}

func NewRegistrar(store Store) *Registrar {
	return &Registrar{store: store, now: time.Now}
}

// RecordResult identifies the subject's issue. Existed distinguishes a
// lookup hit from a fresh create.
type RecordResult struct {
	Number    int
	Title     string
	URL       string
	HTMLURL   string
	CreatedAt time.Time
	Existed   bool
}

func (r *Registrar) Ensure(ctx context.Context, req EnsureRecordRequest) (*RecordResult, error) {
	subjectID := strings.TrimSpace(req.SubjectID)
	if subjectID == "" {
		return nil, missingParameter("subjectId is required")
	}

	existing, err := r.findByTitle(ctx, subjectID)
	if err != nil {
		return nil, upstream("searching issues", err)
	}
	if existing != nil {
		return recordFrom(existing, true), nil
	}

	body := subjectBody(orUnknown(req.Gender), orUnknown(req.Age), r.now().UTC())
	created, err := r.store.CreateIssue(ctx, subjectID, body)
	if err != nil {
		return nil, upstream("creating issue", err)
	}
	return recordFrom(created, false), nil
}

// findByTitle scans the full issue listing for an exact title match.
// The search API is fuzzy and could hand back a near-match for another
// subject; paginated listing keeps the lookup deterministic. The first
// exact match wins if the repository ever holds duplicates.
func (r *Registrar) findByTitle(ctx context.Context, title string) (*github.Issue, error) {
	for page := 1; ; page++ {
		issues, err := r.store.ListIssues(ctx, page)
		if err != nil {
			return nil, err
		}
		for i := range issues {
			if issues[i].Title == title {
				return &issues[i], nil
			}
		}
		if len(issues) < github.IssuesPerPage {
			return nil, nil
		}
	}
}

func subjectBody(gender, age string, started time.Time) string {
	return fmt.Sprintf("Subject info:\n- Gender: %s\n- Age: %s\n- Session started: %s",
		gender, age, started.Format(time.RFC3339))
}

func recordFrom(issue *github.Issue, existed bool) *RecordResult {
	return &RecordResult{
		Number:    issue.Number,
		Title:     issue.Title,
		URL:       issue.URL,
		HTMLURL:   issue.HTMLURL,
		CreatedAt: issue.CreatedAt,
		Existed:   existed,
	}
}
