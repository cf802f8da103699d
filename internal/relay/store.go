package relay

import (
	"context"

	"github.com/morlend/ghrelay/internal/github"
)

// Store is the slice of the GitHub API the relay handlers use.
// *github.Client satisfies it; tests substitute fakes.
type Store interface {
	ListIssues(ctx context.Context, page int) ([]github.Issue, error)
	CreateIssue(ctx context.Context, title, body string) (*github.Issue, error)
	CreateComment(ctx context.Context, issueNumber int, body string) (*github.Comment, error)
	GetContents(ctx context.Context, path string) (*github.FileContent, error)
	PutContents(ctx context.Context, path string, put github.PutContentsRequest) (*github.ContentsWritten, error)
}
