package relay

import (
	"context"
	"strings"
	"time"
)

// Appender adds comments to existing issues. Appends are deliberately
// not idempotent: repeated calls with the same body create repeated
// comments, matching an append-only log.
type Appender struct {
	store Store
}

func NewAppender(store Store) *Appender {
	return &Appender{store: store}
}

type CommentResult struct {
	ID        int64
	URL       string
	HTMLURL   string
	CreatedAt time.Time
}

// Append posts the comment. Issue existence is not pre-validated; an
// absent issue surfaces as GitHub's own 404.
func (a *Appender) Append(ctx context.Context, req AppendCommentRequest) (*CommentResult, error) {
	if req.IssueNumber <= 0 {
		return nil, missingParameter("issueNumber is required")
	}
	if strings.TrimSpace(req.CommentBody) == "" {
		return nil, missingParameter("commentBody is required")
	}

	comment, err := a.store.CreateComment(ctx, req.IssueNumber, req.CommentBody)
	if err != nil {
		return nil, upstream("creating comment", err)
	}
	return &CommentResult{
		ID:        comment.ID,
		URL:       comment.URL,
		HTMLURL:   comment.HTMLURL,
		CreatedAt: comment.CreatedAt,
	}, nil
}
