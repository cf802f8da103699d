package relay

import (
	"context"

	"github.com/morlend/ghrelay/internal/github"
)

// fakeStore records calls and plays back canned responses.
type fakeStore struct {
	issuePages [][]github.Issue
	listErr    error

	createdIssue *github.Issue
	createErr    error

	comment    *github.Comment
	commentErr error

	contents    *github.FileContent
	contentsErr error

	written *github.ContentsWritten
	putErr  error

	listCalls    []int
	createCalls  []createIssueCall
	commentCalls []createCommentCall
	getCalls     []string
	putCalls     []putCall
}

type createIssueCall struct {
	title, body string
}

type createCommentCall struct {
	issueNumber int
	body        string
}

type putCall struct {
	path string
	put  github.PutContentsRequest
}

func (f *fakeStore) ListIssues(_ context.Context, page int) ([]github.Issue, error) {
	f.listCalls = append(f.listCalls, page)
	if f.listErr != nil {
		return nil, f.listErr
	}
	if page <= len(f.issuePages) {
		return f.issuePages[page-1], nil
	}
	return nil, nil
}

func (f *fakeStore) CreateIssue(_ context.Context, title, body string) (*github.Issue, error) {
	f.createCalls = append(f.createCalls, createIssueCall{title: title, body: body})
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createdIssue != nil {
		return f.createdIssue, nil
	}
	return &github.Issue{Number: 1, Title: title, Body: body}, nil
}

func (f *fakeStore) CreateComment(_ context.Context, issueNumber int, body string) (*github.Comment, error) {
	f.commentCalls = append(f.commentCalls, createCommentCall{issueNumber: issueNumber, body: body})
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	if f.comment != nil {
		return f.comment, nil
	}
	return &github.Comment{ID: 1, Body: body}, nil
}

func (f *fakeStore) GetContents(_ context.Context, path string) (*github.FileContent, error) {
	f.getCalls = append(f.getCalls, path)
	if f.contentsErr != nil {
		return nil, f.contentsErr
	}
	return f.contents, nil
}

func (f *fakeStore) PutContents(_ context.Context, path string, put github.PutContentsRequest) (*github.ContentsWritten, error) {
	f.putCalls = append(f.putCalls, putCall{path: path, put: put})
	if f.putErr != nil {
		return nil, f.putErr
	}
	if f.written != nil {
		return f.written, nil
	}
	return &github.ContentsWritten{
		Content: github.WrittenFile{Path: path, SHA: "written-sha"},
	}, nil
}

// upstreamCalls counts every call that reached the fake.
func (f *fakeStore) upstreamCalls() int {
	return len(f.listCalls) + len(f.createCalls) + len(f.commentCalls) + len(f.getCalls) + len(f.putCalls)
}

func strptr(s string) *string { return &s }
