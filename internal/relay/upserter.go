package relay

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/morlend/ghrelay/internal/github"
)

// Upserter writes data files with a probe-then-write protocol: fetch
// the current blob for its sha, then write carrying that sha so GitHub
// rejects a concurrent writer's interleaving as a conflict. The probe
// and write are not atomic; the sha check is the only lost-update
// defense, and a conflict surfaces to the caller unretried.
type Upserter struct {
	store Store
}

func NewUpserter(store Store) *Upserter {
	return &Upserter{store: store}
}

type FileResult struct {
	Path    string
	SHA     string
	URL     string
	HTMLURL string
	Updated bool
}

func (u *Upserter) Upsert(ctx context.Context, req UpsertFileRequest) (*FileResult, error) {
	if strings.TrimSpace(req.FileName) == "" {
		return nil, missingParameter("fileName is required")
	}
	if req.Content == "" {
		return nil, missingParameter("content is required")
	}
	path, err := joinPath(req.Directory, req.FileName)
	if err != nil {
		return nil, err
	}

	var sha string
	existing, err := u.store.GetContents(ctx, path)
	switch {
	case err == nil:
		sha = existing.SHA
	case github.IsNotFound(err):
		// Absent: write without a sha, which GitHub treats as create.
	default:
		// Auth, rate limit, or server failures must not be mistaken
		// for absence: an uninformed write would clobber the file.
		return nil, upstream("probing file", err)
	}

	message := "Add data file: " + req.FileName
	if sha != "" {
		message = "Update data file: " + req.FileName
	}

	written, err := u.store.PutContents(ctx, path, github.PutContentsRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString([]byte(req.Content)),
		SHA:     sha,
	})
	if err != nil {
		return nil, upstream("writing file", err)
	}

	return &FileResult{
		Path:    written.Content.Path,
		SHA:     written.Content.SHA,
		URL:     written.Content.URL,
		HTMLURL: written.Content.HTMLURL,
		Updated: sha != "",
	}, nil
}

// joinPath composes directory and file name into a repository path,
// rejecting traversal and empty segments.
func joinPath(directory, fileName string) (string, error) {
	name := strings.Trim(strings.TrimSpace(fileName), "/")
	dir := strings.Trim(strings.TrimSpace(directory), "/")

	full := name
	if dir != "" {
		full = dir + "/" + name
	}
	for _, segment := range strings.Split(full, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return "", missingParameter("invalid path segment %q", segment)
		}
	}
	return full, nil
}
