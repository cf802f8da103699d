package relay

import "strings"

// unknownAttr is the sentinel recorded when an optional subject
// attribute was not supplied.
const unknownAttr = "unknown"

// EnsureRecordRequest asks for the subject's issue to exist. Gender and
// age are optional; nil (or blank) becomes the "unknown" sentinel via
// orUnknown.
type EnsureRecordRequest struct {
	SubjectID string  `json:"subjectId"`
	Gender    *string `json:"gender"`
	Age       *string `json:"age"`
}

// AppendCommentRequest appends one comment to an existing issue.
type AppendCommentRequest struct {
	IssueNumber int    `json:"issueNumber"`
	CommentBody string `json:"commentBody"`
}

// UpsertFileRequest writes one file. Directory is optional; when empty
// the file lands at the repository root. Content arrives as plain text
// and is transcoded to base64 exactly once, inside the upserter.
type UpsertFileRequest struct {
	FileName  string `json:"fileName"`
	Content   string `json:"content"`
	Directory string `json:"directory"`
}

func orUnknown(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return unknownAttr
	}
	return strings.TrimSpace(*v)
}
