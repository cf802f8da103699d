// Package relay implements the three operations the proxy exposes:
// ensuring a subject record exists, appending a comment to one, and
// upserting a data file. Handlers are stateless and talk to GitHub
// through the narrow Store interface.
package relay

// Action identifies one relay operation. The set is closed; dispatch
// switches over it exhaustively.
type Action string

const (
	ActionEnsureRecord  Action = "ensure_record"
	ActionAppendComment Action = "append_comment"
	ActionUpsertFile    Action = "upsert_file"
)

// Actions lists the canonical action names in the order they are
// reported to callers.
func Actions() []string {
	return []string{
		string(ActionEnsureRecord),
		string(ActionAppendComment),
		string(ActionUpsertFile),
	}
}

// ParseAction resolves a wire action name. The names used by the
// legacy front-end are accepted as aliases.
func ParseAction(name string) (Action, bool) {
	switch name {
	case "ensure_record", "create_issue":
		return ActionEnsureRecord, true
	case "append_comment", "add_comment":
		return ActionAppendComment, true
	case "upsert_file", "upload_file":
		return ActionUpsertFile, true
	}
	return "", false
}
