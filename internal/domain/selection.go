package domain

// SelectionInput is everything the booking form has collected when the coach
// asks for validation: explicitly chosen players, chosen groups (resolved
// against the supplied catalog), and free-text invitees. Nil slices are
// treated as empty; the input is never persisted.
type SelectionInput struct {
	PlayerIDs []PlayerID `json:"player_ids"`
	GroupIDs  []GroupID  `json:"group_ids"`
	Groups    []*Group   `json:"groups"`
	Invitees  []Invitee  `json:"invitees"`

	// RequiredParticipants is the cardinality demanded by the lesson format
	// (private lessons require exactly one). Zero means the format does not
	// fix a count and any non-empty selection passes.
	RequiredParticipants int `json:"required_participants"`
}

// SelectionResult is the outcome of validating a SelectionInput.
// swagger:model SelectionResult
type SelectionResult struct {
	Total             int        `json:"total"`
	Valid             bool       `json:"valid"`
	ResolvedPlayerIDs []PlayerID `json:"resolved_player_ids"`
}

// SelectionWarning reports one piece of input that the lenient path would
// have dropped silently.
// swagger:model SelectionWarning
type SelectionWarning struct {
	Field   string `json:"field"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// SelectionService validates booking participant selections. All operations
// are pure: no I/O, no retained state, total over their input domain.
type SelectionService interface {
	// ResolveGroupPlayerIDs expands one group into its member identifiers,
	// preserving order and dropping malformed entries.
	ResolveGroupPlayerIDs(group *Group) []PlayerID
	// UniqueSelectedPlayerIDs unions explicit ids with group-derived ids,
	// deduplicated, explicit ids first.
	UniqueSelectedPlayerIDs(playerIDs []PlayerID, groupIDs []GroupID, catalog []*Group) []PlayerID
	// CountCompleteInvitees counts invitees that qualify as real participants.
	CountCompleteInvitees(invitees []Invitee) int
	// ValidateSelection computes the participant total and checks it against
	// the required cardinality. Malformed input is dropped, never an error.
	ValidateSelection(input SelectionInput) SelectionResult
	// ValidateSelectionStrict behaves like ValidateSelection but also reports
	// what was dropped, for callers that want to warn instead of staying silent.
	ValidateSelectionStrict(input SelectionInput) (SelectionResult, []SelectionWarning)
}

// Lesson format codes as used by LessonDescriptor.LessonType.
const (
	LessonFormatPrivate = "private"
	LessonFormatGroup   = "group"
	LessonFormatClinic  = "clinic"
)

// RequiredParticipantsFor returns the participant cardinality fixed by a
// lesson format, or zero when the format does not pin an exact count.
func RequiredParticipantsFor(lessonType string) int {
	if lessonType == LessonFormatPrivate {
		return 1
	}
	return 0
}
