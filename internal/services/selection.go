package services

import (
	"fmt"

	"courtbook/internal/domain"
)

type selectionService struct{}

// NewSelectionService creates the stateless SelectionService. Every method is
// a pure function of its arguments, so a single instance is safe to share
// across concurrent requests.
func NewSelectionService() domain.SelectionService {
	return &selectionService{}
}

func (s *selectionService) ResolveGroupPlayerIDs(group *domain.Group) []domain.PlayerID {
	if group == nil {
		return nil
	}
	// A non-empty explicit list is authoritative; members are not consulted
	// even when every explicit entry is unusable.
	if len(group.PlayerIDs) > 0 {
		ids := make([]domain.PlayerID, 0, len(group.PlayerIDs))
		for _, id := range group.PlayerIDs {
			if id.Valid() {
				ids = append(ids, id)
			}
		}
		return ids
	}
	ids := make([]domain.PlayerID, 0, len(group.Members))
	for _, m := range group.Members {
		if id, ok := m.ResolvedID(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *selectionService) UniqueSelectedPlayerIDs(playerIDs []domain.PlayerID, groupIDs []domain.GroupID, catalog []*domain.Group) []domain.PlayerID {
	result := make([]domain.PlayerID, 0, len(playerIDs))
	seen := make(map[domain.PlayerID]struct{}, len(playerIDs))
	appendID := func(id domain.PlayerID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	for _, id := range playerIDs {
		if id.Valid() {
			appendID(id)
		}
	}

	byID := make(map[domain.GroupID]*domain.Group, len(catalog))
	for _, g := range catalog {
		if g != nil && g.ID.Valid() {
			byID[g.ID] = g
		}
	}
	for _, gid := range groupIDs {
		group, ok := byID[gid]
		if !ok {
			continue
		}
		for _, id := range s.ResolveGroupPlayerIDs(group) {
			appendID(id)
		}
	}
	return result
}

func (s *selectionService) CountCompleteInvitees(invitees []domain.Invitee) int {
	count := 0
	for _, inv := range invitees {
		if inv.Complete() {
			count++
		}
	}
	return count
}

func (s *selectionService) ValidateSelection(input domain.SelectionInput) domain.SelectionResult {
	resolved := s.UniqueSelectedPlayerIDs(input.PlayerIDs, input.GroupIDs, input.Groups)
	total := len(resolved) + s.CountCompleteInvitees(input.Invitees)

	valid := total >= 1
	if input.RequiredParticipants > 0 {
		valid = total == input.RequiredParticipants
	}
	return domain.SelectionResult{
		Total:             total,
		Valid:             valid,
		ResolvedPlayerIDs: resolved,
	}
}

func (s *selectionService) ValidateSelectionStrict(input domain.SelectionInput) (domain.SelectionResult, []domain.SelectionWarning) {
	result := s.ValidateSelection(input)

	var warnings []domain.SelectionWarning
	for i, id := range input.PlayerIDs {
		if !id.Valid() {
			warnings = append(warnings, domain.SelectionWarning{
				Field:   "player_ids",
				Index:   i,
				Message: "player id is not a positive number",
			})
		}
	}

	byID := make(map[domain.GroupID]*domain.Group, len(input.Groups))
	for _, g := range input.Groups {
		if g != nil && g.ID.Valid() {
			byID[g.ID] = g
		}
	}
	for i, gid := range input.GroupIDs {
		if !gid.Valid() {
			warnings = append(warnings, domain.SelectionWarning{
				Field:   "group_ids",
				Index:   i,
				Message: "group id is not a positive number",
			})
			continue
		}
		group, ok := byID[gid]
		if !ok {
			warnings = append(warnings, domain.SelectionWarning{
				Field:   "group_ids",
				Index:   i,
				Message: fmt.Sprintf("group %d is not in the catalog", gid),
			})
			continue
		}
		warnings = append(warnings, groupMemberWarnings(group, i)...)
	}

	for i, inv := range input.Invitees {
		if !inv.Complete() {
			warnings = append(warnings, domain.SelectionWarning{
				Field:   "invitees",
				Index:   i,
				Message: "invitee needs a name and a phone or email",
			})
		}
	}
	return result, warnings
}

// groupMemberWarnings reports member entries of a selected group that the
// lenient resolution dropped. The index is the position of the group in the
// request, not the member position, so the caller can point at its input.
func groupMemberWarnings(group *domain.Group, index int) []domain.SelectionWarning {
	var warnings []domain.SelectionWarning
	if len(group.PlayerIDs) > 0 {
		for _, id := range group.PlayerIDs {
			if !id.Valid() {
				warnings = append(warnings, domain.SelectionWarning{
					Field:   "group_ids",
					Index:   index,
					Message: fmt.Sprintf("group %q has a malformed player id", group.Name),
				})
			}
		}
		return warnings
	}
	for _, m := range group.Members {
		if _, ok := m.ResolvedID(); !ok {
			warnings = append(warnings, domain.SelectionWarning{
				Field:   "group_ids",
				Index:   index,
				Message: fmt.Sprintf("group %q has a member without a usable id", group.Name),
			})
		}
	}
	return warnings
}
