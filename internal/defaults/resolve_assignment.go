package defaults

import "vlosev/teamops-app/internal/domain"

// resolveAssignment picks the team and pre-assigns players. Team precedence:
// the coach's current working team (excluding the "all"/"personal"
// sentinels, 90), the team whose calendar is on screen (85), the most
// recently used team from the profile (70), else no team. Players are only
// attempted once a team resolved: the roster is filtered to players who can
// train, order preserved, capped at MaxAssignedPlayers.
func resolveAssignment(ctx Context, acc *SmartDefaults) []Reasoning {
	var reasons []Reasoning

	teamID, teamReason := resolveTeam(ctx)
	if teamReason != nil {
		acc.TeamIDs = []string{teamID}
		reasons = append(reasons, *teamReason)
	}

	if teamID != "" {
		players := availablePlayers(ctx.Rosters[teamID])
		acc.PlayerIDs = players
		if len(players) > 0 {
			reasons = append(reasons, Reasoning{
				Field:      FieldPlayers,
				Reason:     "Pre-assigned available players from the roster",
				Confidence: 75,
				Source:     SourcePattern,
			})
		}
	}

	return reasons
}

func resolveTeam(ctx Context) (string, *Reasoning) {
	if id := ctx.CurrentTeamID; id != "" && id != TeamAll && id != TeamPersonal {
		return id, &Reasoning{
			Field:      FieldTeam,
			Reason:     "Assigned to your active team",
			Confidence: 90,
			Source:     SourcePattern,
		}
	}
	if id := ctx.ViewingTeamID; id != "" {
		return id, &Reasoning{
			Field:      FieldTeam,
			Reason:     "Assigned to the team calendar you are viewing",
			Confidence: 85,
			Source:     SourceCalendar,
		}
	}
	if ctx.Profile != nil && len(ctx.Profile.RecentTeams) > 0 {
		return ctx.Profile.RecentTeams[0], &Reasoning{
			Field:      FieldTeam,
			Reason:     "Your most recently used team",
			Confidence: 70,
			Source:     SourcePreferences,
		}
	}
	return "", nil
}

// availablePlayers filters the roster to players who can train, preserving
// roster order and capping the result.
func availablePlayers(roster []domain.Player) []string {
	var out []string
	for i := range roster {
		if !roster[i].CanTrain() {
			continue
		}
		out = append(out, roster[i].ID.Hex())
		if len(out) == MaxAssignedPlayers {
			break
		}
	}
	if out == nil {
		return []string{}
	}
	return out
}
