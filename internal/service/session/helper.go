package session

import (
	"context"
)

// memberList resolves connection ids into the roster sent to clients. A
// connection whose identity or profile cannot be resolved (it may have
// disconnected mid-fanout) degrades to its bare ids rather than failing the
// whole roster.
func (s service) memberList(ctx context.Context, connIDs []string) []Member {
	members := make([]Member, 0, len(connIDs))
	for _, connID := range connIDs {
		userID, err := s.registry.IdentityOf(connID)
		if err != nil {
			s.logger.DebugContext(ctx, "skipping unknown connection in roster", "conn_id", connID)
			continue
		}

		member := Member{
			ConnID:   connID,
			UserID:   userID,
			Username: userID,
		}

		profile, err := s.roomRepo.GetProfile(ctx, userID)
		if err != nil {
			s.logger.InfoContext(ctx, "failed to get profile", "user_id", userID, "error", err)
		} else {
			member.Username = profile.Username
			member.Color = profile.Color
			member.AvatarURL = profile.AvatarURL
		}

		members = append(members, member)
	}

	return members
}
