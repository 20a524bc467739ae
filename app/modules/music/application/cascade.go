package musicservice

import (
	"context"
	"fmt"

	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
	"github.com/Black-And-White-Club/music-backend/pkg/observability/attr"
	"github.com/uptrace/bun"
)

type entityKind string

const (
	entityBand       entityKind = "band"
	entityMusician   entityKind = "musician"
	entityMembership entityKind = "membership"
)

// dependentRelation purges the rows of one relation owned by ownerID.
type dependentRelation struct {
	name  string
	purge func(ctx context.Context, db bun.IDB, ownerID int64) (int64, error)
}

// ownershipRules lists, per entity kind, the relations removed before the owner row.
type ownershipRules map[entityKind][]dependentRelation

func defaultOwnershipRules(memberships musicdb.MembershipRepository) ownershipRules {
	return ownershipRules{
		entityBand: {
			{name: "memberships", purge: memberships.DeleteByBand},
		},
		entityMusician: {
			{name: "memberships", purge: memberships.DeleteByMusician},
		},
		entityMembership: nil,
	}
}

// purgeDependents runs every rule for kind on db, in order. It must run in the
// same transaction as the owner delete.
func (s *MusicService) purgeDependents(ctx context.Context, db bun.IDB, kind entityKind, ownerID int64) error {
	for _, rel := range s.rules[kind] {
		n, err := rel.purge(ctx, db, ownerID)
		if err != nil {
			return fmt.Errorf("failed to purge %s of %s %d: %w", rel.name, kind, ownerID, err)
		}
		if s.metrics != nil {
			s.metrics.RecordCascadeDelete(ctx, string(kind), rel.name, n)
		}
		s.logger.DebugContext(ctx, "Cascade delete",
			attr.ExtractCorrelationID(ctx),
			attr.String("owner", string(kind)),
			attr.Int64("owner_id", ownerID),
			attr.String("relation", rel.name),
			attr.Int64("rows", n),
		)
	}
	return nil
}
