package workspace

import (
	"context"
	"fmt"
	"testing"

	"notehive/internal/domain/workspace"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// membershipOp is one randomized mutation against a workspace
type membershipOp struct {
	kind   int // 0=invite, 1=ban, 2=leave
	actor  int // index into the user pool
	target int
}

func genMembershipOp() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 2),
		gen.IntRange(0, 4),
		gen.IntRange(0, 4),
	).Map(func(vals []interface{}) membershipOp {
		return membershipOp{
			kind:   vals[0].(int),
			actor:  vals[1].(int),
			target: vals[2].(int),
		}
	})
}

// TestMembershipInvariants drives random invite/ban/leave sequences against
// a workspace and checks the structural invariants that must survive any
// sequence of operations.
func TestMembershipInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("members and banned stay disjoint, owner stays member", prop.ForAll(
		func(ops []membershipOp) bool {
			f := newFixture()
			users := make([]string, 5)
			for i := range users {
				users[i] = fmt.Sprintf("u%d", i+1)
				f.addUser(users[i], fmt.Sprintf("User %d", i+1), "")
			}

			ws, err := f.svc.Create(context.Background(), users[0], workspace.CreateWorkspaceRequest{Name: "prop"})
			if err != nil {
				return false
			}

			ctx := context.Background()
			for _, op := range ops {
				actor, target := users[op.actor], users[op.target]
				// Errors are expected for illegal ops; only invariants matter.
				switch op.kind {
				case 0:
					_, _ = f.svc.Invite(ctx, ws.ID, actor, target)
				case 1:
					_, _ = f.svc.Ban(ctx, ws.ID, actor, target)
				case 2:
					_ = f.svc.Leave(ctx, ws.ID, actor)
				}
			}

			current, err := f.wsRepo.GetWorkspace(ws.ID)
			if err != nil {
				return false
			}
			if !current.IsMember(current.OwnerID) {
				return false
			}
			seen := make(map[string]bool, len(current.Members))
			for _, id := range current.Members {
				if seen[id] {
					return false // duplicate member entry
				}
				seen[id] = true
				if current.IsBanned(id) {
					return false // member and banned at once
				}
			}
			return true
		},
		gen.SliceOf(genMembershipOp()),
	))

	properties.TestingRun(t)
}
