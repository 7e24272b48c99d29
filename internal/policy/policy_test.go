package policy_test

import (
	"testing"

	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/policy"
	"github.com/stretchr/testify/assert"
)

func TestEvaluator_Allow(t *testing.T) {
	ev, err := policy.NewEvaluator()
	assert.NoError(t, err)

	const (
		alice = "emp-alice"
		bob   = "emp-bob"
		carol = "emp-carol"
	)

	tests := []struct {
		name string
		sub  policy.Subject
		obj  policy.Resource
		act  string
		want bool
	}{
		{"manager approves direct report comp-off", policy.Subject{ID: bob, Role: domain.RoleManager}, policy.Resource{Kind: policy.KindCompOff, OwnerID: alice, ManagerID: bob}, policy.ActApprove, true},
		{"manager cannot approve other team", policy.Subject{ID: carol, Role: domain.RoleManager}, policy.Resource{Kind: policy.KindCompOff, OwnerID: alice, ManagerID: bob}, policy.ActApprove, false},
		{"hr approves any comp-off", policy.Subject{ID: carol, Role: domain.RoleHRAdmin}, policy.Resource{Kind: policy.KindCompOff, OwnerID: alice, ManagerID: bob}, policy.ActApprove, true},
		{"super admin approves without manager", policy.Subject{ID: carol, Role: domain.RoleSuperAdmin}, policy.Resource{Kind: policy.KindCompOff, OwnerID: alice}, policy.ActApprove, true},
		{"employee cannot approve comp-off", policy.Subject{ID: bob, Role: domain.RoleEmployee}, policy.Resource{Kind: policy.KindCompOff, OwnerID: alice, ManagerID: bob}, policy.ActApprove, false},
		{"manager without reports vs unmanaged employee", policy.Subject{ID: "", Role: domain.RoleManager}, policy.Resource{Kind: policy.KindCompOff, OwnerID: alice}, policy.ActApprove, false},

		{"assignee updates task", policy.Subject{ID: alice, Role: domain.RoleEmployee}, policy.Resource{Kind: policy.KindOnboardingTask, AssigneeID: alice}, policy.ActUpdate, true},
		{"non assignee cannot update task", policy.Subject{ID: bob, Role: domain.RoleManager}, policy.Resource{Kind: policy.KindOnboardingTask, AssigneeID: alice}, policy.ActUpdate, false},
		{"unassigned task is admin only", policy.Subject{ID: bob, Role: domain.RoleEmployee}, policy.Resource{Kind: policy.KindOnboardingTask}, policy.ActUpdate, false},
		{"hr updates unassigned task", policy.Subject{ID: carol, Role: domain.RoleHRAdmin}, policy.Resource{Kind: policy.KindOnboardingTask}, policy.ActUpdate, true},

		{"owner reads review", policy.Subject{ID: alice, Role: domain.RoleEmployee}, policy.Resource{Kind: policy.KindReview, OwnerID: alice, ReviewerID: bob}, policy.ActRead, true},
		{"reviewer reads review", policy.Subject{ID: bob, Role: domain.RoleManager}, policy.Resource{Kind: policy.KindReview, OwnerID: alice, ReviewerID: bob}, policy.ActRead, true},
		{"stranger cannot read review", policy.Subject{ID: carol, Role: domain.RoleManager}, policy.Resource{Kind: policy.KindReview, OwnerID: alice, ReviewerID: bob}, policy.ActRead, false},
		{"hr reads review", policy.Subject{ID: carol, Role: domain.RoleHRAdmin}, policy.Resource{Kind: policy.KindReview, OwnerID: alice, ReviewerID: bob}, policy.ActRead, true},
		{"owner self submits", policy.Subject{ID: alice, Role: domain.RoleEmployee}, policy.Resource{Kind: policy.KindReview, OwnerID: alice}, policy.ActSelfSubmit, true},
		{"hr cannot self submit for others", policy.Subject{ID: carol, Role: domain.RoleHRAdmin}, policy.Resource{Kind: policy.KindReview, OwnerID: alice}, policy.ActSelfSubmit, false},
		{"reviewer manager submits", policy.Subject{ID: bob, Role: domain.RoleManager}, policy.Resource{Kind: policy.KindReview, OwnerID: alice, ReviewerID: bob}, policy.ActManagerSubmit, true},
		{"owner cannot manager submit", policy.Subject{ID: alice, Role: domain.RoleEmployee}, policy.Resource{Kind: policy.KindReview, OwnerID: alice, ReviewerID: bob}, policy.ActManagerSubmit, false},
		{"hr manager submits", policy.Subject{ID: carol, Role: domain.RoleHRAdmin}, policy.Resource{Kind: policy.KindReview, OwnerID: alice, ReviewerID: bob}, policy.ActManagerSubmit, true},
		{"employee cannot list team", policy.Subject{ID: alice, Role: domain.RoleEmployee}, policy.Resource{Kind: policy.KindReview}, policy.ActListTeam, false},
		{"manager lists team", policy.Subject{ID: bob, Role: domain.RoleManager}, policy.Resource{Kind: policy.KindReview}, policy.ActListTeam, true},

		{"owner manages goal", policy.Subject{ID: alice, Role: domain.RoleEmployee}, policy.Resource{Kind: policy.KindGoal, OwnerID: alice}, policy.ActManage, true},
		{"manager cannot manage report goal", policy.Subject{ID: bob, Role: domain.RoleManager}, policy.Resource{Kind: policy.KindGoal, OwnerID: alice}, policy.ActManage, false},

		{"hr reviews change request", policy.Subject{ID: carol, Role: domain.RoleHRAdmin}, policy.Resource{Kind: policy.KindChangeRequest, OwnerID: alice}, policy.ActReview, true},
		{"manager cannot review change request", policy.Subject{ID: bob, Role: domain.RoleManager}, policy.Resource{Kind: policy.KindChangeRequest, OwnerID: alice, ManagerID: bob}, policy.ActReview, false},

		{"owner reads document", policy.Subject{ID: alice, Role: domain.RoleEmployee}, policy.Resource{Kind: policy.KindDocument, OwnerID: alice}, policy.ActRead, true},
		{"other reads document", policy.Subject{ID: bob, Role: domain.RoleEmployee}, policy.Resource{Kind: policy.KindDocument, OwnerID: alice}, policy.ActRead, false},
		{"unknown role denied", policy.Subject{ID: alice, Role: "GUEST"}, policy.Resource{Kind: policy.KindDocument, OwnerID: alice}, policy.ActRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ev.Allow(tt.sub, tt.obj, tt.act)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubjectOf(t *testing.T) {
	sub := policy.SubjectOf(domain.Actor{UserID: "u1", EmployeeID: "e1", Role: domain.RoleManager})
	assert.Equal(t, policy.Subject{ID: "e1", Role: domain.RoleManager}, sub)
}
